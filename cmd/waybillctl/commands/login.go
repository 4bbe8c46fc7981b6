package commands

import (
	"context"
	"fmt"
	"os"

	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"

	"github.com/freightflow/waybill-client/pkg/waybill"
)

// NewLoginCommand creates the login command.
func NewLoginCommand() *cobra.Command {
	var (
		loginCode string
		nickname  string
		avatar    string
	)

	cmd := &cobra.Command{
		Use:   "login",
		Short: "Log in with a platform login code",
		Long: `Exchange a platform-issued one-time login code for a session.

When the account is unknown to the backend, the login asks for phone
verification; follow up with 'waybillctl register --phone-code <code>'.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			if loginCode == "" {
				return waybill.ErrLoginCodeRequired
			}

			client, err := createClient()
			if err != nil {
				return err
			}

			result, err := client.Auth().Login(context.Background(), loginCode, waybill.Profile{
				Nickname: nickname,
				Avatar:   avatar,
			})
			if err != nil {
				return fmt.Errorf("login failed: %w", err)
			}

			switch result.Status {
			case waybill.StatusAuthenticated:
				fmt.Println("Logged in successfully")
				if result.User != nil && result.User.Nickname != "" {
					fmt.Printf("Welcome back, %s\n", result.User.Nickname)
				}
			case waybill.StatusNeedsPhoneVerification:
				fmt.Println("Account not registered yet; phone verification required.")
				fmt.Println("Run: waybillctl register --phone-code <code>")
			}

			return nil
		},
	}

	cmd.Flags().StringVar(&loginCode, "code", "", "platform login code (required)")
	cmd.Flags().StringVar(&nickname, "nickname", "", "profile nickname")
	cmd.Flags().StringVar(&avatar, "avatar", "", "profile avatar URL")

	return cmd
}

// NewRegisterCommand creates the register command.
func NewRegisterCommand() *cobra.Command {
	var (
		phoneCode string
		nickname  string
		avatar    string
	)

	cmd := &cobra.Command{
		Use:   "register",
		Short: "Complete a login that required phone verification",
		RunE: func(cmd *cobra.Command, args []string) error {
			if phoneCode == "" {
				return waybill.ErrPhoneCodeRequired
			}

			client, err := createClient()
			if err != nil {
				return err
			}

			result, err := client.Auth().RegisterWithPhoneCode(context.Background(), phoneCode, waybill.Profile{
				Nickname: nickname,
				Avatar:   avatar,
			})
			if err != nil {
				return fmt.Errorf("registration failed: %w", err)
			}

			if result.Status == waybill.StatusAuthenticated {
				fmt.Println("Registered and logged in successfully")
			} else {
				fmt.Println("Registration did not complete; try logging in again")
			}

			return nil
		},
	}

	cmd.Flags().StringVar(&phoneCode, "phone-code", "", "phone verification code (required)")
	cmd.Flags().StringVar(&nickname, "nickname", "", "profile nickname")
	cmd.Flags().StringVar(&avatar, "avatar", "", "profile avatar URL")

	return cmd
}

// NewLogoutCommand creates the logout command.
func NewLogoutCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "logout",
		Short: "End the session and clear stored credentials",
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := createClient()
			if err != nil {
				return err
			}

			err = client.Auth().Logout(context.Background())
			if err != nil {
				return err
			}

			fmt.Println("Logged out")

			return nil
		},
	}
}

// NewWhoamiCommand creates the whoami command.
func NewWhoamiCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "whoami",
		Short: "Show the current session",
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := createClient()
			if err != nil {
				return err
			}

			if !client.Auth().IsLoggedIn() {
				fmt.Println("Not logged in")

				return nil
			}

			user, ok := client.Auth().CurrentUser()
			if !ok {
				fmt.Println("Logged in")

				return nil
			}

			if handled, err := renderStructured(user); handled {
				return err
			}

			table := tablewriter.NewWriter(os.Stdout)
			table.Header("Property", "Value")

			_ = table.Append("User ID", formatInt(user.UserID))
			_ = table.Append("Nickname", orNA(user.Nickname))
			_ = table.Append("Phone", orNA(user.Phone))

			return table.Render()
		},
	}
}
