package commands

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strconv"

	"github.com/sirupsen/logrus"
	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"

	"github.com/freightflow/waybill-client/pkg/waybill"
	"github.com/freightflow/waybill-client/pkg/waybillclient"
)

// Output formats.
const (
	OutputFormatJSON = "json"
	OutputFormatYAML = "yaml"

	NotAvailable = "N/A"
)

// createClient builds the SDK client from the resolved CLI configuration.
func createClient() (waybill.Client, error) {
	baseURL := viper.GetString("base-url")
	if baseURL == "" {
		return nil, fmt.Errorf("%w, set --base-url or WAYBILL_BASE_URL", waybill.ErrBaseURLRequired)
	}

	config := &waybill.Config{
		BaseURL:   baseURL,
		TenantID:  viper.GetString("tenant"),
		StorePath: storePath(),
		Logger:    newLogger(),
		Notifier:  stderrNotifier{},
		Debug:     viper.GetBool("verbose"),
	}

	if viper.GetBool("no-cache") {
		config.Cache = &waybill.CacheConfig{Disabled: true}
	}

	return waybillclient.New(context.Background(), config)
}

// storePath keeps credentials and cache next to the CLI config file.
func storePath() string {
	if path := viper.GetString("store-path"); path != "" {
		return path
	}

	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}

	return filepath.Join(home, ".waybillctl", "store.yml")
}

// newLogger builds the logrus-backed logger; verbose raises the level.
func newLogger() waybill.Logger {
	log := logrus.New()
	log.SetOutput(os.Stderr)
	log.SetLevel(logrus.WarnLevel)

	if viper.GetBool("verbose") {
		log.SetLevel(logrus.DebugLevel)
	}

	return logrusLogger{log: log}
}

// logrusLogger adapts logrus to waybill.Logger.
type logrusLogger struct {
	log *logrus.Logger
}

func (l logrusLogger) Debug(msg string, fields map[string]interface{}) {
	l.log.WithFields(logrus.Fields(fields)).Debug(msg)
}

func (l logrusLogger) Info(msg string, fields map[string]interface{}) {
	l.log.WithFields(logrus.Fields(fields)).Info(msg)
}

func (l logrusLogger) Warn(msg string, fields map[string]interface{}) {
	l.log.WithFields(logrus.Fields(fields)).Warn(msg)
}

func (l logrusLogger) Error(msg string, fields map[string]interface{}) {
	l.log.WithFields(logrus.Fields(fields)).Error(msg)
}

// stderrNotifier surfaces user notifications on stderr.
type stderrNotifier struct{}

func (stderrNotifier) Notify(message string, kind waybill.NotifyKind) {
	fmt.Fprintf(os.Stderr, "! %s\n", message)
}

// renderStructured prints v as JSON or YAML; reports whether it handled the
// output format.
func renderStructured(v interface{}) (bool, error) {
	switch viper.GetString("output") {
	case OutputFormatJSON:
		encoder := json.NewEncoder(os.Stdout)
		encoder.SetIndent("", "  ")

		return true, encoder.Encode(v)
	case OutputFormatYAML:
		encoder := yaml.NewEncoder(os.Stdout)

		return true, encoder.Encode(v)
	default:
		return false, nil
	}
}

func formatInt(v int64) string {
	return strconv.FormatInt(v, 10)
}

func orNA(s string) string {
	if s == "" {
		return NotAvailable
	}

	return s
}
