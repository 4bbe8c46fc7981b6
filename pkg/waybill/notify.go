package waybill

// NotifyKind distinguishes how a failure should be surfaced to the user.
type NotifyKind string

const (
	// NotifyToast is a transient, non-blocking notice.
	NotifyToast NotifyKind = "toast"

	// NotifyModal is a blocking notice the user must acknowledge, used for
	// session expiry.
	NotifyModal NotifyKind = "modal"
)

// Notifier surfaces request failures to the user. Endpoints that allow
// anonymous access fail silently and never reach the notifier.
type Notifier interface {
	Notify(message string, kind NotifyKind)
}

// NoopNotifier discards all notifications.
type NoopNotifier struct{}

// Notify does nothing.
func (NoopNotifier) Notify(message string, kind NotifyKind) {}

// LoggerNotifier routes notifications to a Logger, for headless use.
type LoggerNotifier struct {
	Logger Logger
}

// Notify logs the notification at warn level.
func (n LoggerNotifier) Notify(message string, kind NotifyKind) {
	if n.Logger == nil {
		return
	}

	n.Logger.Warn("user notification", map[string]interface{}{
		"message": message,
		"kind":    string(kind),
	})
}
