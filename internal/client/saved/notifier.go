package saved

import "context"

// Notifier receives the user-facing notifications the engine emits: save and
// remove confirmations, the distinct "saved locally" notice for anonymous
// device-scoped saves, and toggle failures.
type Notifier interface {
	Notify(ctx context.Context, title, detail string)
	NotifyError(ctx context.Context, title, detail string)
}

// NopNotifier drops all notifications.
type NopNotifier struct{}

func (NopNotifier) Notify(context.Context, string, string)      {}
func (NopNotifier) NotifyError(context.Context, string, string) {}
