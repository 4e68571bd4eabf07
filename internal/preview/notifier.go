package preview

import (
	"github.com/ncruces/zenity"

	"github.com/dshills/toasty/internal/option"
)

// Notifier shows toasts as desktop notifications.
type Notifier struct {
	title   string
	notify  func(text string, options ...zenity.Option) error
	onError func(error)
}

// NotifierOption configures a Notifier.
type NotifierOption func(*Notifier)

// WithErrorHandler receives notification failures, which are otherwise
// dropped.
func WithErrorHandler(fn func(error)) NotifierOption {
	return func(n *Notifier) {
		n.onError = fn
	}
}

// withNotifyFunc replaces the zenity call in tests.
func withNotifyFunc(fn func(string, ...zenity.Option) error) NotifierOption {
	return func(n *Notifier) {
		n.notify = fn
	}
}

// NewNotifier creates a desktop notifier using title for every toast.
func NewNotifier(title string, opts ...NotifierOption) *Notifier {
	n := &Notifier{
		title:  title,
		notify: zenity.Notify,
	}
	for _, opt := range opts {
		opt(n)
	}
	return n
}

// AddToast implements Toaster.
func (n *Notifier) AddToast(message string, opts ToastOptions) {
	err := n.notify(message, zenity.Title(n.title), zenity.Icon(iconFor(opts.Type())))
	if err != nil && n.onError != nil {
		n.onError(err)
	}
}

func iconFor(toastType string) zenity.DialogIcon {
	switch toastType {
	case option.TypeError:
		return zenity.ErrorIcon
	case option.TypeWarning:
		return zenity.WarningIcon
	default:
		return zenity.InfoIcon
	}
}
