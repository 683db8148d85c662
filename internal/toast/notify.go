package toast

import "github.com/gen2brain/beeep"

// Notifier mirrors toasts somewhere outside the terminal.
type Notifier interface {
	Notify(rec Record) error
}

// BeeepNotifier sends each toast as a desktop notification.
type BeeepNotifier struct {
	AppName string
}

func (n BeeepNotifier) Notify(rec Record) error {
	title := n.AppName
	if title == "" {
		title = "popup-widgets"
	}
	return beeep.Notify(title+": "+rec.Variant.String(), rec.Message, "")
}
