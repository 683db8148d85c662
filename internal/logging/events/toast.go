package events

import "github.com/atomicstack/popup-widgets/internal/logging"

type ToastTracer struct{}

var Toast = ToastTracer{}

func (ToastTracer) Display(id, variant string, durationMs int64) {
	logging.Trace("toast.display", map[string]interface{}{"id": id, "variant": variant, "durationMs": durationMs})
}

func (ToastTracer) Dismiss(id string, found bool) {
	logging.Trace("toast.dismiss", map[string]interface{}{"id": id, "found": found})
}

func (ToastTracer) Expire(id string) {
	logging.Trace("toast.expire", map[string]interface{}{"id": id})
}

func (ToastTracer) Stale(id string, token uint64) {
	logging.Trace("toast.stale", map[string]interface{}{"id": id, "token": token})
}

func (ToastTracer) NotifyError(id string, err error) {
	if err == nil {
		return
	}
	logging.Trace("toast.notify.error", map[string]interface{}{"id": id, "error": err.Error()})
}
