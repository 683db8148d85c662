package events

import "github.com/atomicstack/popup-widgets/internal/logging"

type AppTracer struct{}

var App = AppTracer{}

func (AppTracer) Start(payload map[string]interface{}) {
	logging.Trace("app.start", payload)
}

func (AppTracer) Stop(err error) {
	payload := map[string]interface{}{}
	if err != nil {
		payload["error"] = err.Error()
	}
	logging.Trace("app.stop", payload)
}

func (AppTracer) MetricsListen(addr string) {
	logging.Trace("app.metrics.listen", map[string]interface{}{"addr": addr})
}
