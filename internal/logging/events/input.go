package events

import "github.com/atomicstack/popup-widgets/internal/logging"

type InputTracer struct{}

var Input = InputTracer{}

func (InputTracer) Clear(name string) {
	logging.Trace("input.clear", map[string]interface{}{"name": name})
}

func (InputTracer) Visibility(name string, visible bool) {
	logging.Trace("input.visibility", map[string]interface{}{"name": name, "visible": visible})
}
