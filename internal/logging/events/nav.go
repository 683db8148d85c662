package events

import "github.com/atomicstack/popup-widgets/internal/logging"

type NavTracer struct{}

var Nav = NavTracer{}

func (NavTracer) Queue(id, link string) {
	logging.Trace("nav.queue", map[string]interface{}{"id": id, "link": link})
}

func (NavTracer) Skip(id, link string) {
	logging.Trace("nav.skip", map[string]interface{}{"id": id, "link": link})
}

func (NavTracer) Result(id, link, msgType string) {
	logging.Trace("nav.result", map[string]interface{}{"id": id, "link": link, "msg": msgType})
}
