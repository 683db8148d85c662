package events

import "github.com/atomicstack/popup-widgets/internal/logging"

type MenuTracer struct{}

type closeReason string

const (
	CloseReasonEscape  closeReason = "escape"
	CloseReasonOutside closeReason = "outside"
	CloseReasonButton  closeReason = "button"
	CloseReasonManual  closeReason = "manual"
)

var Menu = MenuTracer{}

func (MenuTracer) Open(nodes int) {
	logging.Trace("menu.open", map[string]interface{}{"nodes": nodes})
}

func (MenuTracer) Close(reason closeReason) {
	logging.Trace("menu.close", map[string]interface{}{"reason": string(reason)})
}

func (MenuTracer) Toggle(id string, expanded bool) {
	logging.Trace("menu.toggle", map[string]interface{}{"id": id, "expanded": expanded})
}

func (MenuTracer) Navigate(id, link string) {
	logging.Trace("menu.navigate", map[string]interface{}{"id": id, "link": link})
}

func (MenuTracer) NoOp(id string) {
	logging.Trace("menu.noop", map[string]interface{}{"id": id})
}

func (MenuTracer) Cursor(id string, cursor int) {
	logging.Trace("menu.cursor", map[string]interface{}{"id": id, "cursor": cursor})
}

func (MenuTracer) Listeners(attached bool) {
	logging.Trace("menu.listeners", map[string]interface{}{"attached": attached})
}
