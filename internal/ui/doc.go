// Package ui contains the Bubble Tea gallery that mounts the widgets side by
// side: the collapsible sidebar menu, the toast queue and the input fields.
//
// Message flow:
//   - Bubble Tea invokes Model.Update with incoming messages.
//   - Update routes each message through a typed handler registry so every
//     tea.Msg is handled by a focused function (keys, mouse, resize,
//     navigation results, sidebar close notifications).
//   - Messages without a handler are forwarded to the toast manager, which
//     owns its own expiry messages.
//
// Focus:
//   - While the sidebar is open it receives every key; Escape, an outside
//     press or its close glyph ask the gallery to close it.
//   - Tab cycles focus through the inputs. A focused input receives every
//     key except Tab, Shift+Tab and Escape.
//   - Otherwise single-letter bindings drive the gallery (see keys.go).
//
// The toast manager is not owned by the gallery. It is created once by the
// caller, scoped into a context.Context, and looked up with
// toast.FromContext when the model is built.
package ui
