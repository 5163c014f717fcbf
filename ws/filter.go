package ws

import (
	"github.com/antonmedv/expr"
	"github.com/antonmedv/expr/vm"
	"github.com/tcriess/lightspeed-frontdesk/filter"
	"github.com/tcriess/lightspeed-frontdesk/globals"
	"github.com/tcriess/lightspeed-frontdesk/types"
)

// runFilterEvent evaluates a compiled target filter against one candidate
// client. A nil program passes everyone, evaluation errors exclude the client.
func (h *Hub) runFilterEvent(c *Client, event *types.Event, prog *vm.Program) bool {
	if prog == nil {
		return true
	}
	target := filter.Target{ConnectionId: c.Id}
	if sess, ok := h.store.GetSession(c.Id); ok {
		target.Role = string(sess.Role)
		target.Language = sess.Language
	}
	env := filter.Env{
		Room:   event.Room,
		Target: target,
	}
	res, err := expr.Run(prog, env)
	if err != nil {
		globals.AppLogger.Error("could not run target filter", "error", err, "filter", event.TargetFilter)
		return false
	}
	if bRes, ok := res.(bool); ok && bRes {
		return true
	}
	return false
}
