package xdndsrc

import (
	"context"
	"log/slog"

	"github.com/BurntSushi/xgb/xproto"
	"github.com/davecgh/go-spew/spew"
	"github.com/jmigpin/dragsource/dnd"
)

// X requests used by the machine.
type Session interface {
	// Windows under the root point, from the root to the innermost.
	WindowPath(rootX, rootY int16) []xproto.Window
	// Version in the XdndAware property; ok is false if absent.
	AwareVersion(xproto.Window) (version uint32, ok bool)
	ClaimSelection(xproto.Timestamp) error
	SendClientMessage(target xproto.Window, typ xproto.Atom, data []uint32) error
	ServeSelection(*xproto.SelectionRequestEvent) error
	SetFeedback(Feedback)
}

// XDND source state machine. Not safe for concurrent use: all methods
// run on the source event loop.
type Machine struct {
	src    xproto.Window
	atoms  *AtomTable
	sess   Session
	diag   dnd.DiagnosticsSink
	logger *slog.Logger

	state          State
	cursorInSource bool
}

func NewMachine(src xproto.Window, atoms *AtomTable, sess Session, diag dnd.DiagnosticsSink, logger *slog.Logger) *Machine {
	if logger == nil {
		logger = slog.Default()
	}
	if diag == nil {
		diag = dnd.LogDiagnostics(logger)
	}
	return &Machine{src: src, atoms: atoms, sess: sess, diag: diag, logger: logger}
}

func (m *Machine) State() State {
	return m.state
}

//----------

func (m *Machine) OnEnterNotify(ev *xproto.EnterNotifyEvent) {
	if ev.Event == m.src {
		m.cursorInSource = true
	}
}

func (m *Machine) OnLeaveNotify(ev *xproto.LeaveNotifyEvent) {
	if ev.Event == m.src {
		m.cursorInSource = false
	}
}

//----------

func (m *Machine) OnMotionNotify(ev *xproto.MotionNotifyEvent) {
	if m.cursorInSource {
		return
	}
	path := m.sess.WindowPath(ev.RootX, ev.RootY)
	if len(path) == 0 {
		return
	}
	target, version, aware := m.candidate(path)

	if m.state.ExchangeStarted && target != m.state.Target {
		m.logger.Debug("xdnd: reset exchange", "old", m.state.Target, "new", target)
		m.sendLeave()
		m.reset()
		m.sess.SetFeedback(FeedbackNone)
	}

	if !m.state.ExchangeStarted {
		if !aware || version > ProtocolVersion {
			return
		}
		m.enter(target, version, ev.Time)
		return
	}

	m.sendPosition(ev.RootX, ev.RootY, ev.Time)
	m.state.LastPositionTime = ev.Time
}

// Innermost window of the path advertising XdndAware. Defaults to the
// innermost window when none does.
func (m *Machine) candidate(path []xproto.Window) (_ xproto.Window, version uint32, aware bool) {
	for i := len(path) - 1; i >= 0; i-- {
		w := path[i]
		if w == m.src {
			continue
		}
		if v, ok := m.sess.AwareVersion(w); ok {
			return w, v, true
		}
	}
	return path[len(path)-1], 0, false
}

func (m *Machine) enter(target xproto.Window, version uint32, t xproto.Timestamp) {
	if err := m.sess.ClaimSelection(t); err != nil {
		m.diag(dnd.Diagnostic{Op: "set selection owner", Window: uint32(target), Err: err})
		return
	}
	u := EnterEvent{Source: m.src, Version: version, Type: m.atoms.TextURIList}
	m.send("xdnd enter", target, m.atoms.XdndEnter, u.Data32())

	m.state.ExchangeStarted = true
	m.state.Target = target
	m.state.Version = version
	m.logger.Debug("xdnd: enter", "target", target, "version", version)
}

//----------

func (m *Machine) OnButtonRelease(ev *xproto.ButtonReleaseEvent) {
	if !(m.state.ExchangeStarted && m.state.StatusReceived) {
		return
	}
	u := DropEvent{Source: m.src, Time: m.state.LastPositionTime}
	m.send("xdnd drop", m.state.Target, m.atoms.XdndDrop, u.Data32())
	m.logger.Debug("xdnd: drop", "target", m.state.Target)
}

//----------

func (m *Machine) OnSelectionRequest(ev *xproto.SelectionRequestEvent) {
	if !m.state.ExchangeStarted {
		return
	}
	if err := m.sess.ServeSelection(ev); err != nil {
		m.diag(dnd.Diagnostic{Op: "selection notify", Window: uint32(ev.Requestor), Err: err})
	}
}

//----------

// Reports false if the message is not part of the protocol.
func (m *Machine) OnClientMessage(ev *xproto.ClientMessageEvent) bool {
	switch ev.Type {
	case m.atoms.XdndStatus:
		m.onStatus(ev)
	case m.atoms.XdndFinished:
		m.onFinished(ev)
	default:
		if m.logger.Enabled(context.Background(), slog.LevelDebug) {
			m.logger.Debug("xdnd: unhandled client message", "ev", spew.Sdump(ev))
		}
		return false
	}
	return true
}

func (m *Machine) onStatus(ev *xproto.ClientMessageEvent) {
	if !m.state.ExchangeStarted {
		return
	}
	st, err := ParseStatusEvent(ev.Data.Data32)
	if err != nil {
		m.diag(dnd.Diagnostic{Op: "xdnd status", Window: uint32(ev.Window), Err: err})
		return
	}
	if st.Target != m.state.Target {
		// late status from a previous target
		return
	}
	m.state.StatusReceived = true
	if !st.Accept {
		m.logger.Debug("xdnd: target does not accept drop", "target", st.Target)
		m.sess.SetFeedback(FeedbackReject)
		m.sendLeave()
		m.reset()
		return
	}
	m.sess.SetFeedback(FeedbackAccept)
}

func (m *Machine) onFinished(ev *xproto.ClientMessageEvent) {
	fe, err := ParseFinishedEvent(ev.Data.Data32)
	if err != nil {
		m.diag(dnd.Diagnostic{Op: "xdnd finished", Window: uint32(ev.Window), Err: err})
		return
	}
	if !m.state.ExchangeStarted || fe.Target != m.state.Target {
		return
	}
	m.logger.Debug("xdnd: finished", "target", fe.Target, "accepted", fe.Accepted)
	m.reset()
	m.sess.SetFeedback(FeedbackNone)
}

//----------

func (m *Machine) sendPosition(x, y int16, t xproto.Timestamp) {
	u := PositionEvent{
		Source: m.src,
		RootX:  x,
		RootY:  y,
		Time:   t,
		Action: m.atoms.XdndActionCopy,
	}
	m.send("xdnd position", m.state.Target, m.atoms.XdndPosition, u.Data32())
}

func (m *Machine) sendLeave() {
	if !m.state.ExchangeStarted {
		return
	}
	u := LeaveEvent{Source: m.src}
	m.send("xdnd leave", m.state.Target, m.atoms.XdndLeave, u.Data32())
}

// Best effort: failures go to the diagnostics sink.
func (m *Machine) send(op string, target xproto.Window, typ xproto.Atom, data []uint32) {
	if err := m.sess.SendClientMessage(target, typ, data); err != nil {
		m.diag(dnd.Diagnostic{Op: op, Window: uint32(target), Err: err})
	}
}

func (m *Machine) reset() {
	m.state = State{}
}
