package xdndsrc

import "github.com/BurntSushi/xgb/xproto"

// Exchange state, owned by the source event loop. StatusReceived and
// Target are only meaningful while ExchangeStarted is true. Resetting to
// the zero value is the only way out of an exchange.
type State struct {
	ExchangeStarted  bool
	StatusReceived   bool
	LastPositionTime xproto.Timestamp
	Target           xproto.Window
	Version          uint32 // negotiated with the target
}

func (st State) Phase() Phase {
	switch {
	case !st.ExchangeStarted:
		return PhaseIdle
	case !st.StatusReceived:
		return PhaseEnteredTarget
	default:
		return PhaseAwaitingDrop
	}
}

//----------

type Phase int

const (
	PhaseIdle Phase = iota
	PhaseEnteredTarget
	PhaseAwaitingDrop
)

func (p Phase) String() string {
	switch p {
	case PhaseIdle:
		return "idle"
	case PhaseEnteredTarget:
		return "entered-target"
	case PhaseAwaitingDrop:
		return "awaiting-drop"
	}
	return "unknown"
}
