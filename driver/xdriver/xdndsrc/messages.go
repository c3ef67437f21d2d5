package xdndsrc

import (
	"fmt"

	"github.com/BurntSushi/xgb/xproto"
)

// protocol: https://www.freedesktop.org/wiki/Specifications/XDND/

const ProtocolVersion = 5

// Client messages sent by the source. All are format 32 with five
// 32-bit words.

type EnterEvent struct {
	Source  xproto.Window
	Version uint32
	Type    xproto.Atom // single supported data type
}

func (e *EnterEvent) Data32() []uint32 {
	return []uint32{
		uint32(e.Source),
		e.Version << 24, // bit 0 unset: no more than 3 types
		uint32(e.Type),
		0,
		0,
	}
}

type PositionEvent struct {
	Source xproto.Window
	RootX  int16
	RootY  int16
	Time   xproto.Timestamp
	Action xproto.Atom
}

func (e *PositionEvent) Data32() []uint32 {
	return []uint32{
		uint32(e.Source),
		0, // reserved
		packPoint(e.RootX, e.RootY),
		uint32(e.Time),
		uint32(e.Action),
	}
}

type DropEvent struct {
	Source xproto.Window
	Time   xproto.Timestamp // last position timestamp
}

func (e *DropEvent) Data32() []uint32 {
	return []uint32{
		uint32(e.Source),
		0, // reserved
		uint32(e.Time),
		0,
		0,
	}
}

type LeaveEvent struct {
	Source xproto.Window
}

func (e *LeaveEvent) Data32() []uint32 {
	return []uint32{uint32(e.Source), 0, 0, 0, 0}
}

//----------

// Parsers for the source messages, used on the target side.

func ParseEnterEvent(data []uint32) (_ *EnterEvent, types []xproto.Atom, moreTypes bool, _ error) {
	if len(data) < 5 {
		return nil, nil, false, fmt.Errorf("xdnd enter: short data: %v", len(data))
	}
	e := &EnterEvent{
		Source:  xproto.Window(data[0]),
		Version: data[1] >> 24,
		Type:    xproto.Atom(data[2]),
	}
	for _, t := range data[2:5] {
		if t != 0 {
			types = append(types, xproto.Atom(t))
		}
	}
	return e, types, data[1]&1 != 0, nil
}

func ParsePositionEvent(data []uint32) (*PositionEvent, error) {
	if len(data) < 5 {
		return nil, fmt.Errorf("xdnd position: short data: %v", len(data))
	}
	return &PositionEvent{
		Source: xproto.Window(data[0]),
		RootX:  int16(data[2] >> 16),
		RootY:  int16(data[2] & 0xffff),
		Time:   xproto.Timestamp(data[3]),
		Action: xproto.Atom(data[4]),
	}, nil
}

func ParseDropEvent(data []uint32) (*DropEvent, error) {
	if len(data) < 3 {
		return nil, fmt.Errorf("xdnd drop: short data: %v", len(data))
	}
	return &DropEvent{Source: xproto.Window(data[0]), Time: xproto.Timestamp(data[2])}, nil
}

//----------

// Client messages received from the target.

type StatusEvent struct {
	Target        xproto.Window
	Accept        bool
	WantPositions bool
	Action        xproto.Atom
}

func ParseStatusEvent(data []uint32) (*StatusEvent, error) {
	if len(data) < 5 {
		return nil, fmt.Errorf("xdnd status: short data: %v", len(data))
	}
	return &StatusEvent{
		Target:        xproto.Window(data[0]),
		Accept:        data[1]&statusAcceptFlag != 0,
		WantPositions: data[1]&statusSendPositionsFlag != 0,
		Action:        xproto.Atom(data[4]),
	}, nil
}

func (e *StatusEvent) Data32() []uint32 {
	flags := uint32(0)
	if e.Accept {
		flags |= statusAcceptFlag
	}
	if e.WantPositions {
		flags |= statusSendPositionsFlag
	}
	return []uint32{
		uint32(e.Target),
		flags,
		0, // empty rectangle: always send positions when asked
		0,
		uint32(e.Action),
	}
}

const (
	statusAcceptFlag        = 1 << 0
	statusSendPositionsFlag = 1 << 1
)

type FinishedEvent struct {
	Target   xproto.Window
	Accepted bool
	Action   xproto.Atom
}

func ParseFinishedEvent(data []uint32) (*FinishedEvent, error) {
	if len(data) < 3 {
		return nil, fmt.Errorf("xdnd finished: short data: %v", len(data))
	}
	return &FinishedEvent{
		Target:   xproto.Window(data[0]),
		Accepted: data[1]&1 != 0,
		Action:   xproto.Atom(data[2]),
	}, nil
}

func (e *FinishedEvent) Data32() []uint32 {
	acc, action := uint32(0), e.Action
	if e.Accepted {
		acc = 1 // first bit of uint32
	} else {
		action = xproto.AtomNone
	}
	return []uint32{uint32(e.Target), acc, uint32(action), 0, 0}
}

//----------

func packPoint(x, y int16) uint32 {
	return uint32(uint16(x))<<16 | uint32(uint16(y))
}
