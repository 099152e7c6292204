// Package tracker follows a smart cube's face turns and keeps the
// corresponding sticker state, so a physical cube can be read as a code.
package tracker

import (
	"sync"
	"time"

	log "github.com/sirupsen/logrus"

	"github.com/SeamusWaldron/cubecode"
	"github.com/SeamusWaldron/cubecode/internal/protocol"
)

// Tracker wraps a CubeState and applies the rotations a GoCube reports.
// Notifications arrive on the BLE goroutine, so all access is serialized.
type Tracker struct {
	mu      sync.Mutex
	state   *cubecode.CubeState
	moves   []cubecode.Move
	battery int
	onMove  func(m cubecode.Move, code string)
	now     func() time.Time
}

// New creates a tracker starting from start, or from a solved cube when
// start is nil. The tracker keeps its own copy.
func New(start *cubecode.CubeState) *Tracker {
	t := &Tracker{battery: -1, now: time.Now}
	t.Reset(start)
	return t
}

// SetMoveCallback sets a callback that fires after every applied move with
// the resulting canonical code. It is called outside the lock.
func (t *Tracker) SetMoveCallback(cb func(m cubecode.Move, code string)) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.onMove = cb
}

// Reset restarts tracking from start (solved when nil) and clears history.
func (t *Tracker) Reset(start *cubecode.CubeState) {
	t.mu.Lock()
	defer t.mu.Unlock()
	if start == nil {
		t.state = cubecode.NewCubeState()
	} else {
		t.state = start.Clone()
	}
	t.moves = nil
}

// HandleMessage applies a rotation message and records battery updates.
// Other message types are ignored.
func (t *Tracker) HandleMessage(msg *protocol.Message) {
	switch msg.Type {
	case protocol.MsgTypeRotation:
		moves, err := protocol.DecodeMoves(msg.Payload, t.now())
		if err != nil {
			log.WithError(err).WithField("raw", msg.RawBase64).Warn("bad rotation message")
			return
		}
		t.ApplyMoves(moves...)
	case protocol.MsgTypeBattery:
		if b, err := protocol.DecodeBattery(msg.Payload); err == nil {
			t.mu.Lock()
			t.battery = b.Level
			t.mu.Unlock()
		}
	}
}

// ApplyMoves turns faces and fires the move callback for each move.
func (t *Tracker) ApplyMoves(moves ...cubecode.Move) {
	for _, m := range moves {
		t.mu.Lock()
		t.state.Apply(m)
		t.moves = append(t.moves, m)
		code := cubecode.Encode(t.state)
		cb := t.onMove
		t.mu.Unlock()

		log.WithFields(log.Fields{"move": m.Notation(), "code": code}).Debug("applied move")
		if cb != nil {
			cb(m, code)
		}
	}
}

// Code returns the canonical code of the tracked cube.
func (t *Tracker) Code() string {
	t.mu.Lock()
	defer t.mu.Unlock()
	return cubecode.Encode(t.state)
}

// State returns a copy of the tracked cube.
func (t *Tracker) State() *cubecode.CubeState {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.state.Clone()
}

// Moves returns a copy of the move history.
func (t *Tracker) Moves() []cubecode.Move {
	t.mu.Lock()
	defer t.mu.Unlock()
	out := make([]cubecode.Move, len(t.moves))
	copy(out, t.moves)
	return out
}

// Battery returns the last reported battery level, or -1.
func (t *Tracker) Battery() int {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.battery
}

// IsSolved returns true if the tracked cube is solved.
func (t *Tracker) IsSolved() bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.state.IsSolved()
}
