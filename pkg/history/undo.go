// Package history keeps the session-scoped undo/redo stacks for
// drag-reschedule moves. History is linear, unbounded, and never
// persisted; it is cleared whenever the active timeline changes or an
// editor opens, since edits made elsewhere would invalidate it.
package history

import (
	"time"
)

// Move is one recorded reschedule, keyed by event ID.
type Move struct {
	EventID string
	From    time.Time
	To      time.Time
}

// Mover applies a start-date change to the live event record. The
// store's in-place mutation satisfies it.
type Mover interface {
	MoveEvent(id string, start time.Time) error
}

// Manager is the linear undo/redo stack. Single UI goroutine only.
type Manager struct {
	mover Mover
	undo  []Move
	redo  []Move
}

// New creates a manager applying moves through the given Mover.
func New(mover Mover) *Manager {
	return &Manager{mover: mover}
}

// RecordMove pushes a committed drag and invalidates the redo branch.
func (m *Manager) RecordMove(mv Move) {
	m.undo = append(m.undo, mv)
	m.redo = nil
}

// CanUndo reports whether an undo is available.
func (m *Manager) CanUndo() bool { return len(m.undo) > 0 }

// CanRedo reports whether a redo is available.
func (m *Manager) CanRedo() bool { return len(m.redo) > 0 }

// Depth returns the undo stack size.
func (m *Manager) Depth() int { return len(m.undo) }

// Undo reverts the most recent move, pushing it onto the redo stack.
// Empty stack is a no-op.
func (m *Manager) Undo() (Move, bool, error) {
	if len(m.undo) == 0 {
		return Move{}, false, nil
	}
	mv := m.undo[len(m.undo)-1]
	if err := m.mover.MoveEvent(mv.EventID, mv.From); err != nil {
		return Move{}, false, err
	}
	m.undo = m.undo[:len(m.undo)-1]
	m.redo = append(m.redo, mv)
	return mv, true, nil
}

// Redo re-applies the most recently undone move.
func (m *Manager) Redo() (Move, bool, error) {
	if len(m.redo) == 0 {
		return Move{}, false, nil
	}
	mv := m.redo[len(m.redo)-1]
	if err := m.mover.MoveEvent(mv.EventID, mv.To); err != nil {
		return Move{}, false, err
	}
	m.redo = m.redo[:len(m.redo)-1]
	m.undo = append(m.undo, mv)
	return mv, true, nil
}

// Clear drops both stacks.
func (m *Manager) Clear() {
	m.undo = nil
	m.redo = nil
}
