package main

type SessionState int

const (
	StateAwaitingInput SessionState = iota
	StateCommitted
	StateAborted
)

type SessionEvent interface {
	sessionEvent()
}

// ClickEvent replaces the session's seed. Only the most recent click
// matters; no seed history is kept.
type ClickEvent struct {
	At Point
}

type CommitEvent struct{}

type AbortEvent struct{}

func (ClickEvent) sessionEvent()  {}
func (CommitEvent) sessionEvent() {}
func (AbortEvent) sessionEvent()  {}

// Session holds the per-basin selection state. The streamline is recomputed
// from scratch on every seed change, never mutated in place, so rendering
// the same seed twice always draws the same thing.
type Session struct {
	Basin *Basin
	Field *FieldView
	Seed  Point
	Line  Streamline
	State SessionState

	cfg TraceConfig
}

func NewSession(basin *Basin, field *FieldView, seed Point, cfg TraceConfig) *Session {
	s := &Session{
		Basin: basin,
		Field: field,
		Seed:  seed,
		State: StateAwaitingInput,
		cfg:   cfg,
	}
	s.Line = Trace(field, seed, cfg)
	return s
}

// Handle applies one event to the session. On commit it returns the record
// to persist; at most one record is ever emitted per session. Events after
// a terminal state are ignored, except that abort is honored anywhere.
func (s *Session) Handle(ev SessionEvent) (SelectionRecord, bool) {
	switch ev := ev.(type) {
	case ClickEvent:
		if s.State != StateAwaitingInput {
			break
		}
		s.Seed = ev.At
		s.Line = Trace(s.Field, s.Seed, s.cfg)
	case CommitEvent:
		if s.State != StateAwaitingInput {
			break
		}
		s.State = StateCommitted
		return SelectionRecord{Basin: s.Basin.Name, Seed: s.Seed}, true
	case AbortEvent:
		s.State = StateAborted
	}
	return SelectionRecord{}, false
}
