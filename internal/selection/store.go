// Package selection tracks the caret/selection of a host text input and
// compensates for in-flight IME composition, so consumers always observe the
// logical, pre-composition caret.
//
// One Store exists per host input. All mutation happens synchronously on the
// UI event loop; the Store is not safe for concurrent writers.
package selection

import (
	"github.com/google/uuid"

	"github.com/zjrosen/overtype/internal/log"
)

// KeyCodeComposing is the sentinel key code platforms report for keystrokes
// swallowed by an in-progress IME composition. Key events carrying it must
// never trigger a selection re-read.
const KeyCodeComposing = 229

// Host is the read-only collaborator contract required from the host text
// input. Selection reports ok=false when the host is detached or has no
// selection to report.
type Host interface {
	Value() string
	Selection() (start, end int, ok bool)
}

// MutableHost is a Host that also accepts selection writes. The Store itself
// never mutates the host; MutableHost exists for the InterceptSelection
// forwarding adapter.
type MutableHost interface {
	Host
	SetSelection(start, end int)
}

// Snapshot is an immutable published selection. Valid is false when the host
// is detached. Snapshots compare by value; the Store reuses the previous
// pointer when nothing changed, so shallow-equality consumers never observe
// a spurious update.
type Snapshot struct {
	Start int
	End   int
	Valid bool
}

// Store observes one host input's selection and publishes compensated
// snapshots to subscribers.
type Store struct {
	host     Host
	schedule func(func())
	subs     map[uuid.UUID]func()
	snapshot *Snapshot

	composing  bool
	composeLen int
}

// New creates a Store for the given host. The host may be nil (a detached
// store publishes invalid snapshots until a host is attached).
func New(host Host) *Store {
	return &Store{
		host:     host,
		subs:     make(map[uuid.UUID]func()),
		snapshot: &Snapshot{},
	}
}

// SetScheduler installs the deferred-callback primitive used by
// ScheduleUpdate. Without one, scheduled updates run immediately.
func (s *Store) SetScheduler(schedule func(func())) {
	s.schedule = schedule
}

// Attach replaces the store's host. Attaching nil detaches the store.
func (s *Store) Attach(host Host) {
	s.host = host
	s.Update()
}

// Subscribe registers a callback invoked after every published change. The
// returned cancel func unregisters it and is safe to call more than once.
func (s *Store) Subscribe(fn func()) (cancel func()) {
	id := uuid.New()
	s.subs[id] = fn
	return func() {
		delete(s.subs, id)
	}
}

// Snapshot returns the last published snapshot. The pointer is stable across
// calls until the underlying selection changes by value.
func (s *Store) Snapshot() *Snapshot {
	return s.snapshot
}

// Update re-reads the host selection, applies composition compensation, and
// publishes a new snapshot only if it differs by value from the last one.
// With a detached host this degrades to an invalid snapshot and never panics.
func (s *Store) Update() {
	next := s.read()
	if *s.snapshot == next {
		return
	}
	published := next
	s.snapshot = &published
	log.Debug(log.CatSelection, "selection published",
		"start", published.Start, "end", published.End, "valid", published.Valid)
	for _, fn := range s.subs {
		fn()
	}
}

// ScheduleUpdate defers one Update by a scheduler tick, giving the host time
// to commit a native selection change before it is read. A stale scheduled
// update is superseded by whichever Update runs last; if the host detaches
// before it fires, the update is a safe no-op.
func (s *Store) ScheduleUpdate() {
	if s.schedule == nil {
		s.Update()
		return
	}
	s.schedule(s.Update)
}

// HandleKeyDown schedules a selection re-read for a key event. Keystrokes
// arriving while a composition is active, and keystrokes carrying the
// platform's uncommitted sentinel code, are ignored: composition events are
// the sole update trigger during composition.
func (s *Store) HandleKeyDown(code int) {
	if s.composing || code == KeyCodeComposing {
		return
	}
	s.ScheduleUpdate()
}

// SetComposition records an in-flight composition (start or update) with the
// given composed text and republishes immediately, so the compensated caret
// holds through every intermediate update.
func (s *Store) SetComposition(composed string) {
	if !s.composing {
		log.Debug(log.CatSelection, "composition started")
	}
	s.composing = true
	s.composeLen = len(composed)
	s.Update()
}

// EndComposition clears composition state and resynchronizes to the host's
// raw, uncompensated selection on the spot.
func (s *Store) EndComposition() {
	if !s.composing {
		return
	}
	s.composing = false
	s.composeLen = 0
	log.Debug(log.CatSelection, "composition ended")
	s.Update()
}

// Composing reports whether an IME composition is in flight.
func (s *Store) Composing() bool {
	return s.composing
}

// read produces the compensated view of the host's current selection.
//
// While composing, the raw end offset includes the uncommitted composed
// text; the logical caret subtracts the composition length, clamped so it
// never drops below the raw start: logicalEnd = max(start, end - len).
func (s *Store) read() Snapshot {
	if s.host == nil {
		return Snapshot{}
	}
	start, end, ok := s.host.Selection()
	if !ok {
		return Snapshot{}
	}
	if s.composing {
		logical := end - s.composeLen
		if logical < start {
			logical = start
		}
		end = logical
	}
	return Snapshot{Start: start, End: end, Valid: true}
}
