// Package board holds the client-side view of the gift grid: a per-gift
// state machine with optimistic opens reconciled against server timestamps.
package board

import (
	"sort"
	"time"

	"giftbox/internal/domain/models"
)

type State int

const (
	Wrapped State = iota
	ConfirmPending
	Opening
	Opened
)

func (s State) String() string {
	switch s {
	case Wrapped:
		return "wrapped"
	case ConfirmPending:
		return "confirm_pending"
	case Opening:
		return "opening"
	case Opened:
		return "opened"
	default:
		return "unknown"
	}
}

// Action tells the caller what a Tap asks for.
type Action int

const (
	ActionNone Action = iota
	// ActionUnwrap: play the unwrap animation, then call UnwrapDone.
	ActionUnwrap
	// ActionView: the viewer is now showing the tapped gift.
	ActionView
)

// Item is one gift plus its local state.
type Item struct {
	Gift  models.Gift
	State State
	// Confirmed is false while Gift.OpenedAt holds an optimistic value
	// the server has not acknowledged.
	Confirmed bool
}

type Board struct {
	items []Item
	index map[int]int
	total int

	unwrapping int
	pending    int
	viewing    int
	inFlight   map[int]bool

	lastErr     error
	needsResync bool

	now func() time.Time
}

type Option func(*Board)

func WithClock(now func() time.Time) Option {
	return func(b *Board) {
		b.now = now
	}
}

// New creates an empty board; total is shown until the first Load.
func New(total int, opts ...Option) *Board {
	b := &Board{
		index:    make(map[int]int),
		total:    total,
		inFlight: make(map[int]bool),
		now:      time.Now,
	}

	for _, opt := range opts {
		opt(b)
	}

	return b
}

// Load merges a server snapshot into local state. Server timestamps always
// win; an unconfirmed optimistic open the server does not know about is undone.
func (b *Board) Load(gifts []models.Gift) {
	sorted := make([]models.Gift, len(gifts))
	copy(sorted, gifts)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].Number < sorted[j].Number
	})

	items := make([]Item, 0, len(sorted))
	index := make(map[int]int, len(sorted))

	for _, g := range sorted {
		next := Item{Gift: g, State: Wrapped}

		prev, known := b.lookup(g.Number)
		switch {
		case g.OpenedAt != nil:
			next.State = Opened
			next.Confirmed = true
		case !known:
		case prev.State == Opened && prev.Confirmed:
			// подтверждённое открытие не откатываем, даже если снимок отстал
			next = prev
			next.Gift.PublicURL = g.PublicURL
			next.Gift.Caption = g.Caption
		case prev.State == Opening, prev.State == ConfirmPending:
			next.State = prev.State
			next.Gift.OpenedAt = prev.Gift.OpenedAt
		}

		index[g.Number] = len(items)
		items = append(items, next)
	}

	b.items = items
	b.index = index

	if b.pending != 0 && b.stateOf(b.pending) != ConfirmPending {
		b.pending = 0
	}
	if b.unwrapping != 0 && b.stateOf(b.unwrapping) != Wrapped {
		b.unwrapping = 0
	}
	if b.viewing != 0 && b.stateOf(b.viewing) != Opened {
		b.viewing = 0
	}

	b.needsResync = false
}

// Tap handles a click on gift n.
func (b *Board) Tap(n int) Action {
	i, ok := b.index[n]
	if !ok || b.inFlight[n] || b.unwrapping != 0 {
		return ActionNone
	}

	switch b.items[i].State {
	case Opened:
		b.viewing = n
		return ActionView
	case Wrapped:
		if b.pending != 0 {
			return ActionNone
		}
		b.unwrapping = n
		return ActionUnwrap
	default:
		return ActionNone
	}
}

// UnwrapDone ends the unwrap animation for n and asks for confirmation.
func (b *Board) UnwrapDone(n int) bool {
	if b.unwrapping != n || n == 0 {
		return false
	}
	b.unwrapping = 0

	i, ok := b.index[n]
	if !ok || b.items[i].State != Wrapped || b.pending != 0 {
		return false
	}

	b.items[i].State = ConfirmPending
	b.pending = n

	return true
}

// Cancel dismisses the confirmation without any server call.
func (b *Board) Cancel() {
	if b.pending == 0 {
		return
	}

	if i, ok := b.index[b.pending]; ok && b.items[i].State == ConfirmPending {
		b.items[i].State = Wrapped
	}
	b.pending = 0
}

// Confirm moves the pending gift to Opening with an optimistic timestamp
// and returns the number the caller must open on the server.
func (b *Board) Confirm() (int, bool) {
	n := b.pending
	if n == 0 {
		return 0, false
	}
	b.pending = 0

	i, ok := b.index[n]
	if !ok || b.items[i].State != ConfirmPending {
		return 0, false
	}

	optimistic := b.now().UTC()
	b.items[i].State = Opening
	b.items[i].Confirmed = false
	b.items[i].Gift.OpenedAt = &optimistic
	b.inFlight[n] = true

	return n, true
}

// Resolve applies the server's canonical timestamp and shows the viewer.
func (b *Board) Resolve(n int, openedAt time.Time) {
	delete(b.inFlight, n)

	i, ok := b.index[n]
	if !ok {
		return
	}

	at := openedAt.UTC()
	b.items[i].Gift.OpenedAt = &at
	b.items[i].State = Opened
	b.items[i].Confirmed = true
	b.viewing = n
}

// Fail keeps the optimistic value on screen but marks it unconfirmed;
// the next Load decides what the gift really is.
func (b *Board) Fail(n int, err error) {
	delete(b.inFlight, n)
	b.lastErr = err
	b.needsResync = true

	i, ok := b.index[n]
	if !ok || b.items[i].State != Opening {
		return
	}

	b.items[i].State = Opened
	b.items[i].Confirmed = false
}

// View opens the viewer for an opened gift.
func (b *Board) View(n int) bool {
	if b.stateOf(n) != Opened {
		return false
	}
	b.viewing = n
	return true
}

func (b *Board) CloseViewer() {
	b.viewing = 0
}

func (b *Board) ClearError() {
	b.lastErr = nil
}

func (b *Board) Items() []Item {
	out := make([]Item, len(b.items))
	copy(out, b.items)
	return out
}

func (b *Board) Item(n int) (Item, bool) {
	return b.lookup(n)
}

func (b *Board) Len() int { return len(b.items) }

// Pending returns the gift awaiting confirmation, 0 if none.
func (b *Board) Pending() int { return b.pending }

func (b *Board) Unwrapping() int { return b.unwrapping }

func (b *Board) Viewing() int { return b.viewing }

func (b *Board) InFlight(n int) bool { return b.inFlight[n] }

func (b *Board) Err() error { return b.lastErr }

func (b *Board) NeedsResync() bool { return b.needsResync }

func (b *Board) OpenedCount() int {
	count := 0
	for _, it := range b.items {
		if it.Gift.OpenedAt != nil {
			count++
		}
	}
	return count
}

// Total is the number of gifts on the board, or the configured total
// while nothing has been loaded.
func (b *Board) Total() int {
	if len(b.items) > 0 {
		return len(b.items)
	}
	return b.total
}

func (b *Board) lookup(n int) (Item, bool) {
	i, ok := b.index[n]
	if !ok {
		return Item{}, false
	}
	return b.items[i], true
}

func (b *Board) stateOf(n int) State {
	it, ok := b.lookup(n)
	if !ok {
		return Wrapped
	}
	return it.State
}
