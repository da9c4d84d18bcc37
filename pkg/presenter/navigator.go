package presenter

import (
	"context"
	"log/slog"
	"sync"

	"doxa/pkg/model"
	"doxa/pkg/store"
)

// Direction of a navigation command.
type Direction string

const (
	Next Direction = "next"
	Prev Direction = "prev"
)

// Valid reports whether d is one of the two accepted directions.
func (d Direction) Valid() bool { return d == Next || d == Prev }

// Repos is the read surface the presenter navigates over. store.Store
// satisfies it.
type Repos interface {
	store.SongStore
	store.BibleStore
	store.QueueStore
	store.VerseteTineriStore
}

// Presenter implements the navigation commands over the shared state.
// Queue navigation walks the flattened queue index; temporary navigation
// walks the active TemporaryContent and is protected by the race guard.
type Presenter struct {
	state        *StateStore
	guard        *RaceGuard
	repos        Repos
	chorusExpand bool
	log          *slog.Logger

	// mu serializes whole navigation commands: each command reads the
	// state, computes the move and writes the result, and no other
	// command's write may land inside that sequence. The race guard only
	// filters stale stamps; it does not order admitted commands.
	//
	// mu also guards lastIdx. Chorus expansion repeats slide ids in the
	// index, so the state's cursors alone cannot tell repeated chorus
	// units apart; lastIdx remembers where the previous command landed.
	// It is a hint only, validated against the fresh index before use.
	mu      sync.Mutex
	lastIdx int
}

// New wires a Presenter over the state store and repositories.
func New(state *StateStore, repos Repos, chorusExpand bool) *Presenter {
	return &Presenter{
		state:        state,
		guard:        &RaceGuard{},
		repos:        repos,
		chorusExpand: chorusExpand,
		log:          slog.Default().With("component", "presenter"),
		lastIdx:      -1,
	}
}

// State returns a snapshot of the current presentation state.
func (p *Presenter) State() *model.PresentationState {
	return p.state.Get()
}

// Update applies a raw partial state write, bypassing navigation logic.
func (p *Presenter) Update(ctx context.Context, upd model.StateUpdate) *model.PresentationState {
	return p.state.Update(ctx, upd)
}

// OnChange registers a state-change callback. Register before serving.
func (p *Presenter) OnChange(fn func(*model.PresentationState)) {
	p.state.OnChange(fn)
}

// NavigateQueue advances or retreats the queue cursor by one unit.
// Stepping past the last unit hides output and clears all cursors;
// stepping back from the first unit is a no-op. Read failures leave the
// state untouched.
func (p *Presenter) NavigateQueue(ctx context.Context, dir Direction) (*model.PresentationState, error) {
	p.mu.Lock()
	defer p.mu.Unlock()

	units, err := p.buildQueueIndex(ctx)
	if err != nil {
		p.log.Error("queue navigation aborted", "direction", dir, "error", err)
		return p.state.Get(), err
	}
	if len(units) == 0 {
		return p.state.Get(), nil
	}

	cur := p.locate(p.state.Get(), units)

	switch dir {
	case Next:
		if cur+1 >= len(units) {
			// Walked off the end: the service moment is over.
			p.lastIdx = -1
			return p.state.Update(ctx, model.StateUpdate{
				CurrentQueueItemID:          model.Set[*string](nil),
				CurrentSongSlideID:          model.Set[*string](nil),
				LastSongSlideID:             model.Set[*string](nil),
				CurrentBiblePassageVerseID:  model.Set[*string](nil),
				CurrentVerseteTineriEntryID: model.Set[*string](nil),
				IsHidden:                    model.Set(true),
			}), nil
		}
		return p.applyUnit(ctx, cur+1, units[cur+1]), nil
	case Prev:
		if cur <= 0 {
			// Already at (or before) the first unit; re-applying would
			// only churn UpdatedAt.
			if cur == 0 {
				return p.state.Get(), nil
			}
			return p.applyUnit(ctx, 0, units[0]), nil
		}
		return p.applyUnit(ctx, cur-1, units[cur-1]), nil
	default:
		return p.state.Get(), nil
	}
}

// locate finds the index of the unit the state currently points at. The
// hint from the previous command wins when it still agrees with both the
// fresh index and the state, which is what disambiguates repeated chorus
// units; otherwise the cursors are scanned. Caller holds mu.
func (p *Presenter) locate(st *model.PresentationState, units []QueueUnit) int {
	if p.lastIdx >= 0 && p.lastIdx < len(units) && unitMatchesState(st, units[p.lastIdx]) {
		return p.lastIdx
	}
	return scan(st, units)
}

func unitMatchesState(st *model.PresentationState, u QueueUnit) bool {
	if st.CurrentQueueItemID == nil || *st.CurrentQueueItemID != u.QueueItemID {
		return false
	}
	switch {
	case u.SlideID != "":
		return st.CurrentSongSlideID != nil && *st.CurrentSongSlideID == u.SlideID
	case u.VerseID != "":
		return st.CurrentBiblePassageVerseID != nil && *st.CurrentBiblePassageVerseID == u.VerseID
	case u.EntryID != "":
		return st.CurrentVerseteTineriEntryID != nil && *st.CurrentVerseteTineriEntryID == u.EntryID
	}
	return true
}

// scan finds the index of the unit the state currently points at, or -1
// when no cursor matches (empty state, or the queue changed underneath).
// Cursor specificity wins over the bare queue item id: a song slide or
// verse cursor pins the exact unit, the item id alone matches the item's
// first unit. Repeated chorus units resolve to the first occurrence.
func scan(st *model.PresentationState, units []QueueUnit) int {
	if st.CurrentSongSlideID != nil {
		for i, u := range units {
			if u.SlideID == *st.CurrentSongSlideID && matchesItem(st, u) {
				return i
			}
		}
	}
	if st.CurrentBiblePassageVerseID != nil {
		for i, u := range units {
			if u.VerseID == *st.CurrentBiblePassageVerseID && matchesItem(st, u) {
				return i
			}
		}
	}
	if st.CurrentVerseteTineriEntryID != nil {
		for i, u := range units {
			if u.EntryID == *st.CurrentVerseteTineriEntryID && matchesItem(st, u) {
				return i
			}
		}
	}
	if st.CurrentQueueItemID != nil {
		for i, u := range units {
			if u.QueueItemID == *st.CurrentQueueItemID {
				return i
			}
		}
	}
	return -1
}

func matchesItem(st *model.PresentationState, u QueueUnit) bool {
	return st.CurrentQueueItemID == nil || *st.CurrentQueueItemID == u.QueueItemID
}

// applyUnit writes the cursors for one queue unit. Exactly one sub-cursor
// is set; the others are cleared so renderers never see a stale mix.
// Applying a unit always shows output and ends any temporary session.
// Caller holds mu.
func (p *Presenter) applyUnit(ctx context.Context, idx int, u QueueUnit) *model.PresentationState {
	p.lastIdx = idx
	upd := model.StateUpdate{
		CurrentQueueItemID:          model.Set(model.StrPtr(u.QueueItemID)),
		CurrentSongSlideID:          model.Set[*string](nil),
		LastSongSlideID:             model.Set[*string](nil),
		CurrentBiblePassageVerseID:  model.Set[*string](nil),
		CurrentVerseteTineriEntryID: model.Set[*string](nil),
		IsPresenting:                model.Set(true),
		IsHidden:                    model.Set(false),
		Temporary:                   model.Set[*model.TemporaryContent](nil),
	}
	switch {
	case u.SlideID != "":
		upd.CurrentSongSlideID = model.Set(model.StrPtr(u.SlideID))
	case u.VerseID != "":
		upd.CurrentBiblePassageVerseID = model.Set(model.StrPtr(u.VerseID))
	case u.EntryID != "":
		upd.CurrentVerseteTineriEntryID = model.Set(model.StrPtr(u.EntryID))
	}
	return p.state.Update(ctx, upd)
}

// ClearSlide blanks the projector without losing the position: the
// current song slide is remembered in lastSongSlideId for ShowSlide.
func (p *Presenter) ClearSlide(ctx context.Context) *model.PresentationState {
	p.mu.Lock()
	defer p.mu.Unlock()

	st := p.state.Get()
	upd := model.StateUpdate{
		CurrentSongSlideID: model.Set[*string](nil),
		IsHidden:           model.Set(true),
	}
	if st.CurrentSongSlideID != nil {
		upd.LastSongSlideID = model.Set(model.StrPtr(*st.CurrentSongSlideID))
	}
	return p.state.Update(ctx, upd)
}

// ShowSlide unhides output, restoring the remembered song slide when the
// current one was cleared.
func (p *Presenter) ShowSlide(ctx context.Context) *model.PresentationState {
	p.mu.Lock()
	defer p.mu.Unlock()

	st := p.state.Get()
	upd := model.StateUpdate{
		IsHidden: model.Set(false),
	}
	if st.CurrentSongSlideID == nil && st.LastSongSlideID != nil {
		upd.CurrentSongSlideID = model.Set(model.StrPtr(*st.LastSongSlideID))
	}
	return p.state.Update(ctx, upd)
}

// Stop ends the presentation entirely: no cursors, no temporary content,
// not presenting.
func (p *Presenter) Stop(ctx context.Context) *model.PresentationState {
	p.mu.Lock()
	defer p.mu.Unlock()

	p.lastIdx = -1
	return p.state.Update(ctx, model.StateUpdate{
		CurrentQueueItemID:          model.Set[*string](nil),
		CurrentSongSlideID:          model.Set[*string](nil),
		LastSongSlideID:             model.Set[*string](nil),
		CurrentBiblePassageVerseID:  model.Set[*string](nil),
		CurrentVerseteTineriEntryID: model.Set[*string](nil),
		IsPresenting:                model.Set(false),
		IsHidden:                    model.Set(false),
		Temporary:                   model.Set[*model.TemporaryContent](nil),
	})
}

// ClearTemporary ends the temporary session and returns rendering to the
// queue cursors, which were preserved underneath.
func (p *Presenter) ClearTemporary(ctx context.Context) *model.PresentationState {
	p.mu.Lock()
	defer p.mu.Unlock()

	return p.state.Update(ctx, model.StateUpdate{
		Temporary: model.Set[*model.TemporaryContent](nil),
	})
}
