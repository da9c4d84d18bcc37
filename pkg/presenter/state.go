package presenter

import (
	"context"
	"encoding/json"
	"log/slog"
	"sync"
	"time"

	"doxa/pkg/model"
	"doxa/pkg/store"
)

// stateKey is the persistent_state row holding the presentation record.
const stateKey = "presentation"

// StateStore is the single authoritative holder of the PresentationState.
// All writes go through Update, serialized by one mutex, so read-modify-
// write sequences from concurrent controller clients never interleave.
type StateStore struct {
	mu       sync.Mutex
	state    *model.PresentationState
	songs    store.SongStore
	persist  store.StateStore
	onChange []func(*model.PresentationState)

	// now is a test seam for the monotonic timestamp.
	now func() time.Time
}

// NewStateStore creates the store and restores the last persisted state,
// so a server restart puts the same content back on screen.
func NewStateStore(ctx context.Context, songs store.SongStore, persist store.StateStore) *StateStore {
	s := &StateStore{
		state:   &model.PresentationState{},
		songs:   songs,
		persist: persist,
		now:     time.Now,
	}

	if persist != nil {
		if raw, ok := persist.GetState(ctx, stateKey); ok {
			var restored model.PresentationState
			if err := json.Unmarshal([]byte(raw), &restored); err != nil {
				slog.Warn("StateStore: discarding unreadable persisted state", "error", err)
			} else {
				s.state = &restored
			}
		}
	}
	return s
}

// OnChange registers a callback invoked with a snapshot after every write.
// Register before serving traffic; registration is not synchronized.
func (s *StateStore) OnChange(fn func(*model.PresentationState)) {
	s.onChange = append(s.onChange, fn)
}

// Get returns a snapshot of the current state.
func (s *StateStore) Get() *model.PresentationState {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state.Clone()
}

// Update applies a partial write. Fields absent from upd keep their value;
// fields explicitly set to null are cleared. UpdatedAt always moves
// strictly forward, bumping past "now" when two writes land in the same
// tick. When currentSongSlideId changes to a new non-null value while not
// hidden, the owning song's play count is incremented fire-and-forget.
func (s *StateStore) Update(ctx context.Context, upd model.StateUpdate) *model.PresentationState {
	s.mu.Lock()

	prevSlide := s.state.CurrentSongSlideID

	if v, ok := upd.CurrentQueueItemID.Get(); ok {
		s.state.CurrentQueueItemID = v
	}
	if v, ok := upd.CurrentSongSlideID.Get(); ok {
		s.state.CurrentSongSlideID = v
	}
	if v, ok := upd.LastSongSlideID.Get(); ok {
		s.state.LastSongSlideID = v
	}
	if v, ok := upd.CurrentBiblePassageVerseID.Get(); ok {
		s.state.CurrentBiblePassageVerseID = v
	}
	if v, ok := upd.CurrentVerseteTineriEntryID.Get(); ok {
		s.state.CurrentVerseteTineriEntryID = v
	}
	if v, ok := upd.IsPresenting.Get(); ok {
		s.state.IsPresenting = v
	}
	if v, ok := upd.IsHidden.Get(); ok {
		s.state.IsHidden = v
	}
	if v, ok := upd.Temporary.Get(); ok {
		s.state.Temporary = v
	}

	next := s.now()
	if !next.After(s.state.UpdatedAt) {
		next = s.state.UpdatedAt.Add(time.Millisecond)
	}
	s.state.UpdatedAt = next

	snapshot := s.state.Clone()

	// Persist inside the critical section so writes land in order.
	// Persistence failure must not fail the state update.
	if s.persist != nil {
		if raw, err := json.Marshal(snapshot); err == nil {
			if err := s.persist.SetState(ctx, stateKey, string(raw)); err != nil {
				slog.Error("StateStore: failed to persist state", "error", err)
			}
		}
	}

	s.mu.Unlock()

	newSlide := snapshot.CurrentSongSlideID
	if newSlide != nil && !snapshot.IsHidden &&
		(prevSlide == nil || *prevSlide != *newSlide) {
		go s.bumpPlayCount(*newSlide)
	}

	for _, fn := range s.onChange {
		fn(snapshot)
	}
	return snapshot
}

// bumpPlayCount resolves the slide's owning song and increments its play
// count. Best effort: failures are logged, never surfaced.
func (s *StateStore) bumpPlayCount(slideID string) {
	if s.songs == nil {
		return
	}
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	slide, err := s.songs.GetSlide(ctx, slideID)
	if err != nil || slide == nil {
		slog.Warn("StateStore: play count skipped, slide not found", "slide_id", slideID, "error", err)
		return
	}
	if err := s.songs.IncrementPlayCount(ctx, slide.SongID); err != nil {
		slog.Warn("StateStore: play count increment failed", "song_id", slide.SongID, "error", err)
	}
}
