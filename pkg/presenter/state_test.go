package presenter

import (
	"context"
	"testing"
	"time"

	"doxa/pkg/model"
)

func TestUpdatePartialSemantics(t *testing.T) {
	p, _ := newTestPresenter(t)
	ctx := context.Background()

	st := p.Update(ctx, model.StateUpdate{
		CurrentQueueItemID: model.Set(model.StrPtr("q1")),
		CurrentSongSlideID: model.Set(model.StrPtr("s1")),
		IsPresenting:       model.Set(true),
	})
	if st.CurrentQueueItemID == nil || *st.CurrentQueueItemID != "q1" {
		t.Fatalf("queue item = %v", st.CurrentQueueItemID)
	}

	// Omitted fields keep their value.
	st = p.Update(ctx, model.StateUpdate{IsHidden: model.Set(true)})
	if st.CurrentQueueItemID == nil || *st.CurrentQueueItemID != "q1" {
		t.Errorf("omitted field changed: %v", st.CurrentQueueItemID)
	}
	if st.CurrentSongSlideID == nil || *st.CurrentSongSlideID != "s1" {
		t.Errorf("omitted field changed: %v", st.CurrentSongSlideID)
	}

	// Explicit null clears.
	st = p.Update(ctx, model.StateUpdate{CurrentSongSlideID: model.Set[*string](nil)})
	if st.CurrentSongSlideID != nil {
		t.Errorf("explicit null not cleared: %v", *st.CurrentSongSlideID)
	}
	if st.CurrentQueueItemID == nil {
		t.Error("sibling field cleared by unrelated null")
	}
}

func TestUpdateOmittedVsNullJSON(t *testing.T) {
	var upd model.StateUpdate
	if err := unmarshalUpdate(`{"currentSongSlideId":null,"isHidden":true}`, &upd); err != nil {
		t.Fatal(err)
	}
	if !upd.CurrentSongSlideID.IsSet() {
		t.Error("explicit null should be marked set")
	}
	if v, _ := upd.CurrentSongSlideID.Get(); v != nil {
		t.Errorf("null should carry nil, got %v", v)
	}
	if upd.CurrentQueueItemID.IsSet() {
		t.Error("omitted field should not be set")
	}
	if v, ok := upd.IsHidden.Get(); !ok || !v {
		t.Error("isHidden lost")
	}
}

func TestUpdatedAtMonotonic(t *testing.T) {
	p, _ := newTestPresenter(t)
	ctx := context.Background()

	// Freeze the clock so successive writes collide on the same tick.
	frozen := time.Date(2026, 8, 30, 10, 0, 0, 0, time.UTC)
	p.state.now = func() time.Time { return frozen }

	first := p.Update(ctx, model.StateUpdate{IsPresenting: model.Set(true)})
	second := p.Update(ctx, model.StateUpdate{IsHidden: model.Set(true)})

	if !second.UpdatedAt.After(first.UpdatedAt) {
		t.Errorf("UpdatedAt not monotonic: %v then %v", first.UpdatedAt, second.UpdatedAt)
	}
	if got := second.UpdatedAt.Sub(first.UpdatedAt); got != time.Millisecond {
		t.Errorf("same-tick bump = %v, want 1ms", got)
	}
}

func TestPlayCountBump(t *testing.T) {
	p, repos := newTestPresenter(t)
	ctx := context.Background()
	repos.addSong("song1", "Osana", "V1", "C1")

	p.Update(ctx, model.StateUpdate{
		CurrentSongSlideID: model.Set(model.StrPtr("song1-s0")),
		IsHidden:           model.Set(false),
	})
	waitFor(t, func() bool { return repos.playCount("song1") == 1 })

	// Same slide again: no additional bump.
	p.Update(ctx, model.StateUpdate{CurrentSongSlideID: model.Set(model.StrPtr("song1-s0"))})
	time.Sleep(50 * time.Millisecond)
	if got := repos.playCount("song1"); got != 1 {
		t.Errorf("re-setting same slide bumped count to %d", got)
	}

	// Different slide while hidden: no bump.
	p.Update(ctx, model.StateUpdate{
		CurrentSongSlideID: model.Set(model.StrPtr("song1-s1")),
		IsHidden:           model.Set(true),
	})
	time.Sleep(50 * time.Millisecond)
	if got := repos.playCount("song1"); got != 1 {
		t.Errorf("hidden slide change bumped count to %d", got)
	}
}

func TestStatePersistedAndRestored(t *testing.T) {
	repos := newFakeRepos()
	ctx := context.Background()

	first := NewStateStore(ctx, repos, repos)
	first.Update(ctx, model.StateUpdate{
		CurrentQueueItemID: model.Set(model.StrPtr("q7")),
		IsPresenting:       model.Set(true),
	})

	// A new store over the same persistence sees the last state.
	second := NewStateStore(ctx, repos, repos)
	st := second.Get()
	if st.CurrentQueueItemID == nil || *st.CurrentQueueItemID != "q7" {
		t.Errorf("restored queue item = %v", st.CurrentQueueItemID)
	}
	if !st.IsPresenting {
		t.Error("restored state lost isPresenting")
	}
}

func TestGetReturnsSnapshot(t *testing.T) {
	p, _ := newTestPresenter(t)
	ctx := context.Background()

	p.Update(ctx, model.StateUpdate{CurrentQueueItemID: model.Set(model.StrPtr("q1"))})

	snap := p.State()
	*snap.CurrentQueueItemID = "mutated"
	if got := p.State().CurrentQueueItemID; *got != "q1" {
		t.Errorf("snapshot mutation leaked into store: %q", *got)
	}
}
