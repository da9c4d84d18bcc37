package presenter

import (
	"context"
	"fmt"

	"doxa/pkg/model"
)

// presentTemporary installs content as a fresh temporary session. The song
// slide cursor is cleared so a later ShowSlide cannot resurrect a slide
// from before the session, the race guard watermark restarts, and output
// is always shown.
func (p *Presenter) presentTemporary(ctx context.Context, tc *model.TemporaryContent) *model.PresentationState {
	p.mu.Lock()
	defer p.mu.Unlock()

	p.guard.Reset()
	return p.state.Update(ctx, model.StateUpdate{
		CurrentSongSlideID: model.Set[*string](nil),
		IsPresenting:       model.Set(true),
		IsHidden:           model.Set(false),
		Temporary:          model.Set(tc),
	})
}

// PresentBible shows a single verse with its chapter context loaded for
// continuous navigation across chapter boundaries.
func (p *Presenter) PresentBible(ctx context.Context, translation, book string, chapter, verse int) (*model.PresentationState, error) {
	verses, err := p.repos.GetVersesInChapter(ctx, translation, book, chapter)
	if err != nil {
		return p.state.Get(), fmt.Errorf("failed to load %s %s %d: %w", translation, book, chapter, err)
	}
	if len(verses) == 0 {
		return p.state.Get(), fmt.Errorf("no verses for %s %s %d", translation, book, chapter)
	}
	count, err := p.repos.GetChapterCount(ctx, translation, book)
	if err != nil {
		return p.state.Get(), fmt.Errorf("failed to resolve chapter count for %s %s: %w", translation, book, err)
	}

	idx := 0
	for i, v := range verses {
		if v.Number == verse {
			idx = i
			break
		}
	}

	return p.presentTemporary(ctx, &model.TemporaryContent{
		Kind: model.TemporaryBible,
		Bible: &model.BibleContent{
			Translation:       translation,
			Book:              book,
			Chapter:           chapter,
			ChapterCount:      count,
			Verses:            verses,
			CurrentVerseIndex: idx,
		},
	}), nil
}

// PresentSong shows a song outside the queue, slides in presentation
// order (chorus-expanded when enabled).
func (p *Presenter) PresentSong(ctx context.Context, songID string) (*model.PresentationState, error) {
	song, err := p.repos.GetSong(ctx, songID)
	if err != nil {
		return p.state.Get(), fmt.Errorf("failed to load song %s: %w", songID, err)
	}
	if song == nil {
		return p.state.Get(), fmt.Errorf("song %s not found", songID)
	}
	slides, err := p.repos.GetSongSlides(ctx, songID)
	if err != nil {
		return p.state.Get(), fmt.Errorf("failed to load slides for song %s: %w", songID, err)
	}
	if len(slides) == 0 {
		return p.state.Get(), fmt.Errorf("song %s has no slides", songID)
	}

	return p.presentTemporary(ctx, &model.TemporaryContent{
		Kind: model.TemporarySong,
		Song: &model.SongContent{
			SongID:            song.ID,
			Title:             song.Title,
			Slides:            p.expandSlides(slides),
			CurrentSlideIndex: 0,
		},
	}), nil
}

// PresentPassage shows a fixed verse selection under one display
// reference. Verse order follows the caller's id order.
func (p *Presenter) PresentPassage(ctx context.Context, verseIDs []string, reference string) (*model.PresentationState, error) {
	verses, err := p.repos.GetVersesByIDs(ctx, verseIDs)
	if err != nil {
		return p.state.Get(), fmt.Errorf("failed to load passage verses: %w", err)
	}
	if len(verses) == 0 {
		return p.state.Get(), fmt.Errorf("passage resolved to no verses")
	}

	return p.presentTemporary(ctx, &model.TemporaryContent{
		Kind: model.TemporaryBiblePassage,
		Passage: &model.PassageContent{
			Reference:         reference,
			Verses:            verses,
			CurrentVerseIndex: 0,
		},
	}), nil
}

// PresentVerseteTineri shows a youth-verses group entry by entry.
func (p *Presenter) PresentVerseteTineri(ctx context.Context, groupID string) (*model.PresentationState, error) {
	group, err := p.repos.GetVerseteTineriGroup(ctx, groupID)
	if err != nil {
		return p.state.Get(), fmt.Errorf("failed to load group %s: %w", groupID, err)
	}
	if group == nil || len(group.Entries) == 0 {
		return p.state.Get(), fmt.Errorf("group %s not found or empty", groupID)
	}

	return p.presentTemporary(ctx, &model.TemporaryContent{
		Kind: model.TemporaryVerseteTineri,
		VerseteTineri: &model.VerseteTineriContent{
			GroupID:           group.ID,
			Title:             group.Title,
			Entries:           group.Entries,
			CurrentEntryIndex: 0,
		},
	}), nil
}

// PresentAnnouncement shows a single free-text slide.
func (p *Presenter) PresentAnnouncement(ctx context.Context, title, text string) (*model.PresentationState, error) {
	return p.presentTemporary(ctx, &model.TemporaryContent{
		Kind:         model.TemporaryAnnouncement,
		Announcement: &model.AnnouncementContent{Title: title, Text: text},
	}), nil
}

// NavigateTemporary moves within the active temporary content. The stamp
// orders racing commands within the session; stale commands return the
// unchanged state. Running past the end of finite content hides output
// and ends the session; stepping before the start clamps. Bible content
// instead flows into the adjacent chapter, within the book.
func (p *Presenter) NavigateTemporary(ctx context.Context, dir Direction, stamp int64) (*model.PresentationState, error) {
	p.mu.Lock()
	defer p.mu.Unlock()

	if !p.guard.Admit(stamp) {
		p.log.Debug("stale temporary navigation dropped", "direction", dir, "stamp", stamp)
		return p.state.Get(), nil
	}

	st := p.state.Get()
	tc := st.Temporary
	if tc == nil {
		return st, nil
	}

	switch tc.Kind {
	case model.TemporaryBible:
		return p.navigateBible(ctx, tc, dir)

	case model.TemporarySong:
		if tc.Song == nil {
			return st, nil
		}
		return p.stepFinite(ctx, tc, dir, &tc.Song.CurrentSlideIndex, len(tc.Song.Slides)), nil

	case model.TemporaryBiblePassage:
		if tc.Passage == nil {
			return st, nil
		}
		return p.stepFinite(ctx, tc, dir, &tc.Passage.CurrentVerseIndex, len(tc.Passage.Verses)), nil

	case model.TemporaryVerseteTineri:
		if tc.VerseteTineri == nil {
			return st, nil
		}
		return p.stepFinite(ctx, tc, dir, &tc.VerseteTineri.CurrentEntryIndex, len(tc.VerseteTineri.Entries)), nil

	case model.TemporaryAnnouncement:
		// Single slide, nothing to navigate.
		return st, nil

	default:
		return st, nil
	}
}

// stepFinite moves a cursor over fixed-length content. tc is this
// goroutine's snapshot, safe to mutate and write back.
func (p *Presenter) stepFinite(ctx context.Context, tc *model.TemporaryContent, dir Direction, idx *int, length int) *model.PresentationState {
	switch dir {
	case Next:
		if *idx+1 >= length {
			return p.hideAndClearTemporary(ctx)
		}
		*idx++
	case Prev:
		if *idx == 0 {
			return p.state.Get()
		}
		*idx--
	}
	return p.state.Update(ctx, model.StateUpdate{Temporary: model.Set(tc)})
}

// navigateBible steps verse by verse and crosses chapter boundaries in
// both directions. Past the last verse of the last chapter the session
// ends; before verse one of chapter one nothing happens.
func (p *Presenter) navigateBible(ctx context.Context, tc *model.TemporaryContent, dir Direction) (*model.PresentationState, error) {
	b := tc.Bible
	if b == nil {
		return p.state.Get(), nil
	}

	switch dir {
	case Next:
		if b.CurrentVerseIndex+1 < len(b.Verses) {
			b.CurrentVerseIndex++
			return p.state.Update(ctx, model.StateUpdate{Temporary: model.Set(tc)}), nil
		}
		if b.Chapter+1 > b.ChapterCount {
			return p.hideAndClearTemporary(ctx), nil
		}
		verses, err := p.repos.GetVersesInChapter(ctx, b.Translation, b.Book, b.Chapter+1)
		if err != nil || len(verses) == 0 {
			p.log.Error("failed to load next chapter", "book", b.Book, "chapter", b.Chapter+1, "error", err)
			return p.state.Get(), err
		}
		b.Chapter++
		b.Verses = verses
		b.CurrentVerseIndex = 0
		return p.state.Update(ctx, model.StateUpdate{Temporary: model.Set(tc)}), nil

	case Prev:
		if b.CurrentVerseIndex > 0 {
			b.CurrentVerseIndex--
			return p.state.Update(ctx, model.StateUpdate{Temporary: model.Set(tc)}), nil
		}
		if b.Chapter <= 1 {
			return p.state.Get(), nil
		}
		verses, err := p.repos.GetVersesInChapter(ctx, b.Translation, b.Book, b.Chapter-1)
		if err != nil || len(verses) == 0 {
			p.log.Error("failed to load previous chapter", "book", b.Book, "chapter", b.Chapter-1, "error", err)
			return p.state.Get(), err
		}
		b.Chapter--
		b.Verses = verses
		b.CurrentVerseIndex = len(verses) - 1
		return p.state.Update(ctx, model.StateUpdate{Temporary: model.Set(tc)}), nil
	}
	return p.state.Get(), nil
}

// hideAndClearTemporary ends the session with output hidden, so walking
// off the end of temporary content does not flash the queue content that
// was active underneath.
func (p *Presenter) hideAndClearTemporary(ctx context.Context) *model.PresentationState {
	return p.state.Update(ctx, model.StateUpdate{
		IsHidden:  model.Set(true),
		Temporary: model.Set[*model.TemporaryContent](nil),
	})
}
