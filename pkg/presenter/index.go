package presenter

import (
	"context"
	"fmt"

	"doxa/pkg/chorus"
	"doxa/pkg/model"
)

// QueueUnit is the flattened, navigable granularity derived from a queue
// item: one song slide, one passage verse, one youth-verse entry, or the
// whole standalone item. It is a view, rebuilt on every navigation call,
// never stored.
type QueueUnit struct {
	QueueItemID string
	Kind        model.QueueItemKind

	// Exactly one of these identifies the sub-position, matching the
	// cursor field it drives; all empty for standalone units.
	SlideID string
	VerseID string
	EntryID string

	// SourceIndex maps a song slide back to its stored position.
	SourceIndex int
}

// buildQueueIndex flattens the current queue contents into one ordered
// list of navigable units. The queue can mutate between calls, so the
// index is recomputed from fresh repository reads every time.
func (p *Presenter) buildQueueIndex(ctx context.Context) ([]QueueUnit, error) {
	items, err := p.repos.GetQueueItems(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load queue: %w", err)
	}

	var units []QueueUnit
	for _, item := range items {
		switch item.Kind {
		case model.QueueSong:
			slides, err := p.repos.GetSongSlides(ctx, item.SongID)
			if err != nil {
				return nil, fmt.Errorf("failed to load slides for song %s: %w", item.SongID, err)
			}
			for _, sl := range p.expandSlides(slides) {
				units = append(units, QueueUnit{
					QueueItemID: item.ID,
					Kind:        item.Kind,
					SlideID:     sl.ID,
					SourceIndex: sl.SourceIndex,
				})
			}

		case model.QueueBiblePassage:
			for _, verseID := range item.VerseIDs {
				units = append(units, QueueUnit{
					QueueItemID: item.ID,
					Kind:        item.Kind,
					VerseID:     verseID,
				})
			}

		case model.QueueVerseteTineri:
			group, err := p.repos.GetVerseteTineriGroup(ctx, item.GroupID)
			if err != nil {
				return nil, fmt.Errorf("failed to load group %s: %w", item.GroupID, err)
			}
			if group == nil {
				continue
			}
			for _, e := range group.Entries {
				units = append(units, QueueUnit{
					QueueItemID: item.ID,
					Kind:        item.Kind,
					EntryID:     e.ID,
				})
			}

		case model.QueueSlide, model.QueueBibleVerse:
			// Standalone items contribute exactly one unit regardless of
			// any join fan-out.
			units = append(units, QueueUnit{QueueItemID: item.ID, Kind: item.Kind})

		default:
			units = append(units, QueueUnit{QueueItemID: item.ID, Kind: item.Kind})
		}
	}
	return units, nil
}

// expandSlides applies chorus expansion when enabled, otherwise the
// identity presentation order.
func (p *Presenter) expandSlides(slides []model.Slide) []model.PresentedSlide {
	if p.chorusExpand {
		return chorus.Expand(slides)
	}
	out := make([]model.PresentedSlide, len(slides))
	for i, s := range slides {
		out[i] = model.PresentedSlide{Slide: s, SourceIndex: i}
	}
	return out
}
