package store

import (
	"context"

	"doxa/pkg/model"
)

// SongStore handles song and slide persistence.
type SongStore interface {
	GetSong(ctx context.Context, id string) (*model.Song, error)
	GetSlide(ctx context.Context, id string) (*model.Slide, error)
	GetSongSlides(ctx context.Context, songID string) ([]model.Slide, error)
	ListSongs(ctx context.Context) ([]model.Song, error)
	SaveSong(ctx context.Context, song *model.Song, slides []model.Slide) error
	IncrementPlayCount(ctx context.Context, songID string) error
}

// BibleStore handles verse lookups for loaded translations.
type BibleStore interface {
	GetVerse(ctx context.Context, id string) (*model.Verse, error)
	GetVersesByIDs(ctx context.Context, ids []string) ([]model.Verse, error)
	GetVersesInChapter(ctx context.Context, translation, book string, chapter int) ([]model.Verse, error)
	GetChapterCount(ctx context.Context, translation, book string) (int, error)
	SaveVerses(ctx context.Context, verses []model.Verse) error
}

// QueueStore handles the presentation queue.
type QueueStore interface {
	GetQueueItems(ctx context.Context) ([]model.QueueItem, error)
	AddQueueItem(ctx context.Context, item *model.QueueItem) error
	RemoveQueueItem(ctx context.Context, id string) error
	ClearQueue(ctx context.Context) error
}

// VerseteTineriStore handles youth-verse groups.
type VerseteTineriStore interface {
	GetVerseteTineriGroup(ctx context.Context, id string) (*model.VerseteTineriGroup, error)
	SaveVerseteTineriGroup(ctx context.Context, group *model.VerseteTineriGroup) error
}

// StateStore handles persistent application state.
type StateStore interface {
	GetState(ctx context.Context, key string) (string, bool)
	SetState(ctx context.Context, key, val string) error
	DeleteState(ctx context.Context, key string) error
}
