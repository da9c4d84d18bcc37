package presenter

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"
	"testing"
	"time"

	"doxa/pkg/model"
)

// fakeRepos is an in-memory Repos + persistent-state implementation for
// presenter tests.
type fakeRepos struct {
	mu sync.Mutex

	songs  map[string]*model.Song
	slides map[string][]model.Slide // songID -> ordered slides
	verses map[string]model.Verse
	// translation/book -> chapter -> ordered verses
	chapters map[string]map[int][]model.Verse
	counts   map[string]int
	queue    []model.QueueItem
	groups   map[string]*model.VerseteTineriGroup

	kv         map[string]string
	playCounts map[string]int

	failQueue bool
	// chapterHook, when set, runs at the top of GetVersesInChapter so
	// tests can park a caller mid-fetch.
	chapterHook func()
}

func newFakeRepos() *fakeRepos {
	return &fakeRepos{
		songs:      map[string]*model.Song{},
		slides:     map[string][]model.Slide{},
		verses:     map[string]model.Verse{},
		chapters:   map[string]map[int][]model.Verse{},
		counts:     map[string]int{},
		groups:     map[string]*model.VerseteTineriGroup{},
		kv:         map[string]string{},
		playCounts: map[string]int{},
	}
}

func (f *fakeRepos) addSong(id, title string, labels ...string) {
	f.songs[id] = &model.Song{ID: id, Title: title}
	var slides []model.Slide
	for i, label := range labels {
		slides = append(slides, model.Slide{
			ID:       fmt.Sprintf("%s-s%d", id, i),
			SongID:   id,
			Position: i,
			Label:    label,
			Text:     fmt.Sprintf("text %d", i),
		})
	}
	f.slides[id] = slides
}

func (f *fakeRepos) addChapter(translation, book string, chapter, verseCount, chapterCount int) {
	key := translation + "/" + book
	if f.chapters[key] == nil {
		f.chapters[key] = map[int][]model.Verse{}
	}
	var vs []model.Verse
	for n := 1; n <= verseCount; n++ {
		v := model.Verse{
			ID:          fmt.Sprintf("%s-%d-%d", book, chapter, n),
			Translation: translation,
			Book:        book,
			Chapter:     chapter,
			Number:      n,
			Text:        fmt.Sprintf("%s %d:%d", book, chapter, n),
		}
		vs = append(vs, v)
		f.verses[v.ID] = v
	}
	f.chapters[key][chapter] = vs
	f.counts[key] = chapterCount
}

// SongStore

func (f *fakeRepos) GetSong(ctx context.Context, id string) (*model.Song, error) {
	return f.songs[id], nil
}

func (f *fakeRepos) GetSlide(ctx context.Context, id string) (*model.Slide, error) {
	for _, slides := range f.slides {
		for _, s := range slides {
			if s.ID == id {
				return &s, nil
			}
		}
	}
	return nil, nil
}

func (f *fakeRepos) GetSongSlides(ctx context.Context, songID string) ([]model.Slide, error) {
	return f.slides[songID], nil
}

func (f *fakeRepos) ListSongs(ctx context.Context) ([]model.Song, error) {
	var out []model.Song
	for _, s := range f.songs {
		out = append(out, *s)
	}
	return out, nil
}

func (f *fakeRepos) SaveSong(ctx context.Context, song *model.Song, slides []model.Slide) error {
	f.songs[song.ID] = song
	f.slides[song.ID] = slides
	return nil
}

func (f *fakeRepos) IncrementPlayCount(ctx context.Context, songID string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, ok := f.songs[songID]; !ok {
		return fmt.Errorf("song %s not found", songID)
	}
	f.playCounts[songID]++
	return nil
}

func (f *fakeRepos) playCount(songID string) int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.playCounts[songID]
}

// BibleStore

func (f *fakeRepos) GetVerse(ctx context.Context, id string) (*model.Verse, error) {
	if v, ok := f.verses[id]; ok {
		return &v, nil
	}
	return nil, nil
}

func (f *fakeRepos) GetVersesByIDs(ctx context.Context, ids []string) ([]model.Verse, error) {
	var out []model.Verse
	for _, id := range ids {
		if v, ok := f.verses[id]; ok {
			out = append(out, v)
		}
	}
	return out, nil
}

func (f *fakeRepos) GetVersesInChapter(ctx context.Context, translation, book string, chapter int) ([]model.Verse, error) {
	if f.chapterHook != nil {
		f.chapterHook()
	}
	return f.chapters[translation+"/"+book][chapter], nil
}

func (f *fakeRepos) GetChapterCount(ctx context.Context, translation, book string) (int, error) {
	count, ok := f.counts[translation+"/"+book]
	if !ok {
		return 0, fmt.Errorf("unknown book %s", book)
	}
	return count, nil
}

func (f *fakeRepos) SaveVerses(ctx context.Context, verses []model.Verse) error {
	for _, v := range verses {
		f.verses[v.ID] = v
	}
	return nil
}

// QueueStore

func (f *fakeRepos) GetQueueItems(ctx context.Context) ([]model.QueueItem, error) {
	if f.failQueue {
		return nil, fmt.Errorf("queue unavailable")
	}
	return f.queue, nil
}

func (f *fakeRepos) AddQueueItem(ctx context.Context, item *model.QueueItem) error {
	f.queue = append(f.queue, *item)
	return nil
}

func (f *fakeRepos) RemoveQueueItem(ctx context.Context, id string) error {
	for i, item := range f.queue {
		if item.ID == id {
			f.queue = append(f.queue[:i], f.queue[i+1:]...)
			return nil
		}
	}
	return nil
}

func (f *fakeRepos) ClearQueue(ctx context.Context) error {
	f.queue = nil
	return nil
}

// VerseteTineriStore

func (f *fakeRepos) GetVerseteTineriGroup(ctx context.Context, id string) (*model.VerseteTineriGroup, error) {
	return f.groups[id], nil
}

func (f *fakeRepos) SaveVerseteTineriGroup(ctx context.Context, group *model.VerseteTineriGroup) error {
	f.groups[group.ID] = group
	return nil
}

// StateStore (persistence KV)

func (f *fakeRepos) GetState(ctx context.Context, key string) (string, bool) {
	f.mu.Lock()
	defer f.mu.Unlock()
	v, ok := f.kv[key]
	return v, ok
}

func (f *fakeRepos) SetState(ctx context.Context, key, val string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.kv[key] = val
	return nil
}

func (f *fakeRepos) DeleteState(ctx context.Context, key string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	delete(f.kv, key)
	return nil
}

// newTestPresenter wires a presenter over fresh fakes with chorus
// expansion enabled.
func newTestPresenter(t *testing.T) (*Presenter, *fakeRepos) {
	t.Helper()
	repos := newFakeRepos()
	state := NewStateStore(context.Background(), repos, repos)
	return New(state, repos, true), repos
}

func unmarshalUpdate(s string, upd *model.StateUpdate) error {
	return json.Unmarshal([]byte(s), upd)
}

// waitFor polls cond until it holds or the deadline passes, for asserting
// on fire-and-forget side effects.
func waitFor(t *testing.T, cond func() bool) {
	t.Helper()
	deadline := time.Now().Add(2 * time.Second)
	for time.Now().Before(deadline) {
		if cond() {
			return
		}
		time.Sleep(5 * time.Millisecond)
	}
	t.Fatal("condition not met before deadline")
}
