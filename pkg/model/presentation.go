package model

import "time"

// PresentationState is the single authoritative "what is on screen right
// now" record. There is exactly one instance per deployment; it is mutated
// in place for the lifetime of the process and persisted across restarts.
//
// At most one of Temporary and the queue cursor fields is active for
// rendering: renderers display Temporary when it is non-nil, otherwise the
// queue cursors.
type PresentationState struct {
	CurrentQueueItemID          *string           `json:"currentQueueItemId"`
	CurrentSongSlideID          *string           `json:"currentSongSlideId"`
	LastSongSlideID             *string           `json:"lastSongSlideId"`
	CurrentBiblePassageVerseID  *string           `json:"currentBiblePassageVerseId"`
	CurrentVerseteTineriEntryID *string           `json:"currentVerseteTineriEntryId"`
	IsPresenting                bool              `json:"isPresenting"`
	IsHidden                    bool              `json:"isHidden"`
	Temporary                   *TemporaryContent `json:"temporaryContent"`
	UpdatedAt                   time.Time         `json:"updatedAt"`
}

// Clone returns a deep copy so callers can hand the state out without
// exposing the store's internal record.
func (s *PresentationState) Clone() *PresentationState {
	c := *s
	c.CurrentQueueItemID = cloneStr(s.CurrentQueueItemID)
	c.CurrentSongSlideID = cloneStr(s.CurrentSongSlideID)
	c.LastSongSlideID = cloneStr(s.LastSongSlideID)
	c.CurrentBiblePassageVerseID = cloneStr(s.CurrentBiblePassageVerseID)
	c.CurrentVerseteTineriEntryID = cloneStr(s.CurrentVerseteTineriEntryID)
	c.Temporary = s.Temporary.Clone()
	return &c
}

func cloneStr(p *string) *string {
	if p == nil {
		return nil
	}
	v := *p
	return &v
}

// TemporaryKind tags the active variant of a TemporaryContent.
type TemporaryKind string

const (
	TemporaryBible         TemporaryKind = "bible"
	TemporarySong          TemporaryKind = "song"
	TemporaryBiblePassage  TemporaryKind = "bible_passage"
	TemporaryVerseteTineri TemporaryKind = "versete_tineri"
	TemporaryAnnouncement  TemporaryKind = "announcement"
)

// TemporaryContent is ad-hoc content presented outside the queue. It is a
// closed tagged union: exactly the payload matching Kind is non-nil. Each
// payload carries enough denormalized data to render without lookups.
type TemporaryContent struct {
	Kind          TemporaryKind         `json:"kind"`
	Bible         *BibleContent         `json:"bible,omitempty"`
	Song          *SongContent          `json:"song,omitempty"`
	Passage       *PassageContent       `json:"passage,omitempty"`
	VerseteTineri *VerseteTineriContent `json:"verseteTineri,omitempty"`
	Announcement  *AnnouncementContent  `json:"announcement,omitempty"`
}

// Clone returns a deep copy; nil-safe.
func (t *TemporaryContent) Clone() *TemporaryContent {
	if t == nil {
		return nil
	}
	c := *t
	if t.Bible != nil {
		b := *t.Bible
		b.Verses = append([]Verse(nil), t.Bible.Verses...)
		c.Bible = &b
	}
	if t.Song != nil {
		s := *t.Song
		s.Slides = append([]PresentedSlide(nil), t.Song.Slides...)
		c.Song = &s
	}
	if t.Passage != nil {
		p := *t.Passage
		p.Verses = append([]Verse(nil), t.Passage.Verses...)
		c.Passage = &p
	}
	if t.VerseteTineri != nil {
		v := *t.VerseteTineri
		v.Entries = append([]VerseteTineriEntry(nil), t.VerseteTineri.Entries...)
		c.VerseteTineri = &v
	}
	if t.Announcement != nil {
		a := *t.Announcement
		c.Announcement = &a
	}
	return &c
}

// BibleContent is a single verse with its surrounding chapter loaded.
// Navigation moves CurrentVerseIndex within Verses and splices in the
// adjacent chapter on under/overflow; ChapterCount bounds book crossing.
type BibleContent struct {
	Translation       string  `json:"translation"`
	Book              string  `json:"book"`
	Chapter           int     `json:"chapter"`
	ChapterCount      int     `json:"chapterCount"`
	Verses            []Verse `json:"verses"`
	CurrentVerseIndex int     `json:"currentVerseIndex"`
}

// SongContent is a song presented outside the queue, slides already in
// chorus-expanded presentation order.
type SongContent struct {
	SongID            string           `json:"songId"`
	Title             string           `json:"title"`
	Slides            []PresentedSlide `json:"slides"`
	CurrentSlideIndex int              `json:"currentSlideIndex"`
}

// PassageContent is a fixed pre-selected verse list.
type PassageContent struct {
	Reference         string  `json:"reference"`
	Verses            []Verse `json:"verses"`
	CurrentVerseIndex int     `json:"currentVerseIndex"`
}

// VerseteTineriContent is a fixed youth-verses entry list.
type VerseteTineriContent struct {
	GroupID           string               `json:"groupId"`
	Title             string               `json:"title"`
	Entries           []VerseteTineriEntry `json:"entries"`
	CurrentEntryIndex int                  `json:"currentEntryIndex"`
}

// AnnouncementContent is an atomic slide; navigation over it is a no-op.
type AnnouncementContent struct {
	Title string `json:"title"`
	Text  string `json:"text"`
}
