package model

import (
	"fmt"
	"time"
)

// Song is a song in the library. PlayCount tracks how often one of its
// slides has been put on screen.
type Song struct {
	ID        string    `json:"id"`
	Title     string    `json:"title"`
	Author    string    `json:"author,omitempty"`
	PlayCount int       `json:"playCount"`
	CreatedAt time.Time `json:"createdAt"`
}

// Slide is a single slide of a song, in stored order.
// Label is optional and matches ^[A-Z]\d*$ (e.g. "V1", "C2").
type Slide struct {
	ID       string `json:"id"`
	SongID   string `json:"songId"`
	Position int    `json:"position"`
	Label    string `json:"label,omitempty"`
	Text     string `json:"text"`
}

// PresentedSlide is a slide in presentation order after chorus expansion.
// SourceIndex points back at the slide's position in the stored list so a
// displayed index can be mapped to the source slide.
type PresentedSlide struct {
	Slide
	SourceIndex int `json:"sourceIndex"`
}

// Verse is a single bible verse of a given translation.
type Verse struct {
	ID          string `json:"id"`
	Translation string `json:"translation"`
	Book        string `json:"book"`
	Chapter     int    `json:"chapter"`
	Number      int    `json:"number"`
	Text        string `json:"text"`
}

// Reference renders the human-readable verse reference.
func (v Verse) Reference() string {
	return fmt.Sprintf("%s %d:%d", v.Book, v.Chapter, v.Number)
}

// Book holds per-translation metadata for a bible book.
type Book struct {
	Translation string `json:"translation"`
	Name        string `json:"name"`
	Order       int    `json:"order"`
	Chapters    int    `json:"chapters"`
}

// VerseteTineriEntry is one entry of a youth-verses group.
type VerseteTineriEntry struct {
	ID        string `json:"id"`
	GroupID   string `json:"groupId"`
	Position  int    `json:"position"`
	Reference string `json:"reference"`
	Text      string `json:"text"`
}

// VerseteTineriGroup is a named collection of youth verses presented as a unit.
type VerseteTineriGroup struct {
	ID      string               `json:"id"`
	Title   string               `json:"title"`
	Entries []VerseteTineriEntry `json:"entries"`
}

// QueueItemKind enumerates the kinds of scheduled worship content.
type QueueItemKind string

const (
	QueueSong          QueueItemKind = "song"
	QueueSlide         QueueItemKind = "slide"
	QueueBibleVerse    QueueItemKind = "bible_verse"
	QueueBiblePassage  QueueItemKind = "bible_passage"
	QueueVerseteTineri QueueItemKind = "versete_tineri"
)

// QueueItem is a scheduled unit of worship content held in presentation
// order. Only the fields for its Kind are populated.
type QueueItem struct {
	ID       string        `json:"id"`
	Kind     QueueItemKind `json:"kind"`
	Position int           `json:"position"`

	// Kind == QueueSong
	SongID string `json:"songId,omitempty"`

	// Kind == QueueSlide (standalone announcement slide)
	Title string `json:"title,omitempty"`
	Text  string `json:"text,omitempty"`

	// Bible kinds. VerseIDs holds exactly one id for QueueBibleVerse and
	// the ordered verse list for QueueBiblePassage.
	Translation string   `json:"translation,omitempty"`
	Book        string   `json:"book,omitempty"`
	Chapter     int      `json:"chapter,omitempty"`
	VerseIDs    []string `json:"verseIds,omitempty"`

	// Kind == QueueVerseteTineri
	GroupID string `json:"groupId,omitempty"`
}
