package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"doxa/pkg/db"
	"doxa/pkg/model"
)

// Store defines the repository interface.
// It composes all sub-interfaces for full store access.
// Consumers should depend on specific sub-interfaces when possible.
type Store interface {
	SongStore
	BibleStore
	QueueStore
	VerseteTineriStore
	StateStore

	// Close closes the store connection.
	Close() error
}

// SQLiteStore implements Store.
type SQLiteStore struct {
	db *db.DB
}

// NewSQLiteStore creates a new store.
func NewSQLiteStore(db *db.DB) *SQLiteStore {
	return &SQLiteStore{db: db}
}

func (s *SQLiteStore) Close() error {
	return s.db.Close()
}

// --- Songs ---

func (s *SQLiteStore) GetSong(ctx context.Context, id string) (*model.Song, error) {
	row := s.db.QueryRowContext(ctx,
		`SELECT id, title, author, play_count, created_at FROM songs WHERE id = ?`, id)

	var song model.Song
	var author sql.NullString
	err := row.Scan(&song.ID, &song.Title, &author, &song.PlayCount, &song.CreatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil // Not found
		}
		return nil, err
	}
	if author.Valid {
		song.Author = author.String
	}
	return &song, nil
}

func (s *SQLiteStore) GetSlide(ctx context.Context, id string) (*model.Slide, error) {
	row := s.db.QueryRowContext(ctx,
		`SELECT id, song_id, position, label, text FROM song_slides WHERE id = ?`, id)

	var sl model.Slide
	var label sql.NullString
	err := row.Scan(&sl.ID, &sl.SongID, &sl.Position, &label, &sl.Text)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	if label.Valid {
		sl.Label = label.String
	}
	return &sl, nil
}

func (s *SQLiteStore) GetSongSlides(ctx context.Context, songID string) ([]model.Slide, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, song_id, position, label, text FROM song_slides
		 WHERE song_id = ? ORDER BY position`, songID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var slides []model.Slide
	for rows.Next() {
		var sl model.Slide
		var label sql.NullString
		if err := rows.Scan(&sl.ID, &sl.SongID, &sl.Position, &label, &sl.Text); err != nil {
			return nil, err
		}
		if label.Valid {
			sl.Label = label.String
		}
		slides = append(slides, sl)
	}
	return slides, rows.Err()
}

func (s *SQLiteStore) ListSongs(ctx context.Context) ([]model.Song, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, title, author, play_count, created_at FROM songs ORDER BY title`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var songs []model.Song
	for rows.Next() {
		var song model.Song
		var author sql.NullString
		if err := rows.Scan(&song.ID, &song.Title, &author, &song.PlayCount, &song.CreatedAt); err != nil {
			return nil, err
		}
		if author.Valid {
			song.Author = author.String
		}
		songs = append(songs, song)
	}
	return songs, rows.Err()
}

// SaveSong upserts the song and replaces its slide set in one transaction.
func (s *SQLiteStore) SaveSong(ctx context.Context, song *model.Song, slides []model.Slide) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	createdAt := song.CreatedAt
	if createdAt.IsZero() {
		createdAt = time.Now()
	}

	_, err = tx.ExecContext(ctx,
		`INSERT INTO songs (id, title, author, play_count, created_at) VALUES (?, ?, ?, ?, ?)
		 ON CONFLICT(id) DO UPDATE SET title=excluded.title, author=excluded.author`,
		song.ID, song.Title, song.Author, song.PlayCount, createdAt)
	if err != nil {
		return err
	}

	if _, err := tx.ExecContext(ctx, `DELETE FROM song_slides WHERE song_id = ?`, song.ID); err != nil {
		return err
	}
	for _, sl := range slides {
		_, err := tx.ExecContext(ctx,
			`INSERT INTO song_slides (id, song_id, position, label, text) VALUES (?, ?, ?, ?, ?)`,
			sl.ID, song.ID, sl.Position, sl.Label, sl.Text)
		if err != nil {
			return err
		}
	}

	return tx.Commit()
}

func (s *SQLiteStore) IncrementPlayCount(ctx context.Context, songID string) error {
	res, err := s.db.ExecContext(ctx,
		`UPDATE songs SET play_count = play_count + 1 WHERE id = ?`, songID)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err == nil && n == 0 {
		return fmt.Errorf("song %s not found", songID)
	}
	return err
}

// --- Bible ---

func (s *SQLiteStore) GetVerse(ctx context.Context, id string) (*model.Verse, error) {
	row := s.db.QueryRowContext(ctx,
		`SELECT id, translation, book, chapter, number, text FROM bible_verses WHERE id = ?`, id)

	var v model.Verse
	err := row.Scan(&v.ID, &v.Translation, &v.Book, &v.Chapter, &v.Number, &v.Text)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return &v, nil
}

// GetVersesByIDs returns verses in the order of the given ids; missing ids
// are skipped.
func (s *SQLiteStore) GetVersesByIDs(ctx context.Context, ids []string) ([]model.Verse, error) {
	if len(ids) == 0 {
		return nil, nil
	}

	query := `SELECT id, translation, book, chapter, number, text FROM bible_verses WHERE id IN (`
	args := make([]any, len(ids))
	for i, id := range ids {
		if i > 0 {
			query += ","
		}
		query += "?"
		args[i] = id
	}
	query += ")"

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	byID := make(map[string]model.Verse, len(ids))
	for rows.Next() {
		var v model.Verse
		if err := rows.Scan(&v.ID, &v.Translation, &v.Book, &v.Chapter, &v.Number, &v.Text); err != nil {
			return nil, err
		}
		byID[v.ID] = v
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	verses := make([]model.Verse, 0, len(ids))
	for _, id := range ids {
		if v, ok := byID[id]; ok {
			verses = append(verses, v)
		}
	}
	return verses, nil
}

func (s *SQLiteStore) GetVersesInChapter(ctx context.Context, translation, book string, chapter int) ([]model.Verse, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, translation, book, chapter, number, text FROM bible_verses
		 WHERE translation = ? AND book = ? AND chapter = ? ORDER BY number`,
		translation, book, chapter)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var verses []model.Verse
	for rows.Next() {
		var v model.Verse
		if err := rows.Scan(&v.ID, &v.Translation, &v.Book, &v.Chapter, &v.Number, &v.Text); err != nil {
			return nil, err
		}
		verses = append(verses, v)
	}
	return verses, rows.Err()
}

func (s *SQLiteStore) GetChapterCount(ctx context.Context, translation, book string) (int, error) {
	var chapters int
	err := s.db.QueryRowContext(ctx,
		`SELECT chapters FROM bible_books WHERE translation = ? AND name = ?`,
		translation, book).Scan(&chapters)
	if errors.Is(err, sql.ErrNoRows) {
		return 0, fmt.Errorf("book %s not found in translation %s", book, translation)
	}
	if err != nil {
		return 0, err
	}
	return chapters, nil
}

func (s *SQLiteStore) SaveVerses(ctx context.Context, verses []model.Verse) error {
	if len(verses) == 0 {
		return nil
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	stmt := `INSERT OR REPLACE INTO bible_verses (id, translation, book, chapter, number, text)
			 VALUES (?, ?, ?, ?, ?, ?)`
	for _, v := range verses {
		if _, err := tx.ExecContext(ctx, stmt, v.ID, v.Translation, v.Book, v.Chapter, v.Number, v.Text); err != nil {
			return err
		}
	}
	return tx.Commit()
}

// --- Queue ---

func (s *SQLiteStore) GetQueueItems(ctx context.Context) ([]model.QueueItem, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, kind, position, song_id, title, text, translation, book, chapter, verse_ids, group_id
		 FROM queue_items ORDER BY position`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var items []model.QueueItem
	for rows.Next() {
		var item model.QueueItem
		var songID, title, text, translation, book, verseIDs, groupID sql.NullString
		var chapter sql.NullInt64
		err := rows.Scan(&item.ID, &item.Kind, &item.Position,
			&songID, &title, &text, &translation, &book, &chapter, &verseIDs, &groupID)
		if err != nil {
			return nil, err
		}
		item.SongID = songID.String
		item.Title = title.String
		item.Text = text.String
		item.Translation = translation.String
		item.Book = book.String
		item.Chapter = int(chapter.Int64)
		item.GroupID = groupID.String
		if verseIDs.Valid && verseIDs.String != "" {
			_ = json.Unmarshal([]byte(verseIDs.String), &item.VerseIDs)
		}
		items = append(items, item)
	}
	return items, rows.Err()
}

// AddQueueItem appends the item; position 0 or negative places it at the end.
func (s *SQLiteStore) AddQueueItem(ctx context.Context, item *model.QueueItem) error {
	if item.Position <= 0 {
		var maxPos sql.NullInt64
		if err := s.db.QueryRowContext(ctx, `SELECT MAX(position) FROM queue_items`).Scan(&maxPos); err != nil {
			return err
		}
		item.Position = int(maxPos.Int64) + 1
	}

	var verseIDs string
	if len(item.VerseIDs) > 0 {
		b, _ := json.Marshal(item.VerseIDs)
		verseIDs = string(b)
	}

	query := `INSERT OR REPLACE INTO queue_items
		(id, kind, position, song_id, title, text, translation, book, chapter, verse_ids, group_id, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`
	_, err := s.db.ExecContext(ctx, query,
		item.ID, item.Kind, item.Position, item.SongID, item.Title, item.Text,
		item.Translation, item.Book, item.Chapter, verseIDs, item.GroupID, time.Now())
	return err
}

func (s *SQLiteStore) RemoveQueueItem(ctx context.Context, id string) error {
	_, err := s.db.ExecContext(ctx, `DELETE FROM queue_items WHERE id = ?`, id)
	return err
}

func (s *SQLiteStore) ClearQueue(ctx context.Context) error {
	_, err := s.db.ExecContext(ctx, `DELETE FROM queue_items`)
	return err
}

// --- Versete Tineri ---

func (s *SQLiteStore) GetVerseteTineriGroup(ctx context.Context, id string) (*model.VerseteTineriGroup, error) {
	row := s.db.QueryRowContext(ctx,
		`SELECT id, title FROM versete_tineri_groups WHERE id = ?`, id)

	var g model.VerseteTineriGroup
	if err := row.Scan(&g.ID, &g.Title); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}

	rows, err := s.db.QueryContext(ctx,
		`SELECT id, group_id, position, reference, text FROM versete_tineri_entries
		 WHERE group_id = ? ORDER BY position`, id)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		var e model.VerseteTineriEntry
		if err := rows.Scan(&e.ID, &e.GroupID, &e.Position, &e.Reference, &e.Text); err != nil {
			return nil, err
		}
		g.Entries = append(g.Entries, e)
	}
	return &g, rows.Err()
}

func (s *SQLiteStore) SaveVerseteTineriGroup(ctx context.Context, group *model.VerseteTineriGroup) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	_, err = tx.ExecContext(ctx,
		`INSERT INTO versete_tineri_groups (id, title) VALUES (?, ?)
		 ON CONFLICT(id) DO UPDATE SET title=excluded.title`,
		group.ID, group.Title)
	if err != nil {
		return err
	}

	if _, err := tx.ExecContext(ctx, `DELETE FROM versete_tineri_entries WHERE group_id = ?`, group.ID); err != nil {
		return err
	}
	for _, e := range group.Entries {
		_, err := tx.ExecContext(ctx,
			`INSERT INTO versete_tineri_entries (id, group_id, position, reference, text) VALUES (?, ?, ?, ?, ?)`,
			e.ID, group.ID, e.Position, e.Reference, e.Text)
		if err != nil {
			return err
		}
	}
	return tx.Commit()
}

// --- State ---

func (s *SQLiteStore) GetState(ctx context.Context, key string) (string, bool) {
	var val string
	err := s.db.QueryRowContext(ctx, "SELECT value FROM persistent_state WHERE key = ?", key).Scan(&val)
	if errors.Is(err, sql.ErrNoRows) {
		return "", false
	}
	if err != nil {
		return "", false
	}
	return val, true
}

func (s *SQLiteStore) SetState(ctx context.Context, key, val string) error {
	query := `INSERT OR REPLACE INTO persistent_state (key, value, created_at) VALUES (?, ?, ?)`
	_, err := s.db.ExecContext(ctx, query, key, val, time.Now())
	return err
}

func (s *SQLiteStore) DeleteState(ctx context.Context, key string) error {
	_, err := s.db.ExecContext(ctx, "DELETE FROM persistent_state WHERE key = ?", key)
	return err
}
