package api

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/google/uuid"

	"doxa/pkg/chorus"
	"doxa/pkg/model"
	"doxa/pkg/store"
)

// SongHandler exposes the song library.
type SongHandler struct {
	store        store.SongStore
	chorusExpand bool
}

// NewSongHandler creates a new song handler.
func NewSongHandler(st store.SongStore, chorusExpand bool) *SongHandler {
	return &SongHandler{store: st, chorusExpand: chorusExpand}
}

// HandleList handles GET /api/songs. Play counts ride along on each song.
func (h *SongHandler) HandleList(w http.ResponseWriter, r *http.Request) {
	songs, err := h.store.ListSongs(r.Context())
	if err != nil {
		slog.Error("Failed to list songs", "error", err)
		writeError(w, http.StatusInternalServerError, "failed to list songs")
		return
	}
	if songs == nil {
		songs = []model.Song{}
	}
	writeJSON(w, songs)
}

// HandleSlides handles GET /api/songs/{id}/slides: the slides in
// presentation order, so controllers preview exactly what navigation
// will walk.
func (h *SongHandler) HandleSlides(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	song, err := h.store.GetSong(r.Context(), id)
	if err != nil {
		slog.Error("Failed to load song", "id", id, "error", err)
		writeError(w, http.StatusInternalServerError, "failed to load song")
		return
	}
	if song == nil {
		writeError(w, http.StatusNotFound, "song not found")
		return
	}
	slides, err := h.store.GetSongSlides(r.Context(), id)
	if err != nil {
		slog.Error("Failed to load slides", "id", id, "error", err)
		writeError(w, http.StatusInternalServerError, "failed to load slides")
		return
	}

	presented := make([]model.PresentedSlide, 0, len(slides))
	if h.chorusExpand {
		presented = chorus.Expand(slides)
	} else {
		for i, s := range slides {
			presented = append(presented, model.PresentedSlide{Slide: s, SourceIndex: i})
		}
	}
	writeJSON(w, presented)
}

type saveSongRequest struct {
	Title  string `json:"title"`
	Author string `json:"author"`
	Slides []struct {
		Label string `json:"label"`
		Text  string `json:"text"`
	} `json:"slides"`
}

// HandleSave handles POST /api/songs.
func (h *SongHandler) HandleSave(w http.ResponseWriter, r *http.Request) {
	var req saveSongRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid song: "+err.Error())
		return
	}
	if req.Title == "" {
		writeError(w, http.StatusBadRequest, "title is required")
		return
	}

	song := &model.Song{ID: uuid.NewString(), Title: req.Title, Author: req.Author}
	slides := make([]model.Slide, len(req.Slides))
	for i, s := range req.Slides {
		slides[i] = model.Slide{
			ID:       uuid.NewString(),
			SongID:   song.ID,
			Position: i,
			Label:    s.Label,
			Text:     s.Text,
		}
	}
	if err := h.store.SaveSong(r.Context(), song, slides); err != nil {
		slog.Error("Failed to save song", "title", req.Title, "error", err)
		writeError(w, http.StatusInternalServerError, "failed to save song")
		return
	}
	w.WriteHeader(http.StatusCreated)
	writeJSON(w, song)
}
