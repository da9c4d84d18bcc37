package api

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"doxa/pkg/presenter"
)

// PresentationHandler exposes the navigation commands.
type PresentationHandler struct {
	presenter          *presenter.Presenter
	defaultTranslation string
}

// NewPresentationHandler creates a new presentation handler.
func NewPresentationHandler(p *presenter.Presenter, defaultTranslation string) *PresentationHandler {
	return &PresentationHandler{presenter: p, defaultTranslation: defaultTranslation}
}

type navigateRequest struct {
	Direction presenter.Direction `json:"direction"`
	// RequestStamp orders racing temporary navigation commands; ignored
	// for queue navigation.
	RequestStamp int64 `json:"requestStamp"`
}

// HandleNavigate handles POST /api/presentation/navigate.
func (h *PresentationHandler) HandleNavigate(w http.ResponseWriter, r *http.Request) {
	var req navigateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request: "+err.Error())
		return
	}
	if !req.Direction.Valid() {
		writeError(w, http.StatusBadRequest, "direction must be \"next\" or \"prev\"")
		return
	}
	// Lookup failures degrade to no-ops: the caller always gets the
	// current state back, the cause lands in the log.
	st, err := h.presenter.NavigateQueue(r.Context(), req.Direction)
	if err != nil {
		slog.Warn("Queue navigation degraded to no-op", "direction", req.Direction, "error", err)
	}
	writeJSON(w, st)
}

// HandleTemporaryNavigate handles POST /api/presentation/temporary/navigate.
func (h *PresentationHandler) HandleTemporaryNavigate(w http.ResponseWriter, r *http.Request) {
	var req navigateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request: "+err.Error())
		return
	}
	if !req.Direction.Valid() {
		writeError(w, http.StatusBadRequest, "direction must be \"next\" or \"prev\"")
		return
	}
	if req.RequestStamp <= 0 {
		writeError(w, http.StatusBadRequest, "requestStamp must be positive")
		return
	}
	st, err := h.presenter.NavigateTemporary(r.Context(), req.Direction, req.RequestStamp)
	if err != nil {
		slog.Warn("Temporary navigation degraded to no-op", "direction", req.Direction, "error", err)
	}
	writeJSON(w, st)
}

type presentBibleRequest struct {
	Translation string `json:"translation"`
	Book        string `json:"book"`
	Chapter     int    `json:"chapter"`
	Verse       int    `json:"verse"`
}

// HandlePresentBible handles POST /api/presentation/temporary/bible.
func (h *PresentationHandler) HandlePresentBible(w http.ResponseWriter, r *http.Request) {
	var req presentBibleRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request: "+err.Error())
		return
	}
	if req.Translation == "" {
		req.Translation = h.defaultTranslation
	}
	if req.Translation == "" || req.Book == "" || req.Chapter < 1 {
		writeError(w, http.StatusBadRequest, "translation, book and chapter are required")
		return
	}
	st, err := h.presenter.PresentBible(r.Context(), req.Translation, req.Book, req.Chapter, req.Verse)
	if err != nil {
		slog.Warn("Present bible degraded to no-op", "book", req.Book, "chapter", req.Chapter, "error", err)
	}
	writeJSON(w, st)
}

type presentSongRequest struct {
	SongID string `json:"songId"`
}

// HandlePresentSong handles POST /api/presentation/temporary/song.
func (h *PresentationHandler) HandlePresentSong(w http.ResponseWriter, r *http.Request) {
	var req presentSongRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request: "+err.Error())
		return
	}
	if req.SongID == "" {
		writeError(w, http.StatusBadRequest, "songId is required")
		return
	}
	st, err := h.presenter.PresentSong(r.Context(), req.SongID)
	if err != nil {
		slog.Warn("Present song degraded to no-op", "songId", req.SongID, "error", err)
	}
	writeJSON(w, st)
}

type presentPassageRequest struct {
	VerseIDs  []string `json:"verseIds"`
	Reference string   `json:"reference"`
}

// HandlePresentPassage handles POST /api/presentation/temporary/bible-passage.
func (h *PresentationHandler) HandlePresentPassage(w http.ResponseWriter, r *http.Request) {
	var req presentPassageRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request: "+err.Error())
		return
	}
	if len(req.VerseIDs) == 0 {
		writeError(w, http.StatusBadRequest, "verseIds is required")
		return
	}
	st, err := h.presenter.PresentPassage(r.Context(), req.VerseIDs, req.Reference)
	if err != nil {
		slog.Warn("Present passage degraded to no-op", "reference", req.Reference, "error", err)
	}
	writeJSON(w, st)
}

type presentVerseteTineriRequest struct {
	GroupID string `json:"groupId"`
}

// HandlePresentVerseteTineri handles POST /api/presentation/temporary/versete-tineri.
func (h *PresentationHandler) HandlePresentVerseteTineri(w http.ResponseWriter, r *http.Request) {
	var req presentVerseteTineriRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request: "+err.Error())
		return
	}
	if req.GroupID == "" {
		writeError(w, http.StatusBadRequest, "groupId is required")
		return
	}
	st, err := h.presenter.PresentVerseteTineri(r.Context(), req.GroupID)
	if err != nil {
		slog.Warn("Present versete tineri degraded to no-op", "groupId", req.GroupID, "error", err)
	}
	writeJSON(w, st)
}

type presentAnnouncementRequest struct {
	Title string `json:"title"`
	Text  string `json:"text"`
}

// HandlePresentAnnouncement handles POST /api/presentation/temporary/announcement.
func (h *PresentationHandler) HandlePresentAnnouncement(w http.ResponseWriter, r *http.Request) {
	var req presentAnnouncementRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request: "+err.Error())
		return
	}
	if req.Title == "" && req.Text == "" {
		writeError(w, http.StatusBadRequest, "title or text is required")
		return
	}
	st, _ := h.presenter.PresentAnnouncement(r.Context(), req.Title, req.Text)
	writeJSON(w, st)
}

// HandleClearSlide handles POST /api/presentation/clear-slide.
func (h *PresentationHandler) HandleClearSlide(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, h.presenter.ClearSlide(r.Context()))
}

// HandleShowSlide handles POST /api/presentation/show-slide.
func (h *PresentationHandler) HandleShowSlide(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, h.presenter.ShowSlide(r.Context()))
}

// HandleStop handles POST /api/presentation/stop.
func (h *PresentationHandler) HandleStop(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, h.presenter.Stop(r.Context()))
}

// HandleClearTemporary handles POST /api/presentation/clear-temporary.
func (h *PresentationHandler) HandleClearTemporary(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, h.presenter.ClearTemporary(r.Context()))
}
