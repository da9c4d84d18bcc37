package api

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/google/uuid"

	"doxa/pkg/model"
	"doxa/pkg/store"
)

// QueueHandler manages the presentation queue.
type QueueHandler struct {
	store store.QueueStore
}

// NewQueueHandler creates a new queue handler.
func NewQueueHandler(st store.QueueStore) *QueueHandler {
	return &QueueHandler{store: st}
}

// HandleList handles GET /api/queue.
func (h *QueueHandler) HandleList(w http.ResponseWriter, r *http.Request) {
	items, err := h.store.GetQueueItems(r.Context())
	if err != nil {
		slog.Error("Failed to load queue", "error", err)
		writeError(w, http.StatusInternalServerError, "failed to load queue")
		return
	}
	if items == nil {
		items = []model.QueueItem{}
	}
	writeJSON(w, items)
}

// HandleAdd handles POST /api/queue. The item id is assigned server-side.
func (h *QueueHandler) HandleAdd(w http.ResponseWriter, r *http.Request) {
	var item model.QueueItem
	if err := json.NewDecoder(r.Body).Decode(&item); err != nil {
		writeError(w, http.StatusBadRequest, "invalid queue item: "+err.Error())
		return
	}
	if !validQueueKind(item.Kind) {
		writeError(w, http.StatusBadRequest, "unknown queue item kind")
		return
	}
	item.ID = uuid.NewString()
	if err := h.store.AddQueueItem(r.Context(), &item); err != nil {
		slog.Error("Failed to add queue item", "kind", item.Kind, "error", err)
		writeError(w, http.StatusInternalServerError, "failed to add queue item")
		return
	}
	w.WriteHeader(http.StatusCreated)
	writeJSON(w, item)
}

// HandleRemove handles DELETE /api/queue/{id}.
func (h *QueueHandler) HandleRemove(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	if err := h.store.RemoveQueueItem(r.Context(), id); err != nil {
		slog.Error("Failed to remove queue item", "id", id, "error", err)
		writeError(w, http.StatusInternalServerError, "failed to remove queue item")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// HandleClear handles DELETE /api/queue.
func (h *QueueHandler) HandleClear(w http.ResponseWriter, r *http.Request) {
	if err := h.store.ClearQueue(r.Context()); err != nil {
		slog.Error("Failed to clear queue", "error", err)
		writeError(w, http.StatusInternalServerError, "failed to clear queue")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func validQueueKind(k model.QueueItemKind) bool {
	switch k {
	case model.QueueSong, model.QueueSlide, model.QueueBibleVerse,
		model.QueueBiblePassage, model.QueueVerseteTineri:
		return true
	}
	return false
}
