package api

import (
	"encoding/json"
	"net/http"

	"doxa/pkg/model"
	"doxa/pkg/presenter"
)

// StateHandler exposes the shared presentation state to controllers and
// display clients.
type StateHandler struct {
	presenter *presenter.Presenter
}

// NewStateHandler creates a new state handler.
func NewStateHandler(p *presenter.Presenter) *StateHandler {
	return &StateHandler{presenter: p}
}

// HandleGet handles GET /api/state.
func (h *StateHandler) HandleGet(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, h.presenter.State())
}

// HandlePatch handles PATCH /api/state. The body is a partial update:
// omitted fields keep their value, explicit nulls clear.
func (h *StateHandler) HandlePatch(w http.ResponseWriter, r *http.Request) {
	var upd model.StateUpdate
	if err := json.NewDecoder(r.Body).Decode(&upd); err != nil {
		writeError(w, http.StatusBadRequest, "invalid state update: "+err.Error())
		return
	}
	writeJSON(w, h.presenter.Update(r.Context(), upd))
}
