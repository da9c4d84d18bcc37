package api

import (
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"doxa/pkg/version"
)

// NewServer creates and configures the HTTP server.
// It accepts handlers for all API endpoints and a shutdownFunc for graceful shutdown.
func NewServer(addr string, state *StateHandler, pres *PresentationHandler, queue *QueueHandler, songs *SongHandler, hub *WSHub, shutdown func()) *http.Server {
	mux := http.NewServeMux()

	// 1. Health Endpoint
	mux.HandleFunc("GET /health", handleHealth)

	// 1b. Version Endpoint
	mux.HandleFunc("GET /api/version", handleVersion)

	// 2. State Endpoints
	mux.HandleFunc("GET /api/state", state.HandleGet)
	mux.HandleFunc("PATCH /api/state", state.HandlePatch)
	if hub != nil {
		mux.HandleFunc("GET /api/state/ws", hub.HandleWS)
	}

	// 3. Presentation Endpoints
	mux.HandleFunc("POST /api/presentation/navigate", pres.HandleNavigate)
	mux.HandleFunc("POST /api/presentation/temporary/navigate", pres.HandleTemporaryNavigate)
	mux.HandleFunc("POST /api/presentation/temporary/bible", pres.HandlePresentBible)
	mux.HandleFunc("POST /api/presentation/temporary/song", pres.HandlePresentSong)
	mux.HandleFunc("POST /api/presentation/temporary/bible-passage", pres.HandlePresentPassage)
	mux.HandleFunc("POST /api/presentation/temporary/versete-tineri", pres.HandlePresentVerseteTineri)
	mux.HandleFunc("POST /api/presentation/temporary/announcement", pres.HandlePresentAnnouncement)
	mux.HandleFunc("POST /api/presentation/clear-slide", pres.HandleClearSlide)
	mux.HandleFunc("POST /api/presentation/show-slide", pres.HandleShowSlide)
	mux.HandleFunc("POST /api/presentation/stop", pres.HandleStop)
	mux.HandleFunc("POST /api/presentation/clear-temporary", pres.HandleClearTemporary)

	// 4. Queue Endpoints
	mux.HandleFunc("GET /api/queue", queue.HandleList)
	mux.HandleFunc("POST /api/queue", queue.HandleAdd)
	mux.HandleFunc("DELETE /api/queue/{id}", queue.HandleRemove)
	mux.HandleFunc("DELETE /api/queue", queue.HandleClear)

	// 5. Song Endpoints
	mux.HandleFunc("GET /api/songs", songs.HandleList)
	mux.HandleFunc("POST /api/songs", songs.HandleSave)
	mux.HandleFunc("GET /api/songs/{id}/slides", songs.HandleSlides)

	// 6. Shutdown Endpoint
	mux.HandleFunc("POST /api/shutdown", func(w http.ResponseWriter, r *http.Request) {
		slog.Info("Graceful shutdown initiated via API")
		w.WriteHeader(http.StatusOK)
		if _, err := w.Write([]byte("Shutting down...")); err != nil {
			slog.Error("Failed to write shutdown response", "error", err)
		}
		// Call shutdown in a goroutine to allow response to flush
		go func() {
			time.Sleep(100 * time.Millisecond)
			shutdown()
		}()
	})

	return &http.Server{
		Addr:         addr,
		Handler:      mux,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}
}

func handleHealth(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusOK)
	if _, err := w.Write([]byte("OK")); err != nil {
		slog.Error("Failed to write health response", "error", err)
	}
}

func handleVersion(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	if _, err := fmt.Fprintf(w, `{"version": "%s"}`, version.Version); err != nil {
		slog.Error("Failed to write version response", "error", err)
	}
}
