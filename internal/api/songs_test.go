package api

import (
	"encoding/json"
	"net/http"
	"testing"

	"doxa/pkg/model"
)

func TestSongSaveListAndSlides(t *testing.T) {
	ts, _, _ := newTestServer(t)

	resp := doJSON(t, http.MethodPost, ts.URL+"/api/songs", map[string]any{
		"title": "Osana",
		"slides": []map[string]string{
			{"label": "V1", "text": "first"},
			{"label": "C1", "text": "chorus"},
			{"label": "V2", "text": "second"},
		},
	})
	if resp.StatusCode != http.StatusCreated {
		t.Fatalf("save = %d", resp.StatusCode)
	}
	var song model.Song
	if err := json.NewDecoder(resp.Body).Decode(&song); err != nil {
		t.Fatal(err)
	}
	resp.Body.Close()
	if song.ID == "" {
		t.Fatal("no id assigned")
	}

	resp = doJSON(t, http.MethodGet, ts.URL+"/api/songs", nil)
	var songs []model.Song
	json.NewDecoder(resp.Body).Decode(&songs)
	resp.Body.Close()
	if len(songs) != 1 || songs[0].Title != "Osana" {
		t.Fatalf("songs = %+v", songs)
	}

	// Slides come back chorus-expanded: V1 C1 V2 C1.
	resp = doJSON(t, http.MethodGet, ts.URL+"/api/songs/"+song.ID+"/slides", nil)
	var slides []model.PresentedSlide
	if err := json.NewDecoder(resp.Body).Decode(&slides); err != nil {
		t.Fatal(err)
	}
	resp.Body.Close()
	if len(slides) != 4 {
		t.Fatalf("got %d slides, want 4", len(slides))
	}
	if slides[3].Label != "C1" || slides[3].SourceIndex != 1 {
		t.Errorf("trailing chorus = %+v", slides[3])
	}
}

func TestSongSlidesNotFound(t *testing.T) {
	ts, _, _ := newTestServer(t)

	resp := doJSON(t, http.MethodGet, ts.URL+"/api/songs/missing/slides", nil)
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusNotFound {
		t.Errorf("status = %d, want 404", resp.StatusCode)
	}
}

func TestSongSaveRequiresTitle(t *testing.T) {
	ts, _, _ := newTestServer(t)

	resp := doJSON(t, http.MethodPost, ts.URL+"/api/songs", map[string]any{"title": ""})
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusBadRequest {
		t.Errorf("status = %d, want 400", resp.StatusCode)
	}
}
