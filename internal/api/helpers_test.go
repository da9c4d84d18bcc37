package api

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"

	"doxa/pkg/db"
	"doxa/pkg/model"
	"doxa/pkg/presenter"
	"doxa/pkg/store"
)

// newTestServer wires the full handler stack over a throwaway database.
func newTestServer(t *testing.T) (*httptest.Server, *store.SQLiteStore, *presenter.Presenter) {
	t.Helper()

	d, err := db.Init(filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("db.Init: %v", err)
	}
	t.Cleanup(func() { d.Close() })
	st := store.NewSQLiteStore(d)

	stateStore := presenter.NewStateStore(context.Background(), st, st)
	p := presenter.New(stateStore, st, true)

	hub := NewWSHub(p)
	srv := NewServer("127.0.0.1:0",
		NewStateHandler(p),
		NewPresentationHandler(p, "VDC"),
		NewQueueHandler(st),
		NewSongHandler(st, true),
		hub,
		func() {})

	ts := httptest.NewServer(srv.Handler)
	t.Cleanup(ts.Close)
	return ts, st, p
}

func doJSON(t *testing.T, method, url string, body any) *http.Response {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		if err := json.NewEncoder(&buf).Encode(body); err != nil {
			t.Fatal(err)
		}
	}
	req, err := http.NewRequest(method, url, &buf)
	if err != nil {
		t.Fatal(err)
	}
	req.Header.Set("Content-Type", "application/json")
	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		t.Fatalf("%s %s: %v", method, url, err)
	}
	return resp
}

func decodeState(t *testing.T, resp *http.Response) *model.PresentationState {
	t.Helper()
	defer resp.Body.Close()
	var st model.PresentationState
	if err := json.NewDecoder(resp.Body).Decode(&st); err != nil {
		t.Fatalf("decode state: %v", err)
	}
	return &st
}

// seedSong stores a three-slide song and returns its queue item.
func seedSong(t *testing.T, st *store.SQLiteStore, songID string) model.QueueItem {
	t.Helper()
	ctx := context.Background()
	song := &model.Song{ID: songID, Title: "Osana"}
	slides := []model.Slide{
		{ID: songID + "-s0", SongID: songID, Position: 0, Label: "V1", Text: "a"},
		{ID: songID + "-s1", SongID: songID, Position: 1, Label: "C1", Text: "b"},
		{ID: songID + "-s2", SongID: songID, Position: 2, Label: "V2", Text: "c"},
	}
	if err := st.SaveSong(ctx, song, slides); err != nil {
		t.Fatal(err)
	}
	return model.QueueItem{ID: "q-" + songID, Kind: model.QueueSong, SongID: songID}
}
