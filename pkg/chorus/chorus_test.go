package chorus

import (
	"testing"

	"doxa/pkg/model"
)

func slidesFromLabels(labels ...string) []model.Slide {
	slides := make([]model.Slide, len(labels))
	for i, l := range labels {
		slides[i] = model.Slide{ID: "s" + string(rune('a'+i)), Position: i, Label: l}
	}
	return slides
}

func labelsOf(entries []model.PresentedSlide) []string {
	out := make([]string, len(entries))
	for i, e := range entries {
		out[i] = e.Label
	}
	return out
}

func TestExpand(t *testing.T) {
	tests := []struct {
		name   string
		labels []string
		want   []string
	}{
		{
			name:   "ChorusBeforeVerses",
			labels: []string{"C1", "V1", "V2", "V3", "C2"},
			want:   []string{"C1", "V1", "C1", "V2", "C1", "V3", "C2"},
		},
		{
			name:   "ChorusAfterFirstVerse",
			labels: []string{"V1", "C1", "V2"},
			want:   []string{"V1", "C1", "V2", "C1"},
		},
		{
			name:   "SingleChorusSingleVerse",
			labels: []string{"V1", "C1"},
			want:   []string{"V1", "C1"},
		},
		{
			name:   "TrailingVerseRepeatsChorus",
			labels: []string{"C1", "V1"},
			want:   []string{"C1", "V1", "C1"},
		},
		{
			name:   "NoLabels",
			labels: []string{"", "", ""},
			want:   []string{"", "", ""},
		},
		{
			name:   "NoChoruses",
			labels: []string{"V1", "V2"},
			want:   []string{"V1", "V2"},
		},
		{
			name:   "NoVerses",
			labels: []string{"C1", "B1"},
			want:   []string{"C1", "B1"},
		},
		{
			name:   "UnlabeledBetweenVerses",
			labels: []string{"C1", "V1", "", "V2"},
			want:   []string{"C1", "V1", "C1", "", "V2", "C1"},
		},
		{
			name:   "Empty",
			labels: nil,
			want:   []string{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := labelsOf(Expand(slidesFromLabels(tt.labels...)))
			if len(got) != len(tt.want) {
				t.Fatalf("Expand labels: got %v, want %v", got, tt.want)
			}
			for i := range got {
				if got[i] != tt.want[i] {
					t.Fatalf("Expand labels: got %v, want %v", got, tt.want)
				}
			}
		})
	}
}

func TestExpandSourceIndexes(t *testing.T) {
	entries := Expand(slidesFromLabels("C1", "V1", "V2"))
	// C1 V1 C1 V2 C1
	wantIdx := []int{0, 1, 0, 2, 0}
	if len(entries) != len(wantIdx) {
		t.Fatalf("got %d entries, want %d", len(entries), len(wantIdx))
	}
	for i, e := range entries {
		if e.SourceIndex != wantIdx[i] {
			t.Errorf("entry %d: SourceIndex = %d, want %d", i, e.SourceIndex, wantIdx[i])
		}
	}
}

func TestExpandPreservesIdentity(t *testing.T) {
	slides := slidesFromLabels("C1", "V1")
	entries := Expand(slides)
	// C1 V1 C1: the re-emitted chorus is the same stored slide.
	if entries[2].ID != entries[0].ID {
		t.Errorf("re-emitted chorus ID = %q, want %q", entries[2].ID, entries[0].ID)
	}
}
