// Package chorus turns a labeled slide set into its linear presentation
// order. Songs are stored with each chorus written once; expansion
// re-interleaves the current chorus after every verse so operators never
// duplicate slides in storage.
package chorus

import (
	"regexp"
	"strings"

	"doxa/pkg/model"
)

var labelRe = regexp.MustCompile(`^[A-Z]\d*$`)

// Expand walks the slides in stored order. Whenever a chorus slide is
// encountered it becomes the current chorus; after each verse slide the
// current chorus is emitted again, unless the next stored slide is itself
// a chorus. Expansion is the identity when no slide carries a label, or
// the labels contain no verses, or no choruses.
//
// Every emitted entry keeps a SourceIndex into the input list so a
// displayed position can be mapped back to the source slide.
func Expand(slides []model.Slide) []model.PresentedSlide {
	out := make([]model.PresentedSlide, 0, len(slides))

	if !expandable(slides) {
		for i, s := range slides {
			out = append(out, model.PresentedSlide{Slide: s, SourceIndex: i})
		}
		return out
	}

	var current *model.PresentedSlide
	for i, s := range slides {
		entry := model.PresentedSlide{Slide: s, SourceIndex: i}
		out = append(out, entry)

		switch {
		case isChorus(s.Label):
			current = &entry
		case isVerse(s.Label) && current != nil:
			if i+1 < len(slides) && isChorus(slides[i+1].Label) {
				continue
			}
			out = append(out, *current)
		}
	}
	return out
}

// expandable reports whether the set contains at least one verse and one
// chorus label; anything else passes through unchanged.
func expandable(slides []model.Slide) bool {
	var verses, choruses bool
	for _, s := range slides {
		if isVerse(s.Label) {
			verses = true
		}
		if isChorus(s.Label) {
			choruses = true
		}
	}
	return verses && choruses
}

func isVerse(label string) bool {
	return labelRe.MatchString(label) && strings.HasPrefix(label, "V")
}

func isChorus(label string) bool {
	return labelRe.MatchString(label) && strings.HasPrefix(label, "C")
}
