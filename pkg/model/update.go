package model

import "encoding/json"

// Opt distinguishes a field that was omitted from a partial update from
// one that was explicitly set (possibly to null, for pointer types).
// The zero value is "omitted".
type Opt[T any] struct {
	value T
	set   bool
}

// Set returns an Opt carrying v.
func Set[T any](v T) Opt[T] {
	return Opt[T]{value: v, set: true}
}

// Get returns the carried value and whether the field was present.
func (o Opt[T]) Get() (T, bool) {
	return o.value, o.set
}

// IsSet reports whether the field was present in the update.
func (o Opt[T]) IsSet() bool { return o.set }

// UnmarshalJSON marks the field as present; a JSON null decodes into the
// zero value of T (nil for pointers), which is how a caller clears a field.
func (o *Opt[T]) UnmarshalJSON(b []byte) error {
	o.set = true
	return json.Unmarshal(b, &o.value)
}

// MarshalJSON encodes the carried value. Omitted fields marshal as null;
// updates are input-side so this only matters for tests and logging.
func (o Opt[T]) MarshalJSON() ([]byte, error) {
	if !o.set {
		return []byte("null"), nil
	}
	return json.Marshal(o.value)
}

// StateUpdate is a partial PresentationState write. Any field left unset
// keeps its current value; an explicit null clears the field. UpdatedAt is
// owned by the store and cannot be supplied.
type StateUpdate struct {
	CurrentQueueItemID          Opt[*string]           `json:"currentQueueItemId"`
	CurrentSongSlideID          Opt[*string]           `json:"currentSongSlideId"`
	LastSongSlideID             Opt[*string]           `json:"lastSongSlideId"`
	CurrentBiblePassageVerseID  Opt[*string]           `json:"currentBiblePassageVerseId"`
	CurrentVerseteTineriEntryID Opt[*string]           `json:"currentVerseteTineriEntryId"`
	IsPresenting                Opt[bool]              `json:"isPresenting"`
	IsHidden                    Opt[bool]              `json:"isHidden"`
	Temporary                   Opt[*TemporaryContent] `json:"temporaryContent"`
}

// StrPtr is a convenience for building updates in code.
func StrPtr(s string) *string { return &s }
