package hashtron

import (
	"encoding/json"
	"io"
)

type hashtronJSON struct {
	Program [][2]uint32 `json:"program"`
	Bits    byte        `json:"bits"`
	Filter  []byte      `json:"filter,omitempty"`
}

// MarshalJSON serializes the hashtron program, bit width and filter.
func (h Hashtron) MarshalJSON() ([]byte, error) {
	return json.Marshal(hashtronJSON{
		Program: h.program,
		Bits:    h.bits,
		Filter:  h.filter,
	})
}

// UnmarshalJSON loads a hashtron serialized by MarshalJSON.
func (h *Hashtron) UnmarshalJSON(data []byte) error {
	var raw hashtronJSON
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	h.program = raw.Program
	h.bits = raw.Bits
	if h.bits == 0 {
		h.bits = 1
	}
	h.filter = raw.Filter
	return nil
}

// WriteJSON writes the hashtron as one JSON object to w.
func (h Hashtron) WriteJSON(w io.Writer) error {
	return json.NewEncoder(w).Encode(h)
}

// ReadJSON reads one JSON object from r into the hashtron.
func (h *Hashtron) ReadJSON(r io.Reader) error {
	return json.NewDecoder(r).Decode(h)
}
