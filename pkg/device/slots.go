// Package device identifies a trade-in device from user input.
package device

import "strings"

// Slot names
const (
	SlotBrand   = "brand"
	SlotModel   = "model"
	SlotSeries  = "series"
	SlotStorage = "storage"
	SlotCarrier = "carrier"
)

// SlotSet is a (possibly partial) device identification. Empty string means absent.
type SlotSet struct {
	Brand   string `json:"brand,omitempty"`
	Model   string `json:"model,omitempty"`
	Series  string `json:"series,omitempty"` // mirrors Model
	Storage string `json:"storage,omitempty"`
	Carrier string `json:"carrier,omitempty"`
}

// IsComplete reports whether the set is enough for a price estimate.
// It is always derived from the fields, never stored.
func (s *SlotSet) IsComplete() bool {
	if s == nil {
		return false
	}
	return s.Brand != "" && s.Model != "" && s.Storage != "" && s.Carrier != ""
}

// IsEmpty reports whether no field is populated
func (s *SlotSet) IsEmpty() bool {
	return s == nil || (s.Brand == "" && s.Model == "" && s.Series == "" && s.Storage == "" && s.Carrier == "")
}

// Missing lists the absent required slots, model first, then storage before carrier.
// Brand is never listed on its own: it is only ever recognized together with a model.
func (s *SlotSet) Missing() []string {
	if s == nil {
		return []string{SlotModel, SlotStorage, SlotCarrier}
	}
	var missing []string
	if s.Brand == "" || s.Model == "" {
		missing = append(missing, SlotModel)
	}
	if s.Storage == "" {
		missing = append(missing, SlotStorage)
	}
	if s.Carrier == "" {
		missing = append(missing, SlotCarrier)
	}
	return missing
}

// Describe renders "Brand Model" for use in replies
func (s *SlotSet) Describe() string {
	if s == nil {
		return ""
	}
	return strings.TrimSpace(s.Brand + " " + s.Model)
}
