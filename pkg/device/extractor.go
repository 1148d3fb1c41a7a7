package device

import (
	"strings"
)

// Extract parses free text into a SlotSet.
// It returns nil unless a brand-family keyword with a model number is present:
// brand is never guessed from storage or carrier alone.
func Extract(text string) *SlotSet {
	m := modelPattern.FindStringSubmatch(text)
	if m == nil {
		return nil
	}

	brand := BrandKeywords[strings.ToLower(m[1])]
	model := capitalize(m[1]) + " " + m[2] + capitalize(m[3]) + capitalize(m[4])

	slots := &SlotSet{
		Brand:  brand,
		Model:  model,
		Series: model,
	}
	slots.Storage = extractStorage(text)
	slots.Carrier = extractCarrier(text)
	return slots
}

// ExtractFollowUp parses an answer to a missing-slot prompt. Unlike Extract it
// accepts storage and carrier without a model, since the model is already known
// from an earlier turn. It returns nil when nothing at all is recognized.
func ExtractFollowUp(text string) *SlotSet {
	if slots := Extract(text); slots != nil {
		return slots
	}
	slots := &SlotSet{
		Storage: extractStorage(text),
		Carrier: extractCarrier(text),
	}
	if slots.IsEmpty() {
		return nil
	}
	return slots
}

// ExtractStructured maps fields from a slot-filling channel. Brand and model are
// required; storage and carrier fall back to DefaultStorage and DefaultCarrier.
func ExtractStructured(fields map[string]string) *SlotSet {
	if len(fields) == 0 {
		return nil
	}
	lookup := make(map[string]string, len(fields))
	for k, v := range fields {
		lookup[strings.ToLower(strings.TrimSpace(k))] = strings.TrimSpace(v)
	}

	brand, model := lookup[SlotBrand], lookup[SlotModel]
	if brand == "" || model == "" {
		return nil
	}

	storage := DefaultStorage
	if v := lookup[SlotStorage]; v != "" {
		storage = NormalizeStorage(v)
	}
	carrier := DefaultCarrier
	if v := lookup[SlotCarrier]; v != "" {
		carrier = NormalizeCarrier(v)
	}

	return &SlotSet{
		Brand:   brand,
		Model:   model,
		Series:  model,
		Storage: storage,
		Carrier: carrier,
	}
}

// NormalizeStorage renders a capacity as "<n>GB" / "<n>TB". Unrecognized values are returned trimmed.
func NormalizeStorage(v string) string {
	if s := extractStorage(v); s != "" {
		return s
	}
	return strings.TrimSpace(v)
}

// NormalizeCarrier maps a carrier to its canonical name. Unrecognized values are returned trimmed.
func NormalizeCarrier(v string) string {
	if c := extractCarrier(v); c != "" {
		return c
	}
	return strings.TrimSpace(v)
}

func extractStorage(text string) string {
	m := storagePattern.FindStringSubmatch(text)
	if m == nil {
		return ""
	}
	return m[1] + strings.ToUpper(m[2])
}

func extractCarrier(text string) string {
	m := carrierPattern.FindStringSubmatch(text)
	if m == nil {
		return ""
	}
	return CarrierKeywords[strings.ToLower(m[1])]
}

// capitalize upper-cases the first letter and lower-cases the rest
func capitalize(token string) string {
	if token == "" {
		return ""
	}
	lower := strings.ToLower(token)
	return strings.ToUpper(lower[:1]) + lower[1:]
}
