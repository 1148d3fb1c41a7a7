package device

// Merge combines a stored partial set with a newly extracted one.
// Absent sides yield the other unchanged; otherwise each field is right-biased.
func Merge(existing, incoming *SlotSet) *SlotSet {
	if existing == nil {
		return incoming
	}
	if incoming == nil {
		return existing
	}
	return &SlotSet{
		Brand:   pick(incoming.Brand, existing.Brand),
		Model:   pick(incoming.Model, existing.Model),
		Series:  pick(incoming.Series, existing.Series),
		Storage: pick(incoming.Storage, existing.Storage),
		Carrier: pick(incoming.Carrier, existing.Carrier),
	}
}

func pick(incoming, existing string) string {
	if incoming != "" {
		return incoming
	}
	return existing
}
