package device

import "strings"

// SlotPhrases are the human renderings of each promptable slot
var SlotPhrases = map[string]string{
	SlotModel:   "device brand and model (e.g., iPhone 13, Galaxy S21)",
	SlotStorage: "storage capacity (e.g., 128GB, 256GB)",
	SlotCarrier: "carrier (e.g., Verizon, AT&T, T-Mobile, or Unlocked)",
}

// MissingPrompt renders "I need the X", "I need the X and Y" or "I need the X, Y and Z"
// for the absent slots of s. It returns "" when nothing is missing.
func MissingPrompt(s *SlotSet) string {
	missing := s.Missing()
	if len(missing) == 0 {
		return ""
	}

	phrases := make([]string, len(missing))
	for i, slot := range missing {
		phrases[i] = SlotPhrases[slot]
	}

	if len(phrases) == 1 {
		return "I need the " + phrases[0]
	}
	head := strings.Join(phrases[:len(phrases)-1], ", ")
	return "I need the " + head + " and " + phrases[len(phrases)-1]
}
