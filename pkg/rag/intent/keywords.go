package intent

import (
	"regexp"
	"strings"
)

// LocationKeywords trigger the kiosk-finder flow on a whole-word match.
var LocationKeywords = []string{"location", "kiosk", "near", "nearby", "closest", "nearest", "find", "where", "atm"}

// AffirmativeReplies accept a "find the nearest location?" offer when they make up the whole message.
var AffirmativeReplies = []string{"yes", "yeah", "yep", "sure", "ok", "okay", "find", "show"}

// EstimateKeywords and DeviceKeywords must both appear (substring, case-insensitive) to start a price estimate.
var EstimateKeywords = []string{"worth", "value", "price", "estimate", "offer", "quote", "much", "pay", "get", "sell"}

var DeviceKeywords = []string{"phone", "iphone", "samsung", "device", "galaxy", "pixel"}

// LocationOfferPhrase marks an assistant turn that offered to look up a kiosk.
const LocationOfferPhrase = "nearest ecoatm location"

var (
	zipCodePattern = regexp.MustCompile(`\b\d{5}(?:-\d{4})?\b`)

	locationPattern = regexp.MustCompile(`(?i)\b(?:` + alternation(LocationKeywords) + `)\b`)

	// "what is ecoATM", "what's an eco atm"
	whatIsPattern = regexp.MustCompile(`(?i)\bwhat(?:'s|\s+is)\s+(?:an?\s+)?eco\s?atm\b`)
)

func alternation(words []string) string {
	quoted := make([]string, len(words))
	for i, w := range words {
		quoted[i] = regexp.QuoteMeta(w)
	}
	return strings.Join(quoted, "|")
}
