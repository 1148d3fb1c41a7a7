package device

import "regexp"

// Structured-input defaults. Free text never gets these.
const (
	DefaultStorage = "128GB"
	DefaultCarrier = "Verizon"
)

// BrandKeywords maps a brand-family keyword to its canonical brand
var BrandKeywords = map[string]string{
	"iphone": "Apple",
	"galaxy": "Samsung",
	"pixel":  "Google",
}

// CarrierKeywords maps a carrier keyword (lower-case) to its canonical name
var CarrierKeywords = map[string]string{
	"verizon":     "Verizon",
	"at&t":        "AT&T",
	"att":         "AT&T",
	"t-mobile":    "T-Mobile",
	"tmobile":     "T-Mobile",
	"sprint":      "Sprint",
	"us cellular": "US Cellular",
	"cricket":     "Cricket",
	"unlocked":    "Unlocked",
}

var (
	// keyword, optional series letter, numeral, optional variant letters ("7a", "S21FE"), optional Pro / Max.
	// The variant is lazy so "13pro" still yields Pro.
	modelPattern = regexp.MustCompile(`(?i)\b(iphone|galaxy|pixel)\s*[a-z]?(\d+)[a-z]*?(?:\s*(pro))?(?:\s*(max))?\b`)

	storagePattern = regexp.MustCompile(`(?i)\b(\d+)\s*(gb|tb)\b`)

	carrierPattern = regexp.MustCompile(`(?i)\b(verizon|at&t|att|t-mobile|tmobile|sprint|us cellular|cricket|unlocked)\b`)
)
