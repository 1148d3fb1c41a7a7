package dto

// EstimateRequest is the body sent to the pricing service
type EstimateRequest struct {
	Brand   string `json:"brand"`
	Model   string `json:"model"`
	Series  string `json:"series,omitempty"`
	Storage string `json:"storage"`
	Carrier string `json:"carrier"`
}

// Estimate is the pricing service answer. Offer is nil when no price could be quoted.
type Estimate struct {
	Offer    *float64 `json:"offer"`
	OfferId  string   `json:"offerId"`
	DeviceId string   `json:"deviceId"`
	Currency string   `json:"currency"`
}
