package dto

type KioskLocation struct {
	Name    string `json:"name"`
	Address string `json:"address"`
	City    string `json:"city"`
	State   string `json:"state"`
	ZipCode string `json:"zipCode,omitempty"`
}

type LocationQuery struct {
	Zip string `query:"zip" validate:"required,len=5,numeric"`
}

type LocationResponse struct {
	ZipCode   string          `json:"zipCode"`
	Locations []KioskLocation `json:"locations"`
}
