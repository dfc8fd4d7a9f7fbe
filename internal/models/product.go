package models

// Product is a drink returned by a product lookup. Volume and strength are
// optional because the lookup service does not always know them.
type Product struct {
	Code            string   `json:"code"`
	Name            string   `json:"name"`
	VolumeML        *float64 `json:"volume_ml,omitempty"`
	AlcoholFraction *float64 `json:"alcohol_fraction,omitempty"`
	ImageURL        string   `json:"image_url,omitempty"`
}
