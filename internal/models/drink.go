package models

import (
	"errors"
	"fmt"
	"math"
	"strings"
	"time"
)

// CatalogKey names a standard drink in the catalog
type CatalogKey string

const (
	// DrinkBeer is half a litre of beer
	DrinkBeer CatalogKey = "beer"

	// DrinkWine is a glass of wine
	DrinkWine CatalogKey = "wine"

	// DrinkShot is a shot of spirits
	DrinkShot CatalogKey = "shot"
)

// CatalogEntry describes a standard drink
type CatalogEntry struct {
	Label           string
	VolumeML        float64
	AlcoholFraction float64
}

// Catalog is the fixed set of standard drinks
var Catalog = map[CatalogKey]CatalogEntry{
	DrinkBeer: {Label: "Bier 🍺", VolumeML: 500, AlcoholFraction: 0.05},
	DrinkWine: {Label: "Wein 🍷", VolumeML: 200, AlcoholFraction: 0.12},
	DrinkShot: {Label: "Schnaps 🥃", VolumeML: 20, AlcoholFraction: 0.40},
}

// CatalogKeys returns the catalog keys in display order
func CatalogKeys() []CatalogKey {
	return []CatalogKey{DrinkBeer, DrinkWine, DrinkShot}
}

// Drink spec validation errors
var (
	ErrUnknownDrink           = errors.New("unknown drink type")
	ErrInvalidVolume          = errors.New("drink volume must be positive")
	ErrInvalidAlcoholFraction = errors.New("alcohol fraction must be in [0,1)")
)

// DrinkSpec describes a drink to be logged. It is either a StandardDrink
// or a CustomDrink.
type DrinkSpec interface {
	isDrinkSpec()
}

// StandardDrink refers to a catalog entry
type StandardDrink struct {
	Key CatalogKey
}

// CustomDrink carries its own volume and strength
type CustomDrink struct {
	Category        string
	Subcategory     string
	Name            string
	VolumeML        float64
	AlcoholFraction float64
}

func (StandardDrink) isDrinkSpec() {}
func (CustomDrink) isDrinkSpec() {}

// Label builds the display label for a custom drink
func (c CustomDrink) Label() string {
	parts := make([]string, 0, 3)
	for _, p := range []string{c.Category, c.Subcategory, c.Name} {
		if p = strings.TrimSpace(p); p != "" {
			parts = append(parts, p)
		}
	}
	return "Custom: " + strings.Join(parts, " ")
}

// DrinkEvent is a single logged drink. Volume and strength are resolved
// when the event is created and never change afterwards.
type DrinkEvent struct {
	// ID is the unique identifier for the drink event
	ID string `json:"id"`

	// Type is the display label
	Type string `json:"type"`

	// CatalogKey is set for standard drinks
	CatalogKey CatalogKey `json:"catalog_key,omitempty"`

	// Timestamp is when the drink was logged
	Timestamp time.Time `json:"timestamp"`

	// VolumeML is the drink volume in millilitres
	VolumeML float64 `json:"volume_ml"`

	// AlcoholFraction is ABV divided by 100
	AlcoholFraction float64 `json:"alcohol_fraction"`

	// IsCustom is true for drinks not taken from the catalog
	IsCustom bool `json:"is_custom"`
}

// ResolveDrink validates spec and builds a drink event from it. The caller
// sets ID and Timestamp.
func ResolveDrink(spec DrinkSpec) (*DrinkEvent, error) {
	switch s := spec.(type) {
	case StandardDrink:
		entry, ok := Catalog[s.Key]
		if !ok {
			return nil, fmt.Errorf("%w: %q", ErrUnknownDrink, s.Key)
		}
		return &DrinkEvent{
			Type:            entry.Label,
			CatalogKey:      s.Key,
			VolumeML:        entry.VolumeML,
			AlcoholFraction: entry.AlcoholFraction,
		}, nil
	case CustomDrink:
		if !(s.VolumeML > 0) || math.IsInf(s.VolumeML, 0) {
			return nil, ErrInvalidVolume
		}
		if !(s.AlcoholFraction >= 0 && s.AlcoholFraction < 1) {
			return nil, ErrInvalidAlcoholFraction
		}
		return &DrinkEvent{
			Type:            s.Label(),
			VolumeML:        s.VolumeML,
			AlcoholFraction: s.AlcoholFraction,
			IsCustom:        true,
		}, nil
	case nil:
		return nil, ErrUnknownDrink
	default:
		return nil, fmt.Errorf("%w: %T", ErrUnknownDrink, spec)
	}
}
