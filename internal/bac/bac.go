// Package bac estimates blood-alcohol concentration with a Widmark-style
// formula. Values are in permille.
package bac

import (
	"errors"
	"fmt"
	"math"
	"time"

	"github.com/KirkDiggler/partybac/internal/models"
)

const (
	// EthanolDensity is grams of ethanol per millilitre
	EthanolDensity = 0.789

	// AbsorptionFactor is the share of ingested alcohol that reaches the blood
	AbsorptionFactor = 0.8

	// EliminationPerHour is the permille eliminated per hour
	EliminationPerHour = 0.15

	// RatioMale and RatioFemale are the body-water distribution constants
	RatioMale   = 0.7
	RatioFemale = 0.6
)

// ErrNonPositiveWeight is returned when the body weight cannot be used as a divisor
var ErrNonPositiveWeight = errors.New("weight must be greater than zero")

// DistributionRatio returns r for the given gender
func DistributionRatio(gender models.Gender) float64 {
	if gender == models.GenderMale {
		return RatioMale
	}
	return RatioFemale
}

// AlcoholGrams returns the mass of pure ethanol in a drink
func AlcoholGrams(drink *models.DrinkEvent) float64 {
	return drink.VolumeML * drink.AlcoholFraction * EthanolDensity
}

// Estimate computes the concentration at now.
//
// Every drink counts with its full mass. Elimination runs from the timestamp
// of the first drink in the slice, which is the first one entered, not the
// earliest by time. The slice is not re-sorted.
func Estimate(weightKg float64, gender models.Gender, drinks []*models.DrinkEvent, now time.Time) (float64, error) {
	if len(drinks) == 0 {
		return 0, nil
	}
	if weightKg <= 0 {
		return 0, ErrNonPositiveWeight
	}

	var totalGrams float64
	for _, drink := range drinks {
		totalGrams += AlcoholGrams(drink)
	}

	raw := (totalGrams * AbsorptionFactor) / (weightKg * DistributionRatio(gender))
	hours := now.Sub(drinks[0].Timestamp).Hours()
	eliminated := EliminationPerHour * hours

	return Round(math.Max(0, raw-eliminated)), nil
}

// EstimateParticipant is Estimate applied to a participant
func EstimateParticipant(p *models.Participant, now time.Time) (float64, error) {
	if p == nil {
		return 0, errors.New("participant cannot be nil")
	}
	return Estimate(p.WeightKg, p.Gender, p.Drinks, now)
}

// Round rounds to three decimal places
func Round(v float64) float64 {
	return math.Round(v*1000) / 1000
}

// Format renders a concentration the way it is shown to guests, e.g. "0.322‰"
func Format(v float64) string {
	return fmt.Sprintf("%.3f‰", v)
}
