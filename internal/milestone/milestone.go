// Package milestone detects drink-count thresholds.
//
// Thresholds match on exact equality only. A count that is skipped, for
// example by a bulk import, never fires, and removals never re-trigger.
package milestone

import (
	"github.com/KirkDiggler/partybac/internal/models"
)

var (
	// PartyThresholds are total drink counts across the party
	PartyThresholds = []int{50, 100, 150, 200}

	// PersonalThresholds are drink counts of a single participant
	PersonalThresholds = []int{5, 10, 15, 20}
)

// Detect returns the milestones reached by the mutation that left the party
// at totalDrinks and the participant at personalDrinks. The party milestone
// comes first. Messages are left empty for the caller to fill.
func Detect(totalDrinks int, participant string, personalDrinks int) []models.Milestone {
	var reached []models.Milestone
	if contains(PartyThresholds, totalDrinks) {
		reached = append(reached, models.Milestone{
			Scope:       models.MilestoneScopeParty,
			Participant: participant,
			Count:       totalDrinks,
		})
	}
	if contains(PersonalThresholds, personalDrinks) {
		reached = append(reached, models.Milestone{
			Scope:       models.MilestoneScopePersonal,
			Participant: participant,
			Count:       personalDrinks,
		})
	}
	return reached
}

func contains(thresholds []int, n int) bool {
	for _, t := range thresholds {
		if t == n {
			return true
		}
	}
	return false
}
