// Package leaderboard ranks participants by their current concentration.
// Nothing is cached: every call recomputes from the drinks and the instant given.
package leaderboard

import (
	"fmt"
	"sort"
	"time"

	"github.com/KirkDiggler/partybac/internal/bac"
	"github.com/KirkDiggler/partybac/internal/models"
)

// RankSymbols are the medals for the first three positions
var RankSymbols = []string{"🥇", "🥈", "🥉"}

// Rank returns one entry per participant, highest concentration first.
// Ties are broken by name, then by the order participants were given in.
func Rank(participants []*models.Participant, now time.Time) ([]*models.LeaderboardEntry, error) {
	entries := make([]*models.LeaderboardEntry, 0, len(participants))
	for _, p := range participants {
		value, err := bac.EstimateParticipant(p, now)
		if err != nil {
			return nil, fmt.Errorf("failed to estimate %s: %w", p.Name, err)
		}
		entries = append(entries, &models.LeaderboardEntry{
			Name:       p.Name,
			BAC:        value,
			DrinkCount: p.DrinkCount(),
			Gender:     p.Gender,
			Status:     p.Status,
			SocialLink: p.SocialLink,
		})
	}

	sort.SliceStable(entries, func(i, j int) bool {
		if entries[i].BAC != entries[j].BAC {
			return entries[i].BAC > entries[j].BAC
		}
		return entries[i].Name < entries[j].Name
	})

	for i, entry := range entries {
		entry.Position = i + 1
		if i < len(RankSymbols) {
			entry.Symbol = RankSymbols[i]
		}
	}

	return entries, nil
}

// Average returns the arithmetic mean of the ranked concentrations, or 0 for none
func Average(entries []*models.LeaderboardEntry) float64 {
	if len(entries) == 0 {
		return 0
	}
	var sum float64
	for _, entry := range entries {
		sum += entry.BAC
	}
	return bac.Round(sum / float64(len(entries)))
}

// Build assembles the full leaderboard for a party at now
func Build(party *models.Party, now time.Time) (*models.Leaderboard, error) {
	var participants []*models.Participant
	if party != nil {
		participants = party.Participants
	}

	entries, err := Rank(participants, now)
	if err != nil {
		return nil, err
	}

	total := 0
	for _, entry := range entries {
		total += entry.DrinkCount
	}

	return &models.Leaderboard{
		Entries:          entries,
		AverageBAC:       Average(entries),
		TotalDrinks:      total,
		ParticipantCount: len(entries),
		GeneratedAt:      now,
	}, nil
}
