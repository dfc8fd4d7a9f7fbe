package models

import (
	"time"
)

// Party is the persisted state of a party: its participants and their drinks
type Party struct {
	// ID is the identifier used by the snapshot store
	ID string `json:"id"`

	// Participants in join order
	Participants []*Participant `json:"participants"`

	// UpdatedAt is when the snapshot was last changed
	UpdatedAt time.Time `json:"updated_at"`
}

// Find returns the participant with the given name and its position, or nil and -1
func (p *Party) Find(name string) (*Participant, int) {
	for i, participant := range p.Participants {
		if participant.Name == name {
			return participant, i
		}
	}
	return nil, -1
}

// TotalDrinks counts drinks across all participants
func (p *Party) TotalDrinks() int {
	total := 0
	for _, participant := range p.Participants {
		total += participant.DrinkCount()
	}
	return total
}

// Clone returns a deep copy of the party
func (p *Party) Clone() *Party {
	if p == nil {
		return nil
	}
	c := &Party{
		ID:           p.ID,
		UpdatedAt:    p.UpdatedAt,
		Participants: make([]*Participant, len(p.Participants)),
	}
	for i, participant := range p.Participants {
		c.Participants[i] = participant.Clone()
	}
	return c
}
