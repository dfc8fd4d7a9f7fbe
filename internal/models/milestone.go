package models

// MilestoneScope says whether a milestone belongs to the party or a participant
type MilestoneScope string

const (
	// MilestoneScopeParty is reached by the party's total drink count
	MilestoneScopeParty MilestoneScope = "party"

	// MilestoneScopePersonal is reached by one participant's drink count
	MilestoneScopePersonal MilestoneScope = "personal"
)

// Milestone is a threshold reached by a drink count
type Milestone struct {
	// Scope is party or personal
	Scope MilestoneScope `json:"scope"`

	// Participant is the participant whose drink triggered the milestone
	Participant string `json:"participant"`

	// Count is the threshold that was hit
	Count int `json:"count"`

	// Message is the user-facing text
	Message string `json:"message"`
}
