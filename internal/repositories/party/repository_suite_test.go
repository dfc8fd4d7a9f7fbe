package party

import (
	"context"
	"time"

	"github.com/KirkDiggler/partybac/internal/models"
	"github.com/stretchr/testify/suite"
)

// repositoryTestSuite holds the behavior every snapshot store must share.
// Backend suites embed it and set repo in SetupTest.
type repositoryTestSuite struct {
	suite.Suite
	repo    Repository
	ctx     context.Context
	testNow time.Time
}

func (s *repositoryTestSuite) setupCommon() {
	s.ctx = context.Background()
	s.testNow = time.Date(2024, 12, 31, 22, 0, 0, 0, time.UTC)
}

func (s *repositoryTestSuite) testParty(id string) *models.Party {
	return &models.Party{
		ID:        id,
		UpdatedAt: s.testNow,
		Participants: []*models.Participant{
			{
				Name:       "Alina",
				WeightKg:   62,
				Gender:     models.GenderFemale,
				Status:     models.StatusSingle,
				SocialLink: "https://instagram.com/alina",
				JoinedAt:   s.testNow,
				Drinks: []*models.DrinkEvent{
					{ID: "drink-1", Type: "Bier 🍺", CatalogKey: models.DrinkBeer, Timestamp: s.testNow, VolumeML: 500, AlcoholFraction: 0.05},
					{ID: "drink-2", Type: "Custom: Aperol", Timestamp: s.testNow.Add(time.Minute), VolumeML: 200, AlcoholFraction: 0.11, IsCustom: true},
				},
			},
			{
				Name:     "Ben",
				WeightKg: 85,
				Gender:   models.GenderMale,
				Status:   models.StatusTaken,
				JoinedAt: s.testNow,
				Drinks:   []*models.DrinkEvent{},
			},
		},
	}
}

func (s *repositoryTestSuite) TestSaveAndLoadSnapshot() {
	party := s.testParty("silvester")

	err := s.repo.SaveSnapshot(s.ctx, &SaveSnapshotInput{Party: party})
	s.Require().NoError(err)

	output, err := s.repo.LoadSnapshot(s.ctx, &LoadSnapshotInput{PartyID: "silvester"})
	s.Require().NoError(err)
	s.Require().NotNil(output.Party)

	loaded := output.Party
	s.Equal("silvester", loaded.ID)
	s.Require().Len(loaded.Participants, 2)
	s.Equal("Alina", loaded.Participants[0].Name)
	s.Equal("Ben", loaded.Participants[1].Name)
	s.Equal(models.GenderFemale, loaded.Participants[0].Gender)
	s.Equal("https://instagram.com/alina", loaded.Participants[0].SocialLink)

	s.Require().Len(loaded.Participants[0].Drinks, 2)
	s.Equal("drink-1", loaded.Participants[0].Drinks[0].ID)
	s.Equal("drink-2", loaded.Participants[0].Drinks[1].ID)
	s.True(loaded.Participants[0].Drinks[1].IsCustom)
	s.Equal(0.11, loaded.Participants[0].Drinks[1].AlcoholFraction)
	s.True(s.testNow.Equal(loaded.Participants[0].Drinks[0].Timestamp))
}

func (s *repositoryTestSuite) TestSaveSnapshotOverwrites() {
	party := s.testParty("silvester")
	s.Require().NoError(s.repo.SaveSnapshot(s.ctx, &SaveSnapshotInput{Party: party}))

	party.Participants = party.Participants[:1]
	party.UpdatedAt = s.testNow.Add(time.Hour)
	s.Require().NoError(s.repo.SaveSnapshot(s.ctx, &SaveSnapshotInput{Party: party}))

	output, err := s.repo.LoadSnapshot(s.ctx, &LoadSnapshotInput{PartyID: "silvester"})
	s.Require().NoError(err)
	s.Len(output.Party.Participants, 1)
}

func (s *repositoryTestSuite) TestLoadMissingSnapshot() {
	output, err := s.repo.LoadSnapshot(s.ctx, &LoadSnapshotInput{PartyID: "nope"})
	s.Require().Error(err)
	s.ErrorIs(err, ErrSnapshotNotFound)
	s.Nil(output)
}

func (s *repositoryTestSuite) TestDeleteSnapshot() {
	s.Require().NoError(s.repo.SaveSnapshot(s.ctx, &SaveSnapshotInput{Party: s.testParty("silvester")}))

	err := s.repo.DeleteSnapshot(s.ctx, &DeleteSnapshotInput{PartyID: "silvester"})
	s.Require().NoError(err)

	_, err = s.repo.LoadSnapshot(s.ctx, &LoadSnapshotInput{PartyID: "silvester"})
	s.ErrorIs(err, ErrSnapshotNotFound)

	// deleting again is not an error
	s.NoError(s.repo.DeleteSnapshot(s.ctx, &DeleteSnapshotInput{PartyID: "silvester"}))
}

func (s *repositoryTestSuite) TestListParties() {
	older := s.testParty("older")
	newer := s.testParty("newer")
	newer.UpdatedAt = s.testNow.Add(time.Hour)

	s.Require().NoError(s.repo.SaveSnapshot(s.ctx, &SaveSnapshotInput{Party: older}))
	s.Require().NoError(s.repo.SaveSnapshot(s.ctx, &SaveSnapshotInput{Party: newer}))

	ids, err := s.repo.ListParties(s.ctx)
	s.Require().NoError(err)
	s.Equal([]string{"newer", "older"}, ids)

	s.Require().NoError(s.repo.DeleteSnapshot(s.ctx, &DeleteSnapshotInput{PartyID: "newer"}))
	ids, err = s.repo.ListParties(s.ctx)
	s.Require().NoError(err)
	s.Equal([]string{"older"}, ids)
}

func (s *repositoryTestSuite) TestInvalidInput() {
	s.Error(s.repo.SaveSnapshot(s.ctx, nil))
	s.Error(s.repo.SaveSnapshot(s.ctx, &SaveSnapshotInput{Party: &models.Party{}}))

	_, err := s.repo.LoadSnapshot(s.ctx, &LoadSnapshotInput{})
	s.Error(err)

	s.Error(s.repo.DeleteSnapshot(s.ctx, &DeleteSnapshotInput{}))
}
