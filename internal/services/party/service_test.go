package party

import (
	"context"
	"errors"
	"fmt"
	"math"
	"testing"
	"time"

	"github.com/KirkDiggler/partybac/internal/activity"
	"github.com/KirkDiggler/partybac/internal/bac"
	clockMocks "github.com/KirkDiggler/partybac/internal/common/clock/mocks"
	uuidMocks "github.com/KirkDiggler/partybac/internal/common/uuid/mocks"
	"github.com/KirkDiggler/partybac/internal/lookup"
	lookupMocks "github.com/KirkDiggler/partybac/internal/lookup/mocks"
	"github.com/KirkDiggler/partybac/internal/models"
	partyRepo "github.com/KirkDiggler/partybac/internal/repositories/party"
	repoMocks "github.com/KirkDiggler/partybac/internal/repositories/party/mocks"
	"github.com/KirkDiggler/partybac/internal/services/messaging"
	"github.com/stretchr/testify/suite"
	"go.uber.org/mock/gomock"
)

// staticVerifier accepts a single credential
type staticVerifier string

func (v staticVerifier) Verify(plain string) bool {
	return plain != "" && plain == string(v)
}

type PartyServiceTestSuite struct {
	suite.Suite
	mockCtrl    *gomock.Controller
	mockRepo    *repoMocks.MockRepository
	mockLookup  *lookupMocks.MockLookup
	mockClock   *clockMocks.MockClock
	mockUUID    *uuidMocks.MockUUID
	activityLog *activity.Log
	service     Service
	ctx         context.Context

	// Test data
	now         time.Time
	testPartyID string
	credential  string
}

func (s *PartyServiceTestSuite) SetupTest() {
	s.mockCtrl = gomock.NewController(s.T())
	s.mockRepo = repoMocks.NewMockRepository(s.mockCtrl)
	s.mockLookup = lookupMocks.NewMockLookup(s.mockCtrl)
	s.mockClock = clockMocks.NewMockClock(s.mockCtrl)
	s.mockUUID = uuidMocks.NewMockUUID(s.mockCtrl)
	s.activityLog = activity.New(nil)

	s.ctx = context.Background()
	s.now = time.Date(2024, 12, 31, 21, 0, 0, 0, time.UTC)
	s.testPartyID = "silvester-2024"
	s.credential = "prost"

	// The clock reads s.now so tests can move time forward
	s.mockClock.EXPECT().Now().DoAndReturn(func() time.Time { return s.now }).AnyTimes()
	s.mockUUID.EXPECT().NewUUID().Return("test-id").AnyTimes()

	messagingService, err := messaging.NewService(&messaging.ServiceConfig{Seed: 1})
	s.Require().NoError(err)

	svc, err := New(&Config{
		PartyID:       s.testPartyID,
		Repository:    s.mockRepo,
		Lookup:        s.mockLookup,
		Messaging:     messagingService,
		Clock:         s.mockClock,
		UUIDGenerator: s.mockUUID,
		ResetVerifier: staticVerifier(s.credential),
		ActivityLog:   s.activityLog,
	})
	s.Require().NoError(err)
	s.service = svc
}

func (s *PartyServiceTestSuite) TearDownTest() {
	s.mockCtrl.Finish()
}

// expectSaves accepts every snapshot save
func (s *PartyServiceTestSuite) expectSaves() {
	s.mockRepo.EXPECT().SaveSnapshot(gomock.Any(), gomock.Any()).Return(nil).AnyTimes()
}

func (s *PartyServiceTestSuite) join(name string) {
	_, err := s.service.Join(s.ctx, &JoinInput{
		Name:     name,
		WeightKg: 70,
		Gender:   models.GenderMale,
		Status:   models.StatusSingle,
	})
	s.Require().NoError(err)
}

func (s *PartyServiceTestSuite) beer(name string) *AddDrinkOutput {
	output, err := s.service.AddDrink(s.ctx, &AddDrinkInput{
		Name:  name,
		Drink: models.StandardDrink{Key: models.DrinkBeer},
	})
	s.Require().NoError(err)
	return output
}

func (s *PartyServiceTestSuite) restore(party *models.Party) {
	s.mockRepo.EXPECT().
		LoadSnapshot(gomock.Any(), &partyRepo.LoadSnapshotInput{PartyID: s.testPartyID}).
		Return(&partyRepo.LoadSnapshotOutput{Party: party}, nil)

	_, err := s.service.Restore(s.ctx, &RestoreInput{})
	s.Require().NoError(err)
}

func (s *PartyServiceTestSuite) participantWithBeers(name string, beers int) *models.Participant {
	p := &models.Participant{
		Name:     name,
		WeightKg: 80,
		Gender:   models.GenderFemale,
		Status:   models.StatusTaken,
		JoinedAt: s.now,
	}
	for i := 0; i < beers; i++ {
		p.Drinks = append(p.Drinks, &models.DrinkEvent{
			ID:              fmt.Sprintf("%s-%d", name, i),
			Type:            "Bier 🍺",
			CatalogKey:      models.DrinkBeer,
			Timestamp:       s.now,
			VolumeML:        500,
			AlcoholFraction: 0.05,
		})
	}
	return p
}

func (s *PartyServiceTestSuite) TestNew_ValidatesDependencies() {
	messagingService, err := messaging.NewService(nil)
	s.Require().NoError(err)

	valid := func() *Config {
		return &Config{
			PartyID:       s.testPartyID,
			Repository:    s.mockRepo,
			Lookup:        s.mockLookup,
			Messaging:     messagingService,
			Clock:         s.mockClock,
			UUIDGenerator: s.mockUUID,
		}
	}

	testCases := []struct {
		name   string
		mutate func(*Config) *Config
		err    error
	}{
		{name: "nil config", mutate: func(*Config) *Config { return nil }, err: ErrNilConfig},
		{name: "empty party id", mutate: func(c *Config) *Config { c.PartyID = " "; return c }, err: ErrEmptyPartyID},
		{name: "nil repository", mutate: func(c *Config) *Config { c.Repository = nil; return c }, err: ErrNilRepository},
		{name: "nil lookup", mutate: func(c *Config) *Config { c.Lookup = nil; return c }, err: ErrNilLookup},
		{name: "nil messaging", mutate: func(c *Config) *Config { c.Messaging = nil; return c }, err: ErrNilMessaging},
		{name: "nil clock", mutate: func(c *Config) *Config { c.Clock = nil; return c }, err: ErrNilClock},
		{name: "nil uuid", mutate: func(c *Config) *Config { c.UUIDGenerator = nil; return c }, err: ErrNilUUIDGenerator},
	}
	for _, tc := range testCases {
		s.Run(tc.name, func() {
			svc, err := New(tc.mutate(valid()))
			s.ErrorIs(err, tc.err)
			s.Nil(svc)
		})
	}

	svc, err := New(valid())
	s.NoError(err)
	s.NotNil(svc)
}

func (s *PartyServiceTestSuite) TestRestore_NoSnapshot() {
	s.mockRepo.EXPECT().
		LoadSnapshot(gomock.Any(), gomock.Any()).
		Return(nil, partyRepo.ErrSnapshotNotFound)

	output, err := s.service.Restore(s.ctx, &RestoreInput{})
	s.Require().NoError(err)
	s.False(output.Found)

	board, err := s.service.GetLeaderboard(s.ctx, &GetLeaderboardInput{})
	s.Require().NoError(err)
	s.Empty(board.Leaderboard.Entries)
}

func (s *PartyServiceTestSuite) TestRestore_LoadsSnapshot() {
	s.restore(&models.Party{
		ID:           s.testPartyID,
		Participants: []*models.Participant{s.participantWithBeers("Alina", 2)},
	})

	output, err := s.service.GetParticipant(s.ctx, &GetParticipantInput{Name: "Alina"})
	s.Require().NoError(err)
	s.Equal(2, output.Participant.DrinkCount())
	s.Greater(output.BAC, 0.0)
}

func (s *PartyServiceTestSuite) TestRestore_RepositoryDown() {
	s.mockRepo.EXPECT().
		LoadSnapshot(gomock.Any(), gomock.Any()).
		Return(nil, errors.New("connection refused"))

	_, err := s.service.Restore(s.ctx, &RestoreInput{})
	s.Require().Error(err)
	s.Equal(KindExternalUnavailable, KindOf(err))
}

func (s *PartyServiceTestSuite) TestJoin_Success() {
	s.mockRepo.EXPECT().
		SaveSnapshot(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, input *partyRepo.SaveSnapshotInput) error {
			s.Equal(s.testPartyID, input.Party.ID)
			s.Require().Len(input.Party.Participants, 1)
			s.Equal("Alina", input.Party.Participants[0].Name)
			s.Equal(s.now, input.Party.UpdatedAt)
			return nil
		})

	output, err := s.service.Join(s.ctx, &JoinInput{
		Name:       "Alina",
		WeightKg:   62,
		Gender:     models.GenderFemale,
		Status:     models.StatusComplicated,
		SocialLink: "https://instagram.com/alina",
	})
	s.Require().NoError(err)
	s.Equal("Alina", output.Participant.Name)
	s.Equal(s.now, output.Participant.JoinedAt)
	s.Contains(output.Message, "Alina")

	entries := s.activityLog.List()
	s.Require().Len(entries, 1)
	s.Equal(models.ActivityJoin, entries[0].Kind)
	s.Equal("Alina", entries[0].Join.Participant)
}

func (s *PartyServiceTestSuite) TestJoin_Validation() {
	s.expectSaves()
	s.join("Alina")

	testCases := []struct {
		name  string
		input *JoinInput
		err   error
	}{
		{name: "nil input", input: nil, err: ErrNilInput},
		{name: "empty name", input: &JoinInput{Name: "", WeightKg: 70, Gender: models.GenderMale, Status: models.StatusSingle}, err: ErrEmptyName},
		{name: "blank name", input: &JoinInput{Name: "   ", WeightKg: 70, Gender: models.GenderMale, Status: models.StatusSingle}, err: ErrEmptyName},
		{name: "duplicate", input: &JoinInput{Name: "Alina", WeightKg: 70, Gender: models.GenderMale, Status: models.StatusSingle}, err: ErrDuplicateName},
		{name: "zero weight", input: &JoinInput{Name: "Ben", WeightKg: 0, Gender: models.GenderMale, Status: models.StatusSingle}, err: ErrNonPositiveWeight},
		{name: "negative weight", input: &JoinInput{Name: "Ben", WeightKg: -3, Gender: models.GenderMale, Status: models.StatusSingle}, err: ErrNonPositiveWeight},
		{name: "NaN weight", input: &JoinInput{Name: "Ben", WeightKg: math.NaN(), Gender: models.GenderMale, Status: models.StatusSingle}, err: ErrNonPositiveWeight},
		{name: "infinite weight", input: &JoinInput{Name: "Ben", WeightKg: math.Inf(1), Gender: models.GenderMale, Status: models.StatusSingle}, err: ErrNonPositiveWeight},
		{name: "bad gender", input: &JoinInput{Name: "Ben", WeightKg: 70, Gender: "robot", Status: models.StatusSingle}, err: ErrInvalidGender},
		{name: "bad status", input: &JoinInput{Name: "Ben", WeightKg: 70, Gender: models.GenderMale, Status: "busy"}, err: ErrInvalidStatus},
	}
	for _, tc := range testCases {
		s.Run(tc.name, func() {
			_, err := s.service.Join(s.ctx, tc.input)
			s.ErrorIs(err, tc.err)
			s.Equal(KindValidation, KindOf(err))
		})
	}

	// Names are case-sensitive
	s.join("alina")
}

func (s *PartyServiceTestSuite) TestJoin_NameIsMatchedExactly() {
	s.expectSaves()
	s.join(" Bob")

	output := s.beer(" Bob")
	s.Equal(0.322, output.BAC)

	_, err := s.service.AddDrink(s.ctx, &AddDrinkInput{Name: "Bob", Drink: models.StandardDrink{Key: models.DrinkBeer}})
	s.ErrorIs(err, ErrParticipantNotFound)

	participant, err := s.service.GetParticipant(s.ctx, &GetParticipantInput{Name: " Bob"})
	s.Require().NoError(err)
	s.Equal(" Bob", participant.Participant.Name)

	_, err = s.service.RemoveDrink(s.ctx, &RemoveDrinkInput{Name: " Bob", Index: 0})
	s.Require().NoError(err)

	_, err = s.service.Leave(s.ctx, &LeaveInput{Name: " Bob"})
	s.Require().NoError(err)
}

func (s *PartyServiceTestSuite) TestAddDrink_NonFiniteCustomDrink() {
	s.expectSaves()
	s.join("Alina")

	for _, drink := range []models.CustomDrink{
		{Name: "Mystery", VolumeML: math.Inf(1), AlcoholFraction: 0.05},
		{Name: "Mystery", VolumeML: 330, AlcoholFraction: math.NaN()},
	} {
		_, err := s.service.AddDrink(s.ctx, &AddDrinkInput{Name: "Alina", Drink: drink})
		s.ErrorIs(err, ErrInvalidDrink)
		s.Equal(KindValidation, KindOf(err))
	}

	output, err := s.service.GetParticipant(s.ctx, &GetParticipantInput{Name: "Alina"})
	s.Require().NoError(err)
	s.Zero(output.Participant.DrinkCount())
}

func (s *PartyServiceTestSuite) TestAddDrink_Beer() {
	s.expectSaves()
	s.join("Alina")

	output := s.beer("Alina")
	s.Equal(0.322, output.BAC)
	s.Equal("Bier 🍺", output.Drink.Type)
	s.Equal(s.now, output.Drink.Timestamp)
	s.Equal("test-id", output.Drink.ID)
	s.Empty(output.Milestones)
	s.Equal("Getränk wurde eingetragen!", output.Title)
	s.Contains(output.Message, "Aktueller Promillewert: 0.322‰")

	entries := s.activityLog.List()
	s.Require().Len(entries, 2)
	s.Equal(models.ActivityDrink, entries[0].Kind)
	s.Equal("Alina", entries[0].Drink.Participant)
	s.Equal("Bier 🍺", entries[0].Drink.Drink)
	s.Equal(0.322, entries[0].Drink.BAC)
}

func (s *PartyServiceTestSuite) TestAddDrink_Custom() {
	s.expectSaves()
	s.join("Alina")

	output, err := s.service.AddDrink(s.ctx, &AddDrinkInput{
		Name: "Alina",
		Drink: models.CustomDrink{
			Category:        "Cocktail",
			Name:            "Mojito",
			VolumeML:        300,
			AlcoholFraction: 0.1,
		},
	})
	s.Require().NoError(err)
	s.True(output.Drink.IsCustom)
	s.Equal("Custom: Cocktail Mojito", output.Drink.Type)
	s.Equal("Custom Getränk wurde eingetragen!", output.Title)
}

func (s *PartyServiceTestSuite) TestAddDrink_Errors() {
	s.expectSaves()
	s.join("Alina")

	_, err := s.service.AddDrink(s.ctx, &AddDrinkInput{Name: "Ghost", Drink: models.StandardDrink{Key: models.DrinkBeer}})
	s.ErrorIs(err, ErrParticipantNotFound)
	s.Equal(KindNotFound, KindOf(err))

	_, err = s.service.AddDrink(s.ctx, &AddDrinkInput{Name: "Alina", Drink: models.StandardDrink{Key: "mead"}})
	s.ErrorIs(err, ErrInvalidDrink)
	s.ErrorIs(err, models.ErrUnknownDrink)
	s.Equal(KindValidation, KindOf(err))

	_, err = s.service.AddDrink(s.ctx, &AddDrinkInput{Name: "Alina", Drink: models.CustomDrink{VolumeML: 0, AlcoholFraction: 0.1}})
	s.ErrorIs(err, models.ErrInvalidVolume)

	_, err = s.service.AddDrink(s.ctx, &AddDrinkInput{Name: "Alina", Drink: models.CustomDrink{VolumeML: 100, AlcoholFraction: 1.2}})
	s.ErrorIs(err, models.ErrInvalidAlcoholFraction)

	_, err = s.service.AddDrink(s.ctx, &AddDrinkInput{Name: "Alina"})
	s.ErrorIs(err, ErrInvalidDrink)

	participant, err := s.service.GetParticipant(s.ctx, &GetParticipantInput{Name: "Alina"})
	s.Require().NoError(err)
	s.Zero(participant.Participant.DrinkCount())
}

func (s *PartyServiceTestSuite) TestAddDrink_SaveFailureLeavesStateUnchanged() {
	gomock.InOrder(
		s.mockRepo.EXPECT().SaveSnapshot(gomock.Any(), gomock.Any()).Return(nil),
		s.mockRepo.EXPECT().SaveSnapshot(gomock.Any(), gomock.Any()).Return(errors.New("redis down")),
		s.mockRepo.EXPECT().SaveSnapshot(gomock.Any(), gomock.Any()).Return(nil),
	)
	s.join("Alina")

	_, err := s.service.AddDrink(s.ctx, &AddDrinkInput{Name: "Alina", Drink: models.StandardDrink{Key: models.DrinkBeer}})
	s.Require().Error(err)
	var unavailable *UnavailableError
	s.Require().ErrorAs(err, &unavailable)
	s.Equal("repository", unavailable.Collaborator)
	s.Equal(KindExternalUnavailable, KindOf(err))

	participant, err := s.service.GetParticipant(s.ctx, &GetParticipantInput{Name: "Alina"})
	s.Require().NoError(err)
	s.Zero(participant.Participant.DrinkCount())
	s.Len(s.activityLog.List(), 1, "only the join is recorded")

	// The same mutation succeeds once the store is back
	output := s.beer("Alina")
	s.Equal(0.322, output.BAC)
}

func (s *PartyServiceTestSuite) TestAddDrink_PartyMilestone() {
	s.expectSaves()
	s.restore(&models.Party{
		ID: s.testPartyID,
		Participants: []*models.Participant{
			s.participantWithBeers("Alina", 30),
			s.participantWithBeers("Ben", 19),
		},
	})

	output := s.beer("Alina")
	s.Require().Len(output.Milestones, 1)
	s.Equal(models.MilestoneScopeParty, output.Milestones[0].Scope)
	s.Equal(50, output.Milestones[0].Count)
	s.Contains(output.Milestones[0].Message, "50")

	entries := s.activityLog.List()
	s.Require().Len(entries, 2)
	s.Equal(models.ActivityMilestone, entries[0].Kind)
	s.Equal(output.Milestones[0].Message, entries[0].Milestone.Message)
	s.Equal(models.ActivityDrink, entries[1].Kind)

	output = s.beer("Alina")
	s.Empty(output.Milestones, "51 does not fire")

	output = s.beer("Ben")
	s.Require().Len(output.Milestones, 1)
	s.Equal(models.MilestoneScopePersonal, output.Milestones[0].Scope)
	s.Equal(20, output.Milestones[0].Count)
	s.Equal("Ben", output.Milestones[0].Participant)
}

func (s *PartyServiceTestSuite) TestAddDrink_PersonalMilestones() {
	s.expectSaves()
	s.join("Carla")

	var fired []int
	for i := 1; i <= 21; i++ {
		output := s.beer("Carla")
		for _, m := range output.Milestones {
			s.Equal(models.MilestoneScopePersonal, m.Scope)
			fired = append(fired, m.Count)
		}
	}
	s.Equal([]int{5, 10, 15, 20}, fired)
}

func (s *PartyServiceTestSuite) TestRemoveDrink_FiresNoMilestone() {
	s.expectSaves()
	s.join("Carla")
	for i := 0; i < 6; i++ {
		s.beer("Carla")
	}

	before := s.activityLog.Len()
	_, err := s.service.RemoveDrink(s.ctx, &RemoveDrinkInput{Name: "Carla", Index: 5})
	s.Require().NoError(err)
	s.Equal(before, s.activityLog.Len(), "dropping back to 5 records nothing")

	// Thresholds match exact counts, so reaching 6 again is silent
	output := s.beer("Carla")
	s.Empty(output.Milestones)
}

func (s *PartyServiceTestSuite) TestRemoveDrink_OnlyDrinkYieldsZero() {
	s.expectSaves()
	s.join("Alina")
	s.beer("Alina")
	entries := s.activityLog.Len()

	output, err := s.service.RemoveDrink(s.ctx, &RemoveDrinkInput{Name: "Alina", Index: 0})
	s.Require().NoError(err)
	s.Equal(0.0, output.BAC)
	s.Equal("Bier 🍺", output.Removed.Type)
	s.Equal(entries, s.activityLog.Len(), "removal records no activity")

	estimate, err := s.service.EstimateBAC(s.ctx, &EstimateBACInput{Name: "Alina"})
	s.Require().NoError(err)
	s.Equal(0.0, estimate.BAC)
}

func (s *PartyServiceTestSuite) TestRemoveDrink_CorruptWeightStillRemoves() {
	broken := s.participantWithBeers("Ghost", 2)
	broken.WeightKg = 0
	s.restore(&models.Party{ID: s.testPartyID, Participants: []*models.Participant{broken}})
	s.expectSaves()

	output, err := s.service.RemoveDrink(s.ctx, &RemoveDrinkInput{Name: "Ghost", Index: 1})
	s.Require().NoError(err)
	s.Equal("Ghost-1", output.Removed.ID)
	s.Zero(output.BAC)

	participant, err := s.service.GetParticipant(s.ctx, &GetParticipantInput{Name: "Ghost", At: s.now})
	s.ErrorIs(err, bac.ErrNonPositiveWeight)
	s.Nil(participant)

	_, err = s.service.RemoveDrink(s.ctx, &RemoveDrinkInput{Name: "Ghost", Index: 0})
	s.Require().NoError(err)
	_, err = s.service.RemoveDrink(s.ctx, &RemoveDrinkInput{Name: "Ghost", Index: 0})
	s.ErrorIs(err, ErrDrinkIndexOutOfRange)
}

func (s *PartyServiceTestSuite) TestRemoveDrink_ShiftsIndices() {
	s.expectSaves()
	s.join("Alina")
	for _, key := range []models.CatalogKey{models.DrinkBeer, models.DrinkWine, models.DrinkShot} {
		_, err := s.service.AddDrink(s.ctx, &AddDrinkInput{Name: "Alina", Drink: models.StandardDrink{Key: key}})
		s.Require().NoError(err)
	}

	_, err := s.service.RemoveDrink(s.ctx, &RemoveDrinkInput{Name: "Alina", Index: 0})
	s.Require().NoError(err)

	output, err := s.service.GetParticipant(s.ctx, &GetParticipantInput{Name: "Alina"})
	s.Require().NoError(err)
	s.Require().Len(output.Participant.Drinks, 2)
	s.Equal("Wein 🍷", output.Participant.Drinks[0].Type)
	s.Equal("Schnaps 🥃", output.Participant.Drinks[1].Type)
}

func (s *PartyServiceTestSuite) TestRemoveDrink_Errors() {
	s.expectSaves()
	s.join("Alina")
	s.beer("Alina")

	_, err := s.service.RemoveDrink(s.ctx, &RemoveDrinkInput{Name: "Ghost", Index: 0})
	s.ErrorIs(err, ErrParticipantNotFound)

	for _, index := range []int{-1, 1, 99} {
		_, err = s.service.RemoveDrink(s.ctx, &RemoveDrinkInput{Name: "Alina", Index: index})
		s.ErrorIs(err, ErrDrinkIndexOutOfRange)
		s.Equal(KindNotFound, KindOf(err))
	}

	output, err := s.service.GetParticipant(s.ctx, &GetParticipantInput{Name: "Alina"})
	s.Require().NoError(err)
	s.Equal(1, output.Participant.DrinkCount())
}

func (s *PartyServiceTestSuite) TestLeave() {
	s.expectSaves()
	s.join("Alina")
	s.join("Ben")
	s.beer("Alina")

	output, err := s.service.Leave(s.ctx, &LeaveInput{Name: "Alina"})
	s.Require().NoError(err)
	s.Equal(1, output.Participant.DrinkCount())

	_, err = s.service.GetParticipant(s.ctx, &GetParticipantInput{Name: "Alina"})
	s.ErrorIs(err, ErrParticipantNotFound)

	board, err := s.service.GetLeaderboard(s.ctx, &GetLeaderboardInput{})
	s.Require().NoError(err)
	s.Equal(1, board.Leaderboard.ParticipantCount)
	s.Zero(board.Leaderboard.TotalDrinks)

	// History stays
	s.Len(s.activityLog.List(), 3)

	_, err = s.service.Leave(s.ctx, &LeaveInput{Name: "Alina"})
	s.ErrorIs(err, ErrParticipantNotFound)
}

func (s *PartyServiceTestSuite) TestEstimateBAC_DecaysOverTime() {
	s.expectSaves()
	s.join("Alina")
	s.beer("Alina")
	drankAt := s.now

	output, err := s.service.EstimateBAC(s.ctx, &EstimateBACInput{Name: "Alina", At: drankAt.Add(2 * time.Hour)})
	s.Require().NoError(err)
	s.Equal(0.022, output.BAC)

	s.now = drankAt.Add(3 * time.Hour)
	output, err = s.service.EstimateBAC(s.ctx, &EstimateBACInput{Name: "Alina"})
	s.Require().NoError(err)
	s.Equal(0.0, output.BAC)
	s.Equal(s.now, output.At)

	_, err = s.service.EstimateBAC(s.ctx, &EstimateBACInput{Name: "Ghost"})
	s.ErrorIs(err, ErrParticipantNotFound)
}

func (s *PartyServiceTestSuite) TestEstimateBAC_CorruptWeight() {
	broken := s.participantWithBeers("Ghost", 1)
	broken.WeightKg = 0
	s.restore(&models.Party{ID: s.testPartyID, Participants: []*models.Participant{broken}})

	_, err := s.service.EstimateBAC(s.ctx, &EstimateBACInput{Name: "Ghost"})
	s.ErrorIs(err, bac.ErrNonPositiveWeight)
	s.Equal(KindArithmeticPrecondition, KindOf(err))
}

func (s *PartyServiceTestSuite) TestGetLeaderboard() {
	s.expectSaves()
	s.join("Ben")
	s.join("Alina")
	s.join("Dora")
	s.beer("Alina")
	s.beer("Alina")
	s.beer("Ben")

	output, err := s.service.GetLeaderboard(s.ctx, nil)
	s.Require().NoError(err)

	board := output.Leaderboard
	s.Require().Len(board.Entries, 3)
	s.Equal("Alina", board.Entries[0].Name)
	s.Equal("🥇", board.Entries[0].Symbol)
	s.Equal(0.644, board.Entries[0].BAC)
	s.Equal("Ben", board.Entries[1].Name)
	s.Equal("Dora", board.Entries[2].Name)
	s.Equal(3, board.TotalDrinks)
	s.Equal(3, board.ParticipantCount)
	s.Equal(0.322, board.AverageBAC)
}

func (s *PartyServiceTestSuite) TestGetActivityLog_Limit() {
	s.expectSaves()
	s.join("Alina")
	s.beer("Alina")
	s.beer("Alina")

	output, err := s.service.GetActivityLog(s.ctx, &GetActivityLogInput{Limit: 2})
	s.Require().NoError(err)
	s.Len(output.Entries, 2)

	output, err = s.service.GetActivityLog(s.ctx, &GetActivityLogInput{})
	s.Require().NoError(err)
	s.Len(output.Entries, 3)
	s.Equal(models.ActivityJoin, output.Entries[2].Kind)
}

func (s *PartyServiceTestSuite) TestAddScannedDrink() {
	s.expectSaves()
	s.join("Alina")

	volume := 330.0
	fraction := 0.049
	s.mockLookup.EXPECT().
		LookupProduct(gomock.Any(), &lookup.LookupProductInput{Code: "4001234567890"}).
		Return(&lookup.LookupProductOutput{
			Found: true,
			Product: &models.Product{
				Code:            "4001234567890",
				Name:            "Helles",
				VolumeML:        &volume,
				AlcoholFraction: &fraction,
			},
		}, nil)

	output, err := s.service.AddScannedDrink(s.ctx, &AddScannedDrinkInput{
		Name:     "Alina",
		Code:     " 4001234567890 ",
		Category: "Bier",
	})
	s.Require().NoError(err)
	s.Equal("Helles", output.Product.Name)
	s.Equal("Custom: Bier Helles", output.Drink.Type)
	s.Equal(330.0, output.Drink.VolumeML)
	s.Equal(0.049, output.Drink.AlcoholFraction)
	s.True(output.Drink.IsCustom)
	s.Equal(0.208, output.BAC)
}

func (s *PartyServiceTestSuite) TestAddScannedDrink_DefaultsAndOverrides() {
	s.expectSaves()
	s.join("Alina")

	s.mockLookup.EXPECT().
		LookupProduct(gomock.Any(), gomock.Any()).
		Return(&lookup.LookupProductOutput{
			Found:   true,
			Product: &models.Product{Code: "123", Name: lookup.DefaultProductName},
		}, nil).
		Times(2)

	output, err := s.service.AddScannedDrink(s.ctx, &AddScannedDrinkInput{Name: "Alina", Code: "123"})
	s.Require().NoError(err)
	s.Equal(DefaultScannedVolumeML, output.Drink.VolumeML)
	s.Equal(DefaultScannedAlcoholFraction, output.Drink.AlcoholFraction)

	override := 250.0
	output, err = s.service.AddScannedDrink(s.ctx, &AddScannedDrinkInput{Name: "Alina", Code: "123", VolumeML: &override})
	s.Require().NoError(err)
	s.Equal(250.0, output.Drink.VolumeML)
}

func (s *PartyServiceTestSuite) TestAddScannedDrink_Failures() {
	s.expectSaves()
	s.join("Alina")

	// Unknown participants never reach the lookup
	_, err := s.service.AddScannedDrink(s.ctx, &AddScannedDrinkInput{Name: "Ghost", Code: "123"})
	s.ErrorIs(err, ErrParticipantNotFound)

	_, err = s.service.AddScannedDrink(s.ctx, &AddScannedDrinkInput{Name: "Alina", Code: ""})
	s.ErrorIs(err, ErrEmptyProductCode)

	s.mockLookup.EXPECT().
		LookupProduct(gomock.Any(), gomock.Any()).
		Return(&lookup.LookupProductOutput{Found: false}, nil)
	_, err = s.service.AddScannedDrink(s.ctx, &AddScannedDrinkInput{Name: "Alina", Code: "000"})
	s.ErrorIs(err, ErrProductNotFound)
	s.Equal(KindNotFound, KindOf(err))

	s.mockLookup.EXPECT().
		LookupProduct(gomock.Any(), gomock.Any()).
		Return(nil, fmt.Errorf("%w: status 502", lookup.ErrUnavailable))
	_, err = s.service.AddScannedDrink(s.ctx, &AddScannedDrinkInput{Name: "Alina", Code: "123"})
	s.ErrorIs(err, lookup.ErrUnavailable)
	s.Equal(KindExternalUnavailable, KindOf(err))

	participant, err := s.service.GetParticipant(s.ctx, &GetParticipantInput{Name: "Alina"})
	s.Require().NoError(err)
	s.Zero(participant.Participant.DrinkCount())
}

func (s *PartyServiceTestSuite) TestReset() {
	s.expectSaves()
	s.join("Alina")
	s.beer("Alina")

	_, err := s.service.Reset(s.ctx, &ResetInput{Credential: "wrong"})
	s.ErrorIs(err, ErrInvalidCredential)
	s.Equal(KindUnauthorized, KindOf(err))

	s.mockRepo.EXPECT().
		DeleteSnapshot(gomock.Any(), &partyRepo.DeleteSnapshotInput{PartyID: s.testPartyID}).
		Return(nil)

	output, err := s.service.Reset(s.ctx, &ResetInput{Credential: s.credential})
	s.Require().NoError(err)
	s.Equal(1, output.RemovedParticipants)
	s.Equal(1, output.RemovedDrinks)
	s.Zero(s.activityLog.Len())

	board, err := s.service.GetLeaderboard(s.ctx, &GetLeaderboardInput{})
	s.Require().NoError(err)
	s.Zero(board.Leaderboard.ParticipantCount)

	// The name is free again
	s.join("Alina")
}

func (s *PartyServiceTestSuite) TestReset_DeleteFailureKeepsState() {
	s.expectSaves()
	s.join("Alina")

	s.mockRepo.EXPECT().
		DeleteSnapshot(gomock.Any(), gomock.Any()).
		Return(errors.New("redis down"))

	_, err := s.service.Reset(s.ctx, &ResetInput{Credential: s.credential})
	s.Equal(KindExternalUnavailable, KindOf(err))

	_, err = s.service.GetParticipant(s.ctx, &GetParticipantInput{Name: "Alina"})
	s.NoError(err)
	s.Equal(1, s.activityLog.Len())
}

func (s *PartyServiceTestSuite) TestGetParticipant_ReturnsCopy() {
	s.expectSaves()
	s.join("Alina")
	s.beer("Alina")

	output, err := s.service.GetParticipant(s.ctx, &GetParticipantInput{Name: "Alina"})
	s.Require().NoError(err)
	output.Participant.Drinks = nil
	output.Participant.Name = "Mallory"

	again, err := s.service.GetParticipant(s.ctx, &GetParticipantInput{Name: "Alina"})
	s.Require().NoError(err)
	s.Equal(1, again.Participant.DrinkCount())
}

func TestPartyServiceSuite(t *testing.T) {
	suite.Run(t, new(PartyServiceTestSuite))
}

func TestKindOf(t *testing.T) {
	testCases := []struct {
		err  error
		kind ErrorKind
	}{
		{err: nil, kind: ""},
		{err: ErrEmptyName, kind: KindValidation},
		{err: fmt.Errorf("join: %w", ErrDuplicateName), kind: KindValidation},
		{err: ErrParticipantNotFound, kind: KindNotFound},
		{err: ErrInvalidCredential, kind: KindUnauthorized},
		{err: bac.ErrNonPositiveWeight, kind: KindArithmeticPrecondition},
		{err: models.ErrInvalidVolume, kind: KindValidation},
		{err: &UnavailableError{Collaborator: "repository", Err: errors.New("boom")}, kind: KindExternalUnavailable},
		{err: lookup.ErrUnavailable, kind: KindExternalUnavailable},
		{err: ErrNilClock, kind: KindInternal},
		{err: errors.New("mystery"), kind: KindInternal},
	}
	for _, tc := range testCases {
		if got := KindOf(tc.err); got != tc.kind {
			t.Errorf("KindOf(%v) = %q, want %q", tc.err, got, tc.kind)
		}
	}
}
