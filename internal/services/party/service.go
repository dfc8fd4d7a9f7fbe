package party

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"math"
	"strings"
	"sync"
	"time"

	"github.com/KirkDiggler/partybac/internal/activity"
	"github.com/KirkDiggler/partybac/internal/bac"
	"github.com/KirkDiggler/partybac/internal/common/clock"
	"github.com/KirkDiggler/partybac/internal/common/password"
	"github.com/KirkDiggler/partybac/internal/common/uuid"
	"github.com/KirkDiggler/partybac/internal/leaderboard"
	"github.com/KirkDiggler/partybac/internal/lookup"
	"github.com/KirkDiggler/partybac/internal/milestone"
	"github.com/KirkDiggler/partybac/internal/models"
	partyRepo "github.com/KirkDiggler/partybac/internal/repositories/party"
	"github.com/KirkDiggler/partybac/internal/services/messaging"
)

// service implements the Service interface
type service struct {
	partyID   string
	repo      partyRepo.Repository
	lookup    lookup.Lookup
	messaging messaging.Service
	clock     clock.Clock
	uuid      uuid.UUID
	verifier  password.Verifier
	activity  *activity.Log
	log       *slog.Logger

	// writeMu serializes mutations, including the repository save
	writeMu sync.Mutex

	// mu guards the snapshot pointer only. A committed snapshot is never
	// modified; mutations work on a clone and swap it in after saving.
	mu       sync.RWMutex
	snapshot *models.Party
}

// New creates a new party service with an empty party. Call Restore to load
// the stored snapshot.
func New(cfg *Config) (Service, error) {
	if cfg == nil {
		return nil, ErrNilConfig
	}
	if strings.TrimSpace(cfg.PartyID) == "" {
		return nil, ErrEmptyPartyID
	}
	if cfg.Repository == nil {
		return nil, ErrNilRepository
	}
	if cfg.Lookup == nil {
		return nil, ErrNilLookup
	}
	if cfg.Messaging == nil {
		return nil, ErrNilMessaging
	}
	if cfg.Clock == nil {
		return nil, ErrNilClock
	}
	if cfg.UUIDGenerator == nil {
		return nil, ErrNilUUIDGenerator
	}

	verifier := cfg.ResetVerifier
	if verifier == nil {
		verifier = password.Deny{}
	}
	activityLog := cfg.ActivityLog
	if activityLog == nil {
		activityLog = activity.New(nil)
	}
	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}

	return &service{
		partyID:   cfg.PartyID,
		repo:      cfg.Repository,
		lookup:    cfg.Lookup,
		messaging: cfg.Messaging,
		clock:     cfg.Clock,
		uuid:      cfg.UUIDGenerator,
		verifier:  verifier,
		activity:  activityLog,
		log:       logger.With("party", cfg.PartyID),
		snapshot:  &models.Party{ID: cfg.PartyID, Participants: []*models.Participant{}},
	}, nil
}

func (s *service) current() *models.Party {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.snapshot
}

func (s *service) swap(party *models.Party) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.snapshot = party
}

// commit saves next and makes it the current snapshot. On failure the
// current snapshot is left as it was.
func (s *service) commit(ctx context.Context, next *models.Party) error {
	next.UpdatedAt = s.clock.Now()
	if err := s.repo.SaveSnapshot(ctx, &partyRepo.SaveSnapshotInput{Party: next}); err != nil {
		s.log.Error("failed to save party snapshot", "error", err)
		return &UnavailableError{Collaborator: "repository", Err: err}
	}
	s.swap(next)
	return nil
}

func (s *service) record(kind models.ActivityKind, at time.Time, fill func(*models.ActivityEntry)) {
	entry := &models.ActivityEntry{
		ID:        s.uuid.NewUUID(),
		Kind:      kind,
		Timestamp: at,
	}
	fill(entry)
	s.activity.Record(entry)
}

func (s *service) at(t time.Time) time.Time {
	if t.IsZero() {
		return s.clock.Now()
	}
	return t
}

// Restore loads the stored snapshot, starting empty when there is none
func (s *service) Restore(ctx context.Context, input *RestoreInput) (*RestoreOutput, error) {
	s.writeMu.Lock()
	defer s.writeMu.Unlock()

	loaded, err := s.repo.LoadSnapshot(ctx, &partyRepo.LoadSnapshotInput{PartyID: s.partyID})
	if errors.Is(err, partyRepo.ErrSnapshotNotFound) {
		s.swap(&models.Party{ID: s.partyID, Participants: []*models.Participant{}})
		s.log.Info("no stored party snapshot, starting empty")
		return &RestoreOutput{Found: false}, nil
	}
	if err != nil {
		s.log.Error("failed to load party snapshot", "error", err)
		return nil, &UnavailableError{Collaborator: "repository", Err: err}
	}

	party := loaded.Party
	party.ID = s.partyID
	if party.Participants == nil {
		party.Participants = []*models.Participant{}
	}
	s.swap(party)

	s.log.Info("restored party snapshot",
		"participants", len(party.Participants),
		"drinks", party.TotalDrinks())

	return &RestoreOutput{
		Found:            true,
		ParticipantCount: len(party.Participants),
		TotalDrinks:      party.TotalDrinks(),
	}, nil
}

// Join adds a participant to the party
func (s *service) Join(ctx context.Context, input *JoinInput) (*JoinOutput, error) {
	if input == nil {
		return nil, ErrNilInput
	}

	// Names are matched exactly everywhere, so they are stored as given
	name := input.Name
	if strings.TrimSpace(name) == "" {
		return nil, ErrEmptyName
	}
	if !(input.WeightKg > 0) || math.IsInf(input.WeightKg, 0) {
		return nil, ErrNonPositiveWeight
	}
	if !input.Gender.IsValid() {
		return nil, ErrInvalidGender
	}
	if !input.Status.IsValid() {
		return nil, ErrInvalidStatus
	}

	s.writeMu.Lock()
	defer s.writeMu.Unlock()

	next := s.current().Clone()
	if existing, _ := next.Find(name); existing != nil {
		return nil, ErrDuplicateName
	}

	now := s.clock.Now()
	participant := &models.Participant{
		Name:       name,
		WeightKg:   input.WeightKg,
		Gender:     input.Gender,
		Status:     input.Status,
		SocialLink: strings.TrimSpace(input.SocialLink),
		JoinedAt:   now,
		Drinks:     []*models.DrinkEvent{},
	}
	next.Participants = append(next.Participants, participant)

	if err := s.commit(ctx, next); err != nil {
		return nil, err
	}

	s.record(models.ActivityJoin, now, func(e *models.ActivityEntry) {
		e.Join = &models.JoinPayload{Participant: name}
	})
	s.log.Info("participant joined", "name", name)

	message := ""
	if msg, err := s.messaging.GetJoinMessage(ctx, &messaging.GetJoinMessageInput{ParticipantName: name}); err == nil {
		message = msg.Message
	}

	return &JoinOutput{
		Participant: participant.Clone(),
		Message:     message,
	}, nil
}

// AddDrink logs a drink for a participant
func (s *service) AddDrink(ctx context.Context, input *AddDrinkInput) (*AddDrinkOutput, error) {
	if input == nil {
		return nil, ErrNilInput
	}

	drink, err := models.ResolveDrink(input.Drink)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidDrink, err)
	}

	s.writeMu.Lock()
	defer s.writeMu.Unlock()

	next := s.current().Clone()
	participant, _ := next.Find(input.Name)
	if participant == nil {
		return nil, ErrParticipantNotFound
	}

	now := s.clock.Now()
	drink.ID = s.uuid.NewUUID()
	drink.Timestamp = now
	participant.Drinks = append(participant.Drinks, drink)

	concentration, err := bac.EstimateParticipant(participant, now)
	if err != nil {
		return nil, err
	}

	reached := milestone.Detect(next.TotalDrinks(), participant.Name, participant.DrinkCount())

	if err := s.commit(ctx, next); err != nil {
		return nil, err
	}

	s.record(models.ActivityDrink, now, func(e *models.ActivityEntry) {
		e.Drink = &models.DrinkPayload{
			Participant: participant.Name,
			Drink:       drink.Type,
			BAC:         concentration,
		}
	})

	for i := range reached {
		msg, err := s.messaging.GetMilestoneMessage(ctx, &messaging.GetMilestoneMessageInput{Milestone: reached[i]})
		if err != nil {
			s.log.Warn("failed to build milestone message", "error", err)
			msg = &messaging.GetMilestoneMessageOutput{
				Message: fmt.Sprintf("Meilenstein: %d Getränke", reached[i].Count),
			}
		}
		reached[i].Message = msg.Message
		s.record(models.ActivityMilestone, now, func(e *models.ActivityEntry) {
			e.Milestone = &models.MilestonePayload{Message: msg.Message}
		})
		s.log.Info("milestone reached",
			"scope", reached[i].Scope,
			"count", reached[i].Count,
			"name", participant.Name)
	}

	s.log.Info("drink added",
		"name", participant.Name,
		"drink", drink.Type,
		"bac", concentration)

	returned := *drink
	output := &AddDrinkOutput{
		Drink:      &returned,
		BAC:        concentration,
		Milestones: reached,
	}
	confirmation, err := s.messaging.GetDrinkConfirmationMessage(ctx, &messaging.GetDrinkConfirmationMessageInput{
		ParticipantName: participant.Name,
		DrinkLabel:      drink.Type,
		BAC:             concentration,
		IsCustom:        drink.IsCustom,
	})
	if err == nil {
		output.Title = confirmation.Title
		output.Message = confirmation.Message
	}

	return output, nil
}

// AddScannedDrink looks a product code up and logs it as a custom drink.
// The lookup runs before the mutation starts.
func (s *service) AddScannedDrink(ctx context.Context, input *AddScannedDrinkInput) (*AddScannedDrinkOutput, error) {
	if input == nil {
		return nil, ErrNilInput
	}
	if existing, _ := s.current().Find(input.Name); existing == nil {
		return nil, ErrParticipantNotFound
	}

	found, err := s.LookupProduct(ctx, &LookupProductInput{Code: input.Code})
	if err != nil {
		return nil, err
	}
	if !found.Found {
		return nil, ErrProductNotFound
	}

	product := found.Product
	volume := DefaultScannedVolumeML
	if product.VolumeML != nil {
		volume = *product.VolumeML
	}
	if input.VolumeML != nil {
		volume = *input.VolumeML
	}
	fraction := DefaultScannedAlcoholFraction
	if product.AlcoholFraction != nil {
		fraction = *product.AlcoholFraction
	}
	if input.AlcoholFraction != nil {
		fraction = *input.AlcoholFraction
	}

	added, err := s.AddDrink(ctx, &AddDrinkInput{
		Name: input.Name,
		Drink: models.CustomDrink{
			Category:        input.Category,
			Subcategory:     input.Subcategory,
			Name:            product.Name,
			VolumeML:        volume,
			AlcoholFraction: fraction,
		},
	})
	if err != nil {
		return nil, err
	}

	return &AddScannedDrinkOutput{
		AddDrinkOutput: *added,
		Product:        product,
	}, nil
}

// LookupProduct resolves a product code without logging anything
func (s *service) LookupProduct(ctx context.Context, input *LookupProductInput) (*LookupProductOutput, error) {
	if input == nil {
		return nil, ErrNilInput
	}
	code := strings.TrimSpace(input.Code)
	if code == "" {
		return nil, ErrEmptyProductCode
	}

	result, err := s.lookup.LookupProduct(ctx, &lookup.LookupProductInput{Code: code})
	if errors.Is(err, lookup.ErrEmptyCode) {
		return nil, ErrEmptyProductCode
	}
	if err != nil {
		s.log.Warn("product lookup failed", "code", code, "error", err)
		return nil, &UnavailableError{Collaborator: "lookup", Err: err}
	}

	return &LookupProductOutput{
		Found:   result.Found,
		Product: result.Product,
	}, nil
}

// RemoveDrink deletes a drink by its position in the participant's list
func (s *service) RemoveDrink(ctx context.Context, input *RemoveDrinkInput) (*RemoveDrinkOutput, error) {
	if input == nil {
		return nil, ErrNilInput
	}

	s.writeMu.Lock()
	defer s.writeMu.Unlock()

	next := s.current().Clone()
	participant, _ := next.Find(input.Name)
	if participant == nil {
		return nil, ErrParticipantNotFound
	}
	if input.Index < 0 || input.Index >= len(participant.Drinks) {
		return nil, ErrDrinkIndexOutOfRange
	}

	removed := participant.Drinks[input.Index]
	participant.Drinks = append(participant.Drinks[:input.Index], participant.Drinks[input.Index+1:]...)

	if err := s.commit(ctx, next); err != nil {
		return nil, err
	}

	// The removal stands even when the stored weight cannot be estimated
	concentration, err := bac.EstimateParticipant(participant, s.clock.Now())
	if err != nil {
		s.log.Warn("failed to estimate after removal", "name", participant.Name, "error", err)
		concentration = 0
	}

	s.log.Info("drink removed",
		"name", participant.Name,
		"index", input.Index,
		"drink", removed.Type)

	return &RemoveDrinkOutput{
		Removed: removed,
		BAC:     concentration,
	}, nil
}

// Leave removes a participant and all of their drinks. Activity already
// recorded for them stays in the log.
func (s *service) Leave(ctx context.Context, input *LeaveInput) (*LeaveOutput, error) {
	if input == nil {
		return nil, ErrNilInput
	}

	s.writeMu.Lock()
	defer s.writeMu.Unlock()

	next := s.current().Clone()
	participant, idx := next.Find(input.Name)
	if participant == nil {
		return nil, ErrParticipantNotFound
	}
	next.Participants = append(next.Participants[:idx], next.Participants[idx+1:]...)

	if err := s.commit(ctx, next); err != nil {
		return nil, err
	}

	s.log.Info("participant left", "name", participant.Name, "drinks", participant.DrinkCount())

	return &LeaveOutput{
		Participant: participant,
	}, nil
}

// GetParticipant returns a participant with their drinks and current concentration
func (s *service) GetParticipant(ctx context.Context, input *GetParticipantInput) (*GetParticipantOutput, error) {
	if input == nil {
		return nil, ErrNilInput
	}

	participant, _ := s.current().Find(input.Name)
	if participant == nil {
		return nil, ErrParticipantNotFound
	}

	concentration, err := bac.EstimateParticipant(participant, s.at(input.At))
	if err != nil {
		return nil, err
	}

	return &GetParticipantOutput{
		Participant: participant.Clone(),
		BAC:         concentration,
	}, nil
}

// EstimateBAC returns a participant's concentration at a given time
func (s *service) EstimateBAC(ctx context.Context, input *EstimateBACInput) (*EstimateBACOutput, error) {
	if input == nil {
		return nil, ErrNilInput
	}

	participant, _ := s.current().Find(input.Name)
	if participant == nil {
		return nil, ErrParticipantNotFound
	}

	at := s.at(input.At)
	concentration, err := bac.EstimateParticipant(participant, at)
	if err != nil {
		return nil, err
	}

	return &EstimateBACOutput{
		BAC: concentration,
		At:  at,
	}, nil
}

// GetLeaderboard returns the ranking and party statistics
func (s *service) GetLeaderboard(ctx context.Context, input *GetLeaderboardInput) (*GetLeaderboardOutput, error) {
	if input == nil {
		input = &GetLeaderboardInput{}
	}

	board, err := leaderboard.Build(s.current(), s.at(input.At))
	if err != nil {
		return nil, err
	}

	return &GetLeaderboardOutput{
		Leaderboard: board,
	}, nil
}

// GetActivityLog returns recent activity, newest first
func (s *service) GetActivityLog(ctx context.Context, input *GetActivityLogInput) (*GetActivityLogOutput, error) {
	entries := s.activity.List()
	if input != nil && input.Limit > 0 && input.Limit < len(entries) {
		entries = entries[:input.Limit]
	}

	return &GetActivityLogOutput{
		Entries: entries,
	}, nil
}

// Reset clears the party after checking the reset credential
func (s *service) Reset(ctx context.Context, input *ResetInput) (*ResetOutput, error) {
	if input == nil {
		return nil, ErrNilInput
	}
	if !s.verifier.Verify(input.Credential) {
		s.log.Warn("rejected party reset")
		return nil, ErrInvalidCredential
	}

	s.writeMu.Lock()
	defer s.writeMu.Unlock()

	if err := s.repo.DeleteSnapshot(ctx, &partyRepo.DeleteSnapshotInput{PartyID: s.partyID}); err != nil {
		s.log.Error("failed to delete party snapshot", "error", err)
		return nil, &UnavailableError{Collaborator: "repository", Err: err}
	}

	previous := s.current()
	s.swap(&models.Party{ID: s.partyID, Participants: []*models.Participant{}, UpdatedAt: s.clock.Now()})
	s.activity.Reset()

	s.log.Info("party reset",
		"participants", len(previous.Participants),
		"drinks", previous.TotalDrinks())

	return &ResetOutput{
		RemovedParticipants: len(previous.Participants),
		RemovedDrinks:       previous.TotalDrinks(),
	}, nil
}
