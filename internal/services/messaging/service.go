package messaging

import (
	"context"
	"errors"
	"fmt"

	"github.com/KirkDiggler/partybac/internal/bac"
	"github.com/KirkDiggler/partybac/internal/common/random"
	"github.com/KirkDiggler/partybac/internal/models"
)

// Error kinds understood by GetErrorMessage
const (
	ErrorKindValidation             = "validation"
	ErrorKindNotFound               = "not_found"
	ErrorKindArithmeticPrecondition = "arithmetic_precondition"
	ErrorKindUnauthorized           = "unauthorized"
	ErrorKindExternalUnavailable    = "external_unavailable"
)

// service implements the Service interface
type service struct {
	roller *random.Roller
}

// NewService creates a new messaging service
func NewService(config *ServiceConfig) (Service, error) {
	var seed int64
	if config != nil {
		seed = config.Seed
	}

	return &service{
		roller: random.New(&random.Config{Seed: seed}),
	}, nil
}

func (s *service) pick(messages []string) string {
	return random.Pick(s.roller, messages)
}

// GetJoinMessage returns a welcome line for a new participant
func (s *service) GetJoinMessage(ctx context.Context, input *GetJoinMessageInput) (*GetJoinMessageOutput, error) {
	if input == nil {
		return nil, errors.New("input cannot be nil")
	}

	tone := input.PreferredTone
	if tone == "" {
		tone = ToneFunny
	}

	var messages []string
	switch tone {
	case ToneNeutral:
		messages = []string{
			fmt.Sprintf("%s ist jetzt dabei.", input.ParticipantName),
			fmt.Sprintf("%s wurde hinzugefügt.", input.ParticipantName),
		}
	default:
		messages = []string{
			fmt.Sprintf("Willkommen auf der Party, %s! 🎉", input.ParticipantName),
			fmt.Sprintf("%s ist da! Jetzt kann es richtig losgehen. 🥳", input.ParticipantName),
			fmt.Sprintf("Frischer Wind: %s hat sich eingetragen. Prost! 🍻", input.ParticipantName),
			fmt.Sprintf("Achtung, %s betritt die Tanzfläche! 💃", input.ParticipantName),
			fmt.Sprintf("%s ist eingecheckt. Das Jahr kann kommen! 🎆", input.ParticipantName),
		}
	}

	return &GetJoinMessageOutput{
		Message: s.pick(messages),
		Tone:    tone,
	}, nil
}

// GetDrinkConfirmationMessage returns the confirmation shown after a drink is recorded
func (s *service) GetDrinkConfirmationMessage(ctx context.Context, input *GetDrinkConfirmationMessageInput) (*GetDrinkConfirmationMessageOutput, error) {
	if input == nil {
		return nil, errors.New("input cannot be nil")
	}

	title := "Getränk wurde eingetragen!"
	if input.IsCustom {
		title = "Custom Getränk wurde eingetragen!"
	}

	comments := []string{
		"Prost! 🍻",
		"Zum Wohl! 🥂",
		"Runter damit! 🍺",
		"Na dann, auf ein gutes neues Jahr! 🎆",
		"Wasser nicht vergessen! 💧",
	}

	message := fmt.Sprintf("%s: %s. Aktueller Promillewert: %s %s",
		input.ParticipantName, input.DrinkLabel, bac.Format(input.BAC), s.pick(comments))

	return &GetDrinkConfirmationMessageOutput{
		Title:   title,
		Message: message,
	}, nil
}

// GetMilestoneMessage returns the announcement for a reached milestone
func (s *service) GetMilestoneMessage(ctx context.Context, input *GetMilestoneMessageInput) (*GetMilestoneMessageOutput, error) {
	if input == nil {
		return nil, errors.New("input cannot be nil")
	}

	m := input.Milestone
	var messages []string
	switch m.Scope {
	case models.MilestoneScopeParty:
		messages = []string{
			fmt.Sprintf("🎉 Meilenstein: Die Party hat %d Getränke erreicht!", m.Count),
			fmt.Sprintf("🎉 %d Getränke auf der Party! %s hat die Marke geknackt.", m.Count, m.Participant),
			fmt.Sprintf("🎉 Rekordverdächtig: %d Getränke insgesamt!", m.Count),
		}
	case models.MilestoneScopePersonal:
		messages = []string{
			fmt.Sprintf("🏆 %s hat das %d. Getränk erreicht!", m.Participant, m.Count),
			fmt.Sprintf("🏆 %s ist bei %d Getränken angekommen. Respekt!", m.Participant, m.Count),
			fmt.Sprintf("🏆 %d Getränke für %s! Vielleicht mal ein Wasser?", m.Count, m.Participant),
		}
	default:
		return nil, fmt.Errorf("unknown milestone scope: %q", m.Scope)
	}

	return &GetMilestoneMessageOutput{
		Message: s.pick(messages),
	}, nil
}

// GetErrorMessage returns a user-friendly error message
func (s *service) GetErrorMessage(ctx context.Context, input *GetErrorMessageInput) (*GetErrorMessageOutput, error) {
	if input == nil {
		return nil, errors.New("input cannot be nil")
	}

	var title string
	var messages []string
	switch input.ErrorKind {
	case ErrorKindValidation:
		title = "Ungültige Eingabe"
		messages = []string{
			"Da stimmt etwas mit der Eingabe nicht.",
			"Hoppla, das konnte ich nicht verarbeiten.",
		}
	case ErrorKindNotFound:
		title = "Nicht gefunden"
		messages = []string{
			"Das konnte ich nicht finden.",
			"Wer soll das sein? Nicht auf der Gästeliste.",
		}
	case ErrorKindArithmeticPrecondition:
		title = "Berechnung nicht möglich"
		messages = []string{
			"Der Promillewert kann so nicht berechnet werden.",
		}
	case ErrorKindUnauthorized:
		title = "Zugriff verweigert"
		messages = []string{
			"Falsches Passwort.",
			"Netter Versuch, aber das Passwort stimmt nicht.",
		}
	case ErrorKindExternalUnavailable:
		title = "Dienst nicht erreichbar"
		messages = []string{
			"Gerade ist etwas nicht erreichbar. Bitte gleich nochmal versuchen.",
			"Der Server braucht wohl auch eine Pause. Versuch es gleich nochmal.",
		}
	default:
		title = "Fehler"
		messages = []string{
			"Da ist etwas schiefgelaufen.",
		}
	}

	message := s.pick(messages)
	if input.Detail != "" {
		message = fmt.Sprintf("%s (%s)", message, input.Detail)
	}

	return &GetErrorMessageOutput{
		Title:   title,
		Message: message,
	}, nil
}
