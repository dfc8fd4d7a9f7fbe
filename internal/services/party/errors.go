package party

import (
	"errors"
	"fmt"

	"github.com/KirkDiggler/partybac/internal/bac"
	"github.com/KirkDiggler/partybac/internal/lookup"
	"github.com/KirkDiggler/partybac/internal/models"
)

// ErrorKind classifies a failure for the caller
type ErrorKind string

const (
	KindValidation             ErrorKind = "validation"
	KindNotFound               ErrorKind = "not_found"
	KindArithmeticPrecondition ErrorKind = "arithmetic_precondition"
	KindUnauthorized           ErrorKind = "unauthorized"
	KindExternalUnavailable    ErrorKind = "external_unavailable"
	KindInternal               ErrorKind = "internal"
)

// PartyError is a custom error type for party-related errors
type PartyError string

// Error implements the error interface
func (e PartyError) Error() string {
	return string(e)
}

// Kind returns the category of the error
func (e PartyError) Kind() ErrorKind {
	switch e {
	case ErrEmptyName, ErrDuplicateName, ErrNonPositiveWeight, ErrInvalidGender,
		ErrInvalidStatus, ErrInvalidDrink, ErrEmptyProductCode, ErrNilInput:
		return KindValidation
	case ErrParticipantNotFound, ErrDrinkIndexOutOfRange, ErrProductNotFound:
		return KindNotFound
	case ErrInvalidCredential:
		return KindUnauthorized
	default:
		return KindInternal
	}
}

// Define errors
const (
	ErrNilInput             PartyError = "input cannot be nil"
	ErrEmptyName            PartyError = "participant name cannot be empty"
	ErrDuplicateName        PartyError = "participant name already taken"
	ErrNonPositiveWeight    PartyError = "weight must be greater than zero"
	ErrInvalidGender        PartyError = "invalid gender"
	ErrInvalidStatus        PartyError = "invalid status"
	ErrInvalidDrink         PartyError = "invalid drink"
	ErrParticipantNotFound  PartyError = "participant not found"
	ErrDrinkIndexOutOfRange PartyError = "drink index out of range"
	ErrEmptyProductCode     PartyError = "product code cannot be empty"
	ErrProductNotFound      PartyError = "product not found"
	ErrInvalidCredential    PartyError = "invalid reset credential"
	ErrNilConfig            PartyError = "config cannot be nil"
	ErrEmptyPartyID         PartyError = "party ID cannot be empty"
	ErrNilRepository        PartyError = "party repository cannot be nil"
	ErrNilLookup            PartyError = "product lookup cannot be nil"
	ErrNilMessaging         PartyError = "messaging service cannot be nil"
	ErrNilClock             PartyError = "clock cannot be nil"
	ErrNilUUIDGenerator     PartyError = "UUID generator cannot be nil"
)

// UnavailableError reports a failed call to an external collaborator. State
// is unchanged when it is returned, so the operation can be retried.
type UnavailableError struct {
	// Collaborator names the failed dependency, e.g. "repository" or "lookup"
	Collaborator string
	Err          error
}

func (e *UnavailableError) Error() string {
	return fmt.Sprintf("%s unavailable: %v", e.Collaborator, e.Err)
}

func (e *UnavailableError) Unwrap() error {
	return e.Err
}

// KindOf maps any error returned by the service to its kind
func KindOf(err error) ErrorKind {
	if err == nil {
		return ""
	}

	var unavailable *UnavailableError
	if errors.As(err, &unavailable) {
		return KindExternalUnavailable
	}

	var partyErr PartyError
	if errors.As(err, &partyErr) {
		return partyErr.Kind()
	}

	switch {
	case errors.Is(err, bac.ErrNonPositiveWeight):
		return KindArithmeticPrecondition
	case errors.Is(err, models.ErrUnknownDrink),
		errors.Is(err, models.ErrInvalidVolume),
		errors.Is(err, models.ErrInvalidAlcoholFraction),
		errors.Is(err, lookup.ErrEmptyCode):
		return KindValidation
	case errors.Is(err, lookup.ErrUnavailable):
		return KindExternalUnavailable
	}

	return KindInternal
}
