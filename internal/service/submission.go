package service

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"

	"github.com/rowestoli/QuackLog/internal"
	"github.com/rowestoli/QuackLog/internal/storage"
)

var validate = validator.New()

// ErrNothingToSave is returned when every entry row is empty after dropping
// unused rows.
var ErrNothingToSave = errors.New("no valid bird entries found")

// IncompleteEntryError marks a row that has some fields filled in but is
// missing a required one. The whole save is aborted.
type IncompleteEntryError struct {
	Row   int
	Field string
}

func (e *IncompleteEntryError) Error() string {
	return fmt.Sprintf("entry %d is missing %s", e.Row+1, e.Field)
}

// InvalidQuantityError marks a row whose quantity does not parse to a
// positive integer.
type InvalidQuantityError struct {
	Row   int
	Value string
}

func (e *InvalidQuantityError) Error() string {
	return fmt.Sprintf("entry %d has invalid quantity %q: must be a positive number", e.Row+1, e.Value)
}

// IsValidationError reports whether err is one of the user-correctable
// validation failures, as opposed to a persistence failure.
func IsValidationError(err error) bool {
	var incomplete *IncompleteEntryError
	var invalidQty *InvalidQuantityError
	var invalid validator.ValidationErrors
	return errors.Is(err, ErrNothingToSave) ||
		errors.As(err, &incomplete) ||
		errors.As(err, &invalidQty) ||
		errors.As(err, &invalid)
}

type EntryRequest struct {
	Species       string `json:"species" validate:"omitempty,oneof=Widgeon Spoon Teal Sprig Mallard Goose Other"`
	CustomSpecies string `json:"custom_species"`
	Quantity      string `json:"quantity"`
	Sex           string `json:"sex" validate:"omitempty,oneof=Male Female"`
}

type SubmissionRequest struct {
	Date    string         `json:"date" validate:"required,datetime=2006-01-02"`
	Blind   string         `json:"blind"`
	Entries []EntryRequest `json:"entries" validate:"required,dive"`
	Photos  []string       `json:"photos" validate:"omitempty,dive,required"`
}

func ValidateSubmissionRequest(req *SubmissionRequest) error {
	return validate.Struct(req)
}

// ValidateEntries applies the row policy and returns normalized entries,
// failing fast on the first violation:
//
//   - a row with species and quantity both empty is dropped silently
//   - a row with exactly one of them empty is an IncompleteEntryError
//   - quantity must parse to an integer > 0, else InvalidQuantityError
//   - species Other requires the custom species text
//   - no rows left after dropping is ErrNothingToSave
//
// Normalized rows have trimmed strings and a canonical positive-integer
// quantity, so normalizing already-normalized rows changes nothing.
func ValidateEntries(rows []EntryRequest) ([]internal.BirdLogEntry, error) {
	var entries []internal.BirdLogEntry
	for i, row := range rows {
		species := strings.TrimSpace(row.Species)
		quantity := strings.TrimSpace(row.Quantity)
		if species == "" && quantity == "" {
			continue
		}
		if species == "" {
			return nil, &IncompleteEntryError{Row: i, Field: "species"}
		}
		if quantity == "" {
			return nil, &IncompleteEntryError{Row: i, Field: "quantity"}
		}
		qty, err := strconv.Atoi(quantity)
		if err != nil || qty <= 0 {
			return nil, &InvalidQuantityError{Row: i, Value: row.Quantity}
		}
		custom := strings.TrimSpace(row.CustomSpecies)
		if species == internal.SpeciesOther && custom == "" {
			return nil, &IncompleteEntryError{Row: i, Field: "custom species"}
		}
		if species != internal.SpeciesOther {
			custom = ""
		}
		entries = append(entries, internal.BirdLogEntry{
			Species:       species,
			CustomSpecies: custom,
			Quantity:      strconv.Itoa(qty),
			Sex:           strings.TrimSpace(row.Sex),
		})
	}
	if len(entries) == 0 {
		return nil, ErrNothingToSave
	}
	return entries, nil
}

// CreateSubmission validates and persists one save action. Validation
// failures abort before any store call, so there is no partial save.
func CreateSubmission(ctx context.Context, repo storage.SubmissionRepository, user *internal.User, req *SubmissionRequest) (*internal.LogSubmission, error) {
	if err := ValidateSubmissionRequest(req); err != nil {
		return nil, err
	}
	entries, err := ValidateEntries(req.Entries)
	if err != nil {
		return nil, err
	}
	sub := &internal.LogSubmission{
		ID:        uuid.NewString(),
		UserID:    user.ID,
		Date:      req.Date,
		Blind:     strings.TrimSpace(req.Blind),
		Entries:   entries,
		Photos:    req.Photos,
		CreatedAt: time.Now().UTC(),
	}
	if err := repo.SaveSubmission(ctx, sub); err != nil {
		return nil, err
	}
	return sub, nil
}

// DeleteSubmission removes one of the user's submissions. Deleting another
// user's submission surfaces as not found.
func DeleteSubmission(ctx context.Context, repo storage.SubmissionRepository, user *internal.User, id string) error {
	return repo.DeleteSubmission(ctx, user.ID, id)
}
