package service

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/rowestoli/QuackLog/internal"
)

type stubRepo struct {
	saved     []*internal.LogSubmission
	saveErr   error
	deleteErr error
}

func (r *stubRepo) SaveSubmission(ctx context.Context, sub *internal.LogSubmission) error {
	if r.saveErr != nil {
		return r.saveErr
	}
	r.saved = append(r.saved, sub)
	return nil
}

func (r *stubRepo) ListSubmissions(ctx context.Context, userID string) ([]internal.LogSubmission, error) {
	return nil, nil
}

func (r *stubRepo) ListSubmissionsByDate(ctx context.Context, userID, date string) ([]internal.LogSubmission, error) {
	return nil, nil
}

func (r *stubRepo) ListRecentSubmissions(ctx context.Context, userID string, limit int) ([]internal.LogSubmission, error) {
	return nil, nil
}

func (r *stubRepo) DeleteSubmission(ctx context.Context, userID, id string) error {
	return r.deleteErr
}

func TestValidateEntries_NothingToSave(t *testing.T) {
	_, err := ValidateEntries([]EntryRequest{{Species: "", Quantity: ""}})
	assert.ErrorIs(t, err, ErrNothingToSave)

	_, err = ValidateEntries(nil)
	assert.ErrorIs(t, err, ErrNothingToSave)
}

func TestValidateEntries_InvalidQuantity(t *testing.T) {
	for _, qty := range []string{"0", "-2", "abc", "1.5"} {
		_, err := ValidateEntries([]EntryRequest{{Species: "Mallard", Quantity: qty}})
		var invalid *InvalidQuantityError
		assert.ErrorAs(t, err, &invalid, "quantity %q", qty)
	}
}

func TestValidateEntries_IncompleteEntry(t *testing.T) {
	_, err := ValidateEntries([]EntryRequest{{Species: "", Quantity: "3"}})
	var incomplete *IncompleteEntryError
	assert.ErrorAs(t, err, &incomplete)
	assert.Equal(t, "species", incomplete.Field)

	_, err = ValidateEntries([]EntryRequest{{Species: "Mallard", Quantity: ""}})
	assert.ErrorAs(t, err, &incomplete)
	assert.Equal(t, "quantity", incomplete.Field)
}

func TestValidateEntries_DropsUnusedRowsSilently(t *testing.T) {
	entries, err := ValidateEntries([]EntryRequest{
		{Species: "Mallard", Quantity: "2", Sex: "Male"},
		{Species: "", Quantity: ""},
	})
	assert.NoError(t, err)
	assert.Len(t, entries, 1)
	assert.Equal(t, "Mallard", entries[0].Species)
	assert.Equal(t, "2", entries[0].Quantity)
	assert.Equal(t, "Male", entries[0].Sex)
}

func TestValidateEntries_Normalizes(t *testing.T) {
	entries, err := ValidateEntries([]EntryRequest{
		{Species: "  Teal ", Quantity: " 04 ", Sex: " Female "},
	})
	assert.NoError(t, err)
	assert.Equal(t, "Teal", entries[0].Species)
	assert.Equal(t, "4", entries[0].Quantity)
	assert.Equal(t, "Female", entries[0].Sex)
}

func TestValidateEntries_Idempotent(t *testing.T) {
	first, err := ValidateEntries([]EntryRequest{
		{Species: "Sprig", Quantity: " 3"},
		{Species: "Other", CustomSpecies: " Canvasback ", Quantity: "1", Sex: "Male"},
	})
	assert.NoError(t, err)

	again := make([]EntryRequest, len(first))
	for i, e := range first {
		again[i] = EntryRequest{Species: e.Species, CustomSpecies: e.CustomSpecies, Quantity: e.Quantity, Sex: e.Sex}
	}
	second, err := ValidateEntries(again)
	assert.NoError(t, err)
	assert.Equal(t, first, second)
}

func TestValidateEntries_OtherRequiresCustomSpecies(t *testing.T) {
	_, err := ValidateEntries([]EntryRequest{{Species: "Other", Quantity: "2"}})
	var incomplete *IncompleteEntryError
	assert.ErrorAs(t, err, &incomplete)

	entries, err := ValidateEntries([]EntryRequest{{Species: "Other", CustomSpecies: "Canvasback", Quantity: "2"}})
	assert.NoError(t, err)
	// Stored value keeps the sentinel plus the custom text.
	assert.Equal(t, "Other", entries[0].Species)
	assert.Equal(t, "Canvasback", entries[0].CustomSpecies)
}

func TestValidateEntries_ClearsCustomSpeciesForKnownSpecies(t *testing.T) {
	entries, err := ValidateEntries([]EntryRequest{{Species: "Mallard", CustomSpecies: "stale", Quantity: "1"}})
	assert.NoError(t, err)
	assert.Equal(t, "", entries[0].CustomSpecies)
}

func TestCreateSubmission_AssignsIDAndTimestamp(t *testing.T) {
	repo := &stubRepo{}
	user := &internal.User{ID: "u1"}
	req := &SubmissionRequest{
		Date:    "2025-01-15",
		Blind:   " North Levee ",
		Entries: []EntryRequest{{Species: "Mallard", Quantity: "2"}},
		Photos:  []string{"file:///photo1.jpg"},
	}

	sub, err := CreateSubmission(context.Background(), repo, user, req)
	assert.NoError(t, err)
	assert.NotEmpty(t, sub.ID)
	assert.Equal(t, "u1", sub.UserID)
	assert.Equal(t, "2025-01-15", sub.Date)
	assert.Equal(t, "North Levee", sub.Blind)
	assert.Equal(t, []string{"file:///photo1.jpg"}, sub.Photos)
	assert.False(t, sub.CreatedAt.IsZero())
	assert.Len(t, repo.saved, 1)
}

func TestCreateSubmission_NoStoreCallOnValidationFailure(t *testing.T) {
	repo := &stubRepo{}
	user := &internal.User{ID: "u1"}
	req := &SubmissionRequest{
		Date:    "2025-01-15",
		Entries: []EntryRequest{{Species: "Mallard", Quantity: "0"}},
	}

	_, err := CreateSubmission(context.Background(), repo, user, req)
	assert.Error(t, err)
	assert.True(t, IsValidationError(err))
	assert.Empty(t, repo.saved)
}

func TestCreateSubmission_PropagatesStoreError(t *testing.T) {
	repo := &stubRepo{saveErr: errors.New("disk full")}
	user := &internal.User{ID: "u1"}
	req := &SubmissionRequest{
		Date:    "2025-01-15",
		Entries: []EntryRequest{{Species: "Mallard", Quantity: "2"}},
	}

	_, err := CreateSubmission(context.Background(), repo, user, req)
	assert.ErrorContains(t, err, "disk full")
	// Store failures are not validation failures.
	assert.False(t, IsValidationError(err))
}

func TestDeleteSubmission_PropagatesStoreError(t *testing.T) {
	repo := &stubRepo{deleteErr: errors.New("connection reset")}

	err := DeleteSubmission(context.Background(), repo, &internal.User{ID: "u1"}, "some-id")
	assert.ErrorContains(t, err, "connection reset")
}

func TestCreateSubmission_RejectsBadDate(t *testing.T) {
	repo := &stubRepo{}
	user := &internal.User{ID: "u1"}

	for _, date := range []string{"", "01/15/2025", "2025-1-5", "not-a-date"} {
		req := &SubmissionRequest{
			Date:    date,
			Entries: []EntryRequest{{Species: "Mallard", Quantity: "2"}},
		}
		_, err := CreateSubmission(context.Background(), repo, user, req)
		assert.Error(t, err, "date %q", date)
		assert.True(t, IsValidationError(err), "date %q", date)
	}
	assert.Empty(t, repo.saved)
}
