package validation

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mountaintravels/admin-dashboard/internal/model"
)

func validBooking() model.Booking {
	return model.Booking{
		PackageName: "Fairy Meadows Trek",
		PackageID:   "fm-01",
		Date:        model.NewDate(time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC)),
		EndDate:     model.NewDate(time.Date(2025, 6, 5, 0, 0, 0, 0, time.UTC)),
		Person:      2,
		Name:        "Hina",
		Email:       "hina@example.com",
		Phone:       "+92 300 0000000",
		Amount:      900,
	}
}

func TestValidBookingPasses(t *testing.T) {
	b := validBooking()
	assert.NoError(t, New().Validate(&b))
}

func TestMissingFieldsAreReportedByJSONName(t *testing.T) {
	b := validBooking()
	b.PackageName = ""
	b.Date = model.Date{}
	b.Person = 0

	err := New().Validate(&b)
	require.Error(t, err)

	var verr *Error
	require.True(t, errors.As(err, &verr))
	assert.ElementsMatch(t, []string{"packageName", "date", "person"}, verr.Fields())
	assert.Contains(t, err.Error(), "packageName is required")
	assert.Contains(t, err.Error(), "person must be at least 1")
}

func TestEnumTag(t *testing.T) {
	b := validBooking()
	b.Status = "shipped"
	err := New().Validate(&b)
	require.Error(t, err)
	assert.Contains(t, err.Error(), `status has invalid value "shipped"`)

	b.Status = model.BookingConfirmed
	assert.NoError(t, New().Validate(&b))
}

func TestNestedItineraryValidation(t *testing.T) {
	tour := model.Tour{
		Title:       "Hunza Valley",
		Description: "Seven days in Hunza",
		Location:    "Hunza",
		Price:       1200,
		Duration:    7,
		Category:    "Cultural",
		Itineraries: []model.ItineraryDay{{Day: 1, Title: "Arrive"}},
	}
	err := New().Validate(&tour)
	require.Error(t, err)

	var verr *Error
	require.True(t, errors.As(err, &verr))
	assert.Equal(t, []string{"itineraries[0].description"}, verr.Fields())
}

func TestStaffRoleRequired(t *testing.T) {
	s := model.Staff{Name: "Bilal", Email: "bilal@example.com"}
	err := New().Validate(&s)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "role is required")
}
