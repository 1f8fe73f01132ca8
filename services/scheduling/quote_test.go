package scheduling

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/higordev223/salute-child/models"
)

func TestQuoteChargesSumsMatchingRows(t *testing.T) {
	p := &models.Practitioner{
		ID:        1,
		Languages: []models.LanguageLabel{"english"},
		Capabilities: []models.Capability{
			{ServiceID: 10, ClinicID: 1, Charge: 50},
			{ServiceID: 20, ClinicID: 1, Charge: 75},
			{ServiceID: 10, ClinicID: 2, Charge: 90},
		},
	}
	engine := newTestEngine(newFakePractitionerRepo(p), &fakeSessionRepo{}, newFakeBookingRepo())

	total, err := engine.QuoteCharges(1, 1, []int{10, 20})
	require.NoError(t, err)
	assert.Equal(t, 125.0, total)
}

func TestQuoteChargesClinicScoped(t *testing.T) {
	p := &models.Practitioner{
		ID: 1,
		Capabilities: []models.Capability{
			{ServiceID: 10, ClinicID: 1, Charge: 50},
			{ServiceID: 10, ClinicID: 2, Charge: 90},
		},
	}
	engine := newTestEngine(newFakePractitionerRepo(p), &fakeSessionRepo{}, newFakeBookingRepo())

	total, err := engine.QuoteCharges(1, 2, []int{10})
	require.NoError(t, err)
	assert.Equal(t, 90.0, total)
}

func TestQuoteChargesUnknownServiceContributesNothing(t *testing.T) {
	engine := newTestEngine(newFakePractitionerRepo(englishPediatrician(1)), &fakeSessionRepo{}, newFakeBookingRepo())

	total, err := engine.QuoteCharges(1, 1, []int{10, 999})
	require.NoError(t, err)
	assert.Equal(t, 50.0, total)
}

func TestQuoteChargesUnknownPractitioner(t *testing.T) {
	engine := newTestEngine(newFakePractitionerRepo(), &fakeSessionRepo{}, newFakeBookingRepo())
	_, err := engine.QuoteCharges(99, 1, []int{10})
	assert.Error(t, err)
}
