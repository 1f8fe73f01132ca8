package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNewLanguageLabel(t *testing.T) {
	assert.Equal(t, LanguageLabel("english"), NewLanguageLabel(" English "))
	assert.Equal(t, LanguageLabel("português"), NewLanguageLabel("PORTUGUÊS"))
	assert.True(t, NewLanguageLabel("   ").IsEmpty())
}

func TestLanguageLabelMatches(t *testing.T) {
	l := NewLanguageLabel("English")
	assert.True(t, l.Matches("english"))
	assert.True(t, l.Matches("  ENGLISH "))
	assert.False(t, l.Matches("spanish"))
	assert.False(t, l.Matches("eng"), "no fuzzy matching")
}

func TestPractitionerSpeaks(t *testing.T) {
	p := Practitioner{Languages: []LanguageLabel{"english", "spanish"}}
	assert.True(t, p.Speaks(NewLanguageLabel("Spanish")))
	assert.False(t, p.Speaks(NewLanguageLabel("french")))
}

func TestPractitionerOffersAny(t *testing.T) {
	p := Practitioner{Capabilities: []Capability{
		{ServiceID: 10, ClinicID: 1, Charge: 50},
		{ServiceID: 20, ClinicID: 2, Charge: 80},
	}}

	assert.True(t, p.OffersAny([]int{10}, 1))
	assert.True(t, p.OffersAny([]int{10, 99}, 0), "clinic 0 means any clinic")
	assert.True(t, p.OffersAny([]int{20}, 2))
	assert.False(t, p.OffersAny([]int{10}, 2), "service offered at a different clinic")
	assert.False(t, p.OffersAny([]int{99}, 0))
	assert.False(t, p.OffersAny(nil, 0))
}

func TestLeaveWindowCovers(t *testing.T) {
	w := LeaveWindow{StartDate: "2026-09-10", EndDate: "2026-09-12"}
	assert.True(t, w.Covers("2026-09-10"), "start date inclusive")
	assert.True(t, w.Covers("2026-09-12"), "end date inclusive")
	assert.True(t, w.Covers("2026-09-11"))
	assert.False(t, w.Covers("2026-09-09"))
	assert.False(t, w.Covers("2026-09-13"))
}

func TestPractitionerOnLeave(t *testing.T) {
	p := Practitioner{Leave: []LeaveWindow{
		{StartDate: "2026-09-10", EndDate: "2026-09-12"},
		{StartDate: "2026-12-24", EndDate: "2026-12-31"},
	}}
	assert.True(t, p.OnLeave("2026-09-11"))
	assert.True(t, p.OnLeave("2026-12-25"))
	assert.False(t, p.OnLeave("2026-09-13"))
}
