package models

import (
	"strings"
	"time"
)

// LanguageLabel is a normalized spoken-language label. Labels in the clinic
// data are free-form strings, so all trimming and case-folding happens here,
// once, instead of at every comparison site.
type LanguageLabel string

// NewLanguageLabel normalizes a raw label. An all-whitespace input yields the
// empty label.
func NewLanguageLabel(raw string) LanguageLabel {
	return LanguageLabel(strings.ToLower(strings.TrimSpace(raw)))
}

func (l LanguageLabel) IsEmpty() bool {
	return l == ""
}

// Matches reports exact equality against another raw label.
func (l LanguageLabel) Matches(raw string) bool {
	return l == NewLanguageLabel(raw)
}

// Capability is one (service, clinic, charge) row a practitioner offers.
type Capability struct {
	ServiceID int     `bson:"serviceId" json:"serviceId"`
	ClinicID  int     `bson:"clinicId" json:"clinicId"`
	Charge    float64 `bson:"charge" json:"charge"`
}

// LeaveWindow is an inclusive date range during which a practitioner takes no
// appointments.
type LeaveWindow struct {
	StartDate string `bson:"startDate" json:"startDate"` // "2006-01-02"
	EndDate   string `bson:"endDate" json:"endDate"`
}

// Covers reports whether the given date falls inside the window.
func (w LeaveWindow) Covers(date string) bool {
	return date >= w.StartDate && date <= w.EndDate
}

// Practitioner holds the reference data the engine filters on. Languages and
// capabilities are append-only and maintained by administration workflows.
type Practitioner struct {
	ID           int             `bson:"id" json:"id"`
	DisplayName  string          `bson:"displayName" json:"displayName"`
	Languages    []LanguageLabel `bson:"languages" json:"languages"`
	Capabilities []Capability    `bson:"capabilities" json:"capabilities"`
	Leave        []LeaveWindow   `bson:"leave,omitempty" json:"leave,omitempty"`
	CreatedAt    time.Time       `bson:"createdAt" json:"createdAt,omitzero"`
	UpdatedAt    time.Time       `bson:"updatedAt" json:"updatedAt,omitzero"`
}

// Speaks reports whether the practitioner lists the given language.
func (p *Practitioner) Speaks(lang LanguageLabel) bool {
	for _, l := range p.Languages {
		if l == lang {
			return true
		}
	}
	return false
}

// OffersAny reports whether the practitioner offers at least one of the
// requested services, optionally scoped to a clinic (clinicID 0 means any).
func (p *Practitioner) OffersAny(serviceIDs []int, clinicID int) bool {
	for _, cap := range p.Capabilities {
		if clinicID > 0 && cap.ClinicID != clinicID {
			continue
		}
		for _, sid := range serviceIDs {
			if cap.ServiceID == sid {
				return true
			}
		}
	}
	return false
}

// OnLeave reports whether any leave window covers the date.
func (p *Practitioner) OnLeave(date string) bool {
	for _, w := range p.Leave {
		if w.Covers(date) {
			return true
		}
	}
	return false
}
