package scheduling

import (
	"fmt"
	"sort"

	practitionerRepo "github.com/higordev223/salute-child/database/repository/practitioner"
	"github.com/higordev223/salute-child/models"
	"github.com/higordev223/salute-child/utils"

	"go.uber.org/zap"
)

// MatchPractitioners resolves the capability-filtered candidate pool. The
// pool is ephemeral, computed per request and never persisted. An empty pool
// maps to ErrNoCapabilityMatch; matching itself never errors on "nothing
// found".
func (e *DefaultSchedulingEngine) MatchPractitioners(req models.AppointmentRequest) ([]int, error) {
	if len(req.ServiceIDs) == 0 {
		return nil, fmt.Errorf("%w: no services requested", ErrInvalidRequest)
	}
	lang := models.NewLanguageLabel(req.LanguageLabel)
	if lang.IsEmpty() {
		return nil, fmt.Errorf("%w: language is required", ErrInvalidRequest)
	}

	matches, err := e.searchCandidates(lang, req.ServiceIDs, req.ClinicID)
	if err != nil {
		return nil, err
	}
	if len(matches) == 0 {
		utils.GetLogger().Info("no capability match",
			zap.String("language", string(lang)),
			zap.Ints("serviceIds", req.ServiceIDs),
			zap.Int("clinicId", req.ClinicID))
		return nil, ErrNoCapabilityMatch
	}

	ids := make([]int, 0, len(matches))
	for _, p := range matches {
		ids = append(ids, p.ID)
	}
	sort.Ints(ids)
	return ids, nil
}

// searchCandidates queries the repository and re-verifies both filters on the
// decoded documents, so the capability contract holds no matter how the
// backing store indexes its data.
func (e *DefaultSchedulingEngine) searchCandidates(lang models.LanguageLabel, serviceIDs []int, clinicID int) ([]models.Practitioner, error) {
	criteria := practitionerRepo.SearchCriteria{
		Language:   lang,
		ServiceIDs: serviceIDs,
		ClinicID:   clinicID,
	}
	found, err := e.Practitioners.Search(criteria)
	if err != nil {
		return nil, fmt.Errorf("practitioner search failed: %w", err)
	}

	var matches []models.Practitioner
	for _, p := range found {
		if !lang.IsEmpty() && !p.Speaks(lang) {
			continue
		}
		if !p.OffersAny(serviceIDs, clinicID) {
			continue
		}
		matches = append(matches, p)
	}
	return matches, nil
}

// LanguagesForService lists the distinct languages spoken across all
// practitioners offering the services at the clinic, sorted for a stable
// menu.
func (e *DefaultSchedulingEngine) LanguagesForService(clinicID int, serviceIDs []int) ([]models.LanguageLabel, error) {
	if len(serviceIDs) == 0 {
		return nil, fmt.Errorf("%w: no services requested", ErrInvalidRequest)
	}

	matches, err := e.searchCandidates("", serviceIDs, clinicID)
	if err != nil {
		return nil, err
	}

	seen := make(map[models.LanguageLabel]struct{})
	var langs []models.LanguageLabel
	for _, p := range matches {
		for _, l := range p.Languages {
			l = models.NewLanguageLabel(string(l))
			if l.IsEmpty() {
				continue
			}
			if _, ok := seen[l]; ok {
				continue
			}
			seen[l] = struct{}{}
			langs = append(langs, l)
		}
	}
	sort.Slice(langs, func(i, j int) bool { return langs[i] < langs[j] })
	return langs, nil
}
