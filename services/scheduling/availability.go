package scheduling

import (
	"fmt"
	"sort"

	"github.com/higordev223/salute-child/models"
	"github.com/higordev223/salute-child/utils"

	"go.uber.org/zap"
)

// SlotMenuForDay merges every candidate's generated slots for a date into
// the client-facing menu: exact-duplicate wall-clock times collapse to one
// option, each bucket sorted ascending. Empty candidates or no generated
// slots yield empty buckets, not an error; the caller maps an empty menu to
// its no-availability response.
func (e *DefaultSchedulingEngine) SlotMenuForDay(candidates []int, date string) (models.SlotMenu, error) {
	if _, err := models.ParseDate(date); err != nil {
		return models.SlotMenu{}, fmt.Errorf("%w: %v", ErrInvalidRequest, err)
	}
	logger := utils.GetLogger()

	seen := make(map[string]struct{})
	menu := models.SlotMenu{}

	for _, id := range candidates {
		onLeave, err := e.onLeave(id, date)
		if err != nil {
			return models.SlotMenu{}, fmt.Errorf("leave lookup failed for practitioner %d: %w", id, err)
		}
		if onLeave {
			logger.Debug("skipping candidate on leave", zap.Int("practitionerId", id))
			continue
		}

		slots, err := e.GenerateSlots(id, date)
		if err != nil {
			return models.SlotMenu{}, err
		}
		for _, ts := range slots {
			if _, dup := seen[ts.Time]; dup {
				continue
			}
			seen[ts.Time] = struct{}{}
			opt := models.MenuSlot{Time: ts.Time}
			if ts.Period == models.PeriodMorning {
				menu.Morning = append(menu.Morning, opt)
			} else {
				menu.Afternoon = append(menu.Afternoon, opt)
			}
		}
	}

	// "HH:MM" sorts chronologically as a string.
	sort.Slice(menu.Morning, func(i, j int) bool { return menu.Morning[i].Time < menu.Morning[j].Time })
	sort.Slice(menu.Afternoon, func(i, j int) bool { return menu.Afternoon[i].Time < menu.Afternoon[j].Time })
	return menu, nil
}

func (e *DefaultSchedulingEngine) onLeave(practitionerID int, date string) (bool, error) {
	p, err := e.Practitioners.GetByID(practitionerID)
	if err != nil {
		return false, err
	}
	return p.OnLeave(date), nil
}
