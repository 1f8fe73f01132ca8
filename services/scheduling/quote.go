package scheduling

import (
	"fmt"
)

// QuoteCharges totals what the practitioner charges for the selected services
// at the clinic. Services without a matching capability row contribute
// nothing, mirroring how the clinic system sums its mapping rows.
func (e *DefaultSchedulingEngine) QuoteCharges(practitionerID, clinicID int, serviceIDs []int) (float64, error) {
	p, err := e.Practitioners.GetByID(practitionerID)
	if err != nil {
		return 0, fmt.Errorf("failed to load practitioner %d: %w", practitionerID, err)
	}

	var total float64
	for _, sid := range serviceIDs {
		for _, cap := range p.Capabilities {
			if cap.ServiceID != sid {
				continue
			}
			if clinicID > 0 && cap.ClinicID != clinicID {
				continue
			}
			total += cap.Charge
			break
		}
	}
	return total, nil
}
