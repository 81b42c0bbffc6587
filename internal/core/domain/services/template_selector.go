package services

import (
	"fmt"
	"time"

	"yard/internal/core/domain/model/kernel"
	"yard/internal/core/domain/model/workshop"
	"yard/internal/pkg/errs"
)

// SelectActiveTemplate picks the only template of workshopID that is active and covers date.
// Two or more candidates mean the master data is ambiguous.
func SelectActiveTemplate(workshopID kernel.UUID, date time.Time, templates []workshop.Template) (workshop.Template, error) {
	var found []workshop.Template
	for _, t := range templates {
		if t.WorkshopID().IsEqual(workshopID) && t.AppliesTo(date) {
			found = append(found, t)
		}
	}

	switch len(found) {
	case 0:
		return workshop.Template{}, errs.NewObjectNotFoundError("template",
			fmt.Sprintf("workshop %s on %s", workshopID, date.Format(time.DateOnly)))
	case 1:
		return found[0], nil
	default:
		return workshop.Template{}, errs.NewIntegrityError(
			fmt.Sprintf("%d active templates of workshop %s cover %s", len(found), workshopID, date.Format(time.DateOnly)))
	}
}
