package application

import (
	"time"

	"github.com/saransh1220/bucket-events/internal/modules/digest/domain"
	fsdomain "github.com/saransh1220/bucket-events/internal/modules/filestorage/domain"
)

// FilterByDay keeps the objects last modified during the day before boundary,
// i.e. inside [start of previous day, start of boundary's day). Timestamps are
// compared as instants; the boundaries are computed in boundary's location.
// Callers reporting on a day pass the start of the following day.
func FilterByDay(refs []fsdomain.ObjectRef, boundary time.Time) []fsdomain.ObjectRef {
	window := domain.WindowEndingAt(boundary)

	kept := make([]fsdomain.ObjectRef, 0, len(refs))
	for _, ref := range refs {
		if window.Contains(ref.LastModified) {
			kept = append(kept, ref)
		}
	}
	return kept
}
