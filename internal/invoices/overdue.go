package invoices

import (
	"math"
	"time"
)

// DaysOverdue reports how many days past due an invoice is as of now:
// the number of started 24-hour periods since the due date, never
// negative. A nil due date or one in the future yields 0; a due date
// exactly N days ago yields N.
func DaysOverdue(dueDate *time.Time, now time.Time) int {
	if dueDate == nil {
		return 0
	}
	late := now.Sub(*dueDate)
	if late <= 0 {
		return 0
	}
	return int(math.Ceil(late.Hours() / 24))
}
