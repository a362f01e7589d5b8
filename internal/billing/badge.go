package billing

import "procure/pkg/models"

// Badge is the presentation for a payment status.
type Badge struct {
	Color string
	Icon  string
}

var statusBadges = map[string]Badge{
	models.PaymentStatusUnpaid:  {Color: "amber", Icon: "clock"},
	models.PaymentStatusPartial: {Color: "blue", Icon: "clock"},
	models.PaymentStatusPaid:    {Color: "green", Icon: "check"},
	models.PaymentStatusOverdue: {Color: "red", Icon: "alert"},
}

// StatusBadge maps a payment status to its badge. Unknown statuses get
// the unpaid presentation.
func StatusBadge(status string) Badge {
	if badge, found := statusBadges[status]; found {
		return badge
	}
	return statusBadges[models.PaymentStatusUnpaid]
}
