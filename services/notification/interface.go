package notification

import (
	"context"

	"github.com/higordev223/salute-child/models"
)

// NotificationService hands appointment reminders to the delivery
// collaborator. Message rendering and channel choice (email, SMS, push) live
// outside this engine; the sink only receives the booking facts.
type NotificationService interface {
	SendBookingReminder(ctx context.Context, payload models.ReminderPayload) error
}
