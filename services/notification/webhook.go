package notification

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/higordev223/salute-child/config"
	"github.com/higordev223/salute-child/models"
	"github.com/higordev223/salute-child/utils"

	"go.uber.org/zap"
)

// WebhookNotificationService posts reminder payloads to the delivery
// service's webhook. With no URL configured, reminders are logged and
// dropped.
type WebhookNotificationService struct {
	Client *http.Client
}

func NewWebhookNotificationService() *WebhookNotificationService {
	return &WebhookNotificationService{
		Client: &http.Client{Timeout: 10 * time.Second},
	}
}

func (s *WebhookNotificationService) SendBookingReminder(ctx context.Context, payload models.ReminderPayload) error {
	logger := utils.GetLogger()

	url := config.AppConfig.ReminderWebhookURL
	if url == "" {
		logger.Info("no reminder webhook configured, dropping reminder",
			zap.String("bookingId", payload.BookingID))
		return nil
	}

	body, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("failed to marshal reminder payload: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("failed to build reminder request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := s.Client.Do(req)
	if err != nil {
		return fmt.Errorf("reminder webhook call failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 300 {
		return fmt.Errorf("reminder webhook returned status %d", resp.StatusCode)
	}
	return nil
}
