// Package mailer dispatches booking lifecycle emails to the external email
// service. Delivery is fire-and-forget: a send failure is logged and never
// propagates into the state transition that triggered it.
package mailer

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"time"

	"go.uber.org/zap"
)

type EmailType string

const (
	EmailConfirmation EmailType = "confirmation"
	EmailNotification EmailType = "notification"
	EmailCancellation EmailType = "cancellation"
)

type Mailer struct {
	endpoint string
	secret   string
	http     *http.Client
}

func New(endpoint, secret string) *Mailer {
	return &Mailer{
		endpoint: endpoint,
		secret:   secret,
		http:     &http.Client{Timeout: 10 * time.Second},
	}
}

type payload struct {
	Type      EmailType `json:"type"`
	BookingID string    `json:"bookingId"`
	SalonID   string    `json:"salonId"`
}

// Send dispatches one email asynchronously. The goroutine carries its own
// timeout so a slow email service cannot hold the caller's request open.
func (m *Mailer) Send(emailType EmailType, bookingID, salonID string) {
	if m == nil || m.endpoint == "" {
		return
	}
	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()

		if err := m.send(ctx, emailType, bookingID, salonID); err != nil {
			zap.L().Error("email dispatch failed",
				zap.String("type", string(emailType)),
				zap.String("booking_id", bookingID),
				zap.Error(err))
		}
	}()
}

func (m *Mailer) send(ctx context.Context, emailType EmailType, bookingID, salonID string) error {
	raw, err := json.Marshal(payload{Type: emailType, BookingID: bookingID, SalonID: salonID})
	if err != nil {
		return err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, m.endpoint, bytes.NewReader(raw))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("x-email-secret", m.secret)

	resp, err := m.http.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	if resp.StatusCode >= 300 {
		return &statusError{code: resp.StatusCode}
	}
	return nil
}

type statusError struct {
	code int
}

func (e *statusError) Error() string {
	return http.StatusText(e.code)
}
