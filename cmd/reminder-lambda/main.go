// The reminder lambda is the target of the one-shot EventBridge schedules
// registered at appointment creation. Each invocation carries the
// appointment id and emails both parties their meeting link.
package main

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"os"

	"github.com/aws/aws-lambda-go/lambda"
	awssesv2 "github.com/aws/aws-sdk-go-v2/service/sesv2"
	"github.com/jackc/pgx/v5/pgxpool"
	_ "github.com/lib/pq"

	"github.com/juridia/juridia-platform/cmd/mainconfig"
	"github.com/juridia/juridia-platform/internal/appointments"
	appconfig "github.com/juridia/juridia-platform/internal/config"
	"github.com/juridia/juridia-platform/internal/lawyers"
	"github.com/juridia/juridia-platform/internal/notify"
	"github.com/juridia/juridia-platform/pkg/logging"
)

type reminderEvent struct {
	AppointmentID string `json:"appointmentId"`
}

func main() {
	cfg := appconfig.Load()
	logger := logging.New(cfg.LogLevel).Component("reminder-lambda")

	ctx := context.Background()

	pool, err := pgxpool.New(ctx, cfg.DatabaseURL)
	if err != nil {
		logger.Error("failed to create postgres pool", "error", err)
		os.Exit(1)
	}

	directoryDB, err := sql.Open("postgres", cfg.DatabaseURL)
	if err != nil {
		logger.Error("failed to open directory db", "error", err)
		os.Exit(1)
	}

	sender, err := buildSender(ctx, cfg, logger)
	if err != nil {
		logger.Error("failed to build email sender", "error", err)
		os.Exit(1)
	}

	service := notify.NewReminderService(
		appointments.NewRepository(pool),
		contactAdapter{lawyers.NewRepository(directoryDB)},
		sender,
		logger,
	)

	lambda.Start(func(ctx context.Context, raw json.RawMessage) error {
		var evt reminderEvent
		if err := json.Unmarshal(raw, &evt); err != nil || evt.AppointmentID == "" {
			return fmt.Errorf("reminder-lambda: invalid event payload: %s", string(raw))
		}
		return service.SendReminder(ctx, evt.AppointmentID)
	})
}

// buildSender prefers SES when configured and falls back to SendGrid, the
// same order the platform uses elsewhere.
func buildSender(ctx context.Context, cfg *appconfig.Config, logger *logging.Logger) (notify.EmailSender, error) {
	if cfg.SESFromEmail != "" {
		awsCfg, err := mainconfig.LoadAWSConfig(ctx, cfg)
		if err != nil {
			return nil, err
		}
		sender := notify.NewSESSender(awssesv2.NewFromConfig(awsCfg), notify.SESConfig{
			FromEmail: cfg.SESFromEmail,
			FromName:  cfg.SESFromName,
		}, logger)
		if sender != nil {
			return sender, nil
		}
	}

	if sender := notify.NewSendGridSender(notify.SendGridConfig{
		APIKey:    cfg.SendGridAPIKey,
		FromEmail: cfg.SendGridFromEmail,
		FromName:  cfg.SendGridFromName,
	}, logger); sender != nil {
		return sender, nil
	}

	if cfg.Env == "development" {
		return notify.NewStubEmailSender(logger), nil
	}
	return nil, errors.New("no email sender configured")
}

// contactAdapter exposes the lawyer directory through the resolver the
// reminder service expects. Client accounts live in the external identity
// provider, not in the directory, so client lookups fail and the reminder
// service skips them: until an identity-provider resolver is plumbed in,
// only the lawyer is emailed.
type contactAdapter struct {
	repo *lawyers.Repository
}

func (a contactAdapter) Email(ctx context.Context, userID string) (string, string, error) {
	return a.repo.GetContact(ctx, userID)
}
