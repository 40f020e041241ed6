// Package messaging sends transactional email and SMS. Every send, real or
// simulated, leaves a log record in the store so the UI can show history.
package messaging

import (
	"context"
	"fmt"
	"time"

	"bossmaids/config"
	"bossmaids/database"
	"bossmaids/models"
	"bossmaids/utils"

	"github.com/sendgrid/sendgrid-go"
	"github.com/sendgrid/sendgrid-go/helpers/mail"
	"github.com/twilio/twilio-go"
	twilioApi "github.com/twilio/twilio-go/rest/api/v2010"
	"go.uber.org/zap"
)

const (
	emailLogsCol = "email_logs"
	smsLogsCol   = "sms_logs"
)

// MessagingService is the outbound-message surface.
type MessagingService interface {
	SendEmail(ctx context.Context, userID string, req models.EmailRequest) (*models.SendResult, error)
	SendSMS(ctx context.Context, userID string, req models.SMSRequest) (*models.SendResult, error)
	EmailLogs(ctx context.Context, userID string) ([]database.Record, error)
	SMSLogs(ctx context.Context, userID string) ([]database.Record, error)
}

// DefaultMessagingService implements MessagingService. When a provider is
// not configured the send is simulated: logged and recorded, not delivered.
type DefaultMessagingService struct {
	Store database.Store
	Cfg   config.Config
}

func (s *DefaultMessagingService) SendEmail(ctx context.Context, userID string, req models.EmailRequest) (*models.SendResult, error) {
	logger := utils.GetLogger()

	if s.Cfg.DemoMode() || !s.Cfg.HasSendGrid() {
		logger.Info("demo email send",
			zap.String("to", req.To),
			zap.String("subject", req.Subject))
		if err := s.logEmail(ctx, userID, req); err != nil {
			return nil, err
		}
		return &models.SendResult{Success: true, Message: "Email sent (demo mode)"}, nil
	}

	from := mail.NewEmail("BossMaids", s.Cfg.SendGridFromEmail)
	to := mail.NewEmail("", req.To)
	message := mail.NewSingleEmail(from, req.Subject, to, "", req.HTML)
	client := sendgrid.NewSendClient(s.Cfg.SendGridAPIKey)

	resp, err := client.SendWithContext(ctx, message)
	if err != nil {
		return nil, fmt.Errorf("failed to send email to %s: %w", req.To, err)
	}
	if resp.StatusCode >= 400 {
		return nil, fmt.Errorf("sendgrid rejected email to %s: status %d", req.To, resp.StatusCode)
	}
	if err := s.logEmail(ctx, userID, req); err != nil {
		return nil, err
	}
	return &models.SendResult{Success: true, Message: "Email sent"}, nil
}

func (s *DefaultMessagingService) logEmail(ctx context.Context, userID string, req models.EmailRequest) error {
	_, err := s.Store.Insert(ctx, emailLogsCol, database.Record{
		"user_id":  userID,
		"to_email": req.To,
		"subject":  req.Subject,
		"status":   "sent",
		"sent_at":  time.Now().Format(time.RFC3339),
	})
	if err != nil {
		return fmt.Errorf("failed to record email log: %w", err)
	}
	return nil
}

func (s *DefaultMessagingService) SendSMS(ctx context.Context, userID string, req models.SMSRequest) (*models.SendResult, error) {
	logger := utils.GetLogger()

	if s.Cfg.DemoMode() || !s.Cfg.HasTwilio() {
		logger.Info("demo sms send", zap.String("to", req.To))
		if err := s.logSMS(ctx, userID, req); err != nil {
			return nil, err
		}
		return &models.SendResult{Success: true, Message: "SMS sent (demo mode)"}, nil
	}

	client := twilio.NewRestClientWithParams(twilio.ClientParams{
		Username: s.Cfg.TwilioAccountSID,
		Password: s.Cfg.TwilioAuthToken,
	})
	params := &twilioApi.CreateMessageParams{}
	params.SetTo(req.To)
	params.SetFrom(s.Cfg.TwilioPhoneNumber)
	params.SetBody(req.Message)

	resp, err := client.Api.CreateMessage(params)
	if err != nil {
		return nil, fmt.Errorf("failed to send sms to %s: %w", req.To, err)
	}
	if err := s.logSMS(ctx, userID, req); err != nil {
		return nil, err
	}
	sid := ""
	if resp.Sid != nil {
		sid = *resp.Sid
	}
	return &models.SendResult{Success: true, Message: "SMS sent", SID: sid}, nil
}

func (s *DefaultMessagingService) logSMS(ctx context.Context, userID string, req models.SMSRequest) error {
	_, err := s.Store.Insert(ctx, smsLogsCol, database.Record{
		"user_id":  userID,
		"to_phone": req.To,
		"message":  req.Message,
		"status":   "sent",
		"sent_at":  time.Now().Format(time.RFC3339),
	})
	if err != nil {
		return fmt.Errorf("failed to record sms log: %w", err)
	}
	return nil
}

func (s *DefaultMessagingService) EmailLogs(ctx context.Context, userID string) ([]database.Record, error) {
	return s.Store.Select(ctx, emailLogsCol,
		database.Filter{"user_id": userID},
		&database.Order{Field: "sent_at", Ascending: false})
}

func (s *DefaultMessagingService) SMSLogs(ctx context.Context, userID string) ([]database.Record, error) {
	return s.Store.Select(ctx, smsLogsCol,
		database.Filter{"user_id": userID},
		&database.Order{Field: "sent_at", Ascending: false})
}
