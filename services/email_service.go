package services

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gopkg.in/gomail.v2"

	"github.com/Suraj8267/Event-Aggregator-for-College-Students/config"
)

// EmailService sends informational mail alongside in-app notifications.
// It is disabled (all sends become no-ops) when no SMTP host is configured.
type EmailService struct {
	config  *config.Config
	dialer  *gomail.Dialer
	enabled bool
}

func NewEmailService(cfg *config.Config) *EmailService {
	service := &EmailService{
		config:  cfg,
		enabled: cfg.SMTPHost != "",
	}

	if service.enabled {
		service.dialer = gomail.NewDialer(cfg.SMTPHost, cfg.SMTPPort, cfg.SMTPUsername, cfg.SMTPPassword)
	}

	return service
}

func (es *EmailService) Enabled() bool {
	return es.enabled
}

// SendRegistrationConfirmation mails a registrant after a successful event
// registration.
func (es *EmailService) SendRegistrationConfirmation(email, username, eventTitle string, eventDate time.Time) error {
	subject := fmt.Sprintf("Registration confirmed: %s", eventTitle)
	body := fmt.Sprintf(`
<html>
<body>
    <h2>Hello %s!</h2>
    <p>You are registered for <strong>%s</strong> on %s.</p>
    <p>See you there!</p>
</body>
</html>`, username, eventTitle, eventDate.Format("January 2, 2006 at 3:04 PM"))

	return es.send(email, subject, body)
}

// SendEventCancellation mails a registrant when an event they registered
// for is deleted.
func (es *EmailService) SendEventCancellation(email, username, eventTitle string) error {
	subject := fmt.Sprintf("Event cancelled: %s", eventTitle)
	body := fmt.Sprintf(`
<html>
<body>
    <h2>Hello %s,</h2>
    <p>Unfortunately the event <strong>%s</strong> has been cancelled.</p>
    <p>Check the event catalog for alternatives.</p>
</body>
</html>`, username, eventTitle)

	return es.send(email, subject, body)
}

func (es *EmailService) send(to, subject, htmlBody string) error {
	if !es.enabled {
		zap.L().Debug("email delivery disabled, skipping", zap.String("to", to), zap.String("subject", subject))
		return nil
	}

	m := gomail.NewMessage()
	m.SetHeader("From", fmt.Sprintf("%s <%s>", es.config.FromName, es.config.FromEmail))
	m.SetHeader("To", to)
	m.SetHeader("Subject", subject)
	m.SetHeader("Message-ID", fmt.Sprintf("<%s@event-aggregator>", uuid.New().String()))
	m.SetBody("text/html", htmlBody)

	return es.dialer.DialAndSend(m)
}
