package email

import (
	"fmt"

	"gopkg.in/gomail.v2"

	"github.com/fisiotrack/ward-api/internal/config"
)

// Service sends account lifecycle notices. Notices never carry passwords.
type Service interface {
	SendAccountCreated(to, name string) error
	SendPasswordReset(to, name string) error
	Enabled() bool
}

// NewService returns an SMTP-backed sender, or a disabled no-op one when no
// SMTP host is configured.
func NewService(cfg config.SMTPConfig) Service {
	if cfg.Host == "" {
		return &noopService{}
	}
	return &smtpService{
		dialer: gomail.NewDialer(cfg.Host, cfg.Port, cfg.User, cfg.Password),
		from:   cfg.From,
	}
}

type smtpService struct {
	dialer *gomail.Dialer
	from   string
}

func (s *smtpService) Enabled() bool { return true }

func (s *smtpService) SendAccountCreated(to, name string) error {
	body := fmt.Sprintf(
		"Hello %s,\n\nan account was created for you in the ward tracker. "+
			"Sign in with the password you received and choose a new one on first login.\n", name)
	return s.send(to, "Your ward tracker account", body)
}

func (s *smtpService) SendPasswordReset(to, name string) error {
	body := fmt.Sprintf(
		"Hello %s,\n\nan administrator reset your ward tracker password. "+
			"You will be asked to choose a new one on your next login. "+
			"If you did not expect this, contact your administrator.\n", name)
	return s.send(to, "Your password was reset", body)
}

func (s *smtpService) send(to, subject, body string) error {
	m := gomail.NewMessage()
	m.SetHeader("From", s.from)
	m.SetHeader("To", to)
	m.SetHeader("Subject", subject)
	m.SetBody("text/plain", body)

	if err := s.dialer.DialAndSend(m); err != nil {
		return fmt.Errorf("failed to send email: %w", err)
	}
	return nil
}

type noopService struct{}

func (n *noopService) Enabled() bool                        { return false }
func (n *noopService) SendAccountCreated(_, _ string) error { return nil }
func (n *noopService) SendPasswordReset(_, _ string) error  { return nil }
