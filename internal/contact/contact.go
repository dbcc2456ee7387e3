// Package contact delivers messages submitted through the public contact form.
package contact

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net"
	"net/smtp"
	"strings"

	"github.com/Zachkp/portfolio/internal/config"
)

// Message is a contact form submission. The form tags match the field names
// of the public page's form.
type Message struct {
	Name    string `form:"fullName" json:"name" binding:"required,max=200"`
	Email   string `form:"email" json:"email" binding:"required,email"`
	Message string `form:"message" json:"message" binding:"required,max=5000"`
}

// Mailer delivers contact messages.
type Mailer interface {
	Send(ctx context.Context, m Message) error
}

// ErrNotConfigured is returned by an SMTP mailer without credentials.
var ErrNotConfigured = errors.New("SMTP credentials not configured")

// New picks the SMTP mailer when credentials are configured and the logging
// mailer otherwise.
func New(cfg config.SMTPConfig) Mailer {
	if cfg.Configured() {
		return &SMTPMailer{cfg: cfg, send: smtp.SendMail}
	}
	log.Println("contact: SMTP not configured, contact messages will only be logged")
	return LogMailer{}
}

// SMTPMailer sends messages with PLAIN auth over SMTP.
type SMTPMailer struct {
	cfg  config.SMTPConfig
	send func(addr string, a smtp.Auth, from string, to []string, msg []byte) error
}

func (s *SMTPMailer) Send(ctx context.Context, m Message) error {
	if !s.cfg.Configured() {
		return ErrNotConfigured
	}
	if err := ctx.Err(); err != nil {
		return err
	}

	to := s.cfg.To
	if to == "" {
		to = s.cfg.User
	}
	auth := smtp.PlainAuth("", s.cfg.User, s.cfg.Pass, s.cfg.Host)
	addr := net.JoinHostPort(s.cfg.Host, s.cfg.Port)
	if err := s.send(addr, auth, s.cfg.User, []string{to}, Compose(s.cfg.User, to, m)); err != nil {
		return fmt.Errorf("sending contact email: %w", err)
	}
	log.Printf("contact: email sent for %s", m.Email)
	return nil
}

// Compose builds the RFC 822 message for m. Header values are stripped of
// line breaks so a submitter cannot inject headers.
func Compose(from, to string, m Message) []byte {
	name := oneLine(m.Name)
	body := fmt.Sprintf(`
New contact form submission from your portfolio:

Name: %s
Email: %s
Message:
%s

---
Sent from your portfolio contact form
`, name, oneLine(m.Email), m.Message)

	var b strings.Builder
	b.WriteString("To: " + to + "\r\n")
	b.WriteString("Subject: Portfolio Contact: " + name + "\r\n")
	b.WriteString("From: " + from + "\r\n")
	b.WriteString("Reply-To: " + oneLine(m.Email) + "\r\n")
	b.WriteString("\r\n")
	b.WriteString(body + "\r\n")
	return []byte(b.String())
}

func oneLine(s string) string {
	return strings.NewReplacer("\r", " ", "\n", " ").Replace(s)
}

// LogMailer accepts every message and only logs it.
type LogMailer struct{}

func (LogMailer) Send(_ context.Context, m Message) error {
	log.Printf("contact: message from %q <%s> (%d bytes), not delivered", m.Name, m.Email, len(m.Message))
	return nil
}
