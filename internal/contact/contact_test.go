package contact

import (
	"context"
	"errors"
	"net/smtp"
	"strings"
	"testing"

	"github.com/Zachkp/portfolio/internal/config"
)

func TestNewPicksMailer(t *testing.T) {
	if _, ok := New(config.SMTPConfig{Host: "smtp.example.com", Port: "587"}).(LogMailer); !ok {
		t.Error("expected LogMailer without credentials")
	}
	if _, ok := New(config.SMTPConfig{Host: "smtp.example.com", Port: "587", User: "u", Pass: "p"}).(*SMTPMailer); !ok {
		t.Error("expected SMTPMailer with credentials")
	}
}

func TestSMTPMailerSend(t *testing.T) {
	var (
		gotAddr string
		gotTo   []string
		gotMsg  string
	)
	m := &SMTPMailer{
		cfg: config.SMTPConfig{Host: "smtp.example.com", Port: "2525", User: "me@example.com", Pass: "pw"},
		send: func(addr string, _ smtp.Auth, from string, to []string, msg []byte) error {
			gotAddr, gotTo, gotMsg = addr, to, string(msg)
			return nil
		},
	}

	err := m.Send(context.Background(), Message{Name: "Ada", Email: "ada@example.com", Message: "Hello there"})
	if err != nil {
		t.Fatalf("Send: %v", err)
	}
	if gotAddr != "smtp.example.com:2525" {
		t.Errorf("addr = %q", gotAddr)
	}
	if len(gotTo) != 1 || gotTo[0] != "me@example.com" {
		t.Errorf("to = %v, want fallback to the SMTP user", gotTo)
	}
	for _, want := range []string{"Subject: Portfolio Contact: Ada\r\n", "Reply-To: ada@example.com\r\n", "Hello there"} {
		if !strings.Contains(gotMsg, want) {
			t.Errorf("message missing %q:\n%s", want, gotMsg)
		}
	}
}

func TestSMTPMailerWrapsErrors(t *testing.T) {
	boom := errors.New("connection refused")
	m := &SMTPMailer{
		cfg:  config.SMTPConfig{Host: "h", Port: "25", User: "u", Pass: "p", To: "t@example.com"},
		send: func(string, smtp.Auth, string, []string, []byte) error { return boom },
	}
	if err := m.Send(context.Background(), Message{Name: "a", Email: "b@c.d", Message: "m"}); !errors.Is(err, boom) {
		t.Errorf("err = %v", err)
	}

	unconfigured := &SMTPMailer{cfg: config.SMTPConfig{Host: "h", Port: "25"}}
	if err := unconfigured.Send(context.Background(), Message{}); !errors.Is(err, ErrNotConfigured) {
		t.Errorf("unconfigured err = %v", err)
	}
}

func TestComposeStripsHeaderInjection(t *testing.T) {
	msg := string(Compose("from@example.com", "to@example.com", Message{
		Name:    "Eve\r\nBcc: victim@example.com",
		Email:   "eve@example.com",
		Message: "hi",
	}))
	if strings.Contains(msg, "\r\nBcc:") {
		t.Errorf("header injected:\n%s", msg)
	}
}
