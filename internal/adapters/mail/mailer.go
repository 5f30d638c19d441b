// Package mail delivers HTML report mails over SMTP.
package mail

import (
	"bytes"
	"context"
	"embed"
	"fmt"
	"html/template"
	"log"
	"mime"
	"net"
	"net/smtp"
	"strings"
	"time"

	"studyon-billing/internal/config"
	"studyon-billing/internal/core/services"

	"github.com/shopspring/decimal"
)

//go:embed templates/*.html
var templateFS embed.FS

// Templates parses the embedded mail templates
func Templates() (*template.Template, error) {
	return template.New("mail").Funcs(template.FuncMap{
		"date":     func(t time.Time) string { return t.Format("02.01.2006") },
		"datetime": func(t time.Time) string { return t.Format("02.01.2006 15:04") },
		"money":    func(d decimal.Decimal) string { return d.StringFixed(2) },
	}).ParseFS(templateFS, "templates/*.html")
}

// Render executes the named template with data
func Render(tmpl *template.Template, name string, data interface{}) (string, error) {
	var buf bytes.Buffer
	if err := tmpl.ExecuteTemplate(&buf, name, data); err != nil {
		return "", fmt.Errorf("render %s: %w", name, err)
	}
	return buf.String(), nil
}

// SendFunc matches smtp.SendMail
type SendFunc func(addr string, a smtp.Auth, from string, to []string, msg []byte) error

// SMTPMailer implements services.Mailer over plain SMTP
type SMTPMailer struct {
	cfg  config.MailConfig
	tmpl *template.Template
	send SendFunc
}

// NewSMTPMailer creates a new SMTP mailer
func NewSMTPMailer(cfg config.MailConfig) (*SMTPMailer, error) {
	tmpl, err := Templates()
	if err != nil {
		return nil, err
	}
	return &SMTPMailer{cfg: cfg, tmpl: tmpl, send: smtp.SendMail}, nil
}

// WithSendFunc replaces the SMTP transport
func (m *SMTPMailer) WithSendFunc(send SendFunc) *SMTPMailer {
	m.send = send
	return m
}

// Send renders mail and hands it to the SMTP server
func (m *SMTPMailer) Send(ctx context.Context, mail services.Mail) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	body, err := Render(m.tmpl, mail.Template, mail.Data)
	if err != nil {
		return err
	}

	var auth smtp.Auth
	if m.cfg.User != "" {
		auth = smtp.PlainAuth("", m.cfg.User, m.cfg.Password, m.cfg.Host)
	}

	addr := net.JoinHostPort(m.cfg.Host, m.cfg.Port)
	if err := m.send(addr, auth, m.cfg.From, []string{mail.To}, buildMessage(m.cfg.From, mail.To, mail.Subject, body)); err != nil {
		return err
	}

	log.Printf("✅ Mail sent: %q to %s", mail.Subject, mail.To)
	return nil
}

func buildMessage(from, to, subject, html string) []byte {
	var b strings.Builder
	b.WriteString("From: " + from + "\r\n")
	b.WriteString("To: " + to + "\r\n")
	b.WriteString("Subject: " + mime.QEncoding.Encode("utf-8", subject) + "\r\n")
	b.WriteString("MIME-Version: 1.0\r\n")
	b.WriteString("Content-Type: text/html; charset=\"utf-8\"\r\n")
	b.WriteString("\r\n")
	b.WriteString(html)
	return []byte(b.String())
}
