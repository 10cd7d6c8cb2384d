// internal/app/system/mailer/mailer.go
package mailer

import (
	"fmt"
	"mime/multipart"
	"net/smtp"
	"net/textproto"
	"strings"

	"go.uber.org/zap"
)

// Email is a message ready to send. TextBody is required; HTMLBody is
// optional and sent as a multipart alternative when present.
type Email struct {
	To       string
	Subject  string
	TextBody string
	HTMLBody string
}

// Sender delivers email. Implementations must be safe for concurrent use.
type Sender interface {
	Send(e Email) error
}

// SMTPMailer sends mail through a single SMTP relay.
type SMTPMailer struct {
	host string
	port int
	user string
	pass string
	from string
	log  *zap.Logger
}

func NewSMTP(host string, port int, user, pass, from string, log *zap.Logger) *SMTPMailer {
	return &SMTPMailer{host: host, port: port, user: user, pass: pass, from: from, log: log}
}

func (m *SMTPMailer) Send(e Email) error {
	msg, err := buildMessage(m.from, e)
	if err != nil {
		return fmt.Errorf("build message: %w", err)
	}

	addr := fmt.Sprintf("%s:%d", m.host, m.port)
	var auth smtp.Auth
	if m.user != "" {
		auth = smtp.PlainAuth("", m.user, m.pass, m.host)
	}
	if err := smtp.SendMail(addr, auth, m.from, []string{e.To}, msg); err != nil {
		return fmt.Errorf("send mail to %s: %w", e.To, err)
	}
	return nil
}

func buildMessage(from string, e Email) ([]byte, error) {
	var b strings.Builder
	fmt.Fprintf(&b, "From: %s\r\n", from)
	fmt.Fprintf(&b, "To: %s\r\n", e.To)
	fmt.Fprintf(&b, "Subject: %s\r\n", e.Subject)
	b.WriteString("MIME-Version: 1.0\r\n")

	if e.HTMLBody == "" {
		b.WriteString("Content-Type: text/plain; charset=UTF-8\r\n\r\n")
		b.WriteString(e.TextBody)
		return []byte(b.String()), nil
	}

	var body strings.Builder
	w := multipart.NewWriter(&body)
	fmt.Fprintf(&b, "Content-Type: multipart/alternative; boundary=%q\r\n\r\n", w.Boundary())

	tp, err := w.CreatePart(textproto.MIMEHeader{"Content-Type": {"text/plain; charset=UTF-8"}})
	if err != nil {
		return nil, err
	}
	if _, err := tp.Write([]byte(e.TextBody)); err != nil {
		return nil, err
	}
	hp, err := w.CreatePart(textproto.MIMEHeader{"Content-Type": {"text/html; charset=UTF-8"}})
	if err != nil {
		return nil, err
	}
	if _, err := hp.Write([]byte(e.HTMLBody)); err != nil {
		return nil, err
	}
	if err := w.Close(); err != nil {
		return nil, err
	}

	b.WriteString(body.String())
	return []byte(b.String()), nil
}

// LogMailer logs mail instead of sending it. Used in development when no
// SMTP host is configured.
type LogMailer struct {
	log *zap.Logger
}

func NewLog(log *zap.Logger) *LogMailer {
	return &LogMailer{log: log}
}

func (m *LogMailer) Send(e Email) error {
	m.log.Info("mail (not sent, no smtp host configured)",
		zap.String("to", e.To),
		zap.String("subject", e.Subject),
		zap.String("text", e.TextBody))
	return nil
}
