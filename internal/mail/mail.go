// Package mail sends transactional mails through SMTP.
package mail

import (
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/expense-tracker/backend/internal/config"
	"github.com/rs/zerolog/log"
	gomail "gopkg.in/gomail.v2"
)

// ErrNotConfigured is returned when a mail is requested but SMTP is not set up.
var ErrNotConfigured = errors.New("sending email is not configured on this server")

// Client sends mails. A Client built without SMTP credentials is disabled
// and refuses to send.
type Client struct {
	dialer   *gomail.Dialer
	from     string
	fromName string
}

// New builds a mail client from the SMTP configuration. When host, user or
// password are missing, the returned client is disabled.
func New(cfg config.SMTP) *Client {
	if cfg.Host == "" || cfg.User == "" || cfg.Password == "" {
		log.Info().Msg("SMTP is not configured, mail features are disabled")
		return &Client{}
	}

	return &Client{
		dialer:   gomail.NewDialer(cfg.Host, cfg.Port, cfg.User, cfg.Password),
		from:     cfg.From,
		fromName: cfg.FromName,
	}
}

// Enabled reports whether the client can send mail.
func (c *Client) Enabled() bool {
	return c.dialer != nil
}

// SendPasswordReset mails a password reset link to the user.
func (c *Client) SendPasswordReset(to, username, resetURL string) error {
	if !c.Enabled() {
		return ErrNotConfigured
	}

	body := fmt.Sprintf(`Hi %s,

Someone requested a password reset for your Expense Tracker account.

Use this link to set a new password: %s

The link is valid for one hour. If you did not request a reset, you can
ignore this mail.

---
Expense Tracker Team
`, username, resetURL)

	m := gomail.NewMessage()
	m.SetAddressHeader("From", c.from, c.fromName)
	m.SetHeader("To", to)
	m.SetHeader("Subject", "Reset your Expense Tracker password")
	m.SetBody("text/plain", body)

	return c.dialer.DialAndSend(m)
}

// SendExport mails an export file as attachment.
func (c *Client) SendExport(to, username, filename string, content []byte) error {
	if !c.Enabled() {
		return ErrNotConfigured
	}

	body := fmt.Sprintf(`Hi %s,

Your expense data export is attached to this email.

File: %s
Generated: %s

You can open this file with Excel, Google Sheets, or any spreadsheet
application.

---
Expense Tracker Team
`, username, filename, time.Now().In(time.UTC).Format("2006-01-02 15:04:05"))

	m := gomail.NewMessage()
	m.SetAddressHeader("From", c.from, c.fromName)
	m.SetHeader("To", to)
	m.SetHeader("Subject", fmt.Sprintf("Your Expense Export - %s", filename))
	m.SetBody("text/plain", body)
	m.Attach(filename, gomail.SetCopyFunc(func(w io.Writer) error {
		_, err := w.Write(content)
		return err
	}))

	return c.dialer.DialAndSend(m)
}
