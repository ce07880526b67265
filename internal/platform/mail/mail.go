// Package mail delivers password reset emails.
package mail

import (
	"context"
	"fmt"
	"log/slog"

	"gopkg.in/gomail.v2"

	"storefront_backend/internal/platform/config"
)

const resetSubject = "Password Reset Request"

// SMTPSender sends mail through an SMTP relay.
type SMTPSender struct {
	from string
	send func(m ...*gomail.Message) error
}

// NewSMTPSender creates a sender for cfg. 接続は送信のたびに確立します。
func NewSMTPSender(cfg config.SMTPConfig) *SMTPSender {
	d := gomail.NewDialer(cfg.Host, cfg.Port, cfg.User, cfg.Password)
	return &SMTPSender{from: cfg.From, send: d.DialAndSend}
}

// SendPasswordReset mails token to the user.
func (s *SMTPSender) SendPasswordReset(ctx context.Context, to, username, token string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if err := s.send(resetMessage(s.from, to, username, token)); err != nil {
		return fmt.Errorf("send password reset mail: %w", err)
	}
	slog.Info("password reset mail sent", "username", username)
	return nil
}

func resetMessage(from, to, username, token string) *gomail.Message {
	m := gomail.NewMessage()
	m.SetHeader("From", from)
	m.SetHeader("To", to)
	m.SetHeader("Subject", resetSubject)
	m.SetBody("text/plain", resetBody(username, token))
	return m
}

func resetBody(username, token string) string {
	return fmt.Sprintf(`Hello %s,

We received a request to reset the password for your account.

If this was you, please use the following token to reset your password:

Token: %s

If you didn't request a password reset, no action is required from you.

Thank you,
Your Support Team`, username, token)
}

// LogSender writes the reset token to the log instead of sending mail.
// SMTPが未設定の開発環境専用です。
type LogSender struct{}

// SendPasswordReset logs the delivery.
func (LogSender) SendPasswordReset(_ context.Context, to, username, token string) error {
	slog.Warn("SMTP is not configured; password reset mail not sent", "to", to, "username", username, "token", token)
	return nil
}
