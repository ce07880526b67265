package di

import (
	"log/slog"

	authusecase "storefront_backend/internal/feature/auth/usecase"
	"storefront_backend/internal/platform/config"
	"storefront_backend/internal/platform/mail"
)

// NewMailer creates the password-reset mailer.
// If SMTP is configured, it returns an SMTP sender. Otherwise, it logs deliveries.
func NewMailer(cfg config.SMTPConfig) authusecase.Mailer {
	if cfg.Enabled() {
		return mail.NewSMTPSender(cfg)
	}
	slog.Warn("SMTP_HOST is not set; password reset mails will only be logged")
	return mail.LogSender{}
}
