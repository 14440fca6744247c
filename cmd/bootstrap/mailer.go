package bootstrap

import (
	"context"
	"fmt"

	"restaurant-backend/internal/infra/mail"
	"restaurant-backend/internal/pkg/config"

	"go.uber.org/fx"
)

var MailModule = fx.Module("mail",
	fx.Provide(
		NewMailSender,
	),
)

func NewMailSender(cfg config.Config) (mail.Sender, error) {
	switch cfg.Mail.Driver {
	case "log", "":
		return mail.NewLogSender(), nil
	case "ses":
		return mail.NewSESSender(context.Background(), cfg.Mail.SESRegion, cfg.Mail.FromEmail)
	default:
		return nil, fmt.Errorf("unknown mail driver: %q", cfg.Mail.Driver)
	}
}
