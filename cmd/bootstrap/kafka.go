package bootstrap

import (
	"context"

	"resort-booking/internal/infra/notify"
	"resort-booking/internal/pkg/config"
	"resort-booking/internal/usecase/commands"

	"go.uber.org/fx"
)

var KafkaModule = fx.Module("kafka",
	fx.Provide(
		fx.Annotate(
			NewConfirmationNotifier,
			fx.As(new(commands.ConfirmationNotifier)),
		),
	),
)

func NewConfirmationNotifier(lc fx.Lifecycle, cfg config.Config) *notify.KafkaNotifier {
	notifier := notify.NewKafkaNotifier(cfg.Kafka)

	lc.Append(fx.Hook{
		OnStop: func(_ context.Context) error {
			return notifier.Close()
		},
	})

	return notifier
}
