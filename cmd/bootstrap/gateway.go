package bootstrap

import (
	domaincatalog "resort-booking/internal/domain/catalog"
	infracatalog "resort-booking/internal/infra/catalog"
	"resort-booking/internal/infra/draft"
	"resort-booking/internal/infra/gateway"
	"resort-booking/internal/pkg/config"
	"resort-booking/internal/usecase/commands"

	"github.com/redis/go-redis/v9"
	"go.uber.org/fx"
)

var GatewayModule = fx.Module("gateway",
	fx.Provide(
		fx.Annotate(
			NewSignatureVerifier,
			fx.As(new(commands.SignatureVerifier)),
		),
		fx.Annotate(
			NewCatalogResolver,
			fx.As(new(domaincatalog.Resolver)),
		),
		fx.Annotate(
			NewDraftStore,
			fx.As(new(commands.DraftStore)),
		),
	),
)

func NewSignatureVerifier(cfg config.Config) *gateway.HMACSignatureVerifier {
	return gateway.NewHMACSignatureVerifier(cfg.Payment.WebhookSecret)
}

func NewCatalogResolver(cfg config.Config, rdb *redis.Client) *infracatalog.HTTPResolver {
	return infracatalog.NewHTTPResolver(cfg.Catalog, rdb)
}

func NewDraftStore(cfg config.Config, rdb *redis.Client) *draft.RedisStore {
	return draft.NewRedisStore(rdb, cfg.Draft.TTL)
}
