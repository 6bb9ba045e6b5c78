package repositories

import (
	"net/http"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/DotRPM/dot-image/infra"
)

type Repositories struct {
	ExecutorGetter           ExecutorGetter
	ShopRepository           *ShopRepository
	ShopifyBillingRepository ShopifyBillingRepository
	ShopifyProductRepository ShopifyProductRepository
	ShopifyShopRepository    ShopifyShopRepository
	ShopifyJwtRepository     ShopifyJwtRepository
	OpenAiRepository         OpenAiRepository
}

type options struct {
	httpClient *http.Client
}

type Option func(*options)

// WithHttpClient overrides the client used for all outbound API calls, mostly
// for tests.
func WithHttpClient(client *http.Client) Option {
	return func(o *options) {
		o.httpClient = client
	}
}

func NewRepositories(
	pool *pgxpool.Pool,
	shopifyConfig infra.ShopifyConfig,
	openAiConfig infra.OpenAiConfig,
	opts ...Option,
) Repositories {
	o := &options{}
	for _, opt := range opts {
		opt(o)
	}

	return Repositories{
		ExecutorGetter:           NewExecutorGetter(pool),
		ShopRepository:           NewShopRepository(),
		ShopifyBillingRepository: NewShopifyBillingRepository(shopifyConfig, o.httpClient),
		ShopifyProductRepository: NewShopifyProductRepository(shopifyConfig, o.httpClient),
		ShopifyShopRepository:    NewShopifyShopRepository(shopifyConfig, o.httpClient),
		ShopifyJwtRepository:     NewShopifyJwtRepository(shopifyConfig),
		OpenAiRepository:         NewOpenAiRepository(openAiConfig, o.httpClient),
	}
}
