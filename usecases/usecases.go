package usecases

import (
	"github.com/DotRPM/dot-image/repositories"
	"github.com/DotRPM/dot-image/usecases/executor_factory"
)

type Usecases struct {
	Repositories repositories.Repositories
	appHost      string
	testCharges  bool
}

type Option func(*options)

type options struct {
	appHost     string
	testCharges bool
}

func WithAppHost(appHost string) Option {
	return func(o *options) {
		o.appHost = appHost
	}
}

func WithTestCharges(testCharges bool) Option {
	return func(o *options) {
		o.testCharges = testCharges
	}
}

func NewUsecases(repositories repositories.Repositories, opts ...Option) Usecases {
	o := &options{}
	for _, opt := range opts {
		opt(o)
	}
	return Usecases{
		Repositories: repositories,
		appHost:      o.appHost,
		testCharges:  o.testCharges,
	}
}

func (usecases *Usecases) NewExecutorFactory() executor_factory.ExecutorFactory {
	return executor_factory.NewDbExecutorFactory(usecases.Repositories.ExecutorGetter)
}

func (usecases *Usecases) NewLivenessUsecase() LivenessUsecase {
	return LivenessUsecase{
		executorFactory:    usecases.NewExecutorFactory(),
		livenessRepository: usecases.Repositories.ShopRepository,
	}
}

func (usecases *Usecases) NewShopUseCase() ShopUseCase {
	return ShopUseCase{
		executorFactory: usecases.NewExecutorFactory(),
		shopRepository:  usecases.Repositories.ShopRepository,
		shopifyShop:     usecases.Repositories.ShopifyShopRepository,
	}
}

func (usecases *Usecases) NewBillingUseCase() BillingUseCase {
	return BillingUseCase{
		executorFactory:   usecases.NewExecutorFactory(),
		shopRepository:    usecases.Repositories.ShopRepository,
		billingRepository: usecases.Repositories.ShopifyBillingRepository,
		appHost:           usecases.appHost,
		testCharges:       usecases.testCharges,
	}
}

func (usecases *Usecases) NewGenerationUseCase() GenerationUseCase {
	return GenerationUseCase{
		billing:        usecases.NewBillingUseCase(),
		imageGenerator: usecases.Repositories.OpenAiRepository,
	}
}

func (usecases *Usecases) NewProductUseCase() ProductUseCase {
	return ProductUseCase{
		productRepository: usecases.Repositories.ShopifyProductRepository,
	}
}
