package usecases

import (
	"context"

	"github.com/cockroachdb/errors"
	"golang.org/x/sync/errgroup"

	"github.com/DotRPM/dot-image/models"
)

const (
	defaultProductPageSize = 15
	attachImageConcurrency = 4
)

type productRepository interface {
	ListProducts(ctx context.Context, shopDomain string, limit int) ([]models.Product, error)
	AttachImage(ctx context.Context, shopDomain string, attachment models.ProductImageAttachment) error
}

type ProductUseCase struct {
	productRepository productRepository
}

func (uc ProductUseCase) ListProducts(ctx context.Context, domain string, limit int) ([]models.Product, error) {
	if limit <= 0 {
		limit = defaultProductPageSize
	}
	return uc.productRepository.ListProducts(ctx, domain, limit)
}

// AttachImages pushes generated images onto their products, a few at a time.
// The Admin API rate-limits per shop, hence the bounded concurrency. The first
// failure cancels the remaining uploads.
func (uc ProductUseCase) AttachImages(ctx context.Context, domain string,
	attachments []models.ProductImageAttachment,
) error {
	if len(attachments) == 0 {
		return errors.Wrap(models.BadParameterError, "no images to attach")
	}

	group, groupCtx := errgroup.WithContext(ctx)
	group.SetLimit(attachImageConcurrency)

	for _, attachment := range attachments {
		group.Go(func() error {
			return uc.productRepository.AttachImage(groupCtx, domain, attachment)
		})
	}
	return group.Wait()
}
