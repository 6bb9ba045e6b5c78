package repositories

import (
	"context"
	"net/http"
	"testing"

	"github.com/h2non/gock"
	"github.com/stretchr/testify/assert"

	"github.com/DotRPM/dot-image/infra"
	"github.com/DotRPM/dot-image/models"
)

func makeProductRepository() ShopifyProductRepository {
	return NewShopifyProductRepository(infra.ShopifyConfig{
		AdminToken: "admin-token",
		ApiVersion: "2023-04",
	}, http.DefaultClient)
}

func TestShopifyProductListProducts(t *testing.T) {
	defer gock.Off()

	gock.New("https://" + testShopDomain).
		Get("/admin/api/2023-04/products.json").
		MatchParam("limit", "15").
		Reply(http.StatusOK).
		JSON(map[string]any{
			"products": []map[string]any{
				{"id": 1, "title": "Sneaker", "image": map[string]any{"src": "https://cdn.example.com/1.png"}},
				{"id": 2, "title": "No image yet", "image": nil},
			},
		})

	products, err := makeProductRepository().ListProducts(context.Background(), testShopDomain, 15)
	assert.NoError(t, err)
	assert.Equal(t, []models.Product{
		{Id: 1, Title: "Sneaker", ImageSrc: "https://cdn.example.com/1.png"},
		{Id: 2, Title: "No image yet", ImageSrc: ""},
	}, products)
	assert.True(t, gock.IsDone())
}

func TestShopifyProductAttachImage(t *testing.T) {
	defer gock.Off()

	gock.New("https://" + testShopDomain).
		Post("/admin/api/2023-04/products/42/images.json").
		MatchHeader("X-Shopify-Access-Token", "admin-token").
		BodyString(`"position":1`).
		Reply(http.StatusCreated).
		JSON(map[string]any{"image": map[string]any{"id": 7}})

	err := makeProductRepository().AttachImage(context.Background(), testShopDomain,
		models.ProductImageAttachment{ProductId: 42, ImageSrc: "https://images.example.com/a.png"})
	assert.NoError(t, err)
	assert.True(t, gock.IsDone())
}
