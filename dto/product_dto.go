package dto

import (
	"github.com/DotRPM/dot-image/models"
)

type Product struct {
	Id       int64  `json:"id"`
	Title    string `json:"title"`
	ImageSrc string `json:"image_src"`
}

func AdaptProductDto(product models.Product) Product {
	return Product{
		Id:       product.Id,
		Title:    product.Title,
		ImageSrc: product.ImageSrc,
	}
}

type ProductImageAttachment struct {
	ProductId int64  `json:"product_id" binding:"required"`
	ImageSrc  string `json:"image_src" binding:"required"`
}

type AttachImagesBody struct {
	Images []ProductImageAttachment `json:"images" binding:"required"`
}

func AdaptProductImageAttachment(attachment ProductImageAttachment) models.ProductImageAttachment {
	return models.ProductImageAttachment{
		ProductId: attachment.ProductId,
		ImageSrc:  attachment.ImageSrc,
	}
}

type GeneratedImage struct {
	Url string `json:"url"`
}

func AdaptGeneratedImageDto(image models.GeneratedImage) GeneratedImage {
	return GeneratedImage{
		Url: image.Url,
	}
}
