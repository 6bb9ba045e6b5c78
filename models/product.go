package models

// Product is a minimal projection of a Shopify product, enough for the
// generation UI to list titles and current images.
type Product struct {
	Id       int64
	Title    string
	ImageSrc string
}

// ProductImageAttachment attaches a generated image to a product, replacing the
// lead image.
type ProductImageAttachment struct {
	ProductId int64
	ImageSrc  string
}

// GeneratedImage is the result of one paid image-generation call.
type GeneratedImage struct {
	Url string
}
