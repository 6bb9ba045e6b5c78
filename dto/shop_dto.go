package dto

import (
	"time"

	"github.com/DotRPM/dot-image/models"
)

type Shop struct {
	Id        string    `json:"id"`
	Domain    string    `json:"domain"`
	Name      string    `json:"name"`
	Email     *string   `json:"email"`
	Credits   int       `json:"credits"`
	Usage     int       `json:"usage"`
	CreatedAt time.Time `json:"created_at"`
}

func AdaptShopDto(shop models.Shop) Shop {
	return Shop{
		Id:        shop.Id,
		Domain:    shop.Domain,
		Name:      shop.Name,
		Email:     shop.Email.Ptr(),
		Credits:   shop.Credits,
		Usage:     shop.Usage,
		CreatedAt: shop.CreatedAt,
	}
}
