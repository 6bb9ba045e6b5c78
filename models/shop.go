package models

import (
	"time"

	"github.com/guregu/null/v5"
)

// FreeCredits is the credit balance granted to a shop on install. One credit
// buys one image generation.
const FreeCredits = 20

// Shop is a connected merchant store. The myshopify domain is the stable
// identity; the credit balance and the set of reconciled charge ids live on the
// same row so that crediting a charge and recording its id commit atomically.
type Shop struct {
	Id               string
	Domain           string
	Name             string
	Email            null.String
	Credits          int
	Usage            int
	AppliedChargeIds []string
	CreatedAt        time.Time
	UpdatedAt        time.Time
}

// HasAppliedCharge reports whether chargeId was already reconciled into the
// shop's balance.
func (s Shop) HasAppliedCharge(chargeId string) bool {
	for _, id := range s.AppliedChargeIds {
		if id == chargeId {
			return true
		}
	}
	return false
}

// ShopDetails is the identity snapshot read from the commerce provider when
// the shop authenticates.
type ShopDetails struct {
	Name  string
	Email null.String
}

// UpsertShopAttributes carries the identity fields refreshed on each
// authentication. Balance fields are never written through this path.
type UpsertShopAttributes struct {
	Domain string
	Name   string
	Email  null.String
}

// Credentials identify the shop behind an authenticated embedded-app session.
type Credentials struct {
	ShopDomain string
}
