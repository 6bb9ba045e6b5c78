package models

import (
	"time"
)

// CreditRateCents is the one-time purchase price of 100 credits, in cents.
const CreditRateCents = 600

// ProPlanName is the recurring charge name granting unmetered generation.
const ProPlanName = "Pro plan"

// CreditsForAmount converts a one-time charge amount into credits:
// floor(amount / rate * 100). Integer floor division, never rounding up, so a
// charge can not grant fractional credit.
func CreditsForAmount(amountCents int) int {
	if amountCents <= 0 {
		return 0
	}
	return amountCents * 100 / CreditRateCents
}

type SubscriptionStatus string

const (
	SubscriptionStatusActive    SubscriptionStatus = "ACTIVE"
	SubscriptionStatusCancelled SubscriptionStatus = "CANCELLED"
	SubscriptionStatusExpired   SubscriptionStatus = "EXPIRED"
)

// Subscription is a recurring app charge, owned by the billing provider. It is
// never persisted locally: the provider's live list is the source of truth.
type Subscription struct {
	Id               string
	Name             string
	Status           SubscriptionStatus
	CurrentPeriodEnd time.Time
	Test             bool
}

func (s Subscription) IsActivePro() bool {
	return s.Status == SubscriptionStatusActive && s.Name == ProPlanName
}

// OneTimeCharge is a credit top-up purchase, owned by the billing provider.
type OneTimeCharge struct {
	Id          string
	Name        string
	Status      string
	AmountCents int
	Currency    string
}

func (c OneTimeCharge) IsActive() bool {
	return c.Status == "active" || c.Status == "ACTIVE"
}

type EntitlementReason string

const (
	EntitlementReasonCreditBalance      EntitlementReason = "credit_balance"
	EntitlementReasonActiveSubscription EntitlementReason = "active_subscription"
	EntitlementReasonQuotaExceeded      EntitlementReason = "quota_exceeded"
)

// EntitlementDecision is the read-only answer to "may this shop consume one
// more unit right now".
type EntitlementDecision struct {
	Allowed bool
	Reason  EntitlementReason
}

// ChargeApplication is the outcome of reconciling a one-time charge. Applied is
// false on replay: the charge id was already in the shop's applied set and the
// balance is returned unchanged.
type ChargeApplication struct {
	Applied bool
	Balance int
}

// PlanStatus is the snapshot served to the plans page: the active subscription
// when one exists, otherwise the shop's consumption counters.
type PlanStatus struct {
	Subscription *Subscription
	Credits      int
	Usage        int
}

// ChargeRequest describes a charge to create on the billing provider.
type ChargeRequest struct {
	Name        string
	AmountCents int
	Currency    string
	Interval    string
	ReturnUrl   string
	Test        bool
}
