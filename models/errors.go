package models

import (
	"github.com/cockroachdb/errors"
)

// Base errors, related to default API status codes
var (
	// BadParameterError is rendered with the http status code 400
	BadParameterError = errors.New("bad parameter")

	// UnAuthorizedError is rendered with the http status code 401
	UnAuthorizedError = errors.New("unauthorized")

	// NotFoundError is rendered with the http status code 404
	NotFoundError = errors.New("not found")

	// ConflictError is rendered with the http status code 409
	ConflictError = errors.New("duplicate value")
)

// Metering and billing errors
var (
	// ErrShopNotFound: no shop record exists for the session's domain. The record
	// is upserted on authentication, so this is a server fault, not a user error,
	// and it renders as a 500 rather than a 404.
	ErrShopNotFound = errors.New("shop not found")

	// ErrQuotaExceeded: the shop has no credits left and no active subscription.
	// Rendered with http status 402 and the numeric code the embedded UI expects.
	ErrQuotaExceeded = errors.New("free quota exhausted")

	// ErrEntitlementCheckFailed: the live subscription lookup against the billing
	// provider failed. Retryable, and must stay distinguishable from a quota denial.
	ErrEntitlementCheckFailed = errors.New("entitlement check failed")

	// ErrInvalidChargeAmount: a charge reconciliation computed a non-positive
	// credit amount. The charge is not marked applied so it can be retried.
	ErrInvalidChargeAmount = errors.Wrap(BadParameterError, "invalid charge amount")
)
