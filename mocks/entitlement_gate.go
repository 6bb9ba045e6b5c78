package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/DotRPM/dot-image/models"
)

type EntitlementGate struct {
	mock.Mock
}

func (g *EntitlementGate) CanConsume(ctx context.Context, domain string) (models.EntitlementDecision, error) {
	args := g.Called(domain)
	return args.Get(0).(models.EntitlementDecision), args.Error(1)
}

func (g *EntitlementGate) ReserveCredit(ctx context.Context, domain string) (int, error) {
	args := g.Called(domain)
	return args.Int(0), args.Error(1)
}

func (g *EntitlementGate) ReleaseCredit(ctx context.Context, domain string) (int, error) {
	args := g.Called(domain)
	return args.Int(0), args.Error(1)
}

func (g *EntitlementGate) RecordConsumption(ctx context.Context, domain string) (int, error) {
	args := g.Called(domain)
	return args.Int(0), args.Error(1)
}
