package usecases

import (
	"context"
	"sync"
	"testing"

	"github.com/cockroachdb/errors"
	"github.com/stretchr/testify/assert"

	"github.com/DotRPM/dot-image/mocks"
	"github.com/DotRPM/dot-image/models"
	"github.com/DotRPM/dot-image/repositories"
	"github.com/DotRPM/dot-image/usecases/executor_factory"
)

// memoryLedger reproduces the guarded-update semantics of the shops table:
// every mutation checks its predicate and applies under one lock acquisition.
type memoryLedger struct {
	mu      sync.Mutex
	credits int
	usage   int
	applied map[string]bool
}

func (l *memoryLedger) GetShopByDomain(ctx context.Context, exec repositories.Executor,
	domain string,
) (models.Shop, error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	return models.Shop{Domain: domain, Credits: l.credits, Usage: l.usage}, nil
}

func (l *memoryLedger) ConsumeCredit(ctx context.Context, exec repositories.Executor,
	domain string,
) (int, bool, error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.credits <= 0 {
		return 0, false, nil
	}
	l.credits--
	return l.credits, true, nil
}

func (l *memoryLedger) RestoreCredit(ctx context.Context, exec repositories.Executor,
	domain string,
) (int, error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.credits++
	return l.credits, nil
}

func (l *memoryLedger) RecordConsumption(ctx context.Context, exec repositories.Executor,
	domain string,
) (int, error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.usage++
	return l.usage, nil
}

func (l *memoryLedger) ApplyCharge(ctx context.Context, exec repositories.Executor,
	domain string, chargeId string, credits int,
) (int, bool, error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.applied[chargeId] {
		return 0, false, nil
	}
	if l.applied == nil {
		l.applied = map[string]bool{}
	}
	l.applied[chargeId] = true
	l.credits += credits
	return l.credits, true, nil
}

func TestFreshShopExhaustsFreeAllowanceThenDenies(t *testing.T) {
	ledger := &memoryLedger{credits: models.FreeCredits}
	provider := new(mocks.ShopifyBillingRepository)
	provider.On("ActiveSubscriptions", "test-store.myshopify.com").
		Return([]models.Subscription{}, nil)

	uc := BillingUseCase{
		executorFactory:   executor_factory.NewExecutorFactoryStub(),
		shopRepository:    ledger,
		billingRepository: provider,
	}
	ctx := context.Background()
	domain := "test-store.myshopify.com"

	for spent := 1; spent <= models.FreeCredits; spent++ {
		decision, err := uc.CanConsume(ctx, domain)
		assert.NoError(t, err)
		assert.True(t, decision.Allowed)
		assert.Equal(t, models.EntitlementReasonCreditBalance, decision.Reason)

		remaining, err := uc.ReserveCredit(ctx, domain)
		assert.NoError(t, err)
		assert.Equal(t, models.FreeCredits-spent, remaining)

		_, err = uc.RecordConsumption(ctx, domain)
		assert.NoError(t, err)
	}

	decision, err := uc.CanConsume(ctx, domain)
	assert.NoError(t, err)
	assert.False(t, decision.Allowed)
	assert.Equal(t, models.EntitlementReasonQuotaExceeded, decision.Reason)

	_, err = uc.ReserveCredit(ctx, domain)
	assert.ErrorIs(t, err, models.ErrQuotaExceeded)

	assert.Equal(t, 0, ledger.credits)
	assert.Equal(t, models.FreeCredits, ledger.usage)
}

func TestReserveCreditAdmitsOneWinnerForTheLastCredit(t *testing.T) {
	ledger := &memoryLedger{credits: 1}
	uc := BillingUseCase{
		executorFactory: executor_factory.NewExecutorFactoryStub(),
		shopRepository:  ledger,
	}

	const contenders = 32
	var wg sync.WaitGroup
	results := make(chan error, contenders)

	for range contenders {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := uc.ReserveCredit(context.Background(), "test-store.myshopify.com")
			results <- err
		}()
	}
	wg.Wait()
	close(results)

	winners, losers := 0, 0
	for err := range results {
		switch {
		case err == nil:
			winners++
		case errors.Is(err, models.ErrQuotaExceeded):
			losers++
		default:
			t.Fatalf("unexpected error: %v", err)
		}
	}

	assert.Equal(t, 1, winners)
	assert.Equal(t, contenders-1, losers)
	assert.Equal(t, 0, ledger.credits)
}

func TestApplyChargeConcurrentReplaysCreditOnce(t *testing.T) {
	ledger := &memoryLedger{credits: 0}
	uc := BillingUseCase{
		executorFactory: executor_factory.NewExecutorFactoryStub(),
		shopRepository:  ledger,
	}

	const deliveries = 16
	var wg sync.WaitGroup
	applications := make(chan models.ChargeApplication, deliveries)

	for range deliveries {
		wg.Add(1)
		go func() {
			defer wg.Done()
			application, err := uc.ApplyCharge(context.Background(),
				"test-store.myshopify.com", "12345", 600)
			assert.NoError(t, err)
			applications <- application
		}()
	}
	wg.Wait()
	close(applications)

	appliedCount := 0
	for application := range applications {
		if application.Applied {
			appliedCount++
		}
	}

	assert.Equal(t, 1, appliedCount)
	assert.Equal(t, 100, ledger.credits)
}
