package repositories

import (
	"context"
	"testing"
	"time"

	"github.com/pashagolub/pgxmock/v4"
	"github.com/stretchr/testify/assert"

	"github.com/DotRPM/dot-image/models"
)

var shopColumns = []string{
	"id", "domain", "name", "email", "credits", "usage",
	"applied_charge_ids", "created_at", "updated_at",
}

func shopRow(mock pgxmock.PgxPoolIface, credits, usage int, chargeIds []string) *pgxmock.Rows {
	now := time.Now()
	return mock.NewRows(shopColumns).
		AddRow("63e14eaf-37d8-4a50-9e3b-1a9f6ded7b45", "test-store.myshopify.com",
			"Test Store", nil, credits, usage, chargeIds, now, now)
}

func TestShopRepositoryGetShopByDomain(t *testing.T) {
	repo := NewShopRepository()

	t.Run("nominal", func(t *testing.T) {
		mock, err := pgxmock.NewPool()
		if err != nil {
			t.Fatal(err)
		}
		defer mock.Close()

		mock.ExpectQuery("SELECT id, domain, name, email, credits, usage, applied_charge_ids, created_at, updated_at FROM shops").
			WithArgs("test-store.myshopify.com").
			WillReturnRows(shopRow(mock, 20, 0, []string{}))

		shop, err := repo.GetShopByDomain(context.Background(), mock, "test-store.myshopify.com")
		assert.NoError(t, err)
		assert.Equal(t, "test-store.myshopify.com", shop.Domain)
		assert.Equal(t, 20, shop.Credits)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("unknown shop", func(t *testing.T) {
		mock, err := pgxmock.NewPool()
		if err != nil {
			t.Fatal(err)
		}
		defer mock.Close()

		mock.ExpectQuery("SELECT id, domain, name, email, credits, usage, applied_charge_ids, created_at, updated_at FROM shops").
			WithArgs("unknown.myshopify.com").
			WillReturnRows(mock.NewRows(shopColumns))

		_, err = repo.GetShopByDomain(context.Background(), mock, "unknown.myshopify.com")
		assert.ErrorIs(t, err, models.ErrShopNotFound)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestShopRepositoryConsumeCredit(t *testing.T) {
	repo := NewShopRepository()

	t.Run("decrements while the balance is positive", func(t *testing.T) {
		mock, err := pgxmock.NewPool()
		if err != nil {
			t.Fatal(err)
		}
		defer mock.Close()

		mock.ExpectQuery(`UPDATE shops SET credits = credits - 1, updated_at = NOW\(\) WHERE domain = \$1 AND credits > \$2 RETURNING credits`).
			WithArgs("test-store.myshopify.com", 0).
			WillReturnRows(mock.NewRows([]string{"credits"}).AddRow(19))

		remaining, ok, err := repo.ConsumeCredit(context.Background(), mock, "test-store.myshopify.com")
		assert.NoError(t, err)
		assert.True(t, ok)
		assert.Equal(t, 19, remaining)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("matches no row at zero balance", func(t *testing.T) {
		mock, err := pgxmock.NewPool()
		if err != nil {
			t.Fatal(err)
		}
		defer mock.Close()

		mock.ExpectQuery(`UPDATE shops SET credits = credits - 1, updated_at = NOW\(\) WHERE domain = \$1 AND credits > \$2 RETURNING credits`).
			WithArgs("test-store.myshopify.com", 0).
			WillReturnRows(mock.NewRows([]string{"credits"}))

		_, ok, err := repo.ConsumeCredit(context.Background(), mock, "test-store.myshopify.com")
		assert.NoError(t, err)
		assert.False(t, ok)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestShopRepositoryRestoreCredit(t *testing.T) {
	repo := NewShopRepository()

	mock, err := pgxmock.NewPool()
	if err != nil {
		t.Fatal(err)
	}
	defer mock.Close()

	mock.ExpectQuery(`UPDATE shops SET credits = credits \+ 1, updated_at = NOW\(\) WHERE domain = \$1 RETURNING credits`).
		WithArgs("test-store.myshopify.com").
		WillReturnRows(mock.NewRows([]string{"credits"}).AddRow(20))

	balance, err := repo.RestoreCredit(context.Background(), mock, "test-store.myshopify.com")
	assert.NoError(t, err)
	assert.Equal(t, 20, balance)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestShopRepositoryApplyCharge(t *testing.T) {
	repo := NewShopRepository()

	t.Run("credits the balance and records the charge id", func(t *testing.T) {
		mock, err := pgxmock.NewPool()
		if err != nil {
			t.Fatal(err)
		}
		defer mock.Close()

		mock.ExpectQuery(`UPDATE shops SET credits = credits \+ \$1, applied_charge_ids = array_append\(applied_charge_ids, \$2\), updated_at = NOW\(\) WHERE domain = \$3 AND NOT \(\$4 = ANY\(applied_charge_ids\)\) RETURNING credits`).
			WithArgs(100, "12345", "test-store.myshopify.com", "12345").
			WillReturnRows(mock.NewRows([]string{"credits"}).AddRow(103))

		balance, applied, err := repo.ApplyCharge(context.Background(), mock,
			"test-store.myshopify.com", "12345", 100)
		assert.NoError(t, err)
		assert.True(t, applied)
		assert.Equal(t, 103, balance)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("replayed charge id matches no row", func(t *testing.T) {
		mock, err := pgxmock.NewPool()
		if err != nil {
			t.Fatal(err)
		}
		defer mock.Close()

		mock.ExpectQuery(`UPDATE shops SET credits = credits \+ \$1, applied_charge_ids = array_append\(applied_charge_ids, \$2\), updated_at = NOW\(\) WHERE domain = \$3 AND NOT \(\$4 = ANY\(applied_charge_ids\)\) RETURNING credits`).
			WithArgs(100, "12345", "test-store.myshopify.com", "12345").
			WillReturnRows(mock.NewRows([]string{"credits"}))

		_, applied, err := repo.ApplyCharge(context.Background(), mock,
			"test-store.myshopify.com", "12345", 100)
		assert.NoError(t, err)
		assert.False(t, applied)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestShopRepositoryRecordConsumption(t *testing.T) {
	repo := NewShopRepository()

	mock, err := pgxmock.NewPool()
	if err != nil {
		t.Fatal(err)
	}
	defer mock.Close()

	mock.ExpectQuery(`UPDATE shops SET "usage" = "usage" \+ 1, updated_at = NOW\(\) WHERE domain = \$1 RETURNING "usage"`).
		WithArgs("test-store.myshopify.com").
		WillReturnRows(mock.NewRows([]string{"usage"}).AddRow(5))

	usage, err := repo.RecordConsumption(context.Background(), mock, "test-store.myshopify.com")
	assert.NoError(t, err)
	assert.Equal(t, 5, usage)
	assert.NoError(t, mock.ExpectationsWereMet())
}
