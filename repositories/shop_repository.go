package repositories

import (
	"context"
	"strings"

	"github.com/Masterminds/squirrel"
	"github.com/cockroachdb/errors"
	"github.com/jackc/pgx/v5"

	"github.com/DotRPM/dot-image/models"
	"github.com/DotRPM/dot-image/repositories/dbmodels"
)

// ShopRepository owns all reads and writes to the shops table. Every balance
// mutation is a single guarded UPDATE so no cross-statement transaction is
// needed: the guard predicate and the mutation commit together.
type ShopRepository struct{}

func NewShopRepository() *ShopRepository {
	return &ShopRepository{}
}

func (repo *ShopRepository) UpsertShop(ctx context.Context, exec Executor,
	attributes models.UpsertShopAttributes, newShopId string,
) (models.Shop, error) {
	query := NewQueryBuilder().
		Insert(dbmodels.TABLE_SHOPS).
		Columns("id", "domain", "name", "email").
		Values(newShopId, attributes.Domain, attributes.Name, attributes.Email.Ptr()).
		Suffix(`ON CONFLICT (domain) DO UPDATE SET
			name = COALESCE(NULLIF(EXCLUDED.name, ''), shops.name),
			email = COALESCE(EXCLUDED.email, shops.email),
			updated_at = NOW()`).
		Suffix("RETURNING " + columnNames(dbmodels.SelectShopColumn))

	return SqlToModel(ctx, exec, query, dbmodels.AdaptShop)
}

func (repo *ShopRepository) GetShopByDomain(ctx context.Context, exec Executor,
	domain string,
) (models.Shop, error) {
	query := NewQueryBuilder().
		Select(dbmodels.SelectShopColumn...).
		From(dbmodels.TABLE_SHOPS).
		Where(squirrel.Eq{"domain": domain})

	shop, err := SqlToModel(ctx, exec, query, dbmodels.AdaptShop)
	if errors.Is(err, models.NotFoundError) {
		return models.Shop{}, errors.Wrapf(models.ErrShopNotFound, "domain %s", domain)
	}
	return shop, err
}

// ConsumeCredit atomically reserves one credit: the decrement happens only if
// the balance is strictly positive, in a single UPDATE. ok is false when the
// shop had no credit left (or does not exist; callers disambiguate).
func (repo *ShopRepository) ConsumeCredit(ctx context.Context, exec Executor,
	domain string,
) (remaining int, ok bool, err error) {
	query := NewQueryBuilder().
		Update(dbmodels.TABLE_SHOPS).
		Set("credits", squirrel.Expr("credits - 1")).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"domain": domain}).
		Where(squirrel.Gt{"credits": 0}).
		Suffix("RETURNING credits")

	remaining, err = scanReturnedCount(ctx, exec, query)
	if errors.Is(err, pgx.ErrNoRows) {
		return 0, false, nil
	}
	if err != nil {
		return 0, false, err
	}
	return remaining, true, nil
}

// RestoreCredit gives back a reserved credit after the paid external call
// failed: the unit was never consumed.
func (repo *ShopRepository) RestoreCredit(ctx context.Context, exec Executor,
	domain string,
) (int, error) {
	query := NewQueryBuilder().
		Update(dbmodels.TABLE_SHOPS).
		Set("credits", squirrel.Expr("credits + 1")).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"domain": domain}).
		Suffix("RETURNING credits")

	balance, err := scanReturnedCount(ctx, exec, query)
	if errors.Is(err, pgx.ErrNoRows) {
		return 0, errors.Wrapf(models.ErrShopNotFound, "domain %s", domain)
	}
	return balance, err
}

// RecordConsumption increments the lifetime consumption counter. Monotonic,
// never reset by this service.
func (repo *ShopRepository) RecordConsumption(ctx context.Context, exec Executor,
	domain string,
) (int, error) {
	query := NewQueryBuilder().
		Update(dbmodels.TABLE_SHOPS).
		Set("usage", squirrel.Expr(`"usage" + 1`)).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"domain": domain}).
		Suffix(`RETURNING "usage"`)

	usage, err := scanReturnedCount(ctx, exec, query)
	if errors.Is(err, pgx.ErrNoRows) {
		return 0, errors.Wrapf(models.ErrShopNotFound, "domain %s", domain)
	}
	return usage, err
}

// ApplyCharge credits the balance and records the charge id in one statement.
// The NOT ANY guard makes replays a no-op: applied is false and the balance is
// untouched when the charge id was already recorded. There is no intermediate
// state where the credit is granted without the replay guard, or vice versa.
func (repo *ShopRepository) ApplyCharge(ctx context.Context, exec Executor,
	domain string, chargeId string, credits int,
) (balance int, applied bool, err error) {
	query := NewQueryBuilder().
		Update(dbmodels.TABLE_SHOPS).
		Set("credits", squirrel.Expr("credits + ?", credits)).
		Set("applied_charge_ids", squirrel.Expr("array_append(applied_charge_ids, ?)", chargeId)).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"domain": domain}).
		Where(squirrel.Expr("NOT (? = ANY(applied_charge_ids))", chargeId)).
		Suffix("RETURNING credits")

	balance, err = scanReturnedCount(ctx, exec, query)
	if errors.Is(err, pgx.ErrNoRows) {
		return 0, false, nil
	}
	if err != nil {
		return 0, false, err
	}
	return balance, true, nil
}

func scanReturnedCount(ctx context.Context, exec Executor, query squirrel.Sqlizer) (int, error) {
	sql, args, err := query.ToSql()
	if err != nil {
		return 0, errors.Wrap(err, "can't build sql query")
	}

	var count int
	if err := exec.QueryRow(ctx, sql, args...).Scan(&count); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return 0, err
		}
		return 0, errors.Wrap(err, "error executing sql query")
	}
	return count, nil
}

func columnNames(columns []string) string {
	return strings.Join(columns, ", ")
}
