package dbmodels

import (
	"time"

	"github.com/guregu/null/v5"
	"github.com/jackc/pgx/v5/pgtype"

	"github.com/DotRPM/dot-image/models"
	"github.com/DotRPM/dot-image/utils"
)

type DBShop struct {
	Id               string      `db:"id"`
	Domain           string      `db:"domain"`
	Name             string      `db:"name"`
	Email            pgtype.Text `db:"email"`
	Credits          int         `db:"credits"`
	Usage            int         `db:"usage"`
	AppliedChargeIds []string    `db:"applied_charge_ids"`
	CreatedAt        time.Time   `db:"created_at"`
	UpdatedAt        time.Time   `db:"updated_at"`
}

const TABLE_SHOPS = "shops"

var SelectShopColumn = utils.ColumnList[DBShop]()

func AdaptShop(db DBShop) (models.Shop, error) {
	email := null.String{}
	if db.Email.Valid {
		email = null.StringFrom(db.Email.String)
	}

	return models.Shop{
		Id:               db.Id,
		Domain:           db.Domain,
		Name:             db.Name,
		Email:            email,
		Credits:          db.Credits,
		Usage:            db.Usage,
		AppliedChargeIds: db.AppliedChargeIds,
		CreatedAt:        db.CreatedAt,
		UpdatedAt:        db.UpdatedAt,
	}, nil
}
