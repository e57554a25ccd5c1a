package repository

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"

	"github.com/jmoiron/sqlx"
	"github.com/jmoiron/sqlx/types"
	pkgerrors "github.com/pkg/errors"
)

type PGRepository struct {
	DB *sqlx.DB
}

func NewPGRepository(db *sqlx.DB) *PGRepository {
	return &PGRepository{DB: db}
}

func (r *PGRepository) Load(ctx context.Context, key string, dst interface{}) (bool, error) {
	var value types.JSONText
	err := r.DB.GetContext(ctx, &value, `SELECT value FROM settings WHERE key = $1`, key)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return false, nil
		}
		return false, pkgerrors.Wrapf(err, "load setting %s", key)
	}
	if err := value.Unmarshal(dst); err != nil {
		return false, pkgerrors.Wrapf(err, "decode setting %s", key)
	}
	return true, nil
}

func (r *PGRepository) Save(ctx context.Context, key string, value interface{}) error {
	data, err := json.Marshal(value)
	if err != nil {
		return pkgerrors.Wrapf(err, "encode setting %s", key)
	}
	query := `
        INSERT INTO settings (key, value, updated_at)
        VALUES ($1, $2, NOW())
        ON CONFLICT (key) DO UPDATE SET value = EXCLUDED.value, updated_at = NOW()
    `
	_, err = r.DB.ExecContext(ctx, query, key, types.JSONText(data))
	return pkgerrors.Wrapf(err, "save setting %s", key)
}
