package repository

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"time"

	"github.com/fekuna/tagro-storefront-service/internal/apperror"
	"github.com/fekuna/tagro-storefront-service/internal/model"
	"github.com/fekuna/tagro-storefront-service/pkg/database/postgres"
	"github.com/jmoiron/sqlx"
	"github.com/jmoiron/sqlx/types"
)

type PGRepository struct {
	DB *sqlx.DB
}

func NewPGRepository(db *sqlx.DB) *PGRepository {
	return &PGRepository{DB: db}
}

type userRow struct {
	ID                string         `db:"id"`
	Name              string         `db:"name"`
	Email             string         `db:"email"`
	Phone             string         `db:"phone"`
	PasswordHash      string         `db:"password_hash"`
	Role              string         `db:"role"`
	ProfilePictureURL string         `db:"profile_picture_url"`
	Addresses         types.JSONText `db:"addresses"`
	Orders            types.JSONText `db:"orders"`
	CreatedAt         time.Time      `db:"created_at"`
	UpdatedAt         time.Time      `db:"updated_at"`
}

func toRow(u *model.User) (*userRow, error) {
	addresses, err := jsonList(u.Addresses)
	if err != nil {
		return nil, err
	}
	orders, err := jsonList(u.Orders)
	if err != nil {
		return nil, err
	}
	return &userRow{
		ID:                u.ID,
		Name:              u.Name,
		Email:             u.Email,
		Phone:             u.Phone,
		PasswordHash:      u.PasswordHash,
		Role:              string(u.Role),
		ProfilePictureURL: u.ProfilePictureURL,
		Addresses:         addresses,
		Orders:            orders,
		CreatedAt:         u.CreatedAt,
		UpdatedAt:         u.UpdatedAt,
	}, nil
}

// jsonList encodes a nil slice as [] so the NOT NULL jsonb columns stay arrays.
func jsonList[T any](items []T) (types.JSONText, error) {
	if items == nil {
		items = []T{}
	}
	data, err := json.Marshal(items)
	return types.JSONText(data), err
}

func (r *userRow) toModel() (*model.User, error) {
	u := &model.User{
		BaseModel:         model.BaseModel{ID: r.ID, CreatedAt: r.CreatedAt, UpdatedAt: r.UpdatedAt},
		Name:              r.Name,
		Email:             r.Email,
		Phone:             r.Phone,
		PasswordHash:      r.PasswordHash,
		Role:              model.Role(r.Role),
		ProfilePictureURL: r.ProfilePictureURL,
	}
	if len(r.Addresses) > 0 {
		if err := r.Addresses.Unmarshal(&u.Addresses); err != nil {
			return nil, err
		}
	}
	if len(r.Orders) > 0 {
		if err := r.Orders.Unmarshal(&u.Orders); err != nil {
			return nil, err
		}
	}
	return u, nil
}

func duplicateError(err error) error {
	constraint, ok := postgres.IsUniqueViolation(err)
	if !ok {
		return err
	}
	switch constraint {
	case "users_email_key":
		return apperror.Validation("an account with this email already exists").WithCode("email_taken")
	case "users_phone_key":
		return apperror.Validation("an account with this phone number already exists").WithCode("phone_taken")
	}
	return apperror.Validation("user with this email or phone already exists")
}

func (r *PGRepository) Create(ctx context.Context, u *model.User) error {
	row, err := toRow(u)
	if err != nil {
		return err
	}
	query := `
        INSERT INTO users (
            id, name, email, phone, password_hash, role, profile_picture_url,
            addresses, orders, created_at, updated_at
        )
        VALUES (
            :id, :name, :email, :phone, :password_hash, :role, :profile_picture_url,
            :addresses, :orders, :created_at, :updated_at
        )
    `
	_, err = r.DB.NamedExecContext(ctx, query, row)
	return duplicateError(err)
}

func (r *PGRepository) findOne(ctx context.Context, query string, args ...interface{}) (*model.User, error) {
	var row userRow
	err := r.DB.GetContext(ctx, &row, query, args...)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return row.toModel()
}

func (r *PGRepository) FindByID(ctx context.Context, id string) (*model.User, error) {
	return r.findOne(ctx, `SELECT * FROM users WHERE id = $1 LIMIT 1`, id)
}

func (r *PGRepository) FindByEmail(ctx context.Context, email string) (*model.User, error) {
	return r.findOne(ctx, `SELECT * FROM users WHERE email = $1 LIMIT 1`, email)
}

func (r *PGRepository) FindByPhone(ctx context.Context, phone string) (*model.User, error) {
	return r.findOne(ctx, `SELECT * FROM users WHERE phone = $1 LIMIT 1`, phone)
}

func (r *PGRepository) FindByOrderID(ctx context.Context, orderID string) (*model.User, error) {
	return r.findOne(ctx,
		`SELECT * FROM users WHERE orders @> jsonb_build_array(jsonb_build_object('id', $1::text)) LIMIT 1`,
		orderID)
}

func (r *PGRepository) FindAll(ctx context.Context) ([]model.User, error) {
	var rows []userRow
	if err := r.DB.SelectContext(ctx, &rows, `SELECT * FROM users ORDER BY created_at ASC`); err != nil {
		return nil, err
	}
	users := make([]model.User, 0, len(rows))
	for i := range rows {
		u, err := rows[i].toModel()
		if err != nil {
			return nil, err
		}
		users = append(users, *u)
	}
	return users, nil
}

func (r *PGRepository) Update(ctx context.Context, u *model.User) error {
	row, err := toRow(u)
	if err != nil {
		return err
	}
	query := `
        UPDATE users
        SET name = :name,
            email = :email,
            phone = :phone,
            password_hash = :password_hash,
            role = :role,
            profile_picture_url = :profile_picture_url,
            updated_at = :updated_at
        WHERE id = :id
    `
	res, err := r.DB.NamedExecContext(ctx, query, row)
	if err != nil {
		return duplicateError(err)
	}
	return expectOne(res, u.ID)
}

func (r *PGRepository) ReplaceAddresses(ctx context.Context, userID string, addresses []model.Address) error {
	data, err := jsonList(addresses)
	if err != nil {
		return err
	}
	res, err := r.DB.ExecContext(ctx,
		`UPDATE users SET addresses = $1, updated_at = NOW() WHERE id = $2`, data, userID)
	if err != nil {
		return err
	}
	return expectOne(res, userID)
}

func (r *PGRepository) ReplaceOrders(ctx context.Context, userID string, orders []model.Order) error {
	data, err := jsonList(orders)
	if err != nil {
		return err
	}
	res, err := r.DB.ExecContext(ctx,
		`UPDATE users SET orders = $1, updated_at = NOW() WHERE id = $2`, data, userID)
	if err != nil {
		return err
	}
	return expectOne(res, userID)
}

func (r *PGRepository) Delete(ctx context.Context, id string) error {
	res, err := r.DB.ExecContext(ctx, "DELETE FROM users WHERE id = $1", id)
	if err != nil {
		return err
	}
	return expectOne(res, id)
}

func expectOne(res sql.Result, id string) error {
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return apperror.NotFound("user %s not found", id)
	}
	return nil
}
