package repository

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/fekuna/tagro-storefront-service/internal/dealer/dto"
	"github.com/fekuna/tagro-storefront-service/internal/model"
	"github.com/jmoiron/sqlx"
	"github.com/jmoiron/sqlx/types"
)

type PGRepository struct {
	DB *sqlx.DB
}

func NewPGRepository(db *sqlx.DB) *PGRepository {
	return &PGRepository{DB: db}
}

type dealerRow struct {
	ID        string         `db:"id"`
	ImageURL  string         `db:"image_url"`
	Name      types.JSONText `db:"name"`
	Zone      types.JSONText `db:"zone"`
	Phone     string         `db:"phone"`
	Code      string         `db:"code"`
	CreatedAt time.Time      `db:"created_at"`
	UpdatedAt time.Time      `db:"updated_at"`
}

func toRow(d *model.Dealer) (*dealerRow, error) {
	name, err := json.Marshal(d.Name)
	if err != nil {
		return nil, err
	}
	zone, err := json.Marshal(d.Zone)
	if err != nil {
		return nil, err
	}
	return &dealerRow{
		ID:        d.ID,
		ImageURL:  d.ImageURL,
		Name:      name,
		Zone:      zone,
		Phone:     d.Phone,
		Code:      d.Code,
		CreatedAt: d.CreatedAt,
		UpdatedAt: d.UpdatedAt,
	}, nil
}

func (r *dealerRow) toModel() (*model.Dealer, error) {
	d := &model.Dealer{
		BaseModel: model.BaseModel{ID: r.ID, CreatedAt: r.CreatedAt, UpdatedAt: r.UpdatedAt},
		ImageURL:  r.ImageURL,
		Phone:     r.Phone,
		Code:      r.Code,
	}
	if err := r.Name.Unmarshal(&d.Name); err != nil {
		return nil, err
	}
	if err := r.Zone.Unmarshal(&d.Zone); err != nil {
		return nil, err
	}
	return d, nil
}

func (r *PGRepository) Create(ctx context.Context, d *model.Dealer) error {
	row, err := toRow(d)
	if err != nil {
		return err
	}
	query := `
        INSERT INTO dealers (id, image_url, name, zone, phone, code, created_at, updated_at)
        VALUES (:id, :image_url, :name, :zone, :phone, :code, :created_at, :updated_at)
    `
	_, err = r.DB.NamedExecContext(ctx, query, row)
	return err
}

func (r *PGRepository) FindByID(ctx context.Context, id string) (*model.Dealer, error) {
	var row dealerRow
	err := r.DB.GetContext(ctx, &row, `SELECT * FROM dealers WHERE id = $1 LIMIT 1`, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return row.toModel()
}

func (r *PGRepository) FindAll(ctx context.Context, f *dto.DealerFilters) ([]model.Dealer, int, error) {
	var rows []dealerRow
	var count int

	conditions := []string{}
	args := map[string]interface{}{}

	if f.Zone != "" {
		conditions = append(conditions, "(zone->>'en' ILIKE :zone OR zone->>'bn' ILIKE :zone)")
		args["zone"] = "%" + f.Zone + "%"
	}

	whereClause := ""
	if len(conditions) > 0 {
		whereClause = " WHERE " + strings.Join(conditions, " AND ")
	}

	countStmt, err := r.DB.PrepareNamedContext(ctx, "SELECT count(*) FROM dealers"+whereClause)
	if err != nil {
		return nil, 0, err
	}
	defer countStmt.Close()
	if err := countStmt.GetContext(ctx, &count, args); err != nil {
		return nil, 0, err
	}

	query := "SELECT * FROM dealers" + whereClause + " ORDER BY name->>'en' ASC"
	if f.PageSize > 0 {
		page := f.Page
		if page < 1 {
			page = 1
		}
		query += fmt.Sprintf(" LIMIT %d OFFSET %d", f.PageSize, (page-1)*f.PageSize)
	}

	nstmt, err := r.DB.PrepareNamedContext(ctx, query)
	if err != nil {
		return nil, 0, err
	}
	defer nstmt.Close()

	if err := nstmt.SelectContext(ctx, &rows, args); err != nil {
		return nil, 0, err
	}

	dealers := make([]model.Dealer, 0, len(rows))
	for i := range rows {
		d, err := rows[i].toModel()
		if err != nil {
			return nil, 0, err
		}
		dealers = append(dealers, *d)
	}
	return dealers, count, nil
}

func (r *PGRepository) Update(ctx context.Context, d *model.Dealer) error {
	row, err := toRow(d)
	if err != nil {
		return err
	}
	query := `
        UPDATE dealers
        SET image_url = :image_url,
            name = :name,
            zone = :zone,
            phone = :phone,
            code = :code,
            updated_at = :updated_at
        WHERE id = :id
    `
	_, err = r.DB.NamedExecContext(ctx, query, row)
	return err
}

func (r *PGRepository) Delete(ctx context.Context, id string) error {
	_, err := r.DB.ExecContext(ctx, "DELETE FROM dealers WHERE id = $1", id)
	return err
}
