package repository

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/fekuna/tagro-storefront-service/internal/model"
	"github.com/fekuna/tagro-storefront-service/internal/product/dto"
	"github.com/jmoiron/sqlx"
	"github.com/jmoiron/sqlx/types"
	pkgerrors "github.com/pkg/errors"
	"github.com/shopspring/decimal"
)

type PGRepository struct {
	DB *sqlx.DB
}

func NewPGRepository(db *sqlx.DB) *PGRepository {
	return &PGRepository{DB: db}
}

// productRow is the table shape; bilingual text, weight options and ratings
// are JSONB columns.
type productRow struct {
	ID            string          `db:"id"`
	Name          types.JSONText  `db:"name"`
	Description   types.JSONText  `db:"description"`
	Ingredients   types.JSONText  `db:"ingredients"`
	Storage       types.JSONText  `db:"storage"`
	Features      types.JSONText  `db:"features"`
	Category      string          `db:"category"`
	ImageURL      string          `db:"image_url"`
	Price         decimal.Decimal `db:"price"`
	Stock         int             `db:"stock"`
	WeightOptions types.JSONText  `db:"weight_options"`
	Ratings       types.JSONText  `db:"ratings"`
	CreatedAt     time.Time       `db:"created_at"`
	UpdatedAt     time.Time       `db:"updated_at"`
}

func toRow(p *model.Product) (*productRow, error) {
	row := &productRow{
		ID:        p.ID,
		Category:  string(p.Category),
		ImageURL:  p.ImageURL,
		Price:     p.Price,
		Stock:     p.Stock,
		CreatedAt: p.CreatedAt,
		UpdatedAt: p.UpdatedAt,
	}
	weights := p.WeightOptions
	if weights == nil {
		weights = []float64{}
	}
	ratings := p.Ratings
	if ratings == nil {
		ratings = []model.Rating{}
	}

	fields := []struct {
		dst *types.JSONText
		src interface{}
	}{
		{&row.Name, p.Name},
		{&row.Description, p.Description},
		{&row.Ingredients, p.Ingredients},
		{&row.Storage, p.Storage},
		{&row.Features, p.Features},
		{&row.WeightOptions, weights},
		{&row.Ratings, ratings},
	}
	for _, f := range fields {
		data, err := json.Marshal(f.src)
		if err != nil {
			return nil, err
		}
		*f.dst = data
	}
	return row, nil
}

func (r *productRow) toModel() (*model.Product, error) {
	p := &model.Product{
		BaseModel: model.BaseModel{ID: r.ID, CreatedAt: r.CreatedAt, UpdatedAt: r.UpdatedAt},
		Category:  model.Category(r.Category),
		ImageURL:  r.ImageURL,
		Price:     r.Price,
		Stock:     r.Stock,
	}
	fields := []struct {
		src types.JSONText
		dst interface{}
	}{
		{r.Name, &p.Name},
		{r.Description, &p.Description},
		{r.Ingredients, &p.Ingredients},
		{r.Storage, &p.Storage},
		{r.Features, &p.Features},
		{r.WeightOptions, &p.WeightOptions},
		{r.Ratings, &p.Ratings},
	}
	for _, f := range fields {
		if len(f.src) == 0 {
			continue
		}
		if err := f.src.Unmarshal(f.dst); err != nil {
			return nil, pkgerrors.Wrapf(err, "decode product %s", r.ID)
		}
	}
	return p, nil
}

func (r *PGRepository) Create(ctx context.Context, p *model.Product) error {
	row, err := toRow(p)
	if err != nil {
		return err
	}
	query := `
        INSERT INTO products (
            id, name, description, ingredients, storage, features, category,
            image_url, price, stock, weight_options, ratings, created_at, updated_at
        )
        VALUES (
            :id, :name, :description, :ingredients, :storage, :features, :category,
            :image_url, :price, :stock, :weight_options, :ratings, :created_at, :updated_at
        )
    `
	_, err = r.DB.NamedExecContext(ctx, query, row)
	return err
}

func (r *PGRepository) FindByID(ctx context.Context, id string) (*model.Product, error) {
	var row productRow
	query := `SELECT * FROM products WHERE id = $1 LIMIT 1`
	err := r.DB.GetContext(ctx, &row, query, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return row.toModel()
}

func (r *PGRepository) FindAll(ctx context.Context, f *dto.ProductFilters) ([]model.Product, int, error) {
	var rows []productRow
	var count int

	conditions := []string{}
	args := map[string]interface{}{}

	if f.Category != "" {
		conditions = append(conditions, "category = :category")
		args["category"] = string(f.Category)
	}
	if f.SearchQuery != "" {
		conditions = append(conditions, "(name->>'en' ILIKE :search OR name->>'bn' ILIKE :search OR description->>'en' ILIKE :search OR description->>'bn' ILIKE :search)")
		args["search"] = "%" + f.SearchQuery + "%"
	}

	whereClause := ""
	if len(conditions) > 0 {
		whereClause = " WHERE " + strings.Join(conditions, " AND ")
	}

	countStmt, err := r.DB.PrepareNamedContext(ctx, "SELECT count(*) FROM products"+whereClause)
	if err != nil {
		return nil, 0, err
	}
	defer countStmt.Close()
	if err := countStmt.GetContext(ctx, &count, args); err != nil {
		return nil, 0, err
	}

	orderBy := "created_at DESC"
	if f.SortBy != "" {
		// whitelist, never interpolate caller input
		switch f.SortBy {
		case "name":
			orderBy = "name->>'en'"
		case "price":
			orderBy = "price"
		default:
			orderBy = "created_at"
		}
		if strings.ToLower(f.SortOrder) == "asc" {
			orderBy += " ASC"
		} else {
			orderBy += " DESC"
		}
	}

	query := fmt.Sprintf("SELECT * FROM products%s ORDER BY %s", whereClause, orderBy)
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

	products := make([]model.Product, 0, len(rows))
	for i := range rows {
		p, err := rows[i].toModel()
		if err != nil {
			return nil, 0, err
		}
		products = append(products, *p)
	}
	return products, count, nil
}

func (r *PGRepository) Update(ctx context.Context, p *model.Product) error {
	row, err := toRow(p)
	if err != nil {
		return err
	}
	query := `
        UPDATE products
        SET name = :name,
            description = :description,
            ingredients = :ingredients,
            storage = :storage,
            features = :features,
            category = :category,
            image_url = :image_url,
            price = :price,
            stock = :stock,
            weight_options = :weight_options,
            updated_at = :updated_at
        WHERE id = :id
    `
	_, err = r.DB.NamedExecContext(ctx, query, row)
	return err
}

func (r *PGRepository) Delete(ctx context.Context, id string) error {
	_, err := r.DB.ExecContext(ctx, "DELETE FROM products WHERE id = $1", id)
	return err
}

func (r *PGRepository) AppendRating(ctx context.Context, productID string, rating model.Rating) error {
	data, err := json.Marshal([]model.Rating{rating})
	if err != nil {
		return err
	}
	res, err := r.DB.ExecContext(ctx,
		`UPDATE products SET ratings = ratings || $1::jsonb, updated_at = NOW() WHERE id = $2`,
		types.JSONText(data), productID)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return sql.ErrNoRows
	}
	return nil
}
