package repository

import (
	"context"
	"database/sql"
	"errors"

	"github.com/jmoiron/sqlx"

	"github.com/wojbuk3335/Bukowski-app-API-sub002/internal/model"
)

type PGRepository struct {
	DB *sqlx.DB
}

func NewPGRepository(db *sqlx.DB) *PGRepository {
	return &PGRepository{DB: db}
}

func (r *PGRepository) Create(ctx context.Context, pl *model.PriceList) error {
	query := `
        INSERT INTO price_lists (id, selling_point_id, selling_point_name, items, created_at, updated_at)
        VALUES (:id, :selling_point_id, :selling_point_name, :items, :created_at, :updated_at)
    `
	_, err := r.DB.NamedExecContext(ctx, query, pl)
	return err
}

func (r *PGRepository) FindBySellingPoint(ctx context.Context, sellingPointID string) (*model.PriceList, error) {
	var pl model.PriceList
	err := r.DB.GetContext(ctx, &pl, `SELECT * FROM price_lists WHERE selling_point_id = $1 LIMIT 1`, sellingPointID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return &pl, nil
}

func (r *PGRepository) FindAll(ctx context.Context) ([]model.PriceList, error) {
	lists := []model.PriceList{}
	if err := r.DB.SelectContext(ctx, &lists, `SELECT * FROM price_lists ORDER BY selling_point_name ASC`); err != nil {
		return nil, err
	}
	return lists, nil
}

func (r *PGRepository) Update(ctx context.Context, pl *model.PriceList) error {
	query := `
        UPDATE price_lists
        SET selling_point_name = :selling_point_name,
            items = :items,
            updated_at = :updated_at
        WHERE id = :id
    `
	_, err := r.DB.NamedExecContext(ctx, query, pl)
	return err
}

func (r *PGRepository) Delete(ctx context.Context, sellingPointID string) error {
	_, err := r.DB.ExecContext(ctx, "DELETE FROM price_lists WHERE selling_point_id = $1", sellingPointID)
	return err
}
