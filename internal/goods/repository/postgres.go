package repository

import (
	"context"
	"database/sql"
	"errors"
	"strings"

	"github.com/jmoiron/sqlx"

	"github.com/wojbuk3335/Bukowski-app-API-sub002/internal/goods/dto"
	"github.com/wojbuk3335/Bukowski-app-API-sub002/internal/model"
)

type PGRepository struct {
	DB *sqlx.DB
}

func NewPGRepository(db *sqlx.DB) *PGRepository {
	return &PGRepository{DB: db}
}

func (r *PGRepository) Create(ctx context.Context, g *model.Good) error {
	query := `
        INSERT INTO goods (
            id, stock_id, color_id, full_name, code, category, subcategory,
            bags_category_id, remaining_subsubcategory, manufacturer_id, bag_product, bag_id, sex,
            price, discount_price, price_exceptions,
            price_karpacz, discount_price_karpacz, price_exceptions_karpacz,
            picture, selling_point, barcode, is_selected_for_print, row_background_color,
            created_at, updated_at
        )
        VALUES (
            :id, :stock_id, :color_id, :full_name, :code, :category, :subcategory,
            :bags_category_id, :remaining_subsubcategory, :manufacturer_id, :bag_product, :bag_id, :sex,
            :price, :discount_price, :price_exceptions,
            :price_karpacz, :discount_price_karpacz, :price_exceptions_karpacz,
            :picture, :selling_point, :barcode, :is_selected_for_print, :row_background_color,
            :created_at, :updated_at
        )
    `
	_, err := r.DB.NamedExecContext(ctx, query, g)
	return err
}

func (r *PGRepository) FindByID(ctx context.Context, id string) (*model.Good, error) {
	var g model.Good
	err := r.DB.GetContext(ctx, &g, `SELECT * FROM goods WHERE id = $1 LIMIT 1`, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return &g, nil
}

func (r *PGRepository) FindAll(ctx context.Context, f *dto.GoodFilters) ([]model.Good, error) {
	conditions := []string{}
	args := map[string]interface{}{}

	if f.StockID != "" {
		conditions = append(conditions, "stock_id = :stock_id")
		args["stock_id"] = f.StockID
	}
	if f.ColorID != "" {
		conditions = append(conditions, "color_id = :color_id")
		args["color_id"] = f.ColorID
	}
	if f.Category != "" {
		conditions = append(conditions, "category = :category")
		args["category"] = f.Category
	}
	if f.Subcategory != "" {
		conditions = append(conditions, "subcategory = :subcategory")
		args["subcategory"] = f.Subcategory
	}
	if f.RemainingSubsubcategory != "" {
		conditions = append(conditions, "remaining_subsubcategory = :remaining_subsubcategory")
		args["remaining_subsubcategory"] = f.RemainingSubsubcategory
	}
	if f.BagProduct != "" {
		conditions = append(conditions, "bag_product = :bag_product")
		args["bag_product"] = f.BagProduct
	}
	if f.Search != "" {
		conditions = append(conditions, "(full_name ILIKE :search OR code ILIKE :search)")
		args["search"] = "%" + f.Search + "%"
	}
	if len(f.IDs) > 0 {
		conditions = append(conditions, "id = ANY(:ids)")
		args["ids"] = f.IDs
	}

	query := "SELECT * FROM goods"
	if len(conditions) > 0 {
		query += " WHERE " + strings.Join(conditions, " AND ")
	}
	query += " ORDER BY created_at ASC, id ASC"

	query, params, err := sqlx.Named(query, args)
	if err != nil {
		return nil, err
	}
	query = r.DB.Rebind(query)

	goods := []model.Good{}
	if err := r.DB.SelectContext(ctx, &goods, query, params...); err != nil {
		return nil, err
	}
	return goods, nil
}

func (r *PGRepository) Update(ctx context.Context, g *model.Good) error {
	query := `
        UPDATE goods
        SET stock_id = :stock_id,
            color_id = :color_id,
            full_name = :full_name,
            code = :code,
            category = :category,
            subcategory = :subcategory,
            bags_category_id = :bags_category_id,
            remaining_subsubcategory = :remaining_subsubcategory,
            manufacturer_id = :manufacturer_id,
            bag_product = :bag_product,
            bag_id = :bag_id,
            sex = :sex,
            price = :price,
            discount_price = :discount_price,
            price_exceptions = :price_exceptions,
            price_karpacz = :price_karpacz,
            discount_price_karpacz = :discount_price_karpacz,
            price_exceptions_karpacz = :price_exceptions_karpacz,
            picture = :picture,
            selling_point = :selling_point,
            barcode = :barcode,
            is_selected_for_print = :is_selected_for_print,
            row_background_color = :row_background_color,
            updated_at = :updated_at
        WHERE id = :id
    `
	_, err := r.DB.NamedExecContext(ctx, query, g)
	return err
}

func (r *PGRepository) Delete(ctx context.Context, id string) error {
	_, err := r.DB.ExecContext(ctx, "DELETE FROM goods WHERE id = $1", id)
	return err
}

func (r *PGRepository) IsFullNameUnique(ctx context.Context, fullName, excludeID string) (bool, error) {
	return r.isUnique(ctx, "full_name", fullName, excludeID)
}

func (r *PGRepository) IsCodeUnique(ctx context.Context, code, excludeID string) (bool, error) {
	return r.isUnique(ctx, "code", code, excludeID)
}

// column is one of the fixed names above, never user input.
func (r *PGRepository) isUnique(ctx context.Context, column, value, excludeID string) (bool, error) {
	var count int
	query := "SELECT count(*) FROM goods WHERE " + column + " = $1"
	args := []interface{}{value}
	if excludeID != "" {
		query += " AND id != $2"
		args = append(args, excludeID)
	}
	if err := r.DB.GetContext(ctx, &count, query, args...); err != nil {
		return false, err
	}
	return count == 0, nil
}
