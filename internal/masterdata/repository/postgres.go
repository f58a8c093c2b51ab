package repository

import (
	"context"
	"database/sql"
	"errors"
	"strings"

	"github.com/jmoiron/sqlx"

	"github.com/wojbuk3335/Bukowski-app-API-sub002/internal/masterdata/dto"
	"github.com/wojbuk3335/Bukowski-app-API-sub002/internal/model"
)

type PGRepository struct {
	DB *sqlx.DB
}

func NewPGRepository(db *sqlx.DB) *PGRepository {
	return &PGRepository{DB: db}
}

func (r *PGRepository) Create(ctx context.Context, e *model.MasterEntity) error {
	query := `
        INSERT INTO master_entities (id, kind, code, description, number, created_at, updated_at)
        VALUES (:id, :kind, :code, :description, :number, :created_at, :updated_at)
    `
	_, err := r.DB.NamedExecContext(ctx, query, e)
	return err
}

func (r *PGRepository) FindByID(ctx context.Context, id string) (*model.MasterEntity, error) {
	var e model.MasterEntity
	err := r.DB.GetContext(ctx, &e, `SELECT * FROM master_entities WHERE id = $1 LIMIT 1`, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return &e, nil
}

func (r *PGRepository) FindByCode(ctx context.Context, kind model.MasterKind, code string) (*model.MasterEntity, error) {
	var e model.MasterEntity
	err := r.DB.GetContext(ctx, &e, `SELECT * FROM master_entities WHERE kind = $1 AND code = $2 LIMIT 1`, string(kind), code)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return &e, nil
}

func (r *PGRepository) FindAll(ctx context.Context, f *dto.MasterFilters) ([]model.MasterEntity, error) {
	conditions := []string{}
	args := map[string]interface{}{}

	if f.Kind != "" {
		conditions = append(conditions, "kind = :kind")
		args["kind"] = string(f.Kind)
	}
	if f.Search != "" {
		conditions = append(conditions, "(code ILIKE :search OR description ILIKE :search)")
		args["search"] = "%" + f.Search + "%"
	}

	query := "SELECT * FROM master_entities"
	if len(conditions) > 0 {
		query += " WHERE " + strings.Join(conditions, " AND ")
	}
	query += " ORDER BY kind ASC, code ASC"

	query, params, err := sqlx.Named(query, args)
	if err != nil {
		return nil, err
	}
	query = r.DB.Rebind(query)

	entities := []model.MasterEntity{}
	if err := r.DB.SelectContext(ctx, &entities, query, params...); err != nil {
		return nil, err
	}
	if len(f.IDs) > 0 {
		entities = filterIDs(entities, f.IDs)
	}
	return entities, nil
}

func (r *PGRepository) Update(ctx context.Context, e *model.MasterEntity) error {
	query := `
        UPDATE master_entities
        SET code = :code,
            description = :description,
            number = :number,
            updated_at = :updated_at
        WHERE id = :id
    `
	_, err := r.DB.NamedExecContext(ctx, query, e)
	return err
}

func (r *PGRepository) Delete(ctx context.Context, id string) error {
	_, err := r.DB.ExecContext(ctx, "DELETE FROM master_entities WHERE id = $1", id)
	return err
}

func filterIDs(entities []model.MasterEntity, ids []string) []model.MasterEntity {
	want := make(map[string]struct{}, len(ids))
	for _, id := range ids {
		want[id] = struct{}{}
	}
	out := entities[:0]
	for _, e := range entities {
		if _, ok := want[e.ID]; ok {
			out = append(out, e)
		}
	}
	return out
}
