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

func (r *PGRepository) Create(ctx context.Context, job *model.SyncJob) error {
	query := `
        INSERT INTO sync_jobs (
            id, trigger, selling_point_id, options, status,
            updated_lists, updated_count, added_count, removed_count, error,
            started_at, finished_at, created_at, updated_at
        ) VALUES (
            :id, :trigger, :selling_point_id, :options, :status,
            :updated_lists, :updated_count, :added_count, :removed_count, :error,
            :started_at, :finished_at, :created_at, :updated_at
        )
    `
	_, err := r.DB.NamedExecContext(ctx, query, job)
	return err
}

func (r *PGRepository) Update(ctx context.Context, job *model.SyncJob) error {
	query := `
        UPDATE sync_jobs
        SET status = :status,
            updated_lists = :updated_lists,
            updated_count = :updated_count,
            added_count = :added_count,
            removed_count = :removed_count,
            error = :error,
            started_at = :started_at,
            finished_at = :finished_at,
            updated_at = :updated_at
        WHERE id = :id
    `
	_, err := r.DB.NamedExecContext(ctx, query, job)
	return err
}

func (r *PGRepository) FindByID(ctx context.Context, id string) (*model.SyncJob, error) {
	var job model.SyncJob
	err := r.DB.GetContext(ctx, &job, `SELECT * FROM sync_jobs WHERE id = $1 LIMIT 1`, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return &job, nil
}

func (r *PGRepository) FindRecent(ctx context.Context, limit int) ([]model.SyncJob, error) {
	jobs := []model.SyncJob{}
	err := r.DB.SelectContext(ctx, &jobs, `SELECT * FROM sync_jobs ORDER BY created_at DESC LIMIT $1`, limit)
	if err != nil {
		return nil, err
	}
	return jobs, nil
}
