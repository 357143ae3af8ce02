package repositories

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/pucknotes/server/internal/app/models"
	"github.com/pucknotes/server/internal/pkg/apperrors"
)

// ReportRepository handles database operations for abuse reports
type ReportRepository struct {
	db *pgxpool.Pool
}

// NewReportRepository creates a new ReportRepository
func NewReportRepository(db *pgxpool.Pool) *ReportRepository {
	return &ReportRepository{db: db}
}

// Create inserts a report and fills in its id and creation time
func (r *ReportRepository) Create(ctx context.Context, rep *models.Report) error {
	sql, args, err := psql.Insert("reports").
		Columns("owner_id", "item_kind", "item_id", "title", "description").
		Values(rep.OwnerID, string(rep.Kind), rep.ItemID, rep.Title, rep.Description).
		Suffix("RETURNING id, created_at").
		ToSql()
	if err != nil {
		return buildErr("create report", err)
	}
	if err := r.db.QueryRow(ctx, sql, args...).Scan(&rep.ID, &rep.CreatedAt); err != nil {
		return fmt.Errorf("create report: %w", err)
	}
	return nil
}

// List returns every report, newest first
func (r *ReportRepository) List(ctx context.Context) ([]*models.Report, error) {
	rows, err := r.db.Query(ctx, `
		SELECT id, owner_id, item_kind, item_id, title, description, created_at
		FROM reports ORDER BY created_at DESC, id DESC`)
	if err != nil {
		return nil, fmt.Errorf("list reports: %w", err)
	}
	reports, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (*models.Report, error) {
		var rep models.Report
		err := row.Scan(&rep.ID, &rep.OwnerID, &rep.Kind, &rep.ItemID, &rep.Title, &rep.Description, &rep.CreatedAt)
		return &rep, err
	})
	if err != nil {
		return nil, fmt.Errorf("scan reports: %w", err)
	}
	return reports, nil
}

// Delete removes a report
func (r *ReportRepository) Delete(ctx context.Context, id int64) error {
	tag, err := r.db.Exec(ctx, `DELETE FROM reports WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete report: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.NewResourceNotFoundError("report not found")
	}
	return nil
}
