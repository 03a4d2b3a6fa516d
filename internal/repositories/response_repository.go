package repositories

import (
	"context"
	"fmt"

	"gorm.io/gorm"

	"poisurvey/internal/infra"
	"poisurvey/internal/models/db_models"
)

type ResponseRepositoryInterface interface {
	InsertComparisons(ctx context.Context, rows []db_models.ComparisonRecordRow) error
	InsertFinal(ctx context.Context, row *db_models.FinalFeedbackRow) error
	ListComparisons(ctx context.Context, page, pageSize int) ([]db_models.ComparisonRecordRow, int64, error)
	ListFinal(ctx context.Context, page, pageSize int) ([]db_models.FinalFeedbackRow, int64, error)
}

type ResponseRepository struct {
	db *gorm.DB
}

func NewResponseRepository(db *gorm.DB) *ResponseRepository {
	return &ResponseRepository{db: db}
}

// InsertComparisons stores one export in a single transaction, so a mirror
// never holds half of a respondent's rows.
func (r *ResponseRepository) InsertComparisons(ctx context.Context, rows []db_models.ComparisonRecordRow) (err error) {
	if len(rows) == 0 {
		return nil
	}
	tx, err := infra.StartTransaction(r.db.WithContext(ctx))
	if err != nil {
		return err
	}
	defer func() {
		err = infra.ReleaseTransaction(tx, err)
	}()

	if err = tx.Create(&rows).Error; err != nil {
		return fmt.Errorf("insert comparison records: %w", err)
	}
	return nil
}

func (r *ResponseRepository) InsertFinal(ctx context.Context, row *db_models.FinalFeedbackRow) error {
	if err := r.db.WithContext(ctx).Create(row).Error; err != nil {
		return fmt.Errorf("insert final feedback: %w", err)
	}
	return nil
}

func (r *ResponseRepository) ListComparisons(ctx context.Context, page, pageSize int) ([]db_models.ComparisonRecordRow, int64, error) {
	var (
		rows  []db_models.ComparisonRecordRow
		total int64
	)
	if err := r.db.WithContext(ctx).Model(&db_models.ComparisonRecordRow{}).Count(&total).Error; err != nil {
		return nil, 0, err
	}
	err := r.db.WithContext(ctx).
		Limit(pageSize).
		Offset((page - 1) * pageSize).
		Order("timestamp DESC").
		Find(&rows).Error
	return rows, total, err
}

func (r *ResponseRepository) ListFinal(ctx context.Context, page, pageSize int) ([]db_models.FinalFeedbackRow, int64, error) {
	var (
		rows  []db_models.FinalFeedbackRow
		total int64
	)
	if err := r.db.WithContext(ctx).Model(&db_models.FinalFeedbackRow{}).Count(&total).Error; err != nil {
		return nil, 0, err
	}
	err := r.db.WithContext(ctx).
		Limit(pageSize).
		Offset((page - 1) * pageSize).
		Order("timestamp DESC").
		Find(&rows).Error
	return rows, total, err
}
