package eventtype

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/Masterminds/squirrel"

	"github.com/m04kA/SMC-AvailabilityService/internal/domain"
	"github.com/m04kA/SMC-AvailabilityService/pkg/dbmetrics"
	"github.com/m04kA/SMC-AvailabilityService/pkg/psqlbuilder"
)

// Переиспользуем интерфейсы из dbmetrics для работы с БД
type DBExecutor = dbmetrics.DBExecutor

var eventTypeColumns = []string{
	"id",
	"host_id",
	"title",
	"slug",
	"duration_minutes",
	"buffer_before_minutes",
	"buffer_after_minutes",
	"min_notice_minutes",
	"max_bookings_per_day",
	"requires_confirmation",
	"profile_id",
	"created_at",
	"updated_at",
}

// Repository репозиторий для работы с типами событий
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория типов событий
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// GetByID получает тип события по ID
func (r *Repository) GetByID(ctx context.Context, id int64) (*domain.EventType, error) {
	return r.getOne(ctx, squirrel.Eq{"id": id}, "GetByID")
}

// GetByHostAndSlug получает тип события по хосту и slug (адрес страницы бронирования)
func (r *Repository) GetByHostAndSlug(ctx context.Context, hostID int64, slug string) (*domain.EventType, error) {
	return r.getOne(ctx, squirrel.Eq{"host_id": hostID, "slug": slug}, "GetByHostAndSlug")
}

// GetAllByHostID получает все типы событий хоста
func (r *Repository) GetAllByHostID(ctx context.Context, hostID int64) ([]*domain.EventType, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(eventTypeColumns...).
		From("event_types").
		Where(squirrel.Eq{"host_id": hostID}).
		OrderBy("id ASC").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: GetAllByHostID - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: GetAllByHostID - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	eventTypes := make([]*domain.EventType, 0)
	for rows.Next() {
		var et domain.EventType
		var createdAt, updatedAt sql.NullTime

		err := rows.Scan(
			&et.ID,
			&et.HostID,
			&et.Title,
			&et.Slug,
			&et.DurationMinutes,
			&et.BufferBeforeMinutes,
			&et.BufferAfterMinutes,
			&et.MinNoticeMinutes,
			&et.MaxBookingsPerDay,
			&et.RequiresConfirmation,
			&et.ProfileID,
			&createdAt,
			&updatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("%w: GetAllByHostID - scan row: %v", ErrScanRow, err)
		}

		et.CreatedAt = createdAt.Time
		et.UpdatedAt = updatedAt.Time
		eventTypes = append(eventTypes, &et)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: GetAllByHostID - rows error: %v", ErrScanRow, err)
	}

	return eventTypes, nil
}

func (r *Repository) getOne(ctx context.Context, where squirrel.Eq, op string) (*domain.EventType, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(eventTypeColumns...).
		From("event_types").
		Where(where).
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: %s - build select query: %v", ErrBuildQuery, op, err)
	}

	var et domain.EventType
	var createdAt, updatedAt sql.NullTime

	err = executor.QueryRowContext(ctx, query, args...).Scan(
		&et.ID,
		&et.HostID,
		&et.Title,
		&et.Slug,
		&et.DurationMinutes,
		&et.BufferBeforeMinutes,
		&et.BufferAfterMinutes,
		&et.MinNoticeMinutes,
		&et.MaxBookingsPerDay,
		&et.RequiresConfirmation,
		&et.ProfileID,
		&createdAt,
		&updatedAt,
	)

	if err == sql.ErrNoRows {
		return nil, ErrEventTypeNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: %s - scan event type: %v", ErrScanRow, op, err)
	}

	et.CreatedAt = createdAt.Time
	et.UpdatedAt = updatedAt.Time

	return &et, nil
}
