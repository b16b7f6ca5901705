package availability

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

// Repository репозиторий для работы с профилями доступности
// Профиль загружается целиком: строка профиля + недельные правила + переопределения дат
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория профилей доступности
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// GetByID получает профиль доступности со всеми правилами и переопределениями
func (r *Repository) GetByID(ctx context.Context, id int64) (*domain.AvailabilityProfile, error) {
	profile, err := r.getProfileRow(ctx, squirrel.Eq{"id": id})
	if err != nil {
		return nil, err
	}
	return r.loadSchedule(ctx, profile)
}

// GetDefaultByUserID получает дефолтный профиль пользователя
// Ровно один профиль пользователя помечен is_default (частичный уникальный индекс)
func (r *Repository) GetDefaultByUserID(ctx context.Context, userID int64) (*domain.AvailabilityProfile, error) {
	profile, err := r.getProfileRow(ctx, squirrel.Eq{"user_id": userID, "is_default": true})
	if err != nil {
		return nil, err
	}
	return r.loadSchedule(ctx, profile)
}

// GetAllByUserID получает все профили пользователя с правилами и переопределениями
func (r *Repository) GetAllByUserID(ctx context.Context, userID int64) ([]*domain.AvailabilityProfile, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(profileColumns...).
		From("availability_profiles").
		Where(squirrel.Eq{"user_id": userID}).
		OrderBy("is_default DESC, id ASC").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: GetAllByUserID - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: GetAllByUserID - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	profiles := make([]*domain.AvailabilityProfile, 0)
	for rows.Next() {
		profile, err := scanProfile(rows)
		if err != nil {
			return nil, err
		}
		profiles = append(profiles, profile)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: GetAllByUserID - rows error: %v", ErrScanRow, err)
	}

	for _, profile := range profiles {
		if _, err := r.loadSchedule(ctx, profile); err != nil {
			return nil, err
		}
	}

	return profiles, nil
}

// ReplaceSchedule заменяет недельные правила и переопределения профиля целиком
// Вызывается внутри транзакции - редактирование расписания атомарно
func (r *Repository) ReplaceSchedule(ctx context.Context, profileID int64, rules []domain.WeeklyRule, overrides []domain.DateOverride) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	for _, table := range []string{"weekly_rules", "date_overrides"} {
		query, args, err := psqlbuilder.Delete(table).
			Where(squirrel.Eq{"profile_id": profileID}).
			ToSql()
		if err != nil {
			return fmt.Errorf("%w: ReplaceSchedule - build delete query: %v", ErrBuildQuery, err)
		}
		if _, err := executor.ExecContext(ctx, query, args...); err != nil {
			return fmt.Errorf("%w: ReplaceSchedule - execute delete from %s: %v", ErrExecQuery, table, err)
		}
	}

	if len(rules) > 0 {
		insert := psqlbuilder.Insert("weekly_rules").
			Columns("profile_id", "day_of_week", "start_time", "end_time")
		for _, rule := range rules {
			insert = insert.Values(profileID, rule.DayOfWeek, rule.StartTime, rule.EndTime)
		}
		query, args, err := insert.ToSql()
		if err != nil {
			return fmt.Errorf("%w: ReplaceSchedule - build rules insert: %v", ErrBuildQuery, err)
		}
		if _, err := executor.ExecContext(ctx, query, args...); err != nil {
			return fmt.Errorf("%w: ReplaceSchedule - execute rules insert: %v", ErrExecQuery, err)
		}
	}

	if len(overrides) > 0 {
		insert := psqlbuilder.Insert("date_overrides").
			Columns("profile_id", "date", "start_time", "end_time", "is_blocked")
		for _, o := range overrides {
			insert = insert.Values(profileID, o.Date, o.StartTime, o.EndTime, o.IsBlocked)
		}
		query, args, err := insert.ToSql()
		if err != nil {
			return fmt.Errorf("%w: ReplaceSchedule - build overrides insert: %v", ErrBuildQuery, err)
		}
		if _, err := executor.ExecContext(ctx, query, args...); err != nil {
			return fmt.Errorf("%w: ReplaceSchedule - execute overrides insert: %v", ErrExecQuery, err)
		}
	}

	return nil
}

// UpdateProfile обновляет метаданные профиля (название, таймзону)
func (r *Repository) UpdateProfile(ctx context.Context, id int64, label, timezone string) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update("availability_profiles").
		Set("label", label).
		Set("timezone", timezone).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": id}).
		ToSql()

	if err != nil {
		return fmt.Errorf("%w: UpdateProfile - build update query: %v", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: UpdateProfile - execute update: %v", ErrExecQuery, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: UpdateProfile - get rows affected: %v", ErrExecQuery, err)
	}
	if rowsAffected == 0 {
		return ErrProfileNotFound
	}

	return nil
}

var profileColumns = []string{
	"id",
	"user_id",
	"label",
	"timezone",
	"is_default",
	"created_at",
	"updated_at",
}

// getProfileRow получает одну строку профиля без расписания
func (r *Repository) getProfileRow(ctx context.Context, where squirrel.Eq) (*domain.AvailabilityProfile, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(profileColumns...).
		From("availability_profiles").
		Where(where).
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: getProfileRow - build select query: %v", ErrBuildQuery, err)
	}

	var profile domain.AvailabilityProfile
	var createdAt, updatedAt sql.NullTime

	err = executor.QueryRowContext(ctx, query, args...).Scan(
		&profile.ID,
		&profile.UserID,
		&profile.Label,
		&profile.Timezone,
		&profile.IsDefault,
		&createdAt,
		&updatedAt,
	)

	if err == sql.ErrNoRows {
		return nil, ErrProfileNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: getProfileRow - scan profile: %v", ErrScanRow, err)
	}

	profile.CreatedAt = createdAt.Time
	profile.UpdatedAt = updatedAt.Time

	return &profile, nil
}

// loadSchedule догружает в профиль недельные правила и переопределения дат
func (r *Repository) loadSchedule(ctx context.Context, profile *domain.AvailabilityProfile) (*domain.AvailabilityProfile, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	rulesQuery, rulesArgs, err := psqlbuilder.Select("id", "profile_id", "day_of_week", "start_time", "end_time").
		From("weekly_rules").
		Where(squirrel.Eq{"profile_id": profile.ID}).
		OrderBy("day_of_week ASC, start_time ASC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: loadSchedule - build rules query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, rulesQuery, rulesArgs...)
	if err != nil {
		return nil, fmt.Errorf("%w: loadSchedule - execute rules query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	profile.WeeklyRules = make([]domain.WeeklyRule, 0)
	for rows.Next() {
		var rule domain.WeeklyRule
		if err := rows.Scan(&rule.ID, &rule.ProfileID, &rule.DayOfWeek, &rule.StartTime, &rule.EndTime); err != nil {
			return nil, fmt.Errorf("%w: loadSchedule - scan rule: %v", ErrScanRow, err)
		}
		profile.WeeklyRules = append(profile.WeeklyRules, rule)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: loadSchedule - rules rows error: %v", ErrScanRow, err)
	}

	overridesQuery, overridesArgs, err := psqlbuilder.Select("id", "profile_id", "date", "start_time", "end_time", "is_blocked").
		From("date_overrides").
		Where(squirrel.Eq{"profile_id": profile.ID}).
		OrderBy("date ASC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: loadSchedule - build overrides query: %v", ErrBuildQuery, err)
	}

	oRows, err := executor.QueryContext(ctx, overridesQuery, overridesArgs...)
	if err != nil {
		return nil, fmt.Errorf("%w: loadSchedule - execute overrides query: %v", ErrExecQuery, err)
	}
	defer oRows.Close()

	profile.DateOverrides = make([]domain.DateOverride, 0)
	for oRows.Next() {
		var o domain.DateOverride
		if err := oRows.Scan(&o.ID, &o.ProfileID, &o.Date, &o.StartTime, &o.EndTime, &o.IsBlocked); err != nil {
			return nil, fmt.Errorf("%w: loadSchedule - scan override: %v", ErrScanRow, err)
		}
		profile.DateOverrides = append(profile.DateOverrides, o)
	}
	if err := oRows.Err(); err != nil {
		return nil, fmt.Errorf("%w: loadSchedule - overrides rows error: %v", ErrScanRow, err)
	}

	return profile, nil
}

// scanProfile сканирует строку профиля из *sql.Rows
func scanProfile(rows *sql.Rows) (*domain.AvailabilityProfile, error) {
	var profile domain.AvailabilityProfile
	var createdAt, updatedAt sql.NullTime

	err := rows.Scan(
		&profile.ID,
		&profile.UserID,
		&profile.Label,
		&profile.Timezone,
		&profile.IsDefault,
		&createdAt,
		&updatedAt,
	)
	if err != nil {
		return nil, fmt.Errorf("%w: scanProfile - scan row: %v", ErrScanRow, err)
	}

	profile.CreatedAt = createdAt.Time
	profile.UpdatedAt = updatedAt.Time

	return &profile, nil
}
