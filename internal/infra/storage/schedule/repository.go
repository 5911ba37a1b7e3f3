package schedule

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/google/uuid"
	"github.com/lib/pq"

	"github.com/jazyl-tech/JZL-BookingService/internal/domain"
	"github.com/jazyl-tech/JZL-BookingService/pkg/psqlbuilder"
	"github.com/jazyl-tech/JZL-BookingService/pkg/txmanager"
	"github.com/jazyl-tech/JZL-BookingService/pkg/types"
)

const pgUniqueViolation = "23505"

var scheduleColumns = []string{
	"id",
	"master_id",
	"branch_id",
	"day_of_week",
	"is_working",
	"start_time",
	"end_time",
	"breaks",
}

var exceptionColumns = []string{
	"id",
	"master_id",
	"exception_date",
	"exception_type",
	"custom_start_time",
	"custom_end_time",
	"reason",
	"created_at",
}

// Repository репозиторий для работы с расписаниями мастеров и исключениями
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория расписаний
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// GetWeekday получает регулярное расписание мастера в филиале на день недели (ISO 1-7)
func (r *Repository) GetWeekday(ctx context.Context, masterID, branchID uuid.UUID, dayOfWeek int) (*domain.WeekdaySchedule, error) {
	executor := txmanager.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(scheduleColumns...).
		From("master_schedules").
		Where(squirrel.Eq{"master_id": masterID}).
		Where(squirrel.Eq{"branch_id": branchID}).
		Where(squirrel.Eq{"day_of_week": dayOfWeek}).
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: GetWeekday - build select query: %v", ErrBuildQuery, err)
	}

	s, err := scanSchedule(executor.QueryRowContext(ctx, query, args...))
	if err == sql.ErrNoRows {
		return nil, ErrScheduleNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetWeekday - scan schedule: %v", ErrScanRow, err)
	}

	return s, nil
}

// ListWeek получает все строки регулярного расписания мастера в филиале,
// отсортированные по дню недели
func (r *Repository) ListWeek(ctx context.Context, masterID, branchID uuid.UUID) ([]*domain.WeekdaySchedule, error) {
	executor := txmanager.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(scheduleColumns...).
		From("master_schedules").
		Where(squirrel.Eq{"master_id": masterID}).
		Where(squirrel.Eq{"branch_id": branchID}).
		OrderBy("day_of_week ASC").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: ListWeek - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: ListWeek - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	schedules := make([]*domain.WeekdaySchedule, 0, 7)
	for rows.Next() {
		s, err := scanSchedule(rows)
		if err != nil {
			return nil, fmt.Errorf("%w: ListWeek - scan row: %v", ErrScanRow, err)
		}
		schedules = append(schedules, s)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: ListWeek - rows error: %v", ErrScanRow, err)
	}

	return schedules, nil
}

// ReplaceWeek целиком заменяет недельное расписание мастера в филиале:
// удаляет старые строки и вставляет новые. Вызывается внутри транзакции,
// иначе между delete и insert возможно окно без расписания.
func (r *Repository) ReplaceWeek(ctx context.Context, masterID, branchID uuid.UUID, days []domain.WeekdaySchedule) error {
	executor := txmanager.GetExecutor(ctx, r.db)

	deleteQuery, deleteArgs, err := psqlbuilder.Delete("master_schedules").
		Where(squirrel.Eq{"master_id": masterID}).
		Where(squirrel.Eq{"branch_id": branchID}).
		ToSql()

	if err != nil {
		return fmt.Errorf("%w: ReplaceWeek - build delete query: %v", ErrBuildQuery, err)
	}

	if _, err := executor.ExecContext(ctx, deleteQuery, deleteArgs...); err != nil {
		return fmt.Errorf("%w: ReplaceWeek - execute delete: %v", ErrExecQuery, err)
	}

	if len(days) == 0 {
		return nil
	}

	insertBuilder := psqlbuilder.Insert("master_schedules").
		Columns("master_id", "branch_id", "day_of_week", "is_working", "start_time", "end_time", "breaks")

	for _, day := range days {
		breaksJSON, err := marshalBreaks(day.Breaks)
		if err != nil {
			return fmt.Errorf("%w: ReplaceWeek - marshal breaks for day %d: %v", ErrBuildQuery, day.DayOfWeek, err)
		}
		insertBuilder = insertBuilder.Values(
			masterID,
			branchID,
			day.DayOfWeek,
			day.IsWorking,
			nullableTime(day.StartTime),
			nullableTime(day.EndTime),
			breaksJSON,
		)
	}

	insertQuery, insertArgs, err := insertBuilder.ToSql()
	if err != nil {
		return fmt.Errorf("%w: ReplaceWeek - build insert query: %v", ErrBuildQuery, err)
	}

	if _, err := executor.ExecContext(ctx, insertQuery, insertArgs...); err != nil {
		return fmt.Errorf("%w: ReplaceWeek - execute insert: %v", ErrExecQuery, err)
	}

	return nil
}

// GetException получает исключение мастера на дату
func (r *Repository) GetException(ctx context.Context, masterID uuid.UUID, date time.Time) (*domain.ScheduleException, error) {
	executor := txmanager.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(exceptionColumns...).
		From("schedule_exceptions").
		Where(squirrel.Eq{"master_id": masterID}).
		Where(squirrel.Eq{"exception_date": date}).
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: GetException - build select query: %v", ErrBuildQuery, err)
	}

	e, err := scanException(executor.QueryRowContext(ctx, query, args...))
	if err == sql.ErrNoRows {
		return nil, ErrExceptionNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetException - scan exception: %v", ErrScanRow, err)
	}

	return e, nil
}

// ListFutureExceptions получает все исключения мастера начиная с даты from
func (r *Repository) ListFutureExceptions(ctx context.Context, masterID uuid.UUID, from time.Time) ([]*domain.ScheduleException, error) {
	executor := txmanager.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(exceptionColumns...).
		From("schedule_exceptions").
		Where(squirrel.Eq{"master_id": masterID}).
		Where(squirrel.GtOrEq{"exception_date": from}).
		OrderBy("exception_date ASC").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: ListFutureExceptions - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: ListFutureExceptions - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	exceptions := make([]*domain.ScheduleException, 0)
	for rows.Next() {
		e, err := scanException(rows)
		if err != nil {
			return nil, fmt.Errorf("%w: ListFutureExceptions - scan row: %v", ErrScanRow, err)
		}
		exceptions = append(exceptions, e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: ListFutureExceptions - rows error: %v", ErrScanRow, err)
	}

	return exceptions, nil
}

// CreateException создает исключение из расписания. На пару
// (master_id, exception_date) действует уникальный индекс: повторная
// попытка возвращает ErrDuplicateException.
func (r *Repository) CreateException(ctx context.Context, e *domain.ScheduleException) (*domain.ScheduleException, error) {
	executor := txmanager.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Insert("schedule_exceptions").
		Columns("master_id", "exception_date", "exception_type", "custom_start_time", "custom_end_time", "reason").
		Values(
			e.MasterID,
			e.ExceptionDate,
			e.ExceptionType,
			nullableTime(e.CustomStartTime),
			nullableTime(e.CustomEndTime),
			e.Reason,
		).
		Suffix("RETURNING id, created_at").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: CreateException - build insert query: %v", ErrBuildQuery, err)
	}

	var createdAt sql.NullTime
	err = executor.QueryRowContext(ctx, query, args...).Scan(&e.ID, &createdAt)
	if err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && string(pqErr.Code) == pgUniqueViolation {
			return nil, ErrDuplicateException
		}
		return nil, fmt.Errorf("%w: CreateException - execute insert: %v", ErrExecQuery, err)
	}

	e.CreatedAt = createdAt.Time

	return e, nil
}

// DeleteException удаляет исключение мастера по ID. Условие на master_id
// не дает удалить чужое исключение.
func (r *Repository) DeleteException(ctx context.Context, id, masterID uuid.UUID) error {
	executor := txmanager.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Delete("schedule_exceptions").
		Where(squirrel.Eq{"id": id}).
		Where(squirrel.Eq{"master_id": masterID}).
		ToSql()

	if err != nil {
		return fmt.Errorf("%w: DeleteException - build delete query: %v", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: DeleteException - execute delete: %v", ErrExecQuery, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: DeleteException - get rows affected: %v", ErrExecQuery, err)
	}

	if rowsAffected == 0 {
		return ErrExceptionNotFound
	}

	return nil
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanSchedule(row rowScanner) (*domain.WeekdaySchedule, error) {
	var s domain.WeekdaySchedule
	var breaksRaw []byte

	err := row.Scan(
		&s.ID,
		&s.MasterID,
		&s.BranchID,
		&s.DayOfWeek,
		&s.IsWorking,
		&s.StartTime,
		&s.EndTime,
		&breaksRaw,
	)
	if err != nil {
		return nil, err
	}

	if len(breaksRaw) > 0 {
		if err := json.Unmarshal(breaksRaw, &s.Breaks); err != nil {
			return nil, fmt.Errorf("unmarshal breaks: %v", err)
		}
	}

	return &s, nil
}

func scanException(row rowScanner) (*domain.ScheduleException, error) {
	var e domain.ScheduleException
	var createdAt sql.NullTime

	err := row.Scan(
		&e.ID,
		&e.MasterID,
		&e.ExceptionDate,
		&e.ExceptionType,
		&e.CustomStartTime,
		&e.CustomEndTime,
		&e.Reason,
		&createdAt,
	)
	if err != nil {
		return nil, err
	}

	e.CreatedAt = createdAt.Time

	return &e, nil
}

func marshalBreaks(breaks []domain.BreakInterval) ([]byte, error) {
	if len(breaks) == 0 {
		return []byte("[]"), nil
	}
	return json.Marshal(breaks)
}

// nullableTime превращает пустой TimeString в NULL для нерабочих дней
func nullableTime(t types.TimeString) interface{} {
	if t.IsZero() {
		return nil
	}
	return t.String()
}
