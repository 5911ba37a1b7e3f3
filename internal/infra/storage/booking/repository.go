package booking

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/google/uuid"
	"github.com/lib/pq"

	"github.com/jazyl-tech/JZL-BookingService/internal/domain"
	"github.com/jazyl-tech/JZL-BookingService/pkg/psqlbuilder"
	"github.com/jazyl-tech/JZL-BookingService/pkg/txmanager"
)

// Коды ошибок PostgreSQL, означающие конфликт интервалов
const (
	pgExclusionViolation = "23P01"
	pgUniqueViolation    = "23505"
)

var bookingColumns = []string{
	"id",
	"client_id",
	"master_id",
	"service_id",
	"branch_id",
	"salon_id",
	"booking_date",
	"start_time",
	"end_time",
	"final_price",
	"status",
	"created_via",
	"notes_from_client",
	"notes_for_master",
	"reminded_at",
	"completed_at",
	"cancelled_at",
	"cancellation_reason",
	"created_at",
	"updated_at",
}

// Repository репозиторий для работы с бронированиями
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория бронирований
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// Create создает новое бронирование.
// Если insert отклонён exclusion-констрейнтом на пересечение интервалов
// мастера, возвращает ErrSlotTaken: для вызывающего это тот же конфликт,
// что и слот, занятый до начала транзакции.
func (r *Repository) Create(ctx context.Context, b *domain.Booking) (*domain.Booking, error) {
	executor := txmanager.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Insert("bookings").
		Columns(
			"client_id",
			"master_id",
			"service_id",
			"branch_id",
			"salon_id",
			"booking_date",
			"start_time",
			"end_time",
			"final_price",
			"status",
			"created_via",
			"notes_from_client",
		).
		Values(
			b.ClientID,
			b.MasterID,
			b.ServiceID,
			b.BranchID,
			b.SalonID,
			b.BookingDate,
			b.StartTime,
			b.EndTime,
			b.FinalPrice,
			b.Status,
			b.CreatedVia,
			b.NotesFromClient,
		).
		Suffix("RETURNING id, created_at, updated_at").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: Create - build insert query: %v", ErrBuildQuery, err)
	}

	var createdAt, updatedAt sql.NullTime
	err = executor.QueryRowContext(ctx, query, args...).Scan(
		&b.ID,
		&createdAt,
		&updatedAt,
	)

	if err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && (string(pqErr.Code) == pgExclusionViolation || string(pqErr.Code) == pgUniqueViolation) {
			return nil, ErrSlotTaken
		}
		return nil, fmt.Errorf("%w: Create - execute insert: %v", ErrExecQuery, err)
	}

	b.CreatedAt = createdAt.Time
	b.UpdatedAt = updatedAt.Time

	return b, nil
}

// GetByID получает бронирование по ID
func (r *Repository) GetByID(ctx context.Context, id uuid.UUID) (*domain.Booking, error) {
	executor := txmanager.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(bookingColumns...).
		From("bookings").
		Where(squirrel.Eq{"id": id}).
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - build select query: %v", ErrBuildQuery, err)
	}

	b, err := scanBooking(executor.QueryRowContext(ctx, query, args...))
	if err == sql.ErrNoRows {
		return nil, ErrBookingNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - scan booking: %v", ErrScanRow, err)
	}

	return b, nil
}

// GetByMasterAndDate получает бронирования мастера на дату в указанных статусах,
// отсортированные по времени начала.
// Внутри транзакции строки блокируются FOR UPDATE: это чтение перед
// повторной проверкой доступности слота в create_booking.
func (r *Repository) GetByMasterAndDate(ctx context.Context, masterID uuid.UUID, date time.Time, statuses []domain.BookingStatus) ([]*domain.Booking, error) {
	executor := txmanager.GetExecutor(ctx, r.db)

	statusStrings := make([]string, len(statuses))
	for i, s := range statuses {
		statusStrings[i] = string(s)
	}

	selectBuilder := psqlbuilder.Select(bookingColumns...).
		From("bookings").
		Where(squirrel.Eq{"master_id": masterID}).
		Where(squirrel.Eq{"booking_date": date}).
		Where(squirrel.Eq{"status": statusStrings}).
		OrderBy("start_time ASC")

	if txmanager.IsInTransaction(ctx) {
		selectBuilder = selectBuilder.Suffix("FOR UPDATE")
	}

	query, args, err := selectBuilder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetByMasterAndDate - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: GetByMasterAndDate - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	return scanBookings(rows)
}

// GetByClient получает историю бронирований клиента
func (r *Repository) GetByClient(ctx context.Context, filter domain.ClientBookingsFilter) ([]*domain.Booking, error) {
	executor := txmanager.GetExecutor(ctx, r.db)

	selectBuilder := psqlbuilder.Select(bookingColumns...).
		From("bookings").
		Where(squirrel.Eq{"client_id": filter.ClientID}).
		OrderBy("booking_date DESC, start_time DESC")

	if filter.Status != nil {
		selectBuilder = selectBuilder.Where(squirrel.Eq{"status": *filter.Status})
	}

	query, args, err := selectBuilder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetByClient - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: GetByClient - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	return scanBookings(rows)
}

// GetBySalonWithFilter получает бронирования салона с гибкой фильтрацией
// по мастеру, периоду и статусу (для менеджеров)
func (r *Repository) GetBySalonWithFilter(ctx context.Context, filter domain.SalonBookingsFilter) ([]*domain.Booking, error) {
	executor := txmanager.GetExecutor(ctx, r.db)

	selectBuilder := psqlbuilder.Select(bookingColumns...).
		From("bookings").
		Where(squirrel.Eq{"salon_id": filter.SalonID})

	if filter.MasterID != nil {
		selectBuilder = selectBuilder.Where(squirrel.Eq{"master_id": *filter.MasterID})
	}
	if filter.StartDate != nil {
		selectBuilder = selectBuilder.Where(squirrel.GtOrEq{"booking_date": *filter.StartDate})
	}
	if filter.EndDate != nil {
		selectBuilder = selectBuilder.Where(squirrel.LtOrEq{"booking_date": *filter.EndDate})
	}

	if filter.Status != nil {
		selectBuilder = selectBuilder.Where(squirrel.Eq{"status": *filter.Status})
	} else if !filter.IncludeInactive {
		terminal := make([]string, len(domain.TerminalStatuses))
		for i, s := range domain.TerminalStatuses {
			terminal[i] = string(s)
		}
		selectBuilder = selectBuilder.Where(squirrel.NotEq{"status": terminal})
	}

	if filter.StartDate != nil && filter.EndDate != nil && filter.StartDate.Equal(*filter.EndDate) {
		selectBuilder = selectBuilder.OrderBy("start_time ASC")
	} else {
		selectBuilder = selectBuilder.OrderBy("booking_date DESC, start_time DESC")
	}

	query, args, err := selectBuilder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetBySalonWithFilter - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: GetBySalonWithFilter - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	return scanBookings(rows)
}

// UpdateStatus условно обновляет статус бронирования вместе с полями
// side-эффектов перехода. Условие на ожидаемый prior-статус защищает от
// затирания конкурентного перехода (пользователь vs sweep): если строка с
// таким статусом не найдена, возвращается ErrStatusConflict и вызывающий
// перечитывает бронирование.
func (r *Repository) UpdateStatus(ctx context.Context, id uuid.UUID, expectedPrior, newStatus domain.BookingStatus, effects domain.TransitionEffects) error {
	executor := txmanager.GetExecutor(ctx, r.db)

	updateBuilder := psqlbuilder.Update("bookings").
		Set("status", newStatus).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": id}).
		Where(squirrel.Eq{"status": expectedPrior})

	if effects.CancelledAt != nil {
		updateBuilder = updateBuilder.Set("cancelled_at", *effects.CancelledAt)
	}
	if effects.CancellationReason != nil {
		updateBuilder = updateBuilder.Set("cancellation_reason", *effects.CancellationReason)
	}
	if effects.CompletedAt != nil {
		updateBuilder = updateBuilder.Set("completed_at", *effects.CompletedAt)
	}

	query, args, err := updateBuilder.ToSql()
	if err != nil {
		return fmt.Errorf("%w: UpdateStatus - build update query: %v", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: UpdateStatus - execute update: %v", ErrExecQuery, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: UpdateStatus - get rows affected: %v", ErrExecQuery, err)
	}

	if rowsAffected == 0 {
		return ErrStatusConflict
	}

	return nil
}

// MarkReminded проставляет отметку об отправленном 24-часовом напоминании
func (r *Repository) MarkReminded(ctx context.Context, id uuid.UUID, at time.Time) error {
	executor := txmanager.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update("bookings").
		Set("reminded_at", at).
		Where(squirrel.Eq{"id": id}).
		ToSql()

	if err != nil {
		return fmt.Errorf("%w: MarkReminded - build update query: %v", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: MarkReminded - execute update: %v", ErrExecQuery, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: MarkReminded - get rows affected: %v", ErrExecQuery, err)
	}

	if rowsAffected == 0 {
		return ErrBookingNotFound
	}

	return nil
}

// ListNeedingDayBeforeReminder находит активные бронирования без отметки о
// напоминании, начинающиеся в окне [from, to] (окно шириной ~30 минут вокруг
// точки "за 24 часа до начала")
func (r *Repository) ListNeedingDayBeforeReminder(ctx context.Context, from, to time.Time) ([]*domain.Booking, error) {
	executor := txmanager.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(bookingColumns...).
		From("bookings").
		Where(squirrel.Eq{"status": []string{string(domain.StatusPending), string(domain.StatusConfirmed)}}).
		Where("reminded_at IS NULL").
		Where(squirrel.Expr("booking_date + start_time >= ?", from)).
		Where(squirrel.Expr("booking_date + start_time <= ?", to)).
		OrderBy("booking_date ASC, start_time ASC").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: ListNeedingDayBeforeReminder - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: ListNeedingDayBeforeReminder - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	return scanBookings(rows)
}

// ListNeedingHourBeforeReminder находит сегодняшние бронирования, уже
// получившие 24-часовое напоминание, чье начало попадает в окно [from, to].
// Отдельного флага для часового напоминания нет: идемпотентность держится
// только на узости окна.
func (r *Repository) ListNeedingHourBeforeReminder(ctx context.Context, from, to time.Time) ([]*domain.Booking, error) {
	executor := txmanager.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(bookingColumns...).
		From("bookings").
		Where(squirrel.Eq{"status": []string{string(domain.StatusPending), string(domain.StatusConfirmed)}}).
		Where("reminded_at IS NOT NULL").
		Where(squirrel.Expr("booking_date + start_time >= ?", from)).
		Where(squirrel.Expr("booking_date + start_time <= ?", to)).
		OrderBy("start_time ASC").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: ListNeedingHourBeforeReminder - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: ListNeedingHourBeforeReminder - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	return scanBookings(rows)
}

// ListCompletedWithoutReview находит завершенные бронирования без отзыва,
// завершившиеся в интервале [from, to]
func (r *Repository) ListCompletedWithoutReview(ctx context.Context, from, to time.Time) ([]*domain.Booking, error) {
	executor := txmanager.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(prefixColumns("b", bookingColumns)...).
		From("bookings b").
		Where(squirrel.Eq{"b.status": string(domain.StatusCompleted)}).
		Where(squirrel.GtOrEq{"b.completed_at": from}).
		Where(squirrel.LtOrEq{"b.completed_at": to}).
		Where("NOT EXISTS (SELECT 1 FROM reviews rv WHERE rv.booking_id = b.id)").
		OrderBy("b.completed_at ASC").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: ListCompletedWithoutReview - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: ListCompletedWithoutReview - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	return scanBookings(rows)
}

// ListForAutoComplete находит бронирования за сегодня и вчера в статусах
// confirmed/in_progress, закончившиеся не позже deadline (now - 2h)
func (r *Repository) ListForAutoComplete(ctx context.Context, today, yesterday time.Time, deadline time.Time) ([]*domain.Booking, error) {
	executor := txmanager.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(bookingColumns...).
		From("bookings").
		Where(squirrel.Eq{"status": []string{string(domain.StatusConfirmed), string(domain.StatusInProgress)}}).
		Where(squirrel.Eq{"booking_date": []time.Time{today, yesterday}}).
		Where(squirrel.Expr("booking_date + end_time <= ?", deadline)).
		OrderBy("booking_date ASC, end_time ASC").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: ListForAutoComplete - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: ListForAutoComplete - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	return scanBookings(rows)
}

// ListForNoShow находит сегодняшние confirmed-бронирования, начавшиеся не
// позже deadline (now - 30m)
func (r *Repository) ListForNoShow(ctx context.Context, today time.Time, deadline time.Time) ([]*domain.Booking, error) {
	executor := txmanager.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(bookingColumns...).
		From("bookings").
		Where(squirrel.Eq{"status": string(domain.StatusConfirmed)}).
		Where(squirrel.Eq{"booking_date": today}).
		Where(squirrel.Expr("booking_date + start_time <= ?", deadline)).
		OrderBy("start_time ASC").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: ListForNoShow - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: ListForNoShow - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	return scanBookings(rows)
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanBooking(row rowScanner) (*domain.Booking, error) {
	var b domain.Booking
	var createdAt, updatedAt sql.NullTime

	err := row.Scan(
		&b.ID,
		&b.ClientID,
		&b.MasterID,
		&b.ServiceID,
		&b.BranchID,
		&b.SalonID,
		&b.BookingDate,
		&b.StartTime,
		&b.EndTime,
		&b.FinalPrice,
		&b.Status,
		&b.CreatedVia,
		&b.NotesFromClient,
		&b.NotesForMaster,
		&b.RemindedAt,
		&b.CompletedAt,
		&b.CancelledAt,
		&b.CancellationReason,
		&createdAt,
		&updatedAt,
	)
	if err != nil {
		return nil, err
	}

	b.CreatedAt = createdAt.Time
	b.UpdatedAt = updatedAt.Time

	return &b, nil
}

func scanBookings(rows *sql.Rows) ([]*domain.Booking, error) {
	bookings := make([]*domain.Booking, 0)

	for rows.Next() {
		b, err := scanBooking(rows)
		if err != nil {
			return nil, fmt.Errorf("%w: scanBookings - scan row: %v", ErrScanRow, err)
		}
		bookings = append(bookings, b)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: scanBookings - rows error: %v", ErrScanRow, err)
	}

	return bookings, nil
}

func prefixColumns(alias string, columns []string) []string {
	prefixed := make([]string, len(columns))
	for i, c := range columns {
		prefixed[i] = alias + "." + c
	}
	return prefixed
}
