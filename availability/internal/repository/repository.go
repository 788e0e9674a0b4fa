package repository

import (
	"context"
	"database/sql"
	"strings"
	"time"

	"github.com/Astemirdum/rental-service/availability/internal/domain"
	"github.com/Astemirdum/rental-service/availability/internal/errs"
	"github.com/Astemirdum/rental-service/availability/internal/model"
	sq "github.com/Masterminds/squirrel"
	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jmoiron/sqlx"
	"github.com/pkg/errors"
	"go.uber.org/zap"
)

// BookingCheck validates a booking against the locked equipment row and its
// current bookings and returns the row to insert.
type BookingCheck func(eq model.Equipment, existing []model.Booking) (model.Booking, error)

type Repository interface {
	GetEquipment(ctx context.Context, id string) (model.Equipment, error)
	ListEquipmentByCategory(ctx context.Context, category string) ([]model.Equipment, error)
	UpdateEquipmentStatus(ctx context.Context, id string, status domain.EquipmentStatus) error
	ListBookings(ctx context.Context, filter model.BookingFilter) ([]model.Booking, error)
	CreateBooking(ctx context.Context, equipmentID string, check BookingCheck) (model.Booking, error)
}

type repository struct {
	db  *sqlx.DB
	log *zap.Logger
}

func NewRepository(db *sqlx.DB, log *zap.Logger) (*repository, error) {
	return &repository{
		db:  db,
		log: log.Named("repo"),
	}, nil
}

const (
	equipmentTableName = `equipment`
	bookingTableName   = `booking`
)

var (
	qb = sq.StatementBuilder.PlaceholderFormat(sq.Dollar)

	equipmentColumns = []string{"id", "name", "category", "status", "price_per_day", "updated_at"}
	bookingColumns   = []string{"id", "equipment_id", "user_id", "start_date", "end_date", "status", "total_price", "created_at"}
)

func (r *repository) GetEquipment(ctx context.Context, id string) (model.Equipment, error) {
	q, args, err := qb.Select(equipmentColumns...).
		From(equipmentTableName).
		Where(sq.Eq{"id": id}).
		ToSql()
	if err != nil {
		return model.Equipment{}, err
	}
	var eq model.Equipment
	if err := r.db.GetContext(ctx, &eq, q, args...); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return model.Equipment{}, errs.ErrNotFound
		}
		return model.Equipment{}, errors.Wrap(err, "get equipment")
	}
	return eq, nil
}

func (r *repository) ListEquipmentByCategory(ctx context.Context, category string) ([]model.Equipment, error) {
	q, args, err := qb.Select(equipmentColumns...).
		From(equipmentTableName).
		Where(sq.Eq{"category": category}).
		OrderBy("name", "id").
		ToSql()
	if err != nil {
		return nil, err
	}
	items := make([]model.Equipment, 0)
	if err := r.db.SelectContext(ctx, &items, q, args...); err != nil {
		return nil, errors.Wrap(err, "list equipment")
	}
	return items, nil
}

func (r *repository) UpdateEquipmentStatus(ctx context.Context, id string, status domain.EquipmentStatus) error {
	q, args, err := qb.Update(equipmentTableName).
		Set("status", string(status)).
		Set("updated_at", time.Now().UTC()).
		Where(sq.Eq{"id": id}).
		ToSql()
	if err != nil {
		return err
	}
	res, err := r.db.ExecContext(ctx, q, args...)
	if err != nil {
		return errors.Wrap(err, "update equipment status")
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return errs.ErrNotFound
	}
	return nil
}

func bookingsQuery(filter model.BookingFilter) sq.SelectBuilder {
	b := qb.Select(bookingColumns...).
		From(bookingTableName).
		Where(sq.Eq{"equipment_id": filter.EquipmentID})
	if !filter.From.IsZero() {
		b = b.Where(sq.GtOrEq{"end_date": filter.From})
	}
	if !filter.To.IsZero() {
		b = b.Where(sq.LtOrEq{"start_date": filter.To})
	}
	if len(filter.Statuses) > 0 {
		statuses := make([]string, 0, len(filter.Statuses))
		for _, st := range filter.Statuses {
			statuses = append(statuses, string(st))
		}
		b = b.Where(sq.Eq{"status": statuses})
	}
	return b.OrderBy("start_date", "end_date", "id")
}

func (r *repository) ListBookings(ctx context.Context, filter model.BookingFilter) ([]model.Booking, error) {
	q, args, err := bookingsQuery(filter).ToSql()
	if err != nil {
		return nil, err
	}
	items := make([]model.Booking, 0)
	if err := r.db.SelectContext(ctx, &items, q, args...); err != nil {
		return nil, errors.Wrap(err, "list bookings")
	}
	return items, nil
}

// CreateBooking locks the equipment row, runs check against the bookings
// visible inside the transaction and inserts the result. Concurrent bookings
// of the same item are serialized by the row lock; the exclusion constraint
// on booking catches anything that slips through.
func (r *repository) CreateBooking(ctx context.Context, equipmentID string, check BookingCheck) (model.Booking, error) {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return model.Booking{}, errors.Wrap(err, "begin tx")
	}
	defer func() {
		if err := tx.Rollback(); err != nil && !errors.Is(err, sql.ErrTxDone) {
			r.log.Error("tx rollback", zap.Error(err))
		}
	}()

	q, args, err := qb.Select(equipmentColumns...).
		From(equipmentTableName).
		Where(sq.Eq{"id": equipmentID}).
		Suffix("FOR UPDATE").
		ToSql()
	if err != nil {
		return model.Booking{}, err
	}
	var eq model.Equipment
	if err := tx.GetContext(ctx, &eq, q, args...); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return model.Booking{}, errs.ErrNotFound
		}
		return model.Booking{}, errors.Wrap(err, "lock equipment")
	}

	q, args, err = bookingsQuery(model.BookingFilter{EquipmentID: equipmentID}).
		Where(sq.NotEq{"status": string(domain.BookingCancelled)}).
		ToSql()
	if err != nil {
		return model.Booking{}, err
	}
	existing := make([]model.Booking, 0)
	if err := tx.SelectContext(ctx, &existing, q, args...); err != nil {
		return model.Booking{}, errors.Wrap(err, "list bookings")
	}

	b, err := check(eq, existing)
	if err != nil {
		return model.Booking{}, err
	}

	q, args, err = qb.Insert(bookingTableName).
		Columns("id", "equipment_id", "user_id", "start_date", "end_date", "status", "total_price").
		Values(b.ID, equipmentID, b.UserID, b.StartDate, b.EndDate, b.Status, b.TotalPrice).
		Suffix("returning " + strings.Join(bookingColumns, ", ")).
		ToSql()
	if err != nil {
		return model.Booking{}, err
	}
	var created model.Booking
	if err := tx.GetContext(ctx, &created, q, args...); err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == pgerrcode.ExclusionViolation {
			return model.Booking{}, errs.ErrConflict
		}
		r.log.Error("CreateBooking", zap.String("q", q), zap.Any("args", args))
		return model.Booking{}, errors.Wrap(err, "insert booking")
	}
	if err := tx.Commit(); err != nil {
		return model.Booking{}, errors.Wrap(err, "commit")
	}
	return created, nil
}
