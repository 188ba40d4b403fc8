package repository

//go:generate go run go.uber.org/mock/mockgen -source=./repository.go -destination=../mocks/repository_mock.go -package=mocks

import (
	"context"
	"fmt"
	"slices"
	"time"

	"homestay/infras/otel"
	"homestay/infras/postgres"
	"homestay/internal/domains/booking/model"
	"homestay/internal/domains/booking/occupancy"
	"homestay/shared/constant"
	gDto "homestay/shared/dto"
	"homestay/shared/logger"
	gRepo "homestay/shared/repository"

	"github.com/jmoiron/sqlx"
	"github.com/rs/zerolog/log"
)

const lockRoomQuery = "SELECT pg_advisory_xact_lock(hashtext($1))"

// TxFunc runs inside a transaction that holds the advisory lock of every requested room.
type TxFunc func(ctx context.Context, tx *sqlx.Tx) error

type Booking interface {
	InsertTx(ctx context.Context, tx *sqlx.Tx, model model.Booking) (int64, error)
	Get(ctx context.Context, filter gDto.FilterGroup, columns ...string) (model.Booking, error)
	GetAll(ctx context.Context, params gDto.QueryParams, filter gDto.FilterGroup, columns ...string) ([]model.Booking, error)
	Exist(ctx context.Context, filter gDto.FilterGroup) (bool, error)
	Count(ctx context.Context, filter gDto.FilterGroup) (int, error)
	Update(ctx context.Context, req map[string]any, filter gDto.FilterGroup) error
	UpdateTx(ctx context.Context, tx *sqlx.Tx, req map[string]any, filter gDto.FilterGroup) error
	Delete(ctx context.Context, filter gDto.FilterGroup) error
	ListByRoom(ctx context.Context, room string) ([]model.Booking, error)
	ListByRoomTx(ctx context.Context, tx *sqlx.Tx, room string) ([]model.Booking, error)
	ListAll(ctx context.Context) ([]model.Booking, error)
	ListByGroup(ctx context.Context, groupID string) ([]model.Booking, error)
	ListBetween(ctx context.Context, from, to time.Time) ([]model.Booking, error)
	WithRoomLock(ctx context.Context, rooms []string, fn TxFunc) error
}

type repositoryImpl struct {
	gRepo.Repository[model.Booking]
	db   *postgres.Connection
	otel otel.Otel
}

func New(db *postgres.Connection, otel otel.Otel) Booking {
	return &repositoryImpl{
		Repository: gRepo.NewRepository[model.Booking](model.EntityName, model.TableName, model.FieldID, db, otel),
		db:         db,
		otel:       otel,
	}
}

var byStay = gDto.QueryParams{SortBy: model.TableName + "." + model.FieldCheckIn, SortDir: gDto.SortDirAsc}

func FilterByRoom(room string) gDto.FilterGroup {
	return gDto.And(gDto.Filter{Field: model.FieldRoom, Value: room, Operator: gDto.FilterOperatorEq, Table: model.TableName})
}

func FilterByGroup(groupID string) gDto.FilterGroup {
	return gDto.And(gDto.Filter{Field: model.FieldGroupID, Value: groupID, Operator: gDto.FilterOperatorEq, Table: model.TableName})
}

// FilterStayingBetween matches stays with at least one night in [from, to).
func FilterStayingBetween(from, to time.Time) gDto.FilterGroup {
	return gDto.And(
		gDto.Filter{ArgName: "window_end", Field: model.FieldCheckIn, Value: to, Operator: gDto.FilterOperatorLess, Table: model.TableName},
		gDto.Filter{ArgName: "window_start", Field: model.FieldCheckOut, Value: from, Operator: gDto.FilterOperatorGreater, Table: model.TableName},
	)
}

// FilterByStatus translates a derived status into predicates on the stay and balance as of today,
// so listing by status agrees with the status shown on each booking. Unknown statuses match nothing.
func FilterByStatus(status occupancy.Status, today time.Time) gDto.FilterGroup {
	const argToday, argBalance = "status_today", "status_balance"

	day := occupancy.Day(today)
	notStarted := gDto.Filter{ArgName: argToday, Field: model.FieldCheckIn, Value: day, Operator: gDto.FilterOperatorGreater, Table: model.TableName}

	switch status {
	case occupancy.StatusCompleted:
		return gDto.And(gDto.Filter{ArgName: argToday, Field: model.FieldCheckOut, Value: day, Operator: gDto.FilterOperatorLess, Table: model.TableName})
	case occupancy.StatusCheckedOut:
		return gDto.And(gDto.Filter{ArgName: argToday, Field: model.FieldCheckOut, Value: day, Operator: gDto.FilterOperatorEq, Table: model.TableName})
	case occupancy.StatusCheckedIn:
		return gDto.And(
			gDto.Filter{ArgName: argToday, Field: model.FieldCheckIn, Value: day, Operator: gDto.FilterOperatorLessEq, Table: model.TableName},
			gDto.Filter{ArgName: argToday, Field: model.FieldCheckOut, Value: day, Operator: gDto.FilterOperatorGreater, Table: model.TableName},
		)
	case occupancy.StatusPaidInFull:
		return gDto.And(notStarted,
			gDto.Filter{ArgName: argBalance, Field: model.FieldBalanceDue, Value: 0, Operator: gDto.FilterOperatorLessEq, Table: model.TableName})
	case occupancy.StatusBooked:
		return gDto.And(notStarted,
			gDto.Filter{ArgName: argBalance, Field: model.FieldBalanceDue, Value: 0, Operator: gDto.FilterOperatorGreater, Table: model.TableName})
	default:
		return gDto.And(gDto.Filter{Operator: gDto.FilterPlainQuery, Value: "FALSE"})
	}
}

func (r *repositoryImpl) InsertTx(ctx context.Context, tx *sqlx.Tx, booking model.Booking) (int64, error) {
	return r.InsertReturningIDTx(ctx, tx, booking) //nolint:wrapcheck
}

func (r *repositoryImpl) ListByRoom(ctx context.Context, room string) ([]model.Booking, error) {
	return r.GetAll(ctx, byStay, FilterByRoom(room)) //nolint:wrapcheck
}

func (r *repositoryImpl) ListByRoomTx(ctx context.Context, tx *sqlx.Tx, room string) ([]model.Booking, error) {
	return r.GetAllTx(ctx, tx, byStay, FilterByRoom(room)) //nolint:wrapcheck
}

func (r *repositoryImpl) ListAll(ctx context.Context) ([]model.Booking, error) {
	return r.GetAll(ctx, byStay, gDto.And()) //nolint:wrapcheck
}

func (r *repositoryImpl) ListByGroup(ctx context.Context, groupID string) ([]model.Booking, error) {
	return r.GetAll(ctx, byStay, FilterByGroup(groupID)) //nolint:wrapcheck
}

func (r *repositoryImpl) ListBetween(ctx context.Context, from, to time.Time) ([]model.Booking, error) {
	return r.GetAll(ctx, byStay, FilterStayingBetween(from, to)) //nolint:wrapcheck
}

// WithRoomLock serialises writers per room. Locks are taken in sorted order so that
// two multi-room requests cannot deadlock, and are released on commit or rollback.
func (r *repositoryImpl) WithRoomLock(ctx context.Context, rooms []string, fn TxFunc) (err error) {
	ctx, scope := r.otel.NewScope(ctx, constant.OtelRepositoryScopeName, constant.OtelRepositoryScopeName+".booking.WithRoomLock")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	locks := slices.Clone(rooms)
	slices.Sort(locks)
	locks = slices.Compact(locks)

	scope.SetAttribute("rooms", locks)

	tx, err := r.db.Write.BeginTxx(ctx, nil)
	if err != nil {
		logger.ErrorWithStack(err)

		return fmt.Errorf("failed to begin booking transaction: %w", err)
	}

	defer func() {
		if err == nil {
			return
		}

		if rbErr := tx.Rollback(); rbErr != nil {
			log.Error().Err(rbErr).Msg("failed to rollback booking transaction")
		}
	}()

	for _, room := range locks {
		if _, err = tx.ExecContext(ctx, lockRoomQuery, room); err != nil {
			logger.ErrorWithStack(err)

			return fmt.Errorf("failed to lock room %s: %w", room, err)
		}
	}

	if err = fn(ctx, tx); err != nil {
		return err
	}

	if err = tx.Commit(); err != nil {
		logger.ErrorWithStack(err)

		return fmt.Errorf("failed to commit booking transaction: %w", err)
	}

	return nil
}
