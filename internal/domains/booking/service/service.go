package service

//go:generate go run go.uber.org/mock/mockgen -source=./service.go -destination=./mocks/service_mock.go -package=mocks

import (
	"context"
	"errors"
	"fmt"

	"homestay/config"
	"homestay/infras/kafka"
	"homestay/infras/otel"
	"homestay/internal/domains/booking/model"
	"homestay/internal/domains/booking/model/dto"
	"homestay/internal/domains/booking/occupancy"
	"homestay/internal/domains/booking/repository"
	"homestay/internal/domains/room/pricing"
	roomService "homestay/internal/domains/room/service"
	"homestay/shared"
	"homestay/shared/cache"
	"homestay/shared/constant"
	gDto "homestay/shared/dto"
	"homestay/shared/failure"
	"homestay/shared/timezone"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/rs/zerolog/log"
)

const (
	cacheGetBooking    = "booking:get"
	cacheGetAllBooking = "booking:gets"
	cacheCountBooking  = "booking:count"
)

type Booking interface {
	Create(ctx context.Context, req dto.CreateBookingRequest) (int64, error)
	CreateGroup(ctx context.Context, req dto.CreateGroupBookingRequest) (dto.CreateGroupBookingResponse, error)
	GetAll(ctx context.Context, req gDto.QueryParams, filter gDto.FilterGroup) (dto.GetBookingsResponse, error)
	Count(ctx context.Context, req gDto.QueryParams, filter gDto.FilterGroup) (int, error)
	Get(ctx context.Context, id int64) (dto.BookingResponse, error)
	Update(ctx context.Context, req dto.UpdateBookingRequest, id int64) error
	Delete(ctx context.Context, id int64) error
	Availability(ctx context.Context, req dto.AvailabilityRequest) (dto.AvailabilityResponse, error)
	RefreshStatuses(ctx context.Context) (int, error)
}

type serviceImpl struct {
	repo  repository.Booking
	rooms roomService.Room
	kafka kafka.Client
	cfg   *config.Config
	cache cache.RedisCache
	otel  otel.Otel
}

func New(
	repo repository.Booking,
	rooms roomService.Room,
	kafka kafka.Client,
	cfg *config.Config,
	cache cache.RedisCache,
	otel otel.Otel,
) Booking {
	return &serviceImpl{
		repo:  repo,
		rooms: rooms,
		kafka: kafka,
		cfg:   cfg,
		cache: cache,
		otel:  otel,
	}
}

// bookingFailure maps domain and storage errors to HTTP failures.
func bookingFailure(err error, room string) error {
	var conflict *occupancy.ConflictError

	switch {
	case errors.As(err, &conflict):
		return failure.Conflict(conflict.Error()) // nolint:wrapcheck
	case errors.Is(err, occupancy.ErrInvalidDateRange), errors.Is(err, pricing.ErrUnknownRoom):
		return failure.BadRequest(err) // nolint:wrapcheck
	case failure.IsPostgresCode(err, constant.PqErrorCodeExclusionViolation):
		return failure.Conflict(fmt.Sprintf("room %s is already booked for those dates", room)) // nolint:wrapcheck
	case failure.IsPostgresCode(err, constant.PqErrorCodeFkViolation):
		return failure.BadRequestFromString(fmt.Sprintf("room %s does not exist", room)) // nolint:wrapcheck
	default:
		return failure.FromPostgres(err, model.EntityName) // nolint:wrapcheck
	}
}

func requireRoom(table pricing.Table, room string) error {
	if _, ok := table.Rate(room); !ok {
		return failure.BadRequestFromString(fmt.Sprintf("room %s is not available", room)) // nolint:wrapcheck
	}

	return nil
}

// quote prices the stay. A nightly rate overrides the room rates and is charged for every night.
func quote(table pricing.Table, booking *model.Booking, nightlyRate *int64) error {
	if nightlyRate != nil {
		booking.FlatRate = true
		booking.NightlyRate = *nightlyRate
		booking.Total = pricing.Flat(*nightlyRate, booking.CheckIn, booking.CheckOut)

		return nil
	}

	booking.FlatRate = false

	total, err := table.Total(booking.Room, booking.CheckIn, booking.CheckOut)
	if err != nil {
		return err
	}

	booking.Total = total
	booking.NightlyRate = total / int64(occupancy.Nights(booking.CheckIn, booking.CheckOut))

	return nil
}

// spreadDeposit fills each room's total in order and leaves any overpayment on the last room.
func spreadDeposit(bookings []model.Booking, deposit int64) {
	for i := range bookings {
		paid := min(deposit, bookings[i].Total)
		if i == len(bookings)-1 {
			paid = deposit
		}

		bookings[i].Deposit = max(paid, 0)
		deposit -= bookings[i].Deposit
	}
}

func settle(booking *model.Booking) {
	booking.BalanceDue = booking.Total - booking.Deposit
	booking.Status = occupancy.DeriveStatus(booking.CheckIn, booking.CheckOut, booking.BalanceDue, timezone.Today()).String()
}

func changes(booking model.Booking, user string) map[string]any {
	return map[string]any{
		model.FieldGuestName:     booking.GuestName,
		model.FieldGuestPhone:    booking.GuestPhone,
		model.FieldRoom:          booking.Room,
		model.FieldCheckIn:       booking.CheckIn,
		model.FieldCheckOut:      booking.CheckOut,
		model.FieldNightlyRate:   booking.NightlyRate,
		model.FieldFlatRate:      booking.FlatRate,
		model.FieldTotal:         booking.Total,
		model.FieldDeposit:       booking.Deposit,
		model.FieldBalanceDue:    booking.BalanceDue,
		model.FieldStatus:        booking.Status,
		constant.FieldModifiedAt: timezone.Now(),
		constant.FieldModifiedBy: user,
	}
}

// checkRoom loads the bookings of room inside tx and rejects the stay if it collides.
func (s *serviceImpl) checkRoom(ctx context.Context, tx *sqlx.Tx, booking model.Booking, excludeID int64) error {
	existing, err := s.repo.ListByRoomTx(ctx, tx, booking.Room)
	if err != nil {
		return fmt.Errorf("failed to list bookings of %s: %w", booking.Room, err)
	}

	return occupancy.CheckAvailability(booking.Room, booking.CheckIn, booking.CheckOut, existing, excludeID) //nolint:wrapcheck
}

func (s *serviceImpl) Create(ctx context.Context, req dto.CreateBookingRequest) (id int64, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".booking.Create")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	user, _ := ctx.Value(constant.ContextKeyUserEmail).(string)

	booking, err := req.ToModel(user)
	if err != nil {
		return 0, failure.BadRequest(err) // nolint:wrapcheck
	}

	if err = occupancy.ValidateRange(booking.CheckIn, booking.CheckOut); err != nil {
		return 0, failure.BadRequest(err) // nolint:wrapcheck
	}

	table, err := s.rooms.PricingTable(ctx)
	if err != nil {
		return 0, fmt.Errorf("failed to load pricing: %w", err)
	}

	if err = requireRoom(table, booking.Room); err != nil {
		return 0, err
	}

	var nightlyRate *int64
	if req.NightlyRate > 0 {
		nightlyRate = &req.NightlyRate
	}

	if err = quote(table, &booking, nightlyRate); err != nil {
		return 0, bookingFailure(err, booking.Room)
	}

	settle(&booking)

	err = s.repo.WithRoomLock(ctx, []string{booking.Room}, func(ctx context.Context, tx *sqlx.Tx) error {
		if err := s.checkRoom(ctx, tx, booking, occupancy.NoExclusion); err != nil {
			return err
		}

		insertedID, err := s.repo.InsertTx(ctx, tx, booking)
		if err != nil {
			return fmt.Errorf("failed to insert booking: %w", err)
		}

		booking.ID = insertedID

		return nil
	})
	if err != nil {
		log.Warn().Err(err).Str("room", booking.Room).Msg("booking rejected")

		return 0, bookingFailure(err, booking.Room)
	}

	log.Info().Int64("id", booking.ID).Str("room", booking.Room).Msg("booking created")

	s.invalidate(ctx)
	s.publish(ctx, dto.EventCreated, booking)

	return booking.ID, nil
}

func (s *serviceImpl) CreateGroup(ctx context.Context, req dto.CreateGroupBookingRequest) (res dto.CreateGroupBookingResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".booking.CreateGroup")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	user, _ := ctx.Value(constant.ContextKeyUserEmail).(string)

	bookings, err := req.ToModels(uuid.NewString(), user)
	if err != nil {
		return res, failure.BadRequest(err) // nolint:wrapcheck
	}

	if err = occupancy.ValidateRange(bookings[0].CheckIn, bookings[0].CheckOut); err != nil {
		return res, failure.BadRequest(err) // nolint:wrapcheck
	}

	table, err := s.rooms.PricingTable(ctx)
	if err != nil {
		return res, fmt.Errorf("failed to load pricing: %w", err)
	}

	rooms := make([]string, len(bookings))

	for i := range bookings {
		rooms[i] = bookings[i].Room

		if err = requireRoom(table, bookings[i].Room); err != nil {
			return res, err
		}

		if err = quote(table, &bookings[i], nil); err != nil {
			return res, bookingFailure(err, bookings[i].Room)
		}
	}

	spreadDeposit(bookings, req.Deposit)

	for i := range bookings {
		settle(&bookings[i])
	}

	failedRoom := constant.Empty

	err = s.repo.WithRoomLock(ctx, rooms, func(ctx context.Context, tx *sqlx.Tx) error {
		for _, booking := range bookings {
			if err := s.checkRoom(ctx, tx, booking, occupancy.NoExclusion); err != nil {
				failedRoom = booking.Room

				return err
			}
		}

		for i := range bookings {
			insertedID, err := s.repo.InsertTx(ctx, tx, bookings[i])
			if err != nil {
				failedRoom = bookings[i].Room

				return fmt.Errorf("failed to insert booking: %w", err)
			}

			bookings[i].ID = insertedID
		}

		return nil
	})
	if err != nil {
		log.Warn().Err(err).Strs("rooms", rooms).Msg("group booking rejected")

		return res, bookingFailure(err, failedRoom)
	}

	res.GroupID = bookings[0].GroupID
	res.IDs = make([]int64, len(bookings))

	for i, booking := range bookings {
		res.IDs[i] = booking.ID
		res.Total += booking.Total
	}

	log.Info().Str("group_id", res.GroupID).Strs("rooms", rooms).Msg("group booking created")

	s.invalidate(ctx)
	s.publish(ctx, dto.EventCreated, bookings...)

	return res, nil
}

func (s *serviceImpl) GetAll(ctx context.Context, req gDto.QueryParams, filter gDto.FilterGroup) (res dto.GetBookingsResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".booking.GetAll")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	cacheKey := shared.BuildCacheKeyWithQuery(cacheGetAllBooking, req, filter)

	err = s.cache.Get(ctx, cacheKey, &res)
	if err == nil {
		log.Info().Str("cacheKey", cacheKey).Msg("cache hit for bookings")

		res.Rederive(timezone.Today())

		return res, nil
	}

	total, err := s.Count(ctx, req, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to count bookings")

		return res, fmt.Errorf("failed to count bookings: %w", err)
	}

	models, err := s.repo.GetAll(ctx, req, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to get bookings")

		return res, fmt.Errorf("failed to get bookings: %w", err)
	}

	res.FromModels(models, total, req.Limit, timezone.Today())

	go func() {
		c := context.WithoutCancel(ctx)

		if err := s.cache.Save(c, cacheKey, res, s.cfg.Cache.TTL); err != nil {
			log.Error().Err(err).Msg("failed to save bookings to cache")
		}
	}()

	return res, nil
}

func (s *serviceImpl) Count(ctx context.Context, req gDto.QueryParams, filter gDto.FilterGroup) (res int, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".booking.Count")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	cacheKey := shared.BuildCacheKeyWithQuery(cacheCountBooking, req, filter)

	err = s.cache.Get(ctx, cacheKey, &res)
	if err == nil {
		return res, nil
	}

	res, err = s.repo.Count(ctx, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to count bookings")

		return res, fmt.Errorf("failed to count bookings: %w", err)
	}

	go func() {
		c := context.WithoutCancel(ctx)

		if err := s.cache.Save(c, cacheKey, res, s.cfg.Cache.TTL); err != nil {
			log.Error().Err(err).Msg("failed to save booking count to cache")
		}
	}()

	return res, nil
}

func (s *serviceImpl) get(ctx context.Context, id int64) (model.Booking, error) {
	booking, err := s.repo.Get(ctx, shared.FilterByID(id, model.FieldID, model.TableName))
	if err != nil {
		log.Error().Err(err).Msg("failed to get booking")

		return booking, fmt.Errorf("failed to get booking: %w", err)
	}

	if booking.ID == 0 {
		return booking, failure.NotFound(fmt.Sprintf("booking %d not found", id)) // nolint:wrapcheck
	}

	return booking, nil
}

func (s *serviceImpl) Get(ctx context.Context, id int64) (res dto.BookingResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".booking.Get")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	cacheKey := shared.BuildCacheKey(cacheGetBooking, id)

	err = s.cache.Get(ctx, cacheKey, &res)
	if err == nil {
		log.Info().Str("cacheKey", cacheKey).Msg("cache hit for booking")

		res.Rederive(timezone.Today())

		return res, nil
	}

	booking, err := s.get(ctx, id)
	if err != nil {
		return res, err
	}

	res.FromModel(booking, timezone.Today())

	go func() {
		c := context.WithoutCancel(ctx)

		if err := s.cache.Save(c, cacheKey, res, s.cfg.Cache.TTL); err != nil {
			log.Error().Err(err).Msg("failed to save booking to cache")
		}
	}()

	return res, nil
}

func (s *serviceImpl) Update(ctx context.Context, req dto.UpdateBookingRequest, id int64) (err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".booking.Update")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	if req.Empty() {
		return failure.BadRequestFromString("update request cannot be empty") // nolint:wrapcheck
	}

	user, _ := ctx.Value(constant.ContextKeyUserEmail).(string)

	current, err := s.get(ctx, id)
	if err != nil {
		return err
	}

	booking, reprice, err := req.Apply(current)
	if err != nil {
		return failure.BadRequest(err) // nolint:wrapcheck
	}

	if err = occupancy.ValidateRange(booking.CheckIn, booking.CheckOut); err != nil {
		return failure.BadRequest(err) // nolint:wrapcheck
	}

	if req.NightlyRate != nil || reprice {
		table, err := s.rooms.PricingTable(ctx)
		if err != nil {
			return fmt.Errorf("failed to load pricing: %w", err)
		}

		if booking.Room != current.Room {
			if err = requireRoom(table, booking.Room); err != nil {
				return err
			}
		}

		// a flat-priced booking stays flat until nightly_rate 0 returns it to the room rates
		nightlyRate := req.NightlyRate
		switch {
		case nightlyRate == nil && current.FlatRate:
			nightlyRate = &current.NightlyRate
		case nightlyRate != nil && *nightlyRate == 0:
			nightlyRate = nil
		}

		if err = quote(table, &booking, nightlyRate); err != nil {
			return bookingFailure(err, booking.Room)
		}
	}

	settle(&booking)

	filter := shared.FilterByID(id, model.FieldID, model.TableName)

	err = s.repo.WithRoomLock(ctx, []string{current.Room, booking.Room}, func(ctx context.Context, tx *sqlx.Tx) error {
		if err := s.checkRoom(ctx, tx, booking, id); err != nil {
			return err
		}

		if err := s.repo.UpdateTx(ctx, tx, changes(booking, user), filter); err != nil {
			return fmt.Errorf("failed to update booking: %w", err)
		}

		return nil
	})
	if err != nil {
		log.Warn().Err(err).Int64("id", id).Msg("booking update rejected")

		return bookingFailure(err, booking.Room)
	}

	s.invalidate(ctx, id)
	s.publish(ctx, dto.EventUpdated, booking)

	return nil
}

func (s *serviceImpl) Delete(ctx context.Context, id int64) (err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".booking.Delete")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	booking, err := s.get(ctx, id)
	if err != nil {
		return err
	}

	if err = s.repo.Delete(ctx, shared.FilterByID(id, model.FieldID, model.TableName)); err != nil {
		log.Error().Err(err).Msg("failed to delete booking")

		return fmt.Errorf("failed to delete booking: %w", err)
	}

	s.invalidate(ctx, id)
	s.publish(ctx, dto.EventDeleted, booking)

	return nil
}

// Availability answers whether room is free for the stay and what it would cost at room rates.
func (s *serviceImpl) Availability(ctx context.Context, req dto.AvailabilityRequest) (res dto.AvailabilityResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".booking.Availability")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	checkIn, checkOut, err := dto.ParseStay(req.CheckIn, req.CheckOut)
	if err != nil {
		return res, failure.BadRequest(err) // nolint:wrapcheck
	}

	if err = occupancy.ValidateRange(checkIn, checkOut); err != nil {
		return res, failure.BadRequest(err) // nolint:wrapcheck
	}

	table, err := s.rooms.PricingTable(ctx)
	if err != nil {
		return res, fmt.Errorf("failed to load pricing: %w", err)
	}

	if err = requireRoom(table, req.Room); err != nil {
		return res, err
	}

	existing, err := s.repo.ListByRoom(ctx, req.Room)
	if err != nil {
		log.Error().Err(err).Msg("failed to list room bookings")

		return res, fmt.Errorf("failed to list room bookings: %w", err)
	}

	res.Room = req.Room
	res.CheckIn = req.CheckIn
	res.CheckOut = req.CheckOut
	res.Nights = occupancy.Nights(checkIn, checkOut)
	res.Total, _ = table.Total(req.Room, checkIn, checkOut)

	conflict, found := occupancy.FindConflict(req.Room, checkIn, checkOut, existing, occupancy.NoExclusion)
	res.Available = !found

	if found {
		res.Conflict = &dto.BookingResponse{}
		res.Conflict.FromModel(conflict, timezone.Today())
	}

	return res, nil
}

// RefreshStatuses rewrites the stored status of every booking whose display value went stale.
func (s *serviceImpl) RefreshStatuses(ctx context.Context) (updated int, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".booking.RefreshStatuses")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	bookings, err := s.repo.ListAll(ctx)
	if err != nil {
		log.Error().Err(err).Msg("failed to list bookings")

		return 0, fmt.Errorf("failed to list bookings: %w", err)
	}

	today := timezone.Today()

	for _, booking := range bookings {
		status := occupancy.DeriveStatus(booking.CheckIn, booking.CheckOut, booking.BalanceDue, today).String()
		if status == booking.Status {
			continue
		}

		fields := map[string]any{model.FieldStatus: status}

		if err = s.repo.Update(ctx, fields, shared.FilterByID(booking.ID, model.FieldID, model.TableName)); err != nil {
			log.Error().Err(err).Int64("id", booking.ID).Msg("failed to refresh booking status")

			return updated, fmt.Errorf("failed to refresh status of booking %d: %w", booking.ID, err)
		}

		updated++
	}

	scope.SetAttribute("updated", updated)

	if updated > 0 {
		s.invalidate(ctx)
	}

	return updated, nil
}

func (s *serviceImpl) invalidate(ctx context.Context, ids ...int64) {
	go func() {
		c := context.WithoutCancel(ctx)

		for _, id := range ids {
			if err := s.cache.Delete(c, shared.BuildCacheKey(cacheGetBooking, id)); err != nil {
				log.Error().Err(err).Msg("failed to delete booking from cache")
			}
		}

		shared.InvalidateCaches(c, s.cache, cacheGetAllBooking)
		shared.InvalidateCaches(c, s.cache, cacheCountBooking)
	}()
}

// publish emits one event per booking keyed by room, keeping per-room ordering on the topic.
func (s *serviceImpl) publish(ctx context.Context, event string, bookings ...model.Booking) {
	today := timezone.Today()
	now := timezone.Now()
	messages := make([]kafka.Message, len(bookings))

	for i, booking := range bookings {
		payload := dto.Event{Type: event, OccurredAt: now}
		payload.Booking.FromModel(booking, today)

		messages[i] = kafka.Message{Key: booking.Room, Value: payload}
	}

	go func() {
		c := context.WithoutCancel(ctx)

		if err := s.kafka.SendMessages(c, s.cfg.Kafka.BookingTopic, messages...); err != nil {
			log.Error().Err(err).Str("event", event).Msg("failed to publish booking event")
		}
	}()
}
