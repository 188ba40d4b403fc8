package booking

import (
	"net/http"

	"homestay/infras/otel"
	"homestay/internal/domains/booking/model"
	"homestay/internal/domains/booking/model/dto"
	"homestay/internal/domains/booking/occupancy"
	"homestay/internal/domains/booking/repository"
	"homestay/internal/domains/booking/service"
	reportService "homestay/internal/domains/report/service"
	"homestay/shared"
	"homestay/shared/constant"
	gDto "homestay/shared/dto"
	"homestay/shared/failure"
	"homestay/shared/timezone"
	"homestay/shared/validator"
	"homestay/transport/http/middleware"
	"homestay/transport/http/response"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/log"
)

type Handler struct {
	service    service.Booking
	report     reportService.Report
	middleware middleware.AuthRole
	otel       otel.Otel
}

func New(service service.Booking, report reportService.Report, middleware middleware.AuthRole, otel otel.Otel) Handler {
	return Handler{
		service:    service,
		report:     report,
		middleware: middleware,
		otel:       otel,
	}
}

func (handler *Handler) Router(router chi.Router) {
	router.Route("/bookings", func(routerGroup chi.Router) {
		routerGroup.Use(handler.middleware.Auth, handler.middleware.RBAC)

		routerGroup.Post("/", handler.CreateBooking)
		routerGroup.Post("/group", handler.CreateGroupBooking)
		routerGroup.Get("/", handler.GetBookings)
		routerGroup.Get("/availability", handler.CheckAvailability)
		routerGroup.Get("/{id}", handler.GetBookingByID)
		routerGroup.Get("/{id}/invoice", handler.GetInvoice)
		routerGroup.Patch("/{id}", handler.UpdateBooking)
		routerGroup.Delete("/{id}", handler.DeleteBooking)
	})
}

func bookingID(r *http.Request) (int64, error) {
	id, err := shared.ConvertStringToInt64(chi.URLParam(r, constant.RequestParamID))
	if err != nil || id <= 0 {
		return 0, failure.BadRequestFromString("id must be a positive number") //nolint:wrapcheck
	}

	return id, nil
}

// CreateBooking handles the creation of a new booking.
// @Summary Create a new booking
// @Description Book one room for a stay. The stay is half-open: the guest leaves on check_out, so another
// @Description booking may start that day. Without nightly_rate the stay is priced from the room's rates.
// @Tags Booking
// @Accept json
// @Produce json
// @Param request body dto.CreateBookingRequest true "Create Booking Request"
// @Success 201 {object} response.Data[response.Created[int64]] "Booking created successfully"
// @Failure 400 {object} response.Error "Invalid date range or unknown room"
// @Failure 409 {object} response.Error "The room is already booked for one of the nights"
// @Failure 500 {object} response.Error
// @Router /v1/bookings [post]
// @Security BearerAuth
func (handler *Handler) CreateBooking(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".CreateBooking")
	defer scope.End()

	req := dto.CreateBookingRequest{}

	if err := validator.Validate(r.Body, &req); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to validate request body")

		response.WithError(w, err)

		return
	}

	id, err := handler.service.Create(ctx, req)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Str("room", req.Room).Msg("failed to create booking")

		response.WithError(w, err)

		return
	}

	scope.AddEvent("Booking created successfully")

	response.WithJSON(w, http.StatusCreated, response.Created[int64]{ID: id})
}

// CreateGroupBooking books several rooms for one guest.
// @Summary Create a group booking
// @Description Book several rooms over the same stay. Either every room is booked or none is.
// @Tags Booking
// @Accept json
// @Produce json
// @Param request body dto.CreateGroupBookingRequest true "Create Group Booking Request"
// @Success 201 {object} response.Data[dto.CreateGroupBookingResponse] "Group booking created successfully"
// @Failure 400 {object} response.Error
// @Failure 409 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/bookings/group [post]
// @Security BearerAuth
func (handler *Handler) CreateGroupBooking(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".CreateGroupBooking")
	defer scope.End()

	req := dto.CreateGroupBookingRequest{}

	if err := validator.Validate(r.Body, &req); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to validate request body")

		response.WithError(w, err)

		return
	}

	res, err := handler.service.CreateGroup(ctx, req)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Strs("rooms", req.Rooms).Msg("failed to create group booking")

		response.WithError(w, err)

		return
	}

	scope.AddEvent("Group booking created successfully")

	response.WithJSON(w, http.StatusCreated, res)
}

// GetBookings lists bookings.
// @Summary Get all bookings
// @Description List bookings with optional filters. Status is derived from today's date, and from/to
// @Description keep stays with at least one night in [from, to).
// @Tags Booking
// @Produce json
// @Param pagination query gDto.QueryParams false "Pagination parameters"
// @Param room query string false "Filter by room"
// @Param status query string false "Filter by status" Enums(booked, paid_in_full, checked_in, checked_out, completed)
// @Param group_id query string false "Filter by group"
// @Param from query string false "Window start (YYYY-MM-DD)"
// @Param to query string false "Window end (YYYY-MM-DD)"
// @Success 200 {object} response.Data[dto.GetBookingsResponse] "List of bookings"
// @Failure 400 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/bookings [get]
// @Security BearerAuth
func (handler *Handler) GetBookings(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetBookings")
	defer scope.End()

	queryParams := gDto.QueryParams{}
	queryParams.FromRequest(r, true)
	queryParams.Restrict(model.FieldCheckIn,
		model.FieldCheckIn, model.FieldCheckOut, model.FieldRoom, model.FieldGuestName, model.FieldTotal, model.FieldBalanceDue, constant.FieldCreatedAt)

	filter, err := bookingFilter(r)
	if err != nil {
		scope.TraceError(err)

		response.WithError(w, err)

		return
	}

	bookings, err := handler.service.GetAll(ctx, queryParams, filter)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to get bookings")

		response.WithError(w, err)

		return
	}

	scope.AddEvent("Bookings retrieved successfully")

	response.WithJSON(w, http.StatusOK, bookings)
}

func bookingFilter(r *http.Request) (gDto.FilterGroup, error) {
	query := r.URL.Query()

	var room, status, group, window any

	if value := query.Get(constant.RequestParamRoom); value != constant.Empty {
		room = repository.FilterByRoom(value)
	}

	if value := query.Get(constant.RequestParamStatus); value != constant.Empty {
		if !occupancy.Status(value).Valid() {
			return gDto.FilterGroup{}, failure.BadRequestFromString("status must be one of booked paid_in_full checked_in checked_out completed") //nolint:wrapcheck
		}

		status = repository.FilterByStatus(occupancy.Status(value), timezone.Today())
	}

	if value := query.Get(constant.RequestParamGroupID); value != constant.Empty {
		if err := validator.ValidateVar(value, "uuid"); err != nil {
			return gDto.FilterGroup{}, failure.BadRequestFromString("group_id must be a valid UUID") //nolint:wrapcheck
		}

		group = repository.FilterByGroup(value)
	}

	dates := gDto.DateWindow{}
	if err := dates.FromRequest(r); err != nil {
		return gDto.FilterGroup{}, err //nolint:wrapcheck
	}

	if !dates.Empty() {
		if dates.From.IsZero() || dates.To.IsZero() {
			return gDto.FilterGroup{}, failure.BadRequestFromString("from and to must be given together") //nolint:wrapcheck
		}

		if err := occupancy.ValidateRange(dates.From, dates.To); err != nil {
			return gDto.FilterGroup{}, failure.BadRequestFromString("to must be after from") //nolint:wrapcheck
		}

		window = repository.FilterStayingBetween(dates.From, dates.To)
	}

	return gDto.And(room, status, group, window), nil
}

// CheckAvailability reports whether a room is free for a stay and what it would cost.
// @Summary Check room availability
// @Tags Booking
// @Produce json
// @Param room query string true "Room name"
// @Param check_in query string true "Check-in date (YYYY-MM-DD)"
// @Param check_out query string true "Check-out date (YYYY-MM-DD)"
// @Success 200 {object} response.Data[dto.AvailabilityResponse] "Availability"
// @Failure 400 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/bookings/availability [get]
// @Security BearerAuth
func (handler *Handler) CheckAvailability(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".CheckAvailability")
	defer scope.End()

	query := r.URL.Query()

	req := dto.AvailabilityRequest{
		Room:     query.Get(constant.RequestParamRoom),
		CheckIn:  query.Get(constant.RequestParamCheckIn),
		CheckOut: query.Get(constant.RequestParamCheckOut),
	}

	if err := validator.ValidateStruct(&req); err != nil {
		scope.TraceError(err)

		response.WithError(w, err)

		return
	}

	res, err := handler.service.Availability(ctx, req)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Str("room", req.Room).Msg("failed to check availability")

		response.WithError(w, err)

		return
	}

	response.WithJSON(w, http.StatusOK, res)
}

// GetBookingByID retrieves a booking by its ID.
// @Summary Get a booking by ID
// @Tags Booking
// @Produce json
// @Param id path int true "Booking ID"
// @Success 200 {object} response.Data[dto.BookingResponse] "Booking details"
// @Failure 400 {object} response.Error
// @Failure 404 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/bookings/{id} [get]
// @Security BearerAuth
func (handler *Handler) GetBookingByID(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetBookingByID")
	defer scope.End()

	id, err := bookingID(r)
	if err != nil {
		response.WithError(w, err)

		return
	}

	booking, err := handler.service.Get(ctx, id)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Int64("id", id).Msg("failed to get booking by ID")

		response.WithError(w, err)

		return
	}

	scope.AddEvent("Booking retrieved successfully")

	response.WithJSON(w, http.StatusOK, booking)
}

// GetInvoice downloads the invoice of a booking as PDF.
// @Summary Download a booking invoice
// @Description Grouped bookings are invoiced together with the rest of their group.
// @Tags Booking
// @Produce application/pdf
// @Param id path int true "Booking ID"
// @Success 200 {file} file "Invoice"
// @Failure 400 {object} response.Error
// @Failure 404 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/bookings/{id}/invoice [get]
// @Security BearerAuth
func (handler *Handler) GetInvoice(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetInvoice")
	defer scope.End()

	id, err := bookingID(r)
	if err != nil {
		response.WithError(w, err)

		return
	}

	file, err := handler.report.InvoicePDF(ctx, id)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Int64("id", id).Msg("failed to render invoice")

		response.WithError(w, err)

		return
	}

	response.WithFile(w, file.Name, file.ContentType, file.Data)
}

// UpdateBooking updates an existing booking by its ID.
// @Summary Update a booking by ID
// @Description Moving a booking to another room or stay re-checks availability and re-prices it, unless
// @Description nightly_rate is given. Other changes keep the agreed total.
// @Tags Booking
// @Accept json
// @Produce json
// @Param id path int true "Booking ID"
// @Param request body dto.UpdateBookingRequest true "Update Booking Request"
// @Success 200 {object} response.Message "Booking updated successfully"
// @Failure 400 {object} response.Error
// @Failure 404 {object} response.Error
// @Failure 409 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/bookings/{id} [patch]
// @Security BearerAuth
func (handler *Handler) UpdateBooking(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".UpdateBooking")
	defer scope.End()

	id, err := bookingID(r)
	if err != nil {
		response.WithError(w, err)

		return
	}

	req := dto.UpdateBookingRequest{}

	if err := validator.Validate(r.Body, &req); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to validate request body")

		response.WithError(w, err)

		return
	}

	if err := handler.service.Update(ctx, req, id); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Int64("id", id).Msg("failed to update booking")

		response.WithError(w, err)

		return
	}

	scope.AddEvent("Booking updated successfully")

	response.WithMessage(w, http.StatusOK, "Booking updated successfully")
}

// DeleteBooking deletes a booking by its ID.
// @Summary Delete a booking by ID
// @Tags Booking
// @Produce json
// @Param id path int true "Booking ID"
// @Success 200 {object} response.Message "Booking deleted successfully"
// @Failure 400 {object} response.Error
// @Failure 404 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/bookings/{id} [delete]
// @Security BearerAuth
func (handler *Handler) DeleteBooking(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".DeleteBooking")
	defer scope.End()

	id, err := bookingID(r)
	if err != nil {
		response.WithError(w, err)

		return
	}

	if err := handler.service.Delete(ctx, id); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Int64("id", id).Msg("failed to delete booking")

		response.WithError(w, err)

		return
	}

	scope.AddEvent("Booking deleted successfully")

	response.WithMessage(w, http.StatusOK, "Booking deleted successfully")
}
