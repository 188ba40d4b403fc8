package report

import (
	"net/http"

	"homestay/infras/otel"
	"homestay/internal/domains/report/model/dto"
	"homestay/internal/domains/report/service"
	"homestay/shared/constant"
	gDto "homestay/shared/dto"
	"homestay/shared/timezone"
	"homestay/shared/validator"
	"homestay/transport/http/middleware"
	"homestay/transport/http/response"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/log"
)

// defaultScheduleDays is the window of the schedule when none is requested.
const defaultScheduleDays = 7

type Handler struct {
	service    service.Report
	middleware middleware.AuthRole
	otel       otel.Otel
}

func New(service service.Report, middleware middleware.AuthRole, otel otel.Otel) Handler {
	return Handler{
		service:    service,
		middleware: middleware,
		otel:       otel,
	}
}

func (handler *Handler) Router(router chi.Router) {
	router.Route("/reports", func(routerGroup chi.Router) {
		routerGroup.Use(handler.middleware.APIKey, handler.middleware.Auth, handler.middleware.RBAC)

		routerGroup.Get("/summary", handler.GetSummary)
		routerGroup.Get("/bookings.xlsx", handler.GetSpreadsheet)
		routerGroup.Get("/bookings.pdf", handler.GetBookingsPDF)
		routerGroup.Get("/schedule.pdf", handler.GetSchedulePDF)
		routerGroup.Post("/archive", handler.Archive)
		routerGroup.Delete("/archive", handler.DeleteArchive)
	})
}

// GetSummary aggregates bookings.
// @Summary Get booking summary
// @Description Totals, revenue and outstanding balances, optionally limited to stays overlapping [from, to).
// @Description Revenue and nights are not prorated: a stay crossing the window edge counts its full total and every night.
// @Tags Report
// @Produce json
// @Param from query string false "Window start (YYYY-MM-DD)"
// @Param to query string false "Window end (YYYY-MM-DD)"
// @Success 200 {object} response.Data[dto.SummaryResponse] "Summary"
// @Failure 400 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/reports/summary [get]
// @Security BearerAuth
func (handler *Handler) GetSummary(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetSummary")
	defer scope.End()

	window := gDto.DateWindow{}
	if err := window.FromRequest(r); err != nil {
		response.WithError(w, err)

		return
	}

	res, err := handler.service.Summary(ctx, window.From, window.To)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to summarize bookings")

		response.WithError(w, err)

		return
	}

	response.WithJSON(w, http.StatusOK, res)
}

// GetSpreadsheet exports every booking to Excel.
// @Summary Export bookings to Excel
// @Tags Report
// @Produce application/vnd.openxmlformats-officedocument.spreadsheetml.sheet
// @Success 200 {file} file "Spreadsheet"
// @Failure 500 {object} response.Error
// @Router /v1/reports/bookings.xlsx [get]
// @Security BearerAuth
func (handler *Handler) GetSpreadsheet(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetSpreadsheet")
	defer scope.End()

	file, err := handler.service.Spreadsheet(ctx)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to export spreadsheet")

		response.WithError(w, err)

		return
	}

	response.WithFile(w, file.Name, file.ContentType, file.Data)
}

// GetBookingsPDF exports every booking to PDF.
// @Summary Export bookings to PDF
// @Tags Report
// @Produce application/pdf
// @Success 200 {file} file "Report"
// @Failure 500 {object} response.Error
// @Router /v1/reports/bookings.pdf [get]
// @Security BearerAuth
func (handler *Handler) GetBookingsPDF(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetBookingsPDF")
	defer scope.End()

	file, err := handler.service.BookingsPDF(ctx)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to export bookings pdf")

		response.WithError(w, err)

		return
	}

	response.WithFile(w, file.Name, file.ContentType, file.Data)
}

// GetSchedulePDF renders the room occupancy grid.
// @Summary Export the room schedule to PDF
// @Description One row per room and one column per night in [from, to). Defaults to the coming week.
// @Tags Report
// @Produce application/pdf
// @Param from query string false "Window start (YYYY-MM-DD)"
// @Param to query string false "Window end (YYYY-MM-DD)"
// @Success 200 {file} file "Schedule"
// @Failure 400 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/reports/schedule.pdf [get]
// @Security BearerAuth
func (handler *Handler) GetSchedulePDF(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetSchedulePDF")
	defer scope.End()

	window := gDto.DateWindow{}
	if err := window.FromRequest(r); err != nil {
		response.WithError(w, err)

		return
	}

	if window.From.IsZero() {
		window.From = timezone.Today()
	}

	if window.To.IsZero() {
		window.To = window.From.AddDate(0, 0, defaultScheduleDays)
	}

	file, err := handler.service.SchedulePDF(ctx, window.From, window.To)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to export schedule")

		response.WithError(w, err)

		return
	}

	response.WithFile(w, file.Name, file.ContentType, file.Data)
}

// Archive stores the current spreadsheet in object storage.
// @Summary Archive the booking spreadsheet
// @Tags Report
// @Produce json
// @Success 201 {object} response.Data[dto.ArchiveResponse] "Archived report"
// @Failure 500 {object} response.Error
// @Router /v1/reports/archive [post]
// @Security BearerAuth
func (handler *Handler) Archive(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".Archive")
	defer scope.End()

	res, err := handler.service.Archive(ctx)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to archive report")

		response.WithError(w, err)

		return
	}

	scope.AddEvent("Report archived to " + res.URL)

	response.WithJSON(w, http.StatusCreated, res)
}

// DeleteArchive removes an archived spreadsheet from object storage.
// @Summary Delete an archived report
// @Tags Report
// @Accept json
// @Produce json
// @Param request body dto.DeleteArchiveRequest true "Archived report URL"
// @Success 200 {object} response.Message "Archive deleted"
// @Failure 400 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/reports/archive [delete]
// @Security BearerAuth
func (handler *Handler) DeleteArchive(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".DeleteArchive")
	defer scope.End()

	req := dto.DeleteArchiveRequest{}

	if err := validator.Validate(r.Body, &req); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to validate request body")

		response.WithError(w, err)

		return
	}

	if err := handler.service.DeleteArchive(ctx, req.URL); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to delete archived report")

		response.WithError(w, err)

		return
	}

	response.WithMessage(w, http.StatusOK, "Archive deleted successfully")
}
