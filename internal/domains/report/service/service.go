package service

//go:generate go run go.uber.org/mock/mockgen -source=./service.go -destination=./mocks/service_mock.go -package=mocks

import (
	"context"
	"fmt"
	"path"
	"slices"
	"strings"
	"time"

	"homestay/config"
	"homestay/infras/otel"
	"homestay/infras/s3"
	"homestay/internal/domains/booking/model"
	bookingDto "homestay/internal/domains/booking/model/dto"
	"homestay/internal/domains/booking/occupancy"
	"homestay/internal/domains/booking/repository"
	"homestay/internal/domains/report/model/dto"
	"homestay/internal/domains/report/render"
	roomService "homestay/internal/domains/room/service"
	"homestay/shared"
	"homestay/shared/constant"
	"homestay/shared/failure"
	"homestay/shared/timezone"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
	"golang.org/x/sync/singleflight"
)

const (
	fileStamp       = "20060102"
	groupNumberSize = 8
)

type Report interface {
	Summary(ctx context.Context, from, to time.Time) (dto.SummaryResponse, error)
	Spreadsheet(ctx context.Context) (dto.File, error)
	BookingsPDF(ctx context.Context) (dto.File, error)
	SchedulePDF(ctx context.Context, from, to time.Time) (dto.File, error)
	InvoicePDF(ctx context.Context, bookingID int64) (dto.File, error)
	Archive(ctx context.Context) (dto.ArchiveResponse, error)
	DeleteArchive(ctx context.Context, url string) error
}

type serviceImpl struct {
	bookings repository.Booking
	rooms    roomService.Room
	storage  s3.S3
	cfg      *config.Config
	otel     otel.Otel
	group    singleflight.Group
}

func New(bookings repository.Booking, rooms roomService.Room, storage s3.S3, cfg *config.Config, otel otel.Otel) Report {
	return &serviceImpl{
		bookings: bookings,
		rooms:    rooms,
		storage:  storage,
		cfg:      cfg,
		otel:     otel,
	}
}

// once collapses concurrent identical requests into a single generation. The work is detached
// from the caller's cancellation so that one impatient client does not fail the others.
func (s *serviceImpl) once(ctx context.Context, key string, fn func(context.Context) (dto.File, error)) (dto.File, error) {
	ch := s.group.DoChan(key, func() (any, error) {
		return fn(context.WithoutCancel(ctx))
	})

	select {
	case <-ctx.Done():
		return dto.File{}, ctx.Err() //nolint:wrapcheck
	case res := <-ch:
		if res.Err != nil {
			return dto.File{}, res.Err //nolint:wrapcheck
		}

		if res.Shared {
			log.Debug().Str("key", key).Msg("report generation shared")
		}

		return res.Val.(dto.File), nil //nolint:forcetypeassert
	}
}

func responses(bookings []model.Booking) []bookingDto.BookingResponse {
	today := timezone.Today()
	out := make([]bookingDto.BookingResponse, len(bookings))

	for i, booking := range bookings {
		out[i].FromModel(booking, today)
	}

	return out
}

func validWindow(from, to time.Time) error {
	if err := occupancy.ValidateRange(from, to); err != nil {
		return failure.BadRequestFromString("to must be after from") // nolint:wrapcheck
	}

	return nil
}

func (s *serviceImpl) Summary(ctx context.Context, from, to time.Time) (res dto.SummaryResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".report.Summary")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	var bookings []model.Booking

	switch {
	case from.IsZero() && to.IsZero():
		bookings, err = s.bookings.ListAll(ctx)
	case from.IsZero() || to.IsZero():
		return res, failure.BadRequestFromString("from and to must be given together") // nolint:wrapcheck
	default:
		if err = validWindow(from, to); err != nil {
			return res, err
		}

		bookings, err = s.bookings.ListBetween(ctx, from, to)
	}

	if err != nil {
		log.Error().Err(err).Msg("failed to list bookings for summary")

		return res, fmt.Errorf("failed to list bookings for summary: %w", err)
	}

	res.FromBookings(bookings, timezone.Today())
	res.Window(from, to)

	return res, nil
}

func (s *serviceImpl) Spreadsheet(ctx context.Context) (file dto.File, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".report.Spreadsheet")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	return s.once(ctx, "spreadsheet", func(ctx context.Context) (dto.File, error) {
		bookings, err := s.bookings.ListAll(ctx)
		if err != nil {
			log.Error().Err(err).Msg("failed to list bookings for spreadsheet")

			return dto.File{}, fmt.Errorf("failed to list bookings for spreadsheet: %w", err)
		}

		data, err := render.Spreadsheet(responses(bookings))
		if err != nil {
			log.Error().Err(err).Msg("failed to render spreadsheet")

			return dto.File{}, fmt.Errorf("failed to render spreadsheet: %w", err)
		}

		return dto.File{
			Name:        fmt.Sprintf("laporan-booking-%s.xlsx", timezone.Now().Format(fileStamp)),
			ContentType: constant.ContentTypeXLSX,
			Data:        data,
		}, nil
	})
}

func (s *serviceImpl) BookingsPDF(ctx context.Context) (file dto.File, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".report.BookingsPDF")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	return s.once(ctx, "bookings-pdf", func(ctx context.Context) (dto.File, error) {
		bookings, err := s.bookings.ListAll(ctx)
		if err != nil {
			log.Error().Err(err).Msg("failed to list bookings for pdf")

			return dto.File{}, fmt.Errorf("failed to list bookings for pdf: %w", err)
		}

		now := timezone.Now()

		data, err := render.BookingsPDF(responses(bookings), now)
		if err != nil {
			log.Error().Err(err).Msg("failed to render bookings pdf")

			return dto.File{}, fmt.Errorf("failed to render bookings pdf: %w", err)
		}

		return dto.File{
			Name:        fmt.Sprintf("laporan-booking-%s.pdf", now.Format(fileStamp)),
			ContentType: constant.ContentTypePDF,
			Data:        data,
		}, nil
	})
}

// scheduleRooms lists every active room plus any room still holding a booking in the window.
func scheduleRooms(active []string, bookings []model.Booking) []string {
	rooms := slices.Clone(active)

	for _, booking := range bookings {
		if !slices.Contains(rooms, booking.Room) {
			rooms = append(rooms, booking.Room)
		}
	}

	slices.Sort(rooms)

	return rooms
}

func (s *serviceImpl) SchedulePDF(ctx context.Context, from, to time.Time) (file dto.File, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".report.SchedulePDF")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	if err = validWindow(from, to); err != nil {
		return file, err
	}

	if nights := occupancy.Nights(from, to); nights > render.MaxScheduleDays {
		return file, failure.BadRequestFromString(fmt.Sprintf("schedule cannot span more than %d nights", render.MaxScheduleDays)) // nolint:wrapcheck
	}

	key := shared.BuildCacheKey("schedule", from.Format(constant.DayFormat), to.Format(constant.DayFormat))

	return s.once(ctx, key, func(ctx context.Context) (dto.File, error) {
		table, err := s.rooms.PricingTable(ctx)
		if err != nil {
			return dto.File{}, fmt.Errorf("failed to load rooms: %w", err)
		}

		bookings, err := s.bookings.ListBetween(ctx, from, to)
		if err != nil {
			log.Error().Err(err).Msg("failed to list bookings for schedule")

			return dto.File{}, fmt.Errorf("failed to list bookings for schedule: %w", err)
		}

		schedule := render.Schedule{From: from, To: to, Rooms: scheduleRooms(table.Rooms(), bookings), Bookings: bookings}

		data, err := render.SchedulePDF(schedule, timezone.Now())
		if err != nil {
			log.Error().Err(err).Msg("failed to render schedule")

			return dto.File{}, fmt.Errorf("failed to render schedule: %w", err)
		}

		return dto.File{
			Name:        fmt.Sprintf("jadwal-%s-%s.pdf", from.Format(fileStamp), to.Format(fileStamp)),
			ContentType: constant.ContentTypePDF,
			Data:        data,
		}, nil
	})
}

func invoiceNumber(booking model.Booking) string {
	if booking.Grouped() {
		group := strings.ReplaceAll(booking.GroupID, "-", "")
		if len(group) > groupNumberSize {
			group = group[:groupNumberSize]
		}

		return "INV-G" + strings.ToUpper(group)
	}

	return fmt.Sprintf("INV-%06d", booking.ID)
}

// InvoicePDF renders the invoice of a booking. A grouped booking is invoiced together with its group.
func (s *serviceImpl) InvoicePDF(ctx context.Context, bookingID int64) (file dto.File, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".report.InvoicePDF")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	booking, err := s.bookings.Get(ctx, shared.FilterByID(bookingID, model.FieldID, model.TableName))
	if err != nil {
		log.Error().Err(err).Msg("failed to get booking for invoice")

		return file, fmt.Errorf("failed to get booking for invoice: %w", err)
	}

	if booking.ID == 0 {
		return file, failure.NotFound(fmt.Sprintf("booking %d not found", bookingID)) // nolint:wrapcheck
	}

	number := invoiceNumber(booking)

	return s.once(ctx, number, func(ctx context.Context) (dto.File, error) {
		var err error

		items := []model.Booking{booking}

		if booking.Grouped() {
			items, err = s.bookings.ListByGroup(ctx, booking.GroupID)
			if err != nil {
				log.Error().Err(err).Msg("failed to list booking group")

				return dto.File{}, fmt.Errorf("failed to list booking group: %w", err)
			}
		}

		var invoice dto.Invoice
		invoice.FromBookings(number, items, timezone.Now(), timezone.Today())

		data, err := render.InvoicePDF(invoice)
		if err != nil {
			log.Error().Err(err).Msg("failed to render invoice")

			return dto.File{}, fmt.Errorf("failed to render invoice: %w", err)
		}

		return dto.File{
			Name:        strings.ToLower(number) + ".pdf",
			ContentType: constant.ContentTypePDF,
			Data:        data,
		}, nil
	})
}

// Archive stores the current spreadsheet in object storage.
func (s *serviceImpl) Archive(ctx context.Context) (res dto.ArchiveResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".report.Archive")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	file, err := s.Spreadsheet(ctx)
	if err != nil {
		return res, err
	}

	name := strings.TrimSuffix(file.Name, ".xlsx") + "-" + uuid.NewString()[:groupNumberSize] + ".xlsx"

	url, err := s.storage.UploadFileBytes(ctx, s.cfg.External.S3.ReportDirectory, name, file.ContentType, file.Data)
	if err != nil {
		log.Error().Err(err).Msg("failed to archive report")

		return res, fmt.Errorf("failed to archive report: %w", err)
	}

	log.Info().Str("url", url).Msg("report archived")

	return dto.ArchiveResponse{FileName: name, URL: url}, nil
}

// DeleteArchive removes an archived spreadsheet. Only objects under the report directory can be removed.
func (s *serviceImpl) DeleteArchive(ctx context.Context, url string) (err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".report.DeleteArchive")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	directory := s.cfg.External.S3.ReportDirectory

	name, ok := strings.CutPrefix(s.storage.GetObjectNameFromURL(url), directory+"/")
	if !ok || name == constant.Empty || path.Base(name) != name || path.Ext(name) != ".xlsx" {
		return failure.BadRequestFromString("url is not an archived report") // nolint:wrapcheck
	}

	if err = s.storage.DeleteFile(ctx, directory, name); err != nil {
		log.Error().Err(err).Str("file", name).Msg("failed to delete archived report")

		return fmt.Errorf("failed to delete archived report: %w", err)
	}

	log.Info().Str("file", name).Msg("archived report deleted")

	return nil
}
