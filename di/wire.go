//go:build wireinject
// +build wireinject

package di

import (
	"homestay/config"
	"homestay/infras/jwt"
	"homestay/infras/kafka"
	"homestay/infras/otel"
	"homestay/infras/postgres"
	"homestay/infras/redis"
	"homestay/infras/s3"
	authService "homestay/internal/domains/auth/service"
	bookingRepository "homestay/internal/domains/booking/repository"
	bookingService "homestay/internal/domains/booking/service"
	reportService "homestay/internal/domains/report/service"
	roomRepository "homestay/internal/domains/room/repository"
	roomService "homestay/internal/domains/room/service"
	userRepository "homestay/internal/domains/user/repository"
	userService "homestay/internal/domains/user/service"
	authHandler "homestay/internal/handlers/auth"
	bookingHandler "homestay/internal/handlers/booking"
	reportHandler "homestay/internal/handlers/report"
	roomHandler "homestay/internal/handlers/room"
	userHandler "homestay/internal/handlers/user"
	"homestay/internal/jobs"
	"homestay/permissions"
	"homestay/shared/cache"
	"homestay/transport/http"
	"homestay/transport/http/middleware"
	"homestay/transport/http/router"

	"github.com/google/wire"
)

var configurations = wire.NewSet(
	config.Get,
	permissions.Get,
)

var infrastructures = wire.NewSet(
	postgres.New,
	otel.New,
	redis.New,
	jwt.New,
	kafka.New,
	s3.New,
)

var middlewares = wire.NewSet(
	middleware.NewAppMiddleware,
	middleware.NewAuthRoleMiddleware,
)

var sharedHelpers = wire.NewSet(
	cache.NewRedisCache,
)

var userDomain = wire.NewSet(
	userRepository.New,
	userService.New,
	authService.New,
)

var roomDomain = wire.NewSet(
	roomRepository.New,
	roomService.New,
)

var bookingDomain = wire.NewSet(
	bookingRepository.New,
	bookingService.New,
)

var reportDomain = wire.NewSet(
	reportService.New,
)

var domains = wire.NewSet(
	userDomain,
	roomDomain,
	bookingDomain,
	reportDomain,
)

var routing = wire.NewSet(
	wire.Struct(new(router.DomainHandlers), "*"),
	authHandler.New,
	userHandler.New,
	roomHandler.New,
	bookingHandler.New,
	reportHandler.New,
	router.New,
)

var worker = wire.NewSet(
	redis.AsynqOpt,
	jobs.NewRefreshStatusJob,
	jobs.NewWorker,
)

func InitializeService() *http.HTTP {
	wire.Build(
		configurations,
		infrastructures,
		middlewares,
		sharedHelpers,
		domains,
		routing,
		http.New,
	)

	return &http.HTTP{}
}

func InitializeWorker() (*jobs.Worker, error) {
	wire.Build(
		config.Get,
		postgres.New,
		otel.New,
		redis.New,
		kafka.New,
		sharedHelpers,
		bookingRepository.New,
		roomRepository.New,
		roomService.New,
		bookingService.New,
		worker,
	)

	return &jobs.Worker{}, nil
}
