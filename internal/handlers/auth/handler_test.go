package auth_test

import (
	"context"
	"net/http"
	"testing"

	otelMocks "homestay/infras/otel/mocks"
	"homestay/internal/domains/auth/model/dto"
	"homestay/internal/domains/auth/service/mocks"
	"homestay/internal/handlers/auth"
	"homestay/internal/handlers/handlertest"
	"homestay/shared/constant"
	"homestay/shared/failure"

	"github.com/stretchr/testify/assert"
	"go.uber.org/mock/gomock"
)

func setup(t *testing.T) (*mocks.MockAuth, auth.Handler) {
	t.Helper()

	svc := mocks.NewMockAuth(gomock.NewController(t))
	mw := handlertest.Admin()

	return svc, auth.New(svc, mw, mw, otelMocks.NewOtel())
}

func TestHandler_Login(t *testing.T) {
	t.Run("returns tokens", func(t *testing.T) {
		svc, handler := setup(t)

		req := dto.LoginRequest{Email: "admin@homestay.id", Password: "password"}
		svc.EXPECT().Login(gomock.Any(), req).Return(dto.LoginResponse{AccessToken: "access", TokenType: "Bearer"}, nil)

		rec := handlertest.Serve(t, handler.Router, http.MethodPost, "/v1/auth/login", req)

		assert.Equal(t, http.StatusOK, rec.Code)

		var res dto.LoginResponse
		handlertest.Decode(t, rec, &res)
		assert.Equal(t, "access", res.AccessToken)
	})

	t.Run("rejects malformed body", func(t *testing.T) {
		_, handler := setup(t)

		rec := handlertest.Serve(t, handler.Router, http.MethodPost, "/v1/auth/login", "{")

		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})

	t.Run("rejects invalid email", func(t *testing.T) {
		_, handler := setup(t)

		rec := handlertest.Serve(t, handler.Router, http.MethodPost, "/v1/auth/login",
			dto.LoginRequest{Email: "admin", Password: "password"})

		assert.Equal(t, http.StatusBadRequest, rec.Code)
		assert.Equal(t, "email must be a valid email address", handlertest.ErrorMessage(t, rec))
	})

	t.Run("wrong credentials", func(t *testing.T) {
		svc, handler := setup(t)

		svc.EXPECT().Login(gomock.Any(), gomock.Any()).Return(dto.LoginResponse{}, failure.Unauthorized("invalid email or password"))

		rec := handlertest.Serve(t, handler.Router, http.MethodPost, "/v1/auth/login",
			dto.LoginRequest{Email: "admin@homestay.id", Password: "nope"})

		assert.Equal(t, http.StatusUnauthorized, rec.Code)
		assert.Equal(t, "invalid email or password", handlertest.ErrorMessage(t, rec))
	})
}

func TestHandler_Register(t *testing.T) {
	t.Run("created", func(t *testing.T) {
		svc, handler := setup(t)

		req := dto.RegisterRequest{Email: "staff@homestay.id", Password: "rahasia123", FullName: "Staff"}
		svc.EXPECT().Register(gomock.Any(), req).
			DoAndReturn(func(ctx context.Context, _ dto.RegisterRequest) (string, error) {
				assert.Equal(t, "admin@homestay.id", ctx.Value(constant.ContextKeyUserEmail))

				return "u-new", nil
			})

		rec := handlertest.Serve(t, handler.Router, http.MethodPost, "/v1/auth/register", req)

		assert.Equal(t, http.StatusCreated, rec.Code)

		var res dto.RegisterResponse
		handlertest.Decode(t, rec, &res)
		assert.Equal(t, "u-new", res.ID)
	})

	t.Run("short password", func(t *testing.T) {
		_, handler := setup(t)

		rec := handlertest.Serve(t, handler.Router, http.MethodPost, "/v1/auth/register",
			dto.RegisterRequest{Email: "staff@homestay.id", Password: "short", FullName: "Staff"})

		assert.Equal(t, http.StatusBadRequest, rec.Code)
		assert.Equal(t, "password must be greater than or equal to 8", handlertest.ErrorMessage(t, rec))
	})

	t.Run("email taken", func(t *testing.T) {
		svc, handler := setup(t)

		svc.EXPECT().Register(gomock.Any(), gomock.Any()).Return("", failure.Conflict("email already registered"))

		rec := handlertest.Serve(t, handler.Router, http.MethodPost, "/v1/auth/register",
			dto.RegisterRequest{Email: "staff@homestay.id", Password: "rahasia123", FullName: "Staff"})

		assert.Equal(t, http.StatusConflict, rec.Code)
	})
}

func TestHandler_RefreshToken(t *testing.T) {
	svc, handler := setup(t)

	svc.EXPECT().RefreshToken(gomock.Any(), dto.RefreshTokenRequest{RefreshToken: "refresh"}).
		Return(dto.RefreshTokenResponse{AccessToken: "next"}, nil)

	rec := handlertest.Serve(t, handler.Router, http.MethodPost, "/v1/auth/refresh-token",
		dto.RefreshTokenRequest{RefreshToken: "refresh"})

	assert.Equal(t, http.StatusOK, rec.Code)

	var res dto.RefreshTokenResponse
	handlertest.Decode(t, rec, &res)
	assert.Equal(t, "next", res.AccessToken)
}

func TestHandler_ChangePassword(t *testing.T) {
	t.Run("changed", func(t *testing.T) {
		svc, handler := setup(t)

		req := dto.ChangePasswordRequest{CurrentPassword: "password", NewPassword: "rahasia123"}
		svc.EXPECT().ChangePassword(gomock.Any(), req).Return(nil)

		rec := handlertest.Serve(t, handler.Router, http.MethodPost, "/v1/auth/change-password", req)

		assert.Equal(t, http.StatusOK, rec.Code)
	})

	t.Run("same password", func(t *testing.T) {
		_, handler := setup(t)

		rec := handlertest.Serve(t, handler.Router, http.MethodPost, "/v1/auth/change-password",
			dto.ChangePasswordRequest{CurrentPassword: "rahasia123", NewPassword: "rahasia123"})

		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})

	t.Run("internal errors are masked", func(t *testing.T) {
		svc, handler := setup(t)

		svc.EXPECT().ChangePassword(gomock.Any(), gomock.Any()).Return(assert.AnError)

		rec := handlertest.Serve(t, handler.Router, http.MethodPost, "/v1/auth/change-password",
			dto.ChangePasswordRequest{CurrentPassword: "password", NewPassword: "rahasia123"})

		assert.Equal(t, http.StatusInternalServerError, rec.Code)
		assert.Equal(t, http.StatusText(http.StatusInternalServerError), handlertest.ErrorMessage(t, rec))
	})
}
