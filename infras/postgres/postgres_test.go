package postgres_test

import (
	"context"
	"errors"
	"testing"

	"homestay/infras/postgres"

	"github.com/stretchr/testify/assert"
)

func TestDSN(t *testing.T) {
	tests := []struct {
		name     string
		password string
		timezone string
		expected string
	}{
		{
			name:     "plain credentials",
			password: "secret",
			expected: "postgres://homestay:secret@db:5432/homestay?sslmode=disable",
		},
		{
			name:     "password is escaped",
			password: "p@ss/word",
			expected: "postgres://homestay:p%40ss%2Fword@db:5432/homestay?sslmode=disable",
		},
		{
			name:     "timezone is forwarded",
			password: "secret",
			timezone: "Asia/Jakarta",
			expected: "postgres://homestay:secret@db:5432/homestay?sslmode=disable&timezone=Asia%2FJakarta",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			dsn := postgres.DSN("homestay", tt.password, "db", "5432", "homestay", "disable", tt.timezone)

			assert.Equal(t, tt.expected, dsn)
		})
	}
}

func TestConnection_PingWithoutPools(t *testing.T) {
	conn := &postgres.Connection{}

	err := conn.Ping(context.Background())

	assert.True(t, errors.Is(err, postgres.ErrNotConnected))
}
