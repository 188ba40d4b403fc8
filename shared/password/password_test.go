package password_test

import (
	"strings"
	"testing"

	"homestay/shared/password"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// hash of "password" used by the admin seed
const seededHash = "$2a$10$92IXUNpkjO0rOQ5byMi.Ye4oKoEa3Ro9llC/.og/at2.uheWG/igi"

func TestHash(t *testing.T) {
	tests := []struct {
		name     string
		password string
		err      error
		anyErr   bool
	}{
		{name: "regular password", password: "kamar-nomor-3"},
		{name: "empty password", password: "", err: password.ErrEmptyPassword},
		{name: "longer than bcrypt accepts", password: strings.Repeat("a", 73), anyErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			hash, err := password.Hash(tt.password)

			switch {
			case tt.err != nil:
				assert.ErrorIs(t, err, tt.err)
			case tt.anyErr:
				assert.Error(t, err)
			default:
				require.NoError(t, err)
				assert.True(t, strings.HasPrefix(hash, "$2a$"))
				assert.NoError(t, password.Verify(tt.password, hash))
			}
		})
	}
}

func TestVerify(t *testing.T) {
	tests := []struct {
		name     string
		password string
		hash     string
		err      error
		anyErr   bool
	}{
		{name: "seeded admin password", password: "password", hash: seededHash},
		{name: "wrong password", password: "passw0rd", hash: seededHash, err: password.ErrInvalidPassword},
		{name: "empty password", password: "", hash: seededHash, err: password.ErrInvalidPassword},
		{name: "empty hash", password: "password", hash: "", err: password.ErrInvalidPassword},
		{name: "malformed hash", password: "password", hash: "not-a-hash", anyErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := password.Verify(tt.password, tt.hash)

			switch {
			case tt.err != nil:
				assert.ErrorIs(t, err, tt.err)
			case tt.anyErr:
				assert.Error(t, err)
				assert.NotErrorIs(t, err, password.ErrInvalidPassword)
			default:
				assert.NoError(t, err)
			}
		})
	}
}

func TestHash_Salted(t *testing.T) {
	first, err := password.Hash("same")
	require.NoError(t, err)

	second, err := password.Hash("same")
	require.NoError(t, err)

	assert.NotEqual(t, first, second)
}
