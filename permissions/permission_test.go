package permissions_test

import (
	"testing"

	"homestay/permissions"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGet(t *testing.T) {
	data := permissions.Get()

	require.NotNil(t, data)
	assert.NotEmpty(t, data.Endpoints)
	assert.True(t, data.FindPermissions("/v1/auth/login", "POST").Skip)
	assert.Equal(t, []string{"admin"}, data.FindPermissions("/v1/auth/register", "POST").Permissions)
}

func TestPermissionData_FindPermissions(t *testing.T) {
	data, err := permissions.Parse([]byte(`{"endpoints":[
		{"path":"/v1/rooms","method":"POST","permissions":["admin"]},
		{"path":"/v1/rooms/{id}","method":"GET","permissions":["admin","staff"]}
	]}`))
	require.NoError(t, err)

	assert.Equal(t, []string{"admin"}, data.FindPermissions("/v1/rooms/", "POST").Permissions)
	assert.Equal(t, []string{"admin", "staff"}, data.FindPermissions("/v1/rooms/{id}", "GET").Permissions)
	assert.Empty(t, data.FindPermissions("/v1/rooms/{id}", "DELETE").Permissions)
}

func TestParse_Malformed(t *testing.T) {
	_, err := permissions.Parse([]byte(`{`))

	assert.Error(t, err)
}
