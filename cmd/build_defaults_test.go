package cmd

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseCredentials(t *testing.T) {
	email, password, err := ParseCredentials("admin@example.com:pa:ss")
	require.NoError(t, err)
	assert.Equal(t, "admin@example.com", email)
	assert.Equal(t, "pa:ss", password)

	for _, raw := range []string{"", "admin", ":password", "admin:"} {
		_, _, err := ParseCredentials(raw)
		assert.Error(t, err, raw)
	}
}

func TestClientCommands(t *testing.T) {
	for _, name := range []string{"login", "register", "sessions", "create", "delete", "send", "extract", "generate", "download"} {
		assert.NotNil(t, GetClientCmd(name), name)
	}
	assert.Nil(t, GetClientCmd("proxy"))
}
