package api

import (
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerateTokenIsUnique(t *testing.T) {
	a, err := GenerateToken("same")
	require.NoError(t, err)
	b, err := GenerateToken("same")
	require.NoError(t, err)

	assert.Len(t, a, 32)
	assert.NotEqual(t, a, b)
}

func TestSessionCookie(t *testing.T) {
	r := httptest.NewRequest("POST", "/user/login", nil)
	cookie := SessionCookie(r, "", "tok", time.Now().Add(time.Hour))
	assert.Equal(t, SessionCookieName, cookie.Name)
	assert.True(t, cookie.HttpOnly)
	assert.False(t, cookie.Secure)
	assert.Greater(t, cookie.MaxAge, 0)

	r.Header.Set("X-Forwarded-Proto", "https")
	cleared := SessionCookie(r, "", "", time.Time{})
	assert.True(t, cleared.Secure)
	assert.Equal(t, -1, cleared.MaxAge)
}
