package auth

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHashPasswordRoundTrip(t *testing.T) {
	hash, err := HashPassword("rahasia123")
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(hash, "$argon2id$v=19$m=65536,t=1,p=2$"))

	ok, err := CheckPassword(hash, "rahasia123")
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = CheckPassword(hash, "salah")
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestHashPasswordUsesFreshSalt(t *testing.T) {
	a, err := HashPassword("same")
	require.NoError(t, err)
	b, err := HashPassword("same")
	require.NoError(t, err)
	assert.NotEqual(t, a, b)
}

func TestCheckPasswordMalformed(t *testing.T) {
	for _, encoded := range []string{"", "plaintext", "$bcrypt$v=19$m=1,t=1,p=1$a$b", "$argon2id$v=19$m=x$a$b"} {
		_, err := CheckPassword(encoded, "pw")
		assert.ErrorIs(t, err, ErrMalformedHash, "encoded %q", encoded)
	}
}
