package service

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOtpService_Generate_SixDigits(t *testing.T) {
	svc := NewOtpService()

	for i := 0; i < 20; i++ {
		code, err := svc.Generate()
		require.NoError(t, err)
		require.Len(t, code, 6)
		for _, c := range code {
			assert.True(t, c >= '0' && c <= '9', "non-digit character %q in code %s", c, code)
		}
	}
}

func TestOtpService_HashAndVerify_Roundtrip(t *testing.T) {
	svc := NewOtpService()

	code, err := svc.Generate()
	require.NoError(t, err)

	digest, err := svc.Hash(code)
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(digest, "$argon2id$"))
	assert.NotContains(t, digest, code)

	match, err := svc.Verify(code, digest)
	require.NoError(t, err)
	assert.True(t, match)
}

func TestOtpService_Verify_WrongCode(t *testing.T) {
	svc := NewOtpService()

	digest, err := svc.Hash("123456")
	require.NoError(t, err)

	match, err := svc.Verify("654321", digest)
	require.NoError(t, err)
	assert.False(t, match)
}

func TestOtpService_Hash_UniqueSalts(t *testing.T) {
	svc := NewOtpService()

	d1, err := svc.Hash("123456")
	require.NoError(t, err)
	d2, err := svc.Hash("123456")
	require.NoError(t, err)

	assert.NotEqual(t, d1, d2)
}

func TestOtpService_Verify_MalformedDigest(t *testing.T) {
	svc := NewOtpService()

	_, err := svc.Verify("123456", "not-a-digest")
	assert.Error(t, err)

	_, err = svc.Verify("123456", "$bcrypt$v=19$m=16384,t=1,p=2$c2FsdA$aGFzaA")
	assert.Error(t, err)
}
