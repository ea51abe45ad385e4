package service

import (
	"crypto/rand"
	"crypto/subtle"
	"encoding/base64"
	"fmt"
	"math/big"
	"strings"

	"golang.org/x/crypto/argon2"
)

// Argon2id parameters for OTP digests. Codes are short-lived, so the work
// factor is kept below password-grade settings.
const (
	otpArgonTime    = 1
	otpArgonMemory  = 16 * 1024 // 16MB
	otpArgonThreads = 2
	otpArgonKeyLen  = 32
	otpArgonSaltLen = 16

	otpLength = 6
)

// OtpService implements ports.OtpChallenger. Stateless; all operations are
// pure functions over their input.
type OtpService struct{}

// NewOtpService creates a new OtpService.
func NewOtpService() *OtpService {
	return &OtpService{}
}

// Generate returns a fixed-length numeric one-time code from crypto/rand.
func (s *OtpService) Generate() (string, error) {
	var b strings.Builder
	for i := 0; i < otpLength; i++ {
		n, err := rand.Int(rand.Reader, big.NewInt(10))
		if err != nil {
			return "", fmt.Errorf("generating otp digit: %w", err)
		}
		b.WriteByte(byte('0' + n.Int64()))
	}
	return b.String(), nil
}

// Hash produces an Argon2id digest of the code for storage.
// Format: $argon2id$v=19$m=16384,t=1,p=2$<salt>$<hash>
func (s *OtpService) Hash(code string) (string, error) {
	salt := make([]byte, otpArgonSaltLen)
	if _, err := rand.Read(salt); err != nil {
		return "", fmt.Errorf("generating salt: %w", err)
	}

	hash := argon2.IDKey([]byte(code), salt, otpArgonTime, otpArgonMemory, otpArgonThreads, otpArgonKeyLen)

	return fmt.Sprintf(
		"$argon2id$v=%d$m=%d,t=%d,p=%d$%s$%s",
		argon2.Version,
		otpArgonMemory, otpArgonTime, otpArgonThreads,
		base64.RawStdEncoding.EncodeToString(salt),
		base64.RawStdEncoding.EncodeToString(hash),
	), nil
}

// Verify recomputes the digest with the stored salt and compares in constant
// time.
func (s *OtpService) Verify(code string, digest string) (bool, error) {
	salt, hash, params, err := decodeOtpDigest(digest)
	if err != nil {
		return false, err
	}

	other := argon2.IDKey([]byte(code), salt, params.time, params.memory, params.threads, params.keyLen)

	return subtle.ConstantTimeCompare(hash, other) == 1, nil
}

type otpDigestParams struct {
	memory  uint32
	time    uint32
	threads uint8
	keyLen  uint32
}

func decodeOtpDigest(digest string) (salt, hash []byte, params otpDigestParams, err error) {
	parts := strings.Split(digest, "$")
	if len(parts) != 6 {
		return nil, nil, params, fmt.Errorf("invalid digest format: expected 6 parts, got %d", len(parts))
	}

	if parts[1] != "argon2id" {
		return nil, nil, params, fmt.Errorf("unsupported algorithm: %s", parts[1])
	}

	var version int
	if _, err = fmt.Sscanf(parts[2], "v=%d", &version); err != nil {
		return nil, nil, params, fmt.Errorf("parsing version: %w", err)
	}

	if _, err = fmt.Sscanf(parts[3], "m=%d,t=%d,p=%d", &params.memory, &params.time, &params.threads); err != nil {
		return nil, nil, params, fmt.Errorf("parsing params: %w", err)
	}

	salt, err = base64.RawStdEncoding.DecodeString(parts[4])
	if err != nil {
		return nil, nil, params, fmt.Errorf("decoding salt: %w", err)
	}

	hash, err = base64.RawStdEncoding.DecodeString(parts[5])
	if err != nil {
		return nil, nil, params, fmt.Errorf("decoding hash: %w", err)
	}

	params.keyLen = uint32(len(hash))

	return salt, hash, params, nil
}
