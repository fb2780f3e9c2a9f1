// Package security provides concrete implementations for credential-related
// domain services.
package security

import (
	"crypto/rand"
	"crypto/subtle"
	"encoding/base64"
	"fmt"
	"strconv"
	"strings"

	"accountd/config"
	"accountd/internal/domain/service"
	"accountd/internal/errors"

	"golang.org/x/crypto/argon2"
)

const (
	argon2Variant = "argon2id"
	argon2Version = "v=19"
)

var (
	errInvalidHashFormat = errors.New("argon2: invalid encoded hash format")
	errInvalidSalt       = errors.New("argon2: invalid salt encoding")
)

// argon2Params holds the cost settings used when deriving new hashes.
type argon2Params struct {
	memory      uint32
	iterations  uint32
	parallelism uint8
	saltLength  uint32
	keyLength   uint32
}

var defaultParams = argon2Params{
	memory:      64 * 1024,
	iterations:  3,
	parallelism: 4,
	saltLength:  16,
	keyLength:   32,
}

// argon2Hasher is a concrete implementation of the PasswordHasher interface
// using Argon2id. The salt is an explicit input rather than an internal
// detail, because accounts store their salt separately and verification
// recomputes the hash from it.
type argon2Hasher struct {
	params argon2Params
}

// NewArgon2Hasher is the constructor for argon2Hasher. Cost settings come
// from config when present, library defaults otherwise. It returns the
// implementation as a service.PasswordHasher interface.
func NewArgon2Hasher(cfg *config.Config) service.PasswordHasher {
	params := defaultParams
	if cfg != nil && cfg.Auth != nil && cfg.Auth.Argon2 != nil {
		a := cfg.Auth.Argon2
		if a.Memory > 0 {
			params.memory = a.Memory
		}
		if a.Iterations > 0 {
			params.iterations = a.Iterations
		}
		if a.Parallelism > 0 {
			params.parallelism = a.Parallelism
		}
		if a.SaltLength > 0 {
			params.saltLength = a.SaltLength
		}
		if a.KeyLength > 0 {
			params.keyLength = a.KeyLength
		}
	}

	return &argon2Hasher{params: params}
}

// GenerateSalt returns a fresh random salt, base64 encoded for storage.
func (h *argon2Hasher) GenerateSalt() (string, error) {
	salt := make([]byte, h.params.saltLength)
	if _, err := rand.Read(salt); err != nil {
		return "", errors.Wrap(err, "argon2: generate salt")
	}

	return base64.RawStdEncoding.EncodeToString(salt), nil
}

// Hash derives the Argon2id hash of password from the given salt. The
// returned value embeds the parameters, salt, and digest in a portable
// format, so hashing the same password with the same salt and settings
// reproduces the identical encoded string.
func (h *argon2Hasher) Hash(password, salt string) (string, error) {
	rawSalt, err := base64.RawStdEncoding.DecodeString(salt)
	if err != nil {
		return "", errors.Wrap(errInvalidSalt, err.Error())
	}

	sum := argon2.IDKey([]byte(password), rawSalt, h.params.iterations, h.params.memory, h.params.parallelism, h.params.keyLength)

	// Format: argon2id$v=19$m=<memory>,t=<iterations>,p=<parallelism>$<salt>$<hash>
	encoded := strings.Join([]string{
		argon2Variant,
		argon2Version,
		fmt.Sprintf("m=%d,t=%d,p=%d", h.params.memory, h.params.iterations, h.params.parallelism),
		salt,
		base64.RawStdEncoding.EncodeToString(sum),
	}, "$")

	return encoded, nil
}

// Verify recomputes the hash of password from the stored salt and compares
// it against the stored encoded hash. Cost parameters are re-derived from
// the encoded hash itself, so credentials hashed under older settings still
// compare equal.
func (h *argon2Hasher) Verify(password, salt string, encoded []byte) bool {
	if password == "" || salt == "" || len(encoded) == 0 {
		return false
	}

	params, expected, err := decodeHash(string(encoded))
	if err != nil {
		return false
	}

	rawSalt, err := base64.RawStdEncoding.DecodeString(salt)
	if err != nil {
		return false
	}

	computed := argon2.IDKey([]byte(password), rawSalt, params.iterations, params.memory, params.parallelism, uint32(len(expected)))

	return subtle.ConstantTimeCompare(computed, expected) == 1
}

// decodeHash extracts the cost parameters and digest from an encoded hash.
func decodeHash(encoded string) (argon2Params, []byte, error) {
	parts := strings.Split(encoded, "$")
	if len(parts) != 5 {
		return argon2Params{}, nil, errInvalidHashFormat
	}

	if parts[0] != argon2Variant {
		return argon2Params{}, nil, errors.Errorf("argon2: unexpected variant %q", parts[0])
	}
	if parts[1] != argon2Version {
		return argon2Params{}, nil, errors.Errorf("argon2: unsupported version %q", parts[1])
	}

	params, err := parseParams(parts[2])
	if err != nil {
		return argon2Params{}, nil, err
	}

	digest, err := base64.RawStdEncoding.DecodeString(parts[4])
	if err != nil {
		return argon2Params{}, nil, errors.Wrap(err, "argon2: decode digest")
	}

	return params, digest, nil
}

func parseParams(segment string) (argon2Params, error) {
	entries := strings.Split(segment, ",")
	if len(entries) != 3 {
		return argon2Params{}, errInvalidHashFormat
	}

	var params argon2Params
	for _, entry := range entries {
		key, value, ok := strings.Cut(entry, "=")
		if !ok {
			return argon2Params{}, errInvalidHashFormat
		}

		switch key {
		case "m":
			v, err := strconv.ParseUint(value, 10, 32)
			if err != nil {
				return argon2Params{}, errors.Wrap(err, "argon2: parse m")
			}
			params.memory = uint32(v)
		case "t":
			v, err := strconv.ParseUint(value, 10, 32)
			if err != nil {
				return argon2Params{}, errors.Wrap(err, "argon2: parse t")
			}
			params.iterations = uint32(v)
		case "p":
			v, err := strconv.ParseUint(value, 10, 8)
			if err != nil {
				return argon2Params{}, errors.Wrap(err, "argon2: parse p")
			}
			params.parallelism = uint8(v)
		default:
			return argon2Params{}, errInvalidHashFormat
		}
	}

	return params, nil
}
