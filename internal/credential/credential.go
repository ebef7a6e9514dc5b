// Package credential stores and checks operator passwords.
package credential

import (
	"crypto/rand"
	"crypto/subtle"
	"encoding/base64"
	"fmt"
	"strings"

	"golang.org/x/crypto/argon2"
)

// Hasher turns a password into its stored form and checks attempts against it.
type Hasher interface {
	Hash(password string) (string, error)
	Verify(stored, password string) bool
}

// Plaintext stores passwords as given.
type Plaintext struct{}

func (Plaintext) Hash(password string) (string, error) { return password, nil }

func (Plaintext) Verify(stored, password string) bool {
	return subtle.ConstantTimeCompare([]byte(stored), []byte(password)) == 1
}

const argon2idPrefix = "$argon2id$"

// Argon2id stores passwords in the PHC string format:
// $argon2id$v=19$m=65536,t=1,p=4$<salt>$<hash>
type Argon2id struct {
	Time    uint32
	Memory  uint32 // KiB
	Threads uint8
	KeyLen  uint32
	SaltLen int
}

func NewArgon2id() *Argon2id {
	return &Argon2id{Time: 1, Memory: 64 * 1024, Threads: 4, KeyLen: 32, SaltLen: 16}
}

func (a *Argon2id) Hash(password string) (string, error) {
	salt := make([]byte, a.SaltLen)
	if _, err := rand.Read(salt); err != nil {
		return "", fmt.Errorf("failed to generate salt: %w", err)
	}
	key := argon2.IDKey([]byte(password), salt, a.Time, a.Memory, a.Threads, a.KeyLen)

	b64 := base64.RawStdEncoding
	return fmt.Sprintf("%sv=%d$m=%d,t=%d,p=%d$%s$%s",
		argon2idPrefix, argon2.Version, a.Memory, a.Time, a.Threads,
		b64.EncodeToString(salt), b64.EncodeToString(key)), nil
}

// Verify also accepts plaintext values so records written before hashing
// was enabled keep working.
func (a *Argon2id) Verify(stored, password string) bool {
	if !IsHashed(stored) {
		return Plaintext{}.Verify(stored, password)
	}

	parts := strings.Split(stored, "$")
	if len(parts) != 6 {
		return false
	}

	var version int
	if _, err := fmt.Sscanf(parts[2], "v=%d", &version); err != nil || version != argon2.Version {
		return false
	}
	var memory, time uint32
	var threads uint8
	if _, err := fmt.Sscanf(parts[3], "m=%d,t=%d,p=%d", &memory, &time, &threads); err != nil {
		return false
	}

	b64 := base64.RawStdEncoding
	salt, err := b64.DecodeString(parts[4])
	if err != nil {
		return false
	}
	want, err := b64.DecodeString(parts[5])
	if err != nil {
		return false
	}

	got := argon2.IDKey([]byte(password), salt, time, memory, threads, uint32(len(want)))
	return subtle.ConstantTimeCompare(got, want) == 1
}

func IsHashed(stored string) bool {
	return strings.HasPrefix(stored, argon2idPrefix)
}

// New returns the argon2id hasher when hashing is enabled, plaintext otherwise.
func New(hashing bool) Hasher {
	if hashing {
		return NewArgon2id()
	}
	return Plaintext{}
}
