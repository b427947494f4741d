package password

import (
	"github.com/alexedwards/argon2id"
)

var DefaultParams = &argon2id.Params{
	Memory:      64 * 1024, // 64 MiB
	Iterations:  2,
	Parallelism: 4,
	SaltLength:  16,
	KeyLength:   32,
}

// Hasher hashes and verifies raw passwords with argon2id.
// The pepper, when set, is appended to every raw password.
type Hasher struct {
	params *argon2id.Params
	pepper string
}

func NewHasher(pepper string) *Hasher {
	return NewHasherWithParams(pepper, DefaultParams)
}

func NewHasherWithParams(pepper string, params *argon2id.Params) *Hasher {
	return &Hasher{params: params, pepper: pepper}
}

func (h *Hasher) Hash(raw string) (string, error) {
	return argon2id.CreateHash(raw+h.pepper, h.params)
}

// Verify reports whether raw matches digest. A malformed digest never matches.
func (h *Hasher) Verify(raw, digest string) bool {
	ok, err := argon2id.ComparePasswordAndHash(raw+h.pepper, digest)
	return err == nil && ok
}
