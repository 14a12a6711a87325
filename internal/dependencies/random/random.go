package random

import (
	"crypto/rand"
	"math/big"
)

// Random is the source of randomness for target selection and token
// minting. Tests swap in a queued mock.
type Random interface {
	// Intn returns a random int in [0, n)
	Intn(n int) int

	// String mints a random string of the given length drawn from alphabet
	String(length int, alphabet string) string
}

// CryptoRandom implements Random on crypto/rand. Identity tokens are
// bearer credentials, so math/rand is not an option here.
type CryptoRandom struct{}

// New creates a new CryptoRandom
func New() *CryptoRandom {
	return &CryptoRandom{}
}

// Intn returns a cryptographically random int in [0, n)
func (r *CryptoRandom) Intn(n int) int {
	if n <= 0 {
		return 0
	}
	v, err := rand.Int(rand.Reader, big.NewInt(int64(n)))
	if err != nil {
		// crypto/rand only fails when the OS entropy source is broken
		return 0
	}
	return int(v.Int64())
}

// String mints a random string of the given length drawn from alphabet
func (r *CryptoRandom) String(length int, alphabet string) string {
	if length <= 0 || len(alphabet) == 0 {
		return ""
	}
	out := make([]byte, length)
	for i := range out {
		out[i] = alphabet[r.Intn(len(alphabet))]
	}
	return string(out)
}
