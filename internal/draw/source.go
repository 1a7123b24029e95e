//go:generate mockgen -package=mocks -destination=mocks/mock_source.go github.com/KirkDiggler/starwheel/internal/draw Source

package draw

import (
	"crypto/rand"
	"math/big"
	mrand "math/rand/v2"
	"sync"
)

// Source provides uniform random integers
type Source interface {
	// Intn returns a uniform value in [0, n). n must be positive.
	Intn(n int) int
}

type cryptoSource struct{}

// NewCryptoSource returns a source backed by crypto/rand
func NewCryptoSource() Source {
	return cryptoSource{}
}

func (cryptoSource) Intn(n int) int {
	if n <= 0 {
		panic("draw: Intn called with non-positive n")
	}
	v, err := rand.Int(rand.Reader, big.NewInt(int64(n)))
	if err != nil {
		panic("draw: crypto/rand unavailable: " + err.Error())
	}
	return int(v.Int64())
}

type seededSource struct {
	mu     sync.Mutex
	random *mrand.Rand
}

// NewSeededSource returns a reproducible source, safe for concurrent use
func NewSeededSource(seed uint64) Source {
	return &seededSource{
		random: mrand.New(mrand.NewPCG(seed, seed^0x9e3779b97f4a7c15)),
	}
}

func (s *seededSource) Intn(n int) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.random.IntN(n)
}
