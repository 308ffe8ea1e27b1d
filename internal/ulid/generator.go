// Package ulid mints node identifiers.
package ulid

import (
	"fmt"
	"io"
	"math/rand"
	"sync"
	"time"

	"github.com/oklog/ulid/v2"
)

var (
	entropy     io.Reader
	entropyOnce sync.Once

	mu        sync.Mutex
	generator = DefaultGenerator
)

// DefaultEntropy returns a process-wide monotonic entropy source.
func DefaultEntropy() io.Reader {
	entropyOnce.Do(func() {
		rng := rand.New(rand.NewSource(time.Now().UnixNano()))
		entropy = &ulid.LockedMonotonicReader{
			MonotonicReader: ulid.Monotonic(rng, 0),
		}
	})
	return entropy
}

// ValidID reports whether id parses as a ULID.
func ValidID(id string) bool {
	_, err := ulid.ParseStrict(id)
	return err == nil
}

// GenerateID returns a new identifier from the active generator.
func GenerateID() string {
	mu.Lock()
	gen := generator
	mu.Unlock()
	return gen()
}

func DefaultGenerator() string {
	return ulid.MustNew(ulid.Timestamp(time.Now()), DefaultEntropy()).String()
}

func ResetGenerator() {
	mu.Lock()
	defer mu.Unlock()
	generator = DefaultGenerator
}

// MockGenerator makes GenerateID return "<prefix>-1", "<prefix>-2", ...
// so tests can assert exact ids.
func MockGenerator(prefix string) {
	mu.Lock()
	defer mu.Unlock()
	n := 0
	generator = func() string {
		n++
		return fmt.Sprintf("%s-%d", prefix, n)
	}
}
