package fortune

import (
	"crypto/rand"
	"encoding/binary"
	"strings"
	"time"

	"github.com/cespare/xxhash/v2"
)

// Seeder chooses the random seed for one draw.
type Seeder interface {
	Seed(prompt string, method Method) uint64
}

// RandomSeeder seeds every draw from crypto/rand.
type RandomSeeder struct{}

func (RandomSeeder) Seed(string, Method) uint64 {
	var b [8]byte
	if _, err := rand.Read(b[:]); err != nil {
		return uint64(time.Now().UnixNano())
	}
	return binary.LittleEndian.Uint64(b[:])
}

// DailySeeder derives the seed from the normalized prompt, the method and the
// UTC calendar day, so a question asked twice on the same day gets the same
// answer.
type DailySeeder struct {
	// Now overrides the clock. Defaults to time.Now.
	Now func() time.Time
}

func (s DailySeeder) Seed(prompt string, method Method) uint64 {
	now := time.Now
	if s.Now != nil {
		now = s.Now
	}
	day := now().UTC().Format(time.DateOnly)
	key := strings.ToLower(strings.Join(strings.Fields(prompt), " "))
	return xxhash.Sum64String(key + "|" + string(method) + "|" + day)
}
