package id

import (
	cryptoRand "crypto/rand"
	"encoding/binary"
	"io"
	"math/rand"
	"sync"
	"time"

	"github.com/oklog/ulid/v2"
)

var (
	mu   sync.Mutex
	mono io.Reader
)

func init() {
	// ulid.Monotonic keeps IDs made within the same millisecond increasing.
	var seed int64
	_ = binary.Read(cryptoRand.Reader, binary.LittleEndian, &seed)
	if seed == 0 {
		seed = time.Now().UnixNano()
	}

	mono = ulid.Monotonic(rand.New(rand.NewSource(seed)), 0)
}

// New returns a ULID string. ULIDs sort by creation time, so journal rows
// keyed by them list in the order they were entered.
func New() string {
	return At(time.Now())
}

// At returns a ULID whose timestamp part is t. The journal uses it so a
// trade imported years later still gets an ID that sorts by its trade date.
func At(t time.Time) string {
	mu.Lock()
	defer mu.Unlock()

	id, err := ulid.New(ulid.Timestamp(t.UTC()), mono)
	if err != nil {
		// only possible when t is before the epoch or past year 10889
		id = ulid.MustNew(ulid.Timestamp(time.Now().UTC()), mono)
	}
	return id.String()
}

// Valid reports whether s is a well-formed ULID.
func Valid(s string) bool {
	_, err := ulid.ParseStrict(s)
	return err == nil
}
