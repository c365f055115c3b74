package booking

import (
	"encoding/binary"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
)

const (
	idPrefix     = "BK"
	idSuffixSize = 5
)

// IDGenerator produces booking identifiers.
type IDGenerator interface {
	NewID() string
}

// IDFunc adapts a plain function to IDGenerator.
type IDFunc func() string

func (f IDFunc) NewID() string {
	return f()
}

// TimeIDs builds identifiers as "BK" + unix millis + a random upper-case
// suffix, so two ids minted in the same millisecond still differ.
type TimeIDs struct {
	Now    func() time.Time
	Random func() string
}

func NewTimeIDs() TimeIDs {
	return TimeIDs{Now: time.Now, Random: randomSuffix}
}

func (g TimeIDs) NewID() string {
	now := g.Now
	if now == nil {
		now = time.Now
	}
	random := g.Random
	if random == nil {
		random = randomSuffix
	}
	return idPrefix + strconv.FormatInt(now().UnixMilli(), 10) + random()
}

func randomSuffix() string {
	id := uuid.New()
	n := binary.BigEndian.Uint64(id[:8])
	raw := strings.ToUpper(strconv.FormatUint(n, 36))
	if len(raw) < idSuffixSize {
		raw = strings.Repeat("0", idSuffixSize-len(raw)) + raw
	}
	return raw[len(raw)-idSuffixSize:]
}
