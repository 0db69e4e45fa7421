package hash

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

// Golden vectors computed from the reference algorithm. These must never
// change: the values are persisted as de-duplication keys.
func TestOfGoldenVectors(t *testing.T) {
	cases := []struct {
		in   string
		want int64
	}{
		{"", -4953706369002393500}, // start value, no rounds
		{"a", -4841256518768840164},
		{"George Jungleman", 1792789643591129581},
		{"George Bungleman", -395150151804923620},
		{"415-888-8899", -129685527021768896},
		{"415-889-9988", 3336300740179396269},
		{"george@jungle.com", -4676353234505935471},
		{"1234 Main St, Anytown, CA 94537", 1485046216106639805},
		{"1234 Main St, Sometown, CA 94537", -4061216065506548481},
	}
	for _, c := range cases {
		assert.Equal(t, c.want, Of(c.in), "hash of %q", c.in)
	}
}

// Hashing walks UTF-16 code units, so non-ASCII and supplementary-plane
// runes must match the persisted scheme exactly.
func TestOfUnicode(t *testing.T) {
	assert.Equal(t, int64(723111014628995926), Of("Café"))
	assert.Equal(t, int64(-8924896037295575045), Of("\U0001D54F"))
}

func TestOfBytes(t *testing.T) {
	assert.Equal(t, int64(1781530916589092729), OfBytes([]byte("George")))
}

func TestOfDeterministic(t *testing.T) {
	for _, s := range []string{"", "x", "George Jungleman", "415-888-8899"} {
		assert.Equal(t, Of(s), Of(s))
	}
}

func TestOfDistinguishes(t *testing.T) {
	assert.NotEqual(t, Of("415-888-8899"), Of("415-888-8898"))
	assert.NotEqual(t, Of("George Jungleman"), Of("george jungleman"))
}
