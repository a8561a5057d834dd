package chathub

import (
	"math/rand"
	"strconv"
)

// guestPrefix is the fixed label every generated display name starts with.
const guestPrefix = "Guest"

// guestSuffixRange bounds the random numeric suffix.
const guestSuffixRange = 10000

// GuestName produces a display name like "Guest4821". There is no uniqueness
// guard: two connections can end up with the same name, and clients see that.
func GuestName() string {
	return guestPrefix + strconv.Itoa(rand.Intn(guestSuffixRange))
}
