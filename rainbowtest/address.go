package rainbowtest

import (
	"testing"

	"github.com/iov-one/rainbow"
)

// ParseAddress takes an address in a human readable format and returns
// its binary representation. This function is a test helper that is using
// rainbow.ParseAddress function functionality.
func ParseAddress(t testing.TB, encodedAddress string) rainbow.Address {
	t.Helper()

	addr, err := rainbow.ParseAddress(encodedAddress)
	if err != nil {
		t.Fatalf("cannot parse %q address: %s", encodedAddress, err)
	}
	return addr
}

// NewAddress returns the address of a freshly created condition.
func NewAddress() rainbow.Address {
	return NewCondition().Address()
}
