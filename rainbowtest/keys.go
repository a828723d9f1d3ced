package rainbowtest

import (
	"encoding/binary"
	"sync/atomic"

	"github.com/iov-one/rainbow"
)

var condSeq uint64

// NewCondition returns a condition that was never returned before within
// this process. Identities in rainbow are not backed by keys, the host
// authenticates callers, so a unique payload is all that is needed.
func NewCondition() rainbow.Condition {
	raw := make([]byte, 8)
	binary.BigEndian.PutUint64(raw, atomic.AddUint64(&condSeq, 1))
	return rainbow.NewCondition("test", "user", raw)
}

// NamedCondition returns the condition of a named user, the same way the
// command line client resolves callers.
func NamedCondition(name string) rainbow.Condition {
	return rainbow.NewCondition("user", "name", []byte(name))
}
