// Package machine derives the code an account can be bound to.
package machine

import (
	"strconv"
	"sync"

	"github.com/google/uuid"
)

var (
	once   sync.Once
	cached string
)

// Code returns override when set, otherwise this host's uuid node id (the
// first usable hardware address, or a random multicast-flagged value) as a
// decimal integer.
func Code(override string) string {
	if override != "" {
		return override
	}
	once.Do(func() {
		cached = strconv.FormatUint(pack(uuid.NodeID()), 10)
	})
	return cached
}

// pack reads a 6-byte node id as a big-endian 48-bit integer.
func pack(node []byte) uint64 {
	var n uint64
	for _, c := range node {
		n = n<<8 | uint64(c)
	}
	return n
}
