package machine

import (
	"strconv"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOverrideWins(t *testing.T) {
	assert.Equal(t, "123456", Code("123456"))
}

func TestPackIsBigEndian(t *testing.T) {
	assert.Equal(t, uint64(0x0242ac110002), pack([]byte{0x02, 0x42, 0xac, 0x11, 0x00, 0x02}))
}

func TestCodeMatchesNodeID(t *testing.T) {
	code := Code("")

	n, err := strconv.ParseUint(code, 10, 64)
	require.NoError(t, err)
	assert.Less(t, n, uint64(1)<<48)
	assert.Equal(t, pack(uuid.NodeID()), n)
	assert.Equal(t, code, Code(""), "stable for the life of the process")
}
