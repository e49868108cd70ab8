package csvio

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestReadRowsKeysByHeader(t *testing.T) {
	src := "\ufeffName,Price\nTea,10\nCoffee\n"

	rows, err := ReadRows(strings.NewReader(src))
	require.NoError(t, err)
	require.Len(t, rows, 2)

	assert.Equal(t, "Tea", rows[0].Get("name", "Name"))
	assert.Equal(t, "10", rows[0].Get("price", "Price"))
	_, present := rows[1]["Price"]
	assert.False(t, present, "short rows leave trailing columns absent")
}

func TestReadRowsEmptyDocument(t *testing.T) {
	rows, err := ReadRows(strings.NewReader(""))
	require.NoError(t, err)
	assert.Empty(t, rows)
}

func TestReadRowsReportsLine(t *testing.T) {
	_, err := ReadRows(strings.NewReader("name\n\"unterminated\n"))
	assert.ErrorContains(t, err, "line")
}

func TestWriteQuotesWhenNeeded(t *testing.T) {
	out, err := Write([]string{"id", "name"}, [][]string{{"1", "Tea, black"}})
	require.NoError(t, err)
	assert.Equal(t, "id,name\n1,\"Tea, black\"\n", string(out))
}
