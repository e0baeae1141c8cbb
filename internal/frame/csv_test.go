package frame

import (
	"bytes"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sample = `future_transaction,transaction_id,customer_name,amount
1,a1,Alice,12.50
0,b2,Bob,3.00
1,c3,Alice,40.10
`

func TestReadCSV(t *testing.T) {
	tbl, err := ReadCSV(strings.NewReader(sample))
	require.NoError(t, err)

	assert.Equal(t, []string{"future_transaction", "transaction_id", "customer_name", "amount"}, tbl.Header)
	require.Len(t, tbl.Rows, 3)
	assert.Equal(t, "Bob", tbl.Rows[1][2])
}

func TestReadCSV_Empty(t *testing.T) {
	_, err := ReadCSV(strings.NewReader(""))
	assert.ErrorIs(t, err, ErrNoHeader)
}

func TestReadCSV_Ragged(t *testing.T) {
	_, err := ReadCSV(strings.NewReader("a,b\n1,2,3\n"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "reading CSV")
}

func TestReadFile_NotFound(t *testing.T) {
	_, err := ReadFile(filepath.Join(t.TempDir(), "missing.csv"))
	require.Error(t, err)
}

func TestWriteCSV_RoundTrip(t *testing.T) {
	tbl, err := ReadCSV(strings.NewReader(sample))
	require.NoError(t, err)

	var buf bytes.Buffer
	require.NoError(t, WriteCSV(&buf, tbl))
	assert.Equal(t, sample, buf.String())
}

func TestColumn(t *testing.T) {
	tbl, err := ReadCSV(strings.NewReader(sample))
	require.NoError(t, err)

	names, err := tbl.Column("customer_name")
	require.NoError(t, err)
	assert.Equal(t, []string{"Alice", "Bob", "Alice"}, names)

	_, err = tbl.Column("nope")
	assert.Error(t, err)
}

func TestDrop(t *testing.T) {
	tbl, err := ReadCSV(strings.NewReader(sample))
	require.NoError(t, err)

	out := tbl.Drop("transaction_id", "not_there")
	assert.Equal(t, []string{"future_transaction", "customer_name", "amount"}, out.Header)
	assert.Equal(t, []string{"0", "Bob", "3.00"}, out.Rows[1])

	// Source table is untouched.
	assert.Len(t, tbl.Header, 4)
}
