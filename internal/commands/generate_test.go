package commands_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/finprofile-dev/finprofile/internal/generator"
	"github.com/finprofile-dev/finprofile/internal/model"
)

func readTransactions(t *testing.T, path string) []model.Transaction {
	t.Helper()
	f, err := os.Open(path)
	require.NoError(t, err)
	defer f.Close()

	txns, err := generator.ReadTransactions(f)
	require.NoError(t, err)
	return txns
}

func TestGenerate_WritesBothFiles(t *testing.T) {
	dir, cfgPath := initProject(t, nil)

	out, _, err := runFinprofile(t, "generate", "--config", cfgPath, "--train-rows", "50", "--test-rows", "10")
	require.NoError(t, err)
	assert.Contains(t, out, "Wrote 50 transactions")
	assert.Contains(t, out, "Wrote 10 transactions")

	assert.Len(t, readTransactions(t, filepath.Join(dir, "data", "customer_transactions_train.csv")), 50)
	assert.Len(t, readTransactions(t, filepath.Join(dir, "data", "customer_transactions_test.csv")), 10)
}

func TestGenerate_Seed(t *testing.T) {
	dir, cfgPath := initProject(t, nil)
	trainPath := filepath.Join(dir, "data", "customer_transactions_train.csv")

	generate := func(seed string) []model.Transaction {
		_, _, err := runFinprofile(t, "generate", "--config", cfgPath, "--train-rows", "20", "--test-rows", "0", "--seed", seed)
		require.NoError(t, err)
		return readTransactions(t, trainPath)
	}

	a := generate("7")
	b := generate("7")
	c := generate("8")
	assert.Equal(t, a[0].ID, b[0].ID)
	assert.NotEqual(t, a[0].ID, c[0].ID)
}

func TestGenerate_BadRows(t *testing.T) {
	_, cfgPath := initProject(t, nil)
	_, _, err := runFinprofile(t, "generate", "--config", cfgPath, "--train-rows", "0")
	assert.Error(t, err)
}

func TestGenerate_MissingConfig(t *testing.T) {
	_, _, err := runFinprofile(t, "generate", "--config", filepath.Join(t.TempDir(), "none.yaml"))
	require.Error(t, err)
	assert.ErrorIs(t, err, os.ErrNotExist)
}
