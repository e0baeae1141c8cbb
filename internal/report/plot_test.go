package report

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/finprofile-dev/finprofile/internal/metrics"
)

func TestLearningCurve(t *testing.T) {
	r := metrics.NewRecorder()
	for epoch := 1; epoch <= 3; epoch++ {
		r.At(1, epoch)
		r.Record(metrics.CategoryTrain, 0.5+0.1*float64(epoch), 0, 0)
		r.Record(metrics.CategoryValidation, 0.4+0.1*float64(epoch), 0, 0)
	}

	path := filepath.Join(t.TempDir(), "curve.png")
	require.NoError(t, LearningCurve(r.Results(), path))

	info, err := os.Stat(path)
	require.NoError(t, err)
	assert.Greater(t, info.Size(), int64(0))
}

func TestLearningCurve_NoScores(t *testing.T) {
	err := LearningCurve(nil, filepath.Join(t.TempDir(), "curve.png"))
	assert.Error(t, err)
}
