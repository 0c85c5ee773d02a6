package plearn

import (
	"bytes"
	"context"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestStructuredLogging(t *testing.T) {
	var buf bytes.Buffer
	logger := NewLogger(slog.NewJSONHandler(&buf, &slog.HandlerOptions{
		Level: slog.LevelDebug,
	}))

	learner, err := New(fixedSolver(0.9, 0.1), WithIterations(5), WithLogger(logger))
	require.NoError(t, err)

	_, err = learner.Fit(context.Background(), singleFactProgram(nil), boolObs(t))
	require.NoError(t, err)

	logOutput := buf.String()
	require.Contains(t, logOutput, "publish completed")
	require.Contains(t, logOutput, "fit completed")
	require.Contains(t, logOutput, `"workers":1`)
}

func TestIterationLoggingThrottled(t *testing.T) {
	var buf bytes.Buffer
	logger := NewLogger(slog.NewJSONHandler(&buf, &slog.HandlerOptions{
		Level: slog.LevelDebug,
	}))

	learner, err := New(fixedSolver(0.9, 0.1), WithIterations(5), WithLogger(logger))
	require.NoError(t, err)

	_, err = learner.Fit(context.Background(), singleFactProgram(nil), boolObs(t))
	require.NoError(t, err)

	logOutput := buf.String()

	// The iterations run far faster than the limiter refills, so only the
	// first record gets through it; the final iteration is logged regardless.
	require.Contains(t, logOutput, `"iteration":1`)
	require.Contains(t, logOutput, `"iteration":5`)
	require.NotContains(t, logOutput, `"iteration":3`)
}
