package log

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/YuminosukeSato/linbench/pkg/errors"
)

func decodeLines(t *testing.T, buf *bytes.Buffer) []map[string]interface{} {
	t.Helper()
	var out []map[string]interface{}
	for _, line := range strings.Split(strings.TrimSpace(buf.String()), "\n") {
		if line == "" {
			continue
		}
		var entry map[string]interface{}
		require.NoError(t, json.Unmarshal([]byte(line), &entry))
		out = append(out, entry)
	}
	return out
}

func TestZerologLogger_Levels(t *testing.T) {
	var buf bytes.Buffer
	logger := NewZerologLogger(&buf, LevelInfo)

	logger.Debug("hidden")
	logger.Info("epoch finished", EpochKey, 2, TrainLossKey, 0.5)
	logger.Warn("slow epoch")

	entries := decodeLines(t, &buf)
	require.Len(t, entries, 2)
	assert.Equal(t, "epoch finished", entries[0]["message"])
	assert.Equal(t, "info", entries[0]["level"])
	assert.Equal(t, 2.0, entries[0][EpochKey])
	assert.Equal(t, 0.5, entries[0][TrainLossKey])
	assert.Equal(t, "warn", entries[1]["level"])

	assert.False(t, logger.Enabled(context.Background(), LevelDebug))
	assert.True(t, logger.Enabled(context.Background(), LevelError))
}

func TestZerologLogger_With(t *testing.T) {
	var buf bytes.Buffer
	logger := NewZerologLogger(&buf, LevelDebug).With(ModelNameKey, "LinearSVM")

	logger.Debug("step", PhaseKey, PhaseTraining)

	entries := decodeLines(t, &buf)
	require.Len(t, entries, 1)
	assert.Equal(t, "LinearSVM", entries[0][ModelNameKey])
	assert.Equal(t, PhaseTraining, entries[0][PhaseKey])
}

func TestZerologLogger_ErrorWithStack(t *testing.T) {
	var buf bytes.Buffer
	logger := NewZerologLogger(&buf, LevelInfo)

	err := errors.NewIndexError("Dataset.Get", 4, 2)
	logger.Error("training aborted", err, EpochKey, 1)

	entries := decodeLines(t, &buf)
	require.Len(t, entries, 1)
	assert.Contains(t, entries[0][ErrAttrKey], "index 4 out of range")
	assert.Contains(t, entries[0], StacktraceAttrKey)
	assert.Equal(t, 1.0, entries[0][EpochKey])
}

func TestZerologLogger_ErrorDetail(t *testing.T) {
	var buf bytes.Buffer
	logger := NewZerologLogger(&buf, LevelInfo)

	err := errors.Wrapf(errors.NewDimensionError("Linear.Forward", 3, 2, 1), "epoch %d", 4)
	logger.Error("training aborted", err)
	logger.Warn("bad option", "cause", errors.NewValidationError("lr", "must be positive", -1.0))
	logger.Error("plain failure", errors.New("no structure"))

	entries := decodeLines(t, &buf)
	require.Len(t, entries, 3)

	detail, ok := entries[0][ErrDetailAttrKey].(map[string]interface{})
	require.True(t, ok, "entry: %v", entries[0])
	assert.Equal(t, "DimensionError", detail["type"])
	assert.Equal(t, "Linear.Forward", detail["operation"])
	assert.Equal(t, 3.0, detail["expected"])
	assert.Equal(t, 2.0, detail["got"])

	cause, ok := entries[1]["cause_detail"].(map[string]interface{})
	require.True(t, ok, "entry: %v", entries[1])
	assert.Equal(t, "ValidationError", cause["type"])
	assert.Equal(t, "lr", cause["param_name"])

	assert.NotContains(t, entries[2], ErrDetailAttrKey)
}

func TestZerologProvider(t *testing.T) {
	var buf bytes.Buffer
	p := NewZerologProvider(&buf, LevelWarn)

	p.GetLoggerWithName("train").Info("dropped")
	p.SetLevel(LevelInfo)
	p.GetLoggerWithName("train").Info("kept")

	entries := decodeLines(t, &buf)
	require.Len(t, entries, 1)
	assert.Equal(t, "kept", entries[0]["message"])
	assert.Equal(t, "train", entries[0][ComponentKey])
}

func TestParseLevel(t *testing.T) {
	tests := []struct {
		in   string
		want Level
	}{
		{"debug", LevelDebug},
		{"info", LevelInfo},
		{"warn", LevelWarn},
		{"error", LevelError},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseLevel(tt.in)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
			assert.Equal(t, strings.ToUpper(tt.in), got.String())
		})
	}

	_, err := ParseLevel("verbose")
	var valErr *errors.ValidationError
	assert.True(t, errors.As(err, &valErr))
}

func TestTestLogger(t *testing.T) {
	testLogger, buffer := NewTestLogger(LevelInfo)

	testLogger.Debug("debug message")
	ctxLogger := testLogger.With(ModelNameKey, "LinearRegression")
	ctxLogger.Info("epoch finished", EpochKey, 3)
	ctxLogger.Error("failed", fmt.Errorf("boom"))

	assert.NotContains(t, buffer.String(), "debug message")
	assert.True(t, testLogger.ContainsMessage("epoch finished"))
	assert.True(t, testLogger.ContainsField(ModelNameKey, "LinearRegression"))
	assert.True(t, testLogger.ContainsField(EpochKey, 3.0))
	assert.True(t, testLogger.ContainsField(ErrAttrKey, "boom"))

	entries, err := testLogger.GetLogEntries()
	require.NoError(t, err)
	assert.Len(t, entries, 2)

	testLogger.Clear()
	assert.Empty(t, buffer.String())
}
