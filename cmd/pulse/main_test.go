package main

import (
	"bytes"
	"encoding/json"
	"log/slog"
	"testing"
	"time"

	corecfg "github.com/aevon-lab/merchant-pulse/internal/core/config"
	"github.com/aevon-lab/merchant-pulse/internal/ingestion"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewLogger(t *testing.T) {
	var buf bytes.Buffer
	logger := newLogger(&buf, corecfg.LoggingConfig{Level: "warn", Format: "json"})

	logger.Info("dropped")
	logger.Warn("[Runner] kept", "file", "activities_01.csv")

	var line map[string]interface{}
	require.NoError(t, json.Unmarshal(buf.Bytes(), &line))
	assert.Equal(t, "[Runner] kept", line["msg"])
	assert.Equal(t, "activities_01.csv", line["file"])
}

func TestParseLevel(t *testing.T) {
	assert.Equal(t, slog.LevelDebug, parseLevel("debug"))
	assert.Equal(t, slog.LevelInfo, parseLevel("info"))
	assert.Equal(t, slog.LevelWarn, parseLevel("warn"))
	assert.Equal(t, slog.LevelError, parseLevel("error"))
	assert.Equal(t, slog.LevelInfo, parseLevel(""))
}

func TestPrintSummaries(t *testing.T) {
	t.Run("empty pass prints an array", func(t *testing.T) {
		var buf bytes.Buffer
		require.NoError(t, printSummaries(&buf, nil))
		assert.JSONEq(t, `[]`, buf.String())
	})

	t.Run("failed file is reported", func(t *testing.T) {
		var buf bytes.Buffer
		err := printSummaries(&buf, []ingestion.RunSummary{
			{File: "activities_01.csv", State: ingestion.StateCompleted},
			{File: "activities_02.csv", State: ingestion.StateFailed, Error: "missing required columns"},
		})
		require.EqualError(t, err, "1 of 2 files failed")
		assert.Contains(t, buf.String(), `"activities_02.csv"`)
	})
}

func TestRootCommand(t *testing.T) {
	root := newRootCmd()

	flag := root.PersistentFlags().Lookup("config")
	require.NotNil(t, flag)
	assert.Equal(t, corecfg.DefaultConfigPath, flag.DefValue)

	for _, path := range [][]string{{"serve"}, {"ingest"}, {"migrate", "up"}, {"migrate", "down"}, {"migrate", "status"}} {
		cmd, _, err := root.Find(path)
		require.NoError(t, err, path)
		assert.NotNil(t, cmd.RunE, path)
	}
}

func TestProgressObserver(t *testing.T) {
	var buf bytes.Buffer
	p := newProgressObserver(&buf)

	p.BatchWritten(128, 128, time.Millisecond)
	p.FileFinished(ingestion.RunSummary{File: "activities_01.csv", State: ingestion.StateCompleted})
	p.finish()

	assert.Contains(t, buf.String(), "activities_01.csv")
}
