package logger

import (
	"bufio"
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFileOutputIsJSONLines(t *testing.T) {
	var term, file bytes.Buffer
	l := NewWithWriters(&term, &file)

	l.Info("tours", "created")
	l.LogAPI("GET", "/api/tours", 200, 3*time.Millisecond)

	sc := bufio.NewScanner(&file)
	var entries []Entry
	for sc.Scan() {
		var e Entry
		require.NoError(t, json.Unmarshal(sc.Bytes(), &e))
		entries = append(entries, e)
	}
	require.Len(t, entries, 2)
	assert.Equal(t, "TOURS", entries[0].Category)
	assert.Equal(t, "INFO", entries[0].Level)
	assert.Equal(t, "created", entries[0].Message)
	assert.Equal(t, "logger_test.go", entries[0].File)
	assert.Equal(t, "API", entries[1].Category)
	assert.Contains(t, entries[1].Message, "GET /api/tours - 200")
	assert.Contains(t, term.String(), "created")
}

func TestSetLevelFilters(t *testing.T) {
	var file bytes.Buffer
	l := NewWithWriters(nil, &file)
	l.SetLevel(WARN)

	l.Debug("x", "dropped")
	l.Info("x", "dropped")
	l.Warn("x", "kept")

	assert.NotContains(t, file.String(), "dropped")
	assert.Contains(t, file.String(), "kept")
}

func TestNewCreatesDailyFile(t *testing.T) {
	dir := t.TempDir()
	l, err := New(dir, "dashboard")
	require.NoError(t, err)
	l.Error("db", "boom")
	l.Close()

	name := filepath.Join(dir, "dashboard-"+time.Now().Format("2006-01-02")+".log")
	bs, err := os.ReadFile(name)
	require.NoError(t, err)
	assert.Contains(t, string(bs), `"message":"boom"`)
}

func TestNilAndDiscardAreSafe(t *testing.T) {
	var l *Logger
	assert.NotPanics(t, func() { l.Info("x", "y") })
	assert.NotPanics(t, func() { Discard().Error("x", "y") })
}
