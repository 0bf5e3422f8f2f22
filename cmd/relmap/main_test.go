package main

import (
	"bytes"
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func execute(t *testing.T, args ...string) (int, string, string) {
	t.Helper()
	var stdout, stderr bytes.Buffer
	code := run(context.Background(), args, &stdout, &stderr)
	return code, stdout.String(), stderr.String()
}

func TestRun(t *testing.T) {
	tests := []struct {
		name     string
		args     []string
		code     int
		contains []string
	}{
		{
			name:     "valid document",
			args:     []string{"testdata/valid.yaml"},
			contains: []string{"testdata/valid.yaml: Ok"},
		},
		{
			name:     "invalid model",
			args:     []string{"testdata/valid.yaml", "testdata/invalid.yaml"},
			code:     1,
			contains: []string{"testdata/valid.yaml: Ok", "testdata/invalid.yaml: Invalid Model", "'Blog.Name'"},
		},
		{
			name:     "load error",
			args:     []string{"testdata/unresolved.yaml"},
			code:     1,
			contains: []string{"Load Error", `unknown principal type "Blog"`},
		},
		{
			name:     "logged warning",
			args:     []string{"testdata/warning.yaml"},
			contains: []string{"testdata/warning.yaml: Ok", "  warning BoolWithDefaultWarning: "},
		},
		{
			name:     "warning configured to throw",
			args:     []string{"-warnings", "testdata/throw.yaml", "testdata/warning.yaml"},
			code:     1,
			contains: []string{"Warning As Error"},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			code, out, _ := execute(t, tt.args...)
			assert.Equal(t, tt.code, code)
			for _, s := range tt.contains {
				assert.Contains(t, out, s)
			}
		})
	}
}

func TestRunUsage(t *testing.T) {
	tests := []struct {
		name     string
		args     []string
		contains string
	}{
		{name: "no documents", contains: "no model documents"},
		{name: "unknown format", args: []string{"-format", "xml", "testdata/valid.yaml"}, contains: `unknown format "xml"`},
		{name: "unknown flag", args: []string{"-strict", "testdata/valid.yaml"}, contains: "-strict"},
		{name: "missing warnings file", args: []string{"-warnings", "testdata/missing.yaml", "testdata/valid.yaml"}, contains: "missing.yaml"},
		{name: "missing config file", args: []string{"-config", "testdata/missing.yaml"}, contains: "read config"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			code, _, errOut := execute(t, tt.args...)
			assert.Equal(t, 2, code)
			assert.Contains(t, errOut, tt.contains)
		})
	}
}

func TestRunJSON(t *testing.T) {
	code, out, _ := execute(t, "-format", "json", "testdata/invalid.yaml", "testdata/warning.yaml")
	assert.Equal(t, 1, code)

	var results []result
	dec := json.NewDecoder(strings.NewReader(out))
	for dec.More() {
		var res result
		require.NoError(t, dec.Decode(&res))
		results = append(results, res)
	}
	require.Len(t, results, 2)
	assert.Equal(t, statusInvalid, results[0].Status)
	assert.Equal(t, "TableOverrideMismatch", results[0].Code)
	assert.Equal(t, statusOK, results[1].Status)
	require.Len(t, results[1].Warnings, 1)
	assert.Equal(t, "BoolWithDefaultWarning", results[1].Warnings[0].Event)
}

func TestConfigFile(t *testing.T) {
	cfg, err := parseFlags([]string{"-config", "testdata/relmap.yaml"}, &bytes.Buffer{})
	require.NoError(t, err)
	assert.Equal(t, []string{
		filepath.Join("testdata", "valid.yaml"),
		filepath.Join("testdata", "warning.yaml"),
	}, cfg.Models)
	assert.Equal(t, formatJSON, cfg.Format)

	// Flags and arguments override the file.
	cfg, err = parseFlags([]string{"-config", "testdata/relmap.yaml", "-format", "text", "testdata/invalid.yaml"}, &bytes.Buffer{})
	require.NoError(t, err)
	assert.Equal(t, []string{"testdata/invalid.yaml"}, cfg.Models)
	assert.Equal(t, formatText, cfg.Format)
}

// syncBuffer is a bytes.Buffer safe for one writer and one reader.
type syncBuffer struct {
	mu  sync.Mutex
	buf bytes.Buffer
}

func (b *syncBuffer) Write(p []byte) (int, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.Write(p)
}

func (b *syncBuffer) String() string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.String()
}

func TestWatch(t *testing.T) {
	valid, err := os.ReadFile("testdata/valid.yaml")
	require.NoError(t, err)
	invalid, err := os.ReadFile("testdata/invalid.yaml")
	require.NoError(t, err)
	path := filepath.Join(t.TempDir(), "model.yaml")
	require.NoError(t, os.WriteFile(path, valid, 0o644))

	ctx, cancel := context.WithCancel(context.Background())
	var out syncBuffer
	done := make(chan int)
	go func() {
		done <- run(ctx, []string{"-watch", path}, &out, &bytes.Buffer{})
	}()

	require.Eventually(t, func() bool {
		return strings.Contains(out.String(), path+": Ok")
	}, 5*time.Second, 10*time.Millisecond)
	// Rewrite until the watcher is set up and reports the change.
	require.Eventually(t, func() bool {
		require.NoError(t, os.WriteFile(path, invalid, 0o644))
		return strings.Contains(out.String(), path+": Invalid Model")
	}, 5*time.Second, 50*time.Millisecond)

	cancel()
	select {
	case code := <-done:
		assert.Equal(t, 0, code)
	case <-time.After(5 * time.Second):
		t.Fatal("watch did not stop")
	}
}
