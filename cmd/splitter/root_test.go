package main

import (
	"encoding/json"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

	return path
}

func TestLoadConfig(t *testing.T) {
	dir := t.TempDir()
	path := writeFile(t, dir, "run.yaml", `
input: graph.edges
dimensions: 16
lambda: 0.3
epochs: 2
persona_embedding: out.json
`)

	cfg, err := loadConfig(path, defaultConfig())
	require.NoError(t, err)
	assert.Equal(t, "graph.edges", cfg.Input)
	assert.Equal(t, 16, cfg.Dimensions)
	assert.Equal(t, 0.3, cfg.Lambda)
	assert.Equal(t, 2, cfg.Epochs)
	assert.Equal(t, "out.json", cfg.PersonaEmbedding)
	// Untouched keys keep their defaults.
	assert.Equal(t, defaultConfig().WindowSize, cfg.WindowSize)
}

func TestLoadConfig_UnknownKey(t *testing.T) {
	dir := t.TempDir()
	path := writeFile(t, dir, "run.yaml", "dimmensions: 16\n")

	_, err := loadConfig(path, defaultConfig())
	require.Error(t, err)
}

func TestLoadConfig_MissingFile(t *testing.T) {
	_, err := loadConfig(filepath.Join(t.TempDir(), "absent.yaml"), defaultConfig())
	require.Error(t, err)
}

func TestMergeConfig_FlagsOverrideFile(t *testing.T) {
	dir := t.TempDir()
	cfgPath := writeFile(t, dir, "run.yaml", "input: from-file.edges\ndimensions: 16\nepochs: 3\n")

	cmd := newRootCmd()
	cmd.SetArgs([]string{"--config", cfgPath, "--dimensions", "8"})
	require.NoError(t, cmd.ParseFlags([]string{"--config", cfgPath, "--dimensions", "8"}))

	flagCfg := defaultConfig()
	flagCfg.Dimensions = 8

	merged, err := mergeConfig(cmd, flagCfg, cfgPath)
	require.NoError(t, err)
	assert.Equal(t, "from-file.edges", merged.Input) // file wins when flag untouched
	assert.Equal(t, 8, merged.Dimensions)            // explicit flag wins
	assert.Equal(t, 3, merged.Epochs)
}

func TestRun_EndToEnd(t *testing.T) {
	dir := t.TempDir()
	input := writeFile(t, dir, "graph.edges", "a b\nb c\nc d\nd a\na c\nb d\n")

	persona := filepath.Join(dir, "persona.json")
	base := filepath.Join(dir, "base.json")
	edges := filepath.Join(dir, "persona.edges")
	mapping := filepath.Join(dir, "mapping.json")

	cmd := newRootCmd()
	cmd.SetOut(io.Discard)
	cmd.SetErr(io.Discard)
	cmd.SetArgs([]string{
		"--input", input,
		"--dimensions", "4",
		"--num-walks", "2",
		"--walk-length", "5",
		"--window-size", "1",
		"--negative-samples", "1",
		"--epochs", "1",
		"--seed", "3",
		"--persona-embedding", persona,
		"--base-embedding", base,
		"--persona-graph", edges,
		"--mapping", mapping,
	})
	require.NoError(t, cmd.Execute())

	for _, path := range []string{persona, base, mapping} {
		data, err := os.ReadFile(path)
		require.NoError(t, err, path)
		var parsed map[string]any
		require.NoError(t, json.Unmarshal(data, &parsed), path)
		assert.Len(t, parsed, 4, path)
	}

	data, err := os.ReadFile(edges)
	require.NoError(t, err)
	assert.NotEmpty(t, data)
}

func TestRun_MissingInput(t *testing.T) {
	cmd := newRootCmd()
	cmd.SetOut(io.Discard)
	cmd.SetErr(io.Discard)
	cmd.SetArgs([]string{"--dimensions", strconv.Itoa(4)})

	require.Error(t, cmd.Execute())
}
