package build

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfigMissingFileUsesDefaults(t *testing.T) {
	cfg, err := LoadConfig(filepath.Join(t.TempDir(), "cover.yaml"))
	require.NoError(t, err)
	assert.Equal(t, "pdflatex", cfg.Engine)
	assert.Equal(t, []string{"-synctex=1", "-interaction=nonstopmode"}, cfg.EngineArgs)
	assert.Equal(t, "latexmk", cfg.Cleanup)
	assert.Equal(t, []string{"-c"}, cfg.CleanupArgs)
	assert.Equal(t, 2, cfg.Passes)
}

func TestLoadConfigOverlay(t *testing.T) {
	fn := filepath.Join(t.TempDir(), "cover.yaml")
	require.NoError(t, os.WriteFile(fn, []byte("engine: xelatex\npasses: 3\n"), 0644))

	cfg, err := LoadConfig(fn)
	require.NoError(t, err)
	assert.Equal(t, "xelatex", cfg.Engine)
	assert.Equal(t, 3, cfg.Passes)
	// untouched fields keep defaults
	assert.Equal(t, "latexmk", cfg.Cleanup)
	assert.Equal(t, []string{"-synctex=1", "-interaction=nonstopmode"}, cfg.EngineArgs)
}

func TestLoadConfigNormalizesPasses(t *testing.T) {
	fn := filepath.Join(t.TempDir(), "cover.yaml")
	require.NoError(t, os.WriteFile(fn, []byte("passes: 0\n"), 0644))

	cfg, err := LoadConfig(fn)
	require.NoError(t, err)
	assert.Equal(t, 1, cfg.Passes)
}

func TestLoadConfigMalformed(t *testing.T) {
	fn := filepath.Join(t.TempDir(), "cover.yaml")
	require.NoError(t, os.WriteFile(fn, []byte("engine: [unclosed\n"), 0644))

	_, err := LoadConfig(fn)
	assert.Error(t, err)
}

func TestCompileStep(t *testing.T) {
	cfg := DefaultConfig()
	s := cfg.compileStep("FrontCover")
	assert.Equal(t, "pdflatex", s.Tool)
	assert.Equal(t, []string{"-synctex=1", "-interaction=nonstopmode", "FrontCover"}, s.Args)
	assert.Equal(t, CaptureStdout, s.Capture)
	assert.False(t, s.BestEffort)
}

func TestCleanupStep(t *testing.T) {
	cfg := DefaultConfig()
	s := cfg.cleanupStep()
	assert.Equal(t, "latexmk", s.Tool)
	assert.Equal(t, []string{"-c"}, s.Args)
	assert.True(t, s.BestEffort)
}
