package app

import (
	"context"
	"image/jpeg"
	"image/png"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/roman-kulish/bandplan-vswr/internal/scan"
)

const dipoleScan = `{
  "Measurements": [
    {"fq": 14.00, "r": 38.2, "x": -12.5},
    {"fq": 14.10, "r": 47.9, "x": -2.1},
    {"fq": 14.20, "r": 52.3, "x": 4.8},
    {"fq": 14.30, "r": 61.0, "x": 15.7}
  ]
}`

const verticalScan = `{
  "Measurements": [
    {"fq": 7.00, "r": 30.1, "x": -20.2},
    {"fq": 7.15, "r": 49.5, "x": 0.4},
    {"fq": 7.30, "r": 70.9, "x": 22.3}
  ]
}`

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func scanDir(t *testing.T, files map[string]string) string {
	t.Helper()

	dir := t.TempDir()
	for name, content := range files {
		require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte(content), 0o644))
	}
	return dir
}

func testConfig(t *testing.T, dir string, format ImageFormat) *Config {
	t.Helper()

	c := NewConfig()
	c.ScanDirectory = dir
	c.Output = filepath.Join(t.TempDir(), "report")
	c.Format = format
	c.Render.Width = 800
	require.NoError(t, c.Finalize())
	return c
}

func TestRun(t *testing.T) {
	dir := scanDir(t, map[string]string{
		"dipole.asd":   dipoleScan,
		"vertical.ASD": verticalScan,
		"broken.asd":   "{not json",
		"notes.txt":    "ignored",
	})
	config := testConfig(t, dir, ImagePNG)

	require.NoError(t, Run(context.Background(), config, discardLogger()))

	f, err := os.Open(config.OutputFile)
	require.NoError(t, err)
	defer f.Close()

	img, err := png.Decode(f)
	require.NoError(t, err)
	assert.Equal(t, 800, img.Bounds().Dx())
}

func TestRun_JPEG(t *testing.T) {
	config := testConfig(t, scanDir(t, map[string]string{"dipole.asd": dipoleScan}), ImageJPEG)
	require.True(t, strings.HasSuffix(config.OutputFile, ".jpeg"))

	require.NoError(t, Run(context.Background(), config, discardLogger()))

	f, err := os.Open(config.OutputFile)
	require.NoError(t, err)
	defer f.Close()

	_, err = jpeg.Decode(f)
	assert.NoError(t, err)
}

func TestRun_NoScans(t *testing.T) {
	config := testConfig(t, t.TempDir(), ImagePNG)

	require.NoError(t, Run(context.Background(), config, discardLogger()))
	assert.FileExists(t, config.OutputFile)
}

func TestRun_MissingDirectory(t *testing.T) {
	config := testConfig(t, filepath.Join(t.TempDir(), "missing"), ImagePNG)

	err := Run(context.Background(), config, discardLogger())
	assert.ErrorIs(t, err, os.ErrNotExist)
	assert.NoFileExists(t, config.OutputFile)
}

func TestRun_WithArchive(t *testing.T) {
	config := testConfig(t, scanDir(t, map[string]string{"dipole.asd": dipoleScan}), ImagePNG)
	config.Archive = ArchiveConfig{Path: filepath.Join(t.TempDir(), "archive.sqlite"), Replay: true}

	require.NoError(t, Run(context.Background(), config, discardLogger()))
	assert.FileExists(t, config.Archive.Path)
	assert.FileExists(t, config.OutputFile)
}

func TestArchiveScans_Replay(t *testing.T) {
	ctx := context.Background()
	archive := ArchiveConfig{Path: filepath.Join(t.TempDir(), "archive.sqlite")}

	reader := scan.NewReader()
	first, err := reader.ReadDir(scanDir(t, map[string]string{
		"dipole.asd":   dipoleScan,
		"vertical.asd": verticalScan,
	}))
	require.NoError(t, err)
	require.Len(t, first, 2)

	stored, err := archiveScans(ctx, archive, first, discardLogger())
	require.NoError(t, err)
	assert.Equal(t, first, stored)

	second, err := reader.ReadDir(scanDir(t, map[string]string{"dipole.asd": dipoleScan}))
	require.NoError(t, err)

	archive.Replay = true
	replayed, err := archiveScans(ctx, archive, second, discardLogger())
	require.NoError(t, err)
	require.Len(t, replayed, 2)

	assert.Equal(t, "dipole.asd", replayed[0].Name)
	assert.True(t, strings.HasPrefix(replayed[1].Name, "vertical.asd ("), replayed[1].Name)
	assert.Equal(t, first[1].Samples, replayed[1].Samples)
}

func TestArchiveScans_ReplayEmptyArchive(t *testing.T) {
	archive := ArchiveConfig{Path: filepath.Join(t.TempDir(), "archive.sqlite"), Replay: true}

	scans, err := archiveScans(context.Background(), archive, nil, discardLogger())
	require.NoError(t, err)
	assert.Empty(t, scans)
}
