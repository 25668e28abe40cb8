package triage_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/kurochkinivan/image_sorter/internal/domain"
	"github.com/kurochkinivan/image_sorter/internal/triage"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestScanner_ListImages_OrdersByModificationTime(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	createFile(t, dir, "b.jpg", "b", base.Add(time.Hour))
	createFile(t, dir, "a.png", "a", base)

	scanner := triage.NewScanner(newLogger(), newAppConfig(dir), nil)

	images, err := scanner.ListImages(context.Background())
	require.NoError(t, err)

	assert.Equal(t, []string{"a.png", "b.jpg"}, images)
}

func TestScanner_ListImages_OldestFirstRegardlessOfName(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	createFile(t, dir, "a.png", "", base.Add(3*time.Minute))
	createFile(t, dir, "b.png", "", base.Add(1*time.Minute))
	createFile(t, dir, "c.png", "", base.Add(2*time.Minute))

	scanner := triage.NewScanner(newLogger(), newAppConfig(dir), nil)

	images, err := scanner.ListImages(context.Background())
	require.NoError(t, err)

	assert.Equal(t, []string{"b.png", "c.png", "a.png"}, images)
}

func TestScanner_ListImages_TiesBrokenByName(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	for _, name := range []string{"c.png", "a.png", "b.png"} {
		createFile(t, dir, name, "", base)
	}

	scanner := triage.NewScanner(newLogger(), newAppConfig(dir), nil)

	first, err := scanner.ListImages(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []string{"a.png", "b.png", "c.png"}, first)

	// re-reading without changes yields the same order
	second, err := scanner.ListImages(context.Background())
	require.NoError(t, err)
	assert.Equal(t, first, second)
}

func TestScanner_ListImages_Filtering(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	createFile(t, dir, "photo.JPG", "", base)
	createFile(t, dir, "scan.TiFf", "", base.Add(time.Second))
	createFile(t, dir, "notes.txt", "", base)
	createFile(t, dir, "archive.png.zip", "", base)
	createFile(t, dir, "README", "", base)
	createFile(t, dir, ".png", "", base)
	createFile(t, dir, ".hidden.webp", "", base.Add(2*time.Second))
	createFile(t, dir, "tiff", "", base)

	require.NoError(t, os.Mkdir(filepath.Join(dir, "folder.png"), 0o755))
	require.NoError(t, os.Mkdir(filepath.Join(dir, "SI"), 0o755))
	createFile(t, filepath.Join(dir, "SI"), "triaged.png", "", base)

	scanner := triage.NewScanner(newLogger(), newAppConfig(dir), nil)

	images, err := scanner.ListImages(context.Background())
	require.NoError(t, err)

	assert.Equal(t, []string{"photo.JPG", "scan.TiFf", ".hidden.webp"}, images)
}

func TestScanner_ListImages_SkipsSymlinks(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	outside := t.TempDir()
	target := createFile(t, outside, "outside.png", "", base)
	createFile(t, dir, "inside.png", "", base)

	if err := os.Symlink(target, filepath.Join(dir, "link.png")); err != nil {
		t.Skipf("symlinks not supported: %v", err)
	}

	scanner := triage.NewScanner(newLogger(), newAppConfig(dir), nil)

	images, err := scanner.ListImages(context.Background())
	require.NoError(t, err)

	assert.Equal(t, []string{"inside.png"}, images)
}

func TestScanner_ListImages_SkipsSymlinkToListedImage(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	createFile(t, dir, "a.png", "", base)

	// a link to an eligible sibling is still not listed, only the regular file itself
	if err := os.Symlink("a.png", filepath.Join(dir, "b.png")); err != nil {
		t.Skipf("symlinks not supported: %v", err)
	}

	scanner := triage.NewScanner(newLogger(), newAppConfig(dir), nil)

	images, err := scanner.ListImages(context.Background())
	require.NoError(t, err)

	assert.Equal(t, []string{"a.png"}, images)
}

func TestScanner_ListImages_CustomExtensions(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	createFile(t, dir, "a.png", "", base)
	createFile(t, dir, "b.synthetic", "", base.Add(time.Second))

	scanner := triage.NewScanner(newLogger(), newAppConfig(dir, "SYNTHETIC"), nil)

	images, err := scanner.ListImages(context.Background())
	require.NoError(t, err)

	assert.Equal(t, []string{"b.synthetic"}, images)
}

func TestScanner_ListImages_Empty(t *testing.T) {
	t.Parallel()

	scanner := triage.NewScanner(newLogger(), newAppConfig(t.TempDir()), nil)

	images, err := scanner.ListImages(context.Background())
	require.NoError(t, err)

	assert.NotNil(t, images)
	assert.Empty(t, images)
}

func TestScanner_ListImages_UnreadableDirectory(t *testing.T) {
	t.Parallel()

	dir := filepath.Join(t.TempDir(), "gone")
	scanner := triage.NewScanner(newLogger(), newAppConfig(dir), nil)

	_, err := scanner.ListImages(context.Background())

	require.ErrorIs(t, err, domain.ErrIO)
	require.ErrorIs(t, err, os.ErrNotExist)
	assert.Contains(t, err.Error(), dir)
}

func TestScanner_ListImages_CanceledContext(t *testing.T) {
	t.Parallel()

	scanner := triage.NewScanner(newLogger(), newAppConfig(t.TempDir()), nil)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := scanner.ListImages(ctx)

	require.ErrorIs(t, err, context.Canceled)
}

func TestScanner_Scan_ReturnsEntries(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	path := createFile(t, dir, "a.png", "", base)

	scanner := triage.NewScanner(newLogger(), newAppConfig(dir), nil)

	entries, err := scanner.Scan(context.Background())
	require.NoError(t, err)
	require.Len(t, entries, 1)

	assert.Equal(t, "a.png", entries[0].Name)
	assert.Equal(t, path, entries[0].Path)
	assert.True(t, entries[0].ModTime.Equal(base))
}

func TestScanner_Eligible(t *testing.T) {
	t.Parallel()

	scanner := triage.NewScanner(newLogger(), newAppConfig(t.TempDir()), nil)

	tests := []struct {
		name string
		want bool
	}{
		{"a.jpg", true},
		{"a.JPEG", true},
		{"a.b.gif", true},
		{"a.bmp", true},
		{"a.webp", true},
		{"a.tiff", true},
		{"a.tif", false},
		{"a.png.txt", false},
		{".png", false},
		{"png", false},
		{"a.", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, scanner.Eligible(tt.name))
		})
	}
}
