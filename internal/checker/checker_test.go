package checker

import (
	"os"
	"path/filepath"
	"syscall"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"git.home.luguber.info/inful/mdlinkcheck/internal/slugs"
)

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestCheckFileMissingTarget(t *testing.T) {
	dir := t.TempDir()
	path := writeFile(t, dir, "a.md", "# Title\n\nSee [x](missing.md) here.\n")

	links, err := New(Options{}).CheckFile(path)
	require.NoError(t, err)
	require.Len(t, links, 1)
	assert.Equal(t, 3, links[0].Line)
	assert.Contains(t, links[0].Message, "does not exist")
	assert.Contains(t, links[0].Message, "missing.md")
}

func TestCheckFileValidTarget(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "b.md", "# B\n")
	path := writeFile(t, dir, "a.md", "See [b](b.md).\n")

	links, err := New(Options{}).CheckFile(path)
	require.NoError(t, err)
	assert.Empty(t, links)
}

func TestCheckFileHeaderFragment(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "other.md", "# Section\n\ntext\n")

	good := writeFile(t, dir, "good.md", "[s](other.md#section)\n")
	links, err := New(Options{}).CheckFile(good)
	require.NoError(t, err)
	assert.Empty(t, links)

	bad := writeFile(t, dir, "bad.md", "intro\n\n[s](other.md#missing-section)\n")
	links, err = New(Options{}).CheckFile(bad)
	require.NoError(t, err)
	require.Len(t, links, 1)
	assert.Equal(t, 3, links[0].Line)
	assert.Contains(t, links[0].Message, "header 'missing-section' not found")
}

func TestCheckFileSelfFragment(t *testing.T) {
	dir := t.TempDir()
	path := writeFile(t, dir, "a.md", "# Intro\n\nJump to [top](#intro) or [nowhere](#nope).\n")

	links, err := New(Options{}).CheckFile(path)
	require.NoError(t, err)
	require.Len(t, links, 1)
	assert.Contains(t, links[0].Message, "header 'nope' not found")
}

func TestCheckFileIgnoreHeaderLinks(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "other.md", "# Section\n")
	path := writeFile(t, dir, "a.md", "[s](other.md#missing-section)\n")

	links, err := New(Options{IgnoreHeaderLinks: true}).CheckFile(path)
	require.NoError(t, err)
	assert.Empty(t, links)
}

func TestCheckFileDisallowDirLinks(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.Mkdir(filepath.Join(dir, "sub"), 0o755))
	path := writeFile(t, dir, "a.md", "See [d](sub) here.\n")

	links, err := New(Options{DisallowDirLinks: true}).CheckFile(path)
	require.NoError(t, err)
	require.Len(t, links, 1)
	assert.Contains(t, links[0].Message, "only file links are allowed")

	links, err = New(Options{}).CheckFile(path)
	require.NoError(t, err)
	assert.Empty(t, links)
}

func TestCheckFileTaskListItems(t *testing.T) {
	dir := t.TempDir()
	path := writeFile(t, dir, "a.md", "# Todo\n\n- [ ] write docs\n- [x] ship it\n\nSee [1] maybe.\n")

	links, err := New(Options{}).CheckFile(path)
	require.NoError(t, err)
	require.Len(t, links, 1)
	assert.Equal(t, "missing target for link '1'", links[0].Message)
	assert.Equal(t, 6, links[0].Line)
}

func TestCheckFileDisallowDirLinksPassesFifo(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, syscall.Mkfifo(filepath.Join(dir, "pipe"), 0o644))
	path := writeFile(t, dir, "a.md", "See [p](pipe).\n")

	links, err := New(Options{DisallowDirLinks: true}).CheckFile(path)
	require.NoError(t, err)
	assert.Empty(t, links)
}

func TestCheckFileFragmentToDirectory(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.Mkdir(filepath.Join(dir, "sub"), 0o755))
	path := writeFile(t, dir, "a.md", "See [d](sub#frag).\n")

	links, err := New(Options{}).CheckFile(path)
	require.NoError(t, err)
	require.Len(t, links, 1)
	assert.Contains(t, links[0].Message, "exists but is not a file")
}

func TestCheckFileExternalTargetsSkipped(t *testing.T) {
	dir := t.TempDir()
	path := writeFile(t, dir, "a.md",
		"[a](https://example.com/x)\n\n[b](http://example.com)\n\n[c](ftp://host/f)\n\n[d](user@example.com)\n")

	links, err := New(Options{}).CheckFile(path)
	require.NoError(t, err)
	assert.Empty(t, links)
}

func TestCheckFileUnresolvedReference(t *testing.T) {
	dir := t.TempDir()
	path := writeFile(t, dir, "a.md", "intro\n\nSee [refname] here.\n")

	links, err := New(Options{}).CheckFile(path)
	require.NoError(t, err)
	require.Len(t, links, 1)
	assert.Equal(t, "missing target for link 'refname'", links[0].Message)
	assert.Equal(t, 3, links[0].Line)
}

func TestCheckFileUnreadable(t *testing.T) {
	_, err := New(Options{}).CheckFile(filepath.Join(t.TempDir(), "missing.md"))
	assert.Error(t, err)
}

func TestSlugExtractionCachedAcrossFiles(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "target.md", "# Shared\n")
	a := writeFile(t, dir, "a.md", "[s](target.md#shared)\n")
	b := writeFile(t, dir, "b.md", "[s](./target.md#shared)\n")

	loads := 0
	cache := slugs.NewCacheWithLoader(func(path string) ([]string, error) {
		loads++
		return slugs.FromFile(path)
	})
	chk := NewWithCache(Options{}, cache)

	for _, p := range []string{a, b} {
		links, err := chk.CheckFile(p)
		require.NoError(t, err)
		assert.Empty(t, links)
	}

	assert.Equal(t, 1, loads)
}

func TestCheckDirAggregation(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "b.md", "# B\n")
	writeFile(t, dir, "a.md", "[ok](b.md)\n")
	writeFile(t, dir, filepath.Join("sub", "c.md"), "line one\n\n[broken](nope.md)\n")
	writeFile(t, dir, "notes.txt", "[ignored](zzz.md)\n")

	chk := New(Options{})
	links, err := chk.CheckDir(dir)
	require.NoError(t, err)
	require.Len(t, links, 1)
	assert.Contains(t, links[0].File, "c.md")
	assert.Equal(t, 3, links[0].Line)
	assert.Equal(t, 3, chk.FilesChecked())
}

func TestCheckDirExtensionCaseInsensitive(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "UPPER.MD", "[broken](nope.md)\n")

	links, err := New(Options{}).CheckDir(dir)
	require.NoError(t, err)
	require.Len(t, links, 1)
}

func TestCheckDirUnlistableFails(t *testing.T) {
	if os.Geteuid() == 0 {
		t.Skip("directory permissions are not enforced for root")
	}
	dir := t.TempDir()
	writeFile(t, dir, "a.md", "# ok\n")
	locked := filepath.Join(dir, "locked")
	require.NoError(t, os.Mkdir(locked, 0o755))
	require.NoError(t, os.Chmod(locked, 0o000))
	t.Cleanup(func() { _ = os.Chmod(locked, 0o755) })

	_, err := New(Options{}).CheckDir(dir)
	assert.Error(t, err)
}

func TestCheckPathDispatch(t *testing.T) {
	dir := t.TempDir()
	file := writeFile(t, dir, "a.md", "[broken](nope.md)\n")

	links, err := New(Options{}).CheckPath(file)
	require.NoError(t, err)
	assert.Len(t, links, 1)

	links, err = New(Options{}).CheckPath(dir)
	require.NoError(t, err)
	assert.Len(t, links, 1)

	_, err = New(Options{}).CheckPath(filepath.Join(dir, "absent"))
	assert.Error(t, err)
}
