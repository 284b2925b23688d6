package gitops

import (
	"context"
	"os"
	"os/exec"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func requireGit(t *testing.T) {
	t.Helper()
	if _, err := exec.LookPath("git"); err != nil {
		t.Skip("git not available")
	}
}

func TestInit(t *testing.T) {
	requireGit(t)
	dir := t.TempDir()
	assert.False(t, IsRepo(dir), "empty dir should not be a repo")

	require.NoError(t, Init(context.Background(), dir))
	assert.True(t, IsRepo(dir), "initialized dir should be a repo")
}

func TestCommitAll(t *testing.T) {
	requireGit(t)
	ctx := context.Background()
	dir := t.TempDir()
	require.NoError(t, Init(ctx, dir))

	changed, err := HasChanges(ctx, dir)
	require.NoError(t, err)
	assert.False(t, changed)

	require.NoError(t, os.WriteFile(filepath.Join(dir, "journal.csv"), []byte("entry_id\n"), 0o644))
	changed, err = HasChanges(ctx, dir)
	require.NoError(t, err)
	assert.True(t, changed)

	author := Author{Name: "Ledger Bot", Email: "ledger@example.com"}
	hash, err := CommitAll(ctx, dir, "post: JE-2025-01-001", author)
	require.NoError(t, err)
	assert.NotEmpty(t, hash)

	log := exec.Command("git", "log", "--format=%s|%an <%ae>|%cn", "-1")
	log.Dir = dir
	out, err := log.Output()
	require.NoError(t, err)
	assert.Equal(t, "post: JE-2025-01-001|Ledger Bot <ledger@example.com>|Ledger Bot\n", string(out))

	changed, err = HasChanges(ctx, dir)
	require.NoError(t, err)
	assert.False(t, changed)
}

func TestCommitAll_NothingToCommit(t *testing.T) {
	requireGit(t)
	ctx := context.Background()
	dir := t.TempDir()
	require.NoError(t, Init(ctx, dir))

	_, err := CommitAll(ctx, dir, "empty", Author{Name: "a", Email: "a@example.com"})
	assert.Error(t, err)
}

func TestAuthorString(t *testing.T) {
	assert.Equal(t, "Ledger Bot <ledger@example.com>", Author{Name: "Ledger Bot", Email: "ledger@example.com"}.String())
}
