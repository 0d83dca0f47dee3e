package revision

import (
	"context"
	"os"
	"os/exec"
	"path/filepath"
	"testing"
	"time"

	"github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/plumbing/object"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// initRepo creates a repository with one empty commit and returns its hash.
func initRepo(t *testing.T, dir string) string {
	t.Helper()

	repo, err := git.PlainInit(dir, false)
	require.NoError(t, err)

	wt, err := repo.Worktree()
	require.NoError(t, err)

	hash, err := wt.Commit("init", &git.CommitOptions{
		AllowEmptyCommits: true,
		Author: &object.Signature{
			Name:  "flatmerge",
			Email: "flatmerge@example.com",
			When:  time.Unix(1700000000, 0),
		},
	})
	require.NoError(t, err)

	return hash.String()
}

func TestNew(t *testing.T) {
	tests := []struct {
		kind    string
		want    any
		wantErr bool
	}{
		{kind: "", want: &ShellResolver{}},
		{kind: KindShell, want: &ShellResolver{}},
		{kind: KindGoGit, want: &GoGitResolver{}},
		{kind: "svn", wantErr: true},
	}

	for _, tt := range tests {
		t.Run("kind "+tt.kind, func(t *testing.T) {
			r, err := New(tt.kind, "/src")
			if tt.wantErr {
				assert.ErrorIs(t, err, ErrUnknownResolver)
				return
			}
			require.NoError(t, err)
			assert.IsType(t, tt.want, r)
		})
	}
}

func TestGoGitResolver_Resolve(t *testing.T) {
	t.Run("returns HEAD commit", func(t *testing.T) {
		dir := t.TempDir()
		want := initRepo(t, dir)

		got, err := NewGoGitResolver(dir).Resolve(context.Background())
		require.NoError(t, err)
		assert.Equal(t, want, got)
	})

	t.Run("finds repository from subdirectory", func(t *testing.T) {
		dir := t.TempDir()
		want := initRepo(t, dir)

		sub := filepath.Join(dir, "data", "icons")
		require.NoError(t, os.MkdirAll(sub, 0755))

		got, err := NewGoGitResolver(sub).Resolve(context.Background())
		require.NoError(t, err)
		assert.Equal(t, want, got)
	})

	t.Run("not a repository", func(t *testing.T) {
		_, err := NewGoGitResolver(t.TempDir()).Resolve(context.Background())
		assert.Error(t, err)
	})

	t.Run("repository without commits", func(t *testing.T) {
		dir := t.TempDir()
		_, err := git.PlainInit(dir, false)
		require.NoError(t, err)

		_, err = NewGoGitResolver(dir).Resolve(context.Background())
		assert.Error(t, err)
	})

	t.Run("cancelled context", func(t *testing.T) {
		ctx, cancel := context.WithCancel(context.Background())
		cancel()

		_, err := NewGoGitResolver(t.TempDir()).Resolve(ctx)
		assert.ErrorIs(t, err, context.Canceled)
	})
}

func TestShellResolver_Resolve(t *testing.T) {
	if _, err := exec.LookPath("git"); err != nil {
		t.Skip("git not installed")
	}

	t.Run("returns HEAD commit", func(t *testing.T) {
		dir := t.TempDir()
		want := initRepo(t, dir)

		got, err := NewShellResolver(dir).Resolve(context.Background())
		require.NoError(t, err)
		assert.Equal(t, want, got)
	})

	t.Run("matches go-git resolver", func(t *testing.T) {
		dir := t.TempDir()
		initRepo(t, dir)

		shell, err := NewShellResolver(dir).Resolve(context.Background())
		require.NoError(t, err)
		inProcess, err := NewGoGitResolver(dir).Resolve(context.Background())
		require.NoError(t, err)
		assert.Equal(t, shell, inProcess)
	})

	t.Run("not a repository", func(t *testing.T) {
		_, err := NewShellResolver(t.TempDir()).Resolve(context.Background())
		require.Error(t, err)
		assert.Contains(t, err.Error(), "git rev-parse failed")
	})
}

func TestShellResolver_MissingBinary(t *testing.T) {
	r := &ShellResolver{Dir: t.TempDir(), Git: "git-binary-that-does-not-exist"}

	_, err := r.Resolve(context.Background())
	assert.Error(t, err)
}

func TestStatic(t *testing.T) {
	rev, err := Static("abc123").Resolve(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "abc123", rev)

	_, err = Static("").Resolve(context.Background())
	assert.ErrorIs(t, err, ErrEmptyRevision)
}
