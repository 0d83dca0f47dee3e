// Package revision resolves the commit a manifest should pin.
package revision

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os/exec"
	"strings"

	"github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/plumbing"
)

// Resolver kinds accepted by New.
const (
	KindShell = "shell"
	KindGoGit = "go-git"
)

var (
	// ErrUnknownResolver indicates an unsupported resolver kind.
	ErrUnknownResolver = errors.New("unknown resolver")

	// ErrEmptyRevision indicates the query succeeded but printed nothing.
	ErrEmptyRevision = errors.New("empty revision")
)

// Resolver returns the revision identifier of a checkout.
type Resolver interface {
	Resolve(ctx context.Context) (string, error)
}

// New returns the resolver for kind, rooted at dir.
func New(kind, dir string) (Resolver, error) {
	switch kind {
	case "", KindShell:
		return NewShellResolver(dir), nil
	case KindGoGit:
		return NewGoGitResolver(dir), nil
	default:
		return nil, fmt.Errorf("%w: %s (supported: %s, %s)", ErrUnknownResolver, kind, KindShell, KindGoGit)
	}
}

// ShellResolver shells out to `git rev-parse HEAD`.
type ShellResolver struct {
	// Dir is the working directory of the git command. Empty means the current directory.
	Dir string

	// Git is the git binary. Defaults to "git".
	Git string
}

// NewShellResolver creates a resolver that runs git in dir.
func NewShellResolver(dir string) *ShellResolver {
	return &ShellResolver{Dir: dir, Git: "git"}
}

// Resolve returns the current HEAD commit hash.
func (r *ShellResolver) Resolve(ctx context.Context) (string, error) {
	bin := r.Git
	if bin == "" {
		bin = "git"
	}

	cmd := exec.CommandContext(ctx, bin, "rev-parse", "HEAD")
	cmd.Dir = r.Dir
	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		return "", fmt.Errorf("git rev-parse failed: %w: %s", err, strings.TrimSpace(stderr.String()))
	}

	rev := strings.TrimSpace(stdout.String())
	if rev == "" {
		return "", fmt.Errorf("git rev-parse: %w", ErrEmptyRevision)
	}
	return rev, nil
}

// GoGitResolver reads HEAD in-process without a git binary.
type GoGitResolver struct {
	// Dir is the repository root. Empty means the current directory.
	Dir string
}

// NewGoGitResolver creates a resolver for the repository at dir.
func NewGoGitResolver(dir string) *GoGitResolver {
	return &GoGitResolver{Dir: dir}
}

// Resolve returns the current HEAD commit hash.
func (r *GoGitResolver) Resolve(ctx context.Context) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}

	dir := r.Dir
	if dir == "" {
		dir = "."
	}

	repo, err := git.PlainOpenWithOptions(dir, &git.PlainOpenOptions{DetectDotGit: true})
	if err != nil {
		return "", fmt.Errorf("open git repository %s: %w", dir, err)
	}

	hash, err := repo.ResolveRevision(plumbing.Revision(plumbing.HEAD))
	if err != nil {
		return "", fmt.Errorf("resolve HEAD in %s: %w", dir, err)
	}
	return hash.String(), nil
}

// Static always resolves to a fixed revision.
type Static string

// Resolve returns the fixed revision.
func (s Static) Resolve(context.Context) (string, error) {
	if s == "" {
		return "", ErrEmptyRevision
	}
	return string(s), nil
}
