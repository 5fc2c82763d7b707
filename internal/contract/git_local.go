package contract

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os/exec"
	"strings"

	"github.com/huangsam/hammer/schema"
)

// LocalGitClient implements the GitClient interface by executing the
// local 'git' binary installed on the machine.
type LocalGitClient struct{}

var _ GitClient = &LocalGitClient{} // Compile-time check

// NewLocalGitClient creates a new instance of the local Git client.
func NewLocalGitClient() *LocalGitClient {
	return &LocalGitClient{}
}

// Run executes a git command and returns its stdout output.
func (c *LocalGitClient) Run(ctx context.Context, repoPath string, args ...string) ([]byte, error) {
	fullArgs := append([]string{"-C", repoPath}, args...)
	cmd := exec.CommandContext(ctx, "git", fullArgs...)
	out, err := cmd.Output()
	var exitErr *exec.ExitError
	if errors.As(err, &exitErr) {
		stderr := strings.TrimSpace(string(exitErr.Stderr))
		return nil, fmt.Errorf("git %s failed in %q: %s: %w", args[0], repoPath, stderr, err)
	} else if err != nil {
		return nil, fmt.Errorf("git command failed: %w. Ensure Git is installed and available on your PATH", err)
	}
	return out, nil
}

// hasHead reports whether the repository has any commit checked out.
func (c *LocalGitClient) hasHead(ctx context.Context, repoPath string) (bool, error) {
	_, err := c.Run(ctx, repoPath, "rev-parse", "--verify", "--quiet", "HEAD")
	var exitErr *exec.ExitError
	if errors.As(err, &exitErr) {
		return false, nil
	}
	return err == nil, err
}

// ListCommits implements the GitClient interface.
func (c *LocalGitClient) ListCommits(ctx context.Context, repoPath string) ([]string, error) {
	if ok, err := c.hasHead(ctx, repoPath); err != nil || !ok {
		return nil, err
	}
	out, err := c.Run(ctx, repoPath, "log", "--reverse", "--date-order", "--format=%H", "HEAD")
	if err != nil {
		return nil, err
	}
	return strings.Fields(string(out)), nil
}

// ListAuthors implements the GitClient interface.
func (c *LocalGitClient) ListAuthors(ctx context.Context, repoPath string) ([]string, error) {
	if ok, err := c.hasHead(ctx, repoPath); err != nil || !ok {
		return nil, err
	}
	out, err := c.Run(ctx, repoPath, "log", "--format=%aN <%aE>", "HEAD")
	if err != nil {
		return nil, err
	}
	seen := make(map[string]struct{})
	var authors []string
	for line := range strings.SplitSeq(string(out), "\n") {
		if line == "" {
			continue
		}
		if _, ok := seen[line]; ok {
			continue
		}
		seen[line] = struct{}{}
		authors = append(authors, line)
	}
	return authors, nil
}

// CommitExists implements the GitClient interface.
func (c *LocalGitClient) CommitExists(ctx context.Context, repoPath string, hexsha string) (bool, error) {
	_, err := c.Run(ctx, repoPath, "cat-file", "-e", hexsha+"^{commit}")
	var exitErr *exec.ExitError
	if errors.As(err, &exitErr) {
		return false, nil
	}
	return err == nil, err
}

// GetCommit implements the GitClient interface.
func (c *LocalGitClient) GetCommit(ctx context.Context, repoPath string, hexsha string) (schema.CommitInfo, error) {
	out, err := c.Run(ctx, repoPath, "cat-file", "commit", hexsha)
	if err != nil {
		return schema.CommitInfo{}, err
	}
	info, err := ParseCommitObject(out)
	if err != nil {
		return schema.CommitInfo{}, fmt.Errorf("commit %s: %w", hexsha, err)
	}
	info.Hexsha = hexsha
	return info, nil
}

// ResolveMailmap implements the GitClient interface.
func (c *LocalGitClient) ResolveMailmap(ctx context.Context, repoPath string, literal string) (string, error) {
	out, err := c.Run(ctx, repoPath, "check-mailmap", literal)
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(string(out)), nil
}

// ListTree implements the GitClient interface.
func (c *LocalGitClient) ListTree(ctx context.Context, repoPath string, ref string) ([]schema.TreeEntry, error) {
	out, err := c.Run(ctx, repoPath, "ls-tree", "-r", "-z", ref)
	if err != nil {
		return nil, err
	}
	return ParseTree(out)
}

// ReadBlob implements the GitClient interface.
func (c *LocalGitClient) ReadBlob(ctx context.Context, repoPath string, blobID string) ([]byte, error) {
	return c.Run(ctx, repoPath, "cat-file", "blob", blobID)
}

// Blame implements the GitClient interface.
func (c *LocalGitClient) Blame(ctx context.Context, repoPath string, ref string, path string) ([]schema.BlameHunk, error) {
	out, err := c.Run(ctx, repoPath, "blame", "--porcelain", "-w", ref, "--", path)
	if err != nil {
		return nil, err
	}
	return ParseBlamePorcelain(bytes.NewReader(out))
}

// DiffTree implements the GitClient interface.
func (c *LocalGitClient) DiffTree(ctx context.Context, repoPath string, from, to string) (schema.ChangeSet, error) {
	out, err := c.Run(ctx, repoPath, "diff-tree", "-r", "-z", "-M", "-w", "--ignore-submodules", "--raw", from, to)
	if err != nil {
		return schema.ChangeSet{}, err
	}
	return ParseRawDiff(out)
}

// NumstatDiff implements the GitClient interface.
func (c *LocalGitClient) NumstatDiff(ctx context.Context, repoPath string, from, to string) ([]schema.NumstatEntry, error) {
	args := []string{"diff-tree", "-r", "-z", "-M", "--numstat", "--ignore-submodules"}
	if from == "" {
		args = append(args, "--root", "--no-commit-id", to)
	} else {
		args = append(args, from, to)
	}
	out, err := c.Run(ctx, repoPath, args...)
	if err != nil {
		return nil, err
	}
	return ParseNumstat(out)
}
