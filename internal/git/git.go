package git

import (
	"context"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"time"
)

// zeroRef is the all-zero object name git hands a pre-push hook when
// the remote side has no commits yet.
const zeroRef = "0000000000000000000000000000000000000000"

// Runner shells out to git for one repository. Every call carries a
// timeout so a wedged git (credential prompt, fsmonitor) cannot hang
// the hook.
type Runner struct {
	root    string
	timeout time.Duration
}

// NewRunner validates root and returns a runner for it.
func NewRunner(root string) (*Runner, error) {
	abs, err := validateRoot(root)
	if err != nil {
		return nil, err
	}
	return &Runner{root: abs, timeout: 30 * time.Second}, nil
}

// Root returns the validated repository root.
func (r *Runner) Root() string { return r.root }

// validateRoot validates and normalizes a git repository root path.
// Returns the cleaned absolute path or an error if invalid.
func validateRoot(root string) (string, error) {
	if strings.ContainsRune(root, 0) {
		return "", fmt.Errorf("invalid path: contains null byte")
	}
	abs, err := filepath.Abs(filepath.Clean(root))
	if err != nil {
		return "", fmt.Errorf("invalid path %q: %w", root, err)
	}
	info, err := os.Stat(abs)
	if err != nil {
		return "", fmt.Errorf("cannot access path %q: %w", root, err)
	}
	if !info.IsDir() {
		return "", fmt.Errorf("path is not a directory: %s", root)
	}
	return abs, nil
}

func (r *Runner) run(args ...string) (string, error) {
	ctx, cancel := context.WithTimeout(context.Background(), r.timeout)
	defer cancel()
	full := append([]string{"-C", r.root}, args...)
	out, err := exec.CommandContext(ctx, "git", full...).Output()
	if err != nil {
		return "", fmt.Errorf("git %s: %w", args[0], err)
	}
	return string(out), nil
}

func (r *Runner) runLines(args ...string) ([]string, error) {
	out, err := r.run(args...)
	if err != nil {
		return nil, err
	}
	var lines []string
	for _, l := range strings.Split(out, "\n") {
		if l = strings.TrimSpace(l); l != "" {
			lines = append(lines, l)
		}
	}
	return lines, nil
}

// IsRepo reports whether the root is inside a git work tree.
func (r *Runner) IsRepo() bool {
	out, err := r.run("rev-parse", "--is-inside-work-tree")
	return err == nil && strings.TrimSpace(out) == "true"
}

// LsFiles lists all tracked paths.
func (r *Runner) LsFiles() ([]string, error) {
	return r.runLines("ls-files")
}

// StagedFiles lists paths with staged changes.
func (r *Runner) StagedFiles() ([]string, error) {
	return r.runLines("diff", "--cached", "--name-only")
}

// ShowStaged returns the staged blob for path (stage 0 of the index).
func (r *Runner) ShowStaged(path string) ([]byte, error) {
	out, err := r.run("show", ":0:"+path)
	if err != nil {
		return nil, err
	}
	return []byte(out), nil
}

// FilesToPush resolves the paths contained in a push range. Each step
// of the fallback chain degrades rather than fails: an unusable range
// falls back to the upstream diff, then to every tracked file.
func (r *Runner) FilesToPush(localRef, remoteRef string) ([]string, error) {
	if remoteRef == "" || remoteRef == zeroRef {
		// New branch on the remote: everything reachable is new.
		return r.LsFiles()
	}
	if localRef != "" {
		if files, err := r.runLines("diff", "--name-only", remoteRef+".."+localRef); err == nil {
			return files, nil
		}
	}
	if files, err := r.runLines("diff", "--name-only", "@{upstream}..HEAD"); err == nil {
		return files, nil
	}
	if files, err := r.LsFiles(); err == nil {
		return files, nil
	}
	return nil, nil
}

// HasUnstagedChanges reports whether the work tree differs from the index.
func (r *Runner) HasUnstagedChanges() bool {
	out, err := r.run("diff", "--unified=0", "--no-color")
	return err == nil && strings.TrimSpace(out) != ""
}

// Metadata is best-effort repository context for reports and audit
// records. Fields degrade to placeholders when git is unavailable.
type Metadata struct {
	Repo      string `json:"repo"`
	Branch    string `json:"branch"`
	Commit    string `json:"commit"`
	Author    string `json:"author"`
	Timestamp string `json:"timestamp"`
}

// RepoMetadata collects Metadata for the runner's root.
func (r *Runner) RepoMetadata() Metadata {
	md := Metadata{
		Repo:      filepath.Base(r.root),
		Branch:    "Unknown Branch",
		Commit:    "Unknown Commit",
		Author:    "Unknown Author",
		Timestamp: time.Now().Format("2006-01-02 03:04:05 PM"),
	}
	if out, err := r.run("rev-parse", "--abbrev-ref", "HEAD"); err == nil {
		md.Branch = strings.TrimSpace(out)
	}
	if out, err := r.run("rev-parse", "HEAD"); err == nil {
		md.Commit = strings.TrimSpace(out)
	}
	if out, err := r.run("log", "-1", "--pretty=format:%an"); err == nil {
		md.Author = strings.TrimSpace(out)
	}
	if out, err := r.run("log", "-1", "--pretty=format:%cd", "--date=format:%Y-%m-%d %I:%M:%S %p"); err == nil && strings.TrimSpace(out) != "" {
		md.Timestamp = strings.TrimSpace(out)
	}
	return md
}

// LastCommitMessage returns the full message of HEAD.
func (r *Runner) LastCommitMessage() (string, error) {
	out, err := r.run("log", "-1", "--pretty=format:%B")
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(out), nil
}

// LastCommitHash returns the object name of HEAD.
func (r *Runner) LastCommitHash() (string, error) {
	out, err := r.run("rev-parse", "HEAD")
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(out), nil
}

// CanAmend reports whether HEAD can be amended safely: no staged or
// unstaged tracked changes (untracked files do not matter).
func (r *Runner) CanAmend() bool {
	out, err := r.run("status", "--porcelain", "--untracked-files=no")
	return err == nil && strings.TrimSpace(out) == ""
}

// AmendCommitMessage rewrites the HEAD commit message in place.
func (r *Runner) AmendCommitMessage(message string) error {
	if !r.CanAmend() {
		return fmt.Errorf("cannot amend commit: uncommitted tracked changes present")
	}
	tmp, err := os.CreateTemp("", "apigenie-commit-msg-*.txt")
	if err != nil {
		return err
	}
	defer os.Remove(tmp.Name())
	if _, err := tmp.WriteString(message); err != nil {
		tmp.Close()
		return err
	}
	if err := tmp.Close(); err != nil {
		return err
	}
	_, err = r.run("commit", "--amend", "--no-verify", "-F", tmp.Name())
	return err
}
