package git

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/k1LoW/errors"
	"github.com/k1LoW/exec"
)

const (
	metadataDir = ".git"
	dateLayout  = "2006-01-02T15:04:05"

	DefaultHost = "github.com"
)

// Repository drives the git binary inside a work tree.
type Repository struct {
	dir string
	bin string
}

// New returns a Repository rooted at dir.
func New(dir string) *Repository {
	return &Repository{
		dir: dir,
		bin: "git",
	}
}

// IsRepositoryRoot reports whether dir holds git metadata.
func IsRepositoryRoot(dir string) bool {
	_, err := os.Stat(filepath.Join(dir, metadataDir))
	return err == nil
}

// RemoteURL returns the SSH URL of the OWNER/NAME repository on host.
func RemoteURL(repo, host string) string {
	if host == "" {
		host = DefaultHost
	}
	if !strings.HasSuffix(repo, ".git") {
		repo += ".git"
	}
	return fmt.Sprintf("git@%s:%s", host, repo)
}

// WebURL returns the browser URL of the OWNER/NAME repository on host.
func WebURL(repo, host string) string {
	if host == "" {
		host = DefaultHost
	}
	return fmt.Sprintf("https://%s/%s", host, strings.TrimSuffix(repo, ".git"))
}

func (r *Repository) Init(ctx context.Context, branch string) error {
	return r.run(ctx, nil, "init", "--initial-branch="+branch)
}

func (r *Repository) AddFile(ctx context.Context, path string, content []byte) (err error) {
	defer func() {
		err = errors.WithStack(err)
	}()
	if err := os.WriteFile(filepath.Join(r.dir, path), content, 0644); err != nil {
		return fmt.Errorf("failed to write %s: %w", path, err)
	}
	return r.run(ctx, nil, "add", "--", path)
}

func (r *Repository) Commit(ctx context.Context, message string, date time.Time) error {
	d := date.Format(dateLayout)
	return r.run(ctx, dateEnv(d), "commit", "-m", message, "--date="+d)
}

func (r *Repository) CommitEmpty(ctx context.Context, message string, date time.Time) error {
	d := date.Format(dateLayout)
	return r.run(ctx, dateEnv(d), "commit", "-m", message, "--allow-empty", "--date="+d)
}

func (r *Repository) AddRemote(ctx context.Context, name, url string) error {
	return r.run(ctx, nil, "remote", "add", name, url)
}

func (r *Repository) Push(ctx context.Context, remote, branch string) error {
	return r.run(ctx, nil, "push", "-u", remote, branch)
}

// dateEnv pins the committer date to the author date given with --date.
func dateEnv(date string) []string {
	return []string{"GIT_COMMITTER_DATE=" + date}
}

func (r *Repository) run(ctx context.Context, env []string, args ...string) (err error) {
	defer func() {
		err = errors.WithStack(err)
	}()
	cmd := exec.CommandContext(ctx, r.bin, args...)
	cmd.Dir = r.dir
	cmd.Env = append(os.Environ(), env...)

	var stderr bytes.Buffer
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		return fmt.Errorf("failed to run git %s: %w\nstderr: %s", args[0], err, stderr.String())
	}
	return nil
}
