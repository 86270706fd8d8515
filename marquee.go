package marquee

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/k1LoW/errors"
	"github.com/k1LoW/marquee/template"
)

const (
	ReadmeFile = "README.md"

	DefaultBranch      = "master"
	DefaultRemoteName  = "origin"
	DefaultMessage     = "add a dot"
	DefaultRootMessage = "initialize with README"
	DefaultReadme      = `
# Spice up your GitHub profile
## with marquee

Created with

{{ command }}

https://github.com/k1LoW/marquee
`
)

// Driver is a version control repository that commits can be painted into.
type Driver interface {
	// Init creates an empty repository whose initial branch is branch.
	Init(ctx context.Context, branch string) error
	// AddFile writes content to path in the work tree and stages it.
	AddFile(ctx context.Context, path string, content []byte) error
	// Commit records the staged changes dated at date.
	Commit(ctx context.Context, message string, date time.Time) error
	// CommitEmpty records a commit without changes dated at date.
	CommitEmpty(ctx context.Context, message string, date time.Time) error
	AddRemote(ctx context.Context, name, url string) error
	Push(ctx context.Context, remote, branch string) error
}

// Painter draws pixels onto the contribution graph through a Driver.
type Painter struct {
	driver      Driver
	depth       int
	remote      string
	branch      string
	message     string
	rootMessage string
	readme      string
	command     string
	logger      *slog.Logger
}

type Option func(*Painter) error

// WithDepth sets the number of commits per pixel.
// A depth below 2 commits each pixel once.
func WithDepth(depth int) Option {
	return func(p *Painter) error {
		p.depth = depth
		return nil
	}
}

// WithRemote sets the URL pushed to after painting.
func WithRemote(url string) Option {
	return func(p *Painter) error {
		p.remote = url
		return nil
	}
}

func WithBranch(branch string) Option {
	return func(p *Painter) error {
		if branch == "" {
			return errors.New("branch name must not be empty")
		}
		p.branch = branch
		return nil
	}
}

// WithMessage sets the message template of pixel commits.
// The template can refer to pixel, row, column and date.
func WithMessage(message string) Option {
	return func(p *Painter) error {
		if message != "" {
			p.message = message
		}
		return nil
	}
}

func WithRootMessage(message string) Option {
	return func(p *Painter) error {
		if message != "" {
			p.rootMessage = message
		}
		return nil
	}
}

// WithReadme sets the README template. The template can refer to command.
func WithReadme(readme string) Option {
	return func(p *Painter) error {
		if readme != "" {
			p.readme = readme
		}
		return nil
	}
}

// WithCommand sets the command line recorded in the README.
func WithCommand(command string) Option {
	return func(p *Painter) error {
		p.command = command
		return nil
	}
}

func WithLogger(logger *slog.Logger) Option {
	return func(p *Painter) error {
		p.logger = logger
		return nil
	}
}

// NewPainter returns a Painter that commits through driver.
func NewPainter(driver Driver, opts ...Option) (_ *Painter, err error) {
	defer func() {
		err = errors.WithStack(err)
	}()
	p := &Painter{
		driver:      driver,
		branch:      DefaultBranch,
		message:     DefaultMessage,
		rootMessage: DefaultRootMessage,
		readme:      DefaultReadme,
		logger:      slog.Default(),
	}
	for _, opt := range opts {
		if err := opt(p); err != nil {
			return nil, err
		}
	}
	return p, nil
}

// Paint initializes the repository, commits the README one year before the
// canvas starts, then commits every scheduled pixel in chronological order.
// When a remote is set, the branch is pushed to it.
// Painting stops at the first failing driver call and the repository is left as is.
func (p *Painter) Paint(ctx context.Context, pixels Pixels, w Window) (err error) {
	defer func() {
		err = errors.WithStack(err)
	}()
	readme, err := template.Expand(p.readme, map[string]any{"command": p.command})
	if err != nil {
		return fmt.Errorf("failed to expand README: %w", err)
	}
	message, err := template.Compile(p.message, messageStore(Commit{}))
	if err != nil {
		return fmt.Errorf("failed to compile commit message: %w", err)
	}

	if err := p.driver.Init(ctx, p.branch); err != nil {
		return fmt.Errorf("failed to initialize repository: %w", err)
	}
	if err := p.driver.AddFile(ctx, ReadmeFile, []byte(readme)); err != nil {
		return fmt.Errorf("failed to add %s: %w", ReadmeFile, err)
	}
	genesis := w.Genesis()
	if err := p.driver.Commit(ctx, p.rootMessage, genesis); err != nil {
		return fmt.Errorf("failed to commit %s: %w", ReadmeFile, err)
	}
	p.logger.Info("initialized repository", slog.String("branch", p.branch), slog.String("date", FormatDate(genesis)))

	commits := Schedule(pixels, p.depth, w)
	p.logger.Info("painting", slog.Int("pixels", len(pixels)), slog.Int("commits", len(commits)))
	for _, c := range commits {
		msg, err := message.Execute(messageStore(c))
		if err != nil {
			return err
		}
		if err := p.driver.CommitEmpty(ctx, msg, c.Date); err != nil {
			p.logger.Error("failed to paint pixel", slog.Int("pixel", int(c.Pixel)), slog.String("error", err.Error()))
			return fmt.Errorf("failed to paint pixel %d at %s: %w", c.Pixel, FormatDate(c.Date), err)
		}
		p.logger.Info("painted pixel", slog.Int("pixel", int(c.Pixel)), slog.String("date", FormatDate(c.Date)))
	}
	p.logger.Info("paint completed", slog.Int("commits", len(commits)))

	if p.remote == "" {
		return nil
	}
	if err := p.driver.AddRemote(ctx, DefaultRemoteName, p.remote); err != nil {
		return fmt.Errorf("failed to add remote %s: %w", p.remote, err)
	}
	p.logger.Info("pushing", slog.String("remote", p.remote), slog.String("branch", p.branch))
	if err := p.driver.Push(ctx, DefaultRemoteName, p.branch); err != nil {
		p.logger.Error("failed to push", slog.String("remote", p.remote), slog.String("error", err.Error()))
		return fmt.Errorf("failed to push to %s: %w", p.remote, err)
	}
	p.logger.Info("pushed", slog.String("remote", p.remote), slog.String("branch", p.branch))
	return nil
}

func messageStore(c Commit) map[string]any {
	return map[string]any{
		"pixel":  int(c.Pixel),
		"row":    c.Pixel.Row(),
		"column": c.Pixel.Column(),
		"date":   FormatDate(c.Date),
	}
}
