/*
Copyright © 2025 Ken'ichiro Oyama <k1lowxb@gmail.com>

Permission is hereby granted, free of charge, to any person obtaining a copy
of this software and associated documentation files (the "Software"), to deal
in the Software without restriction, including without limitation the rights
to use, copy, modify, merge, publish, distribute, sublicense, and/or sell
copies of the Software, and to permit persons to whom the Software is
furnished to do so, subject to the following conditions:

The above copyright notice and this permission notice shall be included in
all copies or substantial portions of the Software.

THE SOFTWARE IS PROVIDED "AS IS", WITHOUT WARRANTY OF ANY KIND, EXPRESS OR
IMPLIED, INCLUDING BUT NOT LIMITED TO THE WARRANTIES OF MERCHANTABILITY,
FITNESS FOR A PARTICULAR PURPOSE AND NONINFRINGEMENT. IN NO EVENT SHALL THE
AUTHORS OR COPYRIGHT HOLDERS BE LIABLE FOR ANY CLAIM, DAMAGES OR OTHER
LIABILITY, WHETHER IN AN ACTION OF CONTRACT, TORT OR OTHERWISE, ARISING FROM,
OUT OF OR IN CONNECTION WITH THE SOFTWARE OR THE USE OR OTHER DEALINGS IN
THE SOFTWARE.
*/
package cmd

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/k1LoW/errors"
	"github.com/k1LoW/marquee"
	"github.com/k1LoW/marquee/config"
	"github.com/k1LoW/marquee/git"
	"github.com/k1LoW/marquee/logger/dot"
	"github.com/k1LoW/marquee/version"
	"github.com/k1LoW/tail"
	"github.com/pkg/browser"
	slogmulti "github.com/samber/slog-multi"
	"github.com/spf13/cobra"
)

var (
	profile string
	box     bool
	primes  bool
	rows    int
	columns int
	text    string
	expr    string
	dryRun  bool
	repo    string
	depth   int
	open    bool
)

var errInsideRepository = errors.New("inside the root of a repository")

var (
	runID = uuid.New().String()
	tb    = tail.New(1000)
)

var rootCmd = &cobra.Command{
	Use:   "marquee",
	Short: "marquee draws on your GitHub contribution graph",
	Long: `marquee draws on your GitHub contribution graph.

It creates a new git repository in the current directory filled with empty commits
dated so that the selected patterns light up the 52x7 contribution graph.`,
	Args:          cobra.NoArgs,
	SilenceUsage:  true,
	SilenceErrors: true,
	Version:       fmt.Sprintf("%s (rev:%s)", version.Version, version.Revision),
	RunE: func(cmd *cobra.Command, args []string) error {
		h, err := dot.New(slog.NewTextHandler(os.Stdout, nil))
		if err != nil {
			return err
		}
		logger := slog.New(slogmulti.Fanout(
			slog.NewJSONHandler(tb, &slog.HandlerOptions{Level: slog.LevelDebug}),
			h,
		)).With(slog.String("run_id", runID))
		wd, err := os.Getwd()
		if err != nil {
			return err
		}
		return run(cmd.Context(), cmd.OutOrStdout(), logger, cmd.Flags().Changed, wd, time.Now())
	},
}

type errorData struct {
	RunID       string    `json:"run_id"`
	LatestLogs  []any     `json:"latest_logs"`
	StackTraces any       `json:"stack_traces"`
	CreatedAt   time.Time `json:"created_at"`
	Version     string    `json:"version"`
	Revision    string    `json:"revision"`
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		if errors.Is(err, errInsideRepository) {
			os.Exit(1)
		}
		_, _ = fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		// Write stack trace log to state directory
		var latestLogs []any
		for _, line := range tb.Lines() {
			var m map[string]any
			if err := json.Unmarshal([]byte(line), &m); err != nil {
				latestLogs = append(latestLogs, line)
			} else {
				latestLogs = append(latestLogs, m)
			}
		}
		d := &errorData{
			RunID:       runID,
			LatestLogs:  latestLogs,
			StackTraces: errors.StackTraces(err),
			CreatedAt:   time.Now(),
			Version:     version.Version,
			Revision:    version.Revision,
		}
		if err := writeErrorData(d); err != nil {
			_, _ = fmt.Fprintf(os.Stderr, "%v\n", err)
		}
		os.Exit(1)
	}
}

func writeErrorData(d *errorData) error {
	b, err := json.Marshal(d)
	if err != nil {
		return err
	}
	dir := config.StateHomePath()
	if err := os.MkdirAll(dir, 0o700); err != nil {
		return fmt.Errorf("failed to create %s: %w", dir, err)
	}
	dumpPath := filepath.Join(dir, "error.json")
	if err := os.WriteFile(dumpPath, b, 0o600); err != nil {
		return fmt.Errorf("failed to write error.json to %s: %w", dumpPath, err)
	}
	return nil
}

func run(ctx context.Context, stdout io.Writer, logger *slog.Logger, changed func(string) bool, dir string, now time.Time) error {
	cfg, err := config.Load(profile)
	if err != nil {
		return err
	}
	pixels, err := collectPixels(changed)
	if err != nil {
		return err
	}
	w := marquee.NewWindow(now)
	command := strings.Join(os.Args, " ")

	if dryRun {
		_, _ = fmt.Fprint(stdout, pixels.Preview())
		_, _ = fmt.Fprintln(stdout, w.String())
		_, _ = fmt.Fprintln(stdout, command)
		return nil
	}

	if git.IsRepositoryRoot(dir) {
		_, _ = fmt.Fprintln(stdout, "Run this from a directory that is not the root of a repo.")
		_, _ = fmt.Fprintln(stdout, "This is for your own good.")
		return errInsideRepository
	}

	d := cfg.Depth
	if depth != 0 {
		d = depth
	}
	opts := []marquee.Option{
		marquee.WithDepth(d),
		marquee.WithCommand(command),
		marquee.WithMessage(cfg.Message),
		marquee.WithRootMessage(cfg.RootMessage),
		marquee.WithReadme(cfg.Readme),
		marquee.WithLogger(logger),
	}
	if cfg.Branch != "" {
		opts = append(opts, marquee.WithBranch(cfg.Branch))
	}
	if repo != "" {
		opts = append(opts, marquee.WithRemote(git.RemoteURL(repo, cfg.Host)))
	}
	p, err := marquee.NewPainter(git.New(dir), opts...)
	if err != nil {
		return err
	}
	if err := p.Paint(ctx, pixels, w); err != nil {
		return err
	}
	if repo != "" && open {
		return browser.OpenURL(git.WebURL(repo, cfg.Host))
	}
	return nil
}

// collectPixels unions the patterns selected by flags.
// changed reports whether a flag was given on the command line.
func collectPixels(changed func(string) bool) (marquee.Pixels, error) {
	var sets [][]marquee.Pixel
	if box {
		sets = append(sets, marquee.Box())
	}
	if primes {
		sets = append(sets, marquee.PrimeFill())
	}
	if changed("rows") {
		if rows < 1 {
			return nil, fmt.Errorf("invalid --rows: %d, must be a positive stride", rows)
		}
		sets = append(sets, marquee.HStripes(rows))
	}
	if changed("columns") {
		if columns < 1 {
			return nil, fmt.Errorf("invalid --columns: %d, must be a positive stride", columns)
		}
		sets = append(sets, marquee.VStripes(columns))
	}
	if expr != "" {
		ps, err := marquee.Expr(expr)
		if err != nil {
			return nil, err
		}
		sets = append(sets, ps)
	}
	if text != "" {
		sets = append(sets, marquee.Rasterize(text))
	}
	return marquee.Union(sets...)
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&profile, "profile", "", "", "profile name")
	rootCmd.Flags().BoolVarP(&box, "box", "", false, "draw the outline of the canvas")
	rootCmd.Flags().BoolVarP(&primes, "primes", "", false, "colour in prime-numbered pixels")
	rootCmd.Flags().IntVarP(&rows, "rows", "", 0, "colour in every Nth row (weekday)")
	rootCmd.Flags().IntVarP(&columns, "columns", "", 0, "colour in every Nth column (week)")
	rootCmd.Flags().StringVarP(&text, "text", "", "", "string to display (recommend <= 8 chars)")
	rootCmd.Flags().StringVarP(&expr, "expr", "", "", "CEL expression over pixel, row and column selecting pixels to colour in")
	rootCmd.Flags().BoolVarP(&dryRun, "dry-run", "", false, "output to console, no git actions")
	rootCmd.Flags().StringVarP(&repo, "repo", "", "", "github user/repo to push to")
	rootCmd.Flags().IntVarP(&depth, "depth", "", 0, "number of commits per pixel")
	rootCmd.Flags().BoolVarP(&open, "open", "", false, "open the pushed repository in a browser")
}
