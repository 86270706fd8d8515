package marquee

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"log/slog"
	"strings"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/k1LoW/errors"
)

// recorder is a Driver that records every call.
type recorder struct {
	calls  []string
	files  map[string]string
	failAt string
}

func (r *recorder) record(call string) error {
	r.calls = append(r.calls, call)
	if r.failAt != "" && strings.HasPrefix(call, r.failAt) {
		return errors.New("boom")
	}
	return nil
}

func (r *recorder) Init(ctx context.Context, branch string) error {
	return r.record("init " + branch)
}

func (r *recorder) AddFile(ctx context.Context, path string, content []byte) error {
	if r.files == nil {
		r.files = map[string]string{}
	}
	r.files[path] = string(content)
	return r.record("add " + path)
}

func (r *recorder) Commit(ctx context.Context, message string, date time.Time) error {
	return r.record(fmt.Sprintf("commit %q %s", message, FormatDate(date)))
}

func (r *recorder) CommitEmpty(ctx context.Context, message string, date time.Time) error {
	return r.record(fmt.Sprintf("commit-empty %q %s", message, FormatDate(date)))
}

func (r *recorder) AddRemote(ctx context.Context, name, url string) error {
	return r.record("remote " + name + " " + url)
}

func (r *recorder) Push(ctx context.Context, remote, branch string) error {
	return r.record("push " + remote + " " + branch)
}

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func testWindow() Window {
	return NewWindow(time.Date(2025, 10, 16, 12, 0, 0, 0, time.UTC))
}

func TestPaint(t *testing.T) {
	tests := []struct {
		name string
		opts []Option
		px   Pixels
		want []string
	}{
		{
			name: "local",
			px:   Pixels{0, 363},
			want: []string{
				"init master",
				"add README.md",
				`commit "initialize with README" 2023-10-14T03:00:00`,
				`commit-empty "add a dot" 2024-10-13T03:00:00`,
				`commit-empty "add a dot" 2025-10-11T03:00:00`,
			},
		},
		{
			name: "depth and remote",
			opts: []Option{WithDepth(3), WithRemote("git@github.com:octocat/art.git"), WithBranch("main")},
			px:   Pixels{8},
			want: []string{
				"init main",
				"add README.md",
				`commit "initialize with README" 2023-10-14T03:00:00`,
				`commit-empty "add a dot" 2024-10-21T03:00:00`,
				`commit-empty "add a dot" 2024-10-21T03:00:00`,
				`commit-empty "add a dot" 2024-10-21T03:30:00`,
				"remote origin git@github.com:octocat/art.git",
				"push origin main",
			},
		},
		{
			name: "message templates",
			opts: []Option{WithMessage("dot {{ column }}/{{ row }} at {{ date }}"), WithRootMessage("hello")},
			px:   Pixels{15},
			want: []string{
				"init master",
				"add README.md",
				`commit "hello" 2023-10-14T03:00:00`,
				`commit-empty "dot 2/1 at 2024-10-28T03:00:00" 2024-10-28T03:00:00`,
			},
		},
		{
			name: "negative depth commits once",
			opts: []Option{WithDepth(-1)},
			px:   Pixels{1},
			want: []string{
				"init master",
				"add README.md",
				`commit "initialize with README" 2023-10-14T03:00:00`,
				`commit-empty "add a dot" 2024-10-14T03:00:00`,
			},
		},
		{
			name: "nothing to draw",
			px:   nil,
			want: []string{
				"init master",
				"add README.md",
				`commit "initialize with README" 2023-10-14T03:00:00`,
			},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := &recorder{}
			p, err := NewPainter(r, append(tt.opts, WithLogger(discardLogger()))...)
			if err != nil {
				t.Fatal(err)
			}
			if err := p.Paint(context.Background(), tt.px, testWindow()); err != nil {
				t.Fatal(err)
			}
			if diff := cmp.Diff(tt.want, r.calls); diff != "" {
				t.Errorf("calls mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestPaintReadme(t *testing.T) {
	r := &recorder{}
	p, err := NewPainter(r, WithCommand("marquee --box"), WithLogger(discardLogger()))
	if err != nil {
		t.Fatal(err)
	}
	if err := p.Paint(context.Background(), nil, testWindow()); err != nil {
		t.Fatal(err)
	}
	readme := r.files[ReadmeFile]
	if !strings.Contains(readme, "\nmarquee --box\n") {
		t.Errorf("README does not record the command:\n%s", readme)
	}
	if !strings.Contains(readme, "https://github.com/k1LoW/marquee") {
		t.Errorf("README has no attribution:\n%s", readme)
	}
}

func TestPaintStopsAtFirstFailure(t *testing.T) {
	tests := []struct {
		failAt    string
		wantCalls int
	}{
		{"init", 1},
		{"add", 2},
		{"commit ", 3},
		{"commit-empty", 4},
		{"remote", 6},
		{"push", 7},
	}
	for _, tt := range tests {
		t.Run(tt.failAt, func(t *testing.T) {
			r := &recorder{failAt: tt.failAt}
			buf := new(bytes.Buffer)
			p, err := NewPainter(r,
				WithRemote("git@github.com:octocat/art.git"),
				WithLogger(slog.New(slog.NewJSONHandler(buf, nil))),
			)
			if err != nil {
				t.Fatal(err)
			}
			if err := p.Paint(context.Background(), Pixels{1, 2}, testWindow()); err == nil {
				t.Fatal("want error")
			}
			if len(r.calls) != tt.wantCalls {
				t.Errorf("got %d calls, want %d: %v", len(r.calls), tt.wantCalls, r.calls)
			}
		})
	}
}

func TestNewPainterInvalidOptions(t *testing.T) {
	if _, err := NewPainter(&recorder{}, WithBranch("")); err == nil {
		t.Error("want error for empty branch")
	}
}

func TestPaintLogsEveryPixel(t *testing.T) {
	buf := new(bytes.Buffer)
	p, err := NewPainter(&recorder{}, WithDepth(2), WithLogger(slog.New(slog.NewTextHandler(buf, nil))))
	if err != nil {
		t.Fatal(err)
	}
	if err := p.Paint(context.Background(), Pixels{3, 4, 5}, testWindow()); err != nil {
		t.Fatal(err)
	}
	if got := strings.Count(buf.String(), `msg="painted pixel"`); got != 6 {
		t.Errorf("got %d painted pixel records, want 6", got)
	}
}
