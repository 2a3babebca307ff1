package bulk

import (
	"context"
	"errors"
	"fmt"
	"io"
	"runtime"
	"strings"

	"golang.org/x/sync/errgroup"

	"tecsoqr/internal/engine/payload"
	"tecsoqr/internal/engine/render"
)

// MaxLines caps a job; later lines are ignored.
const MaxLines = 100

var ErrNoLines = errors.New("no non-empty lines")

// Item is one rendered entry of a bulk job.
type Item struct {
	Name    string
	Content payload.Content
	Payload string
	Image   []byte
}

// Options control how each line is drawn.
type Options struct {
	Output        render.Output
	Customization render.Customization
	Concurrency   int
}

func DefaultOptions() Options {
	return Options{
		Output: render.Output{
			Format: render.FormatPNG,
			Size:   1024,
			Margin: render.Margin(2),
			Level:  render.LevelMedium,
		},
		Customization: render.DefaultCustomization(),
		Concurrency:   runtime.NumCPU(),
	}
}

// ParseLines turns the first MaxLines non-empty lines into content records:
// lines starting with http:// or https:// (any case) become URLs, everything
// else text.
func ParseLines(text string) ([]payload.Content, error) {
	var out []payload.Content
	for _, line := range strings.Split(text, "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		if len(out) == MaxLines {
			break
		}
		if hasPrefixFold(line, "http://") || hasPrefixFold(line, "https://") {
			out = append(out, payload.URL{URL: line})
		} else {
			out = append(out, payload.Text{Text: line})
		}
	}
	if len(out) == 0 {
		return nil, ErrNoLines
	}
	return out, nil
}

func hasPrefixFold(s, prefix string) bool {
	return len(s) >= len(prefix) && strings.EqualFold(s[:len(prefix)], prefix)
}

// Render encodes and draws every content concurrently. Items keep input order.
func Render(ctx context.Context, contents []payload.Content, opts Options) ([]Item, error) {
	items := make([]Item, len(contents))

	g, ctx := errgroup.WithContext(ctx)
	if opts.Concurrency > 0 {
		g.SetLimit(opts.Concurrency)
	}

	for i, c := range contents {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			p, err := payload.Encode(c)
			if err != nil {
				return fmt.Errorf("line %d: %w", i+1, err)
			}
			img, err := render.Image(p, opts.Customization, opts.Output)
			if err != nil {
				return fmt.Errorf("line %d: %w", i+1, err)
			}
			items[i] = Item{
				Name:    fmt.Sprintf("qr-%03d.png", i+1),
				Content: c,
				Payload: p,
				Image:   img,
			}
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return items, nil
}

// Build parses, renders and zips in one step.
func Build(ctx context.Context, w io.Writer, text string, opts Options) (int, error) {
	contents, err := ParseLines(text)
	if err != nil {
		return 0, err
	}
	items, err := Render(ctx, contents, opts)
	if err != nil {
		return 0, err
	}
	if err := WriteZip(ctx, w, items); err != nil {
		return 0, err
	}
	return len(items), nil
}
