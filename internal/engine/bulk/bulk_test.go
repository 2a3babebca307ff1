package bulk

import (
	"archive/zip"
	"bytes"
	"context"
	"fmt"
	"io"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"tecsoqr/internal/engine/payload"
	"tecsoqr/internal/engine/render"
)

func TestParseLines(t *testing.T) {
	got, err := ParseLines("https://a.com\n\n  hello world  \nhttp://b.org/x\nftp://c\n")
	require.NoError(t, err)
	assert.Equal(t, []payload.Content{
		payload.URL{URL: "https://a.com"},
		payload.Text{Text: "hello world"},
		payload.URL{URL: "http://b.org/x"},
		payload.Text{Text: "ftp://c"},
	}, got)

	_, err = ParseLines(" \n\t\n")
	assert.ErrorIs(t, err, ErrNoLines)

	lines := make([]string, MaxLines+1)
	for i := range lines {
		lines[i] = fmt.Sprintf("line %d", i)
	}
	got, err = ParseLines(strings.Join(lines, "\n"))
	require.NoError(t, err)
	require.Len(t, got, MaxLines)
	assert.Equal(t, payload.Text{Text: "line 0"}, got[0])
	assert.Equal(t, payload.Text{Text: "line 99"}, got[MaxLines-1])
}

func TestParseLines_SchemeCaseInsensitive(t *testing.T) {
	got, err := ParseLines("HTTPS://EXAMPLE.COM\nHttp://a.io\nhttpsx")
	require.NoError(t, err)
	assert.Equal(t, []payload.Content{
		payload.URL{URL: "HTTPS://EXAMPLE.COM"},
		payload.URL{URL: "Http://a.io"},
		payload.Text{Text: "httpsx"},
	}, got)
}

func smallOptions() Options {
	opts := DefaultOptions()
	opts.Output.Size = render.MinSize
	opts.Concurrency = 2
	return opts
}

func TestRender_KeepsOrder(t *testing.T) {
	contents := []payload.Content{
		payload.Text{Text: "one"},
		payload.URL{URL: "https://two.example"},
		payload.Text{Text: "three"},
		payload.Phone{Number: "+15551234"},
	}
	items, err := Render(context.Background(), contents, smallOptions())
	require.NoError(t, err)
	require.Len(t, items, 4)

	assert.Equal(t, "qr-001.png", items[0].Name)
	assert.Equal(t, "qr-004.png", items[3].Name)
	assert.Equal(t, "one", items[0].Payload)
	assert.Equal(t, "https://two.example", items[1].Payload)
	assert.Equal(t, "tel:+15551234", items[3].Payload)
	for _, it := range items {
		assert.NotEmpty(t, it.Image)
	}
}

func TestRender_FailsOnBadContent(t *testing.T) {
	contents := []payload.Content{payload.Text{Text: "ok"}, payload.Phone{}}
	_, err := Render(context.Background(), contents, smallOptions())
	require.Error(t, err)
	assert.ErrorIs(t, err, payload.ErrMissingRequiredField)
	assert.Contains(t, err.Error(), "line 2")
}

func TestRender_Canceled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := Render(ctx, []payload.Content{payload.Text{Text: "x"}}, smallOptions())
	assert.ErrorIs(t, err, context.Canceled)
}

func TestBuild_Zip(t *testing.T) {
	var buf bytes.Buffer
	n, err := Build(context.Background(), &buf, "https://a.com\nhello\n", smallOptions())
	require.NoError(t, err)
	assert.Equal(t, 2, n)

	zr, err := zip.NewReader(bytes.NewReader(buf.Bytes()), int64(buf.Len()))
	require.NoError(t, err)
	require.Len(t, zr.File, 2)

	names := []string{zr.File[0].Name, zr.File[1].Name}
	assert.ElementsMatch(t, []string{"qr-001.png", "qr-002.png"}, names)

	rc, err := zr.File[0].Open()
	require.NoError(t, err)
	defer rc.Close()
	data, err := io.ReadAll(rc)
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(data, []byte("\x89PNG")))
}
