package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"tecsoqr/internal/platform/auth"
)

func TestRunEncode(t *testing.T) {
	var out bytes.Buffer
	in := strings.NewReader(`{"type":"wifi","ssid":"Home","encryption":"WPA","password":"secret"}`)
	require.NoError(t, runEncode(nil, in, &out))
	assert.Equal(t, "WIFI:T:WPA;S:Home;P:secret;\n", out.String())
}

func TestRunEncode_QuickEntryAndPNG(t *testing.T) {
	dir := t.TempDir()
	pngPath := filepath.Join(dir, "code.png")

	var out bytes.Buffer
	err := runEncode([]string{"--type", "url", "--value", "example.com", "--png", pngPath, "--size", "256"}, strings.NewReader(""), &out)
	require.NoError(t, err)
	assert.Equal(t, "https://example.com\n", out.String())

	data, err := os.ReadFile(pngPath)
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(data, []byte("\x89PNG")))
}

func TestRunEncode_Errors(t *testing.T) {
	var out bytes.Buffer
	assert.Error(t, runEncode(nil, strings.NewReader(`{"type":"phone"}`), &out))
	assert.Error(t, runEncode([]string{"--type", "instagram", "--value", "x"}, strings.NewReader(""), &out))
	assert.Empty(t, out.String())
}

func TestRunValidate(t *testing.T) {
	var out bytes.Buffer
	require.NoError(t, runValidate([]string{"--type", "email", "a@b.com"}, &out))
	assert.Equal(t, "valid\n", out.String())

	assert.Error(t, runValidate([]string{"--type", "email", "nope"}, &out))
	assert.Error(t, runValidate([]string{}, &out))
}

func TestRunBulk(t *testing.T) {
	dir := t.TempDir()
	input := filepath.Join(dir, "lines.txt")
	output := filepath.Join(dir, "codes.zip")
	require.NoError(t, os.WriteFile(input, []byte("https://a.io\nhello\n"), 0o644))

	require.NoError(t, runBulk([]string{"-i", input, "-o", output}, strings.NewReader("")))
	info, err := os.Stat(output)
	require.NoError(t, err)
	assert.Positive(t, info.Size())

	err = runBulk([]string{"-o", output}, strings.NewReader("\n\n"))
	assert.Error(t, err)
	_, statErr := os.Stat(output)
	assert.True(t, os.IsNotExist(statErr))
}

func TestRunHashAdminKey(t *testing.T) {
	var out bytes.Buffer
	require.NoError(t, runHashAdminKey([]string{"s3cret"}, &out))
	assert.True(t, auth.CheckAdminKey(strings.TrimSpace(out.String()), "s3cret"))
}
