package bulk

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"io/fs"
	"time"

	"github.com/mholt/archiver/v4"
)

// WriteZip packs the rendered images into a ZIP archive.
func WriteZip(ctx context.Context, w io.Writer, items []Item) error {
	now := time.Now()
	files := make([]archiver.FileInfo, 0, len(items))
	for _, it := range items {
		f := &memFile{name: it.Name, data: it.Image, modTime: now}
		files = append(files, archiver.FileInfo{
			FileInfo:      f,
			NameInArchive: it.Name,
			Open: func() (fs.File, error) {
				return f.open(), nil
			},
		})
	}

	if err := (archiver.Zip{}).Archive(ctx, w, files); err != nil {
		return fmt.Errorf("zip archive: %w", err)
	}
	return nil
}

// memFile is an in-memory regular file.
type memFile struct {
	name    string
	data    []byte
	modTime time.Time
	r       *bytes.Reader
}

func (f *memFile) open() *memFile {
	return &memFile{name: f.name, data: f.data, modTime: f.modTime, r: bytes.NewReader(f.data)}
}

func (f *memFile) Name() string               { return f.name }
func (f *memFile) Size() int64                { return int64(len(f.data)) }
func (f *memFile) Mode() fs.FileMode          { return 0o644 }
func (f *memFile) ModTime() time.Time         { return f.modTime }
func (f *memFile) IsDir() bool                { return false }
func (f *memFile) Sys() any                   { return nil }
func (f *memFile) Stat() (fs.FileInfo, error) { return f, nil }
func (f *memFile) Close() error               { return nil }

func (f *memFile) Read(p []byte) (int, error) {
	if f.r == nil {
		f.r = bytes.NewReader(f.data)
	}
	return f.r.Read(p)
}
