package render

import (
	"bytes"
	"fmt"
	"image"
	"image/color"
	"image/png"

	"github.com/skip2/go-qrcode"
)

var levels = map[Level]qrcode.RecoveryLevel{
	LevelLow:      qrcode.Low,
	LevelMedium:   qrcode.Medium,
	LevelQuartile: qrcode.High,
	LevelHigh:     qrcode.Highest,
}

// Image renders payload in the requested format. Only PNG is drawn.
func Image(payload string, c Customization, o Output) ([]byte, error) {
	c = c.WithDefaults()
	o = o.WithDefaults()
	if err := o.Validate(); err != nil {
		return nil, err
	}
	if err := c.Validate(); err != nil {
		return nil, err
	}
	if o.Format != FormatPNG {
		return nil, fmt.Errorf("%w: %s", ErrUnsupportedFormat, o.Format)
	}

	qr, err := newCode(payload, o.Level)
	if err != nil {
		return nil, err
	}
	fg, _ := ParseHexColor(c.Foreground)
	bg, _ := ParseHexColor(c.Background)

	// go-qrcode only knows a fixed 4 module border, so the quiet zone is
	// added here around the bare symbol.
	qr.DisableBorder = true
	img := draw(qr.Bitmap(), o.MarginModules(), o.Size, fg, bg)

	var buf bytes.Buffer
	enc := png.Encoder{CompressionLevel: png.BestCompression}
	if err := enc.Encode(&buf, img); err != nil {
		return nil, fmt.Errorf("png encode: %w", err)
	}
	return buf.Bytes(), nil
}

// draw scales the symbol plus margin modules of quiet zone to size pixels,
// centering it when size is not a multiple of the module count. A size
// smaller than the module count grows to one pixel per module.
func draw(bitmap [][]bool, margin, size int, fg, bg color.Color) *image.Paletted {
	modules := len(bitmap) + 2*margin
	if size < modules {
		size = modules
	}
	scale := size / modules
	offset := (size - modules*scale) / 2

	img := image.NewPaletted(image.Rect(0, 0, size, size), color.Palette{bg, fg})
	for y, row := range bitmap {
		for x, dark := range row {
			if !dark {
				continue
			}
			x0 := offset + (x+margin)*scale
			y0 := offset + (y+margin)*scale
			for py := y0; py < y0+scale; py++ {
				for px := x0; px < x0+scale; px++ {
					img.SetColorIndex(px, py, 1)
				}
			}
		}
	}
	return img
}

// PNG renders with default colors at the given size.
func PNG(payload string, size int) ([]byte, error) {
	o := DefaultOutput()
	o.Size = size
	return Image(payload, DefaultCustomization(), o)
}

// Text renders payload as half-block characters for a terminal.
func Text(payload string, level Level, inverse bool) (string, error) {
	if level == "" {
		level = LevelMedium
	}
	qr, err := newCode(payload, level)
	if err != nil {
		return "", err
	}
	return qr.ToSmallString(inverse), nil
}

func newCode(payload string, level Level) (*qrcode.QRCode, error) {
	rl, ok := levels[level]
	if !ok {
		return nil, fmt.Errorf("%w: error correction level %q", ErrInvalidOption, level)
	}
	qr, err := qrcode.New(payload, rl)
	if err != nil {
		return nil, fmt.Errorf("qr encode: %w", err)
	}
	return qr, nil
}
