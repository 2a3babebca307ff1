package render

import (
	"errors"
	"fmt"
	"image/color"
	"strconv"
	"strings"
)

var (
	ErrUnsupportedFormat = errors.New("unsupported output format")
	ErrInvalidSize       = errors.New("invalid size: must be between 128 and 2048")
	ErrInvalidOption     = errors.New("invalid render option")
)

const (
	MinSize = 128
	MaxSize = 2048

	DefaultSize   = 1000
	DefaultMargin = 4
	MaxMargin     = 32
)

type Format string

const (
	FormatPNG Format = "png"
	FormatSVG Format = "svg"
	FormatPDF Format = "pdf"
	FormatEPS Format = "eps"
)

// Level is the error-correction level letter.
type Level string

const (
	LevelLow      Level = "L"
	LevelMedium   Level = "M"
	LevelQuartile Level = "Q"
	LevelHigh     Level = "H"
)

type GradientType string

const (
	GradientLinear GradientType = "linear"
	GradientRadial GradientType = "radial"
)

type ColorStop struct {
	Offset float64 `json:"offset"`
	Color  string  `json:"color"`
}

type Gradient struct {
	Type       GradientType `json:"type"`
	ColorStops []ColorStop  `json:"colorStops"`
}

// Customization is visual only; it never changes the encoded payload.
type Customization struct {
	Foreground string    `json:"foreground"`
	Background string    `json:"background"`
	Gradient   *Gradient `json:"gradient,omitempty"`
}

type Output struct {
	Format Format `json:"format"`
	Size   int    `json:"size"`
	Margin *int   `json:"margin,omitempty"` // quiet zone in modules; nil means DefaultMargin
	Level  Level  `json:"errorCorrectionLevel"`
}

func DefaultCustomization() Customization {
	return Customization{Foreground: "#000000", Background: "#ffffff"}
}

func DefaultOutput() Output {
	return Output{Format: FormatPNG, Size: DefaultSize, Margin: Margin(DefaultMargin), Level: LevelMedium}
}

// Margin returns a pointer for Output.Margin. Margin(0) disables the quiet zone.
func Margin(modules int) *int {
	return &modules
}

// MarginModules is the quiet zone width the image is drawn with.
func (o Output) MarginModules() int {
	if o.Margin == nil {
		return DefaultMargin
	}
	return *o.Margin
}

// WithDefaults fills zero values.
func (c Customization) WithDefaults() Customization {
	d := DefaultCustomization()
	if c.Foreground == "" {
		c.Foreground = d.Foreground
	}
	if c.Background == "" {
		c.Background = d.Background
	}
	return c
}

func (o Output) WithDefaults() Output {
	d := DefaultOutput()
	if o.Format == "" {
		o.Format = d.Format
	}
	if o.Size == 0 {
		o.Size = d.Size
	}
	if o.Level == "" {
		o.Level = d.Level
	}
	if o.Margin == nil {
		o.Margin = Margin(DefaultMargin)
	}
	return o
}

func (c Customization) Validate() error {
	if _, err := ParseHexColor(c.Foreground); err != nil {
		return fmt.Errorf("foreground: %w", err)
	}
	if _, err := ParseHexColor(c.Background); err != nil {
		return fmt.Errorf("background: %w", err)
	}
	if g := c.Gradient; g != nil {
		if g.Type != GradientLinear && g.Type != GradientRadial {
			return fmt.Errorf("%w: gradient type %q", ErrInvalidOption, g.Type)
		}
		if len(g.ColorStops) < 2 {
			return fmt.Errorf("%w: gradient needs at least two color stops", ErrInvalidOption)
		}
		for i, s := range g.ColorStops {
			if s.Offset < 0 || s.Offset > 1 {
				return fmt.Errorf("%w: color stop %d offset %v", ErrInvalidOption, i, s.Offset)
			}
			if _, err := ParseHexColor(s.Color); err != nil {
				return fmt.Errorf("color stop %d: %w", i, err)
			}
		}
	}
	return nil
}

func (o Output) Validate() error {
	switch o.Format {
	case FormatPNG, FormatSVG, FormatPDF, FormatEPS:
	default:
		return fmt.Errorf("%w: format %q", ErrInvalidOption, o.Format)
	}
	if o.Size < MinSize || o.Size > MaxSize {
		return ErrInvalidSize
	}
	if m := o.MarginModules(); m < 0 || m > MaxMargin {
		return fmt.Errorf("%w: margin %d outside 0..%d", ErrInvalidOption, m, MaxMargin)
	}
	switch o.Level {
	case LevelLow, LevelMedium, LevelQuartile, LevelHigh:
	default:
		return fmt.Errorf("%w: error correction level %q", ErrInvalidOption, o.Level)
	}
	return nil
}

// ParseHexColor accepts #rgb and #rrggbb.
func ParseHexColor(s string) (color.RGBA, error) {
	hex := strings.TrimPrefix(s, "#")
	if len(hex) == 3 {
		hex = string([]byte{hex[0], hex[0], hex[1], hex[1], hex[2], hex[2]})
	}
	if len(s) == 0 || s[0] != '#' || len(hex) != 6 {
		return color.RGBA{}, fmt.Errorf("%w: color %q", ErrInvalidOption, s)
	}
	v, err := strconv.ParseUint(hex, 16, 32)
	if err != nil {
		return color.RGBA{}, fmt.Errorf("%w: color %q", ErrInvalidOption, s)
	}
	return color.RGBA{R: uint8(v >> 16), G: uint8(v >> 8), B: uint8(v), A: 0xff}, nil
}
