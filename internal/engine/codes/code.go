package codes

import (
	"tecsoqr/internal/engine/payload"
	"tecsoqr/internal/engine/render"
)

// Code is one generated QR code kept in history.
type Code struct {
	ID            string       `json:"id"`
	APIKeyID      string       `json:"api_key_id,omitempty"`
	Type          payload.Type `json:"type"`
	Payload       string       `json:"payload"`
	Format        string       `json:"format"`
	Size          int          `json:"size"`
	Margin        int          `json:"margin"`
	Level         string       `json:"error_correction_level"`
	Foreground    string       `json:"foreground"`
	Background    string       `json:"background"`
	ClientOS      string       `json:"client_os"`
	ClientBrowser string       `json:"client_browser"`
	CreatedAt     int64        `json:"created_at"`
	ExpiresAt     *int64       `json:"expires_at,omitempty"`
}

// Output rebuilds the render options the code was generated with.
func (c *Code) Output() render.Output {
	return render.Output{
		Format: render.Format(c.Format),
		Size:   c.Size,
		Margin: render.Margin(c.Margin),
		Level:  render.Level(c.Level),
	}
}

func (c *Code) Customization() render.Customization {
	return render.Customization{Foreground: c.Foreground, Background: c.Background}
}

// Expired reports whether the code is past its retention at unix time now.
func (c *Code) Expired(now int64) bool {
	return c.ExpiresAt != nil && *c.ExpiresAt <= now
}
