package codes

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"tecsoqr/internal/engine/payload"
	"tecsoqr/internal/engine/render"
)

func newTestService(t *testing.T, retention time.Duration) *Service {
	return NewService(NewRepository(setupTestDB(t)), render.NewCache(time.Minute), retention)
}

func TestService_Generate(t *testing.T) {
	svc := newTestService(t, time.Hour)

	res, err := svc.Generate(&GenerateRequest{
		Content:   payload.Email{Email: "a@b.com", Subject: "Hi"},
		Output:    render.Output{Size: 128},
		APIKeyID:  "key_1",
		UserAgent: "curl/8.4.0",
	})
	require.NoError(t, err)
	assert.NotEmpty(t, res.Image)
	assert.Equal(t, "mailto:a@b.com?subject=Hi", res.Code.Payload)
	assert.Equal(t, payload.TypeEmail, res.Code.Type)
	assert.Equal(t, "png", res.Code.Format)
	assert.Equal(t, "M", res.Code.Level)
	assert.Equal(t, "#000000", res.Code.Foreground)
	assert.Equal(t, "CLI", res.Code.ClientOS)
	require.NotNil(t, res.Code.ExpiresAt)

	got, err := svc.Get(res.Code.ID)
	require.NoError(t, err)
	assert.Equal(t, res.Code.Payload, got.Payload)

	_, img, err := svc.Image(res.Code.ID)
	require.NoError(t, err)
	assert.Equal(t, res.Image, img)
}

func TestService_GenerateErrors(t *testing.T) {
	svc := newTestService(t, 0)

	_, err := svc.Generate(&GenerateRequest{Content: payload.Text{}})
	assert.ErrorIs(t, err, payload.ErrEmptyPayload)

	_, err = svc.Generate(&GenerateRequest{Content: payload.Text{Text: "x"}, Output: render.Output{Format: render.FormatSVG}})
	assert.ErrorIs(t, err, render.ErrUnsupportedFormat)

	_, err = svc.Generate(&GenerateRequest{Content: payload.Text{Text: "x"}, Output: render.Output{Size: 64}})
	assert.ErrorIs(t, err, render.ErrInvalidSize)
}

func TestService_Expiry(t *testing.T) {
	svc := newTestService(t, time.Minute)
	base := time.Unix(1_700_000_000, 0)
	svc.now = func() time.Time { return base }

	res, err := svc.Generate(&GenerateRequest{Content: payload.Text{Text: "x"}, Output: render.Output{Size: 128}})
	require.NoError(t, err)

	svc.now = func() time.Time { return base.Add(2 * time.Minute) }
	_, err = svc.Get(res.Code.ID)
	assert.True(t, errors.Is(err, ErrNotFound))

	n, err := svc.PurgeExpired()
	require.NoError(t, err)
	assert.Equal(t, int64(1), n)

	_, err = svc.Get("not-an-id")
	assert.ErrorIs(t, err, ErrNotFound)
}
