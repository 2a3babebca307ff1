package codes

import (
	"time"

	"tecsoqr/internal/engine/payload"
	"tecsoqr/internal/engine/render"
	"tecsoqr/internal/pkg/parser"
)

type GenerateRequest struct {
	Content       payload.Content
	Customization render.Customization
	Output        render.Output
	APIKeyID      string
	UserAgent     string
}

type Result struct {
	Code  *Code
	Image []byte
}

type Service struct {
	repo      *Repository
	cache     *render.Cache
	retention time.Duration
	now       func() time.Time
}

// NewService wires history storage and the image cache. A zero retention
// keeps codes forever.
func NewService(repo *Repository, cache *render.Cache, retention time.Duration) *Service {
	return &Service{repo: repo, cache: cache, retention: retention, now: time.Now}
}

// Generate encodes the content, renders it and records it in history.
func (s *Service) Generate(req *GenerateRequest) (*Result, error) {
	p, err := payload.Encode(req.Content)
	if err != nil {
		return nil, err
	}

	cust := req.Customization.WithDefaults()
	out := req.Output.WithDefaults()
	img, err := s.render(p, cust, out)
	if err != nil {
		return nil, err
	}

	id, err := GenerateID(s.repo)
	if err != nil {
		return nil, err
	}

	os, browser := parser.ParseUserAgent(req.UserAgent)
	now := s.now()
	code := &Code{
		ID:            id,
		APIKeyID:      req.APIKeyID,
		Type:          req.Content.Type(),
		Payload:       p,
		Format:        string(out.Format),
		Size:          out.Size,
		Margin:        out.MarginModules(),
		Level:         string(out.Level),
		Foreground:    cust.Foreground,
		Background:    cust.Background,
		ClientOS:      os,
		ClientBrowser: browser,
		CreatedAt:     now.Unix(),
	}
	if s.retention > 0 {
		exp := now.Add(s.retention).Unix()
		code.ExpiresAt = &exp
	}

	if err := s.repo.Create(code); err != nil {
		return nil, err
	}

	return &Result{Code: code, Image: img}, nil
}

// Get returns a stored code; expired codes are reported as not found.
func (s *Service) Get(id string) (*Code, error) {
	if !IsValidID(id) {
		return nil, ErrNotFound
	}
	code, err := s.repo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if code.Expired(s.now().Unix()) {
		return nil, ErrNotFound
	}
	return code, nil
}

// Image re-renders a stored code with its original options.
func (s *Service) Image(id string) (*Code, []byte, error) {
	code, err := s.Get(id)
	if err != nil {
		return nil, nil, err
	}
	img, err := s.render(code.Payload, code.Customization(), code.Output())
	if err != nil {
		return nil, nil, err
	}
	return code, img, nil
}

func (s *Service) List(apiKeyID string, limit, offset int) ([]*Code, error) {
	return s.repo.ListByAPIKey(apiKeyID, limit, offset)
}

func (s *Service) PurgeExpired() (int64, error) {
	return s.repo.DeleteExpired(s.now().Unix())
}

func (s *Service) render(p string, c render.Customization, o render.Output) ([]byte, error) {
	if s.cache != nil {
		return s.cache.Render(p, c, o)
	}
	return render.Image(p, c, o)
}
