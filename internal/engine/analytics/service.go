package analytics

import (
	"errors"
	"strconv"
	"strings"
	"time"
)

var ErrInvalidPeriod = errors.New("invalid period: use <n>h, <n>d or <n>w")

const maxPeriod = 366 * 24 * time.Hour

type Summary struct {
	Period string       `json:"period"`
	Since  int64        `json:"since"`
	Total  int          `json:"total"`
	ByType []TypeCount  `json:"by_type"`
	Daily  []DailyCount `json:"daily"`
}

type Service struct {
	repo *Repository
	now  func() time.Time
}

func NewService(repo *Repository) *Service {
	return &Service{repo: repo, now: time.Now}
}

// Usage summarizes what an API key generated over the trailing period.
func (s *Service) Usage(apiKeyID, period string) (*Summary, error) {
	if period == "" {
		period = "30d"
	}
	d, err := ParsePeriod(period)
	if err != nil {
		return nil, err
	}
	since := s.now().Add(-d).Unix()

	byType, err := s.repo.CountByType(apiKeyID, since)
	if err != nil {
		return nil, err
	}
	daily, err := s.repo.CountByDay(apiKeyID, since)
	if err != nil {
		return nil, err
	}

	sum := &Summary{Period: period, Since: since, ByType: byType, Daily: daily}
	if sum.ByType == nil {
		sum.ByType = []TypeCount{}
	}
	if sum.Daily == nil {
		sum.Daily = []DailyCount{}
	}
	for _, c := range byType {
		sum.Total += c.Count
	}
	return sum, nil
}

// ParsePeriod reads "24h", "30d" or "4w", capped at a year.
func ParsePeriod(p string) (time.Duration, error) {
	if len(p) < 2 {
		return 0, ErrInvalidPeriod
	}
	n, err := strconv.Atoi(p[:len(p)-1])
	if err != nil || n <= 0 {
		return 0, ErrInvalidPeriod
	}

	var unit time.Duration
	switch strings.ToLower(p[len(p)-1:]) {
	case "h":
		unit = time.Hour
	case "d":
		unit = 24 * time.Hour
	case "w":
		unit = 7 * 24 * time.Hour
	default:
		return 0, ErrInvalidPeriod
	}

	d := time.Duration(n) * unit
	if d > maxPeriod || d/unit != time.Duration(n) {
		return 0, ErrInvalidPeriod
	}
	return d, nil
}
