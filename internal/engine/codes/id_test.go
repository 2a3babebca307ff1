package codes

import (
	"errors"
	"strings"
	"testing"
)

type MockChecker struct {
	taken   bool
	err     error
	checked int
}

func (m *MockChecker) ExistsByID(id string) (bool, error) {
	m.checked++
	return m.taken, m.err
}

func TestGenerateID(t *testing.T) {
	checker := &MockChecker{}
	id, err := GenerateID(checker)
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if !strings.HasPrefix(id, "qr_") || len(id) != 13 {
		t.Errorf("Unexpected id shape %q", id)
	}
	if !IsValidID(id) {
		t.Errorf("IsValidID(%q) = false", id)
	}

	taken := &MockChecker{taken: true}
	if _, err := GenerateID(taken); !errors.Is(err, ErrIDExhausted) {
		t.Errorf("Expected ErrIDExhausted, got %v", err)
	}
	if taken.checked != 5 {
		t.Errorf("Expected 5 attempts, got %d", taken.checked)
	}

	failing := &MockChecker{err: errors.New("db error")}
	if _, err := GenerateID(failing); err == nil {
		t.Error("Expected error from checker, got nil")
	}
}

func TestIsValidID(t *testing.T) {
	for _, id := range []string{"", "qr_", "qr_abc", "xx_abcdefghij", "qr_abcdefghi!", "qr_abcdefghijk"} {
		if IsValidID(id) {
			t.Errorf("IsValidID(%q) = true", id)
		}
	}
}
