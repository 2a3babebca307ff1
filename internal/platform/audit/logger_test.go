package audit

import (
	"net/http/httptest"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
)

func TestLogger_LogAndList(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New() error = %v", err)
	}
	defer db.Close()

	l := NewLogger(db)

	req := httptest.NewRequest("POST", "/api/v1/keys", nil)
	req.Header.Set("User-Agent", "test-agent")

	mock.ExpectExec("INSERT INTO audit_logs").
		WithArgs(sqlmock.AnyArg(), "admin", ActionKeyCreate, "api_key", "key_1", `{"name":"ci"}`, req.RemoteAddr, "test-agent", sqlmock.AnyArg()).
		WillReturnResult(sqlmock.NewResult(1, 1))

	l.Log(req, "admin", ActionKeyCreate, "api_key", "key_1", map[string]interface{}{"name": "ci"})
	l.Wait()

	mock.ExpectQuery("SELECT (.+) FROM audit_logs").
		WithArgs(10).
		WillReturnRows(sqlmock.NewRows([]string{"id", "actor", "action", "resource_type", "resource_id", "metadata", "ip_address", "user_agent", "created_at"}).
			AddRow("audit_1", "admin", ActionKeyCreate, "api_key", "key_1", `{"name":"ci"}`, "1.2.3.4", "ua", 1700000000))

	logs, err := l.List(10)
	if err != nil {
		t.Fatalf("List() error = %v", err)
	}
	if len(logs) != 1 || logs[0].Metadata["name"] != "ci" {
		t.Errorf("List() = %+v", logs)
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("unmet expectations: %v", err)
	}
}
