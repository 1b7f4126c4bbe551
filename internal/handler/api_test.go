package handler_test

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/VYR4L/backend-expense-tracker/internal/config"
	"github.com/VYR4L/backend-expense-tracker/internal/database"
	"github.com/VYR4L/backend-expense-tracker/internal/router"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func newTestRouter(t *testing.T) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)

	db, err := gorm.Open(sqlite.Open("file::memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("open database: %v", err)
	}
	sqlDB, err := db.DB()
	if err != nil {
		t.Fatalf("get sql db: %v", err)
	}
	sqlDB.SetMaxOpenConns(1)
	if err := database.AutoMigrate(db); err != nil {
		t.Fatalf("migrate: %v", err)
	}

	cfg := &config.Config{
		Server:   config.ServerConfig{Mode: gin.TestMode},
		JWT:      config.JWTConfig{Secret: "api-test-secret", Issuer: "expense-tracker", ExpireHours: 2},
		Security: config.SecurityConfig{BcryptCost: 4, AdminToken: "admin-secret"},
	}

	log := logrus.New()
	log.SetOutput(io.Discard)

	return router.Setup(cfg, db, log)
}

func doJSON(t *testing.T, r *gin.Engine, method, path, token, body string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func decode(t *testing.T, w *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var out map[string]any
	if err := json.Unmarshal(w.Body.Bytes(), &out); err != nil {
		t.Fatalf("decode %q: %v", w.Body.String(), err)
	}
	return out
}

// registerAndLogin creates an account and returns its bearer token and id.
func registerAndLogin(t *testing.T, r *gin.Engine, email string) (string, float64) {
	t.Helper()

	w := doJSON(t, r, http.MethodPost, "/users", "", fmt.Sprintf(
		`{"email":%q,"first_name":"Api","last_name":"Test","password":"secret123","confirm_password":"secret123"}`, email))
	if w.Code != http.StatusCreated {
		t.Fatalf("register status = %d, body %s", w.Code, w.Body.String())
	}
	userID := decode(t, w)["id"].(float64)

	form := url.Values{"username": {email}, "password": {"secret123"}}
	req := httptest.NewRequest(http.MethodPost, "/auth/login", strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	lw := httptest.NewRecorder()
	r.ServeHTTP(lw, req)
	if lw.Code != http.StatusOK {
		t.Fatalf("login status = %d, body %s", lw.Code, lw.Body.String())
	}

	body := decode(t, lw)
	if body["token_type"] != "bearer" {
		t.Errorf("token_type = %v", body["token_type"])
	}
	token, _ := body["access_token"].(string)
	if token == "" {
		t.Fatal("no access_token in login response")
	}
	return token, userID
}

func TestTransactionFlowUpdatesBalance(t *testing.T) {
	r := newTestRouter(t)
	token, userID := registerAndLogin(t, r, "flow@example.com")

	w := doJSON(t, r, http.MethodPost, "/categories", token,
		`{"name":"Salary","type":"income","color":"#00ff00"}`)
	if w.Code != http.StatusCreated {
		t.Fatalf("create category status = %d, body %s", w.Code, w.Body.String())
	}
	incomeCat := decode(t, w)["id"].(float64)

	w = doJSON(t, r, http.MethodPost, "/categories", token,
		`{"name":"Food","type":"expense","color":"#ff0000"}`)
	if w.Code != http.StatusCreated {
		t.Fatalf("create category status = %d", w.Code)
	}
	expenseCat := decode(t, w)["id"].(float64)

	w = doJSON(t, r, http.MethodPost, "/transactions", token, fmt.Sprintf(
		`{"description":"paycheck","amount":5000,"type":"income","category_id":%d,"occurred_at":"2024-06-01T00:00:00Z"}`, int(incomeCat)))
	if w.Code != http.StatusCreated {
		t.Fatalf("create income status = %d, body %s", w.Code, w.Body.String())
	}

	w = doJSON(t, r, http.MethodPost, "/transactions", token, fmt.Sprintf(
		`{"description":"groceries","amount":1500,"type":"expense","category_id":%d,"occurred_at":"2024-06-02T00:00:00Z"}`, int(expenseCat)))
	if w.Code != http.StatusCreated {
		t.Fatalf("create expense status = %d, body %s", w.Code, w.Body.String())
	}

	w = doJSON(t, r, http.MethodGet, fmt.Sprintf("/balances/%d", int(userID)), token, "")
	if w.Code != http.StatusOK {
		t.Fatalf("get balance status = %d, body %s", w.Code, w.Body.String())
	}
	balance := decode(t, w)
	if balance["current_balance"] != "3500" {
		t.Errorf("current_balance = %v, want 3500", balance["current_balance"])
	}
	if balance["total_income"] != "5000" {
		t.Errorf("total_income = %v, want 5000", balance["total_income"])
	}
	if balance["total_expenses"] != "1500" {
		t.Errorf("total_expenses = %v, want 1500", balance["total_expenses"])
	}
	for _, key := range []string{"monthly_net", "projected_month_end_balance", "total_net"} {
		if _, ok := balance[key]; !ok {
			t.Errorf("derived field %q missing from balance response", key)
		}
	}
}

func TestBalanceIsScopedToCaller(t *testing.T) {
	r := newTestRouter(t)
	token, _ := registerAndLogin(t, r, "peek@example.com")
	_, otherID := registerAndLogin(t, r, "victim@example.com")

	w := doJSON(t, r, http.MethodGet, fmt.Sprintf("/balances/%d", int(otherID)), token, "")
	if w.Code != http.StatusNotFound {
		t.Errorf("cross-user balance status = %d, want 404", w.Code)
	}
	if decode(t, w)["error"] != "Balance not found for this user" {
		t.Errorf("body = %s", w.Body.String())
	}
}

func TestGoalAddAmountEndpointClamps(t *testing.T) {
	r := newTestRouter(t)
	token, _ := registerAndLogin(t, r, "goalapi@example.com")

	w := doJSON(t, r, http.MethodPost, "/goals", token,
		`{"name":"Vacation","target_amount":1000,"current_amount":900,"color":"#0000ff"}`)
	if w.Code != http.StatusCreated {
		t.Fatalf("create goal status = %d, body %s", w.Code, w.Body.String())
	}
	goalID := decode(t, w)["id"].(float64)

	w = doJSON(t, r, http.MethodPatch, fmt.Sprintf("/goals/%d/add-amount", int(goalID)), token,
		`{"amount":500}`)
	if w.Code != http.StatusOK {
		t.Fatalf("add-amount status = %d, body %s", w.Code, w.Body.String())
	}
	goal := decode(t, w)
	if goal["current_amount"] != "1000" {
		t.Errorf("current_amount = %v, want 1000", goal["current_amount"])
	}
	if goal["percent_complete"] != "100" {
		t.Errorf("percent_complete = %v, want 100", goal["percent_complete"])
	}

	w = doJSON(t, r, http.MethodPatch, fmt.Sprintf("/goals/%d/add-amount", int(goalID)), token,
		`{"amount":-5}`)
	if w.Code != http.StatusBadRequest {
		t.Errorf("negative add-amount status = %d, want 400", w.Code)
	}
}

func TestExportEndpoints(t *testing.T) {
	r := newTestRouter(t)
	token, _ := registerAndLogin(t, r, "export@example.com")

	w := doJSON(t, r, http.MethodPost, "/categories", token,
		`{"name":"Salary","type":"income","color":"#00ff00"}`)
	if w.Code != http.StatusCreated {
		t.Fatalf("create category status = %d", w.Code)
	}
	catID := int(decode(t, w)["id"].(float64))

	for _, body := range []string{
		fmt.Sprintf(`{"description":"paycheck","amount":5000,"type":"income","category_id":%d,"occurred_at":"2024-06-01T00:00:00Z"}`, catID),
		fmt.Sprintf(`{"description":"bonus","amount":250.50,"type":"income","category_id":%d,"occurred_at":"2024-06-05T00:00:00Z"}`, catID),
	} {
		if w := doJSON(t, r, http.MethodPost, "/transactions", token, body); w.Code != http.StatusCreated {
			t.Fatalf("create transaction status = %d, body %s", w.Code, w.Body.String())
		}
	}

	w = doJSON(t, r, http.MethodGet, "/transactions/export/csv", token, "")
	if w.Code != http.StatusOK {
		t.Fatalf("csv export status = %d, body %s", w.Code, w.Body.String())
	}
	if ct := w.Header().Get("Content-Type"); !strings.HasPrefix(ct, "text/csv") {
		t.Errorf("csv Content-Type = %q", ct)
	}
	cd := w.Header().Get("Content-Disposition")
	if !strings.HasPrefix(cd, `attachment; filename="transactions_`) || !strings.HasSuffix(cd, `.csv"`) {
		t.Errorf("csv Content-Disposition = %q", cd)
	}

	records, err := csv.NewReader(w.Body).ReadAll()
	if err != nil {
		t.Fatalf("parse csv: %v", err)
	}
	if len(records) != 3 {
		t.Fatalf("csv rows = %d, want header + 2", len(records))
	}
	wantHeader := []string{"ID", "Type", "Description", "Amount", "Category ID", "Occurred At", "Created At"}
	for i, col := range wantHeader {
		if records[0][i] != col {
			t.Errorf("header[%d] = %q, want %q", i, records[0][i], col)
		}
	}
	if records[1][2] != "paycheck" || records[1][3] != "5000.00" {
		t.Errorf("row 1 = %v", records[1])
	}
	if records[2][2] != "bonus" || records[2][3] != "250.50" {
		t.Errorf("row 2 = %v", records[2])
	}

	w = doJSON(t, r, http.MethodGet, "/transactions/export/xlsx", token, "")
	if w.Code != http.StatusOK {
		t.Fatalf("xlsx export status = %d", w.Code)
	}
	if ct := w.Header().Get("Content-Type"); ct != "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet" {
		t.Errorf("xlsx Content-Type = %q", ct)
	}
	if w.Body.Len() == 0 {
		t.Error("xlsx body is empty")
	}
}

func TestAuthRequired(t *testing.T) {
	r := newTestRouter(t)

	w := doJSON(t, r, http.MethodGet, "/transactions", "", "")
	if w.Code != http.StatusUnauthorized {
		t.Errorf("no-token status = %d, want 401", w.Code)
	}

	w = doJSON(t, r, http.MethodGet, "/transactions", "not-a-jwt", "")
	if w.Code != http.StatusUnauthorized {
		t.Errorf("bad-token status = %d, want 401", w.Code)
	}
}

func TestDeletedUserTokenRejected(t *testing.T) {
	r := newTestRouter(t)
	token, userID := registerAndLogin(t, r, "selfdelete@example.com")

	w := doJSON(t, r, http.MethodDelete, fmt.Sprintf("/users/%d", int(userID)), token, "")
	if w.Code != http.StatusNoContent {
		t.Fatalf("delete user status = %d, body %s", w.Code, w.Body.String())
	}

	w = doJSON(t, r, http.MethodGet, "/auth/me", token, "")
	if w.Code != http.StatusUnauthorized {
		t.Errorf("stale-token status = %d, want 401", w.Code)
	}
}

func TestAdminEndpoints(t *testing.T) {
	r := newTestRouter(t)

	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	if w.Code != http.StatusForbidden {
		t.Errorf("no-token /health status = %d, want 403", w.Code)
	}

	req = httptest.NewRequest(http.MethodGet, "/health", nil)
	req.Header.Set("X-Admin-Token", "admin-secret")
	w = httptest.NewRecorder()
	r.ServeHTTP(w, req)
	if w.Code != http.StatusOK {
		t.Errorf("admin /health status = %d, want 200", w.Code)
	}

	// liveness stays open
	req = httptest.NewRequest(http.MethodGet, "/", nil)
	w = httptest.NewRecorder()
	r.ServeHTTP(w, req)
	if w.Code != http.StatusOK {
		t.Errorf("liveness status = %d, want 200", w.Code)
	}
}

func TestMe(t *testing.T) {
	r := newTestRouter(t)
	token, userID := registerAndLogin(t, r, "me@example.com")

	w := doJSON(t, r, http.MethodGet, "/auth/me", token, "")
	if w.Code != http.StatusOK {
		t.Fatalf("me status = %d, body %s", w.Code, w.Body.String())
	}
	me := decode(t, w)
	if me["email"] != "me@example.com" {
		t.Errorf("email = %v", me["email"])
	}
	if me["id"].(float64) != userID {
		t.Errorf("id = %v, want %v", me["id"], userID)
	}
	if _, ok := me["hashed_password"]; ok {
		t.Error("hashed password leaked in response")
	}
}
