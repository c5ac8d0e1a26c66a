package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"tutorly/internal/middleware"
	"tutorly/internal/models"
	"tutorly/internal/repositories"
	"tutorly/internal/services/pricing"
	"tutorly/internal/services/transaction"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v5"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

const testSecret = "handler-secret"

type MockTransactionService struct {
	mock.Mock
}

func (m *MockTransactionService) RecordSale(ctx context.Context, req transaction.SaleRequest) (*models.Transaction, error) {
	args := m.Called(ctx, req)
	tx, _ := args.Get(0).(*models.Transaction)
	return tx, args.Error(1)
}

func (m *MockTransactionService) GetTransaction(ctx context.Context, id string) (*models.Transaction, error) {
	args := m.Called(ctx, id)
	tx, _ := args.Get(0).(*models.Transaction)
	return tx, args.Error(1)
}

func (m *MockTransactionService) ListTeacherTransactions(ctx context.Context, teacherID string, limit, offset int) (*transaction.Page, error) {
	args := m.Called(ctx, teacherID, limit, offset)
	page, _ := args.Get(0).(*transaction.Page)
	return page, args.Error(1)
}

type MockAuditLogRepository struct {
	mock.Mock
}

func (m *MockAuditLogRepository) RecordAudit(ctx context.Context, entry *models.AuditLog) error {
	return m.Called(ctx, entry).Error(0)
}

func (m *MockAuditLogRepository) List(ctx context.Context, limit, offset int) ([]models.AuditLog, int64, error) {
	args := m.Called(ctx, limit, offset)
	entries, _ := args.Get(0).([]models.AuditLog)
	return entries, args.Get(1).(int64), args.Error(2)
}

type testEnv struct {
	app          *fiber.App
	fees         pricing.Service
	transactions *MockTransactionService
	audit        *MockAuditLogRepository
}

func newTestEnv(t *testing.T, checks map[string]HealthCheckFunc) *testEnv {
	t.Helper()

	audit := new(MockAuditLogRepository)
	audit.On("RecordAudit", mock.Anything, mock.Anything).Return(nil).Maybe()

	fees := pricing.NewService(repositories.NewMemoryFeeRuleRepository(), audit, pricing.DefaultConfig(), nil, nil)
	transactions := new(MockTransactionService)

	app := fiber.New()
	SetupRoutes(app, Handlers{
		Health:       NewHealthHandler("test", checks),
		Fees:         NewFeeHandler(fees, nil),
		Transactions: NewTransactionHandler(transactions, nil),
		Audit:        NewAuditHandler(audit, nil),
		Auth:         middleware.NewAuthMiddleware(testSecret, nil),
	})

	return &testEnv{app: app, fees: fees, transactions: transactions, audit: audit}
}

func bearer(t *testing.T, role string) string {
	t.Helper()
	claims := &models.UserClaims{
		RegisteredClaims: jwt.RegisteredClaims{ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour))},
		UserID:           "user-" + role,
		Name:             "Test " + role,
		Role:             role,
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(testSecret))
	require.NoError(t, err)
	return "Bearer " + token
}

func (e *testEnv) do(t *testing.T, method, path, auth string, body interface{}) (*http.Response, map[string]interface{}) {
	t.Helper()

	var reader io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(raw)
	}

	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	if auth != "" {
		req.Header.Set("Authorization", auth)
	}

	resp, err := e.app.Test(req)
	require.NoError(t, err)

	var decoded map[string]interface{}
	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	if len(raw) > 0 && raw[0] == '{' {
		require.NoError(t, json.Unmarshal(raw, &decoded))
	}
	return resp, decoded
}

func decimalField(t *testing.T, m map[string]interface{}, key string) decimal.Decimal {
	t.Helper()
	s, ok := m[key].(string)
	require.True(t, ok, "field %s missing", key)
	return decimal.RequireFromString(s)
}

func TestQuote(t *testing.T) {
	env := newTestEnv(t, nil)
	_, err := env.fees.SaveRule(context.Background(), pricing.Admin{ID: "a1"}, pricing.RuleInput{
		Scope:              models.FeeScopeTeacher,
		TeacherID:          "t1",
		PlatformFeePercent: decimal.NewFromInt(10),
	})
	require.NoError(t, err)

	resp, body := env.do(t, "POST", "/api/fees/quote", bearer(t, models.RoleTeacher), map[string]interface{}{
		"teacher_id":   "t1",
		"item_id":      "l1",
		"item_type":    "LESSON",
		"gross_amount": "99.99",
	})
	require.Equal(t, fiber.StatusOK, resp.StatusCode)

	data := body["data"].(map[string]interface{})
	assert.Equal(t, "TEACHER", data["scope"])
	assert.True(t, decimal.NewFromInt(10).Equal(decimalField(t, data, "platform_fee_percent")))
	assert.True(t, decimal.RequireFromString("10").Equal(decimalField(t, data, "platform_fee")))
	assert.True(t, decimal.RequireFromString("89.99").Equal(decimalField(t, data, "net_amount")))
}

func TestQuote_Fallback(t *testing.T) {
	env := newTestEnv(t, nil)

	resp, body := env.do(t, "POST", "/api/fees/quote", bearer(t, models.RoleStudent), map[string]interface{}{
		"teacher_id":   "t9",
		"gross_amount": "100",
	})
	require.Equal(t, fiber.StatusOK, resp.StatusCode)

	data := body["data"].(map[string]interface{})
	assert.Equal(t, "FALLBACK", data["scope"])
	assert.True(t, decimal.NewFromInt(15).Equal(decimalField(t, data, "platform_fee")))
}

func TestQuote_Invalid(t *testing.T) {
	env := newTestEnv(t, nil)

	resp, body := env.do(t, "POST", "/api/fees/quote", bearer(t, models.RoleTeacher), map[string]interface{}{
		"gross_amount": "-1",
	})
	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
	fields := body["fields"].(map[string]interface{})
	assert.Contains(t, fields, "teacher_id")
	assert.Contains(t, fields, "gross_amount")

	resp, _ = env.do(t, "POST", "/api/fees/quote", "", map[string]interface{}{"teacher_id": "t1"})
	assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)
}

func TestFeeRuleAdmin(t *testing.T) {
	env := newTestEnv(t, nil)
	admin := bearer(t, models.RoleAdmin)

	resp, _ := env.do(t, "GET", "/api/admin/fee-rules", bearer(t, models.RoleTeacher), nil)
	assert.Equal(t, fiber.StatusForbidden, resp.StatusCode)

	resp, body := env.do(t, "POST", "/api/admin/fee-rules", admin, map[string]interface{}{
		"scope":                "GLOBAL",
		"platform_fee_percent": "12.5",
	})
	require.Equal(t, fiber.StatusCreated, resp.StatusCode)
	created := body["data"].(map[string]interface{})
	ruleID := created["id"].(string)
	assert.NotEmpty(t, ruleID)
	assert.Equal(t, "user-admin", created["updated_by"])

	resp, _ = env.do(t, "POST", "/api/admin/fee-rules", admin, map[string]interface{}{
		"scope":                "TEACHER",
		"teacher_id":           "t1",
		"platform_fee_percent": "150",
	})
	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)

	resp, _ = env.do(t, "POST", "/api/admin/fee-rules", admin, map[string]interface{}{
		"scope":                "TEACHER",
		"platform_fee_percent": "10",
	})
	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)

	resp, body = env.do(t, "GET", "/api/admin/fee-rules", admin, nil)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	assert.Len(t, body["data"].([]interface{}), 1)

	resp, body = env.do(t, "POST", "/api/admin/fee-rules/"+ruleID+"/deactivate", admin, nil)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	assert.Equal(t, false, body["data"].(map[string]interface{})["active"])

	resp, _ = env.do(t, "POST", "/api/admin/fee-rules/missing/deactivate", admin, nil)
	assert.Equal(t, fiber.StatusNotFound, resp.StatusCode)
}

func TestFeeRuleAdmin_ClientChosenID(t *testing.T) {
	env := newTestEnv(t, nil)
	admin := bearer(t, models.RoleAdmin)
	input := map[string]interface{}{
		"id":                   "rule-teacher-t7",
		"scope":                "TEACHER",
		"teacher_id":           "t7",
		"platform_fee_percent": "9",
	}

	resp, _ := env.do(t, "GET", "/api/admin/fee-rules/rule-teacher-t7", admin, nil)
	assert.Equal(t, fiber.StatusNotFound, resp.StatusCode)

	resp, body := env.do(t, "POST", "/api/admin/fee-rules", admin, input)
	require.Equal(t, fiber.StatusCreated, resp.StatusCode)
	assert.Equal(t, "rule-teacher-t7", body["data"].(map[string]interface{})["id"])

	input["platform_fee_percent"] = "8"
	resp, body = env.do(t, "POST", "/api/admin/fee-rules", admin, input)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	assert.Equal(t, "8", body["data"].(map[string]interface{})["platform_fee_percent"])

	resp, body = env.do(t, "GET", "/api/admin/fee-rules/rule-teacher-t7", admin, nil)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	assert.Equal(t, "t7", body["data"].(map[string]interface{})["teacher_id"])
}

func TestRecordSale(t *testing.T) {
	env := newTestEnv(t, nil)
	auth := bearer(t, models.RoleTeacher)

	tx := &models.Transaction{ID: "tx1", Reference: "booking-1", TeacherID: "t1"}
	env.transactions.On("RecordSale", mock.Anything, mock.MatchedBy(func(req transaction.SaleRequest) bool {
		return req.Reference == "booking-1" && req.GrossAmount.Equal(decimal.NewFromInt(40))
	})).Return(tx, nil).Once()
	env.transactions.On("RecordSale", mock.Anything, mock.MatchedBy(func(req transaction.SaleRequest) bool {
		return req.Reference == "booking-2"
	})).Return(nil, transaction.ErrReferenceConflict).Once()

	resp, body := env.do(t, "POST", "/api/transactions", auth, map[string]interface{}{
		"reference":    "booking-1",
		"teacher_id":   "t1",
		"gross_amount": "40",
	})
	require.Equal(t, fiber.StatusCreated, resp.StatusCode)
	assert.Equal(t, "tx1", body["data"].(map[string]interface{})["id"])

	resp, _ = env.do(t, "POST", "/api/transactions", auth, map[string]interface{}{
		"reference":    "booking-2",
		"teacher_id":   "t1",
		"gross_amount": "40",
	})
	assert.Equal(t, fiber.StatusConflict, resp.StatusCode)

	resp, _ = env.do(t, "POST", "/api/transactions", auth, map[string]interface{}{"teacher_id": "t1"})
	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)

	env.transactions.AssertExpectations(t)
}

func TestGetTransaction(t *testing.T) {
	env := newTestEnv(t, nil)
	auth := bearer(t, models.RoleTeacher)

	env.transactions.On("GetTransaction", mock.Anything, "tx1").Return(&models.Transaction{ID: "tx1"}, nil)
	env.transactions.On("GetTransaction", mock.Anything, "nope").Return(nil, transaction.ErrTransactionNotFound)
	env.transactions.On("GetTransaction", mock.Anything, "boom").Return(nil, errors.New("db down"))

	resp, _ := env.do(t, "GET", "/api/transactions/tx1", auth, nil)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)

	resp, _ = env.do(t, "GET", "/api/transactions/nope", auth, nil)
	assert.Equal(t, fiber.StatusNotFound, resp.StatusCode)

	resp, body := env.do(t, "GET", "/api/transactions/boom", auth, nil)
	assert.Equal(t, fiber.StatusInternalServerError, resp.StatusCode)
	assert.Equal(t, "internal server error", body["error"])
}

func TestListTeacherTransactions(t *testing.T) {
	env := newTestEnv(t, nil)

	env.transactions.On("ListTeacherTransactions", mock.Anything, "t1", 10, 10).
		Return(&transaction.Page{Transactions: []models.Transaction{{ID: "tx3"}}, Total: 11}, nil)

	resp, body := env.do(t, "GET", "/api/teachers/t1/transactions?page=2&limit=10", bearer(t, models.RoleTeacher), nil)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)

	meta := body["meta"].(map[string]interface{})
	assert.Equal(t, float64(2), meta["total_pages"])
	assert.Len(t, body["data"].([]interface{}), 1)
}

func TestListAuditLogs(t *testing.T) {
	env := newTestEnv(t, nil)

	env.audit.On("List", mock.Anything, 20, 0).
		Return([]models.AuditLog{{ID: "a1", Action: models.AuditActionFeeRuleCreated}}, int64(1), nil)

	resp, body := env.do(t, "GET", "/api/admin/audit-logs", bearer(t, models.RoleAdmin), nil)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	assert.Len(t, body["data"].([]interface{}), 1)
}

func TestHealthCheck(t *testing.T) {
	env := newTestEnv(t, map[string]HealthCheckFunc{
		"database": func(context.Context) error { return nil },
	})
	resp, body := env.do(t, "GET", "/health", "", nil)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
	assert.Equal(t, "ok", body["status"])

	env = newTestEnv(t, map[string]HealthCheckFunc{
		"database": func(context.Context) error { return nil },
		"redis":    func(context.Context) error { return errors.New("refused") },
	})
	resp, body = env.do(t, "GET", "/health", "", nil)
	assert.Equal(t, fiber.StatusServiceUnavailable, resp.StatusCode)
	assert.Equal(t, "disconnected", body["services"].(map[string]interface{})["redis"])
}
