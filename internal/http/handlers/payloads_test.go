package handlers

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
)

func bindBody[T any](t *testing.T, body string, dst *T) (bool, *httptest.ResponseRecorder) {
	t.Helper()
	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodPost, "/", strings.NewReader(body))
	c.Request.Header.Set("Content-Type", "application/json")
	return BindJSONOrError(c, dst), w
}

func TestCompleteTripPayloadAcceptsZeroEndOdometer(t *testing.T) {
	var payload completeTripPayload
	ok, w := bindBody(t, `{"endOdometer":0}`, &payload)
	if !ok {
		t.Fatalf("binding rejected zero end odometer: %s", w.Body.String())
	}
	if payload.EndOdometer == nil || *payload.EndOdometer != 0 {
		t.Fatalf("expected endOdometer 0, got %v", payload.EndOdometer)
	}
}

func TestCompleteTripPayloadRequiresEndOdometer(t *testing.T) {
	var payload completeTripPayload
	ok, w := bindBody(t, `{"revenue":100}`, &payload)
	if ok {
		t.Fatal("expected binding to fail without endOdometer")
	}
	if w.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", w.Code)
	}
}

func TestCompleteTripPayloadRejectsNegativeEndOdometer(t *testing.T) {
	var payload completeTripPayload
	ok, _ := bindBody(t, `{"endOdometer":-1}`, &payload)
	if ok {
		t.Fatal("expected binding to fail on negative endOdometer")
	}
}

func TestCreateExpensePayloadAcceptsZeroAmount(t *testing.T) {
	var payload createExpensePayload
	ok, w := bindBody(t, `{"vehicleId":1,"expenseType":"Toll","amount":0,"date":"2026-01-02"}`, &payload)
	if !ok {
		t.Fatalf("binding rejected zero amount: %s", w.Body.String())
	}
	if payload.Amount == nil || *payload.Amount != 0 {
		t.Fatalf("expected amount 0, got %v", payload.Amount)
	}
}

func TestCreateExpensePayloadRejectsNegativeAmount(t *testing.T) {
	var payload createExpensePayload
	ok, _ := bindBody(t, `{"vehicleId":1,"expenseType":"Toll","amount":-5,"date":"2026-01-02"}`, &payload)
	if ok {
		t.Fatal("expected binding to fail on negative amount")
	}
}

func TestUpdateExpensePayloadAcceptsZeroAmount(t *testing.T) {
	var payload updateExpensePayload
	ok, w := bindBody(t, `{"amount":0}`, &payload)
	if !ok {
		t.Fatalf("binding rejected zero amount: %s", w.Body.String())
	}
	if payload.Amount == nil || *payload.Amount != 0 {
		t.Fatalf("expected amount 0, got %v", payload.Amount)
	}
}
