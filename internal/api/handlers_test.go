package api

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"
	"time"

	"github.com/cyra-app/cyra/internal/docstore"
	"github.com/gofiber/fiber/v2"
)

const testSecretKey = "0123456789abcdef0123456789abcdef"

func newTestApp(t *testing.T) *fiber.App {
	t.Helper()

	store, err := docstore.OpenSQLite(filepath.Join(t.TempDir(), "cyra.db"))
	if err != nil {
		t.Fatalf("open test store: %v", err)
	}

	app := fiber.New()
	RegisterRoutes(app, NewHandler(store, testSecretKey, time.UTC))
	return app
}

func jsonRequest(t *testing.T, method string, target string, payload any, token string) *http.Request {
	t.Helper()

	var body *bytes.Reader
	if payload != nil {
		encoded, err := json.Marshal(payload)
		if err != nil {
			t.Fatalf("encode request payload: %v", err)
		}
		body = bytes.NewReader(encoded)
	} else {
		body = bytes.NewReader(nil)
	}

	request := httptest.NewRequest(method, target, body)
	request.Header.Set("Content-Type", "application/json")
	if token != "" {
		request.Header.Set("Authorization", "Bearer "+token)
	}
	return request
}

func decodeResponse(t *testing.T, response *http.Response) map[string]any {
	t.Helper()
	defer response.Body.Close()

	decoded := map[string]any{}
	if err := json.NewDecoder(response.Body).Decode(&decoded); err != nil {
		t.Fatalf("decode response body: %v", err)
	}
	return decoded
}

func registerTestUser(t *testing.T, app *fiber.App, email string) string {
	t.Helper()

	payload := map[string]string{"fullname": "Ada Lovelace", "email": email, "password": "secret123"}
	response, err := app.Test(jsonRequest(t, http.MethodPost, "/api/register", payload, ""), -1)
	if err != nil {
		t.Fatalf("register request failed: %v", err)
	}
	if response.StatusCode != http.StatusCreated {
		t.Fatalf("expected status 201, got %d", response.StatusCode)
	}
	body := decodeResponse(t, response)
	uid, _ := body["uid"].(string)
	if uid == "" {
		t.Fatalf("expected uid in register response, got %v", body)
	}
	return uid
}

func loginTestUser(t *testing.T, app *fiber.App, email string) string {
	t.Helper()

	payload := map[string]string{"email": email, "password": "secret123"}
	response, err := app.Test(jsonRequest(t, http.MethodPost, "/api/login", payload, ""), -1)
	if err != nil {
		t.Fatalf("login request failed: %v", err)
	}
	if response.StatusCode != http.StatusOK {
		t.Fatalf("expected status 200, got %d", response.StatusCode)
	}
	body := decodeResponse(t, response)
	token, _ := body["token"].(string)
	if token == "" {
		t.Fatalf("expected token in login response, got %v", body)
	}
	return token
}

func TestHealthz(t *testing.T) {
	app := newTestApp(t)

	response, err := app.Test(httptest.NewRequest(http.MethodGet, "/healthz", nil), -1)
	if err != nil {
		t.Fatalf("healthz request failed: %v", err)
	}
	if response.StatusCode != http.StatusOK {
		t.Fatalf("expected status 200, got %d", response.StatusCode)
	}
	body := decodeResponse(t, response)
	if body["status"] != "ok" {
		t.Fatalf("expected status ok, got %v", body)
	}
}

func TestRegisterValidation(t *testing.T) {
	app := newTestApp(t)

	cases := []struct {
		name    string
		payload map[string]string
	}{
		{name: "short fullname", payload: map[string]string{"fullname": "Al", "email": "a@b.co", "password": "secret123"}},
		{name: "bad email", payload: map[string]string{"fullname": "Ada Lovelace", "email": "nope", "password": "secret123"}},
		{name: "short password", payload: map[string]string{"fullname": "Ada Lovelace", "email": "a@b.co", "password": "abc"}},
	}

	for _, testCase := range cases {
		testCase := testCase
		t.Run(testCase.name, func(t *testing.T) {
			response, err := app.Test(jsonRequest(t, http.MethodPost, "/api/register", testCase.payload, ""), -1)
			if err != nil {
				t.Fatalf("register request failed: %v", err)
			}
			if response.StatusCode != http.StatusBadRequest {
				t.Fatalf("expected status 400, got %d", response.StatusCode)
			}
			body := decodeResponse(t, response)
			errorBody, _ := body["error"].(map[string]any)
			if errorBody["kind"] != "validation_error" {
				t.Fatalf("expected validation_error kind, got %v", body)
			}
		})
	}
}

func TestRegisterDuplicateEmail(t *testing.T) {
	app := newTestApp(t)
	registerTestUser(t, app, "ada@example.com")

	payload := map[string]string{"fullname": "Ada Lovelace", "email": "ada@example.com", "password": "secret123"}
	response, err := app.Test(jsonRequest(t, http.MethodPost, "/api/register", payload, ""), -1)
	if err != nil {
		t.Fatalf("register request failed: %v", err)
	}
	if response.StatusCode != http.StatusBadRequest {
		t.Fatalf("expected status 400, got %d", response.StatusCode)
	}
}

func TestLoginWrongPassword(t *testing.T) {
	app := newTestApp(t)
	registerTestUser(t, app, "ada@example.com")

	payload := map[string]string{"email": "ada@example.com", "password": "wrongpass"}
	response, err := app.Test(jsonRequest(t, http.MethodPost, "/api/login", payload, ""), -1)
	if err != nil {
		t.Fatalf("login request failed: %v", err)
	}
	if response.StatusCode != http.StatusUnauthorized {
		t.Fatalf("expected status 401, got %d", response.StatusCode)
	}
}

func TestProtectedRoutesRequireToken(t *testing.T) {
	app := newTestApp(t)

	targets := []struct {
		method string
		path   string
	}{
		{method: http.MethodGet, path: "/api/user/cycle-status"},
		{method: http.MethodGet, path: "/api/user/periods-events"},
		{method: http.MethodPost, path: "/api/cycle"},
	}

	for _, target := range targets {
		response, err := app.Test(jsonRequest(t, target.method, target.path, nil, ""), -1)
		if err != nil {
			t.Fatalf("%s %s failed: %v", target.method, target.path, err)
		}
		if response.StatusCode != http.StatusUnauthorized {
			t.Fatalf("expected 401 for %s %s, got %d", target.method, target.path, response.StatusCode)
		}
	}

	response, err := app.Test(jsonRequest(t, http.MethodGet, "/api/user/cycle-status", nil, "not-a-token"), -1)
	if err != nil {
		t.Fatalf("bad token request failed: %v", err)
	}
	if response.StatusCode != http.StatusUnauthorized {
		t.Fatalf("expected 401 for a garbage token, got %d", response.StatusCode)
	}
}

func TestLoginReportsCycleDataFlag(t *testing.T) {
	app := newTestApp(t)
	registerTestUser(t, app, "ada@example.com")

	payload := map[string]string{"email": "ada@example.com", "password": "secret123"}
	response, err := app.Test(jsonRequest(t, http.MethodPost, "/api/login", payload, ""), -1)
	if err != nil {
		t.Fatalf("login request failed: %v", err)
	}
	body := decodeResponse(t, response)
	if flag, ok := body["hasCycleData"].(bool); !ok || flag {
		t.Fatalf("expected hasCycleData false, got %v", body["hasCycleData"])
	}

	token := loginTestUser(t, app, "ada@example.com")
	cyclePayload := map[string]any{"cycleLength": 27, "periodStartDate": "2024-03-01", "periodEndDate": "2024-03-05"}
	saveResponse, err := app.Test(jsonRequest(t, http.MethodPost, "/api/cycle", cyclePayload, token), -1)
	if err != nil {
		t.Fatalf("save cycle request failed: %v", err)
	}
	if saveResponse.StatusCode != http.StatusOK {
		t.Fatalf("expected status 200, got %d", saveResponse.StatusCode)
	}

	response, err = app.Test(jsonRequest(t, http.MethodPost, "/api/login", payload, ""), -1)
	if err != nil {
		t.Fatalf("second login request failed: %v", err)
	}
	body = decodeResponse(t, response)
	if flag, ok := body["hasCycleData"].(bool); !ok || !flag {
		t.Fatalf("expected hasCycleData true after baseline save, got %v", body["hasCycleData"])
	}
}

func TestCycleStatusFlow(t *testing.T) {
	app := newTestApp(t)
	registerTestUser(t, app, "ada@example.com")
	token := loginTestUser(t, app, "ada@example.com")

	response, err := app.Test(jsonRequest(t, http.MethodGet, "/api/user/cycle-status", nil, token), -1)
	if err != nil {
		t.Fatalf("cycle-status request failed: %v", err)
	}
	if response.StatusCode != http.StatusOK {
		t.Fatalf("expected status 200, got %d", response.StatusCode)
	}
	body := decodeResponse(t, response)
	if body["status"] != "NO_DATA" {
		t.Fatalf("expected NO_DATA before any cycle save, got %v", body["status"])
	}
	if body["fullname"] != "Ada Lovelace" {
		t.Fatalf("expected profile name in status, got %v", body["fullname"])
	}

	cyclePayload := map[string]any{"cycleLength": 27, "periodStartDate": "2024-03-01", "periodEndDate": "2024-03-05"}
	if _, err := app.Test(jsonRequest(t, http.MethodPost, "/api/cycle", cyclePayload, token), -1); err != nil {
		t.Fatalf("save cycle request failed: %v", err)
	}

	response, err = app.Test(jsonRequest(t, http.MethodGet, "/api/user/cycle-status", nil, token), -1)
	if err != nil {
		t.Fatalf("cycle-status request failed: %v", err)
	}
	body = decodeResponse(t, response)
	if body["status"] == "NO_DATA" {
		t.Fatalf("expected a resolved status after baseline save, got %v", body["status"])
	}
	if body["currentCycleMessage"] == "" {
		t.Fatal("expected a status message")
	}
}

func TestEventLifecycle(t *testing.T) {
	app := newTestApp(t)
	registerTestUser(t, app, "ada@example.com")
	token := loginTestUser(t, app, "ada@example.com")

	addPayload := map[string]any{"date": "2024-03-01", "eventType": "start", "note": "light"}
	response, err := app.Test(jsonRequest(t, http.MethodPost, "/api/user/add-event", addPayload, token), -1)
	if err != nil {
		t.Fatalf("add-event request failed: %v", err)
	}
	if response.StatusCode != http.StatusOK {
		t.Fatalf("expected status 200, got %d", response.StatusCode)
	}
	body := decodeResponse(t, response)
	if body["message"] != "Event added successfully" {
		t.Fatalf("unexpected add-event message %v", body["message"])
	}

	endPayload := map[string]any{"date": "2024-03-05", "eventType": "end"}
	if _, err := app.Test(jsonRequest(t, http.MethodPost, "/api/user/add-event", endPayload, token), -1); err != nil {
		t.Fatalf("add end event failed: %v", err)
	}

	response, err = app.Test(jsonRequest(t, http.MethodGet, "/api/user/periods-events?year=2024", nil, token), -1)
	if err != nil {
		t.Fatalf("periods-events request failed: %v", err)
	}
	body = decodeResponse(t, response)
	events, _ := body["events"].([]any)
	if len(events) != 2 {
		t.Fatalf("expected 2 events, got %v", body["events"])
	}

	response, err = app.Test(jsonRequest(t, http.MethodGet, "/api/user/period-prediction", nil, token), -1)
	if err != nil {
		t.Fatalf("period-prediction request failed: %v", err)
	}
	if response.StatusCode != http.StatusOK {
		t.Fatalf("expected status 200, got %d", response.StatusCode)
	}
	body = decodeResponse(t, response)
	events, _ = body["events"].([]any)
	if len(events) != 2 {
		t.Fatalf("expected 2 prediction events, got %v", body["events"])
	}

	removePayload := map[string]any{"date": "2024-03-01"}
	response, err = app.Test(jsonRequest(t, http.MethodPost, "/api/user/remove-event", removePayload, token), -1)
	if err != nil {
		t.Fatalf("remove-event request failed: %v", err)
	}
	body = decodeResponse(t, response)
	if body["message"] != "Event and notes removed successfully" {
		t.Fatalf("unexpected remove-event message %v", body["message"])
	}

	response, err = app.Test(jsonRequest(t, http.MethodGet, "/api/user/periods-events?year=2024", nil, token), -1)
	if err != nil {
		t.Fatalf("periods-events request failed: %v", err)
	}
	body = decodeResponse(t, response)
	events, _ = body["events"].([]any)
	if len(events) != 0 {
		t.Fatalf("expected no events after removal, got %v", body["events"])
	}
}

func TestRemoveNoteMessages(t *testing.T) {
	app := newTestApp(t)
	registerTestUser(t, app, "ada@example.com")
	token := loginTestUser(t, app, "ada@example.com")

	notePayload := map[string]any{"date": "2024-03-03", "eventType": "noteOnly", "note": "cramps"}
	if _, err := app.Test(jsonRequest(t, http.MethodPost, "/api/user/add-event", notePayload, token), -1); err != nil {
		t.Fatalf("add note failed: %v", err)
	}

	removePayload := map[string]any{"date": "2024-03-03"}
	response, err := app.Test(jsonRequest(t, http.MethodPost, "/api/user/remove-note", removePayload, token), -1)
	if err != nil {
		t.Fatalf("remove-note request failed: %v", err)
	}
	body := decodeResponse(t, response)
	if body["message"] != "Note removed successfully" {
		t.Fatalf("unexpected remove-note message %v", body["message"])
	}

	response, err = app.Test(jsonRequest(t, http.MethodPost, "/api/user/remove-note", removePayload, token), -1)
	if err != nil {
		t.Fatalf("second remove-note request failed: %v", err)
	}
	body = decodeResponse(t, response)
	if body["message"] != "Note not found for the given date" {
		t.Fatalf("unexpected second remove-note message %v", body["message"])
	}
}

func TestUpdateFullNameEndpoint(t *testing.T) {
	app := newTestApp(t)
	registerTestUser(t, app, "ada@example.com")
	token := loginTestUser(t, app, "ada@example.com")

	payload := map[string]string{"fullname": "Grace Hopper"}
	response, err := app.Test(jsonRequest(t, http.MethodPost, "/api/user/update-fullname", payload, token), -1)
	if err != nil {
		t.Fatalf("update-fullname request failed: %v", err)
	}
	if response.StatusCode != http.StatusOK {
		t.Fatalf("expected status 200, got %d", response.StatusCode)
	}

	statusResponse, err := app.Test(jsonRequest(t, http.MethodGet, "/api/user/cycle-status", nil, token), -1)
	if err != nil {
		t.Fatalf("cycle-status request failed: %v", err)
	}
	body := decodeResponse(t, statusResponse)
	if body["fullname"] != "Grace Hopper" {
		t.Fatalf("expected updated name, got %v", body["fullname"])
	}
}

func TestNotificationEndpoint(t *testing.T) {
	app := newTestApp(t)
	registerTestUser(t, app, "ada@example.com")
	token := loginTestUser(t, app, "ada@example.com")

	response, err := app.Test(jsonRequest(t, http.MethodGet, "/api/user/notification", nil, token), -1)
	if err != nil {
		t.Fatalf("notification request failed: %v", err)
	}
	if response.StatusCode != http.StatusOK {
		t.Fatalf("expected status 200, got %d", response.StatusCode)
	}
	body := decodeResponse(t, response)
	if body["status"] != "NO_DATA" {
		t.Fatalf("expected NO_DATA, got %v", body["status"])
	}
	if body["message"] != "No cycle data available." {
		t.Fatalf("unexpected notification message %v", body["message"])
	}
}

func TestCycleHistoryEndpoint(t *testing.T) {
	app := newTestApp(t)
	registerTestUser(t, app, "ada@example.com")
	token := loginTestUser(t, app, "ada@example.com")

	cyclePayload := map[string]any{"cycleLength": 27, "periodStartDate": "2024-03-01", "periodEndDate": "2024-03-05"}
	if _, err := app.Test(jsonRequest(t, http.MethodPost, "/api/cycle", cyclePayload, token), -1); err != nil {
		t.Fatalf("save cycle request failed: %v", err)
	}

	response, err := app.Test(jsonRequest(t, http.MethodGet, "/api/user/cycle-history?year=2024", nil, token), -1)
	if err != nil {
		t.Fatalf("cycle-history request failed: %v", err)
	}
	if response.StatusCode != http.StatusOK {
		t.Fatalf("expected status 200, got %d", response.StatusCode)
	}
	body := decodeResponse(t, response)
	if body["year"] != float64(2024) {
		t.Fatalf("expected year 2024, got %v", body["year"])
	}
	months, _ := body["months"].([]any)
	if len(months) != 1 {
		t.Fatalf("expected 1 history month, got %v", body["months"])
	}
}

func TestPeriodPredictionWithoutData(t *testing.T) {
	app := newTestApp(t)
	registerTestUser(t, app, "ada@example.com")
	token := loginTestUser(t, app, "ada@example.com")

	response, err := app.Test(jsonRequest(t, http.MethodGet, "/api/user/period-prediction", nil, token), -1)
	if err != nil {
		t.Fatalf("period-prediction request failed: %v", err)
	}
	if response.StatusCode != http.StatusBadRequest {
		t.Fatalf("expected status 400 without cycle data, got %d", response.StatusCode)
	}
}
