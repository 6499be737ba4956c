package reports

import (
	"bytes"
	"encoding/json"
	"errors"
	"math/rand"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"

	"advisor-backend/internal/advice"
	"advisor-backend/internal/llm"
	"advisor-backend/internal/shared/auth"
	"advisor-backend/internal/shared/server/middleware"
)

var errBoom = errors.New("boom")

func setupReportsRouter(t *testing.T, client llm.Client) (*gin.Engine, *MemoryRepo) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	repo := NewMemoryRepo()
	svc := &Service{
		Repo: repo,
		LLM:  client,
		Now:  func() time.Time { return time.Date(2026, 3, 14, 9, 0, 0, 0, time.UTC) },
		Rand: rand.New(rand.NewSource(7)),
	}
	handler := NewHandler(svc)

	router := gin.New()
	router.Use(middleware.Auth("dev"))
	api := router.Group("/api/v1")
	handler.RegisterRoutes(api)

	return router, repo
}

func generatePayload() map[string]any {
	return map[string]any{
		"projectDetails": map[string]any{
			"projectName":      "Riverside Plaza",
			"contractType":     "JCT Standard Building Contract",
			"organizationRole": "Main Contractor",
			"issues": []map[string]string{
				{"description": "Payment certificate withheld without a pay less notice", "actionsTaken": "Emailed the QS twice"},
				{"description": "Access to the site was delayed by three weeks"},
			},
		},
	}
}

func doJSON(t *testing.T, router *gin.Engine, method, path string, payload any, identity func(*http.Request)) *httptest.ResponseRecorder {
	t.Helper()
	var body *bytes.Reader
	if payload != nil {
		raw, err := json.Marshal(payload)
		if err != nil {
			t.Fatalf("marshal payload: %v", err)
		}
		body = bytes.NewReader(raw)
	} else {
		body = bytes.NewReader(nil)
	}
	req := httptest.NewRequest(method, path, body)
	req.Header.Set("Content-Type", "application/json")
	identity(req)
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)
	return resp
}

func asGuest(id string) func(*http.Request) {
	return func(req *http.Request) {
		req.Header.Set("X-Guest-Id", id)
	}
}

func asUser(t *testing.T, sub string) func(*http.Request) {
	t.Helper()
	token, err := auth.SignJWT(auth.Claims{Sub: sub, Email: sub + "@example.com"})
	if err != nil {
		t.Fatalf("sign jwt: %v", err)
	}
	return func(req *http.Request) {
		req.Header.Set("Authorization", "Bearer "+token)
	}
}

func TestGenerateEndpointOffline(t *testing.T) {
	router, _ := setupReportsRouter(t, nil)

	resp := doJSON(t, router, http.MethodPost, "/api/v1/reports/generate", generatePayload(), asGuest("alpha"))
	if resp.Code != http.StatusOK {
		t.Fatalf("status = %d, body = %s", resp.Code, resp.Body.String())
	}

	var report Report
	if err := json.NewDecoder(resp.Body).Decode(&report); err != nil {
		t.Fatalf("decode report: %v", err)
	}
	if report.ID == "" {
		t.Fatalf("expected report id")
	}
	if len(report.Analyses) != 2 {
		t.Fatalf("expected 2 analyses, got %d", len(report.Analyses))
	}
	if report.Project.ContractType != advice.FormJCTStandard {
		t.Fatalf("contract type = %v", report.Project.ContractType)
	}
	joined := strings.Join(report.Analyses[0].RelevantClauses, " ")
	if !strings.Contains(joined, "Clause 4.8") {
		t.Fatalf("expected Clause 4.8 in %q", joined)
	}
}

func TestGenerateEndpointValidation(t *testing.T) {
	router, _ := setupReportsRouter(t, nil)

	payload := generatePayload()
	payload["projectDetails"].(map[string]any)["contractType"] = ""

	resp := doJSON(t, router, http.MethodPost, "/api/v1/reports/generate", payload, asGuest("alpha"))
	if resp.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, body = %s", resp.Code, resp.Body.String())
	}

	var envelope struct {
		Error struct {
			Code    string              `json:"code"`
			Details []map[string]string `json:"details"`
		} `json:"error"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&envelope); err != nil {
		t.Fatalf("decode error: %v", err)
	}
	if envelope.Error.Code != "validation_error" {
		t.Fatalf("code = %q", envelope.Error.Code)
	}
	if len(envelope.Error.Details) == 0 || envelope.Error.Details[0]["field"] != "contractType" {
		t.Fatalf("details = %v", envelope.Error.Details)
	}
}

func TestGenerateEndpointUpstreamFailure(t *testing.T) {
	router, _ := setupReportsRouter(t, stubLLM{err: errBoom})

	resp := doJSON(t, router, http.MethodPost, "/api/v1/reports/generate", generatePayload(), asGuest("alpha"))
	if resp.Code != http.StatusBadGateway {
		t.Fatalf("status = %d, body = %s", resp.Code, resp.Body.String())
	}
	if !strings.Contains(resp.Body.String(), "generation_failed") {
		t.Fatalf("body = %s", resp.Body.String())
	}
}

func TestSaveFetchDeleteFlow(t *testing.T) {
	router, _ := setupReportsRouter(t, nil)
	owner := asGuest("alpha")
	other := asGuest("beta")

	resp := doJSON(t, router, http.MethodPost, "/api/v1/reports/generate", generatePayload(), owner)
	if resp.Code != http.StatusOK {
		t.Fatalf("generate status = %d", resp.Code)
	}
	var report map[string]any
	if err := json.NewDecoder(resp.Body).Decode(&report); err != nil {
		t.Fatalf("decode report: %v", err)
	}
	reportID := report["id"].(string)

	resp = doJSON(t, router, http.MethodPost, "/api/v1/reports", report, owner)
	if resp.Code != http.StatusOK {
		t.Fatalf("save status = %d, body = %s", resp.Code, resp.Body.String())
	}

	resp = doJSON(t, router, http.MethodGet, "/api/v1/reports/"+reportID, nil, owner)
	if resp.Code != http.StatusOK {
		t.Fatalf("get status = %d", resp.Code)
	}

	resp = doJSON(t, router, http.MethodGet, "/api/v1/reports/"+reportID, nil, other)
	if resp.Code != http.StatusForbidden {
		t.Fatalf("cross-user get status = %d", resp.Code)
	}

	resp = doJSON(t, router, http.MethodDelete, "/api/v1/reports/"+reportID, nil, other)
	if resp.Code != http.StatusForbidden {
		t.Fatalf("cross-user delete status = %d", resp.Code)
	}

	resp = doJSON(t, router, http.MethodDelete, "/api/v1/reports/"+reportID, nil, owner)
	if resp.Code != http.StatusNoContent {
		t.Fatalf("delete status = %d", resp.Code)
	}

	resp = doJSON(t, router, http.MethodGet, "/api/v1/reports/"+reportID, nil, owner)
	if resp.Code != http.StatusNotFound {
		t.Fatalf("get after delete status = %d", resp.Code)
	}
}

func TestListRequiresLogin(t *testing.T) {
	router, _ := setupReportsRouter(t, nil)

	resp := doJSON(t, router, http.MethodGet, "/api/v1/reports", nil, asGuest("alpha"))
	if resp.Code != http.StatusUnauthorized {
		t.Fatalf("guest list status = %d", resp.Code)
	}
	if !strings.Contains(resp.Body.String(), "login_required") {
		t.Fatalf("body = %s", resp.Body.String())
	}

	user := asUser(t, "user-1")
	genResp := doJSON(t, router, http.MethodPost, "/api/v1/reports/generate", generatePayload(), user)
	if genResp.Code != http.StatusOK {
		t.Fatalf("generate status = %d", genResp.Code)
	}
	var report map[string]any
	if err := json.NewDecoder(genResp.Body).Decode(&report); err != nil {
		t.Fatalf("decode report: %v", err)
	}
	if resp := doJSON(t, router, http.MethodPost, "/api/v1/reports", report, user); resp.Code != http.StatusOK {
		t.Fatalf("save status = %d", resp.Code)
	}

	resp = doJSON(t, router, http.MethodGet, "/api/v1/reports", nil, user)
	if resp.Code != http.StatusOK {
		t.Fatalf("list status = %d, body = %s", resp.Code, resp.Body.String())
	}
	var list []map[string]any
	if err := json.NewDecoder(resp.Body).Decode(&list); err != nil {
		t.Fatalf("decode list: %v", err)
	}
	if len(list) != 1 {
		t.Fatalf("expected 1 report, got %d", len(list))
	}
	if list[0]["projectName"] != "Riverside Plaza" {
		t.Fatalf("list item = %v", list[0])
	}
}

func TestExportFormats(t *testing.T) {
	router, _ := setupReportsRouter(t, nil)
	owner := asGuest("alpha")

	genResp := doJSON(t, router, http.MethodPost, "/api/v1/reports/generate", generatePayload(), owner)
	var report map[string]any
	if err := json.NewDecoder(genResp.Body).Decode(&report); err != nil {
		t.Fatalf("decode report: %v", err)
	}
	reportID := report["id"].(string)
	if resp := doJSON(t, router, http.MethodPost, "/api/v1/reports", report, owner); resp.Code != http.StatusOK {
		t.Fatalf("save status = %d", resp.Code)
	}

	resp := doJSON(t, router, http.MethodGet, "/api/v1/reports/"+reportID+"/export", nil, owner)
	if resp.Code != http.StatusOK {
		t.Fatalf("text export status = %d", resp.Code)
	}
	if ct := resp.Header().Get("Content-Type"); !strings.HasPrefix(ct, "text/plain") {
		t.Fatalf("content type = %q", ct)
	}
	if !strings.Contains(resp.Body.String(), "CONTRACT ADVISORY REPORT") {
		t.Fatalf("text export body = %s", resp.Body.String())
	}

	resp = doJSON(t, router, http.MethodGet, "/api/v1/reports/"+reportID+"/export?format=html", nil, owner)
	if resp.Code != http.StatusOK {
		t.Fatalf("html export status = %d", resp.Code)
	}
	if ct := resp.Header().Get("Content-Type"); !strings.HasPrefix(ct, "text/html") {
		t.Fatalf("content type = %q", ct)
	}
	if !strings.Contains(resp.Body.String(), "<h1>Contract Advisory Report</h1>") {
		t.Fatalf("html export body = %s", resp.Body.String())
	}

	resp = doJSON(t, router, http.MethodGet, "/api/v1/reports/"+reportID+"/export?format=docx", nil, owner)
	if resp.Code != http.StatusBadRequest {
		t.Fatalf("unsupported format status = %d", resp.Code)
	}
}

func TestLetterEndpoint(t *testing.T) {
	router, _ := setupReportsRouter(t, nil)
	owner := asGuest("alpha")

	genResp := doJSON(t, router, http.MethodPost, "/api/v1/reports/generate", generatePayload(), owner)
	var report map[string]any
	if err := json.NewDecoder(genResp.Body).Decode(&report); err != nil {
		t.Fatalf("decode report: %v", err)
	}
	reportID := report["id"].(string)
	if resp := doJSON(t, router, http.MethodPost, "/api/v1/reports", report, owner); resp.Code != http.StatusOK {
		t.Fatalf("save status = %d", resp.Code)
	}

	resp := doJSON(t, router, http.MethodPost, "/api/v1/reports/"+reportID+"/letter", map[string]string{"senderName": "J. Smith"}, owner)
	if resp.Code != http.StatusOK {
		t.Fatalf("letter status = %d, body = %s", resp.Code, resp.Body.String())
	}

	var letter advice.DraftLetter
	if err := json.NewDecoder(resp.Body).Decode(&letter); err != nil {
		t.Fatalf("decode letter: %v", err)
	}
	if letter.To != "The Employer/Client" {
		t.Fatalf("letter.To = %q", letter.To)
	}
	if letter.Subject == "" || letter.Body == "" {
		t.Fatalf("incomplete letter: %+v", letter)
	}
}
