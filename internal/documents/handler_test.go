package documents

import (
	"bytes"
	"context"
	"encoding/json"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"

	"advisor-backend/internal/shared/server/middleware"
	local "advisor-backend/internal/shared/storage/object/local"
)

func setupDocumentsRouter(t *testing.T) (*gin.Engine, *Service) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	svc := &Service{
		Store: local.New(t.TempDir()),
		Repo:  NewMemoryRepo(),
	}
	handler := NewHandler(svc)

	router := gin.New()
	router.Use(middleware.Auth("dev"))
	api := router.Group("/api/v1")
	handler.RegisterRoutes(api)

	return router, svc
}

func uploadFile(t *testing.T, router *gin.Engine, fileName, content string) *httptest.ResponseRecorder {
	t.Helper()
	var body bytes.Buffer
	mw := multipart.NewWriter(&body)
	part, err := mw.CreateFormFile("file", fileName)
	if err != nil {
		t.Fatalf("create form file: %v", err)
	}
	if _, err := part.Write([]byte(content)); err != nil {
		t.Fatalf("write form file: %v", err)
	}
	if err := mw.Close(); err != nil {
		t.Fatalf("close multipart: %v", err)
	}

	req := httptest.NewRequest(http.MethodPost, "/api/v1/documents", &body)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	addGuestHeader(req)
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)
	return resp
}

func addGuestHeader(req *http.Request) {
	req.Header.Set("X-Guest-Id", "test-guest")
}

func TestUploadExtractsContractText(t *testing.T) {
	router, svc := setupDocumentsRouter(t)

	contract := "Clause 4.8 Interim payments shall be made monthly.\nClause 2.26 Extension of time."
	resp := uploadFile(t, router, "contract.txt", contract)
	if resp.Code != http.StatusCreated {
		t.Fatalf("status = %d, body = %s", resp.Code, resp.Body.String())
	}

	var created DocumentResponse
	if err := json.NewDecoder(resp.Body).Decode(&created); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if created.DocumentID == "" {
		t.Fatalf("expected documentId")
	}
	if !created.Extracted {
		t.Fatalf("expected extracted flag")
	}

	text, err := svc.ExtractedText(context.Background(), "guest:test-guest", created.DocumentID)
	if err != nil {
		t.Fatalf("ExtractedText: %v", err)
	}
	if !strings.Contains(text, "Clause 4.8 Interim payments") {
		t.Fatalf("extracted text = %q", text)
	}
}

func TestUploadRequiresFile(t *testing.T) {
	router, _ := setupDocumentsRouter(t)

	req := httptest.NewRequest(http.MethodPost, "/api/v1/documents", strings.NewReader("{}"))
	req.Header.Set("Content-Type", "application/json")
	addGuestHeader(req)
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)

	if resp.Code != http.StatusBadRequest {
		t.Fatalf("status = %d", resp.Code)
	}
}

func TestGetDocument(t *testing.T) {
	router, _ := setupDocumentsRouter(t)

	resp := uploadFile(t, router, "contract.txt", "Payment terms.")
	var created DocumentResponse
	if err := json.NewDecoder(resp.Body).Decode(&created); err != nil {
		t.Fatalf("decode response: %v", err)
	}

	req := httptest.NewRequest(http.MethodGet, "/api/v1/documents/"+created.DocumentID, nil)
	addGuestHeader(req)
	getResp := httptest.NewRecorder()
	router.ServeHTTP(getResp, req)
	if getResp.Code != http.StatusOK {
		t.Fatalf("get status = %d", getResp.Code)
	}

	req = httptest.NewRequest(http.MethodGet, "/api/v1/documents/missing", nil)
	addGuestHeader(req)
	missResp := httptest.NewRecorder()
	router.ServeHTTP(missResp, req)
	if missResp.Code != http.StatusNotFound {
		t.Fatalf("missing status = %d", missResp.Code)
	}
}

func TestListBlocksGuests(t *testing.T) {
	router, _ := setupDocumentsRouter(t)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/documents", nil)
	addGuestHeader(req)
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)

	if resp.Code != http.StatusUnauthorized {
		t.Fatalf("status = %d", resp.Code)
	}
	if !strings.Contains(resp.Body.String(), "login_required") {
		t.Fatalf("body = %s", resp.Body.String())
	}
}
