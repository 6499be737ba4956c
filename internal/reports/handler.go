package reports

import (
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"

	"advisor-backend/internal/advice"
	"advisor-backend/internal/shared/server/middleware"
	"advisor-backend/internal/shared/server/respond"
	"advisor-backend/internal/usage"
)

// Handler wires HTTP handlers to the reports service.
type Handler struct {
	Svc *Service
}

// NewHandler constructs a Handler.
func NewHandler(svc *Service) *Handler {
	return &Handler{Svc: svc}
}

// RegisterRoutes attaches report routes to the router group.
func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.POST("/reports/generate", h.generateReport)
	rg.POST("/reports", h.saveReport)
	rg.GET("/reports", h.listReports)
	rg.GET("/reports/:id", h.getReport)
	rg.DELETE("/reports/:id", h.deleteReport)
	rg.POST("/reports/:id/letter", h.draftLetter)
	rg.GET("/reports/:id/export", h.exportReport)
}

type issueRequest struct {
	Description  string `json:"description"`
	ActionsTaken string `json:"actionsTaken"`
}

type projectDetailsRequest struct {
	ProjectName        string         `json:"projectName"`
	ProjectDescription string         `json:"projectDescription"`
	ContractType       string         `json:"contractType"`
	OrganizationRole   string         `json:"organizationRole"`
	Issues             []issueRequest `json:"issues"`
}

type generateRequest struct {
	ProjectDetails projectDetailsRequest `json:"projectDetails"`
	Mode           string                `json:"mode"`
	DocumentID     string                `json:"documentId"`
}

func (h *Handler) generateReport(c *gin.Context) {
	userID := middleware.UserIDFromContext(c)

	var req generateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respond.Error(c, http.StatusBadRequest, "validation_error", "invalid request body", nil)
		return
	}
	if details := validateGenerateRequest(req.ProjectDetails); len(details) > 0 {
		respond.Error(c, http.StatusBadRequest, "validation_error", "missing required project fields", details)
		return
	}

	project := advice.ProjectDetails{
		ProjectName:        strings.TrimSpace(req.ProjectDetails.ProjectName),
		ProjectDescription: req.ProjectDetails.ProjectDescription,
		ContractType:       advice.ParseContractForm(req.ProjectDetails.ContractType),
		OrganizationRole:   advice.ParseOrgRole(req.ProjectDetails.OrganizationRole),
	}
	for _, issue := range req.ProjectDetails.Issues {
		project.Issues = append(project.Issues, advice.Issue{
			Description:  issue.Description,
			ActionsTaken: issue.ActionsTaken,
		})
	}

	report, err := h.Svc.Generate(c.Request.Context(), userID, GenerateInput{
		Project:    project,
		Mode:       req.Mode,
		DocumentID: req.DocumentID,
	})
	if err != nil {
		respondServiceError(c, err, "failed to generate report")
		return
	}
	respond.JSON(c, http.StatusOK, report)
}

func validateGenerateRequest(p projectDetailsRequest) []map[string]string {
	var details []map[string]string
	if strings.TrimSpace(p.ProjectName) == "" {
		details = append(details, map[string]string{"field": "projectName", "issue": "required"})
	}
	if strings.TrimSpace(p.ContractType) == "" {
		details = append(details, map[string]string{"field": "contractType", "issue": "required"})
	}
	if strings.TrimSpace(p.OrganizationRole) == "" {
		details = append(details, map[string]string{"field": "organizationRole", "issue": "required"})
	}
	if len(p.Issues) == 0 {
		details = append(details, map[string]string{"field": "issues", "issue": "required"})
	}
	for _, issue := range p.Issues {
		if strings.TrimSpace(issue.Description) == "" {
			details = append(details, map[string]string{"field": "issues.description", "issue": "required"})
			break
		}
	}
	return details
}

func (h *Handler) saveReport(c *gin.Context) {
	userID := middleware.UserIDFromContext(c)

	var report Report
	if err := c.ShouldBindJSON(&report); err != nil {
		respond.Error(c, http.StatusBadRequest, "validation_error", "invalid request body", nil)
		return
	}

	saved, err := h.Svc.Save(c.Request.Context(), userID, report)
	if err != nil {
		respondServiceError(c, err, "failed to save report")
		return
	}
	respond.JSON(c, http.StatusOK, saved)
}

func (h *Handler) listReports(c *gin.Context) {
	if isGuest, ok := c.Get("isGuest"); ok {
		if guest, ok2 := isGuest.(bool); ok2 && guest {
			respond.Error(c, http.StatusUnauthorized, "login_required", "Login required to view saved reports", nil)
			return
		}
	}

	userID := middleware.UserIDFromContext(c)

	limit := 20
	offset := 0
	if v := c.Query("limit"); v != "" {
		if parsed, err := strconv.Atoi(v); err == nil {
			limit = parsed
		}
	}
	// Both repo backends page with the same defaults.
	if limit <= 0 {
		limit = 20
	}
	if limit > 100 {
		limit = 100
	}
	if v := c.Query("offset"); v != "" {
		if parsed, err := strconv.Atoi(v); err == nil {
			offset = parsed
		}
	}
	if offset < 0 {
		offset = 0
	}

	list, err := h.Svc.List(c.Request.Context(), userID, limit, offset)
	if err != nil {
		respondServiceError(c, err, "failed to list reports")
		return
	}

	resp := make([]gin.H, 0, len(list))
	for _, r := range list {
		resp = append(resp, gin.H{
			"id":           r.ID,
			"date":         r.CreatedAt,
			"projectName":  r.Project.ProjectName,
			"contractType": r.Project.ContractType,
			"issueCount":   len(r.Project.Issues),
		})
	}
	respond.JSON(c, http.StatusOK, resp)
}

func (h *Handler) getReport(c *gin.Context) {
	userID := middleware.UserIDFromContext(c)
	reportID := c.Param("id")

	report, err := h.Svc.Get(c.Request.Context(), userID, reportID)
	if err != nil {
		respondServiceError(c, err, "failed to fetch report")
		return
	}
	respond.JSON(c, http.StatusOK, report)
}

func (h *Handler) deleteReport(c *gin.Context) {
	userID := middleware.UserIDFromContext(c)
	reportID := c.Param("id")

	if err := h.Svc.Delete(c.Request.Context(), userID, reportID); err != nil {
		respondServiceError(c, err, "failed to delete report")
		return
	}
	c.Status(http.StatusNoContent)
}

type letterRequest struct {
	SenderName string `json:"senderName"`
}

func (h *Handler) draftLetter(c *gin.Context) {
	userID := middleware.UserIDFromContext(c)
	reportID := c.Param("id")

	var req letterRequest
	if c.Request.Body != nil && c.Request.ContentLength > 0 {
		if err := c.ShouldBindJSON(&req); err != nil {
			respond.Error(c, http.StatusBadRequest, "validation_error", "invalid request body", nil)
			return
		}
	}

	letter, err := h.Svc.Letter(c.Request.Context(), userID, reportID, req.SenderName)
	if err != nil {
		respondServiceError(c, err, "failed to draft letter")
		return
	}
	respond.JSON(c, http.StatusOK, letter)
}

func (h *Handler) exportReport(c *gin.Context) {
	userID := middleware.UserIDFromContext(c)
	reportID := c.Param("id")

	report, err := h.Svc.Get(c.Request.Context(), userID, reportID)
	if err != nil {
		respondServiceError(c, err, "failed to export report")
		return
	}

	format := c.DefaultQuery("format", "text")
	switch format {
	case "text":
		c.Data(http.StatusOK, "text/plain; charset=utf-8", []byte(RenderText(report)))
	case "html":
		html, err := RenderHTML(report)
		if err != nil {
			respond.Error(c, http.StatusInternalServerError, "internal_error", "failed to export report", nil)
			return
		}
		c.Data(http.StatusOK, "text/html; charset=utf-8", html)
	default:
		respond.Error(c, http.StatusBadRequest, "validation_error", "format must be text or html", []map[string]string{
			{"field": "format", "issue": "unsupported"},
		})
	}
}

func respondServiceError(c *gin.Context, err error, fallback string) {
	switch {
	case errors.Is(err, ErrInvalidInput):
		respond.Error(c, http.StatusBadRequest, "validation_error", err.Error(), nil)
	case errors.Is(err, ErrNotFound):
		respond.Error(c, http.StatusNotFound, "not_found", "report not found", nil)
	case errors.Is(err, ErrForbidden):
		respond.Error(c, http.StatusForbidden, "forbidden", "report belongs to another user", nil)
	case errors.Is(err, usage.ErrLimitReached):
		respond.Error(c, http.StatusTooManyRequests, "limit_reached", "You've reached your report limit. Upgrade your plan to continue.", []map[string]string{
			{"field": "usage", "issue": "limit_reached"},
		})
	case errors.Is(err, ErrGenerationFailed):
		respond.Error(c, http.StatusBadGateway, "generation_failed", "generation service failed, please retry", nil)
	case errors.Is(err, ErrAlignmentMismatch):
		respond.Error(c, http.StatusInternalServerError, "alignment_mismatch", "analysis output misaligned with issues", nil)
	default:
		respond.Error(c, http.StatusInternalServerError, "internal_error", fallback, nil)
	}
}
