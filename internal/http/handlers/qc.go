package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/yungbote/image-qc-backend/internal/http/response"
	"github.com/yungbote/image-qc-backend/internal/services"
)

type QCHandler struct {
	review services.ReviewService
	roles  services.RoleService

	// requireReviewerRole gates writes on the Reviewers collection. Off by
	// default: role enforcement is a deployment choice, not a contract.
	requireReviewerRole bool
}

func NewQCHandler(review services.ReviewService, roles services.RoleService, requireReviewerRole bool) *QCHandler {
	return &QCHandler{
		review:              review,
		roles:               roles,
		requireReviewerRole: requireReviewerRole,
	}
}

type toggleRequest struct {
	ProductVariantID string `json:"product_variant_id" binding:"required"`
	ImageIndex       int    `json:"image_index" binding:"required,min=1,max=10"`
	Actor            string `json:"actor" binding:"required,email"`
}

type issueToggleRequest struct {
	ProductVariantID string `json:"product_variant_id" binding:"required"`
	ImageIndex       int    `json:"image_index" binding:"required,min=1,max=10"`
	Actor            string `json:"actor" binding:"required,email"`
	IssueKey         string `json:"issue_key" binding:"required"`
	Value            bool   `json:"value"`
}

// POST /qc/toggle
func (qh *QCHandler) ToggleStatus(c *gin.Context) {
	var req toggleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.RespondError(c, http.StatusBadRequest, "invalid_request", err)
		return
	}
	if !qh.allowWrite(c, req.Actor) {
		return
	}

	newStatus, eventID, err := qh.review.ToggleStatus(c.Request.Context(), req.ProductVariantID, req.ImageIndex, req.Actor)
	if err != nil {
		qh.respondWriteError(c, err)
		return
	}
	response.RespondOK(c, gin.H{"new_status": newStatus, "event_id": eventID})
}

// POST /qc/issues/toggle
func (qh *QCHandler) ToggleIssue(c *gin.Context) {
	var req issueToggleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.RespondError(c, http.StatusBadRequest, "invalid_request", err)
		return
	}
	if !qh.allowWrite(c, req.Actor) {
		return
	}

	eventID, err := qh.review.ToggleIssue(c.Request.Context(), req.ProductVariantID, req.ImageIndex, req.Actor, req.IssueKey, req.Value)
	if err != nil {
		qh.respondWriteError(c, err)
		return
	}
	response.RespondOK(c, gin.H{"status": "ok", "event_id": eventID})
}

func (qh *QCHandler) allowWrite(c *gin.Context, actor string) bool {
	if !qh.requireReviewerRole {
		return true
	}
	if err := qh.roles.RequireReviewer(c.Request.Context(), actor); err != nil {
		qh.respondWriteError(c, err)
		return false
	}
	return true
}

func (qh *QCHandler) respondWriteError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, services.ErrReadOnly):
		response.RespondError(c, http.StatusServiceUnavailable, "read_only", err)
	case errors.Is(err, services.ErrInvalidIssueKey):
		response.RespondError(c, http.StatusBadRequest, "invalid_issue_key", err)
	case errors.Is(err, services.ErrForbidden):
		response.RespondError(c, http.StatusForbidden, "forbidden", err)
	default:
		response.RespondError(c, http.StatusInternalServerError, "toggle_failed", err)
	}
}
