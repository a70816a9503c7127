package handlers

import (
	"net/http"

	"clubsphere_backend/internal/models"
	"clubsphere_backend/internal/services"

	"github.com/gin-gonic/gin"
)

// ManagerRequestHandler holds the manager request service.
type ManagerRequestHandler struct {
	requestService services.ManagerRequestService
}

// NewManagerRequestHandler creates a new ManagerRequestHandler.
func NewManagerRequestHandler(rs services.ManagerRequestService) *ManagerRequestHandler {
	return &ManagerRequestHandler{requestService: rs}
}

func (h *ManagerRequestHandler) SubmitRequest(c *gin.Context) {
	var req services.SubmitManagerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err, "SubmitManagerRequest")
		return
	}

	request, err := h.requestService.Submit(c.Request.Context(), req)
	if err != nil {
		respondServiceError(c, err, "SubmitManagerRequest: Error from requestService.Submit", "Failed to submit manager request.")
		return
	}
	c.JSON(http.StatusCreated, request)
}

// ListRequests supports ?status=pending|approved|rejected.
func (h *ManagerRequestHandler) ListRequests(c *gin.Context) {
	requests, err := h.requestService.List(c.Request.Context(), c.Query("status"))
	if err != nil {
		respondServiceError(c, err, "ListManagerRequests: Error from requestService.List", "Failed to fetch manager requests.")
		return
	}
	if requests == nil {
		requests = []models.ClubManagerRequest{}
	}
	c.JSON(http.StatusOK, requests)
}

func (h *ManagerRequestHandler) ApproveRequest(c *gin.Context) {
	request, err := h.requestService.Approve(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondServiceError(c, err, "ApproveManagerRequest: Error from requestService.Approve for ID "+c.Param("id"), "Failed to approve manager request.")
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Manager request approved", "request": request})
}

func (h *ManagerRequestHandler) RejectRequest(c *gin.Context) {
	request, err := h.requestService.Reject(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondServiceError(c, err, "RejectManagerRequest: Error from requestService.Reject for ID "+c.Param("id"), "Failed to reject manager request.")
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Manager request rejected", "request": request})
}

func (h *ManagerRequestHandler) MakeAdmin(c *gin.Context) {
	member, err := h.requestService.MakeAdmin(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondServiceError(c, err, "MakeAdmin: Error from requestService.MakeAdmin for ID "+c.Param("id"), "Failed to promote member.")
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Member promoted to admin", "member": member})
}
