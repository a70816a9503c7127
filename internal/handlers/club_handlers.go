package handlers

import (
	"net/http"

	"clubsphere_backend/internal/models"
	"clubsphere_backend/internal/services"

	"github.com/gin-gonic/gin"
)

// ClubHandler serves club requests and published clubs.
type ClubHandler struct {
	clubService services.ClubService
}

// NewClubHandler creates a new ClubHandler.
func NewClubHandler(cs services.ClubService) *ClubHandler {
	return &ClubHandler{clubService: cs}
}

func (h *ClubHandler) SubmitClubRequest(c *gin.Context) {
	var req services.SubmitClubRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err, "SubmitClubRequest")
		return
	}

	request, err := h.clubService.Submit(c.Request.Context(), req)
	if err != nil {
		respondServiceError(c, err, "SubmitClubRequest: Error from clubService.Submit", "Failed to submit club request.")
		return
	}
	c.JSON(http.StatusCreated, request)
}

// ListClubRequests returns the pending queue.
func (h *ClubHandler) ListClubRequests(c *gin.Context) {
	requests, err := h.clubService.ListPending(c.Request.Context())
	if err != nil {
		respondServiceError(c, err, "ListClubRequests: Error from clubService.ListPending", "Failed to fetch club requests.")
		return
	}
	if requests == nil {
		requests = []models.ClubRequest{}
	}
	c.JSON(http.StatusOK, requests)
}

func (h *ClubHandler) ApproveClubRequest(c *gin.Context) {
	club, err := h.clubService.Approve(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondServiceError(c, err, "ApproveClubRequest: Error from clubService.Approve for ID "+c.Param("id"), "Failed to approve club request.")
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Club request approved and published", "club": club})
}

func (h *ClubHandler) RejectClubRequest(c *gin.Context) {
	request, err := h.clubService.Reject(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondServiceError(c, err, "RejectClubRequest: Error from clubService.Reject for ID "+c.Param("id"), "Failed to reject club request.")
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Club request rejected", "request": request})
}

// ListClubs supports ?search= (club name, case-insensitive) and ?category=.
func (h *ClubHandler) ListClubs(c *gin.Context) {
	clubs, err := h.clubService.ListClubs(c.Request.Context(), c.Query("search"), c.Query("category"))
	if err != nil {
		respondServiceError(c, err, "ListClubs: Error from clubService.ListClubs", "Failed to fetch clubs.")
		return
	}
	if clubs == nil {
		clubs = []models.Club{}
	}
	c.JSON(http.StatusOK, clubs)
}

func (h *ClubHandler) GetClub(c *gin.Context) {
	club, err := h.clubService.GetClub(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondServiceError(c, err, "GetClub: Error from clubService.GetClub for ID "+c.Param("id"), "Failed to fetch club.")
		return
	}
	c.JSON(http.StatusOK, club)
}

// ListClubsByManager lists the clubs managed by the :email owner.
func (h *ClubHandler) ListClubsByManager(c *gin.Context) {
	clubs, err := h.clubService.ListClubsByManager(c.Request.Context(), c.Param("email"))
	if err != nil {
		respondServiceError(c, err, "ListClubsByManager: Error from clubService.ListClubsByManager", "Failed to fetch clubs.")
		return
	}
	if clubs == nil {
		clubs = []models.Club{}
	}
	c.JSON(http.StatusOK, clubs)
}
