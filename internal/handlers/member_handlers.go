package handlers

import (
	"errors"
	"net/http"

	"clubsphere_backend/internal/models"
	"clubsphere_backend/internal/services"

	"github.com/gin-gonic/gin"
)

// MemberHandler holds the member service.
type MemberHandler struct {
	memberService services.MemberService
}

// NewMemberHandler creates a new MemberHandler.
func NewMemberHandler(ms services.MemberService) *MemberHandler {
	return &MemberHandler{memberService: ms}
}

// RegisterMember creates the member on first sign-in. Repeated calls return
// the stored member with 200.
func (h *MemberHandler) RegisterMember(c *gin.Context) {
	var req services.RegisterMemberRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err, "RegisterMember")
		return
	}

	member, created, err := h.memberService.RegisterMember(c.Request.Context(), req)
	if err != nil {
		respondServiceError(c, err, "RegisterMember: Error from memberService.RegisterMember", "Failed to register member.")
		return
	}
	status := http.StatusOK
	if created {
		status = http.StatusCreated
	}
	c.JSON(status, member)
}

// GetRole answers {role}. Unknown emails get 404 with the default role so
// existing clients keep treating them as plain members.
func (h *MemberHandler) GetRole(c *gin.Context) {
	role, err := h.memberService.GetRole(c.Request.Context(), c.Param("email"))
	if err != nil {
		if errors.Is(err, services.ErrMemberNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"role": models.DefaultRole, "message": "Member not found"})
			return
		}
		respondServiceError(c, err, "GetRole: Error from memberService.GetRole", "Failed to fetch role.")
		return
	}
	c.JSON(http.StatusOK, gin.H{"role": role})
}

func (h *MemberHandler) GetMember(c *gin.Context) {
	member, err := h.memberService.GetMember(c.Request.Context(), c.Param("email"))
	if err != nil {
		respondServiceError(c, err, "GetMember: Error from memberService.GetMember", "Failed to fetch member.")
		return
	}
	c.JSON(http.StatusOK, member)
}

func (h *MemberHandler) ListMembers(c *gin.Context) {
	members, err := h.memberService.ListMembers(c.Request.Context())
	if err != nil {
		respondServiceError(c, err, "ListMembers: Error from memberService.ListMembers", "Failed to fetch members.")
		return
	}
	if members == nil {
		members = []models.Member{}
	}
	c.JSON(http.StatusOK, members)
}
