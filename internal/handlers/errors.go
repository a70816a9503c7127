package handlers

import (
	"errors"
	"net/http"
	"strings"

	"clubsphere_backend/internal/payments"
	"clubsphere_backend/internal/services"
	"clubsphere_backend/pkg/utils"

	"github.com/gin-gonic/gin"
)

// respondServiceError maps service sentinels onto the HTTP error taxonomy.
// Unclassified errors are logged and answered with 500 and fallback.
func respondServiceError(c *gin.Context, err error, op, fallback string) {
	var apiErr *utils.APIError
	switch {
	case errors.Is(err, services.ErrValidation),
		errors.Is(err, services.ErrInvalidMonthlyCharge),
		errors.Is(err, services.ErrDateFormat):
		apiErr = utils.NewAPIError(http.StatusBadRequest, utils.ErrCodeValidationFailed, "Validation failed: "+err.Error(), err.Error())
	case errors.Is(err, services.ErrInvalidID):
		apiErr = utils.NewAPIError(http.StatusBadRequest, utils.ErrCodeBadRequest, "Invalid identifier format.", err.Error())
	case errors.Is(err, services.ErrPendingRequestExists),
		errors.Is(err, services.ErrRequestNotApproved),
		errors.Is(err, services.ErrEventNotPublished),
		errors.Is(err, services.ErrPaymentNotCompleted),
		errors.Is(err, services.ErrInvalidSession):
		apiErr = utils.NewAPIError(http.StatusBadRequest, utils.ErrCodeBadRequest, capitalize(err.Error()), "")
	case errors.Is(err, services.ErrMemberNotFound),
		errors.Is(err, services.ErrRequestNotFound),
		errors.Is(err, services.ErrClubNotFound),
		errors.Is(err, services.ErrEventNotFound):
		apiErr = utils.NewAPIError(http.StatusNotFound, utils.ErrCodeNotFound, capitalize(err.Error()), "")
	case errors.Is(err, services.ErrRequestNotPending),
		errors.Is(err, services.ErrAlreadyRegistered),
		errors.Is(err, services.ErrEventFull):
		apiErr = utils.NewAPIError(http.StatusConflict, utils.ErrCodeConflict, capitalize(err.Error()), "")
	case errors.Is(err, services.ErrPaymentRequired):
		apiErr = utils.NewAPIError(http.StatusForbidden, utils.ErrCodeForbidden, capitalize(err.Error()), "")
	case errors.Is(err, payments.ErrProvider):
		utils.LogError(err, op)
		apiErr = utils.NewAPIError(http.StatusBadGateway, utils.ErrCodePaymentProvider, "Payment provider request failed.", "")
	default:
		utils.LogError(err, op)
		utils.RespondInternalError(c, fallback)
		return
	}
	utils.RespondWithError(c, apiErr)
}

func respondBindError(c *gin.Context, err error, op string) {
	utils.LogDebug(op+": failed to bind request", map[string]interface{}{"error": err.Error()})
	utils.RespondValidationFailed(c, err.Error())
}

func capitalize(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}
