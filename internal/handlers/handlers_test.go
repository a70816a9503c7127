package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"clubsphere_backend/internal/middleware"
	"clubsphere_backend/internal/models"
	"clubsphere_backend/internal/payments"
	"clubsphere_backend/internal/services"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func do(r *gin.Engine, method, path, body string) *httptest.ResponseRecorder {
	var req *http.Request
	if body != "" {
		req = httptest.NewRequest(method, path, strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
	} else {
		req = httptest.NewRequest(method, path, nil)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func decode(t *testing.T, w *httptest.ResponseRecorder) map[string]interface{} {
	t.Helper()
	var out map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &out), w.Body.String())
	return out
}

func TestRegisterMember_StatusReflectsCreation(t *testing.T) {
	created := true
	h := NewMemberHandler(&MockMemberService{
		RegisterMemberFunc: func(_ context.Context, req services.RegisterMemberRequest) (*models.Member, bool, error) {
			if !strings.Contains(req.Email, "@") {
				return nil, false, fmt.Errorf("%w: a valid email is required", services.ErrValidation)
			}
			return &models.Member{Email: req.Email, Role: models.RoleMember}, created, nil
		},
	})
	r := gin.New()
	r.POST("/users", h.RegisterMember)

	w := do(r, http.MethodPost, "/users", `{"email":"a@x.com"}`)
	assert.Equal(t, http.StatusCreated, w.Code)
	assert.Equal(t, "member", decode(t, w)["role"])

	created = false
	w = do(r, http.MethodPost, "/users", `{"email":"a@x.com"}`)
	assert.Equal(t, http.StatusOK, w.Code)

	w = do(r, http.MethodPost, "/users", `{"email":"nope"}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = do(r, http.MethodPost, "/users", `{}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestRegisterMember_PaddedEmailReachesService(t *testing.T) {
	var got string
	h := NewMemberHandler(&MockMemberService{
		RegisterMemberFunc: func(_ context.Context, req services.RegisterMemberRequest) (*models.Member, bool, error) {
			got = req.Email
			return &models.Member{Email: "a@x.com", Role: models.RoleMember}, true, nil
		},
	})
	r := gin.New()
	r.POST("/users", h.RegisterMember)

	w := do(r, http.MethodPost, "/users", `{"email":" A@x.com "}`)
	assert.Equal(t, http.StatusCreated, w.Code)
	assert.Equal(t, " A@x.com ", got)
}

func TestGetRole(t *testing.T) {
	h := NewMemberHandler(&MockMemberService{
		GetRoleFunc: func(_ context.Context, email string) (string, error) {
			switch email {
			case "m@x.com":
				return models.RoleManager, nil
			case "broken@x.com":
				return "", errors.New("db down")
			}
			return "", services.ErrMemberNotFound
		},
	})
	r := gin.New()
	r.GET("/users/:email/role", h.GetRole)

	w := do(r, http.MethodGet, "/users/m@x.com/role", "")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, map[string]interface{}{"role": "manager"}, decode(t, w))

	w = do(r, http.MethodGet, "/users/ghost@x.com/role", "")
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Equal(t, "member", decode(t, w)["role"])

	w = do(r, http.MethodGet, "/users/broken@x.com/role", "")
	assert.Equal(t, http.StatusInternalServerError, w.Code)
}

func TestSubmitClubRequest_DuplicateIsBadRequest(t *testing.T) {
	var got services.SubmitClubRequest
	calls := 0
	h := NewClubHandler(&MockClubService{
		SubmitFunc: func(_ context.Context, req services.SubmitClubRequest) (*models.ClubRequest, error) {
			got = req
			calls++
			if calls > 1 {
				return nil, services.ErrPendingRequestExists
			}
			return &models.ClubRequest{Email: req.Email, MonthlyCharge: 10, Status: models.StatusPending}, nil
		},
	})
	r := gin.New()
	r.POST("/club-requests", h.SubmitClubRequest)

	body := `{"email":"m@x.com","monthlyCharge":"10"}`
	w := do(r, http.MethodPost, "/club-requests", body)
	require.Equal(t, http.StatusCreated, w.Code)
	assert.Equal(t, "10", got.MonthlyCharge)
	resp := decode(t, w)
	assert.Equal(t, "pending", resp["status"])
	assert.Equal(t, 10.0, resp["monthlyCharge"])

	w = do(r, http.MethodPost, "/club-requests", body)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestReviewErrorsMapToStatuses(t *testing.T) {
	cases := []struct {
		err  error
		want int
	}{
		{services.ErrRequestNotPending, http.StatusConflict},
		{services.ErrRequestNotFound, http.StatusNotFound},
		{fmt.Errorf("%w: %q", services.ErrInvalidID, "x"), http.StatusBadRequest},
		{fmt.Errorf("%w: a@x.com", services.ErrMemberNotFound), http.StatusNotFound},
		{errors.New("boom"), http.StatusInternalServerError},
	}
	for _, tc := range cases {
		t.Run(tc.err.Error(), func(t *testing.T) {
			h := NewManagerRequestHandler(&MockManagerRequestService{
				ApproveFunc: func(context.Context, string) (*models.ClubManagerRequest, error) { return nil, tc.err },
			})
			r := gin.New()
			r.PATCH("/club-manager-request/approve/:id", h.ApproveRequest)

			w := do(r, http.MethodPatch, "/club-manager-request/approve/abc", "")
			assert.Equal(t, tc.want, w.Code)
			assert.NotEmpty(t, decode(t, w)["message"])
		})
	}
}

func TestMakeAdmin_RequiresApproval(t *testing.T) {
	h := NewManagerRequestHandler(&MockManagerRequestService{
		MakeAdminFunc: func(context.Context, string) (*models.Member, error) { return nil, services.ErrRequestNotApproved },
	})
	r := gin.New()
	r.PATCH("/club-manager-request/make-admin/:id", h.MakeAdmin)

	w := do(r, http.MethodPatch, "/club-manager-request/make-admin/abc", "")
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestListManagerRequests_PassesStatus(t *testing.T) {
	var status string
	h := NewManagerRequestHandler(&MockManagerRequestService{
		ListFunc: func(_ context.Context, s string) ([]models.ClubManagerRequest, error) {
			status = s
			return nil, nil
		},
	})
	r := gin.New()
	r.GET("/club-manager-requests", h.ListRequests)

	w := do(r, http.MethodGet, "/club-manager-requests?status=approved", "")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "approved", status)
	assert.JSONEq(t, `[]`, w.Body.String())
}

func TestPaymentSuccess(t *testing.T) {
	created := true
	h := NewPaymentHandler(&MockPaymentService{
		ConfirmPaymentFunc: func(_ context.Context, id string) (*models.Payment, bool, error) {
			switch id {
			case "cs_unpaid":
				return nil, false, services.ErrPaymentNotCompleted
			case "cs_provider":
				return nil, false, payments.ErrProvider
			}
			return &models.Payment{TransactionID: "pi_1", TrackingID: "PAY-1", SessionID: id}, created, nil
		},
	})
	r := gin.New()
	r.PATCH("/payment-success", h.PaymentSuccess)

	w := do(r, http.MethodPatch, "/payment-success?session_id=cs_1", "")
	assert.Equal(t, http.StatusCreated, w.Code)
	assert.Equal(t, "PAY-1", decode(t, w)["trackingId"])

	created = false
	w = do(r, http.MethodPatch, "/payment-success?session_id=cs_1", "")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "pi_1", decode(t, w)["transactionId"])

	assert.Equal(t, http.StatusBadRequest, do(r, http.MethodPatch, "/payment-success?session_id=cs_unpaid", "").Code)
	assert.Equal(t, http.StatusBadGateway, do(r, http.MethodPatch, "/payment-success?session_id=cs_provider", "").Code)
}

func TestCreateCheckoutSession(t *testing.T) {
	h := NewPaymentHandler(&MockPaymentService{
		CreateCheckoutSessionFunc: func(_ context.Context, req services.CreateCheckoutRequest) (*services.CheckoutResponse, error) {
			if req.ClubID == "missing" {
				return nil, services.ErrClubNotFound
			}
			return &services.CheckoutResponse{URL: "https://pay/" + req.ClubID, SessionID: "cs_1"}, nil
		},
	})
	r := gin.New()
	r.POST("/create-checkout-session", h.CreateCheckoutSession)

	w := do(r, http.MethodPost, "/create-checkout-session", `{"clubId":"abc","customerEmail":"fan@x.com"}`)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "https://pay/abc", decode(t, w)["url"])

	assert.Equal(t, http.StatusNotFound, do(r, http.MethodPost, "/create-checkout-session", `{"clubId":"missing"}`).Code)
	assert.Equal(t, http.StatusBadRequest, do(r, http.MethodPost, "/create-checkout-session", `{}`).Code)
}

func TestRegisterForEvent_UsesVerifiedEmail(t *testing.T) {
	var gotEmail string
	h := NewEventHandler(&MockEventService{
		RegisterFunc: func(_ context.Context, eventID, email string) (*models.EventRegistration, error) {
			gotEmail = email
			switch eventID {
			case "dup":
				return nil, services.ErrAlreadyRegistered
			case "unpaid":
				return nil, services.ErrPaymentRequired
			case "gone":
				return nil, services.ErrEventNotFound
			case "full":
				return nil, services.ErrEventFull
			}
			return &models.EventRegistration{Email: email}, nil
		},
	})
	r := gin.New()
	r.POST("/event-registration", func(c *gin.Context) {
		c.Set(middleware.ContextEmailKey, "fan@x.com")
	}, h.RegisterForEvent)

	w := do(r, http.MethodPost, "/event-registration", `{"eventId":"ok","email":"someone-else@x.com"}`)
	assert.Equal(t, http.StatusCreated, w.Code)
	assert.Equal(t, "fan@x.com", gotEmail)

	assert.Equal(t, http.StatusConflict, do(r, http.MethodPost, "/event-registration", `{"eventId":"dup"}`).Code)
	assert.Equal(t, http.StatusForbidden, do(r, http.MethodPost, "/event-registration", `{"eventId":"unpaid"}`).Code)
	assert.Equal(t, http.StatusNotFound, do(r, http.MethodPost, "/event-registration", `{"eventId":"gone"}`).Code)
	assert.Equal(t, http.StatusConflict, do(r, http.MethodPost, "/event-registration", `{"eventId":"full"}`).Code)
	assert.Equal(t, http.StatusBadRequest, do(r, http.MethodPost, "/event-registration", `{}`).Code)
}

func TestCreateEvent_Validation(t *testing.T) {
	h := NewEventHandler(&MockEventService{
		CreateEventFunc: func(_ context.Context, req services.CreateEventRequest) (*models.Event, error) {
			if req.Date == "tomorrow" {
				return nil, services.ErrDateFormat
			}
			return &models.Event{Title: req.Title, Status: models.EventStatusPublished}, nil
		},
	})
	r := gin.New()
	r.POST("/events", h.CreateEvent)

	valid := `{"clubId":"c","title":"T","date":"2026-05-01","location":"L","createdBy":"m@x.com"}`
	assert.Equal(t, http.StatusCreated, do(r, http.MethodPost, "/events", valid).Code)

	badDate := strings.Replace(valid, "2026-05-01", "tomorrow", 1)
	assert.Equal(t, http.StatusBadRequest, do(r, http.MethodPost, "/events", badDate).Code)

	assert.Equal(t, http.StatusBadRequest, do(r, http.MethodPost, "/events", `{"title":"T"}`).Code)
}

func TestListClubs_PassesFilters(t *testing.T) {
	var search, category string
	h := NewClubHandler(&MockClubService{
		ListClubsFunc: func(_ context.Context, s, c string) ([]models.Club, error) {
			search, category = s, c
			return []models.Club{{ClubName: "Chess"}}, nil
		},
		GetClubFunc: func(context.Context, string) (*models.Club, error) { return nil, services.ErrClubNotFound },
	})
	r := gin.New()
	r.GET("/clubs", h.ListClubs)
	r.GET("/clubs/:id", h.GetClub)

	w := do(r, http.MethodGet, "/clubs?search=che&category=games", "")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "che", search)
	assert.Equal(t, "games", category)

	assert.Equal(t, http.StatusNotFound, do(r, http.MethodGet, "/clubs/abc", "").Code)
}

func TestReports(t *testing.T) {
	h := NewReportHandler(&MockReportService{
		TotalRevenueFunc: func(context.Context) (float64, error) { return 42.5, nil },
		AdminStatsFunc: func(context.Context) (*models.AdminStats, error) {
			return &models.AdminStats{TotalMembers: 3, Clubs: []models.ClubStats{}}, nil
		},
	})
	r := gin.New()
	r.GET("/total-revenue", h.TotalRevenue)
	r.GET("/admin-stats", h.AdminStats)

	w := do(r, http.MethodGet, "/total-revenue", "")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, 42.5, decode(t, w)["totalRevenue"])

	w = do(r, http.MethodGet, "/admin-stats", "")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, 3.0, decode(t, w)["totalMembers"])
}

type stubPinger struct{ err error }

func (s stubPinger) Ping(context.Context) error { return s.err }

func TestHealthz(t *testing.T) {
	r := gin.New()
	r.GET("/healthz", NewHealthHandler(stubPinger{}).Healthz)
	assert.Equal(t, http.StatusOK, do(r, http.MethodGet, "/healthz", "").Code)

	r = gin.New()
	r.GET("/healthz", NewHealthHandler(stubPinger{err: errors.New("no route")}).Healthz)
	assert.Equal(t, http.StatusServiceUnavailable, do(r, http.MethodGet, "/healthz", "").Code)
}
