package handlers

import (
	"context"

	"clubsphere_backend/internal/models"
	"clubsphere_backend/internal/services"
)

type MockMemberService struct {
	RegisterMemberFunc func(ctx context.Context, req services.RegisterMemberRequest) (*models.Member, bool, error)
	GetRoleFunc        func(ctx context.Context, email string) (string, error)
	GetMemberFunc      func(ctx context.Context, email string) (*models.Member, error)
	ListMembersFunc    func(ctx context.Context) ([]models.Member, error)
}

func (m *MockMemberService) RegisterMember(ctx context.Context, req services.RegisterMemberRequest) (*models.Member, bool, error) {
	return m.RegisterMemberFunc(ctx, req)
}

func (m *MockMemberService) GetRole(ctx context.Context, email string) (string, error) {
	return m.GetRoleFunc(ctx, email)
}

func (m *MockMemberService) GetMember(ctx context.Context, email string) (*models.Member, error) {
	return m.GetMemberFunc(ctx, email)
}

func (m *MockMemberService) ListMembers(ctx context.Context) ([]models.Member, error) {
	return m.ListMembersFunc(ctx)
}

type MockManagerRequestService struct {
	SubmitFunc    func(ctx context.Context, req services.SubmitManagerRequest) (*models.ClubManagerRequest, error)
	ListFunc      func(ctx context.Context, status string) ([]models.ClubManagerRequest, error)
	ApproveFunc   func(ctx context.Context, id string) (*models.ClubManagerRequest, error)
	RejectFunc    func(ctx context.Context, id string) (*models.ClubManagerRequest, error)
	MakeAdminFunc func(ctx context.Context, id string) (*models.Member, error)
}

func (m *MockManagerRequestService) Submit(ctx context.Context, req services.SubmitManagerRequest) (*models.ClubManagerRequest, error) {
	return m.SubmitFunc(ctx, req)
}

func (m *MockManagerRequestService) List(ctx context.Context, status string) ([]models.ClubManagerRequest, error) {
	return m.ListFunc(ctx, status)
}

func (m *MockManagerRequestService) Approve(ctx context.Context, id string) (*models.ClubManagerRequest, error) {
	return m.ApproveFunc(ctx, id)
}

func (m *MockManagerRequestService) Reject(ctx context.Context, id string) (*models.ClubManagerRequest, error) {
	return m.RejectFunc(ctx, id)
}

func (m *MockManagerRequestService) MakeAdmin(ctx context.Context, id string) (*models.Member, error) {
	return m.MakeAdminFunc(ctx, id)
}

type MockClubService struct {
	SubmitFunc             func(ctx context.Context, req services.SubmitClubRequest) (*models.ClubRequest, error)
	ListPendingFunc        func(ctx context.Context) ([]models.ClubRequest, error)
	ApproveFunc            func(ctx context.Context, id string) (*models.Club, error)
	RejectFunc             func(ctx context.Context, id string) (*models.ClubRequest, error)
	ListClubsFunc          func(ctx context.Context, search, category string) ([]models.Club, error)
	GetClubFunc            func(ctx context.Context, id string) (*models.Club, error)
	ListClubsByManagerFunc func(ctx context.Context, email string) ([]models.Club, error)
}

func (m *MockClubService) Submit(ctx context.Context, req services.SubmitClubRequest) (*models.ClubRequest, error) {
	return m.SubmitFunc(ctx, req)
}

func (m *MockClubService) ListPending(ctx context.Context) ([]models.ClubRequest, error) {
	return m.ListPendingFunc(ctx)
}

func (m *MockClubService) Approve(ctx context.Context, id string) (*models.Club, error) {
	return m.ApproveFunc(ctx, id)
}

func (m *MockClubService) Reject(ctx context.Context, id string) (*models.ClubRequest, error) {
	return m.RejectFunc(ctx, id)
}

func (m *MockClubService) ListClubs(ctx context.Context, search, category string) ([]models.Club, error) {
	return m.ListClubsFunc(ctx, search, category)
}

func (m *MockClubService) GetClub(ctx context.Context, id string) (*models.Club, error) {
	return m.GetClubFunc(ctx, id)
}

func (m *MockClubService) ListClubsByManager(ctx context.Context, email string) ([]models.Club, error) {
	return m.ListClubsByManagerFunc(ctx, email)
}

type MockPaymentService struct {
	CreateCheckoutSessionFunc func(ctx context.Context, req services.CreateCheckoutRequest) (*services.CheckoutResponse, error)
	ConfirmPaymentFunc        func(ctx context.Context, sessionID string) (*models.Payment, bool, error)
	ListByCustomerFunc        func(ctx context.Context, email string) ([]models.Payment, error)
}

func (m *MockPaymentService) CreateCheckoutSession(ctx context.Context, req services.CreateCheckoutRequest) (*services.CheckoutResponse, error) {
	return m.CreateCheckoutSessionFunc(ctx, req)
}

func (m *MockPaymentService) ConfirmPayment(ctx context.Context, sessionID string) (*models.Payment, bool, error) {
	return m.ConfirmPaymentFunc(ctx, sessionID)
}

func (m *MockPaymentService) ListByCustomer(ctx context.Context, email string) ([]models.Payment, error) {
	return m.ListByCustomerFunc(ctx, email)
}

type MockEventService struct {
	CreateEventFunc              func(ctx context.Context, req services.CreateEventRequest) (*models.Event, error)
	ListEventsFunc               func(ctx context.Context, clubID string) ([]models.Event, error)
	RegisterFunc                 func(ctx context.Context, eventID, email string) (*models.EventRegistration, error)
	ListRegistrationsByEmailFunc func(ctx context.Context, email string) ([]models.EventRegistration, error)
}

func (m *MockEventService) CreateEvent(ctx context.Context, req services.CreateEventRequest) (*models.Event, error) {
	return m.CreateEventFunc(ctx, req)
}

func (m *MockEventService) ListEvents(ctx context.Context, clubID string) ([]models.Event, error) {
	return m.ListEventsFunc(ctx, clubID)
}

func (m *MockEventService) Register(ctx context.Context, eventID, email string) (*models.EventRegistration, error) {
	return m.RegisterFunc(ctx, eventID, email)
}

func (m *MockEventService) ListRegistrationsByEmail(ctx context.Context, email string) ([]models.EventRegistration, error) {
	return m.ListRegistrationsByEmailFunc(ctx, email)
}

type MockReportService struct {
	TotalRevenueFunc func(ctx context.Context) (float64, error)
	AdminStatsFunc   func(ctx context.Context) (*models.AdminStats, error)
}

func (m *MockReportService) TotalRevenue(ctx context.Context) (float64, error) {
	return m.TotalRevenueFunc(ctx)
}

func (m *MockReportService) AdminStats(ctx context.Context) (*models.AdminStats, error) {
	return m.AdminStatsFunc(ctx)
}

var (
	_ services.MemberService         = (*MockMemberService)(nil)
	_ services.ManagerRequestService = (*MockManagerRequestService)(nil)
	_ services.ClubService           = (*MockClubService)(nil)
	_ services.PaymentService        = (*MockPaymentService)(nil)
	_ services.EventService          = (*MockEventService)(nil)
	_ services.ReportService         = (*MockReportService)(nil)
)
