package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"clubsphere_backend/internal/metrics"
	"clubsphere_backend/internal/models"
	"clubsphere_backend/internal/payments"
	"clubsphere_backend/internal/repositories"
	"clubsphere_backend/pkg/utils"

	"github.com/oklog/ulid/v2"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// --- Payment Errors ---
var (
	ErrPaymentNotCompleted = errors.New("checkout session has not been paid")
	ErrInvalidSession      = errors.New("checkout session is missing club metadata")
)

// --- Payment DTOs ---
type CreateCheckoutRequest struct {
	ClubID        string `json:"clubId" binding:"required" validate:"required"`
	CustomerEmail string `json:"customerEmail" validate:"omitempty,email"`
}

type CheckoutResponse struct {
	URL       string `json:"url"`
	SessionID string `json:"sessionId"`
}

// PaymentSettings holds the checkout redirect and currency configuration.
type PaymentSettings struct {
	SiteDomain string
	Currency   string
}

// --- PaymentService Interface ---
type PaymentService interface {
	CreateCheckoutSession(ctx context.Context, req CreateCheckoutRequest) (*CheckoutResponse, error)
	// ConfirmPayment records the payment behind a paid checkout session. Replays
	// of the same session return the stored payment with created=false.
	ConfirmPayment(ctx context.Context, sessionID string) (payment *models.Payment, created bool, err error)
	ListByCustomer(ctx context.Context, email string) ([]models.Payment, error)
}

type paymentService struct {
	clubRepo    repositories.ClubRepository
	paymentRepo repositories.PaymentRepository
	provider    payments.Provider
	settings    PaymentSettings
	now         func() time.Time
}

// NewPaymentService creates a new instance of PaymentService.
func NewPaymentService(clubRepo repositories.ClubRepository, paymentRepo repositories.PaymentRepository, provider payments.Provider, settings PaymentSettings) PaymentService {
	if settings.Currency == "" {
		settings.Currency = "usd"
	}
	return &paymentService{
		clubRepo:    clubRepo,
		paymentRepo: paymentRepo,
		provider:    provider,
		settings:    settings,
		now:         func() time.Time { return time.Now().UTC() },
	}
}

func (s *paymentService) CreateCheckoutSession(ctx context.Context, req CreateCheckoutRequest) (*CheckoutResponse, error) {
	req.CustomerEmail = utils.NormalizeEmail(req.CustomerEmail)
	if err := validateStruct(req); err != nil {
		return nil, err
	}
	clubID, err := parseID(req.ClubID)
	if err != nil {
		return nil, err
	}
	club, err := s.clubRepo.GetClubByID(ctx, clubID)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, ErrClubNotFound
		}
		return nil, fmt.Errorf("getting club for checkout: %w", err)
	}

	session, err := s.provider.CreateCheckoutSession(ctx, payments.CheckoutRequest{
		ProductName:   club.ClubName,
		Description:   club.Description,
		UnitAmount:    utils.ToMinorUnits(club.MonthlyCharge),
		Currency:      s.settings.Currency,
		CustomerEmail: req.CustomerEmail,
		SuccessURL:    s.settings.SiteDomain + "/payment-success?session_id={CHECKOUT_SESSION_ID}",
		CancelURL:     fmt.Sprintf("%s/clubs/%s", s.settings.SiteDomain, club.ID.Hex()),
		Metadata: map[string]string{
			payments.MetaClubID:        club.ID.Hex(),
			payments.MetaClubName:      club.ClubName,
			payments.MetaManagerEmail:  club.ManagerEmail,
			payments.MetaCustomerEmail: req.CustomerEmail,
		},
	})
	if err != nil {
		return nil, err
	}
	return &CheckoutResponse{URL: session.URL, SessionID: session.ID}, nil
}

func (s *paymentService) ConfirmPayment(ctx context.Context, sessionID string) (*models.Payment, bool, error) {
	if utils.IsEmpty(sessionID) {
		return nil, false, fmt.Errorf("%w: session_id is required", ErrValidation)
	}
	session, err := s.provider.GetCheckoutSession(ctx, sessionID)
	if err != nil {
		return nil, false, err
	}
	if session.PaymentStatus != payments.PaymentStatusPaid {
		metrics.PaymentsRecorded.WithLabelValues("unpaid").Inc()
		return nil, false, ErrPaymentNotCompleted
	}

	transactionID := session.PaymentIntentID
	if transactionID == "" {
		transactionID = session.ID
	}

	existing, err := s.paymentRepo.GetPaymentByTransactionID(ctx, transactionID)
	if err == nil {
		metrics.PaymentsRecorded.WithLabelValues("duplicate").Inc()
		return existing, false, nil
	}
	if !errors.Is(err, repositories.ErrNotFound) {
		return nil, false, fmt.Errorf("checking recorded payment: %w", err)
	}

	clubID, err := primitive.ObjectIDFromHex(session.Metadata[payments.MetaClubID])
	if err != nil {
		return nil, false, fmt.Errorf("%w: session %s", ErrInvalidSession, session.ID)
	}
	customer := utils.NormalizeEmail(session.CustomerEmail)
	if customer == "" {
		customer = utils.NormalizeEmail(session.Metadata[payments.MetaCustomerEmail])
	}

	now := s.now()
	payment := &models.Payment{
		Amount:        utils.FromMinorUnits(session.AmountTotal),
		Currency:      session.Currency,
		CustomerEmail: customer,
		ClubID:        clubID,
		ClubName:      session.Metadata[payments.MetaClubName],
		ManagerEmail:  session.Metadata[payments.MetaManagerEmail],
		TransactionID: transactionID,
		SessionID:     session.ID,
		Status:        models.PaymentStatusPaid,
		TrackingID:    newTrackingID(now),
		PaidAt:        now,
		CreatedAt:     now,
	}
	if err := s.paymentRepo.CreatePayment(ctx, payment); err != nil {
		if errors.Is(err, repositories.ErrDuplicateKey) {
			// A concurrent callback for the same transaction won the insert.
			existing, getErr := s.paymentRepo.GetPaymentByTransactionID(ctx, transactionID)
			if getErr != nil {
				return nil, false, fmt.Errorf("loading concurrently recorded payment: %w", getErr)
			}
			metrics.PaymentsRecorded.WithLabelValues("duplicate").Inc()
			return existing, false, nil
		}
		return nil, false, fmt.Errorf("recording payment: %w", err)
	}

	metrics.PaymentsRecorded.WithLabelValues("recorded").Inc()
	utils.LogInfo("Payment recorded", map[string]interface{}{
		"tracking_id":    payment.TrackingID,
		"transaction_id": transactionID,
		"club_id":        clubID.Hex(),
	})
	return payment, true, nil
}

func (s *paymentService) ListByCustomer(ctx context.Context, email string) ([]models.Payment, error) {
	email = utils.NormalizeEmail(email)
	if err := validateEmail(email); err != nil {
		return nil, err
	}
	list, err := s.paymentRepo.GetPaymentsByCustomer(ctx, email)
	if err != nil {
		return nil, fmt.Errorf("listing payments: %w", err)
	}
	return list, nil
}

// newTrackingID returns a sortable, human-readable payment reference.
func newTrackingID(t time.Time) string {
	return "PAY-" + ulid.MustNew(ulid.Timestamp(t), ulid.DefaultEntropy()).String()
}
