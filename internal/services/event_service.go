package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"clubsphere_backend/internal/metrics"
	"clubsphere_backend/internal/models"
	"clubsphere_backend/internal/repositories"
	"clubsphere_backend/pkg/utils"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// --- Event Errors ---
var (
	ErrEventNotFound     = errors.New("event not found")
	ErrEventNotPublished = errors.New("event is not open for registration")
	ErrPaymentRequired   = errors.New("a paid membership for this club is required")
	ErrAlreadyRegistered = errors.New("already registered for this event")
	ErrEventFull         = errors.New("event has reached capacity")
	ErrDateFormat        = errors.New("invalid date format, use RFC3339 or YYYY-MM-DD")
)

// --- Event DTOs ---
type CreateEventRequest struct {
	ClubID      string `json:"clubId" binding:"required" validate:"required"`
	Title       string `json:"title" binding:"required" validate:"required"`
	Description string `json:"description"`
	Date        string `json:"date" binding:"required" validate:"required"` // RFC3339 or YYYY-MM-DD
	Location    string `json:"location" binding:"required" validate:"required"`
	Capacity    int    `json:"capacity" binding:"gte=0" validate:"gte=0"` // 0 = unlimited
	CreatedBy   string `json:"createdBy" binding:"required" validate:"required,email"`
}

type RegisterEventRequest struct {
	EventID string `json:"eventId" binding:"required" validate:"required"`
}

// --- EventService Interface ---
type EventService interface {
	CreateEvent(ctx context.Context, req CreateEventRequest) (*models.Event, error)
	// ListEvents returns events by date. An empty clubID lists every club.
	ListEvents(ctx context.Context, clubID string) ([]models.Event, error)
	// Register signs email up for an event. The registrant must hold a paid
	// membership for the event's club.
	Register(ctx context.Context, eventID, email string) (*models.EventRegistration, error)
	ListRegistrationsByEmail(ctx context.Context, email string) ([]models.EventRegistration, error)
}

type eventService struct {
	eventRepo        repositories.EventRepository
	registrationRepo repositories.RegistrationRepository
	clubRepo         repositories.ClubRepository
	paymentRepo      repositories.PaymentRepository
}

// NewEventService creates a new instance of EventService.
func NewEventService(
	eventRepo repositories.EventRepository,
	registrationRepo repositories.RegistrationRepository,
	clubRepo repositories.ClubRepository,
	paymentRepo repositories.PaymentRepository,
) EventService {
	return &eventService{
		eventRepo:        eventRepo,
		registrationRepo: registrationRepo,
		clubRepo:         clubRepo,
		paymentRepo:      paymentRepo,
	}
}

func parseEventDate(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	if t, err := time.Parse(time.RFC3339, s); err == nil {
		return t.UTC(), nil
	}
	if t, err := time.Parse("2006-01-02", s); err == nil {
		return t, nil
	}
	return time.Time{}, ErrDateFormat
}

func (s *eventService) CreateEvent(ctx context.Context, req CreateEventRequest) (*models.Event, error) {
	req.CreatedBy = utils.NormalizeEmail(req.CreatedBy)
	req.Title = strings.TrimSpace(req.Title)
	req.Location = strings.TrimSpace(req.Location)
	if err := validateStruct(req); err != nil {
		return nil, err
	}
	date, err := parseEventDate(req.Date)
	if err != nil {
		return nil, err
	}
	clubID, err := parseID(req.ClubID)
	if err != nil {
		return nil, err
	}
	if _, err := s.clubRepo.GetClubByID(ctx, clubID); err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, ErrClubNotFound
		}
		return nil, fmt.Errorf("checking event club: %w", err)
	}

	event := &models.Event{
		ClubID:      clubID,
		Title:       req.Title,
		Description: req.Description,
		Date:        date,
		Location:    req.Location,
		Capacity:    req.Capacity,
		CreatedBy:   req.CreatedBy,
		Status:      models.EventStatusPublished,
	}
	if err := s.eventRepo.CreateEvent(ctx, event); err != nil {
		return nil, fmt.Errorf("creating event: %w", err)
	}
	return event, nil
}

func (s *eventService) ListEvents(ctx context.Context, clubID string) ([]models.Event, error) {
	var oid primitive.ObjectID
	if clubID != "" {
		var err error
		if oid, err = parseID(clubID); err != nil {
			return nil, err
		}
	}
	events, err := s.eventRepo.GetEvents(ctx, oid)
	if err != nil {
		return nil, fmt.Errorf("listing events: %w", err)
	}
	return events, nil
}

func (s *eventService) Register(ctx context.Context, eventID, email string) (*models.EventRegistration, error) {
	email = utils.NormalizeEmail(email)
	if err := validateEmail(email); err != nil {
		return nil, err
	}
	oid, err := parseID(eventID)
	if err != nil {
		return nil, err
	}

	event, err := s.eventRepo.GetEventByID(ctx, oid)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, ErrEventNotFound
		}
		return nil, fmt.Errorf("getting event: %w", err)
	}
	if event.Status != models.EventStatusPublished {
		return nil, ErrEventNotPublished
	}

	paid, err := s.paymentRepo.HasPaidForClub(ctx, email, event.ClubID)
	if err != nil {
		return nil, fmt.Errorf("checking membership payment: %w", err)
	}
	if !paid {
		metrics.EventRegistrations.WithLabelValues("payment_required").Inc()
		return nil, ErrPaymentRequired
	}

	registered, err := s.registrationRepo.IsRegistered(ctx, oid, email)
	if err != nil {
		return nil, fmt.Errorf("checking registration: %w", err)
	}
	if registered {
		metrics.EventRegistrations.WithLabelValues("duplicate").Inc()
		return nil, ErrAlreadyRegistered
	}

	if event.Capacity > 0 {
		count, err := s.registrationRepo.CountRegistrationsForEvent(ctx, oid)
		if err != nil {
			return nil, fmt.Errorf("counting registrations: %w", err)
		}
		if count >= int64(event.Capacity) {
			metrics.EventRegistrations.WithLabelValues("full").Inc()
			return nil, ErrEventFull
		}
	}

	registration := &models.EventRegistration{
		EventID: oid,
		Email:   email,
		ClubID:  event.ClubID,
		Status:  models.RegistrationStatusRegistered,
	}
	if err := s.registrationRepo.CreateRegistration(ctx, registration); err != nil {
		if errors.Is(err, repositories.ErrDuplicateKey) {
			metrics.EventRegistrations.WithLabelValues("duplicate").Inc()
			return nil, ErrAlreadyRegistered
		}
		return nil, fmt.Errorf("creating registration: %w", err)
	}
	metrics.EventRegistrations.WithLabelValues("registered").Inc()
	return registration, nil
}

func (s *eventService) ListRegistrationsByEmail(ctx context.Context, email string) ([]models.EventRegistration, error) {
	email = utils.NormalizeEmail(email)
	if err := validateEmail(email); err != nil {
		return nil, err
	}
	regs, err := s.registrationRepo.GetRegistrationsByEmail(ctx, email)
	if err != nil {
		return nil, fmt.Errorf("listing registrations: %w", err)
	}
	return regs, nil
}
