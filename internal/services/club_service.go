package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"clubsphere_backend/internal/database"
	"clubsphere_backend/internal/metrics"
	"clubsphere_backend/internal/models"
	"clubsphere_backend/internal/repositories"
	"clubsphere_backend/pkg/utils"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// --- Club Errors ---
var (
	ErrClubNotFound         = errors.New("club not found")
	ErrInvalidMonthlyCharge = errors.New("monthly charge must be a non-negative number")
)

// --- Club DTOs ---

// SubmitClubRequest is the body of a club application. MonthlyCharge accepts a
// JSON number or a numeric string.
type SubmitClubRequest struct {
	Email         string      `json:"email" binding:"required" validate:"required,email"`
	ClubName      string      `json:"clubName"`
	Description   string      `json:"description"`
	Category      string      `json:"category"`
	Location      string      `json:"location"`
	BannerImage   string      `json:"bannerImage"`
	MonthlyCharge interface{} `json:"monthlyCharge"`
}

// --- ClubService Interface ---
type ClubService interface {
	Submit(ctx context.Context, req SubmitClubRequest) (*models.ClubRequest, error)
	ListPending(ctx context.Context) ([]models.ClubRequest, error)
	// Approve publishes the club and marks the request approved with a
	// back-reference to it, atomically.
	Approve(ctx context.Context, id string) (*models.Club, error)
	Reject(ctx context.Context, id string) (*models.ClubRequest, error)
	ListClubs(ctx context.Context, search, category string) ([]models.Club, error)
	GetClub(ctx context.Context, id string) (*models.Club, error)
	ListClubsByManager(ctx context.Context, email string) ([]models.Club, error)
}

type clubService struct {
	requestRepo repositories.ClubRequestRepository
	clubRepo    repositories.ClubRepository
	tx          database.Transactor
}

// NewClubService creates a new instance of ClubService.
func NewClubService(requestRepo repositories.ClubRequestRepository, clubRepo repositories.ClubRepository, tx database.Transactor) ClubService {
	return &clubService{
		requestRepo: requestRepo,
		clubRepo:    clubRepo,
		tx:          tx,
	}
}

func (s *clubService) Submit(ctx context.Context, req SubmitClubRequest) (*models.ClubRequest, error) {
	req.Email = utils.NormalizeEmail(req.Email)
	if err := validateStruct(req); err != nil {
		return nil, err
	}
	charge, err := utils.ParseAmount(req.MonthlyCharge)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidMonthlyCharge, err)
	}
	if charge < 0 {
		return nil, ErrInvalidMonthlyCharge
	}

	_, err = s.requestRepo.GetPendingClubRequestByEmail(ctx, req.Email)
	if err == nil {
		return nil, ErrPendingRequestExists
	}
	if !errors.Is(err, repositories.ErrNotFound) {
		return nil, fmt.Errorf("checking pending club request: %w", err)
	}

	request := &models.ClubRequest{
		Email:         req.Email,
		ClubName:      strings.TrimSpace(req.ClubName),
		Description:   req.Description,
		Category:      strings.TrimSpace(req.Category),
		Location:      req.Location,
		BannerImage:   req.BannerImage,
		MonthlyCharge: charge,
		Status:        models.StatusPending,
	}
	if err := s.requestRepo.CreateClubRequest(ctx, request); err != nil {
		if errors.Is(err, repositories.ErrDuplicateKey) {
			return nil, ErrPendingRequestExists
		}
		return nil, fmt.Errorf("creating club request: %w", err)
	}
	metrics.WorkflowTransitions.WithLabelValues("club_request", models.StatusPending).Inc()
	return request, nil
}

func (s *clubService) ListPending(ctx context.Context) ([]models.ClubRequest, error) {
	requests, err := s.requestRepo.GetClubRequests(ctx, models.StatusPending)
	if err != nil {
		return nil, fmt.Errorf("listing pending club requests: %w", err)
	}
	return requests, nil
}

func (s *clubService) Approve(ctx context.Context, id string) (*models.Club, error) {
	oid, err := parseID(id)
	if err != nil {
		return nil, err
	}

	var club *models.Club
	err = s.tx.WithTransaction(ctx, func(ctx context.Context) error {
		request, err := s.loadPending(ctx, oid)
		if err != nil {
			return err
		}

		now := time.Now().UTC()
		clubID := primitive.NewObjectID()
		// The status swap runs first so a concurrent approval fails before
		// a second club is inserted.
		if err := s.requestRepo.ReviewClubRequest(ctx, oid, models.StatusApproved, now, &clubID); err != nil {
			if errors.Is(err, repositories.ErrNotFound) {
				return ErrRequestNotPending
			}
			return fmt.Errorf("approving club request: %w", err)
		}

		published := models.ClubFromRequest(clubID, request, now)
		if err := s.clubRepo.CreateClub(ctx, published); err != nil {
			return fmt.Errorf("publishing club: %w", err)
		}
		club = published
		return nil
	})
	if err != nil {
		return nil, err
	}

	metrics.WorkflowTransitions.WithLabelValues("club_request", models.StatusApproved).Inc()
	utils.LogInfo("Club published", map[string]interface{}{"request_id": id, "club_id": club.ID.Hex()})
	return club, nil
}

func (s *clubService) Reject(ctx context.Context, id string) (*models.ClubRequest, error) {
	oid, err := parseID(id)
	if err != nil {
		return nil, err
	}
	request, err := s.loadPending(ctx, oid)
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	if err := s.requestRepo.ReviewClubRequest(ctx, oid, models.StatusRejected, now, nil); err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, ErrRequestNotPending
		}
		return nil, fmt.Errorf("rejecting club request: %w", err)
	}
	request.Status = models.StatusRejected
	request.ReviewedAt = &now

	metrics.WorkflowTransitions.WithLabelValues("club_request", models.StatusRejected).Inc()
	return request, nil
}

func (s *clubService) ListClubs(ctx context.Context, search, category string) ([]models.Club, error) {
	clubs, err := s.clubRepo.GetClubs(ctx, models.ClubFilters{
		Search:   strings.TrimSpace(search),
		Category: strings.TrimSpace(category),
	})
	if err != nil {
		return nil, fmt.Errorf("listing clubs: %w", err)
	}
	return clubs, nil
}

func (s *clubService) GetClub(ctx context.Context, id string) (*models.Club, error) {
	oid, err := parseID(id)
	if err != nil {
		return nil, err
	}
	club, err := s.clubRepo.GetClubByID(ctx, oid)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, ErrClubNotFound
		}
		return nil, fmt.Errorf("getting club: %w", err)
	}
	return club, nil
}

func (s *clubService) ListClubsByManager(ctx context.Context, email string) ([]models.Club, error) {
	email = utils.NormalizeEmail(email)
	if err := validateEmail(email); err != nil {
		return nil, err
	}
	clubs, err := s.clubRepo.GetClubs(ctx, models.ClubFilters{ManagerEmail: email})
	if err != nil {
		return nil, fmt.Errorf("listing clubs for manager: %w", err)
	}
	return clubs, nil
}

func (s *clubService) loadPending(ctx context.Context, id primitive.ObjectID) (*models.ClubRequest, error) {
	request, err := s.requestRepo.GetClubRequestByID(ctx, id)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, ErrRequestNotFound
		}
		return nil, fmt.Errorf("getting club request: %w", err)
	}
	if request.Status != models.StatusPending {
		return nil, ErrRequestNotPending
	}
	return request, nil
}
