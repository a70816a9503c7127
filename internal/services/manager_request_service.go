package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"clubsphere_backend/internal/database"
	"clubsphere_backend/internal/metrics"
	"clubsphere_backend/internal/models"
	"clubsphere_backend/internal/repositories"
	"clubsphere_backend/pkg/utils"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// --- Manager Request DTOs ---
type SubmitManagerRequest struct {
	Email string `json:"email" binding:"required" validate:"required,email"`
	Name  string `json:"name"`
}

// --- ManagerRequestService Interface ---
type ManagerRequestService interface {
	Submit(ctx context.Context, req SubmitManagerRequest) (*models.ClubManagerRequest, error)
	// List returns requests newest first. An empty status lists all of them.
	List(ctx context.Context, status string) ([]models.ClubManagerRequest, error)
	// Approve marks the request approved and raises the requester to manager
	// in one unit of work.
	Approve(ctx context.Context, id string) (*models.ClubManagerRequest, error)
	Reject(ctx context.Context, id string) (*models.ClubManagerRequest, error)
	// MakeAdmin promotes the requester of an approved request to admin.
	MakeAdmin(ctx context.Context, id string) (*models.Member, error)
}

type managerRequestService struct {
	requestRepo repositories.ManagerRequestRepository
	memberRepo  repositories.MemberRepository
	tx          database.Transactor
}

// NewManagerRequestService creates a new instance of ManagerRequestService.
func NewManagerRequestService(requestRepo repositories.ManagerRequestRepository, memberRepo repositories.MemberRepository, tx database.Transactor) ManagerRequestService {
	return &managerRequestService{
		requestRepo: requestRepo,
		memberRepo:  memberRepo,
		tx:          tx,
	}
}

func (s *managerRequestService) Submit(ctx context.Context, req SubmitManagerRequest) (*models.ClubManagerRequest, error) {
	req.Email = utils.NormalizeEmail(req.Email)
	if err := validateStruct(req); err != nil {
		return nil, err
	}

	_, err := s.requestRepo.GetPendingManagerRequestByEmail(ctx, req.Email)
	if err == nil {
		return nil, ErrPendingRequestExists
	}
	if !errors.Is(err, repositories.ErrNotFound) {
		return nil, fmt.Errorf("checking pending manager request: %w", err)
	}

	request := &models.ClubManagerRequest{
		Email:  req.Email,
		Name:   req.Name,
		Status: models.StatusPending,
	}
	if err := s.requestRepo.CreateManagerRequest(ctx, request); err != nil {
		if errors.Is(err, repositories.ErrDuplicateKey) {
			return nil, ErrPendingRequestExists
		}
		return nil, fmt.Errorf("creating manager request: %w", err)
	}
	metrics.WorkflowTransitions.WithLabelValues("manager_request", models.StatusPending).Inc()
	return request, nil
}

func (s *managerRequestService) List(ctx context.Context, status string) ([]models.ClubManagerRequest, error) {
	if status != "" && !models.IsValidRequestStatus(status) {
		return nil, fmt.Errorf("%w: unknown status %q", ErrValidation, status)
	}
	requests, err := s.requestRepo.GetManagerRequests(ctx, status)
	if err != nil {
		return nil, fmt.Errorf("listing manager requests: %w", err)
	}
	return requests, nil
}

func (s *managerRequestService) Approve(ctx context.Context, id string) (*models.ClubManagerRequest, error) {
	oid, err := parseID(id)
	if err != nil {
		return nil, err
	}

	var approved *models.ClubManagerRequest
	err = s.tx.WithTransaction(ctx, func(ctx context.Context) error {
		request, err := s.loadPending(ctx, oid)
		if err != nil {
			return err
		}
		// Checked before the status swap so a missing member leaves the
		// request pending even when writes commit one by one.
		if _, err := s.memberRepo.GetMemberByEmail(ctx, request.Email); err != nil {
			if errors.Is(err, repositories.ErrNotFound) {
				return fmt.Errorf("%w: %s", ErrMemberNotFound, request.Email)
			}
			return fmt.Errorf("loading member: %w", err)
		}

		now := time.Now().UTC()
		if err := s.requestRepo.ReviewManagerRequest(ctx, oid, models.StatusApproved, now); err != nil {
			if errors.Is(err, repositories.ErrNotFound) {
				return ErrRequestNotPending
			}
			return fmt.Errorf("approving manager request: %w", err)
		}
		if err := s.memberRepo.PromoteRole(ctx, request.Email, models.RoleManager); err != nil {
			if errors.Is(err, repositories.ErrNotFound) {
				return fmt.Errorf("%w: %s", ErrMemberNotFound, request.Email)
			}
			return fmt.Errorf("promoting member to manager: %w", err)
		}

		request.Status = models.StatusApproved
		request.ReviewedAt = &now
		approved = request
		return nil
	})
	if err != nil {
		return nil, err
	}

	metrics.WorkflowTransitions.WithLabelValues("manager_request", models.StatusApproved).Inc()
	utils.LogInfo("Manager request approved", map[string]interface{}{"request_id": id, "email": approved.Email})
	return approved, nil
}

func (s *managerRequestService) Reject(ctx context.Context, id string) (*models.ClubManagerRequest, error) {
	oid, err := parseID(id)
	if err != nil {
		return nil, err
	}
	request, err := s.loadPending(ctx, oid)
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	if err := s.requestRepo.ReviewManagerRequest(ctx, oid, models.StatusRejected, now); err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, ErrRequestNotPending
		}
		return nil, fmt.Errorf("rejecting manager request: %w", err)
	}
	request.Status = models.StatusRejected
	request.ReviewedAt = &now

	metrics.WorkflowTransitions.WithLabelValues("manager_request", models.StatusRejected).Inc()
	return request, nil
}

func (s *managerRequestService) MakeAdmin(ctx context.Context, id string) (*models.Member, error) {
	oid, err := parseID(id)
	if err != nil {
		return nil, err
	}
	request, err := s.requestRepo.GetManagerRequestByID(ctx, oid)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, ErrRequestNotFound
		}
		return nil, fmt.Errorf("getting manager request: %w", err)
	}
	if request.Status != models.StatusApproved {
		return nil, ErrRequestNotApproved
	}

	if err := s.memberRepo.PromoteRole(ctx, request.Email, models.RoleAdmin); err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, fmt.Errorf("%w: %s", ErrMemberNotFound, request.Email)
		}
		return nil, fmt.Errorf("promoting member to admin: %w", err)
	}
	member, err := s.memberRepo.GetMemberByEmail(ctx, request.Email)
	if err != nil {
		return nil, fmt.Errorf("reloading promoted member: %w", err)
	}

	metrics.WorkflowTransitions.WithLabelValues("member", models.RoleAdmin).Inc()
	utils.LogInfo("Member promoted to admin", map[string]interface{}{"email": member.Email})
	return member, nil
}

func (s *managerRequestService) loadPending(ctx context.Context, id primitive.ObjectID) (*models.ClubManagerRequest, error) {
	request, err := s.requestRepo.GetManagerRequestByID(ctx, id)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, ErrRequestNotFound
		}
		return nil, fmt.Errorf("getting manager request: %w", err)
	}
	if request.Status != models.StatusPending {
		return nil, ErrRequestNotPending
	}
	return request, nil
}
