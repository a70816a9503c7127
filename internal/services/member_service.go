package services

import (
	"context"
	"errors"
	"fmt"

	"clubsphere_backend/internal/models"
	"clubsphere_backend/internal/repositories"
	"clubsphere_backend/pkg/utils"
)

// --- Member DTOs ---
type RegisterMemberRequest struct {
	Email    string `json:"email" binding:"required" validate:"required,email"`
	Name     string `json:"name"`
	PhotoURL string `json:"photoURL"`
}

// --- MemberService Interface ---
type MemberService interface {
	// RegisterMember is idempotent per email. created reports whether a new
	// member was inserted.
	RegisterMember(ctx context.Context, req RegisterMemberRequest) (member *models.Member, created bool, err error)
	// GetRole returns ErrMemberNotFound for unknown emails and for values that
	// are not emails at all. Callers decide whether to fall back to
	// models.DefaultRole.
	GetRole(ctx context.Context, email string) (string, error)
	GetMember(ctx context.Context, email string) (*models.Member, error)
	ListMembers(ctx context.Context) ([]models.Member, error)
}

type memberService struct {
	memberRepo repositories.MemberRepository
}

// NewMemberService creates a new instance of MemberService.
func NewMemberService(memberRepo repositories.MemberRepository) MemberService {
	return &memberService{memberRepo: memberRepo}
}

func (s *memberService) RegisterMember(ctx context.Context, req RegisterMemberRequest) (*models.Member, bool, error) {
	req.Email = utils.NormalizeEmail(req.Email)
	if err := validateStruct(req); err != nil {
		return nil, false, err
	}

	existing, err := s.memberRepo.GetMemberByEmail(ctx, req.Email)
	if err == nil {
		return existing, false, nil
	}
	if !errors.Is(err, repositories.ErrNotFound) {
		return nil, false, fmt.Errorf("looking up member: %w", err)
	}

	member := &models.Member{
		Email:    req.Email,
		Name:     req.Name,
		PhotoURL: req.PhotoURL,
		Role:     models.DefaultRole,
	}
	if err := s.memberRepo.CreateMember(ctx, member); err != nil {
		if errors.Is(err, repositories.ErrDuplicateKey) {
			// Lost a race with a concurrent registration of the same email.
			existing, getErr := s.memberRepo.GetMemberByEmail(ctx, req.Email)
			if getErr != nil {
				return nil, false, fmt.Errorf("loading concurrently registered member: %w", getErr)
			}
			return existing, false, nil
		}
		return nil, false, fmt.Errorf("creating member: %w", err)
	}
	utils.LogInfo("Member registered", map[string]interface{}{"email": member.Email})
	return member, true, nil
}

func (s *memberService) GetRole(ctx context.Context, email string) (string, error) {
	member, err := s.GetMember(ctx, email)
	if errors.Is(err, ErrValidation) {
		// Not an email, so no member can hold it.
		return "", fmt.Errorf("%w: %s", ErrMemberNotFound, email)
	}
	if err != nil {
		return "", err
	}
	if member.Role == "" {
		return models.DefaultRole, nil
	}
	return member.Role, nil
}

func (s *memberService) GetMember(ctx context.Context, email string) (*models.Member, error) {
	email = utils.NormalizeEmail(email)
	if err := validateEmail(email); err != nil {
		return nil, err
	}
	member, err := s.memberRepo.GetMemberByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, ErrMemberNotFound
		}
		return nil, fmt.Errorf("getting member: %w", err)
	}
	return member, nil
}

func (s *memberService) ListMembers(ctx context.Context) ([]models.Member, error) {
	members, err := s.memberRepo.GetMembers(ctx)
	if err != nil {
		return nil, fmt.Errorf("listing members: %w", err)
	}
	return members, nil
}
