package services

import (
	"context"
	"fmt"
	"sort"

	"clubsphere_backend/internal/models"
	"clubsphere_backend/internal/repositories"

	"go.mongodb.org/mongo-driver/bson/primitive"
	"golang.org/x/sync/errgroup"
)

// --- ReportService Interface ---
type ReportService interface {
	TotalRevenue(ctx context.Context) (float64, error)
	AdminStats(ctx context.Context) (*models.AdminStats, error)
}

// ReportRepositories groups the read models the reports aggregate over.
type ReportRepositories struct {
	Members       repositories.MemberRepository
	ClubRequests  repositories.ClubRequestRepository
	Clubs         repositories.ClubRepository
	Payments      repositories.PaymentRepository
	Events        repositories.EventRepository
	Registrations repositories.RegistrationRepository
}

type reportService struct {
	repos ReportRepositories
}

// NewReportService creates a new instance of ReportService.
func NewReportService(repos ReportRepositories) ReportService {
	return &reportService{repos: repos}
}

func (s *reportService) TotalRevenue(ctx context.Context) (float64, error) {
	total, err := s.repos.Payments.TotalRevenue(ctx)
	if err != nil {
		return 0, fmt.Errorf("summing revenue: %w", err)
	}
	return total, nil
}

func (s *reportService) AdminStats(ctx context.Context) (*models.AdminStats, error) {
	var (
		stats   models.AdminStats
		clubs   []models.Club
		revenue []models.ClubRevenue
	)

	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() (err error) {
		stats.TotalMembers, err = s.repos.Members.CountMembers(ctx)
		return wrap(err, "counting members")
	})
	g.Go(func() (err error) {
		stats.MembersByRole, err = s.repos.Members.CountMembersByRole(ctx)
		return wrap(err, "counting members by role")
	})
	g.Go(func() (err error) {
		stats.TotalClubs, err = s.repos.Clubs.CountClubs(ctx)
		return wrap(err, "counting clubs")
	})
	g.Go(func() (err error) {
		stats.PendingClubs, err = s.repos.ClubRequests.CountClubRequests(ctx, models.StatusPending)
		return wrap(err, "counting pending club requests")
	})
	g.Go(func() (err error) {
		stats.TotalPayments, err = s.repos.Payments.CountPayments(ctx)
		return wrap(err, "counting payments")
	})
	g.Go(func() (err error) {
		stats.TotalRevenue, err = s.repos.Payments.TotalRevenue(ctx)
		return wrap(err, "summing revenue")
	})
	g.Go(func() (err error) {
		stats.TotalEvents, err = s.repos.Events.CountEvents(ctx)
		return wrap(err, "counting events")
	})
	g.Go(func() (err error) {
		stats.TotalRegistrations, err = s.repos.Registrations.CountRegistrations(ctx)
		return wrap(err, "counting registrations")
	})
	g.Go(func() (err error) {
		clubs, err = s.repos.Clubs.GetClubs(ctx, models.ClubFilters{})
		return wrap(err, "listing clubs")
	})
	g.Go(func() (err error) {
		revenue, err = s.repos.Payments.RevenueByClub(ctx)
		return wrap(err, "aggregating revenue by club")
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	stats.Clubs = joinClubRevenue(clubs, revenue)
	return &stats, nil
}

// joinClubRevenue matches revenue rows to clubs by id. Clubs without payments
// get zero rows; revenue for clubs that no longer exist is kept unnamed.
func joinClubRevenue(clubs []models.Club, revenue []models.ClubRevenue) []models.ClubStats {
	byID := make(map[primitive.ObjectID]models.ClubRevenue, len(revenue))
	for _, r := range revenue {
		byID[r.ClubID] = r
	}

	out := make([]models.ClubStats, 0, len(clubs)+len(revenue))
	for _, c := range clubs {
		r := byID[c.ID]
		delete(byID, c.ID)
		out = append(out, models.ClubStats{
			ClubID:   c.ID,
			ClubName: c.ClubName,
			Revenue:  r.Revenue,
			Payments: r.Payments,
			Members:  r.PayingEmails,
		})
	}
	for id, r := range byID {
		out = append(out, models.ClubStats{
			ClubID:   id,
			Revenue:  r.Revenue,
			Payments: r.Payments,
			Members:  r.PayingEmails,
		})
	}

	sort.SliceStable(out, func(i, j int) bool {
		if out[i].Revenue != out[j].Revenue {
			return out[i].Revenue > out[j].Revenue
		}
		return out[i].ClubID.Hex() < out[j].ClubID.Hex()
	})
	return out
}

func wrap(err error, op string) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf("%s: %w", op, err)
}
