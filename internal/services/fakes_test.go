package services

import (
	"context"
	"sort"
	"strings"
	"sync"
	"time"

	"clubsphere_backend/internal/models"
	"clubsphere_backend/internal/payments"
	"clubsphere_backend/internal/repositories"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// memStore is an in-memory stand-in for every repository. Unique constraints
// mirror the indexes the mongo store declares.
type memStore struct {
	mu              sync.Mutex
	members         []models.Member
	clubRequests    []models.ClubRequest
	managerRequests []models.ClubManagerRequest
	clubs           []models.Club
	payments        []models.Payment
	events          []models.Event
	registrations   []models.EventRegistration

	failOn map[string]error
	// staleRegistrationReads makes IsRegistered miss existing rows.
	staleRegistrationReads bool
}

func newMemStore() *memStore {
	return &memStore{failOn: map[string]error{}}
}

func (m *memStore) fail(op string) error {
	return m.failOn[op]
}

type memSnapshot struct {
	members         []models.Member
	clubRequests    []models.ClubRequest
	managerRequests []models.ClubManagerRequest
	clubs           []models.Club
	payments        []models.Payment
	events          []models.Event
	registrations   []models.EventRegistration
}

func (m *memStore) snapshot() memSnapshot {
	m.mu.Lock()
	defer m.mu.Unlock()
	return memSnapshot{
		members:         append([]models.Member(nil), m.members...),
		clubRequests:    append([]models.ClubRequest(nil), m.clubRequests...),
		managerRequests: append([]models.ClubManagerRequest(nil), m.managerRequests...),
		clubs:           append([]models.Club(nil), m.clubs...),
		payments:        append([]models.Payment(nil), m.payments...),
		events:          append([]models.Event(nil), m.events...),
		registrations:   append([]models.EventRegistration(nil), m.registrations...),
	}
}

func (m *memStore) restore(s memSnapshot) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.members = s.members
	m.clubRequests = s.clubRequests
	m.managerRequests = s.managerRequests
	m.clubs = s.clubs
	m.payments = s.payments
	m.events = s.events
	m.registrations = s.registrations
}

// fakeTx rolls the store back when fn fails, like an aborted transaction.
type fakeTx struct {
	store *memStore
	calls int
}

func (t *fakeTx) WithTransaction(ctx context.Context, fn func(ctx context.Context) error) error {
	t.calls++
	snap := t.store.snapshot()
	if err := fn(ctx); err != nil {
		t.store.restore(snap)
		return err
	}
	return nil
}

// --- members ---

func (m *memStore) CreateMember(_ context.Context, member *models.Member) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if err := m.fail("CreateMember"); err != nil {
		return err
	}
	for _, existing := range m.members {
		if existing.Email == member.Email {
			return repositories.ErrDuplicateKey
		}
	}
	if member.ID.IsZero() {
		member.ID = primitive.NewObjectID()
	}
	member.CreatedAt = time.Now().UTC()
	member.UpdatedAt = member.CreatedAt
	m.members = append(m.members, *member)
	return nil
}

func (m *memStore) GetMemberByEmail(_ context.Context, email string) (*models.Member, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, member := range m.members {
		if member.Email == email {
			out := member
			return &out, nil
		}
	}
	return nil, repositories.ErrNotFound
}

func (m *memStore) GetMembers(context.Context) ([]models.Member, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]models.Member{}, m.members...), nil
}

func (m *memStore) PromoteRole(_ context.Context, email, role string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if err := m.fail("PromoteRole"); err != nil {
		return err
	}
	for i := range m.members {
		if m.members[i].Email == email {
			if !models.RoleAtLeast(m.members[i].Role, role) {
				m.members[i].Role = role
			}
			return nil
		}
	}
	return repositories.ErrNotFound
}

func (m *memStore) CountMembers(context.Context) (int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if err := m.fail("CountMembers"); err != nil {
		return 0, err
	}
	return int64(len(m.members)), nil
}

func (m *memStore) CountMembersByRole(context.Context) (map[string]int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := map[string]int64{models.RoleMember: 0, models.RoleManager: 0, models.RoleAdmin: 0}
	for _, member := range m.members {
		out[member.Role]++
	}
	return out, nil
}

// --- club requests ---

func (m *memStore) CreateClubRequest(_ context.Context, req *models.ClubRequest) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, existing := range m.clubRequests {
		if existing.Email == req.Email && existing.Status == models.StatusPending && req.Status == models.StatusPending {
			return repositories.ErrDuplicateKey
		}
	}
	if req.ID.IsZero() {
		req.ID = primitive.NewObjectID()
	}
	req.SubmittedAt = time.Now().UTC()
	m.clubRequests = append(m.clubRequests, *req)
	return nil
}

func (m *memStore) GetClubRequestByID(_ context.Context, id primitive.ObjectID) (*models.ClubRequest, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, req := range m.clubRequests {
		if req.ID == id {
			out := req
			return &out, nil
		}
	}
	return nil, repositories.ErrNotFound
}

func (m *memStore) GetPendingClubRequestByEmail(_ context.Context, email string) (*models.ClubRequest, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, req := range m.clubRequests {
		if req.Email == email && req.Status == models.StatusPending {
			out := req
			return &out, nil
		}
	}
	return nil, repositories.ErrNotFound
}

func (m *memStore) GetClubRequests(_ context.Context, status string) ([]models.ClubRequest, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := []models.ClubRequest{}
	for _, req := range m.clubRequests {
		if status == "" || req.Status == status {
			out = append(out, req)
		}
	}
	return out, nil
}

func (m *memStore) ReviewClubRequest(_ context.Context, id primitive.ObjectID, status string, reviewedAt time.Time, publishedClubID *primitive.ObjectID) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for i := range m.clubRequests {
		if m.clubRequests[i].ID == id && m.clubRequests[i].Status == models.StatusPending {
			m.clubRequests[i].Status = status
			m.clubRequests[i].ReviewedAt = &reviewedAt
			m.clubRequests[i].PublishedClubID = publishedClubID
			return nil
		}
	}
	return repositories.ErrNotFound
}

func (m *memStore) CountClubRequests(_ context.Context, status string) (int64, error) {
	reqs, _ := m.GetClubRequests(context.Background(), status)
	return int64(len(reqs)), nil
}

// --- manager requests ---

func (m *memStore) CreateManagerRequest(_ context.Context, req *models.ClubManagerRequest) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, existing := range m.managerRequests {
		if existing.Email == req.Email && existing.Status == models.StatusPending && req.Status == models.StatusPending {
			return repositories.ErrDuplicateKey
		}
	}
	if req.ID.IsZero() {
		req.ID = primitive.NewObjectID()
	}
	req.CreatedAt = time.Now().UTC()
	m.managerRequests = append(m.managerRequests, *req)
	return nil
}

func (m *memStore) GetManagerRequestByID(_ context.Context, id primitive.ObjectID) (*models.ClubManagerRequest, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, req := range m.managerRequests {
		if req.ID == id {
			out := req
			return &out, nil
		}
	}
	return nil, repositories.ErrNotFound
}

func (m *memStore) GetPendingManagerRequestByEmail(_ context.Context, email string) (*models.ClubManagerRequest, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, req := range m.managerRequests {
		if req.Email == email && req.Status == models.StatusPending {
			out := req
			return &out, nil
		}
	}
	return nil, repositories.ErrNotFound
}

func (m *memStore) GetManagerRequests(_ context.Context, status string) ([]models.ClubManagerRequest, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := []models.ClubManagerRequest{}
	for _, req := range m.managerRequests {
		if status == "" || req.Status == status {
			out = append(out, req)
		}
	}
	return out, nil
}

func (m *memStore) ReviewManagerRequest(_ context.Context, id primitive.ObjectID, status string, reviewedAt time.Time) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for i := range m.managerRequests {
		if m.managerRequests[i].ID == id && m.managerRequests[i].Status == models.StatusPending {
			m.managerRequests[i].Status = status
			m.managerRequests[i].ReviewedAt = &reviewedAt
			return nil
		}
	}
	return repositories.ErrNotFound
}

// --- clubs ---

func (m *memStore) CreateClub(_ context.Context, club *models.Club) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if err := m.fail("CreateClub"); err != nil {
		return err
	}
	if club.ID.IsZero() {
		club.ID = primitive.NewObjectID()
	}
	m.clubs = append(m.clubs, *club)
	return nil
}

func (m *memStore) GetClubByID(_ context.Context, id primitive.ObjectID) (*models.Club, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, club := range m.clubs {
		if club.ID == id {
			out := club
			return &out, nil
		}
	}
	return nil, repositories.ErrNotFound
}

func (m *memStore) GetClubs(_ context.Context, f models.ClubFilters) ([]models.Club, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := []models.Club{}
	for _, club := range m.clubs {
		if !club.IsPublished {
			continue
		}
		if f.Search != "" && !strings.Contains(strings.ToLower(club.ClubName), strings.ToLower(f.Search)) {
			continue
		}
		if f.Category != "" && club.Category != f.Category {
			continue
		}
		if f.ManagerEmail != "" && club.ManagerEmail != f.ManagerEmail {
			continue
		}
		out = append(out, club)
	}
	return out, nil
}

func (m *memStore) CountClubs(context.Context) (int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return int64(len(m.clubs)), nil
}

// --- payments ---

func (m *memStore) CreatePayment(_ context.Context, p *models.Payment) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, existing := range m.payments {
		if existing.TransactionID == p.TransactionID {
			return repositories.ErrDuplicateKey
		}
	}
	if p.ID.IsZero() {
		p.ID = primitive.NewObjectID()
	}
	m.payments = append(m.payments, *p)
	return nil
}

func (m *memStore) GetPaymentByTransactionID(_ context.Context, txID string) (*models.Payment, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if err := m.fail("GetPaymentByTransactionID"); err != nil {
		return nil, err
	}
	for _, p := range m.payments {
		if p.TransactionID == txID {
			out := p
			return &out, nil
		}
	}
	return nil, repositories.ErrNotFound
}

func (m *memStore) GetPaymentsByCustomer(_ context.Context, email string) ([]models.Payment, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := []models.Payment{}
	for _, p := range m.payments {
		if p.CustomerEmail == email {
			out = append(out, p)
		}
	}
	return out, nil
}

func (m *memStore) HasPaidForClub(_ context.Context, email string, clubID primitive.ObjectID) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, p := range m.payments {
		if p.CustomerEmail == email && p.ClubID == clubID && p.Status == models.PaymentStatusPaid {
			return true, nil
		}
	}
	return false, nil
}

func (m *memStore) CountPayments(context.Context) (int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return int64(len(m.payments)), nil
}

func (m *memStore) TotalRevenue(context.Context) (float64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var total float64
	for _, p := range m.payments {
		if p.Status == models.PaymentStatusPaid {
			total += p.Amount
		}
	}
	return total, nil
}

func (m *memStore) RevenueByClub(context.Context) ([]models.ClubRevenue, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	rows := map[primitive.ObjectID]*models.ClubRevenue{}
	emails := map[primitive.ObjectID]map[string]bool{}
	for _, p := range m.payments {
		if p.Status != models.PaymentStatusPaid {
			continue
		}
		row, ok := rows[p.ClubID]
		if !ok {
			row = &models.ClubRevenue{ClubID: p.ClubID}
			rows[p.ClubID] = row
			emails[p.ClubID] = map[string]bool{}
		}
		row.Revenue += p.Amount
		row.Payments++
		emails[p.ClubID][p.CustomerEmail] = true
	}
	out := make([]models.ClubRevenue, 0, len(rows))
	for id, row := range rows {
		row.PayingEmails = len(emails[id])
		out = append(out, *row)
	}
	return out, nil
}

// --- events ---

func (m *memStore) CreateEvent(_ context.Context, e *models.Event) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if e.ID.IsZero() {
		e.ID = primitive.NewObjectID()
	}
	e.CreatedAt = time.Now().UTC()
	m.events = append(m.events, *e)
	return nil
}

func (m *memStore) GetEventByID(_ context.Context, id primitive.ObjectID) (*models.Event, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, e := range m.events {
		if e.ID == id {
			out := e
			return &out, nil
		}
	}
	return nil, repositories.ErrNotFound
}

func (m *memStore) GetEvents(_ context.Context, clubID primitive.ObjectID) ([]models.Event, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := []models.Event{}
	for _, e := range m.events {
		if clubID.IsZero() || e.ClubID == clubID {
			out = append(out, e)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Date.Before(out[j].Date) })
	return out, nil
}

func (m *memStore) CountEvents(context.Context) (int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return int64(len(m.events)), nil
}

// --- registrations ---

func (m *memStore) CreateRegistration(_ context.Context, r *models.EventRegistration) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, existing := range m.registrations {
		if existing.EventID == r.EventID && existing.Email == r.Email {
			return repositories.ErrDuplicateKey
		}
	}
	if r.ID.IsZero() {
		r.ID = primitive.NewObjectID()
	}
	r.RegisteredAt = time.Now().UTC()
	m.registrations = append(m.registrations, *r)
	return nil
}

func (m *memStore) IsRegistered(_ context.Context, eventID primitive.ObjectID, email string) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if err := m.fail("IsRegistered"); err != nil {
		return false, err
	}
	if m.staleRegistrationReads {
		return false, nil
	}
	for _, r := range m.registrations {
		if r.EventID == eventID && r.Email == email {
			return true, nil
		}
	}
	return false, nil
}

func (m *memStore) CountRegistrationsForEvent(_ context.Context, eventID primitive.ObjectID) (int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var n int64
	for _, r := range m.registrations {
		if r.EventID == eventID {
			n++
		}
	}
	return n, nil
}

func (m *memStore) GetRegistrationsByEmail(_ context.Context, email string) ([]models.EventRegistration, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := []models.EventRegistration{}
	for _, r := range m.registrations {
		if r.Email == email {
			out = append(out, r)
		}
	}
	return out, nil
}

func (m *memStore) CountRegistrations(context.Context) (int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return int64(len(m.registrations)), nil
}

// fakeProvider is a scripted checkout provider.
type fakeProvider struct {
	mu       sync.Mutex
	created  []payments.CheckoutRequest
	sessions map[string]*payments.CheckoutSession
	err      error
}

func newFakeProvider() *fakeProvider {
	return &fakeProvider{sessions: map[string]*payments.CheckoutSession{}}
}

func (p *fakeProvider) CreateCheckoutSession(_ context.Context, req payments.CheckoutRequest) (*payments.CheckoutSession, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.err != nil {
		return nil, p.err
	}
	p.created = append(p.created, req)
	id := "cs_test_" + primitive.NewObjectID().Hex()
	s := &payments.CheckoutSession{
		ID:          id,
		URL:         "https://checkout.example/" + id,
		Currency:    req.Currency,
		AmountTotal: req.UnitAmount,
		Metadata:    req.Metadata,
	}
	p.sessions[id] = s
	return s, nil
}

func (p *fakeProvider) GetCheckoutSession(_ context.Context, id string) (*payments.CheckoutSession, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.err != nil {
		return nil, p.err
	}
	s, ok := p.sessions[id]
	if !ok {
		return nil, payments.ErrProvider
	}
	out := *s
	return &out, nil
}

var (
	_ repositories.MemberRepository         = (*memStore)(nil)
	_ repositories.ClubRequestRepository    = (*memStore)(nil)
	_ repositories.ManagerRequestRepository = (*memStore)(nil)
	_ repositories.ClubRepository           = (*memStore)(nil)
	_ repositories.PaymentRepository        = (*memStore)(nil)
	_ repositories.EventRepository          = (*memStore)(nil)
	_ repositories.RegistrationRepository   = (*memStore)(nil)
	_ payments.Provider                     = (*fakeProvider)(nil)
)
