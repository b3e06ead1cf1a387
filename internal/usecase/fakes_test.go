package usecase

import (
	"context"
	"sync"
	"time"

	"github.com/shopspring/decimal"

	"wastetrade-service/internal/domain"
	"wastetrade-service/internal/repository"
	"wastetrade-service/pkg/utils"
	"wastetrade-service/pkg/xerrors"
)

func testRefs() *utils.ReferenceGenerator {
	sf, err := utils.NewSnowflake(1)
	if err != nil {
		panic(err)
	}
	return utils.NewReferenceGenerator(sf)
}

// fakeLedgerStore backs both the user and transaction repositories so tests
// can observe balances and the transaction trail together.
type fakeLedgerStore struct {
	mu       sync.Mutex
	users    map[int64]*domain.User
	records  []*domain.Transaction
	nextTxID int64
}

func newFakeLedgerStore() *fakeLedgerStore {
	return &fakeLedgerStore{users: make(map[int64]*domain.User), nextTxID: 1}
}

func (s *fakeLedgerStore) addUser(userID int64, balance string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.users[userID] = &domain.User{
		UserID:  userID,
		Balance: decimal.RequireFromString(balance),
	}
}

func (s *fakeLedgerStore) balance(userID int64) decimal.Decimal {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.users[userID].Balance
}

func (s *fakeLedgerStore) recordCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.records)
}

type fakeTxRepo struct {
	store *fakeLedgerStore
}

func (r *fakeTxRepo) ExecutePlan(_ context.Context, req *domain.PlanRequest) (*domain.Transaction, decimal.Decimal, error) {
	if err := req.Validate(); err != nil {
		return nil, decimal.Zero, err
	}

	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	user, ok := r.store.users[req.UserID]
	if !ok {
		return nil, decimal.Zero, xerrors.ErrUserNotFound
	}

	newBalance, err := domain.ApplyPlan(user.Balance, req.Amount, req.PlanType)
	if err != nil {
		return nil, decimal.Zero, err
	}

	user.Balance = newBalance
	record := &domain.Transaction{
		TransactionID: r.store.nextTxID,
		Reference:     req.Reference,
		UserID:        req.UserID,
		AdminID:       req.AdminID,
		Amount:        req.Amount,
		PlanType:      req.PlanType,
		TimeCreated:   time.Now(),
	}
	r.store.nextTxID++
	r.store.records = append(r.store.records, record)
	return record, newBalance, nil
}

func (r *fakeTxRepo) ListByUser(_ context.Context, userID int64, limit, offset int) ([]*domain.Transaction, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	var out []*domain.Transaction
	for _, rec := range r.store.records {
		if rec.UserID == userID {
			out = append(out, rec)
		}
	}
	if offset >= len(out) {
		return nil, nil
	}
	out = out[offset:]
	if len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

func (r *fakeTxRepo) GetByID(_ context.Context, transactionID int64) (*domain.Transaction, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	for _, rec := range r.store.records {
		if rec.TransactionID == transactionID {
			return rec, nil
		}
	}
	return nil, xerrors.ErrNotFound
}

type fakeUserRepo struct {
	store *fakeLedgerStore
}

func (r *fakeUserRepo) Create(_ context.Context, u *domain.User) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	for _, existing := range r.store.users {
		if existing.Email == u.Email {
			return xerrors.ErrUserAlreadyExists
		}
	}
	u.UserID = int64(len(r.store.users) + 1)
	u.CreatedAt = time.Now()
	r.store.users[u.UserID] = u
	return nil
}

func (r *fakeUserRepo) GetByID(_ context.Context, userID int64) (*domain.User, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	u, ok := r.store.users[userID]
	if !ok {
		return nil, xerrors.ErrUserNotFound
	}
	return u, nil
}

func (r *fakeUserRepo) GetBalance(_ context.Context, userID int64) (decimal.Decimal, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	u, ok := r.store.users[userID]
	if !ok {
		return decimal.Zero, xerrors.ErrUserNotFound
	}
	return u.Balance, nil
}

func (r *fakeUserRepo) List(_ context.Context, limit, offset int) ([]*domain.User, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	var out []*domain.User
	for _, u := range r.store.users {
		out = append(out, u)
	}
	return out, nil
}

func (r *fakeUserRepo) Exists(_ context.Context, userID int64) (bool, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	_, ok := r.store.users[userID]
	return ok, nil
}

func (r *fakeUserRepo) Delete(_ context.Context, userID int64) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	if _, ok := r.store.users[userID]; !ok {
		return xerrors.ErrUserNotFound
	}
	delete(r.store.users, userID)
	return nil
}

type fakeAgentRepo struct {
	mu     sync.Mutex
	agents map[int64]*domain.Agent
	nextID int64
}

func newFakeAgentRepo() *fakeAgentRepo {
	return &fakeAgentRepo{agents: make(map[int64]*domain.Agent), nextID: 1}
}

func (r *fakeAgentRepo) addAgent(agentID int64, username string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.agents[agentID] = &domain.Agent{AgentID: agentID, Username: username}
	if agentID >= r.nextID {
		r.nextID = agentID + 1
	}
}

func (r *fakeAgentRepo) Create(_ context.Context, a *domain.Agent) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, existing := range r.agents {
		if existing.Email == a.Email {
			return xerrors.ErrAgentAlreadyExists
		}
	}
	a.AgentID = r.nextID
	r.nextID++
	a.CreatedAt = time.Now()
	r.agents[a.AgentID] = a
	return nil
}

func (r *fakeAgentRepo) GetByID(_ context.Context, agentID int64) (*domain.Agent, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	a, ok := r.agents[agentID]
	if !ok {
		return nil, xerrors.ErrAgentNotFound
	}
	return a, nil
}

func (r *fakeAgentRepo) GetByEmail(_ context.Context, email string) (*domain.Agent, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, a := range r.agents {
		if a.Email == email {
			return a, nil
		}
	}
	return nil, xerrors.ErrAgentNotFound
}

func (r *fakeAgentRepo) List(_ context.Context, limit, offset int) ([]*domain.Agent, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	var out []*domain.Agent
	for _, a := range r.agents {
		out = append(out, a)
	}
	return out, nil
}

func (r *fakeAgentRepo) UpdateAddress(_ context.Context, agentID int64, addr *domain.Address) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	a, ok := r.agents[agentID]
	if !ok {
		return xerrors.ErrAgentNotFound
	}
	a.Address = addr
	return nil
}

func (r *fakeAgentRepo) Exists(_ context.Context, agentID int64) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	_, ok := r.agents[agentID]
	return ok, nil
}

type fakeWasteRepo struct {
	mu     sync.Mutex
	lots   map[int64]*domain.Waste
	agents *fakeAgentRepo
	nextID int64
}

func newFakeWasteRepo(agents *fakeAgentRepo) *fakeWasteRepo {
	return &fakeWasteRepo{lots: make(map[int64]*domain.Waste), agents: agents, nextID: 1}
}

func (r *fakeWasteRepo) Create(_ context.Context, w *domain.Waste) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	w.WasteID = r.nextID
	r.nextID++
	w.CreatedAt = time.Now()
	r.lots[w.WasteID] = w
	return nil
}

func (r *fakeWasteRepo) GetByID(_ context.Context, wasteID int64) (*domain.Waste, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	w, ok := r.lots[wasteID]
	if !ok {
		return nil, xerrors.ErrWasteNotFound
	}
	return w, nil
}

func (r *fakeWasteRepo) AssignAgent(_ context.Context, wasteID, agentID int64) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	w, ok := r.lots[wasteID]
	if !ok {
		return xerrors.ErrWasteNotFound
	}
	w.AgentID = &agentID
	return nil
}

func (r *fakeWasteRepo) ListAll(_ context.Context, limit, offset int) ([]*domain.Waste, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	var out []*domain.Waste
	for _, w := range r.lots {
		out = append(out, w)
	}
	return out, nil
}

func (r *fakeWasteRepo) ListByCollectionDateBetween(_ context.Context, start, end time.Time) ([]*repository.WasteWithAgent, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	var out []*repository.WasteWithAgent
	for _, w := range r.lots {
		if w.CollectionDate.Before(start) || w.CollectionDate.After(end) {
			continue
		}
		row := &repository.WasteWithAgent{Waste: *w}
		if w.AgentID != nil {
			if a, ok := r.agents.agents[*w.AgentID]; ok {
				name := a.Username
				row.AgentUsername = &name
			}
		}
		out = append(out, row)
	}
	return out, nil
}

type fakeCollectionRepo struct {
	mu          sync.Mutex
	collections []*domain.WasteCollection
	nextID      int64
}

func newFakeCollectionRepo() *fakeCollectionRepo {
	return &fakeCollectionRepo{nextID: 1}
}

func (r *fakeCollectionRepo) Create(_ context.Context, c *domain.WasteCollection) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	c.CollectionID = r.nextID
	r.nextID++
	c.CollectedAt = time.Now()
	r.collections = append(r.collections, c)
	return nil
}

func (r *fakeCollectionRepo) ListByAgent(_ context.Context, agentID int64, limit, offset int) ([]*domain.WasteCollection, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	var out []*domain.WasteCollection
	for _, c := range r.collections {
		if c.AgentID == agentID {
			out = append(out, c)
		}
	}
	return out, nil
}

type fakeSender struct {
	mu   sync.Mutex
	sent []struct{ To, Subject, Body string }
	err  error
}

func (s *fakeSender) Send(to, subject, body string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.err != nil {
		return s.err
	}
	s.sent = append(s.sent, struct{ To, Subject, Body string }{to, subject, body})
	return nil
}
