// Package fixtures provides a stateful in-memory UnitOfWork for service and
// handler tests. A single mutex serializes Do, which stands in for the row
// locks the real implementation takes, and a unit's writes are buffered so a
// failed unit leaves no trace.
package fixtures

import (
	"context"
	"sort"
	"sync"

	"github.com/google/uuid"

	"github.com/goldenbridge/bankapi/pkg/domain"
	"github.com/goldenbridge/bankapi/pkg/domain/account"
	"github.com/goldenbridge/bankapi/pkg/domain/activity"
	"github.com/goldenbridge/bankapi/pkg/domain/admin"
	"github.com/goldenbridge/bankapi/pkg/domain/loan"
	"github.com/goldenbridge/bankapi/pkg/domain/money"
	"github.com/goldenbridge/bankapi/pkg/domain/support"
	"github.com/goldenbridge/bankapi/pkg/domain/transaction"
	"github.com/goldenbridge/bankapi/pkg/repository"
)

type store struct {
	accounts     map[uuid.UUID]account.Account
	admins       map[uuid.UUID]admin.User
	transactions map[uuid.UUID]transaction.Transaction
	loans        map[uuid.UUID]loan.Loan
	activities   []activity.Activity
	tickets      map[uuid.UUID]support.Ticket
	messages     []support.Message
	seq          int64
}

func newStore() *store {
	return &store{
		accounts:     make(map[uuid.UUID]account.Account),
		admins:       make(map[uuid.UUID]admin.User),
		transactions: make(map[uuid.UUID]transaction.Transaction),
		loans:        make(map[uuid.UUID]loan.Loan),
		tickets:      make(map[uuid.UUID]support.Ticket),
	}
}

func (s *store) clone() *store {
	c := newStore()
	for k, v := range s.accounts {
		c.accounts[k] = v
	}
	for k, v := range s.admins {
		c.admins[k] = v
	}
	for k, v := range s.transactions {
		c.transactions[k] = v
	}
	for k, v := range s.loans {
		c.loans[k] = v
	}
	c.activities = append(c.activities, s.activities...)
	for k, v := range s.tickets {
		c.tickets[k] = v
	}
	c.messages = append(c.messages, s.messages...)
	c.seq = s.seq
	return c
}

// MemoryUoW implements repository.UnitOfWork against process memory.
type MemoryUoW struct {
	mu   sync.Mutex
	data *store
	// inTx marks a view handed to a Do callback. Views operate on a pending
	// clone under the root's mutex and never lock themselves.
	inTx bool
}

// NewMemoryUoW returns an empty in-memory unit of work.
func NewMemoryUoW() *MemoryUoW {
	return &MemoryUoW{data: newStore()}
}

// Do runs fn as one serialized unit. On error the unit's writes are
// discarded.
func (m *MemoryUoW) Do(ctx context.Context, fn func(uow repository.UnitOfWork) error) error {
	if m.inTx {
		return fn(m)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	pending := m.data.clone()
	if err := fn(&MemoryUoW{data: pending, inTx: true}); err != nil {
		return err
	}
	m.data = pending
	return nil
}

func (m *MemoryUoW) Accounts() repository.AccountRepository {
	return memoryAccounts{m}
}

func (m *MemoryUoW) Admins() repository.AdminRepository {
	return memoryAdmins{m}
}

func (m *MemoryUoW) Transactions() repository.TransactionRepository {
	return memoryTransactions{m}
}

func (m *MemoryUoW) Loans() repository.LoanRepository {
	return memoryLoans{m}
}

func (m *MemoryUoW) Activities() repository.ActivityRepository {
	return memoryActivities{m}
}

func (m *MemoryUoW) Support() repository.SupportRepository {
	return memorySupport{m}
}

// read and write guard access issued outside Do; a Do view already runs
// under the root's mutex.
func (m *MemoryUoW) read(fn func(s *store)) {
	if m.inTx {
		fn(m.data)
		return
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	fn(m.data)
}

func (m *MemoryUoW) write(fn func(s *store) error) error {
	if m.inTx {
		return fn(m.data)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	return fn(m.data)
}

// SeedAccount installs a committed account for test setup.
func (m *MemoryUoW) SeedAccount(a *account.Account) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.data.accounts[a.ID] = *a
}

// SeedAdmin installs a committed operator for test setup.
func (m *MemoryUoW) SeedAdmin(u *admin.User) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.data.admins[u.ID] = *u
}

// Balance reads an account's committed balance.
func (m *MemoryUoW) Balance(id uuid.UUID) money.Money {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.data.accounts[id].Balance
}

type memoryAccounts struct{ m *MemoryUoW }

func (r memoryAccounts) Create(ctx context.Context, a *account.Account) error {
	return r.m.write(func(s *store) error {
		for _, existing := range s.accounts {
			if existing.Email == a.Email {
				return domain.ErrAlreadyExists
			}
		}
		s.accounts[a.ID] = *a
		return nil
	})
}

func (r memoryAccounts) Get(ctx context.Context, id uuid.UUID) (*account.Account, error) {
	var (
		a  account.Account
		ok bool
	)
	r.m.read(func(s *store) { a, ok = s.accounts[id] })
	if !ok {
		return nil, domain.ErrNotFound
	}
	return &a, nil
}

func (r memoryAccounts) GetForUpdate(ctx context.Context, id uuid.UUID) (*account.Account, error) {
	return r.Get(ctx, id)
}

func (r memoryAccounts) GetByEmail(ctx context.Context, email string) (*account.Account, error) {
	var found *account.Account
	r.m.read(func(s *store) {
		for _, a := range s.accounts {
			if a.Email == email {
				cp := a
				found = &cp
				break
			}
		}
	})
	if found == nil {
		return nil, domain.ErrNotFound
	}
	return found, nil
}

func (r memoryAccounts) List(ctx context.Context) ([]*account.Account, error) {
	var out []*account.Account
	r.m.read(func(s *store) {
		for _, a := range s.accounts {
			cp := a
			out = append(out, &cp)
		}
	})
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out, nil
}

func (r memoryAccounts) Update(ctx context.Context, a *account.Account) error {
	return r.m.write(func(s *store) error {
		if _, ok := s.accounts[a.ID]; !ok {
			return domain.ErrNotFound
		}
		s.accounts[a.ID] = *a
		return nil
	})
}

func (r memoryAccounts) Delete(ctx context.Context, id uuid.UUID) error {
	return r.m.write(func(s *store) error {
		if _, ok := s.accounts[id]; !ok {
			return domain.ErrNotFound
		}
		delete(s.accounts, id)
		return nil
	})
}

type memoryAdmins struct{ m *MemoryUoW }

func (r memoryAdmins) Create(ctx context.Context, u *admin.User) error {
	return r.m.write(func(s *store) error {
		for _, existing := range s.admins {
			if existing.Username == u.Username {
				return domain.ErrAlreadyExists
			}
		}
		s.admins[u.ID] = *u
		return nil
	})
}

func (r memoryAdmins) Get(ctx context.Context, id uuid.UUID) (*admin.User, error) {
	var (
		u  admin.User
		ok bool
	)
	r.m.read(func(s *store) { u, ok = s.admins[id] })
	if !ok {
		return nil, domain.ErrNotFound
	}
	return &u, nil
}

func (r memoryAdmins) GetByUsername(ctx context.Context, username string) (*admin.User, error) {
	var found *admin.User
	r.m.read(func(s *store) {
		for _, u := range s.admins {
			if u.Username == username {
				cp := u
				found = &cp
				break
			}
		}
	})
	if found == nil {
		return nil, domain.ErrNotFound
	}
	return found, nil
}

func (r memoryAdmins) UpdatePassword(ctx context.Context, id uuid.UUID, passwordHash string) error {
	return r.m.write(func(s *store) error {
		u, ok := s.admins[id]
		if !ok {
			return domain.ErrNotFound
		}
		u.PasswordHash = passwordHash
		s.admins[id] = u
		return nil
	})
}

type memoryTransactions struct{ m *MemoryUoW }

func (r memoryTransactions) Create(ctx context.Context, t *transaction.Transaction) error {
	return r.m.write(func(s *store) error {
		s.seq++
		s.transactions[t.ID] = *t
		return nil
	})
}

func (r memoryTransactions) GetForUpdate(ctx context.Context, id uuid.UUID) (*transaction.Transaction, error) {
	var (
		t  transaction.Transaction
		ok bool
	)
	r.m.read(func(s *store) { t, ok = s.transactions[id] })
	if !ok {
		return nil, domain.ErrNotFound
	}
	return &t, nil
}

func (r memoryTransactions) GetByOwner(ctx context.Context, id, userID uuid.UUID) (*transaction.Transaction, error) {
	t, err := r.GetForUpdate(ctx, id)
	if err != nil || t.UserID != userID {
		return nil, domain.ErrNotFound
	}
	return t, nil
}

func (r memoryTransactions) ListByUser(ctx context.Context, userID uuid.UUID, limit int) ([]*transaction.Transaction, error) {
	var out []*transaction.Transaction
	r.m.read(func(s *store) {
		for _, t := range s.transactions {
			if t.UserID == userID {
				cp := t
				out = append(out, &cp)
			}
		}
	})
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

func (r memoryTransactions) ListAll(ctx context.Context) ([]*transaction.WithUser, error) {
	var out []*transaction.WithUser
	r.m.read(func(s *store) {
		for _, t := range s.transactions {
			out = append(out, &transaction.WithUser{
				Transaction: t,
				UserName:    s.accounts[t.UserID].FullName,
			})
		}
	})
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out, nil
}

func (r memoryTransactions) UpdateStatus(ctx context.Context, id uuid.UUID, status transaction.Status) error {
	return r.m.write(func(s *store) error {
		t, ok := s.transactions[id]
		if !ok {
			return domain.ErrNotFound
		}
		t.Status = status
		s.transactions[id] = t
		return nil
	})
}

func (r memoryTransactions) Summarize(ctx context.Context, userID uuid.UUID) (*transaction.Summary, error) {
	sum := &transaction.Summary{}
	r.m.read(func(s *store) {
		for _, t := range s.transactions {
			if t.UserID != userID || t.Status != transaction.StatusApproved {
				continue
			}
			if t.Type.IsDebit() {
				sum.TotalWithdrawals = sum.TotalWithdrawals.Add(t.Amount)
			} else {
				sum.TotalDeposits = sum.TotalDeposits.Add(t.Amount)
			}
		}
	})
	return sum, nil
}

type memoryLoans struct{ m *MemoryUoW }

func (r memoryLoans) Create(ctx context.Context, l *loan.Loan) error {
	return r.m.write(func(s *store) error {
		s.loans[l.ID] = *l
		return nil
	})
}

func (r memoryLoans) GetForUpdate(ctx context.Context, id uuid.UUID) (*loan.Loan, error) {
	var (
		l  loan.Loan
		ok bool
	)
	r.m.read(func(s *store) { l, ok = s.loans[id] })
	if !ok {
		return nil, domain.ErrNotFound
	}
	return &l, nil
}

func (r memoryLoans) ListByUser(ctx context.Context, userID uuid.UUID) ([]*loan.Loan, error) {
	var out []*loan.Loan
	r.m.read(func(s *store) {
		for _, l := range s.loans {
			if l.UserID == userID {
				cp := l
				out = append(out, &cp)
			}
		}
	})
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out, nil
}

func (r memoryLoans) ListByUserAndStatus(ctx context.Context, userID uuid.UUID, status loan.Status) ([]*loan.Loan, error) {
	all, _ := r.ListByUser(ctx, userID)
	out := all[:0]
	for _, l := range all {
		if l.Status == status {
			out = append(out, l)
		}
	}
	return out, nil
}

func (r memoryLoans) ListPending(ctx context.Context) ([]*loan.WithUser, error) {
	var out []*loan.WithUser
	r.m.read(func(s *store) {
		for _, l := range s.loans {
			if l.Status == loan.StatusPending {
				out = append(out, &loan.WithUser{
					Loan:     l,
					UserName: s.accounts[l.UserID].FullName,
				})
			}
		}
	})
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out, nil
}

func (r memoryLoans) UpdateStatus(ctx context.Context, id uuid.UUID, status loan.Status) error {
	return r.m.write(func(s *store) error {
		l, ok := s.loans[id]
		if !ok {
			return domain.ErrNotFound
		}
		l.Status = status
		s.loans[id] = l
		return nil
	})
}

type memoryActivities struct{ m *MemoryUoW }

func (r memoryActivities) Record(ctx context.Context, a *activity.Activity) error {
	return r.m.write(func(s *store) error {
		s.activities = append(s.activities, *a)
		return nil
	})
}

func (r memoryActivities) List(ctx context.Context) ([]*activity.WithAdmin, error) {
	var out []*activity.WithAdmin
	r.m.read(func(s *store) {
		for i := len(s.activities) - 1; i >= 0; i-- {
			a := s.activities[i]
			out = append(out, &activity.WithAdmin{
				Activity:  a,
				AdminName: s.admins[a.AdminID].FullName,
			})
		}
	})
	return out, nil
}

type memorySupport struct{ m *MemoryUoW }

func (r memorySupport) CreateTicket(ctx context.Context, t *support.Ticket) error {
	return r.m.write(func(s *store) error {
		s.tickets[t.ID] = *t
		return nil
	})
}

func (r memorySupport) GetTicket(ctx context.Context, id uuid.UUID) (*support.TicketWithUser, error) {
	var found *support.TicketWithUser
	r.m.read(func(s *store) {
		if t, ok := s.tickets[id]; ok {
			found = &support.TicketWithUser{
				Ticket:   t,
				UserName: s.accounts[t.UserID].FullName,
			}
		}
	})
	if found == nil {
		return nil, domain.ErrNotFound
	}
	return found, nil
}

func (r memorySupport) GetTicketForUser(ctx context.Context, id, userID uuid.UUID) (*support.Ticket, error) {
	t, err := r.GetTicket(ctx, id)
	if err != nil || t.UserID != userID {
		return nil, domain.ErrNotFound
	}
	return &t.Ticket, nil
}

func (r memorySupport) ListByUser(ctx context.Context, userID uuid.UUID) ([]*support.Ticket, error) {
	var out []*support.Ticket
	r.m.read(func(s *store) {
		for _, t := range s.tickets {
			if t.UserID == userID {
				cp := t
				out = append(out, &cp)
			}
		}
	})
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out, nil
}

func (r memorySupport) ListAll(ctx context.Context) ([]*support.TicketWithUser, error) {
	var out []*support.TicketWithUser
	r.m.read(func(s *store) {
		for _, t := range s.tickets {
			out = append(out, &support.TicketWithUser{
				Ticket:   t,
				UserName: s.accounts[t.UserID].FullName,
			})
		}
	})
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out, nil
}

func (r memorySupport) UpdateTicketStatus(ctx context.Context, id uuid.UUID, status support.TicketStatus) (*support.Ticket, error) {
	var updated support.Ticket
	err := r.m.write(func(s *store) error {
		t, ok := s.tickets[id]
		if !ok {
			return domain.ErrNotFound
		}
		t.Status = status
		s.tickets[id] = t
		updated = t
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &updated, nil
}

func (r memorySupport) AddMessage(ctx context.Context, m *support.Message) error {
	return r.m.write(func(s *store) error {
		if _, ok := s.tickets[m.TicketID]; !ok {
			return domain.ErrNotFound
		}
		s.messages = append(s.messages, *m)
		return nil
	})
}

func (r memorySupport) ListMessages(ctx context.Context, ticketID uuid.UUID) ([]*support.MessageWithName, error) {
	var out []*support.MessageWithName
	r.m.read(func(s *store) {
		t, ok := s.tickets[ticketID]
		if !ok {
			return
		}
		for _, msg := range s.messages {
			if msg.TicketID != ticketID {
				continue
			}
			name := "Support Team"
			if msg.Sender == support.SenderUser {
				name = s.accounts[t.UserID].FullName
			}
			cp := msg
			out = append(out, &support.MessageWithName{Message: cp, UserName: name})
		}
	})
	return out, nil
}
