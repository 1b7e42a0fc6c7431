// Package clients keeps the local client book and the staged status change
// that waits for user confirmation.
package clients

import (
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/fisto/crm-sync/internal/domain"
)

var (
	ErrIndexOutOfRange = errors.New("client index out of range")
	ErrNothingStaged   = errors.New("no status change pending")
)

// Pending is a status change waiting for confirmation.
type Pending struct {
	Index  int
	Status domain.ClientStatus
}

// Book is an ordered list of clients with at most one staged status change.
type Book struct {
	mu      sync.Mutex
	clients []domain.Client
	pending *Pending
	now     func() time.Time
}

// NewBook returns an empty book.
func NewBook() *Book {
	return &Book{now: time.Now}
}

// Add validates c, fills defaults and appends it. The stored copy is returned.
func (b *Book) Add(c domain.Client) (domain.Client, error) {
	if err := c.Validate(); err != nil {
		return domain.Client{}, err
	}
	if c.Status != "" {
		status, err := domain.ParseClientStatus(string(c.Status))
		if err != nil {
			return domain.Client{}, err
		}
		c.Status = status
	}
	c = c.WithDefaults()
	if c.ID == "" {
		c.ID = uuid.NewString()
	}
	if strings.TrimSpace(c.CreatedDate) == "" {
		c.CreatedDate = b.now().Format("2006-01-02")
	}

	b.mu.Lock()
	defer b.mu.Unlock()
	b.clients = append(b.clients, c)
	return c, nil
}

// Len returns the number of clients.
func (b *Book) Len() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return len(b.clients)
}

// List returns a copy of the clients with their committed statuses.
func (b *Book) List() []domain.Client {
	b.mu.Lock()
	defer b.mu.Unlock()
	return append([]domain.Client(nil), b.clients...)
}

// Get returns the client at index.
func (b *Book) Get(index int) (domain.Client, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	if index < 0 || index >= len(b.clients) {
		return domain.Client{}, fmt.Errorf("%w: %d", ErrIndexOutOfRange, index)
	}
	return b.clients[index], nil
}

// Stage holds a new status for the client at index until Confirm or Cancel.
// It replaces any earlier staged change. Staging the current status clears
// the pending change.
func (b *Book) Stage(index int, status domain.ClientStatus) error {
	parsed, err := domain.ParseClientStatus(string(status))
	if err != nil {
		return err
	}

	b.mu.Lock()
	defer b.mu.Unlock()
	if index < 0 || index >= len(b.clients) {
		return fmt.Errorf("%w: %d", ErrIndexOutOfRange, index)
	}
	if b.clients[index].Status == parsed {
		b.pending = nil
		return nil
	}
	b.pending = &Pending{Index: index, Status: parsed}
	return nil
}

// Pending returns the staged change, if any.
func (b *Book) Pending() (Pending, bool) {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.pending == nil {
		return Pending{}, false
	}
	return *b.pending, true
}

// Confirm commits the staged change and returns the updated client.
func (b *Book) Confirm() (domain.Client, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.pending == nil {
		return domain.Client{}, ErrNothingStaged
	}
	p := *b.pending
	b.pending = nil
	b.clients[p.Index].Status = p.Status
	return b.clients[p.Index], nil
}

// Cancel discards the staged change.
func (b *Book) Cancel() {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.pending = nil
}

// Displayed is the status to show for the row at index: the staged value
// while a change to that row is pending, otherwise the committed one.
func (b *Book) Displayed(index int) domain.ClientStatus {
	b.mu.Lock()
	defer b.mu.Unlock()
	if index < 0 || index >= len(b.clients) {
		return ""
	}
	if b.pending != nil && b.pending.Index == index {
		return b.pending.Status
	}
	return b.clients[index].Status
}

// Search returns the indexes of clients whose customer id, company name or
// customer name contains query, ignoring case.
func (b *Book) Search(query string) []int {
	q := strings.ToLower(strings.TrimSpace(query))
	b.mu.Lock()
	defer b.mu.Unlock()
	out := make([]int, 0, len(b.clients))
	for i, c := range b.clients {
		if q == "" ||
			strings.Contains(strings.ToLower(c.CustomerID), q) ||
			strings.Contains(strings.ToLower(c.CompanyName), q) ||
			strings.Contains(strings.ToLower(c.CustomerName), q) {
			out = append(out, i)
		}
	}
	return out
}

// StatusCounts counts clients per committed status.
func (b *Book) StatusCounts() map[domain.ClientStatus]int {
	b.mu.Lock()
	defer b.mu.Unlock()
	counts := make(map[domain.ClientStatus]int, len(domain.ClientStatuses))
	for _, c := range b.clients {
		counts[c.Status]++
	}
	return counts
}
