// Package form holds the per-chat state machine for the multi-step
// add-subscription flow. Field input is accumulated in memory only; the sole
// durable side effect of a completed flow is the caller's single
// CreateSubscription call.
package form

import (
	"errors"
	"sync"
	"time"

	"github.com/akrram0/Subscription-managerr-bot/internal/domain"
)

// ErrNoConversation is returned when an input arrives for a chat that has no
// conversation in the expected state, e.g. after a restart or TTL expiry.
var ErrNoConversation = errors.New("no active conversation")

// State is the position within the add flow. Steps are strictly ordered; a
// step is entered only after the previous one validated.
type State int

const (
	StateIdle State = iota
	StateServiceName
	StateCost
	StateCurrency
	StateBillingCycle
	StatePaymentDate
)

type conversation struct {
	state     State
	draft     domain.Draft
	updatedAt time.Time
}

// Store keeps at most one in-flight conversation per chat. State is scoped by
// chat id, so different users can never interleave into one another's drafts.
type Store struct {
	mu   sync.Mutex
	conv map[int64]*conversation
	ttl  time.Duration
	now  func() time.Time
}

// NewStore creates a conversation store. Conversations idle longer than ttl
// are discarded on next access; ttl <= 0 disables the timeout.
func NewStore(ttl time.Duration) *Store {
	return &Store{
		conv: make(map[int64]*conversation),
		ttl:  ttl,
		now:  time.Now,
	}
}

// Begin starts a fresh conversation, implicitly abandoning any prior
// incomplete one for the same chat.
func (s *Store) Begin(chatID int64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.conv[chatID] = &conversation{state: StateServiceName, updatedAt: s.now()}
}

// State returns the chat's current position, pruning an expired conversation.
func (s *Store) State(chatID int64) State {
	s.mu.Lock()
	defer s.mu.Unlock()
	c := s.get(chatID)
	if c == nil {
		return StateIdle
	}
	return c.state
}

// Cancel discards the conversation unconditionally, from any state.
// It reports whether there was one to discard.
func (s *Store) Cancel(chatID int64) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.get(chatID) == nil {
		return false
	}
	delete(s.conv, chatID)
	return true
}

// Draft returns a copy of the accumulated fields for prompt rendering.
func (s *Store) Draft(chatID int64) (domain.Draft, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	c := s.get(chatID)
	if c == nil {
		return domain.Draft{}, false
	}
	return c.draft, true
}

// SetServiceName validates step 1 and advances to the cost step.
// A validation failure leaves the conversation where it is.
func (s *Store) SetServiceName(chatID int64, text string) error {
	return s.step(chatID, StateServiceName, StateCost, func(d *domain.Draft) error {
		name, err := domain.ValidateServiceName(text)
		if err != nil {
			return err
		}
		d.ServiceName = name
		return nil
	})
}

// SetCost validates step 2 and advances to the currency step.
func (s *Store) SetCost(chatID int64, text string) error {
	return s.step(chatID, StateCost, StateCurrency, func(d *domain.Draft) error {
		cost, err := domain.ParseCost(text)
		if err != nil {
			return err
		}
		d.Cost = cost
		return nil
	})
}

// SetCurrency validates step 3 (a selection, not free text) and advances to
// the billing-cycle step.
func (s *Store) SetCurrency(chatID int64, code string) error {
	return s.step(chatID, StateCurrency, StateBillingCycle, func(d *domain.Draft) error {
		if !domain.ValidCurrency(code) {
			return domain.ErrValidation
		}
		d.Currency = code
		return nil
	})
}

// SetBillingCycle validates step 4 and advances to the payment-date step.
func (s *Store) SetBillingCycle(chatID int64, raw string) error {
	return s.step(chatID, StateBillingCycle, StatePaymentDate, func(d *domain.Draft) error {
		cycle, err := domain.ParseBillingCycle(raw)
		if err != nil {
			return err
		}
		d.BillingCycle = cycle
		return nil
	})
}

// SetPaymentDate validates the final step. On success the completed draft is
// returned and the conversation is cleared; committing it is the caller's
// job. On validation failure the conversation stays at the date step.
func (s *Store) SetPaymentDate(chatID int64, text string) (domain.Draft, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	c := s.get(chatID)
	if c == nil || c.state != StatePaymentDate {
		return domain.Draft{}, ErrNoConversation
	}
	date, err := domain.ValidatePaymentDate(text, s.now())
	if err != nil {
		c.updatedAt = s.now()
		return domain.Draft{}, err
	}
	c.draft.NextPaymentDate = date
	done := c.draft
	delete(s.conv, chatID)
	return done, nil
}

// step runs one validated transition under the lock.
func (s *Store) step(chatID int64, from, to State, apply func(*domain.Draft) error) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	c := s.get(chatID)
	if c == nil || c.state != from {
		return ErrNoConversation
	}
	if err := apply(&c.draft); err != nil {
		c.updatedAt = s.now()
		return err
	}
	c.state = to
	c.updatedAt = s.now()
	return nil
}

// get returns the live conversation for chatID, expiring stale ones.
// Callers must hold s.mu.
func (s *Store) get(chatID int64) *conversation {
	c, ok := s.conv[chatID]
	if !ok {
		return nil
	}
	if s.ttl > 0 && s.now().Sub(c.updatedAt) > s.ttl {
		delete(s.conv, chatID)
		return nil
	}
	return c
}
