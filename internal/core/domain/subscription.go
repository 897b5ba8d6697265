package domain

import (
	"errors"
	"time"

	"github.com/google/uuid"
)

var (
	ErrSubscriptionNotFound = errors.New("subscription not found")
)

const (
	SubscriptionFree      = "free"
	SubscriptionActive    = "active"
	SubscriptionCancelled = "cancelled"
	SubscriptionExpired   = "expired"

	DefaultFreeHabitLimit = 3
)

// Subscription is written by the payment collaborator. This service only reads it,
// or creates the initial free row.
type Subscription struct {
	ID               string     `json:"id" db:"id"`
	UserID           string     `json:"user_id" db:"user_id"`
	Status           string     `json:"status" db:"status"`
	CurrentPeriodEnd *time.Time `json:"current_period_end,omitempty" db:"current_period_end"`
	CreatedAt        time.Time  `json:"created_at" db:"created_at"`
	UpdatedAt        time.Time  `json:"updated_at" db:"updated_at"`
}

func NewFreeSubscription(userID string) *Subscription {
	now := time.Now().UTC()
	return &Subscription{
		ID:        uuid.NewString(),
		UserID:    userID,
		Status:    SubscriptionFree,
		CreatedAt: now,
		UpdatedAt: now,
	}
}

func (s *Subscription) IsPro() bool {
	return s != nil && s.Status == SubscriptionActive
}

func (s *Subscription) Validate() error {
	switch s.Status {
	case SubscriptionFree, SubscriptionActive, SubscriptionCancelled, SubscriptionExpired:
		return nil
	default:
		return ErrMalformedRow
	}
}

// CanAddMoreHabits reports whether a user holding count habits may create another one.
func CanAddMoreHabits(isPro bool, count, freeLimit int) bool {
	return isPro || count < freeLimit
}
