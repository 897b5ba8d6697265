package services_test

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/comitanigiacomo/kanso-habits/internal/core/domain"
)

type MockHabitRepo struct {
	mock.Mock
}

func (m *MockHabitRepo) Create(ctx context.Context, habit *domain.Habit) error {
	return m.Called(ctx, habit).Error(0)
}

func (m *MockHabitRepo) CreateBatch(ctx context.Context, habits []*domain.Habit) error {
	return m.Called(ctx, habits).Error(0)
}

func (m *MockHabitRepo) GetByID(ctx context.Context, id string) (*domain.Habit, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Habit), args.Error(1)
}

func (m *MockHabitRepo) ListByUserID(ctx context.Context, userID string) ([]*domain.Habit, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*domain.Habit), args.Error(1)
}

func (m *MockHabitRepo) CountByUserID(ctx context.Context, userID string) (int, error) {
	args := m.Called(ctx, userID)
	return args.Int(0), args.Error(1)
}

func (m *MockHabitRepo) Update(ctx context.Context, habit *domain.Habit) error {
	return m.Called(ctx, habit).Error(0)
}

func (m *MockHabitRepo) Delete(ctx context.Context, id string, userID string) error {
	return m.Called(ctx, id, userID).Error(0)
}

type MockCompletionRepo struct {
	mock.Mock
}

func (m *MockCompletionRepo) ListByDateRange(ctx context.Context, userID string, from, to domain.Date) ([]*domain.Completion, error) {
	args := m.Called(ctx, userID, from, to)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*domain.Completion), args.Error(1)
}

func (m *MockCompletionRepo) ListDatesByHabit(ctx context.Context, userID, habitID string) ([]domain.Date, error) {
	args := m.Called(ctx, userID, habitID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Date), args.Error(1)
}

func (m *MockCompletionRepo) Upsert(ctx context.Context, completion *domain.Completion) error {
	return m.Called(ctx, completion).Error(0)
}

func (m *MockCompletionRepo) Delete(ctx context.Context, userID, habitID string, date domain.Date) error {
	return m.Called(ctx, userID, habitID, date).Error(0)
}

func (m *MockCompletionRepo) DeleteAllByHabit(ctx context.Context, userID, habitID string) error {
	return m.Called(ctx, userID, habitID).Error(0)
}

type MockStreakRepo struct {
	mock.Mock
}

func (m *MockStreakRepo) Upsert(ctx context.Context, streak *domain.Streak) error {
	return m.Called(ctx, streak).Error(0)
}

func (m *MockStreakRepo) GetByHabitID(ctx context.Context, userID, habitID string) (*domain.Streak, error) {
	args := m.Called(ctx, userID, habitID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Streak), args.Error(1)
}

func (m *MockStreakRepo) ListByUserID(ctx context.Context, userID string) ([]*domain.Streak, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*domain.Streak), args.Error(1)
}

type MockSubscriptionRepo struct {
	mock.Mock
}

func (m *MockSubscriptionRepo) GetByUserID(ctx context.Context, userID string) (*domain.Subscription, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Subscription), args.Error(1)
}

func (m *MockSubscriptionRepo) Create(ctx context.Context, sub *domain.Subscription) error {
	return m.Called(ctx, sub).Error(0)
}

type MockLoginStreakRepo struct {
	mock.Mock
}

func (m *MockLoginStreakRepo) GetByUserID(ctx context.Context, userID string) (*domain.LoginStreak, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.LoginStreak), args.Error(1)
}

func (m *MockLoginStreakRepo) Save(ctx context.Context, streak *domain.LoginStreak) error {
	return m.Called(ctx, streak).Error(0)
}
