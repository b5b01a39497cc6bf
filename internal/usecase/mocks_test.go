package usecase_test

import (
	"context"
	"time"

	"github.com/stretchr/testify/mock"

	"github.com/maisonsia/bd-crm/internal/entity"
	"github.com/maisonsia/bd-crm/internal/infra/queue"
)

// MockLeadRepository
type MockLeadRepository struct {
	mock.Mock
}

func (m *MockLeadRepository) Create(ctx context.Context, lead *entity.Lead) error {
	args := m.Called(ctx, lead)
	return args.Error(0)
}

func (m *MockLeadRepository) FindByLeadID(ctx context.Context, leadID string) (*entity.Lead, error) {
	args := m.Called(ctx, leadID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.Lead), args.Error(1)
}

func (m *MockLeadRepository) Update(ctx context.Context, lead *entity.Lead) error {
	args := m.Called(ctx, lead)
	return args.Error(0)
}

func (m *MockLeadRepository) FindRecent(ctx context.Context, limit int) ([]*entity.Lead, error) {
	args := m.Called(ctx, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*entity.Lead), args.Error(1)
}

func (m *MockLeadRepository) FindUnassigned(ctx context.Context) ([]*entity.Lead, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*entity.Lead), args.Error(1)
}

func (m *MockLeadRepository) FindDueFollowUps(ctx context.Context, due time.Time) ([]*entity.Lead, error) {
	args := m.Called(ctx, due)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*entity.Lead), args.Error(1)
}

func (m *MockLeadRepository) Stats(ctx context.Context, asOf time.Time) (*entity.LeadStats, error) {
	args := m.Called(ctx, asOf)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.LeadStats), args.Error(1)
}

// MockFollowUpLogRepository
type MockFollowUpLogRepository struct {
	mock.Mock
}

func (m *MockFollowUpLogRepository) Create(ctx context.Context, log *entity.FollowUpLog) error {
	args := m.Called(ctx, log)
	return args.Error(0)
}

func (m *MockFollowUpLogRepository) Delete(ctx context.Context, id string) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockFollowUpLogRepository) FindByLeadID(ctx context.Context, leadID string) ([]*entity.FollowUpLog, error) {
	args := m.Called(ctx, leadID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*entity.FollowUpLog), args.Error(1)
}

// MockQueueProducer
type MockQueueProducer struct {
	mock.Mock
}

func (m *MockQueueProducer) PublishNotification(ctx context.Context, task queue.NotificationTask) error {
	args := m.Called(ctx, task)
	return args.Error(0)
}

// MockNotifier
type MockNotifier struct {
	mock.Mock
}

func (m *MockNotifier) SendFollowUp(lead *entity.Lead, category entity.FollowUpCategory) error {
	args := m.Called(lead, category)
	return args.Error(0)
}

func date(year int, month time.Month, day int) time.Time {
	return time.Date(year, month, day, 0, 0, 0, 0, time.UTC)
}

func datePtr(year int, month time.Month, day int) *time.Time {
	d := date(year, month, day)
	return &d
}
