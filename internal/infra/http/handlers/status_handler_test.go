package handlers_test

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/maisonsia/bd-crm/internal/entity"
	"github.com/maisonsia/bd-crm/internal/infra/http/handlers"
	"github.com/maisonsia/bd-crm/internal/infra/queue"
	"github.com/maisonsia/bd-crm/internal/usecase"
)

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

type MockQueueProducer struct {
	mock.Mock
}

func (m *MockQueueProducer) PublishNotification(ctx context.Context, task queue.NotificationTask) error {
	args := m.Called(ctx, task)
	return args.Error(0)
}

func statusRequest(t *testing.T, leadID string, body interface{}) *http.Request {
	t.Helper()

	var buf bytes.Buffer
	if s, ok := body.(string); ok {
		buf.WriteString(s)
	} else {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}

	req := httptest.NewRequest(http.MethodPost, "/leads/"+leadID+"/status", &buf)
	rctx := chi.NewRouteContext()
	rctx.URLParams.Add("leadID", leadID)
	return req.WithContext(context.WithValue(req.Context(), chi.RouteCtxKey, rctx))
}

func TestStatusHandlerSchedulesFollowUps(t *testing.T) {
	leads := new(MockLeadRepository)
	producer := new(MockQueueProducer)

	lead := &entity.Lead{LeadID: "AB12CD34", BDEmail: "naved@example.com"}
	leads.On("FindByLeadID", mock.Anything, "AB12CD34").Return(lead, nil)
	leads.On("Update", mock.Anything, lead).Return(nil)

	uc := usecase.NewUpdateMeetingStatusUseCase(leads, producer)
	handler := handlers.NewStatusHandler(uc)

	req := statusRequest(t, "AB12CD34", usecase.UpdateMeetingStatusInput{
		EmailCatalogue:       true,
		EmailCatalogueRemark: "wants catalogue",
	})
	rec := httptest.NewRecorder()
	handler.Handle(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)

	var output usecase.UpdateMeetingStatusOutput
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&output))
	assert.Equal(t, "AB12CD34", output.LeadID)
	require.Len(t, output.Scheduled, 2)
	assert.Equal(t, entity.FollowUpCatalogueFirst, output.Scheduled[0].Category)
	assert.Equal(t, entity.FollowUpCatalogueSecond, output.Scheduled[1].Category)
	producer.AssertNotCalled(t, "PublishNotification", mock.Anything, mock.Anything)
}

func TestStatusHandlerUnknownLeadReturns404(t *testing.T) {
	leads := new(MockLeadRepository)
	leads.On("FindByLeadID", mock.Anything, "MISSING1").Return(nil, entity.ErrLeadNotFound)

	uc := usecase.NewUpdateMeetingStatusUseCase(leads, new(MockQueueProducer))
	handler := handlers.NewStatusHandler(uc)

	rec := httptest.NewRecorder()
	handler.Handle(rec, statusRequest(t, "MISSING1", usecase.UpdateMeetingStatusInput{RequireLetter: true}))

	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestStatusHandlerRejectsInvalidJSON(t *testing.T) {
	uc := usecase.NewUpdateMeetingStatusUseCase(new(MockLeadRepository), new(MockQueueProducer))
	handler := handlers.NewStatusHandler(uc)

	rec := httptest.NewRecorder()
	handler.Handle(rec, statusRequest(t, "AB12CD34", "{not json"))

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}
