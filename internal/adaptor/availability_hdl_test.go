package adaptor

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"facility-booking/internal/dto/response"
	"facility-booking/internal/usecase"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"
)

// withURLParam injects a chi route parameter without a full router.
func withURLParam(r *http.Request, key, value string) *http.Request {
	routeCtx := chi.NewRouteContext()
	routeCtx.URLParams.Add(key, value)
	return r.WithContext(context.WithValue(r.Context(), chi.RouteCtxKey, routeCtx))
}

type stubAvailabilityService struct {
	fn func(ctx context.Context, facilityID, date string) (*response.AvailabilityResponse, error)
}

func (s *stubAvailabilityService) GetAvailability(ctx context.Context, facilityID, date string) (*response.AvailabilityResponse, error) {
	return s.fn(ctx, facilityID, date)
}

func TestGetAvailabilityHandler(t *testing.T) {
	facilityID := uuid.New().String()
	service := &stubAvailabilityService{
		fn: func(_ context.Context, gotID, gotDate string) (*response.AvailabilityResponse, error) {
			assert.Equal(t, facilityID, gotID)
			assert.Equal(t, "2026-09-15", gotDate)
			return &response.AvailabilityResponse{
				FacilityID: gotID,
				Date:       gotDate,
				FreeSlots: []response.FreeSlotResponse{
					{StartTime: "6 AM", EndTime: "7 AM", Slot: "6 AM - 7 AM"},
				},
				BookedSlots: []response.BookedSlotResponse{},
			}, nil
		},
	}
	handler := NewAvailabilityHandler(service, zap.NewNop())

	req := httptest.NewRequest(http.MethodGet, "/api/facilities/"+facilityID+"/availability?date=2026-09-15", nil)
	rec := httptest.NewRecorder()
	handler.GetAvailability(rec, withURLParam(req, "id", facilityID))

	assert.Equal(t, http.StatusOK, rec.Code)
	envelope := decodeEnvelope(t, rec)
	assert.True(t, envelope.Status)

	data := envelope.Data.(map[string]any)
	assert.Equal(t, facilityID, data["facility_id"])
	assert.Len(t, data["free_slots"], 1)
}

func TestGetAvailabilityHandlerMissingDate(t *testing.T) {
	handler := NewAvailabilityHandler(&stubAvailabilityService{}, zap.NewNop())

	facilityID := uuid.New().String()
	req := httptest.NewRequest(http.MethodGet, "/api/facilities/"+facilityID+"/availability", nil)
	rec := httptest.NewRecorder()
	handler.GetAvailability(rec, withURLParam(req, "id", facilityID))

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestGetAvailabilityHandlerUnknownFacility(t *testing.T) {
	service := &stubAvailabilityService{
		fn: func(_ context.Context, facilityID, _ string) (*response.AvailabilityResponse, error) {
			return nil, fmt.Errorf("%w: facility %s", usecase.ErrNotFound, facilityID)
		},
	}
	handler := NewAvailabilityHandler(service, zap.NewNop())

	facilityID := uuid.New().String()
	req := httptest.NewRequest(http.MethodGet, "/api/facilities/"+facilityID+"/availability?date=2026-09-15", nil)
	rec := httptest.NewRecorder()
	handler.GetAvailability(rec, withURLParam(req, "id", facilityID))

	assert.Equal(t, http.StatusNotFound, rec.Code)
}
