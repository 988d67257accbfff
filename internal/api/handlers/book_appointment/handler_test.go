package book_appointment

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/mux"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-SalonService/internal/api/handlers"
	"github.com/m04kA/SMC-SalonService/internal/api/middleware"
	"github.com/m04kA/SMC-SalonService/internal/domain"
	bookAppointment "github.com/m04kA/SMC-SalonService/internal/usecase/book_appointment"
	"github.com/m04kA/SMC-SalonService/pkg/logger"
)

type fakeUseCase struct {
	got  *bookAppointment.Request
	resp *bookAppointment.Response
	err  error
}

func (f *fakeUseCase) Execute(_ context.Context, req *bookAppointment.Request) (*bookAppointment.Response, error) {
	f.got = req
	return f.resp, f.err
}

func newRouter(uc BookAppointmentUseCase) *mux.Router {
	r := mux.NewRouter()
	r.Handle("/api/v1/appointments", middleware.Auth(http.HandlerFunc(NewHandler(uc, logger.NewNop()).Handle))).Methods(http.MethodPost)
	return r
}

func post(t *testing.T, router http.Handler, userID, body string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, "/api/v1/appointments", strings.NewReader(body))
	if userID != "" {
		req.Header.Set(middleware.HeaderUserID, userID)
	}
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	return rec
}

const validBody = `{"stylistId":2,"date":"2026-10-19","startTime":"10:00","services":[{"serviceId":1}]}`

func TestHandle_Booked(t *testing.T) {
	uc := &fakeUseCase{resp: &bookAppointment.Response{
		Appointment: &domain.Appointment{
			ID: 10, CustomerID: 5, StylistID: 2, BookedByID: 5,
			Date:      time.Date(2026, 10, 19, 0, 0, 0, 0, time.UTC),
			StartTime: "10:00", EndTime: "10:30",
			Status: domain.StatusConfirmed,
			Segments: []domain.Segment{
				{ServiceID: 1, ServiceName: "Cut", DurationMinutes: 30, Price: decimal.RequireFromString("25")},
			},
		},
	}}

	rec := post(t, newRouter(uc), "5", validBody)
	require.Equal(t, http.StatusCreated, rec.Code)

	require.NotNil(t, uc.got)
	assert.Equal(t, int64(5), uc.got.CustomerID)
	assert.Equal(t, int64(5), uc.got.BookedByID)
	assert.Len(t, uc.got.Segments, 1)

	var body handlers.AppointmentResponse
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&body))
	assert.Equal(t, int64(10), body.ID)
	assert.Equal(t, "10:30", body.EndTime)
	assert.Equal(t, "25.00", body.Revenue)
}

func TestHandle_MissingUser(t *testing.T) {
	uc := &fakeUseCase{}
	rec := post(t, newRouter(uc), "", validBody)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Nil(t, uc.got)
}

func TestHandle_BadInput(t *testing.T) {
	uc := &fakeUseCase{}
	router := newRouter(uc)

	rec := post(t, router, "5", `{"stylistId":2,"date":"19.10.2026","startTime":"10:00","services":[{"serviceId":1}]}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = post(t, router, "5", `{"stylistId":2,"date":"2026-10-19","startTime":"25:00","services":[{"serviceId":1}]}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = post(t, router, "5", `{"unknown":true}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Nil(t, uc.got)
}

func TestHandle_Conflict(t *testing.T) {
	uc := &fakeUseCase{err: &domain.ConflictError{Resource: domain.EntityStylist, Window: "10:30-11:00"}}
	rec := post(t, newRouter(uc), "5", validBody)
	assert.Equal(t, http.StatusConflict, rec.Code)
}

func TestHandle_ValidationList(t *testing.T) {
	var list domain.ErrorList
	list.Add(&domain.PolicyError{Kind: domain.PolicyNotStylist}, &domain.PolicyError{Kind: domain.PolicyOutsideOpeningHours})
	uc := &fakeUseCase{err: list.Err()}

	rec := post(t, newRouter(uc), "5", validBody)
	require.Equal(t, http.StatusUnprocessableEntity, rec.Code)

	var body handlers.ErrorResponse
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&body))
	assert.Len(t, body.Details, 2)
}
