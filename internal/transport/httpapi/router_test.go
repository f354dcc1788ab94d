package httpapi

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"

	"clinicbook/backend/internal/domain"
	"clinicbook/backend/internal/ratelimit"
	"clinicbook/backend/internal/service/bookings"
	"clinicbook/backend/internal/service/careers"
	"clinicbook/backend/internal/store/memory"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func newTestRouter(opts Options) *gin.Engine {
	log := discardLogger()
	b := bookings.NewService(memory.NewBookingRepo(), domain.DefaultProviders(), nil, log)
	c := careers.NewService(memory.NewApplicationRepo(), domain.DefaultPostings(), nil, log)
	return NewRouter(b, c, opts, log)
}

func do(t *testing.T, h http.Handler, method, path, body string, headers ...string) *httptest.ResponseRecorder {
	t.Helper()
	var r io.Reader
	if body != "" {
		r = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, path, r)
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	for i := 0; i+1 < len(headers); i += 2 {
		req.Header.Set(headers[i], headers[i+1])
	}
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func decode(t *testing.T, rec *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var out map[string]any
	if err := json.Unmarshal(rec.Body.Bytes(), &out); err != nil {
		t.Fatalf("decode %q: %v", rec.Body.String(), err)
	}
	return out
}

const bookingBody = `{"patient_name":"Jane Doe","patient_phone":"0700000000","provider_id":"mike","service":"General Consultation","date":"2025-03-01","time_slot":"09:00"}`

func TestHealthz(t *testing.T) {
	rec := do(t, newTestRouter(Options{}), http.MethodGet, "/healthz", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want %d", rec.Code, http.StatusOK)
	}
}

func TestBookingFlow(t *testing.T) {
	r := newTestRouter(Options{})

	for i := 0; i < 5; i++ {
		rec := do(t, r, http.MethodPost, "/api/v1/bookings", bookingBody)
		if rec.Code != http.StatusCreated {
			t.Fatalf("booking %d status = %d, body %s", i+1, rec.Code, rec.Body.String())
		}
	}

	rec := do(t, r, http.MethodPost, "/api/v1/bookings", bookingBody)
	if rec.Code != http.StatusConflict {
		t.Fatalf("sixth booking status = %d, want %d", rec.Code, http.StatusConflict)
	}

	rec = do(t, r, http.MethodGet, "/api/v1/providers/mike/availability?date=2025-03-01", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("availability status = %d", rec.Code)
	}
	got := decode(t, rec)
	if got["available"] != false || got["remaining"] != float64(0) {
		t.Fatalf("availability = %v", got)
	}
}

func TestCreateBooking_ErrorStatuses(t *testing.T) {
	r := newTestRouter(Options{})

	cases := []struct {
		name string
		body string
		want int
	}{
		{"malformed json", `{"patient_name":`, http.StatusBadRequest},
		{"missing phone", `{"patient_name":"Jane","provider_id":"mike","service":"General Consultation","date":"2025-03-01","time_slot":"09:00"}`, http.StatusBadRequest},
		{"unknown provider", strings.Replace(bookingBody, `"mike"`, `"nobody"`, 1), http.StatusNotFound},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			rec := do(t, r, http.MethodPost, "/api/v1/bookings", tc.body)
			if rec.Code != tc.want {
				t.Fatalf("status = %d, want %d (body %s)", rec.Code, tc.want, rec.Body.String())
			}
		})
	}
}

func TestCreateBooking_ValidationMessage(t *testing.T) {
	rec := do(t, newTestRouter(Options{}), http.MethodPost, "/api/v1/bookings",
		`{"patient_name":"Jane","provider_id":"mike","service":"General Consultation","date":"2025-03-01","time_slot":"09:00"}`)
	if got := decode(t, rec)["error"]; got != "patient_phone is required" {
		t.Fatalf("error = %v, want %q", got, "patient_phone is required")
	}
}

func TestCreateBooking_IdempotencyHeader(t *testing.T) {
	r := newTestRouter(Options{})

	first := decode(t, do(t, r, http.MethodPost, "/api/v1/bookings", bookingBody, "Idempotency-Key", "abc"))
	second := decode(t, do(t, r, http.MethodPost, "/api/v1/bookings", bookingBody, "Idempotency-Key", "abc"))

	id1 := first["appointment"].(map[string]any)["id"]
	id2 := second["appointment"].(map[string]any)["id"]
	if id1 != id2 {
		t.Fatalf("replayed id = %v, want %v", id2, id1)
	}
}

func TestAvailability_BadRequests(t *testing.T) {
	r := newTestRouter(Options{})

	if rec := do(t, r, http.MethodGet, "/api/v1/providers/mike/availability?date=soon", ""); rec.Code != http.StatusBadRequest {
		t.Fatalf("bad date status = %d, want %d", rec.Code, http.StatusBadRequest)
	}
	if rec := do(t, r, http.MethodGet, "/api/v1/providers/nobody/availability?date=2025-03-01", ""); rec.Code != http.StatusNotFound {
		t.Fatalf("unknown provider status = %d, want %d", rec.Code, http.StatusNotFound)
	}
}

func TestCatalogEndpoints(t *testing.T) {
	r := newTestRouter(Options{})

	providers := decode(t, do(t, r, http.MethodGet, "/api/v1/providers", ""))["providers"].([]any)
	if len(providers) != 5 {
		t.Fatalf("providers = %d, want 5", len(providers))
	}
	services := decode(t, do(t, r, http.MethodGet, "/api/v1/services", ""))["services"].([]any)
	if len(services) != 10 {
		t.Fatalf("services = %d, want 10", len(services))
	}
	slots := decode(t, do(t, r, http.MethodGet, "/api/v1/time-slots", ""))["time_slots"].([]any)
	if len(slots) != 17 {
		t.Fatalf("time slots = %d, want 17", len(slots))
	}
	jobs := decode(t, do(t, r, http.MethodGet, "/api/v1/jobs", ""))["jobs"].([]any)
	if len(jobs) != 5 {
		t.Fatalf("jobs = %d, want 5", len(jobs))
	}
	if rec := do(t, r, http.MethodGet, "/api/v1/jobs/registered-nurse", ""); rec.Code != http.StatusOK {
		t.Fatalf("job status = %d", rec.Code)
	}
	if rec := do(t, r, http.MethodGet, "/api/v1/jobs/astronaut", ""); rec.Code != http.StatusNotFound {
		t.Fatalf("unknown job status = %d, want %d", rec.Code, http.StatusNotFound)
	}
}

func TestApplicationFlow(t *testing.T) {
	r := newTestRouter(Options{})

	rec := do(t, r, http.MethodPost, "/api/v1/applications",
		`{"job_id":"general-practitioner","name":"Jane Doe","email":"jane@example.com","phone":"0700000000","resume":"https://example.com/cv.pdf","cover_letter":""}`)
	if rec.Code != http.StatusCreated {
		t.Fatalf("submit status = %d, body %s", rec.Code, rec.Body.String())
	}
	id := decode(t, rec)["application"].(map[string]any)["id"].(string)

	rec = do(t, r, http.MethodGet, "/api/v1/applications/"+id, "")
	if rec.Code != http.StatusOK {
		t.Fatalf("get status = %d", rec.Code)
	}
	app := decode(t, rec)["application"].(map[string]any)
	if app["status"] != "pending" || app["name"] != "Jane Doe" {
		t.Fatalf("application = %v", app)
	}

	if rec := do(t, r, http.MethodGet, "/api/v1/applications/not-an-id", ""); rec.Code != http.StatusNotFound {
		t.Fatalf("unknown application status = %d, want %d", rec.Code, http.StatusNotFound)
	}

	rec = do(t, r, http.MethodGet, "/api/v1/jobs/general-practitioner/applications", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("list status = %d", rec.Code)
	}
	if apps := decode(t, rec)["applications"].([]any); len(apps) != 1 {
		t.Fatalf("applications = %v", apps)
	}
	if rec := do(t, r, http.MethodGet, "/api/v1/jobs/astronaut/applications", ""); rec.Code != http.StatusNotFound {
		t.Fatalf("unknown job applications status = %d, want %d", rec.Code, http.StatusNotFound)
	}
}

type closedPostingCareers struct {
	CareersService
}

func (closedPostingCareers) SubmitApplication(ctx context.Context, in careers.SubmitInput) (domain.JobApplication, error) {
	return domain.JobApplication{}, careers.ErrPostingClosed
}

func TestSubmitApplication_ClosedPostingConflict(t *testing.T) {
	log := discardLogger()
	b := bookings.NewService(memory.NewBookingRepo(), domain.DefaultProviders(), nil, log)
	r := NewRouter(b, closedPostingCareers{}, Options{}, log)

	rec := do(t, r, http.MethodPost, "/api/v1/applications", `{"job_id":"x"}`)
	if rec.Code != http.StatusConflict {
		t.Fatalf("status = %d, want %d", rec.Code, http.StatusConflict)
	}
}

type failingBookings struct {
	BookingService
}

func (failingBookings) CreateBooking(ctx context.Context, in bookings.CreateBookingInput) (domain.Appointment, error) {
	return domain.Appointment{}, errors.New("db down")
}

func TestCreateBooking_InternalError(t *testing.T) {
	log := discardLogger()
	c := careers.NewService(memory.NewApplicationRepo(), domain.DefaultPostings(), nil, log)
	r := NewRouter(failingBookings{}, c, Options{}, log)

	rec := do(t, r, http.MethodPost, "/api/v1/bookings", bookingBody)
	if rec.Code != http.StatusInternalServerError {
		t.Fatalf("status = %d, want %d", rec.Code, http.StatusInternalServerError)
	}
	if got := decode(t, rec)["error"]; got != "internal error" {
		t.Fatalf("error = %v", got)
	}
}

func TestRateLimitOnCreateEndpoints(t *testing.T) {
	r := newTestRouter(Options{Limiter: ratelimit.New(0.001, 1)})

	if rec := do(t, r, http.MethodPost, "/api/v1/bookings", bookingBody); rec.Code != http.StatusCreated {
		t.Fatalf("first status = %d", rec.Code)
	}
	if rec := do(t, r, http.MethodPost, "/api/v1/bookings", bookingBody); rec.Code != http.StatusTooManyRequests {
		t.Fatalf("second status = %d, want %d", rec.Code, http.StatusTooManyRequests)
	}
	if rec := do(t, r, http.MethodGet, "/api/v1/providers", ""); rec.Code != http.StatusOK {
		t.Fatalf("reads must not be limited, status = %d", rec.Code)
	}
}

func TestCORSAllowsConfiguredOrigin(t *testing.T) {
	r := newTestRouter(Options{CORSOrigins: []string{"https://clinic.example"}})

	rec := do(t, r, http.MethodGet, "/api/v1/providers", "", "Origin", "https://clinic.example")
	if got := rec.Header().Get("Access-Control-Allow-Origin"); got != "https://clinic.example" {
		t.Fatalf("allow-origin = %q", got)
	}
}
