package http

import (
	"bytes"
	"encoding/json"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"khata/internal/dataset/memory"
	"khata/internal/services"
)

const testCSV = `Date,Day,Time,Unique Keyword,Get/Spend Type,Money,Description,Money Type,Place,Remaining Money in Cash,Remaining Money in Online,Whole Total
05-01-2025,Sunday,11:00 PM,elluminati,0,5000.00,Stipend,1,home,400.00,5900.38,6300.38
06-01-2025,Monday,9:15 AM,snacks,1,40.00,Tea,0,canteen,360.00,5900.38,6260.38
`

func newTestServer(t *testing.T) *Server {
	t.Helper()
	svc := services.NewDashboardService(memory.New(), nil)
	srv := NewServer(":0", svc, 4<<20, 16, time.Minute)
	t.Cleanup(func() {
		srv.rateLimiter.stop()
		srv.cacheManager.Stop()
	})
	return srv
}

func multipartUpload(t *testing.T, content string) *http.Request {
	t.Helper()
	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	fw, err := mw.CreateFormFile("file", "transactions.csv")
	if err != nil {
		t.Fatalf("create form file: %v", err)
	}
	if _, err := fw.Write([]byte(content)); err != nil {
		t.Fatalf("write form file: %v", err)
	}
	mw.Close()

	req := httptest.NewRequest(http.MethodPost, "/upload", &buf)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	return req
}

func TestHealthEndpoints(t *testing.T) {
	srv := newTestServer(t)
	for _, path := range []string{"/healthz", "/readyz"} {
		rr := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, path, nil)
		srv.Server.Handler.ServeHTTP(rr, req)
		if rr.Code != http.StatusOK {
			t.Fatalf("%s status = %d, want 200", path, rr.Code)
		}
	}
}

func TestIndexRenders(t *testing.T) {
	srv := newTestServer(t)

	rr := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	srv.Server.Handler.ServeHTTP(rr, req)
	if rr.Code != http.StatusOK {
		t.Fatalf("index status = %d, want 200", rr.Code)
	}
	if !strings.Contains(rr.Body.String(), "upload-form") {
		t.Fatal("index body missing upload form")
	}
}

func TestUploadThenDashboard(t *testing.T) {
	srv := newTestServer(t)

	rr := httptest.NewRecorder()
	srv.Server.Handler.ServeHTTP(rr, multipartUpload(t, testCSV))
	if rr.Code != http.StatusOK {
		t.Fatalf("upload status = %d, body = %s", rr.Code, rr.Body.String())
	}
	if !strings.Contains(rr.Body.String(), "Loaded 2 transactions") {
		t.Fatalf("upload body = %s, want loaded count", rr.Body.String())
	}
	if !strings.Contains(rr.Header().Get("HX-Trigger"), "dataset:uploaded") {
		t.Fatalf("HX-Trigger = %q, want dataset:uploaded", rr.Header().Get("HX-Trigger"))
	}

	rr = httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/dashboard", nil)
	srv.Server.Handler.ServeHTTP(rr, req)
	if rr.Code != http.StatusOK {
		t.Fatalf("dashboard status = %d", rr.Code)
	}

	var dash dashboardDTO
	if err := json.Unmarshal(rr.Body.Bytes(), &dash); err != nil {
		t.Fatalf("decode dashboard: %v", err)
	}
	if dash.Empty {
		t.Fatal("dashboard reported empty after upload")
	}
	if dash.Balance == nil || dash.Balance.Cash != 360 {
		t.Fatalf("balance = %+v, want cash 360", dash.Balance)
	}
	if len(dash.Monthly) != 12 {
		t.Fatalf("monthly entries = %d, want 12", len(dash.Monthly))
	}
}

func TestUploadRejectsBadFormat(t *testing.T) {
	srv := newTestServer(t)

	rr := httptest.NewRecorder()
	srv.Server.Handler.ServeHTTP(rr, multipartUpload(t, "totally,unrelated\ndata,here\n"))
	if rr.Code != http.StatusUnprocessableEntity {
		t.Fatalf("upload status = %d, want 422", rr.Code)
	}
	if !strings.Contains(rr.Body.String(), "error") {
		t.Fatalf("upload body = %s, want error partial", rr.Body.String())
	}
}

func TestDashboardEmptyBeforeUpload(t *testing.T) {
	srv := newTestServer(t)

	rr := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/dashboard", nil)
	srv.Server.Handler.ServeHTTP(rr, req)
	if rr.Code != http.StatusOK {
		t.Fatalf("dashboard status = %d", rr.Code)
	}

	var dash dashboardDTO
	if err := json.Unmarshal(rr.Body.Bytes(), &dash); err != nil {
		t.Fatalf("decode dashboard: %v", err)
	}
	if !dash.Empty {
		t.Fatal("dashboard should be empty before any upload")
	}
}

func TestDashboardNoMatchesNotice(t *testing.T) {
	srv := newTestServer(t)

	rr := httptest.NewRecorder()
	srv.Server.Handler.ServeHTTP(rr, multipartUpload(t, testCSV))
	if rr.Code != http.StatusOK {
		t.Fatalf("upload status = %d", rr.Code)
	}

	rr = httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/dashboard?keyword=nothing", nil)
	srv.Server.Handler.ServeHTTP(rr, req)
	if rr.Code != http.StatusOK {
		t.Fatalf("dashboard status = %d", rr.Code)
	}

	var dash dashboardDTO
	if err := json.Unmarshal(rr.Body.Bytes(), &dash); err != nil {
		t.Fatalf("decode dashboard: %v", err)
	}
	if !dash.Empty || dash.Notice == "" {
		t.Fatalf("dashboard = %+v, want empty result with notice", dash)
	}
}

func TestDashboardBadQuery(t *testing.T) {
	srv := newTestServer(t)

	rr := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/dashboard?start=garbage", nil)
	srv.Server.Handler.ServeHTTP(rr, req)
	if rr.Code != http.StatusBadRequest {
		t.Fatalf("dashboard status = %d, want 400", rr.Code)
	}
}

func TestFiltersEndpoint(t *testing.T) {
	srv := newTestServer(t)

	rr := httptest.NewRecorder()
	srv.Server.Handler.ServeHTTP(rr, multipartUpload(t, testCSV))
	if rr.Code != http.StatusOK {
		t.Fatalf("upload status = %d", rr.Code)
	}

	rr = httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/filters", nil)
	srv.Server.Handler.ServeHTTP(rr, req)
	if rr.Code != http.StatusOK {
		t.Fatalf("filters status = %d", rr.Code)
	}

	var dto filtersDTO
	if err := json.Unmarshal(rr.Body.Bytes(), &dto); err != nil {
		t.Fatalf("decode filters: %v", err)
	}
	if len(dto.Keywords) == 0 {
		t.Fatal("filters returned no keywords after upload")
	}
	if len(dto.MoneyTypes) != 2 {
		t.Fatalf("money types = %v, want Cash and Online", dto.MoneyTypes)
	}
}

func TestSampleCSVDownload(t *testing.T) {
	srv := newTestServer(t)

	rr := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/sample.csv", nil)
	srv.Server.Handler.ServeHTTP(rr, req)
	if rr.Code != http.StatusOK {
		t.Fatalf("sample status = %d", rr.Code)
	}
	if ct := rr.Header().Get("Content-Type"); !strings.HasPrefix(ct, "text/csv") {
		t.Fatalf("Content-Type = %q, want text/csv", ct)
	}
	if !strings.Contains(rr.Body.String(), "Unique Keyword") {
		t.Fatal("sample body missing canonical header")
	}
}

func TestUploadMethodNotAllowed(t *testing.T) {
	srv := newTestServer(t)

	rr := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/upload", nil)
	srv.Server.Handler.ServeHTTP(rr, req)
	if rr.Code != http.StatusMethodNotAllowed {
		t.Fatalf("upload GET status = %d, want 405", rr.Code)
	}
}
