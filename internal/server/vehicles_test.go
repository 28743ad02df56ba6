package server

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/labstack/echo/v4"

	"github.com/dreamgarage/dreamcar/internal/catalog"
	"github.com/dreamgarage/dreamcar/models"
)

const sampleCSV = `full_model,base_model,category,mpg_combined,seating,msrp,description
Camry XLE,Camry,Car,32,5,28000,Comfortable midsize sedan
Highlander,Highlander,SUV,24,8,42000,Three-row family SUV
`

func testStore(t *testing.T) *catalog.Store {
	t.Helper()
	path := filepath.Join(t.TempDir(), "vehicles.csv")
	if err := os.WriteFile(path, []byte(sampleCSV), 0o644); err != nil {
		t.Fatalf("writing dataset: %v", err)
	}
	return catalog.New(path)
}

func TestVehiclesList(t *testing.T) {
	e := echo.New()
	h := &VehiclesHandler{Catalog: testStore(t)}

	req := httptest.NewRequest(http.MethodGet, "/vehicles", nil)
	rec := httptest.NewRecorder()
	ctx := e.NewContext(req, rec)

	if err := h.list(ctx); err != nil {
		t.Fatalf("list: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	var vehicles []models.Vehicle
	if err := json.Unmarshal(rec.Body.Bytes(), &vehicles); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if len(vehicles) != 2 {
		t.Fatalf("expected 2 vehicles, got %d", len(vehicles))
	}
}

func TestVehicleGetCaseInsensitive(t *testing.T) {
	e := echo.New()
	h := &VehiclesHandler{Catalog: testStore(t)}

	req := httptest.NewRequest(http.MethodGet, "/vehicle/camry%20xle", nil)
	rec := httptest.NewRecorder()
	ctx := e.NewContext(req, rec)
	ctx.SetParamNames("full_model")
	ctx.SetParamValues("camry xle")

	if err := h.get(ctx); err != nil {
		t.Fatalf("get: %v", err)
	}
	var v models.Vehicle
	if err := json.Unmarshal(rec.Body.Bytes(), &v); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if v.FullModel != "Camry XLE" {
		t.Fatalf("unexpected vehicle: %+v", v)
	}
}

func TestVehicleGetNotFoundSentinel(t *testing.T) {
	e := echo.New()
	h := &VehiclesHandler{Catalog: testStore(t)}

	req := httptest.NewRequest(http.MethodGet, "/vehicle/Cybertruck", nil)
	rec := httptest.NewRecorder()
	ctx := e.NewContext(req, rec)
	ctx.SetParamNames("full_model")
	ctx.SetParamValues("Cybertruck")

	if err := h.get(ctx); err != nil {
		t.Fatalf("get: %v", err)
	}
	// Sentinel object, not an HTTP error status.
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200 sentinel, got %d", rec.Code)
	}
	var body map[string]string
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if body["error"] == "" {
		t.Fatalf("expected error sentinel in body, got %v", body)
	}
}

func TestVehiclesListDatasetUnavailable(t *testing.T) {
	e := echo.New()
	h := &VehiclesHandler{Catalog: catalog.New(filepath.Join(t.TempDir(), "missing.csv"))}

	req := httptest.NewRequest(http.MethodGet, "/vehicles", nil)
	rec := httptest.NewRecorder()
	ctx := e.NewContext(req, rec)

	err := h.list(ctx)
	if err == nil {
		t.Fatalf("expected hard error for unreadable dataset")
	}
	httpErr, ok := err.(*echo.HTTPError)
	if !ok || httpErr.Code != http.StatusInternalServerError {
		t.Fatalf("expected 500, got %#v", err)
	}
}
