package catalog

import (
	"reflect"
	"testing"

	"github.com/dreamgarage/dreamcar/models"
)

func f64(v float64) *float64 { return &v }
func i(v int) *int           { return &v }

func testVehicles() []models.Vehicle {
	return []models.Vehicle{
		{FullModel: "Camry XLE", BaseModel: "Camry", Category: "Car", MPGCombined: f64(32), Seating: i(5), MSRP: f64(28000), Description: "Comfortable midsize sedan"},
		{FullModel: "Highlander", BaseModel: "Highlander", Category: "SUV", MPGCombined: f64(24), Seating: i(8), MSRP: f64(42000), Description: "Three-row family SUV"},
		{FullModel: "GR Supra", BaseModel: "Supra", Category: "Car", MPGCombined: f64(25), Seating: i(2), MSRP: f64(56000), Description: "Two-seat sports coupe"},
		{FullModel: "Tacoma", BaseModel: "Tacoma", Category: "Truck", MPGCombined: nil, Seating: i(5), MSRP: nil, Description: "Midsize pickup"},
	}
}

func TestApplyEmptyFilterIsIdentity(t *testing.T) {
	vehicles := testVehicles()
	got := Apply(vehicles, models.Filter{})
	if !reflect.DeepEqual(got, vehicles) {
		t.Fatalf("empty filter changed the dataset: got %d rows want %d", len(got), len(vehicles))
	}
}

func TestApplyCategory(t *testing.T) {
	got := Apply(testVehicles(), models.Filter{VehicleTypes: []string{"Car"}})
	if len(got) != 2 {
		t.Fatalf("expected 2 cars, got %d", len(got))
	}
	for _, v := range got {
		if v.Category != "Car" {
			t.Fatalf("unexpected category %q", v.Category)
		}
	}
}

func TestApplyPriceRangeInclusive(t *testing.T) {
	got := Apply(testVehicles(), models.Filter{PriceRange: []float64{28000, 42000}})
	if len(got) != 2 {
		t.Fatalf("expected 2 vehicles in [28000,42000], got %d", len(got))
	}
	for _, v := range got {
		if v.MSRP == nil || *v.MSRP < 28000 || *v.MSRP > 42000 {
			t.Fatalf("vehicle %s out of range", v.FullModel)
		}
	}
}

func TestApplyExcludesMissingValueUnderActiveRange(t *testing.T) {
	got := Apply(testVehicles(), models.Filter{PriceRange: []float64{0, 1000000}})
	for _, v := range got {
		if v.FullModel == "Tacoma" {
			t.Fatalf("row with missing msrp survived an active price filter")
		}
	}
	if len(got) != 3 {
		t.Fatalf("expected 3 rows, got %d", len(got))
	}
}

func TestApplyMPGRange(t *testing.T) {
	got := Apply(testVehicles(), models.Filter{MPGRange: []float64{25, 32}})
	if len(got) != 2 {
		t.Fatalf("expected 2 rows, got %d", len(got))
	}
}

func TestApplySeating(t *testing.T) {
	got := Apply(testVehicles(), models.Filter{SeatingOptions: []int{2, 8}})
	if len(got) != 2 {
		t.Fatalf("expected 2 rows, got %d", len(got))
	}
	if got[0].FullModel != "Highlander" || got[1].FullModel != "GR Supra" {
		t.Fatalf("unexpected rows: %q %q", got[0].FullModel, got[1].FullModel)
	}
}

func TestApplyConjunctive(t *testing.T) {
	got := Apply(testVehicles(), models.Filter{
		VehicleTypes: []string{"Car"},
		PriceRange:   []float64{20000, 40000},
	})
	if len(got) != 1 || got[0].FullModel != "Camry XLE" {
		t.Fatalf("expected only Camry XLE, got %+v", got)
	}
}

func TestApplyIdempotent(t *testing.T) {
	filter := models.Filter{VehicleTypes: []string{"Car"}, MPGRange: []float64{20, 40}}
	once := Apply(testVehicles(), filter)
	twice := Apply(once, filter)
	if !reflect.DeepEqual(once, twice) {
		t.Fatalf("filter is not idempotent: %d vs %d rows", len(once), len(twice))
	}
}

func TestApplyDoesNotMutateInput(t *testing.T) {
	vehicles := testVehicles()
	want := testVehicles()
	_ = Apply(vehicles, models.Filter{VehicleTypes: []string{"SUV"}})
	if !reflect.DeepEqual(vehicles, want) {
		t.Fatalf("input slice was mutated")
	}
}

func TestApplyEmptyResultIsValid(t *testing.T) {
	got := Apply(testVehicles(), models.Filter{VehicleTypes: []string{"Spaceship"}})
	if got == nil || len(got) != 0 {
		t.Fatalf("expected empty non-nil result, got %v", got)
	}
}
