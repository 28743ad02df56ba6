package catalog

import "github.com/dreamgarage/dreamcar/models"

// Apply narrows vehicles to the rows matching every provided constraint.
// It is pure: the input slice is never mutated and absent constraints pass
// everything through. Rows missing a numeric value are excluded whenever a
// range over that value is active.
func Apply(vehicles []models.Vehicle, f models.Filter) []models.Vehicle {
	out := make([]models.Vehicle, 0, len(vehicles))
	for _, v := range vehicles {
		if len(f.VehicleTypes) > 0 && !containsString(f.VehicleTypes, v.Category) {
			continue
		}
		if len(f.PriceRange) == 2 && !inRange(v.MSRP, f.PriceRange[0], f.PriceRange[1]) {
			continue
		}
		if len(f.MPGRange) == 2 && !inRange(v.MPGCombined, f.MPGRange[0], f.MPGRange[1]) {
			continue
		}
		if len(f.SeatingOptions) > 0 && !containsSeating(f.SeatingOptions, v.Seating) {
			continue
		}
		out = append(out, v)
	}
	return out
}

func inRange(v *float64, min, max float64) bool {
	return v != nil && *v >= min && *v <= max
}

func containsString(set []string, s string) bool {
	for _, c := range set {
		if c == s {
			return true
		}
	}
	return false
}

func containsSeating(set []int, v *int) bool {
	if v == nil {
		return false
	}
	for _, c := range set {
		if c == *v {
			return true
		}
	}
	return false
}
