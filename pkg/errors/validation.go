package errors

import "math"

// ValidateFinite rejects NaN and infinite values for the named field.
func ValidateFinite(field string, v float64) error {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return New(ErrCodeInvalidConfig, "%s must be a finite number, got %v", field, v)
	}
	return nil
}

// ValidateNonNegative rejects negative or non-finite values for the named field.
func ValidateNonNegative(field string, v float64) error {
	if err := ValidateFinite(field, v); err != nil {
		return err
	}
	if v < 0 {
		return New(ErrCodeInvalidConfig, "%s must not be negative, got %v", field, v)
	}
	return nil
}

// ValidatePositive rejects zero, negative or non-finite values for the named field.
func ValidatePositive(field string, v float64) error {
	if err := ValidateFinite(field, v); err != nil {
		return err
	}
	if v <= 0 {
		return New(ErrCodeInvalidConfig, "%s must be positive, got %v", field, v)
	}
	return nil
}

// ValidatePermutation checks that order holds each of 0..n-1 exactly once.
func ValidatePermutation(field string, order []int, n int) error {
	if len(order) != n {
		return New(ErrCodeInvalidConfig, "%s must list %d values, got %d", field, n, len(order))
	}
	seen := make([]bool, n)
	for _, v := range order {
		if v < 0 || v >= n {
			return New(ErrCodeInvalidConfig, "%s: value %d out of range [0,%d)", field, v, n)
		}
		if seen[v] {
			return New(ErrCodeInvalidConfig, "%s: value %d repeated", field, v)
		}
		seen[v] = true
	}
	return nil
}
