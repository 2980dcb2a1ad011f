// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package slice complements the standard [slices] package with the few
functional helpers the navigation filter and the stub evaluators share.
*/
package slice

// Map applies transform to every element. A nil input yields nil.
func Map[T, U any](input []T, transform func(T) U) []U {
	if input == nil {
		return nil
	}

	result := make([]U, len(input))
	for i, v := range input {
		result[i] = transform(v)
	}
	return result
}

// Filter keeps the elements for which keep returns true, in input order.
//
// The result is never nil, so an empty match encodes as [] rather than null.
func Filter[T any](input []T, keep func(T) bool) []T {
	result := make([]T, 0, len(input))
	for _, v := range input {
		if keep(v) {
			result = append(result, v)
		}
	}
	return result
}

// Sum folds a numeric projection of every element.
func Sum[T any, N ~int | ~float64](input []T, value func(T) N) N {
	var total N
	for _, v := range input {
		total += value(v)
	}
	return total
}
