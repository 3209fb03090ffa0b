// Package calc is a fixture whose tests exercise every test outcome.
package calc

import "errors"

var ErrDivByZero = errors.New("division by zero")

func Add(a, b int) int { return a + b }

func Div(a, b int) (int, error) {
	if b == 0 {
		return 0, ErrDivByZero
	}
	// Deliberately wrong so that TestDiv fails.
	return a * b, nil
}

func Abs(n int) int {
	if n < 0 {
		// Missing negation so that TestAbs/negative fails.
		return n
	}
	return n
}
