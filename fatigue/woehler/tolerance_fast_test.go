//go:build fastmath

package woehler

const relTol = 1e-3
