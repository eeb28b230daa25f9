// Package woehler evaluates a fixed bilinear Woehler (S-N) curve and turns
// closed load cycles into pseudo damage using the Palmgren-Miner rule.
//
// The curve is parameterized by its knee amplitude SD, the cycle count ND at
// the knee, the slope K above the knee and the slope K2 at or below it.
// Amplitudes at or below Omission cause no damage.
//
// Build with -tags fastmath to evaluate exp/log through algo-approx.
package woehler
