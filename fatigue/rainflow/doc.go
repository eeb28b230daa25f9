// Package rainflow implements online rainflow cycle counting per ASTM E1049.
//
// A [Counter] consumes a load-time series sample by sample (in chunks of any
// size), reduces it to turning points with a hysteresis filter, and closes
// cycles with either the 4-point method or the HCM stack method. Every closed
// cycle updates a transition matrix, a range-pair histogram, a level-crossing
// histogram and a cumulative pseudo damage. Only the residue of unclosed
// turning points is retained, so streams of arbitrary length run in memory
// proportional to the number of classes.
//
// At the end of the stream exactly one residual method ([ResidualMethod])
// decides how the residue contributes to the results.
//
// Basic usage:
//
//	c, err := rainflow.New(100, 0.5, -25, 1)
//	if err != nil { ... }
//	if err := c.Feed(samples); err != nil { ... }
//	if err := c.Finalize(rainflow.ResidueHalfCycles); err != nil { ... }
//	fmt.Println(c.PseudoDamage())
//
// A Counter is not safe for concurrent use.
package rainflow
