package woehler

import (
	"errors"
	"fmt"
	"math"
)

const (
	defaultSD = 1e3
	defaultND = 1e7
	defaultK  = -5.0
)

// ErrInvalidCurve is returned by [Curve.Validate] and [New].
var ErrInvalidCurve = errors.New("woehler: invalid curve")

// Curve is a bilinear Woehler curve in amplitude form.
type Curve struct {
	SD       float64 // knee amplitude
	ND       float64 // cycles to failure at the knee
	K        float64 // slope above the knee
	K2       float64 // slope at or below the knee
	Omission float64 // amplitudes <= Omission are ignored
}

// Default returns the curve SD=1e3, ND=1e7, K=K2=-5 without omission.
func Default() Curve {
	return Curve{SD: defaultSD, ND: defaultND, K: defaultK, K2: defaultK}
}

// Option adjusts a [Curve] built by [New].
type Option func(*Curve)

// WithKnee sets the knee amplitude and its cycle count.
func WithKnee(sd, nd float64) Option {
	return func(c *Curve) {
		c.SD = sd
		c.ND = nd
	}
}

// WithSlopes sets the slopes above (k) and below (k2) the knee.
func WithSlopes(k, k2 float64) Option {
	return func(c *Curve) {
		c.K = k
		c.K2 = k2
	}
}

// WithSlope sets both slopes to k (elementary Miner rule).
func WithSlope(k float64) Option {
	return WithSlopes(k, k)
}

// WithOmission sets the amplitude at or below which cycles are ignored.
func WithOmission(sa float64) Option {
	return func(c *Curve) {
		c.Omission = sa
	}
}

// New applies opts to [Default] and validates the result.
func New(opts ...Option) (Curve, error) {
	c := Default()
	for _, opt := range opts {
		if opt != nil {
			opt(&c)
		}
	}

	if err := c.Validate(); err != nil {
		return Curve{}, err
	}

	return c, nil
}

// Validate reports whether all parameters are usable.
func (c Curve) Validate() error {
	switch {
	case !positiveFinite(c.SD):
		return fmt.Errorf("%w: knee amplitude must be > 0 and finite: %g", ErrInvalidCurve, c.SD)
	case !positiveFinite(c.ND):
		return fmt.Errorf("%w: knee cycles must be > 0 and finite: %g", ErrInvalidCurve, c.ND)
	case !nonZeroFinite(c.K):
		return fmt.Errorf("%w: slope must be non-zero and finite: %g", ErrInvalidCurve, c.K)
	case !nonZeroFinite(c.K2):
		return fmt.Errorf("%w: slope below knee must be non-zero and finite: %g", ErrInvalidCurve, c.K2)
	case c.Omission < 0 || math.IsNaN(c.Omission) || math.IsInf(c.Omission, 0):
		return fmt.Errorf("%w: omission must be >= 0 and finite: %g", ErrInvalidCurve, c.Omission)
	}

	return nil
}

// Elementary reports whether both slopes are equal.
func (c Curve) Elementary() bool {
	return c.K == c.K2
}

// Amplitude returns the load amplitude of a cycle between two classes.
func Amplitude(classWidth float64, fromClass, toClass int) float64 {
	d := fromClass - toClass
	if d < 0 {
		d = -d
	}

	return classWidth * float64(d) / 2
}

// CycleDamage returns the damage of one full cycle with amplitude sa.
func (c Curve) CycleDamage(sa float64) float64 {
	if sa <= c.Omission || sa <= 0 {
		return 0
	}

	k := c.K2
	if sa > c.SD {
		k = c.K
	}

	// D = 1/N with N = ND * (Sa/SD)^-|k|
	return mathExp(math.Abs(k)*(mathLog(sa)-mathLog(c.SD)) - mathLog(c.ND))
}

// CyclesToFailure returns the cycle count the curve allows at amplitude sa,
// or +Inf when sa causes no damage.
func (c Curve) CyclesToFailure(sa float64) float64 {
	d := c.CycleDamage(sa)
	if d == 0 {
		return math.Inf(1)
	}

	return 1 / d
}

// Damage returns the damage of one full cycle between two class indices.
func (c Curve) Damage(classWidth float64, fromClass, toClass int) float64 {
	if fromClass == toClass {
		return 0
	}

	return c.CycleDamage(Amplitude(classWidth, fromClass, toClass))
}

func positiveFinite(v float64) bool {
	return v > 0 && !math.IsInf(v, 0)
}

func nonZeroFinite(v float64) bool {
	return v != 0 && !math.IsNaN(v) && !math.IsInf(v, 0)
}
