package main

import (
	"errors"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/cwbudde/algo-rainflow/fatigue/rainflow"
	"github.com/cwbudde/algo-rainflow/fatigue/woehler"
)

// settings is the full run configuration. A YAML file may provide any
// subset; explicitly set flags override it.
type settings struct {
	Classes       int           `yaml:"classes"`
	Width         float64       `yaml:"width"`
	Offset        float64       `yaml:"offset"`
	Hysteresis    float64       `yaml:"hysteresis"`
	Method        string        `yaml:"method"`
	Residue       string        `yaml:"residue"`
	Margin        bool          `yaml:"margin"`
	TurningPoints bool          `yaml:"turning_points"`
	Matrix        bool          `yaml:"matrix"`
	Check         bool          `yaml:"check"`
	Block         int           `yaml:"block"`
	Woehler       curveSettings `yaml:"woehler"`
}

type curveSettings struct {
	SD       float64 `yaml:"sd"`
	ND       float64 `yaml:"nd"`
	K        float64 `yaml:"k"`
	K2       float64 `yaml:"k2"`
	Omission float64 `yaml:"omission"`
}

func defaultSettings() settings {
	c := woehler.Default()

	return settings{
		Classes:    100,
		Hysteresis: -1,
		Method:     rainflow.MethodFourPoint.String(),
		Residue:    rainflow.ResidueHalfCycles.String(),
		Block:      4096,
		Woehler: curveSettings{
			SD: c.SD,
			ND: c.ND,
			K:  c.K,
			K2: c.K2,
		},
	}
}

// loadSettings merges the YAML file at path into s.
func loadSettings(path string, s *settings) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read config: %w", err)
	}

	if err := yaml.Unmarshal(data, s); err != nil {
		return fmt.Errorf("parse config %s: %w", path, err)
	}

	return nil
}

var errSettings = errors.New("invalid settings")

// autoClasses reports whether the class range is derived from the load.
func (s settings) autoClasses() bool {
	return s.Width == 0
}

func (s settings) validate() error {
	if s.Classes < 2 || s.Classes > rainflow.MaxClassCount {
		return fmt.Errorf("%w: classes must be in [2, %d]: %d", errSettings, rainflow.MaxClassCount, s.Classes)
	}

	if s.Width < 0 {
		return fmt.Errorf("%w: width must be >= 0: %g", errSettings, s.Width)
	}

	if s.Block < 1 {
		return fmt.Errorf("%w: block must be >= 1: %d", errSettings, s.Block)
	}

	if _, err := rainflow.ParseMethod(s.Method); err != nil {
		return fmt.Errorf("%w: %w", errSettings, err)
	}

	if _, err := rainflow.ParseResidualMethod(s.Residue); err != nil {
		return fmt.Errorf("%w: %w", errSettings, err)
	}

	if _, err := s.curve(); err != nil {
		return fmt.Errorf("%w: %w", errSettings, err)
	}

	return nil
}

func (s settings) curve() (woehler.Curve, error) {
	w := s.Woehler

	return woehler.New(
		woehler.WithKnee(w.SD, w.ND),
		woehler.WithSlopes(w.K, w.K2),
		woehler.WithOmission(w.Omission),
	)
}

// classesFor returns the class parameters, spreading Classes classes over
// [lo, hi] when no width is configured.
func (s settings) classesFor(lo, hi float64) rainflow.Classes {
	if !s.autoClasses() {
		return rainflow.Classes{Count: s.Classes, Width: s.Width, Offset: s.Offset}
	}

	width := (hi - lo) / float64(s.Classes-1)
	if width <= 0 {
		width = 1
	}

	return rainflow.Classes{Count: s.Classes, Width: width, Offset: lo - width/2}
}

// hysteresisFor returns the configured hysteresis, or one class width when
// it is negative.
func (s settings) hysteresisFor(c rainflow.Classes) float64 {
	if s.Hysteresis < 0 {
		return c.Width
	}

	return s.Hysteresis
}

// counterOptions translates the settings into counter options.
func (s settings) counterOptions() ([]rainflow.Option, error) {
	method, err := rainflow.ParseMethod(s.Method)
	if err != nil {
		return nil, err
	}

	curve, err := s.curve()
	if err != nil {
		return nil, err
	}

	opts := []rainflow.Option{
		rainflow.WithMethod(method),
		rainflow.WithDamageModel(curve),
	}

	if s.TurningPoints || s.Margin {
		opts = append(opts, rainflow.WithHistory(0))
	}

	if s.Margin {
		opts = append(opts, rainflow.WithMarginEnforcement())
	}

	return opts, nil
}
