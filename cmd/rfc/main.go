// Command rfc counts rainflow cycles in load-time series.
//
// Usage:
//
//	rfc [flags] [file ...]
//
// Samples are whitespace-separated numbers. Without file arguments, or
// with "-", samples are read from stdin. Each input is counted on its own.
//
// Examples:
//
//	rfc load.txt
//	rfc -classes 64 -width 5 -offset -160 -residue repeated load.txt
//	rfc -method hcm -matrix -check < load.txt
//	rfc -config rfc.yaml -v a.txt b.txt
package main

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"os"

	"github.com/sirupsen/logrus"
)

func main() {
	os.Exit(run(os.Args[1:], os.Stdin, os.Stdout, os.Stderr))
}

// flagFields copies a flag-bound setting from src to dst.
var flagFields = map[string]func(dst *settings, src settings){
	"classes":    func(d *settings, s settings) { d.Classes = s.Classes },
	"width":      func(d *settings, s settings) { d.Width = s.Width },
	"offset":     func(d *settings, s settings) { d.Offset = s.Offset },
	"hysteresis": func(d *settings, s settings) { d.Hysteresis = s.Hysteresis },
	"method":     func(d *settings, s settings) { d.Method = s.Method },
	"residue":    func(d *settings, s settings) { d.Residue = s.Residue },
	"margin":     func(d *settings, s settings) { d.Margin = s.Margin },
	"tp":         func(d *settings, s settings) { d.TurningPoints = s.TurningPoints },
	"matrix":     func(d *settings, s settings) { d.Matrix = s.Matrix },
	"check":      func(d *settings, s settings) { d.Check = s.Check },
	"block":      func(d *settings, s settings) { d.Block = s.Block },
	"sd":         func(d *settings, s settings) { d.Woehler.SD = s.Woehler.SD },
	"nd":         func(d *settings, s settings) { d.Woehler.ND = s.Woehler.ND },
	"k":          func(d *settings, s settings) { d.Woehler.K = s.Woehler.K },
	"k2":         func(d *settings, s settings) { d.Woehler.K2 = s.Woehler.K2 },
	"omission":   func(d *settings, s settings) { d.Woehler.Omission = s.Woehler.Omission },
}

func newFlagSet(s *settings, stderr io.Writer) *flag.FlagSet {
	fs := flag.NewFlagSet("rfc", flag.ContinueOnError)
	fs.SetOutput(stderr)

	def := defaultSettings()
	fs.IntVar(&s.Classes, "classes", def.Classes, "number of classes")
	fs.Float64Var(&s.Width, "width", def.Width, "class width; 0 spreads the classes over the load range")
	fs.Float64Var(&s.Offset, "offset", def.Offset, "lower bound of the first class (with -width)")
	fs.Float64Var(&s.Hysteresis, "hysteresis", def.Hysteresis, "turning point hysteresis; negative selects one class width")
	fs.StringVar(&s.Method, "method", def.Method, "counting method: 4ptm, hcm or none")
	fs.StringVar(&s.Residue, "residue", def.Residue,
		"residual method: ignore, discard, halfcycles, fullcycles, clormann-seeger, repeated, din45667")
	fs.BoolVar(&s.Margin, "margin", def.Margin, "keep the first and last sample as turning points")
	fs.BoolVar(&s.TurningPoints, "tp", def.TurningPoints, "print the turning points")
	fs.BoolVar(&s.Matrix, "matrix", def.Matrix, "print the non-zero matrix cells")
	fs.BoolVar(&s.Check, "check", def.Check, "verify derived histograms against the live counts")
	fs.IntVar(&s.Block, "block", def.Block, "samples read per block")
	fs.Float64Var(&s.Woehler.SD, "sd", def.Woehler.SD, "Woehler curve knee amplitude")
	fs.Float64Var(&s.Woehler.ND, "nd", def.Woehler.ND, "Woehler curve knee cycles")
	fs.Float64Var(&s.Woehler.K, "k", def.Woehler.K, "Woehler slope above the knee")
	fs.Float64Var(&s.Woehler.K2, "k2", def.Woehler.K2, "Woehler slope below the knee")
	fs.Float64Var(&s.Woehler.Omission, "omission", def.Woehler.Omission, "amplitude at or below which cycles do no damage")

	fs.Usage = func() {
		fmt.Fprintf(stderr, "Usage: rfc [flags] [file ...]\n\n")
		fmt.Fprintf(stderr, "Counts rainflow cycles in load-time series read from files or stdin.\n\n")
		fmt.Fprintf(stderr, "Flags:\n")
		fs.PrintDefaults()
		fmt.Fprintf(stderr, "\nExamples:\n")
		fmt.Fprintf(stderr, "  rfc load.txt\n")
		fmt.Fprintf(stderr, "  rfc -method hcm -matrix -check < load.txt\n")
		fmt.Fprintf(stderr, "  rfc -config rfc.yaml -v a.txt b.txt\n")
	}

	return fs
}

func newLogger(w io.Writer, verbose bool) *logrus.Logger {
	log := logrus.New()
	log.SetOutput(w)
	log.SetFormatter(&logrus.TextFormatter{DisableTimestamp: true})

	if verbose {
		log.SetLevel(logrus.DebugLevel)
	}

	return log
}

// resolveSettings applies the config file, if any, and then every flag set
// on the command line.
func resolveSettings(fs *flag.FlagSet, flagged settings, configPath string) (settings, error) {
	if configPath == "" {
		return flagged, flagged.validate()
	}

	s := defaultSettings()
	if err := loadSettings(configPath, &s); err != nil {
		return settings{}, err
	}

	fs.Visit(func(f *flag.Flag) {
		if set, ok := flagFields[f.Name]; ok {
			set(&s, flagged)
		}
	})

	return s, s.validate()
}

func run(args []string, stdin io.Reader, stdout, stderr io.Writer) int {
	var flagged settings

	fs := newFlagSet(&flagged, stderr)
	configPath := fs.String("config", "", "YAML file with default settings; flags override it")
	verbose := fs.Bool("v", false, "log debug output")

	if err := fs.Parse(args); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return 0
		}

		return 2
	}

	log := newLogger(stderr, *verbose)

	s, err := resolveSettings(fs, flagged, *configPath)
	if err != nil {
		log.WithError(err).Error("bad settings")

		return 2
	}

	inputs := fs.Args()
	if len(inputs) == 0 {
		inputs = []string{"-"}
	}

	code := 0

	for i, name := range inputs {
		if i > 0 {
			fmt.Fprintln(stdout)
		}

		if err := runInput(name, stdin, stdout, s, log); err != nil {
			log.WithError(err).WithField("input", name).Error("analysis failed")

			code = 1
		}
	}

	return code
}

func runInput(name string, stdin io.Reader, stdout io.Writer, s settings, log *logrus.Logger) error {
	r := stdin

	if name != "-" {
		f, err := os.Open(name)
		if err != nil {
			return err
		}
		defer f.Close()

		r = f
	}

	res, err := analyze(name, r, s, log)
	if err != nil {
		return err
	}

	return writeReport(stdout, res)
}
