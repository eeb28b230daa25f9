package rainflow

import (
	"fmt"
	"strings"
)

// State is the lifecycle state of a [Counter].
type State int

const (
	// StateInit0 is a closed or never initialized counter.
	StateInit0 State = iota
	// StateInit is an initialized counter that has seen no samples.
	StateInit
	// StateBusy is a counter that has seen samples but confirmed no turning
	// point yet.
	StateBusy
	// StateBusyInterim is a counter with an interim turning point.
	StateBusyInterim
	// StateFinalize is the transient state while a residual method runs.
	StateFinalize
	// StateFinished is a finalized counter; results are final.
	StateFinished
	// StateError is a failed counter. It is sticky.
	StateError
)

var stateNames = [...]string{
	StateInit0:       "init0",
	StateInit:        "init",
	StateBusy:        "busy",
	StateBusyInterim: "busy-interim",
	StateFinalize:    "finalize",
	StateFinished:    "finished",
	StateError:       "error",
}

// String returns the state name.
func (s State) String() string {
	if s < 0 || int(s) >= len(stateNames) {
		return fmt.Sprintf("State(%d)", int(s))
	}

	return stateNames[s]
}

// Method selects the cycle-counting algorithm.
type Method int

const (
	// MethodFourPoint is the ASTM E1049 4-point method.
	MethodFourPoint Method = iota
	// MethodHCM is the Clormann/Seeger stack method.
	MethodHCM
	// MethodNone extracts turning points without counting cycles.
	MethodNone
	// MethodCustom uses the finder passed with [WithCycleFinder].
	MethodCustom
)

var methodNames = [...]string{
	MethodFourPoint: "4ptm",
	MethodHCM:       "hcm",
	MethodNone:      "none",
	MethodCustom:    "custom",
}

// String returns the method name.
func (m Method) String() string {
	if m < 0 || int(m) >= len(methodNames) {
		return fmt.Sprintf("Method(%d)", int(m))
	}

	return methodNames[m]
}

// ParseMethod returns the method named s (case insensitive).
// MethodCustom cannot be parsed.
func ParseMethod(s string) (Method, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "4ptm", "4pt", "fourpoint", "4-point":
		return MethodFourPoint, nil
	case "hcm":
		return MethodHCM, nil
	case "none":
		return MethodNone, nil
	}

	return 0, fmt.Errorf("%w: unknown counting method %q", ErrInvalidArgument, s)
}

// ResidualMethod selects how the residue is treated at the end of a stream.
type ResidualMethod int

const (
	// ResidueIgnore keeps the residue uncounted.
	ResidueIgnore ResidualMethod = iota
	// ResidueDiscard drops the residue uncounted.
	ResidueDiscard
	// ResidueHalfCycles counts every residue slope as a half cycle.
	ResidueHalfCycles
	// ResidueFullCycles counts every residue slope as a full cycle.
	ResidueFullCycles
	// ResidueClormannSeeger closes inner pairs of zero-crossing quadruples
	// as full cycles (4-point method only) and the rest as half cycles.
	ResidueClormannSeeger
	// ResidueRepeated feeds the residue a second time.
	ResidueRepeated
	// ResidueDIN45667 counts the residue per DIN 45667.
	ResidueDIN45667
)

// ResidueNone is an alias of ResidueIgnore.
const ResidueNone = ResidueIgnore

var residualNames = [...]string{
	ResidueIgnore:         "ignore",
	ResidueDiscard:        "discard",
	ResidueHalfCycles:     "halfcycles",
	ResidueFullCycles:     "fullcycles",
	ResidueClormannSeeger: "clormann-seeger",
	ResidueRepeated:       "repeated",
	ResidueDIN45667:       "din45667",
}

// String returns the residual method name.
func (m ResidualMethod) String() string {
	if m < 0 || int(m) >= len(residualNames) {
		return fmt.Sprintf("ResidualMethod(%d)", int(m))
	}

	return residualNames[m]
}

// ParseResidualMethod returns the residual method named s (case insensitive).
func ParseResidualMethod(s string) (ResidualMethod, error) {
	name := strings.ToLower(strings.TrimSpace(s))
	if name == "none" {
		return ResidueNone, nil
	}

	for m, n := range residualNames {
		if n == name {
			return ResidualMethod(m), nil
		}
	}

	return 0, fmt.Errorf("%w: unknown residual method %q", ErrInvalidArgument, s)
}

// Flags selects which aggregates a cycle updates.
type Flags uint

const (
	CountMatrix Flags = 1 << iota
	CountRangePair
	CountLevelCrossingUp
	CountLevelCrossingDown
	CountDamage

	CountLevelCrossing = CountLevelCrossingUp | CountLevelCrossingDown
	CountAll           = CountMatrix | CountRangePair | CountLevelCrossing | CountDamage
)
