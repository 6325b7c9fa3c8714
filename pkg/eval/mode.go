package eval

import "fmt"

// Mode selects the symbol table used for evaluation.
type Mode int

// Possible values of Mode.
const (
	// Normal mode supports only arithmetic operators and Ans.
	Normal Mode = iota
	// Scientific mode adds functions, constants and the factorial operator.
	Scientific
)

func (m Mode) String() string {
	switch m {
	case Normal:
		return "normal"
	case Scientific:
		return "scientific"
	default:
		return fmt.Sprintf("Mode(%d)", int(m))
	}
}

// ParseMode parses the name of a mode, as returned by Mode.String.
func ParseMode(s string) (Mode, error) {
	switch s {
	case "normal":
		return Normal, nil
	case "scientific":
		return Scientific, nil
	default:
		return 0, fmt.Errorf("unknown mode %q, should be normal or scientific", s)
	}
}

// AngleUnit is the unit in which trigonometric functions take their arguments
// and inverse trigonometric functions return their results.
type AngleUnit int

// Possible values of AngleUnit.
const (
	Degrees AngleUnit = iota
	Radians
)

func (u AngleUnit) String() string {
	switch u {
	case Degrees:
		return "deg"
	case Radians:
		return "rad"
	default:
		return fmt.Sprintf("AngleUnit(%d)", int(u))
	}
}

// ParseAngleUnit parses the name of an angle unit. Both the short names
// returned by AngleUnit.String and the long names are accepted.
func ParseAngleUnit(s string) (AngleUnit, error) {
	switch s {
	case "deg", "degrees":
		return Degrees, nil
	case "rad", "radians":
		return Radians, nil
	default:
		return 0, fmt.Errorf("unknown angle unit %q, should be deg or rad", s)
	}
}
