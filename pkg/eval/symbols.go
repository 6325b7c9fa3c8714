package eval

import (
	"math"
	"sort"

	"github.com/deskcalc/deskcalc/pkg/eval/errs"
)

// Func is the implementation of a function in a symbol table. It receives the
// evaluated argument and the state of the evaluation, and returns a reason
// from package errs on failure.
type Func func(x float64, st State) (float64, error)

// Symbol is an entry of a SymbolTable. Exactly one of Fn and Value is
// meaningful, as indicated by Arity.
type Symbol struct {
	Name  string
	Arity int
	Value float64
	Fn    Func
}

// SymbolTable maps names to symbols. It is fixed per mode and never modified
// after being built.
type SymbolTable struct {
	symbols map[string]*Symbol
}

// Lookup looks up a symbol by name.
func (t *SymbolTable) Lookup(name string) (*Symbol, bool) {
	sym, ok := t.symbols[name]
	return sym, ok
}

// Names returns the names of all symbols, sorted.
func (t *SymbolTable) Names() []string {
	names := make([]string, 0, len(t.symbols))
	for name := range t.symbols {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Symbols returns the symbol table of the mode.
func (m Mode) Symbols() *SymbolTable {
	if m == Scientific {
		return scientificSymbols
	}
	return normalSymbols
}

type tableBuilder map[string]*Symbol

func buildTable() tableBuilder { return tableBuilder{} }

func (tb tableBuilder) AddConsts(consts map[string]float64) tableBuilder {
	for name, v := range consts {
		tb[name] = &Symbol{Name: name, Arity: 0, Value: v}
	}
	return tb
}

func (tb tableBuilder) AddFns(fns map[string]Func) tableBuilder {
	for name, fn := range fns {
		tb[name] = &Symbol{Name: name, Arity: 1, Fn: fn}
	}
	return tb
}

func (tb tableBuilder) Table() *SymbolTable {
	return &SymbolTable{tb}
}

// The name looked up when evaluating the ! operator.
const factorialName = "factorial"

var (
	normalSymbols = buildTable().Table()

	scientificSymbols = buildTable().AddConsts(map[string]float64{
		"pi": math.Pi,
		"π":  math.Pi,
		"e":  math.E,
	}).AddFns(map[string]Func{
		"sin":  sin,
		"cos":  cos,
		"tan":  tan,
		"asin": inverseTrig("asin", math.Asin),
		"acos": inverseTrig("acos", math.Acos),
		"atan": atan,
		"ln":   logarithm("ln", math.Log),
		"log":  logarithm("log", math.Log10),
		"sqrt": squareRoot("sqrt"),
		"√":    squareRoot("√"),

		factorialName: factorial,
	}).Table()
)

func sin(x float64, st State) (float64, error) {
	if st.AngleUnit == Degrees {
		if v, ok := exactSinDegrees(x); ok {
			return v, nil
		}
	}
	return math.Sin(toRadians(x, st.AngleUnit)), nil
}

func cos(x float64, st State) (float64, error) {
	if st.AngleUnit == Degrees {
		if v, ok := exactSinDegrees(x + 90); ok {
			return v, nil
		}
	}
	return math.Cos(toRadians(x, st.AngleUnit)), nil
}

func tan(x float64, st State) (float64, error) {
	if st.AngleUnit == Degrees && x == math.Trunc(x) {
		switch floorMod(x, 180) {
		case 0:
			return 0, nil
		case 90:
			return 0, errs.Domain{What: "argument of tan",
				Valid: "not an odd multiple of 90 degrees", Actual: FormatNumber(x)}
		}
	}
	return math.Tan(toRadians(x, st.AngleUnit)), nil
}

// Returns the exact sine of x degrees when x is a multiple of 90.
func exactSinDegrees(x float64) (float64, bool) {
	if math.IsInf(x, 0) || floorMod(x, 90) != 0 {
		return 0, false
	}
	switch floorMod(x, 360) {
	case 90:
		return 1, true
	case 270:
		return -1, true
	default:
		return 0, true
	}
}

func inverseTrig(name string, f func(float64) float64) Func {
	return func(x float64, st State) (float64, error) {
		if x < -1 || x > 1 {
			return 0, errs.Domain{What: "argument of " + name,
				Valid: "from -1 to 1", Actual: FormatNumber(x)}
		}
		return fromRadians(f(x), st.AngleUnit), nil
	}
}

func atan(x float64, st State) (float64, error) {
	return fromRadians(math.Atan(x), st.AngleUnit), nil
}

func toRadians(x float64, u AngleUnit) float64 {
	if u == Degrees {
		return x * math.Pi / 180
	}
	return x
}

func fromRadians(x float64, u AngleUnit) float64 {
	if u == Degrees {
		return x * 180 / math.Pi
	}
	return x
}

func logarithm(name string, f func(float64) float64) Func {
	return func(x float64, _ State) (float64, error) {
		if x <= 0 {
			return 0, errs.Domain{What: "argument of " + name,
				Valid: "positive", Actual: FormatNumber(x)}
		}
		return f(x), nil
	}
}

func squareRoot(name string) Func {
	return func(x float64, _ State) (float64, error) {
		if x < 0 {
			return 0, errs.Domain{What: "argument of " + name,
				Valid: "non-negative", Actual: FormatNumber(x)}
		}
		return math.Sqrt(x), nil
	}
}

// The largest n for which n! is finite as a float64.
const maxFactorial = 170

func factorial(x float64, _ State) (float64, error) {
	if x < 0 || x != math.Trunc(x) {
		return 0, errs.Domain{What: "argument of factorial",
			Valid: "a non-negative integer", Actual: FormatNumber(x)}
	}
	if x > maxFactorial {
		return math.Inf(1), nil
	}
	result := 1.0
	for i := 2.0; i <= x; i++ {
		result *= i
	}
	return result, nil
}

// Returns x mod y with the sign of y.
func floorMod(x, y float64) float64 {
	m := math.Mod(x, y)
	if m != 0 && (m < 0) != (y < 0) {
		m += y
	}
	return m
}
