package eval

import (
	"math"

	"github.com/deskcalc/deskcalc/pkg/diag"
	"github.com/deskcalc/deskcalc/pkg/eval/errs"
	"github.com/deskcalc/deskcalc/pkg/parse"
)

// The name that resolves to the last answer.
const ansName = "Ans"

// Evaluate evaluates a parsed tree in the given mode and state. It never
// modifies the tree or the state; evaluating the same tree in the same mode
// and state always gives the same result. The returned error always has type
// *Exception if it is not nil.
func Evaluate(tree parse.Tree, mode Mode, st State) (float64, error) {
	ev := &evaluator{tree.Source, mode, mode.Symbols(), st}
	return ev.eval(tree.Root)
}

type evaluator struct {
	src     parse.Source
	mode    Mode
	symbols *SymbolTable
	state   State
}

func (ev *evaluator) eval(e parse.Expr) (float64, error) {
	v, err := ev.evalNode(e)
	if err != nil {
		return 0, err
	}
	if math.IsInf(v, 0) || math.IsNaN(v) {
		return 0, ev.errorp(e, errs.Domain{What: "result of " + parse.Format(e),
			Valid: "finite", Actual: FormatNumber(v)})
	}
	return v, nil
}

func (ev *evaluator) evalNode(e parse.Expr) (float64, error) {
	switch e := e.(type) {
	case *parse.Literal:
		return e.Value, nil
	case *parse.Variable:
		return ev.evalVariable(e)
	case *parse.Unary:
		return ev.evalUnary(e)
	case *parse.Binary:
		return ev.evalBinary(e)
	case *parse.Call:
		return ev.evalCall(e)
	default:
		return 0, ev.errorp(e, errs.UndefinedName{Name: e.String()})
	}
}

func (ev *evaluator) evalVariable(e *parse.Variable) (float64, error) {
	if e.Name == ansName {
		if !ev.state.HasAnswer {
			return 0, ev.errorp(e, errs.UndefinedName{Name: ansName,
				Reason: "no answer has been recorded"})
		}
		return ev.state.LastAnswer, nil
	}
	sym, err := ev.lookup(e.Name)
	if err != nil {
		return 0, ev.errorp(e, err)
	}
	if sym.Arity != 0 {
		return 0, ev.errorp(e, errs.UndefinedName{Name: e.Name,
			Reason: "is a function"})
	}
	return sym.Value, nil
}

func (ev *evaluator) evalUnary(e *parse.Unary) (float64, error) {
	x, err := ev.eval(e.Operand)
	if err != nil {
		return 0, err
	}
	switch e.Op {
	case parse.OpNeg:
		return -x, nil
	case parse.OpPos:
		return x, nil
	default:
		return ev.call(e, factorialName, x)
	}
}

func (ev *evaluator) evalBinary(e *parse.Binary) (float64, error) {
	l, err := ev.eval(e.Left)
	if err != nil {
		return 0, err
	}
	r, err := ev.eval(e.Right)
	if err != nil {
		return 0, err
	}
	switch e.Op {
	case parse.OpAdd:
		return l + r, nil
	case parse.OpSub:
		return l - r, nil
	case parse.OpMul:
		return l * r, nil
	case parse.OpDiv:
		if r == 0 {
			return 0, ev.errorp(e, errs.DivideByZero{What: "divisor of /"})
		}
		return l / r, nil
	case parse.OpMod:
		if r == 0 {
			return 0, ev.errorp(e, errs.DivideByZero{What: "divisor of %"})
		}
		return floorMod(l, r), nil
	default:
		return ev.pow(e, l, r)
	}
}

func (ev *evaluator) pow(e *parse.Binary, base, exp float64) (float64, error) {
	if base == 0 && exp < 0 {
		return 0, ev.errorp(e, errs.DivideByZero{What: "base of ^ with a negative exponent"})
	}
	if base < 0 && exp != math.Trunc(exp) {
		return 0, ev.errorp(e, errs.Domain{What: "base of ^ with a non-integer exponent",
			Valid: "non-negative", Actual: FormatNumber(base)})
	}
	return math.Pow(base, exp), nil
}

func (ev *evaluator) evalCall(e *parse.Call) (float64, error) {
	x, err := ev.eval(e.Arg)
	if err != nil {
		return 0, err
	}
	return ev.call(e, e.Func, x)
}

func (ev *evaluator) call(e parse.Expr, name string, x float64) (float64, error) {
	sym, err := ev.lookup(name)
	if err != nil {
		return 0, ev.errorp(e, err)
	}
	if sym.Arity != 1 {
		return 0, ev.errorp(e, errs.UndefinedName{Name: name, Reason: "is not a function"})
	}
	v, err := sym.Fn(x, ev.state)
	if err != nil {
		return 0, ev.errorp(e, err)
	}
	return v, nil
}

func (ev *evaluator) lookup(name string) (*Symbol, error) {
	if sym, ok := ev.symbols.Lookup(name); ok {
		return sym, nil
	}
	if ev.mode != Scientific {
		if _, ok := scientificSymbols.Lookup(name); ok {
			return nil, errs.UndefinedName{Name: name,
				Reason: "only available in scientific mode"}
		}
	}
	return nil, errs.UndefinedName{Name: name}
}

func (ev *evaluator) errorp(r diag.Ranger, reason error) error {
	return &Exception{reason, *diag.NewContext(ev.src.Name, ev.src.Code, r)}
}
