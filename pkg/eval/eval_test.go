package eval

import (
	"errors"
	"strings"
	"sync"
	"testing"

	"github.com/deskcalc/deskcalc/pkg/eval/errs"
	"github.com/deskcalc/deskcalc/pkg/parse"
	"github.com/deskcalc/deskcalc/pkg/testutil"
)

func src(code string) parse.Source { return parse.Source{Name: "[test]", Code: code} }

func TestEvaler_RecordsAnswer(t *testing.T) {
	ev := NewEvaler(Normal)

	_, err := ev.Eval(src("Ans"))
	if !errors.As(err, new(errs.UndefinedName)) {
		t.Errorf("Ans before any evaluation: got error %v, want UndefinedName", err)
	}
	mustEval(t, ev, "3+4", 7)
	mustEval(t, ev, "Ans*2", 14)

	// A failed evaluation does not change the answer.
	if _, err := ev.Eval(src("1/0")); KindOf(err) != DivideByZeroKind {
		t.Errorf("1/0: got error %v, want DivideByZero", err)
	}
	if _, err := ev.Eval(src("2+")); KindOf(err) != SyntaxErrorKind {
		t.Errorf("2+: got error %v, want SyntaxError", err)
	}
	mustEval(t, ev, "Ans", 14)

	// The answer survives a mode switch.
	ev.SetMode(Scientific)
	if ev.Mode() != Scientific {
		t.Errorf("Mode() = %v after SetMode(Scientific)", ev.Mode())
	}
	mustEval(t, ev, "Ans+1", 15)

	ev.Context.Clear()
	if _, ok := ev.Context.LastAnswer(); ok {
		t.Errorf("LastAnswer still present after Clear")
	}
	if _, err := ev.Eval(src("Ans")); KindOf(err) != UndefinedNameKind {
		t.Errorf("Ans after Clear: got error %v, want UndefinedName", err)
	}
}

func TestEvaler_AngleUnit(t *testing.T) {
	ev := NewEvaler(Scientific)
	if u := ev.Context.AngleUnit(); u != Degrees {
		t.Errorf("default angle unit is %v, want deg", u)
	}
	mustEval(t, ev, "sin(90)", 1)

	ev.Context.SetAngleUnit(Radians)
	ev.Context.Clear()
	if u := ev.Context.AngleUnit(); u != Radians {
		t.Errorf("Clear changed the angle unit to %v", u)
	}
	v, err := ev.Eval(src("sin(90)"))
	if err != nil || v > 0.9 || v < 0.89 {
		t.Errorf("sin(90) in radians = (%v, %v), want about 0.894", v, err)
	}
}

func TestEvaler_AfterEval(t *testing.T) {
	ev := NewEvaler(Normal)
	var calls []string
	ev.AddAfterEval(func(s parse.Source, v float64) {
		calls = append(calls, s.Code+"="+FormatNumber(v))
	})
	ev.AddAfterEval(func(parse.Source, float64) { calls = append(calls, "second") })

	mustEval(t, ev, "1+1", 2)
	ev.Eval(src("1/0"))
	mustEval(t, ev, "Ans*3", 6)

	want := []string{"1+1=2", "second", "Ans*3=6", "second"}
	if strings.Join(calls, " ") != strings.Join(want, " ") {
		t.Errorf("hooks called as %q, want %q", calls, want)
	}
}

func TestEvaler_Check(t *testing.T) {
	ev := NewEvaler(Normal)
	ev.Context.RecordAnswer(5)
	v, err := ev.Check(src("Ans+1"))
	if v != 6 || err != nil {
		t.Errorf("Check(Ans+1) = (%v, %v), want (6, nil)", v, err)
	}
	if ans, _ := ev.Context.LastAnswer(); ans != 5 {
		t.Errorf("Check changed the last answer to %v", ans)
	}
}

func TestEvaler_ConcurrentEvalsAreSerialized(t *testing.T) {
	ev := NewEvaler(Normal)
	mustEval(t, ev, "0", 0)

	const n = 100
	var wg sync.WaitGroup
	wg.Add(n)
	for i := 0; i < n; i++ {
		go func() {
			defer wg.Done()
			ev.Eval(src("Ans+1"))
		}()
	}
	wg.Wait()

	if ans, _ := ev.Context.LastAnswer(); ans != n {
		t.Errorf("got answer %v after %d concurrent increments", ans, n)
	}
}

func TestException_Show(t *testing.T) {
	testutil.Set(t, &reasonStart, "")
	testutil.Set(t, &reasonEnd, "")
	_, err := NewEvaler(Normal).Eval(src("1/0"))
	var exc *Exception
	if !errors.As(err, &exc) {
		t.Fatalf("got error %v, want *Exception", err)
	}
	show := exc.Show("")
	if !strings.HasPrefix(show, "Exception: divide by zero: divisor of / is 0\n  [test]:1:1: ") {
		t.Errorf("Show() returns %q", show)
	}
	if exc.Error() != "divide by zero: divisor of / is 0" {
		t.Errorf("Error() returns %q", exc.Error())
	}
}

func mustEval(t *testing.T, ev *Evaler, code string, want float64) {
	t.Helper()
	v, err := ev.Eval(src(code))
	if err != nil {
		t.Fatalf("Eval(%q) returns error %v", code, err)
	}
	if v != want {
		t.Errorf("Eval(%q) = %v, want %v", code, v, want)
	}
}
