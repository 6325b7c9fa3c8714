package sheet

import (
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/deskcalc/deskcalc/pkg/eval"
)

func TestLines(t *testing.T) {
	code := "1+1\n\n# comment\n  # indented comment\r\nAns*3\r\n   \nsin(90)"
	want := []Line{
		{Num: 0, From: 0, Code: "1+1"},
		{Num: 4, From: 37, Code: "Ans*3"},
		{Num: 6, From: 48, Code: "sin(90)"},
	}
	if diff := cmp.Diff(want, Lines(code)); diff != "" {
		t.Errorf("Lines (-want +got):\n%s", diff)
	}
	if lines := Lines(""); len(lines) != 0 {
		t.Errorf("Lines of empty sheet = %v", lines)
	}
}

func TestEval(t *testing.T) {
	results := Eval("sheet", "3+4\nAns*2\n1/0\nAns+1\nsin(90)", eval.Scientific, eval.Degrees)

	wantValues := []float64{7, 14, 0, 15, 1}
	wantKinds := []eval.Kind{eval.NoError, eval.NoError, eval.DivideByZeroKind, eval.NoError, eval.NoError}
	if len(results) != len(wantValues) {
		t.Fatalf("got %d results, want %d", len(results), len(wantValues))
	}
	for i, r := range results {
		if r.Value != wantValues[i] || eval.KindOf(r.Err) != wantKinds[i] {
			t.Errorf("line %d: got (%v, %v), want (%v, %v)",
				i, r.Value, r.Err, wantValues[i], wantKinds[i])
		}
	}
}

func TestEval_Mode(t *testing.T) {
	results := Eval("sheet", "sin(90)", eval.Normal, eval.Radians)
	if eval.KindOf(results[0].Err) != eval.UndefinedNameKind {
		t.Errorf("sin in normal mode: got error %v", results[0].Err)
	}
}

func TestLineSource(t *testing.T) {
	src := LineSource("a.calc", Line{Num: 2, Code: "1+2"})
	if src.Name != "a.calc, line 3" || src.Code != "1+2" {
		t.Errorf("LineSource returns %+v", src)
	}
}
