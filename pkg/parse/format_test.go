package parse

import (
	"testing"

	"github.com/deskcalc/deskcalc/pkg/tt"
)

func formatCode(code string) string {
	tree, err := Parse(Source{Name: "[test]", Code: code})
	if err != nil {
		return "error: " + err.Error()
	}
	return Format(tree.Root)
}

func TestFormat(t *testing.T) {
	tt.Test(t, tt.Fn("formatCode", formatCode), tt.Table{
		tt.Args("2^3^2").Rets("2^3^2"),
		tt.Args("2^(3^2)").Rets("2^3^2"),
		tt.Args("(2^3)^2").Rets("(2^3)^2"),
		tt.Args("2 + 3 * 4").Rets("2+3*4"),
		tt.Args("(2+3)*4").Rets("(2+3)*4"),
		tt.Args("1-(2-3)").Rets("1-(2-3)"),
		tt.Args("(1-2)-3").Rets("1-2-3"),
		tt.Args("8/(4*2)").Rets("8/(4*2)"),
		tt.Args("(-2)^2").Rets("-2^2"),
		tt.Args("-(2^2)").Rets("-(2^2)"),
		tt.Args("2^(-1)").Rets("2^-1"),
		tt.Args("(-3)!").Rets("(-3)!"),
		tt.Args("-(3!)").Rets("-3!"),
		tt.Args("(2+3)!").Rets("(2+3)!"),
		tt.Args("2**3").Rets("2^3"),
		tt.Args("sin((90))").Rets("sin(90)"),
		tt.Args("sqrt(2)*(pi+e)").Rets("sqrt(2)*(pi+e)"),
		tt.Args("1.5E3 + .5").Rets("1.5E3+.5"),
		tt.Args("2*(-3)").Rets("2*-3"),
	})
}

func TestFormat_RoundTrip(t *testing.T) {
	codes := []string{
		"2^3^2", "(2^3)^2", "-2^2", "-(2^2)", "((1+2)*3-4)/5%6",
		"-(-3)!!", "sin(cos(tan(1)))^2", "2^-3^-1", "--+1",
	}
	for _, code := range codes {
		first := formatCode(code)
		second := formatCode(first)
		if first != second {
			t.Errorf("Format not stable for %q: %q, then %q", code, first, second)
		}
		if formatCode(code) != first {
			t.Errorf("Format not deterministic for %q", code)
		}
		tree1, _ := Parse(Source{Name: "1", Code: code})
		tree2, _ := Parse(Source{Name: "2", Code: first})
		if s1, s2 := tree1.Root.String(), tree2.Root.String(); s1 != s2 {
			t.Errorf("Format(%q) = %q changes structure: %s vs %s", code, first, s1, s2)
		}
	}
}

func TestFormat_LiteralWithoutText(t *testing.T) {
	tt.Test(t, tt.Fn("Format", Format), tt.Table{
		tt.Args(&Literal{Value: 0.5}).Rets("0.5"),
		tt.Args(&Literal{Value: 1e21}).Rets("1E+21"),
		tt.Args(&Binary{Op: OpPow, Left: &Literal{Value: 2}, Right: &Literal{Value: -1}}).
			Rets("2^-1"),
	})
}
