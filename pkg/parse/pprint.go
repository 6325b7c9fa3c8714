package parse

import (
	"fmt"
	"io"
)

const indentInc = 2

// PprintAST pretty-prints the tree rooted at e to w, one node per line with
// children indented below their parent. Each line shows the node type, its
// properties and its source range.
func PprintAST(e Expr, w io.Writer) {
	pprintASTRec(e, w, 0)
}

func pprintASTRec(e Expr, w io.Writer, indent int) {
	r := e.Range()
	fmt.Fprintf(w, "%*s", indent, "")
	switch e := e.(type) {
	case *Literal:
		fmt.Fprintf(w, "Literal %s %d-%d\n", literalText(e), r.From, r.To)
	case *Variable:
		fmt.Fprintf(w, "Variable %s %d-%d\n", e.Name, r.From, r.To)
	case *Unary:
		fmt.Fprintf(w, "Unary %s %d-%d\n", e.Op, r.From, r.To)
		pprintASTRec(e.Operand, w, indent+indentInc)
	case *Binary:
		fmt.Fprintf(w, "Binary %s %d-%d\n", e.Op, r.From, r.To)
		pprintASTRec(e.Left, w, indent+indentInc)
		pprintASTRec(e.Right, w, indent+indentInc)
	case *Call:
		fmt.Fprintf(w, "Call %s %d-%d\n", e.Func, r.From, r.To)
		pprintASTRec(e.Arg, w, indent+indentInc)
	default:
		fmt.Fprintf(w, "%T %d-%d\n", e, r.From, r.To)
	}
}
