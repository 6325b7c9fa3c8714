package parse

import (
	"fmt"
	"strconv"
	"strings"
)

// String methods show the structure of the tree with every compound
// subexpression parenthesized.

func (l *Literal) String() string { return literalText(l) }

func (v *Variable) String() string { return v.Name }

func (u *Unary) String() string {
	if u.Op == OpFactorial {
		return fmt.Sprintf("(%s)!", u.Operand)
	}
	return fmt.Sprintf("(%s%s)", u.Op, u.Operand)
}

func (b *Binary) String() string {
	return fmt.Sprintf("(%s %s %s)", b.Left, b.Op, b.Right)
}

func (c *Call) String() string {
	return fmt.Sprintf("%s(%s)", c.Func, c.Arg)
}

// Precedence levels, from the lowest to the highest.
const (
	precAdd = iota + 1
	precMul
	precPow
	precUnary
	precPostfix
	precPrimary
)

// Format serializes an expression in the canonical form, using only the
// parentheses needed to preserve the structure of the tree. Parsing the
// result yields a tree that formats to the same string.
func Format(e Expr) string {
	var sb strings.Builder
	format(&sb, e, 0)
	return sb.String()
}

func format(sb *strings.Builder, e Expr, minPrec int) {
	paren := precOf(e) < minPrec
	if paren {
		sb.WriteByte('(')
	}
	switch e := e.(type) {
	case *Literal:
		sb.WriteString(literalText(e))
	case *Variable:
		sb.WriteString(e.Name)
	case *Unary:
		if e.Op == OpFactorial {
			format(sb, e.Operand, precPostfix)
			sb.WriteByte('!')
		} else {
			sb.WriteString(e.Op.String())
			format(sb, e.Operand, precUnary)
		}
	case *Binary:
		p := precOf(e)
		left, right := p, p+1
		if e.Op == OpPow {
			// Right-associative, and the base is a Unary.
			left, right = precUnary, precPow
		}
		format(sb, e.Left, left)
		sb.WriteString(e.Op.String())
		format(sb, e.Right, right)
	case *Call:
		sb.WriteString(e.Func)
		sb.WriteByte('(')
		format(sb, e.Arg, 0)
		sb.WriteByte(')')
	}
	if paren {
		sb.WriteByte(')')
	}
}

func precOf(e Expr) int {
	switch e := e.(type) {
	case *Literal:
		if strings.HasPrefix(literalText(e), "-") {
			return precUnary
		}
		return precPrimary
	case *Unary:
		if e.Op == OpFactorial {
			return precPostfix
		}
		return precUnary
	case *Binary:
		switch e.Op {
		case OpAdd, OpSub:
			return precAdd
		case OpMul, OpDiv, OpMod:
			return precMul
		default:
			return precPow
		}
	default:
		return precPrimary
	}
}

func literalText(l *Literal) string {
	if l.Text != "" {
		return l.Text
	}
	return strings.Replace(strconv.FormatFloat(l.Value, 'g', -1, 64), "e", "E", 1)
}
