// Package parse implements the tokenizer and parser of calculator
// expressions.
//
// The grammar, from the lowest precedence to the highest:
//
//	Expr    = Term { ( '+' | '-' ) Term }
//	Term    = Power { ( '*' | '/' | '%' ) Power }
//	Power   = Unary [ ( '^' | '**' ) Power ]
//	Unary   = ( '-' | '+' ) Unary | Postfix
//	Postfix = Primary { '!' }
//	Primary = Number | Identifier [ '(' Expr ')' ] | '(' Expr ')'
//
// Power is right-associative; all other binary operators are
// left-associative. A prefix sign binds tighter than '^', so -2^2 is (-2)^2.
package parse

import (
	"fmt"

	"github.com/deskcalc/deskcalc/pkg/diag"
)

// Source describes a piece of source code.
type Source struct {
	Name string
	Code string
}

// Tree represents a parsed tree.
type Tree struct {
	Root   Expr
	Source Source
}

// SyntaxError is a parse error caused by a malformed token sequence.
type SyntaxError = diag.Error[SyntaxErrorTag]

// SyntaxErrorTag parameterizes [diag.Error] to define [SyntaxError].
type SyntaxErrorTag struct{}

func (SyntaxErrorTag) ErrorTag() string { return "syntax error" }

// Parse parses the given source. The returned error has type *LexError or
// *SyntaxError if it is not nil.
func Parse(src Source) (Tree, error) {
	tokens, err := Tokenize(src)
	if err != nil {
		return Tree{}, err
	}
	ps := &parser{src: src, tokens: tokens}
	root := ps.parse()
	if ps.err != nil {
		return Tree{}, ps.err
	}
	return Tree{root, src}, nil
}

// Expr is a node in the expression tree. Trees are never modified after
// parsing, so they can be evaluated any number of times.
type Expr interface {
	diag.Ranger
	fmt.Stringer
	isExpr()
}

// Literal is a number literal.
type Literal struct {
	diag.Ranging
	Value float64
	// Text is the source text of the literal. It is empty for literals not
	// produced by the parser.
	Text string
}

// Variable is a reference to a constant, like pi or Ans.
type Variable struct {
	diag.Ranging
	Name string
}

// Unary applies a prefix sign or the postfix factorial to an operand.
type Unary struct {
	diag.Ranging
	Op      UnaryOp
	Operand Expr
}

// Binary applies an arithmetic operator to two operands.
type Binary struct {
	diag.Ranging
	Op          BinaryOp
	Left, Right Expr
}

// Call is a function call with a single argument.
type Call struct {
	diag.Ranging
	Func string
	Arg  Expr
}

func (*Literal) isExpr()  {}
func (*Variable) isExpr() {}
func (*Unary) isExpr()    {}
func (*Binary) isExpr()   {}
func (*Call) isExpr()     {}

// UnaryOp identifies a unary operation.
type UnaryOp int

// Possible values of UnaryOp.
const (
	OpNeg UnaryOp = iota
	OpPos
	OpFactorial
)

// BinaryOp identifies a binary operation.
type BinaryOp int

// Possible values of BinaryOp.
const (
	OpAdd BinaryOp = iota
	OpSub
	OpMul
	OpDiv
	OpMod
	OpPow
)

var unaryOpSymbols = map[UnaryOp]string{
	OpNeg: "-", OpPos: "+", OpFactorial: "!",
}

var binaryOpSymbols = map[BinaryOp]string{
	OpAdd: "+", OpSub: "-", OpMul: "*", OpDiv: "/", OpMod: "%", OpPow: "^",
}

func (op UnaryOp) String() string  { return unaryOpSymbols[op] }
func (op BinaryOp) String() string { return binaryOpSymbols[op] }

// Errors.
var (
	errEmpty        = newError("empty expression")
	errMissing      = newError("missing operand")
	errUnclosed     = newError("unbalanced parentheses", "')'")
	errUnopened     = newError("unbalanced parentheses, unexpected ')'")
	errShouldBeCall = newError("function needs an argument", "'('")
)

func (ps *parser) parse() Expr {
	if len(ps.tokens) == 0 {
		ps.error(errEmpty)
		return nil
	}
	e := ps.parseExpr()
	if ps.err != nil {
		return nil
	}
	if tok := ps.peek(); tok.Kind != EOF {
		if tok.Kind == RParen {
			ps.error(errUnopened)
		} else {
			ps.error(fmt.Errorf("unexpected %q after expression", tok.Text))
		}
		return nil
	}
	return e
}

func (ps *parser) parseExpr() Expr {
	left := ps.parseTerm()
	for ps.err == nil {
		op, ok := ps.peekBinaryOp(OpAdd, OpSub)
		if !ok {
			break
		}
		ps.next()
		right := ps.parseTerm()
		if ps.err != nil {
			return nil
		}
		left = &Binary{diag.MixedRanging(left, right), op, left, right}
	}
	return left
}

func (ps *parser) parseTerm() Expr {
	left := ps.parsePower()
	for ps.err == nil {
		op, ok := ps.peekBinaryOp(OpMul, OpDiv, OpMod)
		if !ok {
			break
		}
		ps.next()
		right := ps.parsePower()
		if ps.err != nil {
			return nil
		}
		left = &Binary{diag.MixedRanging(left, right), op, left, right}
	}
	return left
}

func (ps *parser) parsePower() Expr {
	base := ps.parseUnary()
	if ps.err != nil {
		return nil
	}
	if _, ok := ps.peekBinaryOp(OpPow); !ok {
		return base
	}
	ps.next()
	exp := ps.parsePower()
	if ps.err != nil {
		return nil
	}
	return &Binary{diag.MixedRanging(base, exp), OpPow, base, exp}
}

func (ps *parser) parseUnary() Expr {
	tok := ps.peek()
	if tok.Kind == Operator && (tok.Text == "-" || tok.Text == "+") {
		ps.next()
		operand := ps.parseUnary()
		if ps.err != nil {
			return nil
		}
		op := OpNeg
		if tok.Text == "+" {
			op = OpPos
		}
		return &Unary{diag.MixedRanging(tok, operand), op, operand}
	}
	return ps.parsePostfix()
}

func (ps *parser) parsePostfix() Expr {
	e := ps.parsePrimary()
	for ps.err == nil {
		tok := ps.peek()
		if tok.Kind != Operator || tok.Text != "!" {
			break
		}
		ps.next()
		e = &Unary{diag.MixedRanging(e, tok), OpFactorial, e}
	}
	return e
}

func (ps *parser) parsePrimary() Expr {
	tok := ps.peek()
	switch tok.Kind {
	case Number:
		ps.next()
		return &Literal{tok.Ranging, tok.Value, tok.Text}
	case Identifier:
		ps.next()
		isCall := ps.peek().Kind == LParen
		switch {
		case IsFunctionName(tok.Text) && !isCall:
			ps.errorp(tok, errShouldBeCall)
			return nil
		case IsConstantName(tok.Text) || !isCall:
			return &Variable{tok.Ranging, tok.Text}
		}
		ps.next()
		arg := ps.parseExpr()
		end := ps.closeParen()
		if ps.err != nil {
			return nil
		}
		return &Call{diag.MixedRanging(tok, end), tok.Text, arg}
	case LParen:
		ps.next()
		e := ps.parseExpr()
		ps.closeParen()
		return e
	default:
		ps.error(errMissing)
	}
	return nil
}

// Consumes a ')' and returns it, or records an error.
func (ps *parser) closeParen() Token {
	if ps.err != nil {
		return Token{}
	}
	tok := ps.peek()
	if tok.Kind != RParen {
		ps.error(errUnclosed)
		return Token{}
	}
	ps.next()
	return tok
}

func (ps *parser) peekBinaryOp(ops ...BinaryOp) (BinaryOp, bool) {
	tok := ps.peek()
	if tok.Kind != Operator {
		return 0, false
	}
	text := tok.Text
	if text == "**" {
		text = "^"
	}
	for _, op := range ops {
		if binaryOpSymbols[op] == text {
			return op, true
		}
	}
	return 0, false
}
