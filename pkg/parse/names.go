package parse

// Names of functions, which must be called with a parenthesized argument.
var functionNames = map[string]bool{
	"sin": true, "cos": true, "tan": true,
	"asin": true, "acos": true, "atan": true,
	"ln": true, "log": true, "sqrt": true, "√": true, "factorial": true,
}

// Names of constants, which never take an argument.
var constantNames = map[string]bool{
	"pi": true, "π": true, "e": true, "Ans": true,
}

// IsFunctionName returns whether name is the name of a function known to the
// calculator in any mode.
func IsFunctionName(name string) bool { return functionNames[name] }

// IsConstantName returns whether name is the name of a constant known to the
// calculator in any mode. Ans is considered a constant.
func IsConstantName(name string) bool { return constantNames[name] }
