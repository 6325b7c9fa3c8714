// Package errs declares the error types that can be the reason of an
// evaluation exception.
package errs

import "fmt"

// DivideByZero encapsulates information about an operation whose divisor
// evaluated to zero.
type DivideByZero struct {
	What string
}

// Error implements the error interface.
func (e DivideByZero) Error() string {
	return fmt.Sprintf("divide by zero: %s is 0", e.What)
}

// Domain encapsulates information about an operand outside the domain of an
// operation, or an operation whose result can not be represented.
type Domain struct {
	What   string
	Valid  string
	Actual string
}

// Error implements the error interface.
func (e Domain) Error() string {
	return fmt.Sprintf("domain error: %s must be %s, but is %s", e.What, e.Valid, e.Actual)
}

// UndefinedName encapsulates information about a name that is not defined in
// the active symbol table.
type UndefinedName struct {
	Name string
	// Optional.
	Reason string
}

// Error implements the error interface.
func (e UndefinedName) Error() string {
	if e.Reason == "" {
		return "undefined name: " + e.Name
	}
	return fmt.Sprintf("undefined name: %s: %s", e.Name, e.Reason)
}
