// Copyright © 2024 The quo authors

package expr

import (
	"fmt"
)

// Error condition symbols produced by this package.  Conditions classify
// errors programmatically; the rendered message is for humans.
const (
	// ConditionUnbound is signaled when evaluation cannot resolve a free name
	// in the primary context, the fallback context, or any of the fallback's
	// ancestors.  Cells[1] of the error value holds the missing symbol.
	ConditionUnbound = "unbound-symbol"
	// ConditionNotCallable is signaled when the name in call position does
	// not resolve to a function.
	ConditionNotCallable = "not-callable"
	// ConditionArity is signaled when a function is applied to the wrong
	// number of arguments.
	ConditionArity = "arity-error"
	// ConditionType is signaled when an operation receives a value of an
	// unsupported type.
	ConditionType = "type-error"
	// ConditionDivideByZero is signaled by / and % with a zero divisor.
	ConditionDivideByZero = "divide-by-zero"
)

// Error returns a TError value representing err.  Errors store their
// message/data in Cells and their condition symbol in Str.
func Error(err error) *Expr {
	return ErrorCondition("error", err)
}

// ErrorCondition returns a TError value representing err and having the given
// condition symbol.
func ErrorCondition(condition string, err error) *Expr {
	return &Expr{
		Source: nativeSource(),
		Type:   TError,
		Str:    condition,
		Cells:  []*Expr{{Type: TInvalid, Native: err, Source: nativeSource()}},
	}
}

// Errorf returns a TError value with a formatted error message.
func Errorf(format string, v ...interface{}) *Expr {
	return ErrorConditionf("error", format, v...)
}

// ErrorConditionf returns a TError value with the given condition symbol and
// a formatted error message.
func ErrorConditionf(condition string, format string, v ...interface{}) *Expr {
	return &Expr{
		Source: nativeSource(),
		Type:   TError,
		Str:    condition,
		Cells:  []*Expr{String(fmt.Sprintf(format, v...))},
	}
}

// unboundSymbol constructs the distinct unresolved-name error, carrying the
// missing identifier as error data.
func unboundSymbol(sym *Expr) *Expr {
	lerr := ErrorConditionf(ConditionUnbound, "unbound symbol: %s", sym.Str)
	lerr.Cells = append(lerr.Cells, Symbol(sym.Str))
	lerr.Source = sym.Source
	return lerr
}

// GoError converts v to an error if v is a TError value.  GoError returns nil
// otherwise.  If the error's data is itself a native Go error that error is
// returned unwrapped.
func GoError(v *Expr) error {
	if v.Type != TError {
		return nil
	}
	if len(v.Cells) > 0 {
		if err, ok := v.Cells[0].Native.(error); ok {
			return err
		}
	}
	return (*ErrorVal)(v)
}

// ErrorVal implements the error interface so that error values can cross into
// Go error handling.  The condition symbol is stored in the Str field while
// the message and data are stored in the Cells slice.
type ErrorVal Expr

// Error implements the error interface.  When the error condition is not
// plain ``error'' it is printed preceding the message.
func (e *ErrorVal) Error() string {
	if e.Source != nil && e.Source.Pos >= 0 {
		return fmt.Sprintf("%s: %s", e.Source, e.baseMessage())
	}
	return e.baseMessage()
}

func (e *ErrorVal) baseMessage() string {
	msg := e.ErrorMessage()
	if e.Str != "error" {
		return fmt.Sprintf("%s: %s", e.Str, msg)
	}
	return msg
}

// Condition returns the error condition symbol (e.g. "unbound-symbol",
// "parse-error").
func (e *ErrorVal) Condition() string {
	return e.Str
}

// ErrorMessage returns the underlying message in the error.  The message is
// Cells[0] alone; any trailing cells are structured error data (for example
// the missing symbol on unbound-symbol errors) and are not part of the
// rendered message.
func (e *ErrorVal) ErrorMessage() string {
	if len(e.Cells) == 0 {
		return ""
	}
	if err, ok := e.Cells[0].Native.(error); ok {
		return err.Error()
	}
	if e.Cells[0].Type == TString {
		return e.Cells[0].Str
	}
	return e.Cells[0].String()
}
