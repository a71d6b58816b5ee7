package eval

import (
	"fmt"
	"strings"

	"github.com/cwbudde/hollow/internal/ast"
)

// ErrorKind is a closed taxonomy of evaluation failures, named and
// worded after jrsonnet's error.rs so that embedders see familiar,
// specific diagnostics instead of opaque wrapped Go errors.
type ErrorKind uint8

const (
	RuntimeError ErrorKind = iota
	ParseError
	IntrinsicNotFound
	IntrinsicArgumentDoesNotExist
	UndefinedVariable
	UnknownVariable
	FieldNotFound
	NoSuchField
	NoTopLevelObjectFound
	TooManyArgsFunctionHas
	TooManyArgsFunctionHasNoParams
	UnknownFunctionParameter
	BindingParameterASecondTime
	FunctionParameterNotBoundInCall
	ImportCallbackError
	ImportCallbackBinaryWithTraceError
	ResolvedToMultipleObjects
	InvalidImportExprLocation
	VariableIsNotDefined
	AssertionFailed
	ExplicitError
	ArrayBoundsError
	ValueIndexError
	CantIndexInto
	FieldMustBeStringIn
	AttemptedIndexAnObjectWithString
	ValueIsNotIndexable
	CantIndexAnObjectWithNumber
	DivisionByZero
	TypeMismatch
	NoTopLevelArgsAllowed
	StackOverflow
	InfiniteRecursionDetected
	ImportSyntaxError
	ImportIoError
	ImportNotSupported
	RuntimeErrorFormat
	FormatError
	InvalidUnicodeCodepointGot
	BinaryOperatorDoesNotOperateOnValues
	UnaryOperatorDoesNotOperateOnValue
	CantNegativeIndex
	IncorrectUserFormatTarget
	DuplicateLocalVar
	DuplicateFieldName
)

var kindNames = map[ErrorKind]string{
	RuntimeError:                          "RuntimeError",
	ParseError:                            "ParseError",
	IntrinsicNotFound:                     "IntrinsicNotFound",
	IntrinsicArgumentDoesNotExist:         "IntrinsicArgumentDoesNotExist",
	UndefinedVariable:                     "UndefinedVariable",
	UnknownVariable:                       "UnknownVariable",
	FieldNotFound:                         "FieldNotFound",
	NoSuchField:                           "NoSuchField",
	NoTopLevelObjectFound:                 "NoTopLevelObjectFound",
	TooManyArgsFunctionHas:                "TooManyArgsFunctionHas",
	TooManyArgsFunctionHasNoParams:        "TooManyArgsFunctionHasNoParams",
	UnknownFunctionParameter:              "UnknownFunctionParameter",
	BindingParameterASecondTime:           "BindingParameterASecondTime",
	FunctionParameterNotBoundInCall:       "FunctionParameterNotBoundInCall",
	ImportCallbackError:                   "ImportCallbackError",
	ImportCallbackBinaryWithTraceError:    "ImportCallbackBinaryWithTraceError",
	ResolvedToMultipleObjects:             "ResolvedToMultipleObjects",
	InvalidImportExprLocation:             "InvalidImportExprLocation",
	VariableIsNotDefined:                  "VariableIsNotDefined",
	AssertionFailed:                       "AssertionFailed",
	ExplicitError:                         "ExplicitError",
	ArrayBoundsError:                      "ArrayBoundsError",
	ValueIndexError:                       "ValueIndexError",
	CantIndexInto:                         "CantIndexInto",
	FieldMustBeStringIn:                   "FieldMustBeStringIn",
	AttemptedIndexAnObjectWithString:      "AttemptedIndexAnObjectWithString",
	ValueIsNotIndexable:                   "ValueIsNotIndexable",
	CantIndexAnObjectWithNumber:           "CantIndexAnObjectWithNumber",
	DivisionByZero:                        "DivisionByZero",
	TypeMismatch:                          "TypeMismatch",
	NoTopLevelArgsAllowed:                 "NoTopLevelArgsAllowed",
	StackOverflow:                         "StackOverflow",
	InfiniteRecursionDetected:             "InfiniteRecursionDetected",
	ImportSyntaxError:                     "ImportSyntaxError",
	ImportIoError:                         "ImportIoError",
	ImportNotSupported:                    "ImportNotSupported",
	RuntimeErrorFormat:                    "RuntimeError",
	FormatError:                           "FormatError",
	InvalidUnicodeCodepointGot:            "InvalidUnicodeCodepointGot",
	BinaryOperatorDoesNotOperateOnValues:  "BinaryOperatorDoesNotOperateOnValues",
	UnaryOperatorDoesNotOperateOnValue:    "UnaryOperatorDoesNotOperateOnValue",
	CantNegativeIndex:                     "CantNegativeIndex",
	IncorrectUserFormatTarget:             "IncorrectUserFormatTarget",
	DuplicateLocalVar:                     "DuplicateLocalVar",
	DuplicateFieldName:                    "DuplicateFieldName",
}

// StackFrame names one call/field/import activation on the trace.
type StackFrame struct {
	Name string
	Loc  *ast.Location
}

func (f StackFrame) String() string {
	if f.Loc == nil || f.Loc.Source == nil {
		return f.Name
	}
	return fmt.Sprintf("%s (%s:%d:%d)", f.Name, f.Loc.Source.Name, f.Loc.Start.Line, f.Loc.Start.Column)
}

// Error is the single concrete error type returned by every evaluation
// entry point. Kind discriminates the taxonomy; Trace is the call
// stack captured at the point the error was raised, innermost frame
// first.
type Error struct {
	Kind    ErrorKind
	Message string
	Trace   []StackFrame
}

func (e *Error) Error() string {
	var sb strings.Builder
	sb.WriteString(e.Message)
	for _, f := range e.Trace {
		sb.WriteString("\n\tat ")
		sb.WriteString(f.String())
	}
	return sb.String()
}

func newErr(kind ErrorKind, format string, args ...interface{}) *Error {
	return &Error{Kind: kind, Message: fmt.Sprintf(format, args...)}
}

// WithFrame returns a copy of e with frame appended to its trace,
// building the trace outward as the error propagates up through call
// sites (spec §4.8).
func (e *Error) WithFrame(frame StackFrame) *Error {
	trace := make([]StackFrame, 0, len(e.Trace)+1)
	trace = append(trace, e.Trace...)
	trace = append(trace, frame)
	return &Error{Kind: e.Kind, Message: e.Message, Trace: trace}
}

func (k ErrorKind) String() string {
	if s, ok := kindNames[k]; ok {
		return s
	}
	return "RuntimeError"
}
