package layer

import (
	"errors"
	"fmt"
	"strings"

	pkgerrors "github.com/pkg/errors"
)

var (
	ErrMissingRequiredInputs = errors.New("missing required inputs")
	ErrUnexpectedInputs      = errors.New("undeclared inputs")
	ErrNotImplemented        = errors.New("invoke not implemented")
	ErrUndeclaredInput       = errors.New("undeclared input")
	ErrMethodNotFound        = errors.New("method not found")
	ErrCallbackNotFound      = errors.New("callback not found")
)

// MissingRequiredInputsError é retornado por New quando entradas obrigatórias não foram informadas.
type MissingRequiredInputsError struct {
	Layer   string
	Missing []string
}

func (e *MissingRequiredInputsError) Error() string {
	return "Missing required inputs: " + strings.Join(e.Missing, ", ")
}

func (e *MissingRequiredInputsError) Is(target error) bool {
	return target == ErrMissingRequiredInputs
}

// UnexpectedInputsError é retornado por New quando entradas não declaradas foram informadas.
type UnexpectedInputsError struct {
	Layer string
	Extra []string
}

func (e *UnexpectedInputsError) Error() string {
	return "Undeclared inputs: " + strings.Join(e.Extra, ", ")
}

func (e *UnexpectedInputsError) Is(target error) bool {
	return target == ErrUnexpectedInputs
}

type MethodNotFoundError struct {
	Layer  string
	Method string
}

func (e *MethodNotFoundError) Error() string {
	return fmt.Sprintf("%s: method %q not found", e.Layer, e.Method)
}

func (e *MethodNotFoundError) Is(target error) bool {
	return target == ErrMethodNotFound
}

type CallbackNotFoundError struct {
	Callback string
}

func (e *CallbackNotFoundError) Error() string {
	return fmt.Sprintf("callback %q not found", e.Callback)
}

func (e *CallbackNotFoundError) Is(target error) bool {
	return target == ErrCallbackNotFound
}

// PanicError guarda o valor recuperado de um observer que entrou em pânico.
type PanicError struct {
	Value any
	Stack []byte
}

func (e *PanicError) Error() string {
	if err, ok := e.Value.(error); ok {
		return err.Error()
	}
	return fmt.Sprint(e.Value)
}

func (e *PanicError) Unwrap() error {
	err, _ := e.Value.(error)
	return err
}

type stackTracer interface {
	StackTrace() pkgerrors.StackTrace
}

// errorTrace retorna o stack trace carregado por err, se houver.
func errorTrace(err error) (string, bool) {
	var panicErr *PanicError
	if errors.As(err, &panicErr) && len(panicErr.Stack) > 0 {
		return string(panicErr.Stack), true
	}

	var tracer stackTracer
	if errors.As(err, &tracer) {
		return strings.TrimSpace(fmt.Sprintf("%+v", tracer.StackTrace())), true
	}
	return "", false
}
