package domain

import (
	"errors"
	"fmt"
)

// Tipos de erro do pipeline do dashboard
var (
	ErrSourceUnavailable = errors.New("source unavailable")
	ErrParse             = errors.New("parse error")
	ErrData              = errors.New("data error")
)

// PipelineError é um erro do pipeline com contexto adicional
type PipelineError struct {
	Err     error  // Tipo do erro (ErrSourceUnavailable, ErrParse, ErrData)
	Cause   error  // Erro original, quando houver
	Details string // Detalhes adicionais
}

// Error implementa a interface error
func (e *PipelineError) Error() string {
	msg := e.Err.Error()
	if e.Details != "" {
		msg = fmt.Sprintf("%s: %s", msg, e.Details)
	}
	if e.Cause != nil {
		msg = fmt.Sprintf("%s: %v", msg, e.Cause)
	}
	return msg
}

// Unwrap permite errors.Is tanto para o tipo quanto para a causa
func (e *PipelineError) Unwrap() []error {
	if e.Cause == nil {
		return []error{e.Err}
	}
	return []error{e.Err, e.Cause}
}

func NewSourceUnavailableError(cause error, details string) *PipelineError {
	return &PipelineError{Err: ErrSourceUnavailable, Cause: cause, Details: details}
}

func NewParseError(cause error, details string) *PipelineError {
	return &PipelineError{Err: ErrParse, Cause: cause, Details: details}
}

func NewDataError(cause error, details string) *PipelineError {
	return &PipelineError{Err: ErrData, Cause: cause, Details: details}
}
