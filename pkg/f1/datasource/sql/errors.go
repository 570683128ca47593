package sql

import (
	"errors"
	"fmt"
	"net/http"
)

var (
	// ErrConnectionUnavailable is returned when the database cannot be reached.
	ErrConnectionUnavailable = errors.New("database connection unavailable")
	// ErrQuery marks a failed read query.
	ErrQuery = errors.New("query failed")
	// ErrProcedure marks a failed stored procedure call.
	ErrProcedure = errors.New("procedure failed")
	// ErrMutation marks a failed write statement.
	ErrMutation = errors.New("mutation failed")

	errInvalidProcedureName = errors.New("invalid procedure name")
	errNoProcedures         = errors.New("stored procedures are not supported by sqlite")
)

// Business codes surfaced in the response envelope.
const (
	CodeConnectionUnavailable = 1001
	CodeQuery                 = 1002
	CodeProcedure             = 1003
	CodeMutation              = 1004
)

// ConnectionError wraps the cause of a failed connection attempt.
type ConnectionError struct {
	Cause error
}

func (e *ConnectionError) Error() string {
	return fmt.Sprintf("%v: %v", ErrConnectionUnavailable, e.Cause)
}

func (*ConnectionError) Is(target error) bool { return target == ErrConnectionUnavailable }
func (e *ConnectionError) Unwrap() error      { return e.Cause }
func (*ConnectionError) StatusCode() int      { return http.StatusServiceUnavailable }
func (*ConnectionError) Code() int            { return CodeConnectionUnavailable }

// QueryError is returned by ExecuteQuery.
type QueryError struct {
	Cause error
}

func (e *QueryError) Error() string      { return fmt.Sprintf("%v: %v", ErrQuery, e.Cause) }
func (*QueryError) Is(target error) bool { return target == ErrQuery }
func (e *QueryError) Unwrap() error      { return e.Cause }
func (*QueryError) StatusCode() int      { return http.StatusInternalServerError }
func (*QueryError) Code() int            { return CodeQuery }

// ProcedureError is returned by CallProcedure.
type ProcedureError struct {
	Name  string
	Cause error
}

func (e *ProcedureError) Error() string {
	return fmt.Sprintf("%v: %s: %v", ErrProcedure, e.Name, e.Cause)
}

func (*ProcedureError) Is(target error) bool { return target == ErrProcedure }
func (e *ProcedureError) Unwrap() error      { return e.Cause }
func (*ProcedureError) StatusCode() int      { return http.StatusInternalServerError }
func (*ProcedureError) Code() int            { return CodeProcedure }

// MutationError is returned by ExecuteMutation.
type MutationError struct {
	Cause error
}

func (e *MutationError) Error() string      { return fmt.Sprintf("%v: %v", ErrMutation, e.Cause) }
func (*MutationError) Is(target error) bool { return target == ErrMutation }
func (e *MutationError) Unwrap() error      { return e.Cause }
func (*MutationError) StatusCode() int      { return http.StatusInternalServerError }
func (*MutationError) Code() int            { return CodeMutation }
