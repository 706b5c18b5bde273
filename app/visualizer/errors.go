package visualizer

import (
	"fmt"
)

// NotFoundError means the requested dataset id is unknown to the store.
type NotFoundError struct {
	DatasetID string
	Err       error
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("file %s not found", e.DatasetID)
}

func (e *NotFoundError) Unwrap() error { return e.Err }

// ValidationError names the parameter that made a request unusable.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid %s: %s", e.Field, e.Message)
}

func invalid(field, format string, args ...any) *ValidationError {
	return &ValidationError{Field: field, Message: fmt.Sprintf(format, args...)}
}

// UnsupportedChartTypeError means no builder is registered for ChartType.
type UnsupportedChartTypeError struct {
	ChartType ChartType
}

func (e *UnsupportedChartTypeError) Error() string {
	return fmt.Sprintf("chart type %q not implemented", string(e.ChartType))
}

// ComputationError is a failure while aggregating or estimating, after the
// request passed validation.
type ComputationError struct {
	ChartType ChartType
	Err       error
}

func (e *ComputationError) Error() string {
	return fmt.Sprintf("error generating %s chart data: %v", e.ChartType, e.Err)
}

func (e *ComputationError) Unwrap() error { return e.Err }
