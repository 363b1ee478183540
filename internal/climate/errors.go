package climate

import "errors"

// ErrInsufficientData is returned when a regression is requested with fewer
// than three annual data points, or when the residual standard error
// denominator (n-2) would be non-positive. Baseline and aggregate functions
// deliberately do NOT return it: on empty input they yield zero/empty values,
// which callers must check for themselves.
var ErrInsufficientData = errors.New("insufficient data for regression")
