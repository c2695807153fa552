package cubeclust

import (
	"errors"
	"fmt"
)

var (
	// ErrNilData is returned when a session is created without input data.
	ErrNilData = errors.New("cubeclust: data must not be nil")

	// ErrInitialPartitionRuns is returned when fixed initial partitions are
	// combined with more than one run. Fixed initials make every run
	// identical, so extra runs only waste work.
	ErrInitialPartitionRuns = errors.New("cubeclust: initial partitions require exactly one run")
)

// ErrInvalidClusterCount indicates a requested cluster count outside the
// valid range [2, axis length].
type ErrInvalidClusterCount struct {
	Axis    string
	Count   int
	AxisLen int
}

func (e *ErrInvalidClusterCount) Error() string {
	return fmt.Sprintf("cubeclust: %s cluster count %d out of range [2, %d]", e.Axis, e.Count, e.AxisLen)
}

// ErrPartitionLength indicates an initial partition whose length does not
// match its axis.
type ErrPartitionLength struct {
	Axis    string
	Got     int
	AxisLen int
}

func (e *ErrPartitionLength) Error() string {
	return fmt.Sprintf("cubeclust: %s initial partition has %d labels, axis has %d elements", e.Axis, e.Got, e.AxisLen)
}

// ErrLabelOutOfRange indicates an initial partition label outside
// [0, cluster count).
type ErrLabelOutOfRange struct {
	Axis  string
	Index int
	Label int
	Count int
}

func (e *ErrLabelOutOfRange) Error() string {
	return fmt.Sprintf("cubeclust: %s initial partition label %d at index %d out of range [0, %d)", e.Axis, e.Label, e.Index, e.Count)
}

// ErrInvalidParameter indicates an option value outside its valid range.
type ErrInvalidParameter struct {
	Name   string
	Value  any
	Reason string
}

func (e *ErrInvalidParameter) Error() string {
	return fmt.Sprintf("cubeclust: invalid %s %v: %s", e.Name, e.Value, e.Reason)
}
