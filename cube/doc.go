// Package cube holds the dense numeric array types consumed by the
// clustering algorithms: Matrix (rank 2) and Cube (rank 3).
//
// Both types store their values in a single row-major []float64. They are
// created once by the caller and treated as read-only by every optimizer run,
// so a single array can back any number of concurrent runs.
package cube
