// Package errors provides structured error types for better observability
// and programmatic error handling across the application.
//
// Example usage:
//
//	err := errors.WrapWithContext(
//	    errors.ErrCodeUnavailable,
//	    "failed to list clusters",
//	    cause,
//	    map[string]interface{}{
//	        "endpoint": "/api/2.0/clusters/list",
//	        "attempts": attempts,
//	    },
//	)
package errors
