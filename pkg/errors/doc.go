// Package errors provides structured error types for better observability
// and programmatic error handling across the application.
//
// The resolution pipeline distinguishes structural errors (unknown field,
// type mismatch) that abort a resolution from semantic violations that are
// collected and returned as data by the validator.
//
// Example usage:
//
//	err := errors.NewWithContext(
//	    errors.ErrCodeUnknownField,
//	    "patch references field not in schema",
//	    map[string]interface{}{
//	        "field": "autoscaling.maxRepliccas",
//	        "patch": patchName,
//	    },
//	)
package errors
