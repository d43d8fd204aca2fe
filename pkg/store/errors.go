package store

import "errors"

var (
	ErrUnknownDriver     = errors.New("unknown store driver")
	ErrInvalidConfig     = errors.New("invalid store configuration")
	ErrConnectFailed     = errors.New("failed to connect to store")
	ErrHealthcheckFailed = errors.New("store healthcheck failed")
	ErrStoreFailed       = errors.New("failed to store payload")
	ErrMigrationFailed   = errors.New("failed to apply migrations")
	ErrStoreClosed       = errors.New("store is closed")

	// S3 error classes
	ErrBucketNotFound     = errors.New("bucket not found")
	ErrAccessDenied       = errors.New("access denied")
	ErrServiceUnavailable = errors.New("service temporarily unavailable")
	ErrOperationTimeout   = errors.New("operation timed out")
	ErrOperationCanceled  = errors.New("operation canceled")
)
