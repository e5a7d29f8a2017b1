package errs

import (
	"errors"
	"fmt"
	"net/http"
)

// External service errors
var (
	ErrStorage       = errors.New("object storage failure")
	ErrDelivery      = errors.New("mail delivery failed")
	ErrConfigMissing = errors.New("configuration missing")
	ErrConfigInvalid = errors.New("configuration invalid")
)

// NewStorageError wraps a blob store failure. The operation name ends up in logs
// only; responders never show details of 5xx errors to the client.
func NewStorageError(operation string, cause error) *ApiErr {
	return &ApiErr{
		StatusCode: http.StatusInternalServerError,
		err:        ErrStorage,
		Details:    fmt.Sprintf("Failed to %s", operation),
		Cause:      cause,
	}
}

func NewDeliveryError(provider string, cause error) *ApiErr {
	return &ApiErr{
		StatusCode: http.StatusInternalServerError,
		err:        ErrDelivery,
		Details:    fmt.Sprintf("%s rejected the message", provider),
		Cause:      cause,
	}
}

func NewConfigError(configName string, cause error) *ApiErr {
	return &ApiErr{
		StatusCode: http.StatusInternalServerError,
		err:        ErrConfigMissing,
		Details:    fmt.Sprintf("Configuration error for %s", configName),
		Cause:      cause,
	}
}

func NewInvalidConfigError(configName, reason string) *ApiErr {
	return &ApiErr{
		StatusCode: http.StatusInternalServerError,
		err:        ErrConfigInvalid,
		Details:    fmt.Sprintf("Invalid value for %s: %s", configName, reason),
		Field:      configName,
	}
}
