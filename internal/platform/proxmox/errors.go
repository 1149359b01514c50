package proxmox

import (
	"errors"
	"fmt"
	"strings"
)

// APIError is a non-2xx response from the Proxmox VE API.
type APIError struct {
	StatusCode int
	Status     string
	Message    string
}

func (e *APIError) Error() string {
	if e.Message != "" {
		return fmt.Sprintf("proxmox api: %s: %s", e.Status, e.Message)
	}
	return fmt.Sprintf("proxmox api: %s", e.Status)
}

// isAPIStatus checks if the error is a Proxmox API error with one of the
// given HTTP status codes.
func isAPIStatus(err error, codes ...int) bool {
	if err == nil {
		return false
	}

	var apiErr *APIError
	if errors.As(err, &apiErr) {
		for _, code := range codes {
			if apiErr.StatusCode == code {
				return true
			}
		}
	}
	return false
}

// isInvalidParameter checks if an error indicates a request the API will
// never accept. These errors are fatal and should not be retried.
func isInvalidParameter(err error) bool {
	return isAPIStatus(err, 400, 401, 403, 404)
}

// isAlreadyTaken checks if an error says the given instance id is already
// in use. A creation request that timed out client-side but landed on the
// node produces this when a retry layer repeats the POST.
func isAlreadyTaken(err error, id int) bool {
	var apiErr *APIError
	if !errors.As(err, &apiErr) {
		return false
	}
	msg := strings.ToLower(apiErr.Message)
	return strings.Contains(msg, fmt.Sprintf("ct %d already exists", id)) ||
		strings.Contains(msg, fmt.Sprintf("vm %d already exists", id)) ||
		strings.Contains(msg, "config file already exists")
}

// IsNotFound checks if an error indicates a resource was not found. The API
// reports missing guests either as 404 or as 500 with a "does not exist"
// message, depending on the endpoint.
func IsNotFound(err error) bool {
	if isAPIStatus(err, 404) {
		return true
	}
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		return strings.Contains(apiErr.Message, "does not exist")
	}
	return false
}
