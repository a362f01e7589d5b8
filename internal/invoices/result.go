package invoices

import "procure/internal/api"

// genericFailure is surfaced when the backend gave no usable error
// string (network failure, malformed response).
const genericFailure = "Failed to communicate with the procurement service"

// Result is the uniform outcome of every service call: a success
// variant carrying data, or a failure variant carrying the error
// message to display. Service methods never return a Go error and
// never panic; callers branch on Success.
type Result[T any] struct {
	Success bool   `json:"success"`
	Data    T      `json:"data"`
	Error   string `json:"error,omitempty"`
}

func ok[T any](data T) Result[T] {
	return Result[T]{Success: true, Data: data}
}

func fail[T any](err error) Result[T] {
	message := api.ServerMessage(err)
	if message == "" {
		message = genericFailure
	}
	return Result[T]{Success: false, Error: message}
}
