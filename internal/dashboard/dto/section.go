package dto

// Status classifies the outcome of a single provider fetch.
type Status string

const (
	// StatusOK means the provider answered with usable data.
	StatusOK Status = "ok"
	// StatusEmpty means the provider answered correctly but had nothing to report.
	StatusEmpty Status = "empty"
	// StatusMalformed means the response did not match the documented shape.
	StatusMalformed Status = "malformed"
	// StatusUnavailable means the request never produced a response (network, timeout, 5xx).
	StatusUnavailable Status = "unavailable"
	// StatusRejected means the provider refused the request (quota, auth).
	StatusRejected Status = "rejected"
)

// Section is the result of one dashboard fetch. Data is only meaningful when
// Status is StatusOK; every other status carries display text in Message.
type Section[T any] struct {
	Status  Status `json:"status"`
	Data    T      `json:"data,omitempty"`
	Message string `json:"message,omitempty"`
}

// OK builds a successful section.
func OK[T any](data T) Section[T] {
	return Section[T]{Status: StatusOK, Data: data}
}

// Empty builds a section for a valid but empty provider answer.
func Empty[T any](message string) Section[T] {
	return Section[T]{Status: StatusEmpty, Message: message}
}

// Failed builds a degraded section.
func Failed[T any](status Status, message string) Section[T] {
	return Section[T]{Status: status, Message: message}
}

// Degraded reports whether the section failed, as opposed to being ok or empty.
func (s Section[T]) Degraded() bool {
	return s.Status != StatusOK && s.Status != StatusEmpty
}

// Cacheable reports whether the section may be stored; failures never are.
func (s Section[T]) Cacheable() bool {
	return !s.Degraded()
}
