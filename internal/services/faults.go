package services

import "errors"

type FaultKind string

const (
	FaultUnauthorized FaultKind = "unauthorized"
	FaultValidation   FaultKind = "validation_error"
	FaultNotFound     FaultKind = "not_found"
	FaultUpstream     FaultKind = "upstream_failure"
)

// Fault is the structured error every operation surfaces: a stable
// machine-readable kind plus a human-readable message.
type Fault struct {
	Kind    FaultKind
	Message string
	Err     error
}

func (fault *Fault) Error() string {
	if fault.Err != nil {
		return fault.Message + ": " + fault.Err.Error()
	}
	return fault.Message
}

func (fault *Fault) Unwrap() error {
	return fault.Err
}

func ValidationFault(message string) *Fault {
	return &Fault{Kind: FaultValidation, Message: message}
}

func NotFoundFault(message string) *Fault {
	return &Fault{Kind: FaultNotFound, Message: message}
}

func UnauthorizedFault(message string) *Fault {
	return &Fault{Kind: FaultUnauthorized, Message: message}
}

func UpstreamFault(message string, err error) *Fault {
	return &Fault{Kind: FaultUpstream, Message: message, Err: err}
}

// KindOf classifies any error for transport mapping. Non-fault errors are
// treated as upstream failures.
func KindOf(err error) FaultKind {
	var fault *Fault
	if errors.As(err, &fault) {
		return fault.Kind
	}
	return FaultUpstream
}

// MessageOf returns the human-readable half of a fault, or a generic
// message for unclassified errors.
func MessageOf(err error) string {
	var fault *Fault
	if errors.As(err, &fault) {
		return fault.Message
	}
	return "internal error"
}
