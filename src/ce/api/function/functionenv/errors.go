package functionenv

import (
	"github.com/stormkit-io/fnmanagement/src/lib/errors"
)

// Failure messages
const (
	MessageMalformedInput = "Couldn't retrieve function environment variables; malformed input."
	MessageNoSuchFunction = "Couldn't retrieve function environment variables; no such function."
	MessageInternalError  = "Couldn't retrieve function environment variables; internal error."
)

// FailureMessage maps an error to the message returned to the caller.
func FailureMessage(err error) string {
	switch errors.TypeOf(err) {
	case errors.ErrorTypeValidation:
		return MessageMalformedInput
	case errors.ErrorTypeNotFound:
		return MessageNoSuchFunction
	default:
		return MessageInternalError
	}
}
