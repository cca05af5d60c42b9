package mongodb

import (
	"errors"

	"go.mongodb.org/mongo-driver/mongo"
)

// set of server error codes raised when a bootstrap resource already exists
const (
	codeNamespaceExists int32 = 48
	codeUserExists      int32 = 51003
)

// IsDuplicateResource reports whether err was raised because
// the user or collection being created already exists
func IsDuplicateResource(err error) bool {
	var cmdErr mongo.CommandError
	if !errors.As(err, &cmdErr) {
		return false
	}
	switch cmdErr.Code {
	case codeUserExists, codeNamespaceExists:
		return true
	}
	return false
}

// IsConnectionFailure reports whether err was raised because
// the server could not be reached
func IsConnectionFailure(err error) bool {
	if err == nil {
		return false
	}
	return errors.Is(err, mongo.ErrClientDisconnected) || mongo.IsNetworkError(err) || mongo.IsTimeout(err)
}
