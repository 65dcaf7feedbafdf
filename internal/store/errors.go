package store

import "errors"

var (
	// ErrNotFound is returned when an update targets an id that is not in
	// the collection.
	ErrNotFound = errors.New("store: record not found")
	// ErrInvalidCredentials is returned by Login for an unknown or inactive
	// username. Callers surface it as a single generic message.
	ErrInvalidCredentials = errors.New("store: wrong credentials")
	// ErrNoSession is returned when a session operation runs with nobody
	// logged in.
	ErrNoSession = errors.New("store: no active session")
)
