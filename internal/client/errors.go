package client

import "errors"

var (
	// ErrResolve - the server host could not be resolved.
	ErrResolve = errors.New("client: cannot resolve server host")

	// ErrConnect - the server refused or dropped the connection attempt.
	ErrConnect = errors.New("client: cannot connect to server")
)
