package client

import "errors"

var (
	ErrUnavailable   = errors.New("server unavailable")
	ErrUnauthorized  = errors.New("unauthorized")
	ErrNotFound      = errors.New("not found")
	ErrAlreadyExists = errors.New("already exists")
	ErrInvalidInput  = errors.New("invalid input")
	ErrTooLarge      = errors.New("file too large")
	ErrRootFolder    = errors.New("root folder cannot be modified")
	ErrDataLoss      = errors.New("file content is missing on the server")
)
