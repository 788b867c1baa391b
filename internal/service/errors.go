package service

import "errors"

var (
	// ErrRepositoryNil is returned by New when no repository is given.
	ErrRepositoryNil = errors.New("task repository is nil")
)
