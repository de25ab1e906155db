package storage

import "errors"

var (
	ErrGiftNotFound      = errors.New("gift not found")
	ErrGiftAlreadyOpened = errors.New("gift already opened")
)

var (
	ErrInvalidPath = errors.New("invalid storage path")
)
