package service

import "errors"

var (
	ErrInvalidRequest = errors.New("invalid request")
	ErrInvalidAmount  = errors.New("invalid amount")
	ErrOrderNotFound  = errors.New("order not found")
	ErrDuplicateUTR   = errors.New("this UTR has already been used")
	ErrStorage        = errors.New("storage failure")
)
