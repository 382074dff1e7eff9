package library

import "errors"

var (
	ErrBookNotFound       = errors.New("book not found")
	ErrDepartmentNotFound = errors.New("department not found")
	ErrAlreadyBorrowed    = errors.New("book is already borrowed")
	ErrNotBorrowed        = errors.New("member did not borrow this book")
)
