package serverutils

import "errors"

var (
	ErrNotFound         = errors.New("the requested resource was not found")
	ErrAlreadyExists    = errors.New("a notebook with that name already exists")
	ErrForbidden        = errors.New("this session has not opened that notebook")
	ErrUnauthorized     = errors.New("you are not authorized to access this resource")
	ErrBadRequest       = errors.New("the request could not be processed due to invalid input")
	ErrStore            = errors.New("the notebook store failed to complete the operation")
	ErrStoreUnavailable = errors.New("the notebook store is busy, please retry")
)

// SelectionRoute is where a denied client is sent to pick a notebook again.
const SelectionRoute = "/"
