package orders

import "errors"

var (
	ErrUnauthorized    = errors.New("unauthorized")
	ErrForbidden       = errors.New("admin access required")
	ErrProductNotFound = errors.New("product not found")
	ErrInvalidQuantity = errors.New("quantity must be a positive integer")
	ErrGateway         = errors.New("payment gateway request failed")
)
