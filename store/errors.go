package store

import "errors"

var (
	// ErrNegativeQuantity возвращается, когда корректировка увела бы остаток ниже нуля
	ErrNegativeQuantity = errors.New("stock quantity cannot be negative")
)
