package services

import "errors"

var (
	ErrOrderNotFound     = errors.New("order not found")
	ErrRecordNotFound    = errors.New("record not found")
	ErrUnauthorized      = errors.New("unauthorized")
	ErrSignatureMismatch = errors.New("payment signature mismatch")
	ErrEmptyCart         = errors.New("cart is empty")
	ErrCheckoutNotFound  = errors.New("checkout not found or expired")
	ErrPaymentsDisabled  = errors.New("online payments are not configured")
	ErrPaymentRecorded   = errors.New("payment already recorded on another order")
)
