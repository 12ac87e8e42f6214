package entities

import "errors"

// ErrPaymentGateway covers any gateway outcome that did not produce a
// usable payment session: transport failure, non-2xx, missing token.
var ErrPaymentGateway = errors.New("payment gateway failure")
