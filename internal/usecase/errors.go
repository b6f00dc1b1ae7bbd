package usecase

import "github.com/pkg/errors"

// ErrDeliveryFailed marks a notification that may succeed on retry.
var ErrDeliveryFailed = errors.New("notification delivery failed")
