package domain

import "errors"

var ErrNoHistory = errors.New("no historical snapshots for currency")
