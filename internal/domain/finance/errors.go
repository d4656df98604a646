package finance

import "errors"

var ErrTransactionNotFound = errors.New("financial transaction not found")
