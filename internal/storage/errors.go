package storage

import "errors"

// ErrDuplicateOrder возвращается при попытке сохранить заказ с уже существующим ID
var ErrDuplicateOrder = errors.New("duplicate order")
