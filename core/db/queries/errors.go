package queries

import "errors"

// ErrCardNotFound is returned when an update targets a card id that does
// not exist, e.g. a race between ActiveCards and a concurrent deletion.
// The card's status is not checked.
var ErrCardNotFound = errors.New("queries: card not found")
