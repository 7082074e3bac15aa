package models

import (
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
)

var (
	ErrNotFound        = errors.New("not found")
	ErrConflict        = errors.New("conflict")
	ErrInvalidArgument = errors.New("invalid arguments")

	// ErrMediaRequired is returned by the encode-status operations when
	// the media slot has never been populated.
	ErrMediaRequired = errors.New("media should not be null")
)

// RelatedAggregateError reports relation ids that were supplied by the
// caller but do not exist in the record store. IDs keep input order.
type RelatedAggregateError struct {
	Aggregate string
	IDs       []uuid.UUID
}

func (e *RelatedAggregateError) Error() string {
	ids := make([]string, len(e.IDs))
	for i, id := range e.IDs {
		ids[i] = id.String()
	}
	return fmt.Sprintf("related %s id (or ids) not found: %s", e.Aggregate, strings.Join(ids, ","))
}
