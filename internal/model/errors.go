// Package model provides the record types shared by every gridlex component.
package model

import "errors"

// Error types for gridlex operations
var (
	ErrRecordNotFound   = errors.New("record not found")
	ErrConfigNotFound   = errors.New("view config not found")
	ErrUnknownTableType = errors.New("unknown table type")
	ErrUnknownViewType  = errors.New("unknown view type")
	ErrUnknownOperator  = errors.New("unknown filter operator")
	ErrUnknownField     = errors.New("unknown field")
	ErrReadOnlyField    = errors.New("read-only field")
	ErrInvalidValue     = errors.New("invalid field value")
	ErrInvalidID        = errors.New("invalid record ID")
)
