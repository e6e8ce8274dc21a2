package apperr

import (
	"database/sql"
	"errors"
	"fmt"
)

var ErrNotFound = errors.New("not found")

// ValidationError is bad caller input. It is reported as-is and never retried.
type ValidationError struct {
	Field   string `json:"field,omitempty"`
	Message string `json:"message"`
}

func (e *ValidationError) Error() string {
	if e.Field == "" {
		return e.Message
	}
	return e.Field + ": " + e.Message
}

func Invalid(field, message string) error {
	return &ValidationError{Field: field, Message: message}
}

// InsufficientStockError aborts the enclosing transaction.
type InsufficientStockError struct {
	ProductID int    `json:"product_id"`
	Branch    string `json:"branch"`
	Available int    `json:"available"`
	Requested int    `json:"requested"`
}

func (e *InsufficientStockError) Error() string {
	return fmt.Sprintf("insufficient stock for product %d in %s branch: available %d, requested %d",
		e.ProductID, e.Branch, e.Available, e.Requested)
}

type ReferentialIntegrityError struct {
	Entity string `json:"entity"`
	ID     int    `json:"id"`
}

func (e *ReferentialIntegrityError) Error() string {
	return fmt.Sprintf("cannot delete %s %d: it is referenced by other records", e.Entity, e.ID)
}

// DataAccessError wraps a driver or connectivity failure.
type DataAccessError struct {
	Op  string
	Err error
}

func (e *DataAccessError) Error() string {
	return e.Op + ": " + e.Err.Error()
}

func (e *DataAccessError) Unwrap() error {
	return e.Err
}

// Wrap classifies a repository error. sql.ErrNoRows becomes ErrNotFound, errors already
// classified pass through unchanged and everything else becomes a DataAccessError.
func Wrap(op string, err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, sql.ErrNoRows) || errors.Is(err, ErrNotFound) {
		return ErrNotFound
	}
	var (
		ve *ValidationError
		se *InsufficientStockError
		re *ReferentialIntegrityError
		de *DataAccessError
	)
	if errors.As(err, &ve) || errors.As(err, &se) || errors.As(err, &re) || errors.As(err, &de) {
		return err
	}
	return &DataAccessError{Op: op, Err: err}
}

func IsValidation(err error) bool {
	var ve *ValidationError
	return errors.As(err, &ve)
}

func IsInsufficientStock(err error) bool {
	var se *InsufficientStockError
	return errors.As(err, &se)
}

func IsReferentialIntegrity(err error) bool {
	var re *ReferentialIntegrityError
	return errors.As(err, &re)
}
