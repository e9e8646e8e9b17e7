package service

import "fmt"

// StoreError is the single failure kind the core surfaces for state-store
// trouble. It is never recovered from locally: no retry, no fallback
// cache. The transport layer maps it to a server-side failure response.
type StoreError struct {
	Op  string
	Err error
}

func (e *StoreError) Error() string {
	return fmt.Sprintf("store: %s: %v", e.Op, e.Err)
}

func (e *StoreError) Unwrap() error { return e.Err }

// storeErr wraps a repository failure, passing nil through untouched.
func storeErr(op string, err error) error {
	if err == nil {
		return nil
	}
	return &StoreError{Op: op, Err: err}
}
