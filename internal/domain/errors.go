package domain

import (
	"errors"
	"fmt"
)

var (
	// ErrConfig is returned when required configuration is missing
	ErrConfig = errors.New("missing required configuration")

	// ErrWalletNotFound is returned when no wallet provider is available
	ErrWalletNotFound = errors.New("wallet not found")

	// ErrUserRejected is returned when the user declines a wallet prompt
	ErrUserRejected = errors.New("request rejected by user")

	// ErrAlreadyPending is returned when a wallet prompt is already outstanding
	ErrAlreadyPending = errors.New("wallet request already pending")

	// ErrWrongNetwork is returned when the wallet is on another chain than the target
	ErrWrongNetwork = errors.New("wrong network")

	// ErrNotConnected is returned when a state-changing call has no signing handle
	ErrNotConnected = errors.New("wallet not connected")

	// ErrSessionInvalidated is returned when a signing handle outlived its session
	ErrSessionInvalidated = errors.New("session invalidated by account or network change")

	// ErrUploadFailed is returned when pinning a file or document fails
	ErrUploadFailed = errors.New("upload failed")

	// ErrQueryFailed is returned when a contract query fails
	ErrQueryFailed = errors.New("query failed")

	// ErrTransactionFailed is returned when a transaction cannot be submitted or reverts
	ErrTransactionFailed = errors.New("transaction failed")

	// ErrActionInProgress is returned when the same long-running action is already running
	ErrActionInProgress = errors.New("action already in progress")

	// ErrInvalidInput is returned for user input that cannot be acted on
	ErrInvalidInput = errors.New("invalid input")
)

// WrongNetworkError carries the expected and reported chain ids
type WrongNetworkError struct {
	Expected uint64
	Actual   uint64
}

func (e *WrongNetworkError) Error() string {
	return fmt.Sprintf("wrong network: switch to %s (wallet is on %s)", ChainFromID(e.Expected), ChainFromID(e.Actual))
}

func (e *WrongNetworkError) Unwrap() error {
	return ErrWrongNetwork
}
