package tron

import (
	"errors"
	"fmt"
)

// Sentinel errors for common failure conditions.
var (
	// ErrNoAddress indicates the contract handle has no address bound.
	ErrNoAddress = errors.New("tron: contract is missing an address")

	// ErrNotLoaded indicates the contract ABI was never loaded.
	ErrNotLoaded = errors.New("tron: contract must be loaded before use")

	// ErrNotFunction indicates a call or send on an event entry.
	ErrNotFunction = errors.New("tron: ABI entry is not a function")

	// ErrNotEvent indicates a watch on a function entry.
	ErrNotEvent = errors.New("tron: ABI entry is not an event")

	// ErrNoPrivateKey indicates no signing key was provided and the client
	// has no default.
	ErrNoPrivateKey = errors.New("tron: no private key available for signing")

	// ErrInvalidPrivateKey indicates the private key is not 32 bytes of hex.
	ErrInvalidPrivateKey = errors.New("tron: invalid private key (expected 64 hex chars)")

	// ErrNoEventServer indicates the client has no event server configured.
	ErrNoEventServer = errors.New("tron: no event server configured")

	// ErrNoConstantResult indicates a constant call response without a
	// constant_result field.
	ErrNoConstantResult = errors.New("tron: failed to execute: response has no constant result")

	// ErrReceiptNotFound indicates the transaction receipt never appeared
	// within the polling window.
	ErrReceiptNotFound = errors.New("tron: cannot find transaction receipt")
)

// MethodNotFoundError indicates the contract ABI doesn't have the requested entry.
type MethodNotFoundError struct {
	Contract Address
	Method   string
}

func (e *MethodNotFoundError) Error() string {
	return fmt.Sprintf("tron: method %q not found in contract %s", e.Method, e.Contract)
}

// ArgumentCountError indicates the argument count doesn't match the method's
// parameter list.
type ArgumentCountError struct {
	Method string
	Want   int
	Got    int
}

func (e *ArgumentCountError) Error() string {
	return fmt.Sprintf("tron: method %q expects %d argument(s), got %d", e.Method, e.Want, e.Got)
}

// ArgumentError indicates an issue with a single method argument.
type ArgumentError struct {
	Method string
	Index  int
	Err    error
}

func (e *ArgumentError) Error() string {
	return fmt.Sprintf("tron: argument %d for method %q: %v", e.Index, e.Method, e.Err)
}

func (e *ArgumentError) Unwrap() error {
	return e.Err
}

// TypeMismatchError indicates a value's type doesn't match the expected
// parameter type.
type TypeMismatchError struct {
	Expected string
	Got      string
}

func (e *TypeMismatchError) Error() string {
	return fmt.Sprintf("tron: type mismatch: expected %s, got %s", e.Expected, e.Got)
}

// MutabilityError indicates the wrong invocation path for the method's state
// mutability: Call requires pure or view, Send requires anything else.
type MutabilityError struct {
	Method     string
	Mutability string
	WantConst  bool
}

func (e *MutabilityError) Error() string {
	if e.WantConst {
		return fmt.Sprintf("tron: method %q with state mutability %q must use Call", e.Method, e.Mutability)
	}
	return fmt.Sprintf("tron: method %q with state mutability %q must use Send", e.Method, e.Mutability)
}

// DecodeError indicates a failure decoding a contract result or event payload.
type DecodeError struct {
	Method string
	Err    error
}

func (e *DecodeError) Error() string {
	return fmt.Sprintf("tron: decoding result of %q: %v", e.Method, e.Err)
}

func (e *DecodeError) Unwrap() error {
	return e.Err
}

// RevertError indicates the contract execution reverted. Reason holds the
// message embedded in the revert payload, if any.
type RevertError struct {
	Reason string
}

func (e *RevertError) Error() string {
	if e.Reason == "" {
		return "tron: execution reverted"
	}
	return fmt.Sprintf("tron: execution reverted: %s", e.Reason)
}

// TransactionError indicates the node rejected a transaction at build or
// broadcast. Raw carries the serialized node response for diagnostics.
type TransactionError struct {
	Stage   string // "build" or "broadcast"
	Code    string
	Message string
	Raw     []byte
}

func (e *TransactionError) Error() string {
	if e.Message != "" {
		return fmt.Sprintf("tron: %s failed: %s", e.Stage, e.Message)
	}
	if e.Code != "" {
		return fmt.Sprintf("tron: %s failed with code %s", e.Stage, e.Code)
	}
	return fmt.Sprintf("tron: %s failed: %s", e.Stage, e.Raw)
}

// ReceiptError indicates the transaction landed on chain but its receipt
// reports failure or lacks a contract result. Info is the raw receipt and
// Transaction the signed transaction that produced it.
type ReceiptError struct {
	TxID        string
	Reason      string
	Info        *TransactionInfo
	Transaction *Transaction
}

func (e *ReceiptError) Error() string {
	if e.Reason != "" {
		return fmt.Sprintf("tron: transaction %s failed: %s", e.TxID, e.Reason)
	}
	return fmt.Sprintf("tron: transaction %s failed", e.TxID)
}

// ReceiptTimeoutError indicates the receipt did not appear within the polling
// window. The signed transaction is carried so callers can rebroadcast or
// inspect it.
type ReceiptTimeoutError struct {
	TxID        string
	Attempts    int
	Transaction *Transaction
}

func (e *ReceiptTimeoutError) Error() string {
	return fmt.Sprintf("tron: cannot find receipt for transaction %s after %d attempts", e.TxID, e.Attempts)
}

func (e *ReceiptTimeoutError) Unwrap() error {
	return ErrReceiptNotFound
}

// TransportError indicates an HTTP-level failure talking to the node or the
// event server.
type TransportError struct {
	Endpoint string
	Status   int
	Body     []byte
	Err      error
}

func (e *TransportError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("tron: request to %s failed: %v", e.Endpoint, e.Err)
	}
	return fmt.Sprintf("tron: request to %s returned status %d: %s", e.Endpoint, e.Status, e.Body)
}

func (e *TransportError) Unwrap() error {
	return e.Err
}

// ContractNotFoundError indicates the node has no contract deployed at the
// address.
type ContractNotFoundError struct {
	Address Address
}

func (e *ContractNotFoundError) Error() string {
	return fmt.Sprintf("tron: no contract found at %s", e.Address)
}

// InvalidAddressError indicates a textual address that failed to parse.
type InvalidAddressError struct {
	Input  string
	Reason string
}

func (e *InvalidAddressError) Error() string {
	return fmt.Sprintf("tron: invalid address %q: %s", e.Input, e.Reason)
}
