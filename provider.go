package tron

import "context"

// Caller is the node surface the query path consumes.
type Caller interface {
	TriggerConstantContract(ctx context.Context, req *TriggerRequest) (*TriggerResponse, error)
}

// Sender is the node surface the mutation path consumes.
type Sender interface {
	TriggerSmartContract(ctx context.Context, req *TriggerRequest) (*TriggerResponse, error)
	BroadcastTransaction(ctx context.Context, tx *Transaction) (*BroadcastResult, error)
	TransactionInfo(ctx context.Context, txID string) (*TransactionInfo, error)
}

// EventSource is the event-server surface the watch path consumes.
type EventSource interface {
	ContractEvents(ctx context.Context, contract Address, eventName string) ([]EventRecord, error)
	HasEventServer() bool
}

// ContractStore is the node surface used to load deployed contracts.
type ContractStore interface {
	GetContract(ctx context.Context, addr Address) (*ContractInfo, error)
}

// Provider is the full client surface a contract handle consumes. Client
// implements it; tests substitute fakes.
type Provider interface {
	Caller
	Sender
	EventSource
	ContractStore

	// DefaultAddress is the sender used when invocation options carry none.
	DefaultAddress() Address

	// DefaultPrivateKey is the signing key used when invocation options
	// carry none.
	DefaultPrivateKey() string
}
