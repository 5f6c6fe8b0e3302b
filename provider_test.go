package tron

import (
	"context"
	"errors"
)

// fakeProvider implements Provider for tests. Each node surface dispatches to
// an optional stub; unstubbed surfaces fail loudly so tests notice calls they
// did not expect. Call counters let tests assert a path was never reached.
type fakeProvider struct {
	address Address
	key     string
	events  bool

	constantFn  func(req *TriggerRequest) (*TriggerResponse, error)
	triggerFn   func(req *TriggerRequest) (*TriggerResponse, error)
	broadcastFn func(tx *Transaction) (*BroadcastResult, error)
	infoFn      func(txID string) (*TransactionInfo, error)
	eventsFn    func(contract Address, eventName string) ([]EventRecord, error)
	contractFn  func(addr Address) (*ContractInfo, error)

	constantCalls  int
	triggerCalls   int
	broadcastCalls int
	infoCalls      int
	eventsCalls    int
}

var _ Provider = (*fakeProvider)(nil)

func (f *fakeProvider) TriggerConstantContract(ctx context.Context, req *TriggerRequest) (*TriggerResponse, error) {
	f.constantCalls++
	if f.constantFn != nil {
		return f.constantFn(req)
	}
	return nil, errors.New("unexpected TriggerConstantContract call")
}

func (f *fakeProvider) TriggerSmartContract(ctx context.Context, req *TriggerRequest) (*TriggerResponse, error) {
	f.triggerCalls++
	if f.triggerFn != nil {
		return f.triggerFn(req)
	}
	return nil, errors.New("unexpected TriggerSmartContract call")
}

func (f *fakeProvider) BroadcastTransaction(ctx context.Context, tx *Transaction) (*BroadcastResult, error) {
	f.broadcastCalls++
	if f.broadcastFn != nil {
		return f.broadcastFn(tx)
	}
	return nil, errors.New("unexpected BroadcastTransaction call")
}

func (f *fakeProvider) TransactionInfo(ctx context.Context, txID string) (*TransactionInfo, error) {
	f.infoCalls++
	if f.infoFn != nil {
		return f.infoFn(txID)
	}
	return nil, errors.New("unexpected TransactionInfo call")
}

func (f *fakeProvider) ContractEvents(ctx context.Context, contract Address, eventName string) ([]EventRecord, error) {
	f.eventsCalls++
	if f.eventsFn != nil {
		return f.eventsFn(contract, eventName)
	}
	return nil, errors.New("unexpected ContractEvents call")
}

func (f *fakeProvider) GetContract(ctx context.Context, addr Address) (*ContractInfo, error) {
	if f.contractFn != nil {
		return f.contractFn(addr)
	}
	return nil, errors.New("unexpected GetContract call")
}

func (f *fakeProvider) HasEventServer() bool      { return f.events }
func (f *fakeProvider) DefaultAddress() Address   { return f.address }
func (f *fakeProvider) DefaultPrivateKey() string { return f.key }
