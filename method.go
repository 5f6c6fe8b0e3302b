package tron

import (
	"context"
	"encoding/hex"
	"encoding/json"
	"strings"
	"time"

	"github.com/ethereum/go-ethereum/accounts/abi"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/crypto"
)

// Receipt polling cadence: the first fetch happens right after broadcast,
// later fetches are separated by a fixed delay.
const (
	receiptAttempts = 20
	receiptInterval = 3 * time.Second
)

// SendResult is the outcome of a mutation-path invocation. Output and
// Receipt are nil when the invocation did not wait for confirmation.
type SendResult struct {
	TxID        string
	Output      any
	Receipt     *TransactionInfo
	Transaction *Transaction
}

// Method is the invocation handle for a single ABI entry. Function entries
// answer Call and Send; event entries answer Watch. A handle is immutable
// after construction and safe for concurrent use.
type Method struct {
	contract *Contract
	name     string
	fn       *abi.Method
	event    *abi.Event

	signature string
	selector  [4]byte
	nameHash  common.Hash
	params    []string

	confirmAttempts int
	confirmInterval time.Duration
	watchInterval   time.Duration
}

func newMethod(c *Contract, fn *abi.Method, event *abi.Event) *Method {
	m := &Method{
		contract:        c,
		confirmAttempts: receiptAttempts,
		confirmInterval: receiptInterval,
		watchInterval:   defaultWatchInterval,
	}
	switch {
	case fn != nil:
		m.fn = fn
		m.name = fn.Name
		m.signature = fn.Sig
		copy(m.selector[:], fn.ID)
		m.nameHash = crypto.Keccak256Hash([]byte(fn.RawName))
		m.params = typeStrings(fn.Inputs)
	case event != nil:
		m.event = event
		m.name = event.Name
		m.signature = event.Sig
		copy(m.selector[:], event.ID[:4])
		m.nameHash = crypto.Keccak256Hash([]byte(event.RawName))
		m.params = typeStrings(event.Inputs)
	}
	return m
}

func typeStrings(args abi.Arguments) []string {
	out := make([]string, len(args))
	for i, a := range args {
		out[i] = a.Type.String()
	}
	return out
}

// Name returns the entry's canonical name. Overloaded functions carry the
// parser's disambiguated names.
func (m *Method) Name() string {
	return m.name
}

// Signature returns the canonical signature "name(type1,type2,...)".
func (m *Method) Signature() string {
	return m.signature
}

// Selector returns the first four bytes of the keccak256 hash of the
// canonical signature.
func (m *Method) Selector() [4]byte {
	return m.selector
}

// NameHash returns the full-width keccak256 hash of the bare entry name.
func (m *Method) NameHash() common.Hash {
	return m.nameHash
}

// ParamTypes returns the ordered canonical parameter type strings.
func (m *Method) ParamTypes() []string {
	return append([]string(nil), m.params...)
}

// IsEvent reports whether the handle wraps an event entry.
func (m *Method) IsEvent() bool {
	return m.event != nil
}

// StateMutability returns the function's declared mutability, empty for
// events.
func (m *Method) StateMutability() string {
	if m.fn == nil {
		return ""
	}
	return m.fn.StateMutability
}

// isConstant reports whether the function may run on the query path.
func (m *Method) isConstant() bool {
	mut := strings.ToLower(m.fn.StateMutability)
	return mut == "pure" || mut == "view"
}

// checkInvocation runs the validation ladder shared by Call and Send. The
// order is part of the contract: entry kind, argument count, address,
// loaded ABI.
func (m *Method) checkInvocation(args []any) error {
	if m.fn == nil {
		return ErrNotFunction
	}
	if len(args) != len(m.fn.Inputs) {
		return &ArgumentCountError{Method: m.name, Want: len(m.fn.Inputs), Got: len(args)}
	}
	if m.contract.address.IsZero() {
		return ErrNoAddress
	}
	if !m.contract.loaded {
		return ErrNotLoaded
	}
	return nil
}

// triggerRequest assembles the trigger payload shared by both paths.
func (m *Method) triggerRequest(cfg *invokeConfig, args []any) (*TriggerRequest, error) {
	params, err := callParams(m.name, m.fn.Inputs, args)
	if err != nil {
		return nil, err
	}
	parameter, err := packParams(m.name, m.fn.Inputs, params)
	if err != nil {
		return nil, err
	}
	return &TriggerRequest{
		OwnerAddress:     cfg.from.Hex(),
		ContractAddress:  m.contract.address.Hex(),
		FunctionSelector: m.signature,
		Parameter:        parameter,
		FeeLimit:         cfg.feeLimit,
		CallValue:        cfg.callValue,
	}, nil
}

// Call executes the method on the query path: a constant invocation whose
// decoded result is returned without touching chain state. Only pure and
// view methods qualify. A nil opts uses the defaults.
func (m *Method) Call(opts *CallOpts, args ...any) (any, error) {
	if err := m.checkInvocation(args); err != nil {
		return nil, err
	}
	if !m.isConstant() {
		return nil, &MutabilityError{Method: m.name, Mutability: m.fn.StateMutability, WantConst: false}
	}
	cfg := mergeCallOpts(m.contract.provider, opts)
	req, err := m.triggerRequest(cfg, args)
	if err != nil {
		return nil, err
	}
	resp, err := m.contract.provider.TriggerConstantContract(cfg.ctx, req)
	if err != nil {
		return nil, err
	}
	if resp == nil || len(resp.ConstantResult) == 0 {
		if resp != nil && (resp.Result.Code != "" || resp.Result.Message != "") {
			return nil, responseError("call", &resp.Result, resp)
		}
		return nil, ErrNoConstantResult
	}
	data, err := hex.DecodeString(strings.TrimPrefix(resp.ConstantResult[0], "0x"))
	if err != nil {
		return nil, &DecodeError{Method: m.name, Err: err}
	}
	return decodeResult(m.name, m.fn.Outputs, data)
}

// Send executes the method on the mutation path: build, sign, broadcast,
// and (unless NoWait is set) poll for the receipt and decode the contract
// result. Only non-constant methods qualify. A nil opts uses the defaults.
func (m *Method) Send(opts *SendOpts, args ...any) (*SendResult, error) {
	if err := m.checkInvocation(args); err != nil {
		return nil, err
	}
	cfg := mergeSendOpts(m.contract.provider, opts)
	acct, err := NewAccount(cfg.key)
	if err != nil {
		return nil, err
	}
	if m.isConstant() {
		return nil, &MutabilityError{Method: m.name, Mutability: m.fn.StateMutability, WantConst: true}
	}

	// The sender is always the signing key's address.
	cfg.from = acct.Address()
	req, err := m.triggerRequest(cfg, args)
	if err != nil {
		return nil, err
	}
	p := m.contract.provider
	resp, err := p.TriggerSmartContract(cfg.ctx, req)
	if err != nil {
		return nil, err
	}
	if resp == nil || !resp.Result.Result || resp.Transaction == nil {
		var tr *TriggerResult
		if resp != nil {
			tr = &resp.Result
		}
		return nil, responseError("build", tr, resp)
	}

	signed, err := acct.SignTransaction(resp.Transaction)
	if err != nil {
		return nil, err
	}
	bres, err := p.BroadcastTransaction(cfg.ctx, signed)
	if err != nil {
		return nil, err
	}
	if bres == nil || !bres.Result {
		e := &TransactionError{Stage: "broadcast"}
		if bres != nil {
			e.Code = bres.Code
			e.Message = decodeHexMessage(bres.Message)
			e.Raw, _ = json.Marshal(bres)
		}
		return nil, e
	}

	result := &SendResult{TxID: signed.TxID, Transaction: signed}
	if cfg.noWait {
		return result, nil
	}
	return m.awaitReceipt(cfg.ctx, signed, result)
}

// awaitReceipt polls for the transaction receipt until it resolves, fails,
// or the attempt limit is reached. The first fetch is immediate; a fixed
// delay separates the end of one attempt from the start of the next.
func (m *Method) awaitReceipt(ctx context.Context, signed *Transaction, result *SendResult) (*SendResult, error) {
	p := m.contract.provider
	for attempt := 0; attempt < m.confirmAttempts; attempt++ {
		if attempt > 0 {
			select {
			case <-ctx.Done():
				return nil, ctx.Err()
			case <-time.After(m.confirmInterval):
			}
		}
		info, err := p.TransactionInfo(ctx, signed.TxID)
		if err != nil {
			return nil, err
		}
		if info.Empty() {
			continue
		}
		if info.Failed() {
			return nil, &ReceiptError{
				TxID:        signed.TxID,
				Reason:      decodeHexMessage(info.ResMessage),
				Info:        info,
				Transaction: signed,
			}
		}
		if len(info.ContractResult) == 0 {
			return nil, &ReceiptError{
				TxID:        signed.TxID,
				Reason:      "failed to execute: receipt has no contract result",
				Info:        info,
				Transaction: signed,
			}
		}
		data, err := hex.DecodeString(strings.TrimPrefix(info.ContractResult[0], "0x"))
		if err != nil {
			return nil, &DecodeError{Method: m.name, Err: err}
		}
		output, err := decodeResult(m.name, m.fn.Outputs, data)
		if err != nil {
			return nil, err
		}
		result.Output = output
		result.Receipt = info
		return result, nil
	}
	return nil, &ReceiptTimeoutError{TxID: signed.TxID, Attempts: m.confirmAttempts, Transaction: signed}
}

// responseError shapes a node rejection into a TransactionError carrying
// the serialized response.
func responseError(stage string, tr *TriggerResult, raw any) *TransactionError {
	e := &TransactionError{Stage: stage}
	if tr != nil {
		e.Code = tr.Code
		e.Message = decodeHexMessage(tr.Message)
	}
	if raw != nil {
		e.Raw, _ = json.Marshal(raw)
	}
	return e
}
