package tron

import (
	"context"
)

// DefaultFeeLimit is the fee limit applied when an invocation doesn't set
// one, in SUN (150 TRX).
const DefaultFeeLimit int64 = 150_000_000

// CallOpts collects per-invocation settings for the query path. Zero fields
// fall back to client and built-in defaults.
type CallOpts struct {
	// From is the sender address the node uses for the constant execution.
	From Address

	// FeeLimit caps the execution cost, in SUN.
	FeeLimit int64

	// CallValue is the TRX amount attached to the call, in SUN.
	CallValue int64

	// Context governs the request; nil means context.Background().
	Context context.Context
}

// SendOpts collects per-invocation settings for the mutation path. Zero
// fields fall back to client and built-in defaults.
type SendOpts struct {
	// PrivateKey is the textual hex signing key; empty means the client
	// default key.
	PrivateKey string

	// FeeLimit caps the execution cost, in SUN.
	FeeLimit int64

	// CallValue is the TRX amount attached to the transaction, in SUN.
	CallValue int64

	// NoWait returns right after broadcast with the transaction ID instead
	// of polling for the receipt.
	NoWait bool

	// Context governs the request and the receipt polling; nil means
	// context.Background().
	Context context.Context
}

// invokeConfig is the effective option set for a single invocation, built
// fresh on every call so shared defaults are never mutated.
type invokeConfig struct {
	from      Address
	key       string
	feeLimit  int64
	callValue int64
	noWait    bool
	ctx       context.Context
}

func defaultInvokeConfig() *invokeConfig {
	return &invokeConfig{
		feeLimit: DefaultFeeLimit,
		ctx:      context.Background(),
	}
}

// mergeCallOpts layers caller options over client defaults over built-ins.
func mergeCallOpts(p Provider, opts *CallOpts) *invokeConfig {
	cfg := defaultInvokeConfig()
	cfg.from = p.DefaultAddress()
	if opts != nil {
		if !opts.From.IsZero() {
			cfg.from = opts.From
		}
		if opts.FeeLimit > 0 {
			cfg.feeLimit = opts.FeeLimit
		}
		if opts.CallValue > 0 {
			cfg.callValue = opts.CallValue
		}
		if opts.Context != nil {
			cfg.ctx = opts.Context
		}
	}
	if cfg.from.IsZero() {
		// Constant calls work without a configured account.
		cfg.from = ZeroAddress
	}
	return cfg
}

// mergeSendOpts layers caller options over client defaults over built-ins.
func mergeSendOpts(p Provider, opts *SendOpts) *invokeConfig {
	cfg := defaultInvokeConfig()
	cfg.key = p.DefaultPrivateKey()
	if opts != nil {
		if opts.PrivateKey != "" {
			cfg.key = opts.PrivateKey
		}
		if opts.FeeLimit > 0 {
			cfg.feeLimit = opts.FeeLimit
		}
		if opts.CallValue > 0 {
			cfg.callValue = opts.CallValue
		}
		cfg.noWait = opts.NoWait
		if opts.Context != nil {
			cfg.ctx = opts.Context
		}
	}
	return cfg
}
