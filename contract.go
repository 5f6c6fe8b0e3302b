package tron

import (
	"context"
	"encoding/json"
	"strings"

	"github.com/ethereum/go-ethereum/accounts/abi"
)

// Contract wraps a TRON smart contract for method invocation and event
// watching. A handle is usable once it has an address bound and an ABI
// loaded; the two failure states are distinguished so callers learn which
// step is missing.
type Contract struct {
	provider Provider
	address  Address
	abi      abi.ABI
	loaded   bool
	methods  map[string]*Method
}

// ContractOption configures a Contract.
type ContractOption func(*Contract)

// WithAddress binds the contract handle to a deployed address.
func WithAddress(addr Address) ContractOption {
	return func(c *Contract) {
		c.address = addr
	}
}

// NewContract creates a contract handle from a parsed ABI. A handle built
// with a non-empty ABI is loaded immediately; At loads the ABI from the
// chain instead.
func NewContract(provider Provider, contractABI abi.ABI, opts ...ContractOption) *Contract {
	c := &Contract{provider: provider}
	for _, opt := range opts {
		opt(c)
	}
	c.loadABI(contractABI)
	return c
}

// loadABI builds an invocation handle for every ABI entry. Function entries
// shadow event entries sharing their name; overloaded functions keep the
// parser's canonical names (name, name0, ...).
func (c *Contract) loadABI(contractABI abi.ABI) {
	c.abi = contractABI
	c.methods = make(map[string]*Method, len(contractABI.Methods)+len(contractABI.Events))
	for name := range contractABI.Events {
		ev := contractABI.Events[name]
		c.methods[name] = newMethod(c, nil, &ev)
	}
	for name := range contractABI.Methods {
		m := contractABI.Methods[name]
		c.methods[name] = newMethod(c, &m, nil)
	}
	c.loaded = len(c.methods) > 0
}

// At binds the handle to an address and loads the contract from the node.
// An ABI already loaded locally is kept; only an empty one is replaced by
// the on-chain ABI.
func (c *Contract) At(ctx context.Context, addr Address) (*Contract, error) {
	info, err := c.provider.GetContract(ctx, addr)
	if err != nil {
		return nil, err
	}
	if info == nil || info.ContractAddress == "" {
		return nil, &ContractNotFoundError{Address: addr}
	}
	c.address = addr
	if !c.loaded {
		parsed, err := parseContractABI(info.ABI)
		if err != nil {
			return nil, err
		}
		c.loadABI(parsed)
	}
	return c, nil
}

// Address returns the bound contract address.
func (c *Contract) Address() Address {
	return c.address
}

// ABI returns the loaded contract ABI.
func (c *Contract) ABI() abi.ABI {
	return c.abi
}

// Loaded reports whether an ABI has been loaded into the handle.
func (c *Contract) Loaded() bool {
	return c.loaded
}

// Method returns the invocation handle for the named ABI entry.
func (c *Contract) Method(name string) (*Method, error) {
	m, ok := c.methods[name]
	if !ok {
		return nil, &MethodNotFoundError{Contract: c.address, Method: name}
	}
	return m, nil
}

// MustMethod is like Method but panics on error.
func (c *Contract) MustMethod(name string) *Method {
	m, err := c.Method(name)
	if err != nil {
		panic(err)
	}
	return m
}

// HasMethod reports whether the ABI has an entry with the given name.
func (c *Contract) HasMethod(name string) bool {
	_, ok := c.methods[name]
	return ok
}

// MethodNames returns all entry names in the contract ABI.
func (c *Contract) MethodNames() []string {
	names := make([]string, 0, len(c.methods))
	for name := range c.methods {
		names = append(names, name)
	}
	return names
}

// Call invokes the named method on the query path.
func (c *Contract) Call(opts *CallOpts, name string, args ...any) (any, error) {
	m, err := c.Method(name)
	if err != nil {
		return nil, err
	}
	return m.Call(opts, args...)
}

// Send invokes the named method on the mutation path.
func (c *Contract) Send(opts *SendOpts, name string, args ...any) (*SendResult, error) {
	m, err := c.Method(name)
	if err != nil {
		return nil, err
	}
	return m.Send(opts, args...)
}

// Watch starts watching the named event.
func (c *Contract) Watch(ctx context.Context, name string, handler EventHandler) (*Watcher, error) {
	m, err := c.Method(name)
	if err != nil {
		return nil, err
	}
	return m.Watch(ctx, handler)
}

// ParseABI parses a JSON ABI string into an abi.ABI. Entries with the node's
// protobuf casing ("Function", "Event") are accepted.
func ParseABI(abiJSON string) (abi.ABI, error) {
	var entries []json.RawMessage
	if err := json.Unmarshal([]byte(abiJSON), &entries); err != nil {
		return abi.ABI{}, err
	}
	return parseABIEntries(entries)
}

// MustParseABI is like ParseABI but panics on error.
func MustParseABI(abiJSON string) abi.ABI {
	parsed, err := ParseABI(abiJSON)
	if err != nil {
		panic(err)
	}
	return parsed
}

// parseContractABI converts the ABI section of a getcontract response.
func parseContractABI(raw *ContractABI) (abi.ABI, error) {
	if raw == nil || len(raw.Entries) == 0 {
		return abi.ABI{}, nil
	}
	return parseABIEntries(raw.Entries)
}

// knownEntryTypes are the entry kinds go-ethereum's parser accepts.
var knownEntryTypes = map[string]bool{
	"function":    true,
	"event":       true,
	"constructor": true,
	"fallback":    true,
	"receive":     true,
	"error":       true,
}

// parseABIEntries lowercases node-cased type tags, drops entry kinds the
// parser doesn't know, and hands the rest to go-ethereum.
func parseABIEntries(entries []json.RawMessage) (abi.ABI, error) {
	normalized := make([]map[string]any, 0, len(entries))
	for _, e := range entries {
		var m map[string]any
		if err := json.Unmarshal(e, &m); err != nil {
			return abi.ABI{}, err
		}
		t, _ := m["type"].(string)
		t = strings.ToLower(t)
		if t == "" {
			t = "function"
		}
		if !knownEntryTypes[t] {
			continue
		}
		m["type"] = t
		if sm, ok := m["stateMutability"].(string); ok {
			m["stateMutability"] = strings.ToLower(sm)
		}
		normalized = append(normalized, m)
	}
	b, err := json.Marshal(normalized)
	if err != nil {
		return abi.ABI{}, err
	}
	return abi.JSON(strings.NewReader(string(b)))
}
