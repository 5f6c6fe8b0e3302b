package tron

import (
	"bytes"
	"crypto/ecdsa"
	"encoding/hex"
	"strings"

	"github.com/btcsuite/btcd/btcutil/base58"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/crypto"
)

const (
	// AddressPrefix is the version byte that distinguishes TRON mainnet
	// addresses from raw EVM addresses.
	AddressPrefix = 0x41

	// AddressLength is the byte length of a prefixed address.
	AddressLength = 21
)

// ZeroAddress is the all-zero address. It serves as the anonymous caller for
// constant calls when no sender is configured.
var ZeroAddress = Address{0: AddressPrefix}

// Address is a TRON account or contract address: the 0x41 version byte
// followed by a 20-byte EVM-style body.
type Address [AddressLength]byte

// ParseAddress parses an address in any of its textual forms: base58check
// ("T..."), 41-prefixed hex, or a 20-byte EVM hex with or without the 0x
// prefix.
func ParseAddress(s string) (Address, error) {
	var a Address
	if s == "" {
		return a, &InvalidAddressError{Input: s, Reason: "empty"}
	}

	if s[0] == 'T' {
		body, version, err := base58.CheckDecode(s)
		if err != nil {
			return a, &InvalidAddressError{Input: s, Reason: err.Error()}
		}
		if version != AddressPrefix {
			return a, &InvalidAddressError{Input: s, Reason: "wrong version byte"}
		}
		if len(body) != AddressLength-1 {
			return a, &InvalidAddressError{Input: s, Reason: "wrong payload length"}
		}
		a[0] = AddressPrefix
		copy(a[1:], body)
		return a, nil
	}

	h := strings.TrimPrefix(strings.ToLower(s), "0x")
	raw, err := hex.DecodeString(h)
	if err != nil {
		return a, &InvalidAddressError{Input: s, Reason: "not hex or base58"}
	}
	switch len(raw) {
	case AddressLength:
		if raw[0] != AddressPrefix {
			return a, &InvalidAddressError{Input: s, Reason: "wrong version byte"}
		}
		copy(a[:], raw)
	case AddressLength - 1:
		a[0] = AddressPrefix
		copy(a[1:], raw)
	default:
		return a, &InvalidAddressError{Input: s, Reason: "wrong length"}
	}
	return a, nil
}

// MustParseAddress is like ParseAddress but panics on error.
func MustParseAddress(s string) Address {
	a, err := ParseAddress(s)
	if err != nil {
		panic(err)
	}
	return a
}

// AddressFromEVM converts a 20-byte EVM address into its prefixed form.
func AddressFromEVM(evm common.Address) Address {
	var a Address
	a[0] = AddressPrefix
	copy(a[1:], evm.Bytes())
	return a
}

// AddressFromPubKey derives the address controlled by the given public key.
func AddressFromPubKey(pub *ecdsa.PublicKey) Address {
	return AddressFromEVM(crypto.PubkeyToAddress(*pub))
}

// String returns the base58check form ("T...").
func (a Address) String() string {
	return base58.CheckEncode(a[1:], a[0])
}

// Hex returns the 41-prefixed lowercase hex form used on the wire.
func (a Address) Hex() string {
	return hex.EncodeToString(a[:])
}

// EVM returns the 20-byte body as a go-ethereum address.
func (a Address) EVM() common.Address {
	return common.BytesToAddress(a[1:])
}

// Bytes returns a copy of the prefixed address bytes.
func (a Address) Bytes() []byte {
	b := make([]byte, AddressLength)
	copy(b, a[:])
	return b
}

// IsZero reports whether the address body is all zeroes. The zero Address
// value and ZeroAddress are both zero.
func (a Address) IsZero() bool {
	return bytes.Equal(a[1:], ZeroAddress[1:])
}
