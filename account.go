package tron

import (
	"bytes"
	"crypto/ecdsa"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"strings"

	"github.com/ethereum/go-ethereum/crypto"
)

// Account holds a secp256k1 private key and its derived address.
type Account struct {
	key     *ecdsa.PrivateKey
	address Address
}

// NewAccount parses a private key from its textual hex form (64 hex chars,
// optional 0x prefix).
func NewAccount(hexKey string) (*Account, error) {
	k := strings.TrimPrefix(strings.TrimSpace(hexKey), "0x")
	if k == "" {
		return nil, ErrNoPrivateKey
	}
	if len(k) != 64 {
		return nil, ErrInvalidPrivateKey
	}
	key, err := crypto.HexToECDSA(k)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidPrivateKey, err)
	}
	return &Account{key: key, address: AddressFromPubKey(&key.PublicKey)}, nil
}

// GenerateAccount creates an account with a fresh random key.
func GenerateAccount() (*Account, error) {
	key, err := crypto.GenerateKey()
	if err != nil {
		return nil, err
	}
	return &Account{key: key, address: AddressFromPubKey(&key.PublicKey)}, nil
}

// Address returns the address controlled by this account.
func (a *Account) Address() Address {
	return a.address
}

// PublicKey returns the account's public key.
func (a *Account) PublicKey() *ecdsa.PublicKey {
	return &a.key.PublicKey
}

// SignTransaction returns a signed copy of tx. The input transaction is never
// mutated. When raw data is present, the transaction ID must equal the sha256
// hash of the raw data bytes.
func (a *Account) SignTransaction(tx *Transaction) (*Transaction, error) {
	if tx == nil || tx.TxID == "" {
		return nil, fmt.Errorf("tron: cannot sign a transaction without a txID")
	}
	digest, err := hex.DecodeString(tx.TxID)
	if err != nil || len(digest) != sha256.Size {
		return nil, fmt.Errorf("tron: malformed transaction ID %q", tx.TxID)
	}
	if tx.RawDataHex != "" {
		raw, err := hex.DecodeString(tx.RawDataHex)
		if err != nil {
			return nil, fmt.Errorf("tron: malformed raw_data_hex: %v", err)
		}
		sum := sha256.Sum256(raw)
		if !bytes.Equal(sum[:], digest) {
			return nil, fmt.Errorf("tron: transaction ID does not match raw data hash")
		}
	}
	sig, err := crypto.Sign(digest, a.key)
	if err != nil {
		return nil, err
	}
	signed := tx.clone()
	signed.Signature = append(signed.Signature, hex.EncodeToString(sig))
	return signed, nil
}
