package tron

import (
	"encoding/hex"
	"encoding/json"
	"strings"
	"unicode/utf8"
)

// TriggerRequest is the request body shared by triggerconstantcontract and
// triggersmartcontract. Addresses are in 41-prefixed hex, the parameter is
// the ABI-packed argument hex without the selector.
type TriggerRequest struct {
	OwnerAddress     string `json:"owner_address"`
	ContractAddress  string `json:"contract_address"`
	FunctionSelector string `json:"function_selector"`
	Parameter        string `json:"parameter,omitempty"`
	FeeLimit         int64  `json:"fee_limit,omitempty"`
	CallValue        int64  `json:"call_value,omitempty"`
}

// TriggerResult is the status object embedded in trigger responses. A missing
// or false Result with a Code indicates the node rejected the request.
type TriggerResult struct {
	Result  bool   `json:"result,omitempty"`
	Code    string `json:"code,omitempty"`
	Message string `json:"message,omitempty"`
}

// TriggerResponse is the node's answer to a trigger request. Constant calls
// carry the raw return data in ConstantResult; state-changing calls carry the
// unsigned transaction to sign and broadcast.
type TriggerResponse struct {
	Result         TriggerResult `json:"result"`
	ConstantResult []string      `json:"constant_result,omitempty"`
	Transaction    *Transaction  `json:"transaction,omitempty"`
	EnergyUsed     int64         `json:"energy_used,omitempty"`
}

// Transaction is a node-built transaction in its JSON form. RawDataHex is the
// serialized raw transaction whose sha256 hash is the transaction ID.
type Transaction struct {
	TxID       string          `json:"txID"`
	Visible    bool            `json:"visible,omitempty"`
	RawData    json.RawMessage `json:"raw_data,omitempty"`
	RawDataHex string          `json:"raw_data_hex,omitempty"`
	Signature  []string        `json:"signature,omitempty"`
}

// clone returns a deep-enough copy for signing without mutating the original.
func (tx *Transaction) clone() *Transaction {
	c := *tx
	if tx.RawData != nil {
		c.RawData = append(json.RawMessage(nil), tx.RawData...)
	}
	if tx.Signature != nil {
		c.Signature = append([]string(nil), tx.Signature...)
	}
	return &c
}

// BroadcastResult is the node's answer to broadcasttransaction.
type BroadcastResult struct {
	Result  bool   `json:"result,omitempty"`
	TxID    string `json:"txid,omitempty"`
	Code    string `json:"code,omitempty"`
	Message string `json:"message,omitempty"`
}

// ResourceReceipt is the resource consumption section of a transaction
// receipt. Result holds the contract execution status (SUCCESS, REVERT, ...).
type ResourceReceipt struct {
	EnergyUsage       int64  `json:"energy_usage,omitempty"`
	EnergyFee         int64  `json:"energy_fee,omitempty"`
	OriginEnergyUsage int64  `json:"origin_energy_usage,omitempty"`
	EnergyUsageTotal  int64  `json:"energy_usage_total,omitempty"`
	NetUsage          int64  `json:"net_usage,omitempty"`
	NetFee            int64  `json:"net_fee,omitempty"`
	Result            string `json:"result,omitempty"`
}

// TransactionInfo is the receipt returned by gettransactioninfobyid. An
// unconfirmed transaction decodes to the zero value (empty ID).
type TransactionInfo struct {
	ID              string           `json:"id,omitempty"`
	Fee             int64            `json:"fee,omitempty"`
	BlockNumber     int64            `json:"blockNumber,omitempty"`
	BlockTimestamp  int64            `json:"blockTimeStamp,omitempty"`
	Result          string           `json:"result,omitempty"`
	ResMessage      string           `json:"resMessage,omitempty"`
	ContractResult  []string         `json:"contractResult,omitempty"`
	ContractAddress string           `json:"contract_address,omitempty"`
	Receipt         *ResourceReceipt `json:"receipt,omitempty"`
}

// Empty reports whether the receipt has not been indexed yet.
func (i *TransactionInfo) Empty() bool {
	return i == nil || i.ID == ""
}

// Failed reports whether the node marked the transaction as failed.
func (i *TransactionInfo) Failed() bool {
	return i != nil && strings.EqualFold(i.Result, "FAILED")
}

// ContractABI is the ABI section of a getcontract response. The field name
// "entrys" is the node's spelling.
type ContractABI struct {
	Entries []json.RawMessage `json:"entrys"`
}

// ContractInfo is the on-chain contract record returned by getcontract.
type ContractInfo struct {
	ContractAddress string       `json:"contract_address,omitempty"`
	OriginAddress   string       `json:"origin_address,omitempty"`
	Name            string       `json:"name,omitempty"`
	ABI             *ContractABI `json:"abi,omitempty"`
	CodeHash        string       `json:"code_hash,omitempty"`
}

// EventRecord is one event occurrence as reported by the event server.
// Result maps parameter names to their stringly-typed values.
type EventRecord struct {
	BlockNumber     int64             `json:"block_number"`
	BlockTimestamp  int64             `json:"block_timestamp,omitempty"`
	ContractAddress string            `json:"contract_address,omitempty"`
	EventIndex      int64             `json:"event_index,omitempty"`
	EventName       string            `json:"event_name,omitempty"`
	TransactionID   string            `json:"transaction_id,omitempty"`
	Result          map[string]any    `json:"result,omitempty"`
	ResultType      map[string]string `json:"result_type,omitempty"`
}

// Fingerprint returns a deterministic serialization of the full record.
// Two records are duplicates exactly when their fingerprints match.
func (r *EventRecord) Fingerprint() string {
	// encoding/json sorts map keys, so equal records serialize equally.
	b, err := json.Marshal(r)
	if err != nil {
		return ""
	}
	return string(b)
}

// decodeHexMessage decodes the hex-encoded UTF-8 message fields the node
// embeds in failure responses. Input that isn't valid hex or text is
// returned unchanged.
func decodeHexMessage(s string) string {
	if s == "" {
		return ""
	}
	b, err := hex.DecodeString(strings.TrimPrefix(s, "0x"))
	if err != nil || !utf8.Valid(b) {
		return s
	}
	return string(b)
}
