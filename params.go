package tron

import (
	"bytes"
	"encoding/hex"
	"fmt"
	"math/big"
	"reflect"
	"strings"

	"github.com/ethereum/go-ethereum/accounts/abi"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/crypto"
	"github.com/samber/lo"
)

// Param is one (type, value) pair of a trigger parameter list.
type Param struct {
	Type  string
	Value any
}

// revertSelector is the 4-byte selector of Error(string).
var revertSelector = crypto.Keccak256([]byte("Error(string)"))[:4]

// callParams zips the method's input list with the raw arguments, normalizing
// each value into the form the ABI encoder expects.
func callParams(methodName string, inputs abi.Arguments, args []any) ([]Param, error) {
	params := make([]Param, len(inputs))
	for i, input := range inputs {
		v, err := normalizeArg(args[i], input.Type)
		if err != nil {
			return nil, &ArgumentError{Method: methodName, Index: i, Err: err}
		}
		params[i] = Param{Type: input.Type.String(), Value: v}
	}
	return params, nil
}

// packParams ABI-encodes normalized parameters into the hex string the
// trigger endpoints expect (packed arguments without the selector).
func packParams(methodName string, inputs abi.Arguments, params []Param) (string, error) {
	if len(params) == 0 {
		return "", nil
	}
	vals := make([]any, len(params))
	for i := range params {
		vals[i] = params[i].Value
	}
	packed, err := inputs.Pack(vals...)
	if err != nil {
		return "", fmt.Errorf("tron: packing arguments for %q: %w", methodName, err)
	}
	return hex.EncodeToString(packed), nil
}

// decodeResult applies the shared decoding rule to raw return data: a revert
// payload becomes a RevertError, fully named outputs decode into a keyed map,
// anything else decodes positionally with a lone value unwrapped.
func decodeResult(methodName string, outputs abi.Arguments, data []byte) (any, error) {
	if len(data) >= 4 && bytes.Equal(data[:4], revertSelector) {
		reason, err := abi.UnpackRevert(data)
		if err != nil {
			return nil, &RevertError{}
		}
		return nil, &RevertError{Reason: reason}
	}
	if len(outputs) == 0 {
		return nil, nil
	}
	if len(data) == 0 {
		return nil, &RevertError{}
	}

	if lo.EveryBy(outputs, func(arg abi.Argument) bool { return arg.Name != "" }) {
		out := make(map[string]any, len(outputs))
		if err := outputs.UnpackIntoMap(out, data); err != nil {
			return nil, &DecodeError{Method: methodName, Err: err}
		}
		for k, v := range out {
			out[k] = friendlyValue(v)
		}
		if len(outputs) == 1 {
			return out[outputs[0].Name], nil
		}
		return out, nil
	}

	vals, err := outputs.UnpackValues(data)
	if err != nil {
		return nil, &DecodeError{Method: methodName, Err: err}
	}
	res := make([]any, len(vals))
	for i, v := range vals {
		res[i] = friendlyValue(v)
	}
	if len(res) == 1 {
		return res[0], nil
	}
	return res, nil
}

// friendlyValue rewrites decoded go-ethereum values into their prefixed
// TRON-native forms.
func friendlyValue(v any) any {
	switch x := v.(type) {
	case common.Address:
		return AddressFromEVM(x)
	case []common.Address:
		out := make([]Address, len(x))
		for i, a := range x {
			out[i] = AddressFromEVM(a)
		}
		return out
	}
	return v
}

// normalizeArg converts a Go value into the representation the ABI packer
// expects for the given type. Values already in packer form pass through.
func normalizeArg(v any, t abi.Type) (any, error) {
	switch t.T {
	case abi.AddressTy:
		return toEVMAddress(v)
	case abi.SliceTy, abi.ArrayTy:
		if t.Elem != nil && t.Elem.T == abi.AddressTy {
			return toEVMAddressSlice(v, t)
		}
		return v, nil
	case abi.IntTy, abi.UintTy:
		return toInteger(v, t)
	case abi.BytesTy:
		if s, ok := v.(string); ok {
			b, err := hex.DecodeString(strings.TrimPrefix(s, "0x"))
			if err != nil {
				return nil, &TypeMismatchError{Expected: "bytes", Got: "non-hex string"}
			}
			return b, nil
		}
		return v, nil
	case abi.FixedBytesTy:
		return toFixedBytes(v, t)
	default:
		return v, nil
	}
}

// toEVMAddress accepts any textual or binary address form and returns the
// 20-byte form used inside ABI encoding.
func toEVMAddress(v any) (common.Address, error) {
	switch x := v.(type) {
	case Address:
		return x.EVM(), nil
	case *Address:
		if x == nil {
			return common.Address{}, &TypeMismatchError{Expected: "address", Got: "nil"}
		}
		return x.EVM(), nil
	case common.Address:
		return x, nil
	case string:
		a, err := ParseAddress(x)
		if err != nil {
			return common.Address{}, err
		}
		return a.EVM(), nil
	case []byte:
		switch len(x) {
		case AddressLength:
			if x[0] != AddressPrefix {
				return common.Address{}, &InvalidAddressError{Input: hex.EncodeToString(x), Reason: "wrong version byte"}
			}
			return common.BytesToAddress(x[1:]), nil
		case AddressLength - 1:
			return common.BytesToAddress(x), nil
		}
		return common.Address{}, &InvalidAddressError{Input: hex.EncodeToString(x), Reason: "wrong length"}
	}
	return common.Address{}, &TypeMismatchError{Expected: "address", Got: fmt.Sprintf("%T", v)}
}

func toEVMAddressSlice(v any, t abi.Type) (any, error) {
	rv := reflect.ValueOf(v)
	if rv.Kind() != reflect.Slice && rv.Kind() != reflect.Array {
		return nil, &TypeMismatchError{Expected: t.String(), Got: fmt.Sprintf("%T", v)}
	}
	out := make([]common.Address, rv.Len())
	for i := 0; i < rv.Len(); i++ {
		a, err := toEVMAddress(rv.Index(i).Interface())
		if err != nil {
			return nil, err
		}
		out[i] = a
	}
	if t.T == abi.ArrayTy {
		if len(out) != t.Size {
			return nil, &TypeMismatchError{Expected: t.String(), Got: fmt.Sprintf("%d elements", len(out))}
		}
		arr := reflect.New(reflect.ArrayOf(t.Size, reflect.TypeOf(common.Address{}))).Elem()
		for i := range out {
			arr.Index(i).Set(reflect.ValueOf(out[i]))
		}
		return arr.Interface(), nil
	}
	return out, nil
}

// toInteger widens or narrows numeric values to the exact representation the
// packer expects: *big.Int above 64 bits, fixed-width Go integers below.
func toInteger(v any, t abi.Type) (any, error) {
	bi := new(big.Int)
	switch x := v.(type) {
	case *big.Int:
		bi = x
	case int:
		bi.SetInt64(int64(x))
	case int8:
		bi.SetInt64(int64(x))
	case int16:
		bi.SetInt64(int64(x))
	case int32:
		bi.SetInt64(int64(x))
	case int64:
		bi.SetInt64(x)
	case uint:
		bi.SetUint64(uint64(x))
	case uint8:
		bi.SetUint64(uint64(x))
	case uint16:
		bi.SetUint64(uint64(x))
	case uint32:
		bi.SetUint64(uint64(x))
	case uint64:
		bi.SetUint64(x)
	case string:
		if _, ok := bi.SetString(strings.TrimSpace(x), 0); !ok {
			return nil, &TypeMismatchError{Expected: t.String(), Got: "non-numeric string"}
		}
	default:
		return v, nil
	}
	if bi == nil {
		return nil, &TypeMismatchError{Expected: t.String(), Got: "nil"}
	}
	if t.Size > 64 {
		return bi, nil
	}

	if t.T == abi.UintTy {
		if bi.Sign() < 0 || !bi.IsUint64() || (t.Size < 64 && bi.Uint64() >= 1<<uint(t.Size)) {
			return nil, &TypeMismatchError{Expected: t.String(), Got: "value out of range"}
		}
		u := bi.Uint64()
		switch t.Size {
		case 8:
			return uint8(u), nil
		case 16:
			return uint16(u), nil
		case 32:
			return uint32(u), nil
		default:
			return u, nil
		}
	}

	if !bi.IsInt64() {
		return nil, &TypeMismatchError{Expected: t.String(), Got: "value out of range"}
	}
	n := bi.Int64()
	if t.Size < 64 && (n < -(1<<uint(t.Size-1)) || n >= 1<<uint(t.Size-1)) {
		return nil, &TypeMismatchError{Expected: t.String(), Got: "value out of range"}
	}
	switch t.Size {
	case 8:
		return int8(n), nil
	case 16:
		return int16(n), nil
	case 32:
		return int32(n), nil
	default:
		return n, nil
	}
}

func toFixedBytes(v any, t abi.Type) (any, error) {
	b, ok := v.([]byte)
	if !ok {
		s, isStr := v.(string)
		if !isStr {
			return v, nil
		}
		d, err := hex.DecodeString(strings.TrimPrefix(s, "0x"))
		if err != nil {
			return nil, &TypeMismatchError{Expected: t.String(), Got: "non-hex string"}
		}
		b = d
	}
	if len(b) != t.Size {
		return nil, &TypeMismatchError{Expected: t.String(), Got: fmt.Sprintf("%d bytes", len(b))}
	}
	arr := reflect.New(reflect.ArrayOf(t.Size, reflect.TypeOf(byte(0)))).Elem()
	reflect.Copy(arr, reflect.ValueOf(b))
	return arr.Interface(), nil
}
