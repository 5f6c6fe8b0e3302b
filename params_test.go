package tron

import (
	"encoding/hex"
	"errors"
	"math/big"
	"testing"

	"github.com/ethereum/go-ethereum/accounts/abi"
	"github.com/ethereum/go-ethereum/common"
)

func mustType(t *testing.T, s string) abi.Type {
	t.Helper()
	typ, err := abi.NewType(s, "", nil)
	if err != nil {
		t.Fatalf("abi.NewType(%q) failed: %v", s, err)
	}
	return typ
}

func TestNormalizeAddressArg(t *testing.T) {
	addrT := mustType(t, "address")
	want := common.HexToAddress(usdtEVMHex)

	tests := []struct {
		name  string
		input any
	}{
		{"base58 string", usdtBase58},
		{"prefixed hex string", usdtHex},
		{"Address value", MustParseAddress(usdtBase58)},
		{"common.Address value", want},
		{"21-byte slice", MustParseAddress(usdtBase58).Bytes()},
		{"20-byte slice", want.Bytes()},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := normalizeArg(tt.input, addrT)
			if err != nil {
				t.Fatalf("normalizeArg failed: %v", err)
			}
			if got != want {
				t.Errorf("Expected %s, got %v", want.Hex(), got)
			}
		})
	}

	t.Run("rejects non-address", func(t *testing.T) {
		_, err := normalizeArg(42.5, addrT)
		var mismatch *TypeMismatchError
		if !errors.As(err, &mismatch) {
			t.Fatalf("Expected *TypeMismatchError, got %v", err)
		}
	})
}

func TestNormalizeIntegerArg(t *testing.T) {
	t.Run("uint256 widens to big.Int", func(t *testing.T) {
		uint256T := mustType(t, "uint256")

		for _, input := range []any{int(100), int64(100), uint32(100), "100", "0x64", big.NewInt(100)} {
			got, err := normalizeArg(input, uint256T)
			if err != nil {
				t.Fatalf("normalizeArg(%v) failed: %v", input, err)
			}
			bi, ok := got.(*big.Int)
			if !ok {
				t.Fatalf("Expected *big.Int for %T input, got %T", input, got)
			}
			if bi.Cmp(big.NewInt(100)) != 0 {
				t.Errorf("Expected 100, got %s", bi)
			}
		}
	})

	t.Run("uint8 narrows", func(t *testing.T) {
		uint8T := mustType(t, "uint8")

		got, err := normalizeArg(255, uint8T)
		if err != nil {
			t.Fatalf("normalizeArg failed: %v", err)
		}
		if got != uint8(255) {
			t.Errorf("Expected uint8(255), got %v (%T)", got, got)
		}

		if _, err := normalizeArg(256, uint8T); err == nil {
			t.Error("256 should not fit uint8")
		}
	})

	t.Run("int8 range", func(t *testing.T) {
		int8T := mustType(t, "int8")

		got, err := normalizeArg(-128, int8T)
		if err != nil {
			t.Fatalf("normalizeArg failed: %v", err)
		}
		if got != int8(-128) {
			t.Errorf("Expected int8(-128), got %v (%T)", got, got)
		}

		if _, err := normalizeArg(-129, int8T); err == nil {
			t.Error("-129 should not fit int8")
		}
	})

	t.Run("uint rejects negatives", func(t *testing.T) {
		uint64T := mustType(t, "uint64")
		if _, err := normalizeArg(-1, uint64T); err == nil {
			t.Error("Negative value should not fit uint64")
		}
	})

	t.Run("rejects non-numeric string", func(t *testing.T) {
		uint256T := mustType(t, "uint256")
		if _, err := normalizeArg("not a number", uint256T); err == nil {
			t.Error("Non-numeric string should fail")
		}
	})
}

func TestNormalizeBytesArg(t *testing.T) {
	t.Run("bytes from hex string", func(t *testing.T) {
		bytesT := mustType(t, "bytes")

		got, err := normalizeArg("0xdeadbeef", bytesT)
		if err != nil {
			t.Fatalf("normalizeArg failed: %v", err)
		}
		b, ok := got.([]byte)
		if !ok || hex.EncodeToString(b) != "deadbeef" {
			t.Errorf("Expected deadbeef, got %v", got)
		}
	})

	t.Run("bytes passthrough", func(t *testing.T) {
		bytesT := mustType(t, "bytes")

		raw := []byte{1, 2, 3}
		got, err := normalizeArg(raw, bytesT)
		if err != nil {
			t.Fatalf("normalizeArg failed: %v", err)
		}
		if b, ok := got.([]byte); !ok || len(b) != 3 {
			t.Errorf("Expected the slice back, got %v", got)
		}
	})

	t.Run("bytes32 from slice", func(t *testing.T) {
		bytes32T := mustType(t, "bytes32")

		raw := make([]byte, 32)
		raw[0] = 0xab
		got, err := normalizeArg(raw, bytes32T)
		if err != nil {
			t.Fatalf("normalizeArg failed: %v", err)
		}
		arr, ok := got.([32]byte)
		if !ok {
			t.Fatalf("Expected [32]byte, got %T", got)
		}
		if arr[0] != 0xab {
			t.Error("Array content should match the slice")
		}
	})

	t.Run("bytes32 wrong size", func(t *testing.T) {
		bytes32T := mustType(t, "bytes32")
		if _, err := normalizeArg([]byte{1, 2}, bytes32T); err == nil {
			t.Error("2 bytes should not fit bytes32")
		}
	})
}

func TestNormalizeAddressSliceArg(t *testing.T) {
	t.Run("dynamic slice from strings", func(t *testing.T) {
		sliceT := mustType(t, "address[]")

		got, err := normalizeArg([]string{usdtBase58, usdtHex}, sliceT)
		if err != nil {
			t.Fatalf("normalizeArg failed: %v", err)
		}
		addrs, ok := got.([]common.Address)
		if !ok {
			t.Fatalf("Expected []common.Address, got %T", got)
		}
		if len(addrs) != 2 || addrs[0] != common.HexToAddress(usdtEVMHex) {
			t.Errorf("Unexpected slice contents: %v", addrs)
		}
	})

	t.Run("fixed array enforces length", func(t *testing.T) {
		arrayT := mustType(t, "address[2]")

		got, err := normalizeArg([]string{usdtBase58, usdtBase58}, arrayT)
		if err != nil {
			t.Fatalf("normalizeArg failed: %v", err)
		}
		if _, ok := got.([2]common.Address); !ok {
			t.Fatalf("Expected [2]common.Address, got %T", got)
		}

		if _, err := normalizeArg([]string{usdtBase58}, arrayT); err == nil {
			t.Error("1 element should not fit address[2]")
		}
	})
}

func TestCallParams(t *testing.T) {
	inputs := abi.Arguments{
		{Name: "to", Type: mustType(t, "address")},
		{Name: "value", Type: mustType(t, "uint256")},
	}

	t.Run("zips types and values", func(t *testing.T) {
		params, err := callParams("transfer", inputs, []any{usdtBase58, 1000})
		if err != nil {
			t.Fatalf("callParams failed: %v", err)
		}
		if len(params) != 2 {
			t.Fatalf("Expected 2 params, got %d", len(params))
		}
		if params[0].Type != "address" || params[1].Type != "uint256" {
			t.Errorf("Unexpected param types: %s, %s", params[0].Type, params[1].Type)
		}
		if params[0].Value != common.HexToAddress(usdtEVMHex) {
			t.Errorf("Address param should be normalized, got %v", params[0].Value)
		}
	})

	t.Run("attributes errors to the argument index", func(t *testing.T) {
		_, err := callParams("transfer", inputs, []any{usdtBase58, "not a number"})

		var argErr *ArgumentError
		if !errors.As(err, &argErr) {
			t.Fatalf("Expected *ArgumentError, got %v", err)
		}
		if argErr.Index != 1 {
			t.Errorf("Expected index 1, got %d", argErr.Index)
		}
		if argErr.Method != "transfer" {
			t.Errorf("Expected method \"transfer\", got %q", argErr.Method)
		}
	})
}

func TestPackParams(t *testing.T) {
	inputs := abi.Arguments{
		{Name: "to", Type: mustType(t, "address")},
		{Name: "value", Type: mustType(t, "uint256")},
	}

	t.Run("packs to hex words", func(t *testing.T) {
		params, err := callParams("transfer", inputs, []any{usdtBase58, 1})
		if err != nil {
			t.Fatalf("callParams failed: %v", err)
		}

		packed, err := packParams("transfer", inputs, params)
		if err != nil {
			t.Fatalf("packParams failed: %v", err)
		}

		expected := "000000000000000000000000a614f803b6fd780986a42c78ec9c7f77e6ded13c" +
			"0000000000000000000000000000000000000000000000000000000000000001"
		if packed != expected {
			t.Errorf("Expected packed hex %q, got %q", expected, packed)
		}
	})

	t.Run("empty parameter list packs to empty string", func(t *testing.T) {
		packed, err := packParams("totalSupply", abi.Arguments{}, nil)
		if err != nil {
			t.Fatalf("packParams failed: %v", err)
		}
		if packed != "" {
			t.Errorf("Expected empty string, got %q", packed)
		}
	})
}

func TestDecodeResult(t *testing.T) {
	uint256T := mustType(t, "uint256")
	boolT := mustType(t, "bool")
	addressT := mustType(t, "address")
	stringT := mustType(t, "string")

	t.Run("named single output unwraps", func(t *testing.T) {
		outputs := abi.Arguments{{Name: "balance", Type: uint256T}}
		data, err := outputs.Pack(big.NewInt(5000))
		if err != nil {
			t.Fatalf("Pack failed: %v", err)
		}

		got, err := decodeResult("balanceOf", outputs, data)
		if err != nil {
			t.Fatalf("decodeResult failed: %v", err)
		}
		bi, ok := got.(*big.Int)
		if !ok {
			t.Fatalf("Expected *big.Int, got %T", got)
		}
		if bi.Cmp(big.NewInt(5000)) != 0 {
			t.Errorf("Expected 5000, got %s", bi)
		}
	})

	t.Run("unnamed single output unwraps", func(t *testing.T) {
		outputs := abi.Arguments{{Type: uint256T}}
		data, err := outputs.Pack(big.NewInt(7))
		if err != nil {
			t.Fatalf("Pack failed: %v", err)
		}

		got, err := decodeResult("totalSupply", outputs, data)
		if err != nil {
			t.Fatalf("decodeResult failed: %v", err)
		}
		if bi, ok := got.(*big.Int); !ok || bi.Cmp(big.NewInt(7)) != 0 {
			t.Errorf("Expected 7, got %v", got)
		}
	})

	t.Run("fully named outputs decode to a keyed map", func(t *testing.T) {
		outputs := abi.Arguments{
			{Name: "paused", Type: boolT},
			{Name: "owner", Type: addressT},
		}
		data, err := outputs.Pack(true, common.HexToAddress(usdtEVMHex))
		if err != nil {
			t.Fatalf("Pack failed: %v", err)
		}

		got, err := decodeResult("getStatus", outputs, data)
		if err != nil {
			t.Fatalf("decodeResult failed: %v", err)
		}
		m, ok := got.(map[string]any)
		if !ok {
			t.Fatalf("Expected map[string]any, got %T", got)
		}
		if m["paused"] != true {
			t.Errorf("Expected paused=true, got %v", m["paused"])
		}
		if addr, ok := m["owner"].(Address); !ok || addr.String() != usdtBase58 {
			t.Errorf("Expected owner as a prefixed address, got %v", m["owner"])
		}
	})

	t.Run("partially named outputs decode positionally", func(t *testing.T) {
		outputs := abi.Arguments{
			{Name: "", Type: uint256T},
			{Name: "ok", Type: boolT},
		}
		data, err := outputs.Pack(big.NewInt(9), true)
		if err != nil {
			t.Fatalf("Pack failed: %v", err)
		}

		got, err := decodeResult("mixed", outputs, data)
		if err != nil {
			t.Fatalf("decodeResult failed: %v", err)
		}
		vals, ok := got.([]any)
		if !ok {
			t.Fatalf("Expected []any, got %T", got)
		}
		if len(vals) != 2 || vals[1] != true {
			t.Errorf("Unexpected values: %v", vals)
		}
	})

	t.Run("revert payload becomes RevertError", func(t *testing.T) {
		reason, err := abi.Arguments{{Type: stringT}}.Pack("insufficient balance")
		if err != nil {
			t.Fatalf("Pack failed: %v", err)
		}
		data := append(append([]byte{}, revertSelector...), reason...)

		_, err = decodeResult("transfer", abi.Arguments{{Type: boolT}}, data)
		var revert *RevertError
		if !errors.As(err, &revert) {
			t.Fatalf("Expected *RevertError, got %v", err)
		}
		if revert.Reason != "insufficient balance" {
			t.Errorf("Expected reason %q, got %q", "insufficient balance", revert.Reason)
		}
	})

	t.Run("empty data with declared outputs is a revert", func(t *testing.T) {
		_, err := decodeResult("balanceOf", abi.Arguments{{Type: uint256T}}, nil)
		var revert *RevertError
		if !errors.As(err, &revert) {
			t.Fatalf("Expected *RevertError, got %v", err)
		}
		if revert.Reason != "" {
			t.Errorf("Expected empty reason, got %q", revert.Reason)
		}
	})

	t.Run("no declared outputs yields nil", func(t *testing.T) {
		got, err := decodeResult("deposit", abi.Arguments{}, nil)
		if err != nil {
			t.Fatalf("decodeResult failed: %v", err)
		}
		if got != nil {
			t.Errorf("Expected nil, got %v", got)
		}
	})

	t.Run("malformed data yields DecodeError", func(t *testing.T) {
		_, err := decodeResult("balanceOf", abi.Arguments{{Type: uint256T}}, []byte{1, 2, 3})
		var decodeErr *DecodeError
		if !errors.As(err, &decodeErr) {
			t.Fatalf("Expected *DecodeError, got %v", err)
		}
		if decodeErr.Method != "balanceOf" {
			t.Errorf("Expected method \"balanceOf\", got %q", decodeErr.Method)
		}
	})
}

func TestFriendlyValue(t *testing.T) {
	t.Run("rewrites addresses", func(t *testing.T) {
		got := friendlyValue(common.HexToAddress(usdtEVMHex))
		addr, ok := got.(Address)
		if !ok {
			t.Fatalf("Expected Address, got %T", got)
		}
		if addr.String() != usdtBase58 {
			t.Errorf("Expected %s, got %s", usdtBase58, addr)
		}
	})

	t.Run("rewrites address slices", func(t *testing.T) {
		got := friendlyValue([]common.Address{common.HexToAddress(usdtEVMHex)})
		addrs, ok := got.([]Address)
		if !ok || len(addrs) != 1 || addrs[0].String() != usdtBase58 {
			t.Errorf("Expected a prefixed address slice, got %v", got)
		}
	})

	t.Run("passes other values through", func(t *testing.T) {
		if got := friendlyValue(big.NewInt(5)); got.(*big.Int).Cmp(big.NewInt(5)) != 0 {
			t.Errorf("Expected passthrough, got %v", got)
		}
	})
}
