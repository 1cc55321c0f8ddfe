package eos

import (
	"errors"
	"strings"
	"testing"

	eosgo "github.com/eoscanada/eos-go"
)

func TestRandomAccountName_Shape(t *testing.T) {
	seen := map[string]bool{}
	for i := 0; i < 50; i++ {
		name := randomAccountName()
		if len(name) != 12 {
			t.Fatalf("expected 12 characters, got %q", name)
		}
		if name[0] >= '1' && name[0] <= '5' {
			t.Fatalf("first character must be a letter, got %q", name)
		}
		for _, r := range name {
			if !strings.ContainsRune(nameAlphabet, r) {
				t.Fatalf("character %q outside the a-z1-5 alphabet in %q", r, name)
			}
		}
		seen[name] = true
	}
	if len(seen) < 2 {
		t.Fatalf("names do not look random: %v", seen)
	}
}

func TestClassifyFault_Nil(t *testing.T) {
	if err := ClassifyFault(nil); err != nil {
		t.Fatalf("expected nil, got %v", err)
	}
}

func TestClassifyFault_StructuredResourceError(t *testing.T) {
	apiErr := eosgo.APIError{Code: 500, Message: "Internal Service Error"}
	apiErr.ErrorStruct.Name = "tx_cpu_usage_exceeded"
	apiErr.ErrorStruct.What = "Transaction exceeded the current CPU usage limit imposed on the transaction"

	got := ClassifyFault(apiErr)
	if !errors.Is(got, ErrResourceInsufficient) {
		t.Fatalf("want ErrResourceInsufficient, got %v", got)
	}
}

func TestClassifyFault_StructuredOtherError(t *testing.T) {
	apiErr := eosgo.APIError{Code: 500, Message: "Internal Service Error"}
	apiErr.ErrorStruct.Name = "overdrawn_balance"
	apiErr.ErrorStruct.What = "overdrawn balance"

	got := ClassifyFault(apiErr)
	if errors.Is(got, ErrResourceInsufficient) {
		t.Fatalf("non-resource fault misclassified: %v", got)
	}
}

func TestClassifyFault_SubstringFallback(t *testing.T) {
	got := ClassifyFault(errors.New("billed CPU time is greater than the maximum"))
	if !errors.Is(got, ErrResourceInsufficient) {
		t.Fatalf("want ErrResourceInsufficient via fallback, got %v", got)
	}

	got = ClassifyFault(errors.New("connection refused"))
	if errors.Is(got, ErrResourceInsufficient) {
		t.Fatalf("unrelated fault misclassified: %v", got)
	}
}

func TestToAssetUnits(t *testing.T) {
	tests := []struct {
		in   float64
		want int64
	}{
		{1, 10000},
		{0.001, 10},
		{3.45, 34500},
		{0.00009, 1},
	}
	for _, tc := range tests {
		if got := toAssetUnits(tc.in); got != tc.want {
			t.Fatalf("toAssetUnits(%v) = %d, want %d", tc.in, got, tc.want)
		}
	}
}

func TestParseQuantity(t *testing.T) {
	v, err := parseQuantity("12.3456 EOS")
	if err != nil || v != 12.3456 {
		t.Fatalf("parseQuantity: got (%v, %v)", v, err)
	}
	if _, err := parseQuantity(""); err == nil {
		t.Fatalf("expected error for empty quantity")
	}
	if _, err := parseQuantity("abc EOS"); err == nil {
		t.Fatalf("expected error for non-numeric quantity")
	}
}
