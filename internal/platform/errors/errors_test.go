package errors

import (
	"errors"
	"fmt"
	"testing"
)

func TestErrorIsMatchesByCode(t *testing.T) {
	base := New(CodeOutOfStock, "item fora de estoque")
	other := New(CodeOutOfStock, "different message, same code")

	if !errors.Is(base, other) {
		t.Fatal("expected errors with equal codes to match")
	}
	if errors.Is(base, New(CodeInsufficientCoins, "coins")) {
		t.Fatal("expected errors with different codes not to match")
	}
}

func TestWrapPreservesCause(t *testing.T) {
	cause := errors.New("disk on fire")
	wrapped := Wrap(CodeUnavailable, "store write failed", cause)

	if !errors.Is(wrapped, cause) {
		t.Fatal("expected wrapped cause to be reachable via errors.Is")
	}
	if wrapped.Error() != "store write failed" {
		t.Fatalf("expected internal message, got %q", wrapped.Error())
	}
}

func TestCodeOfWalksErrorChain(t *testing.T) {
	inner := New(CodeNotFound, "player missing")
	outer := fmt.Errorf("load scope: %w", inner)

	if got := CodeOf(outer); got != CodeNotFound {
		t.Fatalf("expected NOT_FOUND, got %s", got)
	}
	if got := CodeOf(errors.New("plain")); got != CodeUnknown {
		t.Fatalf("expected UNKNOWN for plain error, got %s", got)
	}
}

func TestPreconditionCodes(t *testing.T) {
	if !CodeInsufficientCoins.Precondition() {
		t.Fatal("expected INSUFFICIENT_COINS to be a precondition failure")
	}
	if !CodeOutOfStock.Precondition() {
		t.Fatal("expected OUT_OF_STOCK to be a precondition failure")
	}
	if CodeNotFound.Precondition() {
		t.Fatal("expected NOT_FOUND not to be a precondition failure")
	}
	if CodeUnavailable.Precondition() {
		t.Fatal("expected UNAVAILABLE not to be a precondition failure")
	}
}
