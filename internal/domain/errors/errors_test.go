package errors

import (
	stdErrors "errors"
	"fmt"
	"strings"
	"testing"
)

func TestInvalidTransitionError(t *testing.T) {
	err := error(InvalidTransitionError{From: "completed", To: "preparing"})

	var transitionErr InvalidTransitionError
	if !stdErrors.As(err, &transitionErr) {
		t.Fatalf("expected errors.As to match, got %v", err)
	}
	if transitionErr.From != "completed" || transitionErr.To != "preparing" {
		t.Fatalf("unexpected fields %+v", transitionErr)
	}
	if !strings.Contains(err.Error(), "completed") || !strings.Contains(err.Error(), "preparing") {
		t.Fatalf("message must name both statuses: %q", err.Error())
	}
}

func TestAlreadyPaidError(t *testing.T) {
	err := error(AlreadyPaidError{Reference: "ref-9"})

	var paidErr AlreadyPaidError
	if !stdErrors.As(err, &paidErr) || paidErr.Reference != "ref-9" {
		t.Fatalf("expected reference carried, got %v", err)
	}
	if !strings.Contains(err.Error(), "ref-9") {
		t.Fatalf("message must name the winning reference: %q", err.Error())
	}
}

func TestTransientStoreError(t *testing.T) {
	cause := stdErrors.New("lock timeout")
	err := error(TransientStoreError{Code: "55P03", Err: cause})

	if !stdErrors.Is(err, cause) {
		t.Fatalf("expected unwrap to reach the cause, got %v", err)
	}

	wrapped := fmt.Errorf("apply coupon: %w", err)
	var transient TransientStoreError
	if !stdErrors.As(wrapped, &transient) || transient.Code != "55P03" {
		t.Fatalf("expected errors.As through wrapping, got %v", wrapped)
	}
	if !strings.Contains(err.Error(), "55P03") {
		t.Fatalf("message must name the code: %q", err.Error())
	}
}

func TestGatewayErrorUnwrap(t *testing.T) {
	cause := stdErrors.New("connection refused")
	err := error(GatewayError{Op: "verify", Err: cause})

	if !stdErrors.Is(err, cause) {
		t.Fatalf("expected unwrap to reach the cause, got %v", err)
	}

	wrapped := fmt.Errorf("settle: %w", err)
	var gatewayErr GatewayError
	if !stdErrors.As(wrapped, &gatewayErr) || gatewayErr.Op != "verify" {
		t.Fatalf("expected errors.As through wrapping, got %v", wrapped)
	}
}
