package entities

import (
	"context"
	"errors"
	"fmt"
	"testing"
)

func TestClassifyError(t *testing.T) {
	cases := []struct {
		err  error
		want ErrorClass
	}{
		{nil, ErrorClassNone},
		{ErrQuoteNotFound, ErrorClassNotFound},
		{fmt.Errorf("wrap: %w", ErrContractNotFound), ErrorClassNotFound},
		{&InvalidTransitionError{Kind: EntityKindQuote, From: "draft", To: "draft"}, ErrorClassInvalidTransition},
		{NewExternalServiceError(ExternalSystemCRM, "create_deal", 502, errors.New("bad gateway")), ErrorClassExternalService},
		{ErrEnvelopeCreationFailed, ErrorClassExternalService},
		{&ArchiveError{Bucket: "contracts", Key: "k", Err: errors.New("boom")}, ErrorClassArchive},
		{&DataQualityError{Field: "amount", Value: "x", Reason: "not a number"}, ErrorClassDataQuality},
		{errors.New("other"), ErrorClassInternal},
	}
	for _, tc := range cases {
		if got := ClassifyError(tc.err); got != tc.want {
			t.Fatalf("ClassifyError(%v) = %q, want %q", tc.err, got, tc.want)
		}
	}
}

func TestRetryable(t *testing.T) {
	timeout := NewExternalServiceError(ExternalSystemESignature, "create_envelope", 0, context.DeadlineExceeded)
	if !IsRetryable(timeout) || !timeout.Timeout() {
		t.Fatalf("timeouts must be retryable")
	}
	if !IsRetryable(fmt.Errorf("x: %w", &ArchiveError{Err: errors.New("boom")})) {
		t.Fatalf("archive errors must be retryable")
	}
	if IsRetryable(ErrQuoteNotFound) {
		t.Fatalf("not found must not be retryable")
	}
}
