package main

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"

	"mpesa-forms/backend/internal/forms"
	"mpesa-forms/backend/internal/verification"
)

func TestReadValues(t *testing.T) {
	values, err := readValues(strings.NewReader(`{"amount": 120.50, "transaction_type": "increase", "flag": true, "note": null}`))
	if err != nil {
		t.Fatalf("readValues: %v", err)
	}
	want := forms.Values{"amount": "120.50", "transaction_type": "increase", "flag": "true", "note": ""}
	if diff := cmp.Diff(want, values); diff != "" {
		t.Errorf("readValues mismatch (-want +got):\n%s", diff)
	}

	if _, err := readValues(strings.NewReader(`{"amount": [1]}`)); err == nil {
		t.Error("nested values should be rejected")
	}
	if _, err := readValues(strings.NewReader(`not json`)); err == nil {
		t.Error("invalid JSON should be rejected")
	}
}

func TestCheck(t *testing.T) {
	registry := forms.NewRegistry(forms.Deps{})
	ctx := context.Background()

	res := check(ctx, registry, forms.FormWithdrawal, forms.Values{"amount": "75"}, forms.Context{})
	if !res.Accepted || res.exitCode() != exitAccepted {
		t.Errorf("accepted result = %+v", res)
	}
	if _, ok := res.Data.(*forms.AmountData); !ok {
		t.Errorf("Data = %T", res.Data)
	}

	res = check(ctx, registry, forms.FormWithdrawal, forms.Values{"amount": "5"}, forms.Context{})
	if res.Accepted || len(res.Errors["amount"]) != 1 || res.exitCode() != exitRejected {
		t.Errorf("rejected result = %+v", res)
	}

	res = check(ctx, registry, forms.FormLoanRequest, forms.Values{"amount": "5"}, forms.Context{})
	if res.Error == "" || res.exitCode() != exitError {
		t.Errorf("loan without accounts = %+v, want error", res)
	}
}

func TestConfirmCode(t *testing.T) {
	svc := verification.NewService(verification.NewMemoryStore(), time.Minute, true, nil, nil)
	ctx := context.Background()

	res := confirmCode(ctx, svc, "u1", forms.Values{"verification_code": "123456"})
	if res.Accepted || len(res.Errors["verification_code"]) != 1 {
		t.Errorf("not issued = %+v", res)
	}

	issued, err := svc.Issue(ctx, "u1")
	if err != nil {
		t.Fatalf("Issue: %v", err)
	}
	res = confirmCode(ctx, svc, "u1", forms.Values{"verification_code": issued.Code})
	if !res.Accepted {
		t.Errorf("confirm = %+v", res)
	}
}
