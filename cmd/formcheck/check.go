package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strconv"

	"mpesa-forms/backend/internal/forms"
	"mpesa-forms/backend/internal/verification"
)

// result is the JSON document printed for one submission.
type result struct {
	Form     string              `json:"form"`
	Accepted bool                `json:"accepted"`
	Data     any                 `json:"data,omitempty"`
	Errors   map[string][]string `json:"errors,omitempty"`
	Error    string              `json:"error,omitempty"`
}

func (r result) exitCode() int {
	switch {
	case r.Accepted:
		return exitAccepted
	case r.Error != "":
		return exitError
	default:
		return exitRejected
	}
}

// readValues decodes a flat JSON object. Numbers and booleans are taken in their JSON spelling so
// amounts can be sent either quoted or bare; null reads as empty.
func readValues(r io.Reader) (forms.Values, error) {
	var raw map[string]json.RawMessage
	if err := json.NewDecoder(r).Decode(&raw); err != nil {
		return nil, fmt.Errorf("decode submission: %w", err)
	}
	values := make(forms.Values, len(raw))
	for name, msg := range raw {
		var s string
		if err := json.Unmarshal(msg, &s); err == nil {
			values[name] = s
			continue
		}
		var n json.Number
		if err := json.Unmarshal(msg, &n); err == nil {
			values[name] = n.String()
			continue
		}
		var b bool
		if err := json.Unmarshal(msg, &b); err == nil {
			values[name] = strconv.FormatBool(b)
			continue
		}
		return nil, fmt.Errorf("field %q: expected a string, number or boolean", name)
	}
	return values, nil
}

func check(ctx context.Context, registry forms.Registry, name string, raw forms.Values, fc forms.Context) result {
	res := result{Form: name}
	validate, ok := registry[name]
	if !ok {
		res.Error = fmt.Sprintf("unknown or unavailable form %q", name)
		return res
	}
	data, err := validate(ctx, raw, fc)
	return res.with(data, err)
}

func confirmCode(ctx context.Context, svc *verification.Service, userID string, raw forms.Values) result {
	res := result{Form: forms.FormAccountVerification}
	err := svc.Confirm(ctx, userID, raw)
	switch {
	case errors.Is(err, verification.ErrCodeExpired), errors.Is(err, verification.ErrCodeMismatch):
		res.Errors = map[string][]string{"verification_code": {codeMessage(err)}}
		return res
	}
	return res.with(nil, err)
}

func codeMessage(err error) string {
	if errors.Is(err, verification.ErrCodeExpired) {
		return "This code has expired. Request a new one."
	}
	return "Invalid verification code."
}

func (r result) with(data any, err error) result {
	if errs, ok := forms.AsErrors(err); ok {
		r.Errors = errs.Messages()
		return r
	}
	if err != nil {
		r.Error = err.Error()
		return r
	}
	r.Accepted = true
	r.Data = data
	return r
}
