package sipsub_test

import (
	"testing"

	"github.com/ghettovoice/sipsub"
)

func TestRequestMethod_Equal(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name string
		m    sipsub.RequestMethod
		val  any
		want bool
	}{
		{"match", sipsub.RequestMethodSubscribe, sipsub.RequestMethodSubscribe, true},
		{"match fold", sipsub.RequestMethodNotify, sipsub.RequestMethod("notify"), true},
		{"match ptr", sipsub.RequestMethodRefer, &[]sipsub.RequestMethod{"REFER"}[0], true},
		{"not match", sipsub.RequestMethodSubscribe, sipsub.RequestMethodNotify, false},
		{"nil ptr", sipsub.RequestMethodSubscribe, (*sipsub.RequestMethod)(nil), false},
		{"not a method", sipsub.RequestMethodSubscribe, "SUBSCRIBE", false},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			t.Parallel()

			if got := c.m.Equal(c.val); got != c.want {
				t.Errorf("m.Equal(val) = %v, want %v", got, c.want)
			}
		})
	}
}

func TestResponseStatus_Classes(t *testing.T) {
	t.Parallel()

	cases := []struct {
		status          sipsub.ResponseStatus
		wantProvisional bool
		wantSuccessful  bool
	}{
		{100, true, false},
		{180, true, false},
		{200, false, true},
		{202, false, true},
		{299, false, true},
		{300, false, false},
		{481, false, false},
	}

	for _, c := range cases {
		if got := c.status.IsProvisional(); got != c.wantProvisional {
			t.Errorf("ResponseStatus(%d).IsProvisional() = %v, want %v", c.status, got, c.wantProvisional)
		}
		if got := c.status.IsSuccessful(); got != c.wantSuccessful {
			t.Errorf("ResponseStatus(%d).IsSuccessful() = %v, want %v", c.status, got, c.wantSuccessful)
		}
	}
}

func TestResponseStatus_IsUsageTerminating(t *testing.T) {
	t.Parallel()

	cases := []struct {
		status sipsub.ResponseStatus
		want   bool
	}{
		{sipsub.ResponseStatusMethodNotAllowed, true},
		{sipsub.ResponseStatusTransactionNotExist, true},
		{sipsub.ResponseStatusBadEvent, true},
		{sipsub.ResponseStatusNotImplemented, true},
		{sipsub.ResponseStatusOK, false},
		{400, false},
		{403, false},
		{sipsub.ResponseStatusServerInternalError, false},
		{503, false},
		{603, false},
	}

	for _, c := range cases {
		if got := c.status.IsUsageTerminating(); got != c.want {
			t.Errorf("ResponseStatus(%d).IsUsageTerminating() = %v, want %v", c.status, got, c.want)
		}
	}
}

func TestRequest_Validate(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name    string
		req     *sipsub.Request
		wantErr bool
	}{
		{"nil", nil, true},
		{"no method", &sipsub.Request{CSeq: 1}, true},
		{"valid", &sipsub.Request{Method: sipsub.RequestMethodSubscribe, CSeq: 1}, false},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			t.Parallel()

			if err := c.req.Validate(); (err != nil) != c.wantErr {
				t.Errorf("req.Validate() error = %v, wantErr %v", err, c.wantErr)
			}
		})
	}
}

func TestResponse_Validate(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name    string
		res     *sipsub.Response
		wantErr bool
	}{
		{"nil", nil, true},
		{"zero status", &sipsub.Response{}, true},
		{"status too low", &sipsub.Response{Status: 99}, true},
		{"status too high", &sipsub.Response{Status: 700}, true},
		{"valid", &sipsub.Response{Status: 200}, false},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			t.Parallel()

			if err := c.res.Validate(); (err != nil) != c.wantErr {
				t.Errorf("res.Validate() error = %v, wantErr %v", err, c.wantErr)
			}
		})
	}
}
