package net_test

import (
	"context"
	"testing"

	pnet "chatlens/internal/platform/net"
)

func TestWithRequest(t *testing.T) {
	base := context.Background()
	if pnet.WithRequest(base, "") != base {
		t.Fatal("empty id must leave ctx untouched")
	}
	if got := pnet.RequestID(pnet.WithRequest(base, "req-1")); got != "req-1" {
		t.Fatalf("RequestID = %q", got)
	}
	if got := pnet.RequestID(base); got != "" {
		t.Fatalf("RequestID on bare ctx = %q", got)
	}
}

func TestWithClient(t *testing.T) {
	base := context.Background()
	if pnet.WithClient(base, "") != base {
		t.Fatal("empty client must leave ctx untouched")
	}
	ctx := pnet.WithClient(pnet.WithRequest(base, "r"), "api")
	if pnet.Client(ctx) != "api" || pnet.RequestID(ctx) != "r" {
		t.Fatalf("client=%q request=%q", pnet.Client(ctx), pnet.RequestID(ctx))
	}
	if pnet.Client(base) != "" {
		t.Fatal("bare ctx has no client")
	}
}
