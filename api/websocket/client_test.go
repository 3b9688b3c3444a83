package websocket

import (
	"net/http"
	"testing"

	sdk "github.com/cosmos/cosmos-sdk/types"
)

var (
	wsAccountA = sdk.AccAddress([]byte("ws-account-a________")).String()
	wsAccountB = sdk.AccAddress([]byte("ws-account-b________")).String()
)

func TestCheckSameHostOrigin(t *testing.T) {
	tests := []struct {
		name    string
		origin  string
		host    string
		allowed bool
	}{
		{"no origin header", "", "api.example.com", true},
		{"same host", "https://api.example.com", "api.example.com", true},
		{"same host different case", "https://API.example.com", "api.example.com", true},
		{"foreign host", "https://evil.example.net", "api.example.com", false},
		{"unparseable origin", "://bad", "api.example.com", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := &http.Request{Host: tt.host, Header: http.Header{}}
			if tt.origin != "" {
				r.Header.Set("Origin", tt.origin)
			}
			if got := checkSameHostOrigin(r); got != tt.allowed {
				t.Errorf("expected %v, got %v", tt.allowed, got)
			}
		})
	}
}

func TestNormalizeAccount(t *testing.T) {
	if got := normalizeAccount(wsAccountA); got != wsAccountA {
		t.Errorf("expected canonical address back, got %q", got)
	}
	if got := normalizeAccount("not-an-address"); got != "" {
		t.Errorf("expected empty result for junk input, got %q", got)
	}
	if got := normalizeAccount(""); got != "" {
		t.Errorf("expected empty result for empty input, got %q", got)
	}
}

func TestCanAccessChannel(t *testing.T) {
	anonymous := &Client{}
	authenticated := &Client{account: wsAccountA}

	tests := []struct {
		name    string
		client  *Client
		channel string
		allowed bool
	}{
		{"public fund feed, anonymous", anonymous, "fund:fund-a", true},
		{"public payouts feed, anonymous", anonymous, "payouts:fund-a", true},
		{"public contributions feed, authenticated", authenticated, "contributions:fund-a", true},
		{"private withdrawals, anonymous", anonymous, "withdrawals:" + wsAccountA, false},
		{"private withdrawals, own account", authenticated, "withdrawals:" + wsAccountA, true},
		{"private withdrawals, other account", authenticated, "withdrawals:" + wsAccountB, false},
		{"private entitlement, own account", authenticated, "entitlement:" + wsAccountA, true},
		{"private entitlement, other account", authenticated, "entitlement:" + wsAccountB, false},
		{"unknown channel", authenticated, "admin:everything", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.client.canAccessChannel(tt.channel); got != tt.allowed {
				t.Errorf("expected %v, got %v", tt.allowed, got)
			}
		})
	}
}
