// Copyright 2026 Canonical Ltd.
// SPDX-License-Identifier: AGPL-3.0

package resolver

import (
	"testing"
)

func TestConfig_Classify(t *testing.T) {
	config := NewConfig("app.example.com", "example.com", "chat.example.com")

	testCases := []struct {
		name     string
		host     string
		expected HostType
	}{
		{"platform host", "app.example.com", HostPlatform},
		{"platform subdomain", "eu.app.example.com", HostPlatform},
		{"platform host with port", "app.example.com:8080", HostPlatform},
		{"marketing host", "example.com", HostMarketing},
		{"marketing www", "www.example.com", HostMarketing},
		{"chatbot host", "chat.example.com", HostChatbot},
		{"chatbot subdomain", "widget.chat.example.com", HostChatbot},
		{"case insensitive", "APP.Example.COM", HostPlatform},
		{"trailing dot", "app.example.com.", HostPlatform},
		{"unrelated host", "evil.com", HostUnknown},
		{"suffix but not subdomain", "notexample.com", HostUnknown},
		{"empty host", "", HostUnknown},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			if got := config.Classify(tc.host); got != tc.expected {
				t.Errorf("Classify(%q) = %s, expected %s", tc.host, got, tc.expected)
			}
		})
	}
}

// The platform and chatbot domains commonly nest under the marketing
// domain; the deepest configured domain must win no matter the order the
// domains are declared in.
func TestConfig_ClassifyNestedDomains(t *testing.T) {
	config := NewConfig("app.example.com", "example.com", "chat.app.example.com")

	testCases := []struct {
		name     string
		host     string
		expected HostType
	}{
		{"platform nested under marketing", "app.example.com", HostPlatform},
		{"platform subdomain nested under marketing", "eu.app.example.com", HostPlatform},
		{"chatbot nested under platform", "chat.app.example.com", HostChatbot},
		{"chatbot subdomain nested under platform", "widget.chat.app.example.com", HostChatbot},
		{"marketing apex", "example.com", HostMarketing},
		{"marketing sibling subdomain", "www.example.com", HostMarketing},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			if got := config.Classify(tc.host); got != tc.expected {
				t.Errorf("Classify(%q) = %s, expected %s", tc.host, got, tc.expected)
			}
		})
	}
}

func TestConfig_ClassifyUnconfiguredDomains(t *testing.T) {
	// only the platform domain is configured
	config := NewConfig("app.example.com", "", "")

	if got := config.Classify("example.com"); got != HostUnknown {
		t.Errorf("expected HostUnknown for unconfigured marketing domain, got %s", got)
	}
	if got := config.Classify("app.example.com"); got != HostPlatform {
		t.Errorf("expected HostPlatform, got %s", got)
	}
}

func TestHostType_Public(t *testing.T) {
	testCases := []struct {
		hostType HostType
		public   bool
	}{
		{HostMarketing, true},
		{HostChatbot, true},
		{HostPlatform, false},
		{HostUnknown, false},
	}

	for _, tc := range testCases {
		t.Run(tc.hostType.String(), func(t *testing.T) {
			if got := tc.hostType.Public(); got != tc.public {
				t.Errorf("%s.Public() = %v, expected %v", tc.hostType, got, tc.public)
			}
		})
	}
}
