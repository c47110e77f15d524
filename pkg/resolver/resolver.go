// Copyright 2026 Canonical Ltd.
// SPDX-License-Identifier: AGPL-3.0

// Package resolver classifies inbound requests by host and resolves the
// acting identity from the browser session cookie. Marketing and chatbot
// hosts are public; only the platform host carries an identity.
package resolver

import (
	"net"
	"strings"
)

type HostType int

const (
	HostUnknown HostType = iota
	HostPlatform
	HostMarketing
	HostChatbot
)

func (h HostType) String() string {
	switch h {
	case HostPlatform:
		return "platform"
	case HostMarketing:
		return "marketing"
	case HostChatbot:
		return "chatbot"
	default:
		return "unknown"
	}
}

// Public reports whether requests on this host bypass authentication.
func (h HostType) Public() bool {
	return h == HostMarketing || h == HostChatbot
}

type Config struct {
	PlatformDomain  string
	MarketingDomain string
	ChatbotDomain   string
}

func NewConfig(platformDomain, marketingDomain, chatbotDomain string) *Config {
	c := new(Config)

	c.PlatformDomain = platformDomain
	c.MarketingDomain = marketingDomain
	c.ChatbotDomain = chatbotDomain

	return c
}

// Classify maps a request host header onto a host type. The match accepts
// the configured domain itself and any subdomain of it; when several
// configured domains match, the most specific one wins, so a platform host
// configured under the marketing domain (app.example.com under example.com)
// still classifies as platform. Unresolvable hosts come back as HostUnknown
// and the request continues unauthenticated; data access is gated
// separately by the tenancy layer.
func (c *Config) Classify(host string) HostType {
	if h, _, err := net.SplitHostPort(host); err == nil {
		host = h
	}
	host = strings.ToLower(strings.TrimSuffix(host, "."))

	candidates := []struct {
		domain   string
		hostType HostType
	}{
		{c.PlatformDomain, HostPlatform},
		{c.MarketingDomain, HostMarketing},
		{c.ChatbotDomain, HostChatbot},
	}

	matched := HostUnknown
	matchedLen := 0
	for _, candidate := range candidates {
		if matchesDomain(host, candidate.domain) && len(candidate.domain) > matchedLen {
			matched = candidate.hostType
			matchedLen = len(candidate.domain)
		}
	}

	return matched
}

func matchesDomain(host, domain string) bool {
	if domain == "" {
		return false
	}
	domain = strings.ToLower(domain)
	return host == domain || strings.HasSuffix(host, "."+domain)
}
