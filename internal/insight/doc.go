// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package insight provides the HTTP client for the sales insight service.
//
// The service runs a set of research agents (research, news, financial,
// social media) and a synthesizer, and returns one deeply nested JSON
// document per request. This package only moves bytes: it builds requests,
// performs exactly one exchange per call and hands back the decoded but
// untyped payload. Reading the payload is the job of package normalize.
//
// # Key Types
//
//   - Client: HTTP client for the service
//   - Key: cache identity (company name + request kind)
//   - Request / QuickRequest: request bodies
//   - Result: raw payload plus transport metadata
//   - RequestError: the single error type, categorized by ErrorKind
//
// # Usage
//
//	client := insight.NewClient(&insight.ClientConfig{BaseURL: url})
//	res, err := client.GenerateFull(ctx, insight.Request{
//	    CompanyName:   "Acme Corp",
//	    TimeframeDays: 30,
//	    Priority:      insight.PriorityHigh,
//	})
//
// The client never retries. A failed call is reported once; deciding
// whether to try again belongs to the user.
package insight
