// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package app

import (
	"github.com/jeranaias/salesbrief/internal/insight"
)

// RouteMsg moves the program to the result view for Key.
type RouteMsg struct {
	Key insight.Key
}

// submitDoneMsg reports the outcome of a form submission.
type submitDoneMsg struct {
	Company string
	Quick   bool
	Err     error
}

// fetchDoneMsg delivers a cache read for the result view.
type fetchDoneMsg struct {
	Key    insight.Key
	Result *insight.Result
	Err    error
}

// cacheClearedMsg reports the upstream cache clear.
type cacheClearedMsg struct {
	Company string
	Err     error
}

// exportedMsg reports a brief written to disk.
type exportedMsg struct {
	Path string
	Err  error
}

// clipboardMsg reports a copy to the system clipboard.
type clipboardMsg struct {
	Err error
}
