// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package present shapes a normalized insight into a Page and owns the
// result view's disclosure state.
//
// Disclosure state is changed only through State.Dispatch with a
// ToggleSection or ToggleCard intent. Build is a pure function of the
// insight and the state; rendering code reads the Page and never looks at
// the payload.
package present
