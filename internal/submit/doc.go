// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package submit handles the company form: validating a name, issuing the
// matching request through the insight cache and navigating on success.
package submit
