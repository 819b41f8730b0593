// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package handler

import "errors"

// errNoHTTPAddress is returned by NewHandlers when no listen address is set.
var errNoHTTPAddress = errors.New("http address is not configured")
