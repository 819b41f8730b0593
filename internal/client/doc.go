// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package client implements the item custody client runtime.
//
// It turns command-line arguments into calls on the server adapter and
// prints the results, or hands the terminal over to the interactive UI.
package client
