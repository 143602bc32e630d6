// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package handler

import "errors"

var (
	// errNoHandlersAreCreated is returned by NewHandlers when no HTTP address
	// is configured. It is treated as a fatal misconfiguration at startup.
	errNoHandlersAreCreated = errors.New("no handlers are created")

	// errNoServices is returned by NewHandlers when called without services.
	errNoServices = errors.New("no services provided")
)
