// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package auth holds the named authentication strategies of the API.
//
// An [Authenticator] is a registry of strategies. It is built once at startup,
// attached to every request by the HTTP pipeline and consulted by route
// handlers that need a principal:
//
//   - "local" reads an email and password from the request body and checks
//     them with [service.AuthService.Login];
//   - "jwt" reads an "Authorization: Bearer" header and resolves the token
//     owner with [service.AuthService.ParseToken] and
//     [service.AuthService.CurrentUser].
//
// Attaching the registry never accepts or rejects a request. Only an
// explicit [Authenticator.Authenticate] call can fail.
package auth
