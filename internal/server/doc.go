// Copyright Mia srl
// SPDX-License-Identifier: AGPL-3.0-only or Commercial

// Package server contains the HTTP server of the nsdebug application.
// It sets up the Fiber application with the request logging middleware, the status routes and
// the routes that reconfigure and exercise the debug channel registry.
package server
