// Package auth implements a minimal authentication API: user registration,
// password login, and bearer-token gating of protected routes.
//
// The package exposes the building blocks (credential hashing, token
// issuance and validation, user repository, HTTP controller) while cmd/server
// wires them into a running service.
package auth
