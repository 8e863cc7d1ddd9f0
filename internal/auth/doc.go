// Package auth holds the authorization primitives of the greeting service.
//
// This package implements:
//   - The closed Role and Permission enumerations
//   - The immutable role to permission table
//   - The per-request Identity value
//   - Identity resolution from an incoming request
//
// There is no credential verification here. MockResolver attaches a fixed
// identity to every request; a real resolver replaces it without touching the
// permission or role checks in the middleware package.
package auth
