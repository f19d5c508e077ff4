// ABOUTME: Package documentation for the in-memory account registry.
// ABOUTME: Describes the registry's ownership and lifetime guarantees.

// Package store provides the email-keyed account registry backing the auth
// endpoints.
//
// The registry is a plain in-process map guarded by a single mutex. Every
// running instance owns an independent set of accounts, and all state is
// lost when the process exits. Accounts are write-once: they are created by
// signup or by the login provisioning path, never updated field-by-field,
// and never deleted.
package store
