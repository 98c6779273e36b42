// Package domain contains shared domain types used across entity sub-packages.
// Entity-specific types live in sub-packages (domain/task, domain/dialog).
// This root package holds sentinel errors and the field-level validation
// error shared by all of them.
package domain
