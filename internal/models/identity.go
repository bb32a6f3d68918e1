// Package models defines the record types stored and exchanged by FinKeeper:
// identities and credentials, expense/income records, monthly budgets,
// financial goals, and notes.
package models

import "strings"

// Identity is the authenticated user as seen by the rest of the application.
// It never carries password material.
type Identity struct {
	ID    string `json:"id"`
	Email string `json:"email"`
	Name  string `json:"name"`
}

// Valid reports whether the identity is structurally usable: all three
// fields present. A persisted identity failing this check is discarded
// on restore.
func (i Identity) Valid() bool {
	return i.ID != "" && i.Email != "" && i.Name != ""
}

// Credential is an Identity plus the password hash. It exists only inside
// the durable credentials collection and must never cross into session
// state; strip it with Identity() first.
type Credential struct {
	ID           string `json:"id"`
	Email        string `json:"email"`
	Name         string `json:"name"`
	PasswordHash string `json:"password"`
}

// Identity returns the credential with the password material stripped.
func (c Credential) Identity() Identity {
	return Identity{ID: c.ID, Email: c.Email, Name: c.Name}
}

// NormalizeEmail applies the canonical form used for uniqueness checks
// and login lookup: trimmed and lowercased.
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
