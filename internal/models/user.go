package models

import "strings"

// User is the registration document supplied by the client. Apart from the
// email it is stored exactly as received.
type User map[string]any

// Email returns the normalized email of the user, or "" if missing.
func (u User) Email() string {
	email, _ := u["email"].(string)
	return strings.TrimSpace(email)
}

// Name returns the display name, if the document carries one.
func (u User) Name() string {
	name, _ := u["name"].(string)
	return name
}
