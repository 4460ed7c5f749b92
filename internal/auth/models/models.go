package models

import "strings"

// UserIdentity is the member profile snapshot fetched once per run
type UserIdentity struct {
	ID        string
	FirstName string
	LastName  string
	Email     string
}

// FullName joins the localized first and last name
func (u *UserIdentity) FullName() string {
	return strings.TrimSpace(u.FirstName + " " + u.LastName)
}

// AuthorizationRequest holds the parameters sent to the consent page
type AuthorizationRequest struct {
	ClientID    string
	RedirectURI string
	Scopes      []string
	State       string
}

// AuthorizationCode is what the consent redirect hands back
type AuthorizationCode struct {
	Code  string
	State string
}
