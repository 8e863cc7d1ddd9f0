package models

import "strings"

// UserRecord is a hardcoded mock user. Search results carry an email, the
// protected listing carries a role; the other field is left empty.
type UserRecord struct {
	ID    int    `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email,omitempty"`
	Role  string `json:"role,omitempty"`
}

// MatchesName reports whether the record's name contains fragment,
// case-insensitively. An empty fragment matches every record.
func (u UserRecord) MatchesName(fragment string) bool {
	return containsFold(u.Name, fragment)
}

// MatchesEmail reports whether the record's email contains fragment,
// case-insensitively. An empty fragment matches every record.
func (u UserRecord) MatchesEmail(fragment string) bool {
	return containsFold(u.Email, fragment)
}

func containsFold(s, substr string) bool {
	if substr == "" {
		return true
	}
	return strings.Contains(strings.ToLower(s), strings.ToLower(substr))
}
