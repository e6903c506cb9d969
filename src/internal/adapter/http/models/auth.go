package models

import (
	"strings"
)

const (
	RoleTeller = "teller"
	RoleAdmin  = "admin"
)

type TokenRequest struct {
	TellerID string `json:"tellerId"`
	Role     string `json:"role,omitempty"`
}

func (r TokenRequest) Validate() error {
	var errs validationErrors
	if strings.TrimSpace(r.TellerID) == "" {
		errs.add("tellerId is required")
	}
	switch strings.ToLower(strings.TrimSpace(r.Role)) {
	case "", RoleTeller, RoleAdmin:
	default:
		errs.add("role must be one of teller, admin")
	}
	return errs.err()
}

type TokenResponse struct {
	Token     string `json:"token"`
	TokenType string `json:"tokenType"`
	TellerID  string `json:"tellerId"`
	Role      string `json:"role"`
	ExpiresAt string `json:"expiresAt"`
}
