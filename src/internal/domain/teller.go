package domain

type TellerRole string

const (
	TellerRoleTeller TellerRole = "teller"
	TellerRoleAdmin  TellerRole = "admin"
)

// Teller is the authenticated desk operator behind a request.
type Teller struct {
	ID   string
	Role TellerRole
}

func (t Teller) IsAdmin() bool {
	return t.Role == TellerRoleAdmin
}
