package domain

type Permission string

const (
	PermApproveLoans Permission = "loans:approve"
	PermViewAllLoans Permission = "loans:view_all"
)

var rolePermissions = map[RoleType][]Permission{
	RoleUser:  {},
	RoleAdmin: {PermApproveLoans, PermViewAllLoans},
}

// Actor аутентифицированный субъект запроса.
type Actor struct {
	UserID int64
	Role   RoleType
}

// Can проверяет, выдано ли роли актора разрешение p.
func (a Actor) Can(p Permission) bool {
	for _, perm := range rolePermissions[a.Role] {
		if perm == p {
			return true
		}
	}
	return false
}
