// File: /permissions/permissions.go

// Package permissions is the flat role/operation table. Every mutating route
// re-checks the caller's role here, server-side, independent of anything the
// client hides in its UI.
package permissions

import (
	"dealertrack-api/models"
)

// Operation names a single guarded action.
type Operation string

const (
	CarView   Operation = "car:view"
	CarCreate Operation = "car:create"
	CarUpdate Operation = "car:update"
	CarDelete Operation = "car:delete" // physical deletion from the allocation view

	StockIn     Operation = "stock:in"
	StockRemove Operation = "stock:remove"

	MatchView   Operation = "match:view"
	MatchCreate Operation = "match:create"
	MatchUpdate Operation = "match:update"
	MatchDelete Operation = "match:delete"

	SalespersonView   Operation = "salesperson:view"
	SalespersonManage Operation = "salesperson:manage"

	UserManage Operation = "user:manage"
	StatsView  Operation = "stats:view"
)

var viewOperations = []Operation{
	CarView, MatchView, SalespersonView, StatsView,
}

var adminOperations = append([]Operation{
	CarCreate, CarUpdate,
	StockIn, StockRemove,
	MatchCreate, MatchUpdate, MatchDelete,
}, viewOperations...)

var executiveOperations = append([]Operation{
	CarDelete, SalespersonManage, UserManage,
}, adminOperations...)

var rolePermissions = map[models.Role]map[Operation]bool{
	models.RoleExecutive: toSet(executiveOperations),
	models.RoleAdmin:     toSet(adminOperations),
	models.RoleUser:      toSet(viewOperations),
}

func toSet(ops []Operation) map[Operation]bool {
	set := make(map[Operation]bool, len(ops))
	for _, op := range ops {
		set[op] = true
	}
	return set
}

// Allowed reports whether role may perform op. Unknown roles get nothing.
func Allowed(role models.Role, op Operation) bool {
	return rolePermissions[role][op]
}
