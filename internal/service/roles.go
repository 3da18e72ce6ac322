package service

import "github.com/arun-kumar2004/TastyCart/internal/domain"

type Role int

const (
	RoleOther Role = iota
	RoleOwner
	RoleService
)

// RoleOf resolves what an actor may do to a given order. Ownership wins
// over the service role: a staff member acting on their own order is the
// owner, so OTP verification cancels rather than completes it.
func RoleOf(actor *domain.User, order *domain.Order) Role {
	if order != nil && actor.ID == order.UserID {
		return RoleOwner
	}
	if actor.IsService() {
		return RoleService
	}
	return RoleOther
}
