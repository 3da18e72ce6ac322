package domain

type UserRole string

const (
	RoleCustomer UserRole = "customer"
	RoleService  UserRole = "service"
	RoleAdmin    UserRole = "admin"
)

type User struct {
	ID       int64    `json:"id"`
	Username string   `json:"username"`
	FullName string   `json:"full_name"`
	Email    string   `json:"email"`
	Phone    string   `json:"phone"`
	Address  string   `json:"address"`
	Role     UserRole `json:"role"`
}

// IsService reports whether the user holds the privileged staff role that
// may drive delivery-state transitions for any order.
func (u *User) IsService() bool {
	return u.Role == RoleService || u.Role == RoleAdmin
}

// DisplayName is what notifier messages greet the user with.
func (u *User) DisplayName() string {
	if u.FullName != "" {
		return u.FullName
	}
	return u.Username
}

// HasDeliveryProfile reports whether the user can receive a delivery at all.
// Undeliverable orders are blocked before any verification code is sent.
func (u *User) HasDeliveryProfile() bool {
	return u.Phone != "" && u.Address != ""
}
