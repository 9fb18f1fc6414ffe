package models

// Role distinguishes the two sides of the marketplace.
type Role string

const (
	RoleVendor   Role = "vendor"
	RoleCustomer Role = "customer"
)

// Identity is the authenticated caller of a core operation. It is extracted
// from the bearer token by the auth middleware and passed explicitly into
// every service method; the core holds no ambient session state.
type Identity struct {
	UserID string `json:"userId"`
	Role   Role   `json:"role"`
}

// IsVendor reports whether the caller acts on the vendor side.
func (id Identity) IsVendor() bool {
	return id.Role == RoleVendor
}
