package account

import (
	"fmt"

	"relaypost/internal/pkg/errs"
)

// Role classifies what an account may do in the relay network.
// It is a value object validated on construction and on restore from
// persistence.
type Role int

const (
	// RoleUnknown represents an invalid or undefined role.
	// This value (0) helps catch uninitialized Role values.
	RoleUnknown Role = iota

	// RoleShipper may initiate and fund deliveries.
	RoleShipper

	// RoleCourier may claim, carry, and drop off packages.
	RoleCourier

	// RoleAdmin may do both.
	RoleAdmin
)

// getRoleStrings returns the string representations of all roles.
func getRoleStrings() map[Role]string {
	return map[Role]string{
		RoleUnknown: "Unknown",
		RoleShipper: "Shipper",
		RoleCourier: "Courier",
		RoleAdmin:   "Admin",
	}
}

// getValidRoleStrings returns only the roles accepted by Validate.
func getValidRoleStrings() map[Role]string {
	//nolint:exhaustive // RoleUnknown is intentionally excluded as it's invalid
	return map[Role]string{
		RoleShipper: "Shipper",
		RoleCourier: "Courier",
		RoleAdmin:   "Admin",
	}
}

// RoleFromString parses the persisted string representation of a role.
func RoleFromString(s string) (Role, error) {
	for role, str := range getValidRoleStrings() {
		if str == s {
			return role, nil
		}
	}
	return RoleUnknown, errs.NewValueIsInvalidErrorWithCause("role is invalid",
		fmt.Errorf("%q is not a valid role", s))
}

// Validate checks that the Role is one of Shipper, Courier, or Admin.
func (r Role) Validate() error {
	if _, ok := getValidRoleStrings()[r]; !ok {
		return errs.NewValueIsInvalidErrorWithCause("role is invalid",
			fmt.Errorf("%d is not a valid role", r))
	}
	return nil
}

// String returns the human-readable role name, or "Unknown" for invalid values.
func (r Role) String() string {
	if str, ok := getRoleStrings()[r]; ok {
		return str
	}
	return "Unknown"
}

// CanInitiateDelivery reports whether the role may create and fund deliveries.
func (r Role) CanInitiateDelivery() bool {
	return r == RoleShipper || r == RoleAdmin
}

// CanCarryPackages reports whether the role may claim and carry deliveries.
func (r Role) CanCarryPackages() bool {
	return r == RoleCourier || r == RoleAdmin
}
