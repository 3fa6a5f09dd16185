package enum

import "database/sql/driver"

// UserRole is the access level of a staff account.
type UserRole string

const (
	UserRoleAdmin     UserRole = "admin"
	UserRoleDoctor    UserRole = "doctor"
	UserRoleReception UserRole = "reception"
)

func (r UserRole) Value() (driver.Value, error) {
	return string(r), nil
}

func (r *UserRole) Scan(value interface{}) error {
	if value == nil {
		*r = UserRoleReception
		return nil
	}
	switch v := value.(type) {
	case string:
		*r = UserRole(v)
	case []byte:
		*r = UserRole(v)
	}
	return nil
}
