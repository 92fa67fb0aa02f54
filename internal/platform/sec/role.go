// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package sec

import (
	"fmt"
	"strings"
)

// UserRole is the authorization level of an account. Admins manage dishes
// and their comments are attributed as "admin <author>"; guests read and
// comment.
type UserRole string

const (
	RoleAdmin UserRole = "admin"
	RoleGuest UserRole = "guest"
)

// Roles lists every role, lowest first.
var Roles = []UserRole{RoleGuest, RoleAdmin}

// ParseRole accepts a role name in any case.
func ParseRole(name string) (UserRole, error) {
	role := UserRole(strings.ToLower(strings.TrimSpace(name)))
	if !role.Valid() {
		return "", fmt.Errorf("sec: unknown role %q (want guest or admin)", name)
	}
	return role, nil
}

func (r UserRole) Valid() bool {
	return r.rank() > 0
}

// AtLeast reports whether r grants everything target grants. Unknown roles
// grant nothing.
func (r UserRole) AtLeast(target UserRole) bool {
	return r.rank() > 0 && r.rank() >= target.rank()
}

func (r UserRole) IsAdmin() bool {
	return r == RoleAdmin
}

func (r UserRole) rank() int {
	for i, role := range Roles {
		if role == r {
			return i + 1
		}
	}
	return 0
}
