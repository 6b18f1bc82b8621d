package user

import (
	"fmt"
	"strings"
)

type Role string

const (
	RoleAdmin         Role = "ADMIN"
	RoleRecruiter     Role = "RECRUITER"
	RoleHiringManager Role = "HIRING_MANAGER"
	RoleViewer        Role = "VIEWER"
)

// Roles lists every staff role.
var Roles = []Role{RoleAdmin, RoleRecruiter, RoleHiringManager, RoleViewer}

func (r Role) Valid() bool {
	for _, known := range Roles {
		if r == known {
			return true
		}
	}
	return false
}

func ParseRole(raw string) (Role, error) {
	r := Role(strings.ToUpper(strings.TrimSpace(raw)))
	if !r.Valid() {
		return "", fmt.Errorf("unknown role %q", raw)
	}
	return r, nil
}
