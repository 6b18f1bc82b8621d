// Package access holds the role → capability table consulted at the HTTP
// boundary. Services never check roles themselves.
package access

import "hiring-board/internal/domain/user"

type Capability string

const (
	JobsRead      Capability = "jobs.read"
	JobsWrite     Capability = "jobs.write"
	JobsReview    Capability = "jobs.review"
	JobsPublish   Capability = "jobs.publish"
	JobsUnpublish Capability = "jobs.unpublish"
	JobsArchive   Capability = "jobs.archive"
	JobsRestore   Capability = "jobs.restore"

	DepartmentsRead  Capability = "departments.read"
	DepartmentsWrite Capability = "departments.write"

	ApplicationsRead Capability = "applications.read"

	UsersRegister Capability = "users.register"
	UsersMe       Capability = "users.me"
)

var (
	allStaff   = user.Roles
	jobEditors = []user.Role{user.RoleAdmin, user.RoleRecruiter, user.RoleHiringManager}
	publishers = []user.Role{user.RoleAdmin, user.RoleRecruiter}
	adminsOnly = []user.Role{user.RoleAdmin}
)

var table = map[Capability][]user.Role{
	JobsRead:      allStaff,
	JobsWrite:     jobEditors,
	JobsReview:    jobEditors,
	JobsPublish:   publishers,
	JobsUnpublish: publishers,
	JobsArchive:   publishers,
	JobsRestore:   publishers,

	DepartmentsRead:  allStaff,
	DepartmentsWrite: adminsOnly,

	ApplicationsRead: jobEditors,

	UsersRegister: adminsOnly,
	UsersMe:       allStaff,
}

// Allows reports whether role holds capability. Unknown capabilities and
// unknown roles are always denied.
func Allows(role user.Role, c Capability) bool {
	roles, ok := table[c]
	if !ok {
		return false
	}
	for _, r := range roles {
		if r == role {
			return true
		}
	}
	return false
}
