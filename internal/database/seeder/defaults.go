package seeder

import "hiring-board/internal/config"

// DefaultDepartment is created on first seed and assigned to the admin.
const DefaultDepartment = "Engineering"

func Defaults(cfg config.SeedConfig) []Seeder {
	return []Seeder{
		DepartmentsSeeder{Names: []string{DefaultDepartment}},
		AdminSeeder{Email: cfg.AdminEmail, Password: cfg.AdminPassword, Department: DefaultDepartment},
	}
}
