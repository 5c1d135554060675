package seeder

import "jobboard/internal/config"

func Defaults(admin config.AdminConfig) []Seeder {
	return []Seeder{
		CitiesSeeder{},
		SkillsSeeder{},
		CategoriesSeeder{},
		AdminSeeder{Email: admin.Email, Password: admin.Password},
	}
}
