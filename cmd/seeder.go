package cmd

import (
	"fmt"
	"log"
	"time"

	"github.com/danuprasetya/hr-management/internal/profile"
	"github.com/danuprasetya/hr-management/internal/rbac"
	"github.com/google/uuid"
	"github.com/spf13/cobra"
	"golang.org/x/crypto/bcrypt"
)

var seedCmd = &cobra.Command{
	Use:   "seed",
	Short: "Seed the database with sample data",
	Long:  `Seed the database with one account per role for development and testing purposes.`,
	Run: func(cmd *cobra.Command, args []string) {
		cfg, err := loadConfig(".")
		if err != nil {
			log.Fatalf("failed to load config: %v", err)
		}

		_, db, err := initDB(cfg.Database)
		if err != nil {
			log.Fatalf("failed to init db: %v", err)
		}

		if clearData {
			for _, table := range []string{"claims", "announcements", "user_profiles", "credentials"} {
				if err := db.Exec(fmt.Sprintf("DELETE FROM %s", table)).Error; err != nil {
					log.Fatalf("failed to clear %s: %v", table, err)
				}
			}
			fmt.Println("Cleared existing data")
		}

		password := "password123"
		hash, _ := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)

		accounts := []struct {
			Email      string
			Name       string
			Role       rbac.Role
			Department rbac.Department
		}{
			{"superadmin@hr.local", "Sari Super", rbac.RoleSuperAdmin, rbac.DeptOperations},
			{"admin@hr.local", "Agus Admin", rbac.RoleAdmin, rbac.DeptOperations},
			{"hr@hr.local", "Hana HR", rbac.RoleHRManager, rbac.DeptHumanResources},
			{"deptmanager@hr.local", "Dewi Manager", rbac.RoleDepartmentManager, rbac.DeptEngineering},
			{"lead@hr.local", "Lukman Lead", rbac.RoleTeamLead, rbac.DeptEngineering},
			{"senior@hr.local", "Santi Senior", rbac.RoleSeniorEmployee, rbac.DeptEngineering},
			{"employee@hr.local", "Eko Employee", rbac.RoleEmployee, rbac.DeptEngineering},
			{"intern@hr.local", "Indra Intern", rbac.RoleIntern, rbac.DeptEngineering},
		}

		for _, a := range accounts {
			var exists int
			row := db.Raw("SELECT 1 FROM credentials WHERE email = ?", a.Email).Row()
			if err := row.Scan(&exists); err == nil {
				fmt.Printf("account %s already exists, skipping\n", a.Email)
				continue
			}

			id := uuid.New().String()
			if err := db.Exec(
				"INSERT INTO credentials (id, email, display_name, password_hash, email_verified, created_at) VALUES (?, ?, ?, ?, true, now())",
				id, a.Email, a.Name, string(hash),
			).Error; err != nil {
				log.Fatalf("failed to insert credential %s: %v", a.Email, err)
			}

			employeeID := profile.GenerateEmployeeID(time.Now())
			if err := db.Exec(
				`INSERT INTO user_profiles (id, email, display_name, role, department, employee_id, joined_at, status, created_at, updated_at)
				 VALUES (?, ?, ?, ?, ?, ?, now(), ?, now(), now())`,
				id, a.Email, a.Name, string(a.Role), string(a.Department), employeeID, string(profile.StatusActive),
			).Error; err != nil {
				log.Fatalf("failed to insert profile %s: %v", a.Email, err)
			}

			fmt.Printf("Seeded %s account: %s (employee id %s)\n", a.Role, a.Email, employeeID)
			// ids collide when two accounts land in the same millisecond
			time.Sleep(2 * time.Millisecond)
		}

		announcements := []struct {
			Title string
			Body  string
		}{
			{"Welcome aboard", "The HR portal is live. Check your profile details and report anything off to HR."},
			{"Claim policy update", "Expense claims below Rp 100.000 are approved automatically."},
		}

		var adminID string
		if err := db.Raw("SELECT id FROM credentials WHERE email = ?", "admin@hr.local").Row().Scan(&adminID); err != nil {
			log.Fatalf("failed to look up admin id: %v", err)
		}

		for _, an := range announcements {
			var exists int
			row := db.Raw("SELECT 1 FROM announcements WHERE title = ?", an.Title).Row()
			if err := row.Scan(&exists); err == nil {
				continue
			}
			if err := db.Exec(
				"INSERT INTO announcements (title, body, author_id, pinned, is_active, published_at, created_at, updated_at) VALUES (?, ?, ?, false, true, now(), now(), now())",
				an.Title, an.Body, adminID,
			).Error; err != nil {
				log.Fatalf("failed to insert announcement %q: %v", an.Title, err)
			}
			fmt.Printf("Seeded announcement: %s\n", an.Title)
		}

		fmt.Println("Seeding complete")
	},
}
