package cmd

import (
	"fmt"
	"log"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/spf13/cobra"
	"golang.org/x/crypto/bcrypt"

	"github.com/frahmantamala/workforce-management/internal/role"
)

type seedUser struct {
	Email        string
	Name         string
	Role         role.Role
	Department   string
	ManagerEmail string
}

// seedOrg is a small two-department org used for development and demos.
// Every account gets the password "password".
var seedOrg = []seedUser{
	{Email: "sarah.head@mail.com", Name: "Sarah Head", Role: role.DepartmentHead, Department: "Engineering"},
	{Email: "mike.manager@mail.com", Name: "Mike Manager", Role: role.Manager, Department: "Engineering", ManagerEmail: "sarah.head@mail.com"},
	{Email: "anna.assistant@mail.com", Name: "Anna Assistant", Role: role.AssistantManager, Department: "Engineering", ManagerEmail: "mike.manager@mail.com"},
	{Email: "tom.lead@mail.com", Name: "Tom Lead", Role: role.TeamLead, Department: "Engineering", ManagerEmail: "anna.assistant@mail.com"},
	{Email: "eva.dev@mail.com", Name: "Eva Developer", Role: role.Employee, Department: "Engineering", ManagerEmail: "tom.lead@mail.com"},
	{Email: "raj.dev@mail.com", Name: "Raj Developer", Role: role.Employee, Department: "Engineering", ManagerEmail: "tom.lead@mail.com"},
	{Email: "lisa.manager@mail.com", Name: "Lisa Manager", Role: role.Manager, Department: "Operations", ManagerEmail: "sarah.head@mail.com"},
	{Email: "omar.lead@mail.com", Name: "Omar Lead", Role: role.TeamLead, Department: "Operations", ManagerEmail: "lisa.manager@mail.com"},
	{Email: "nina.ops@mail.com", Name: "Nina Operator", Role: role.Employee, Department: "Operations", ManagerEmail: "omar.lead@mail.com"},
}

var seedCmd = &cobra.Command{
	Use:   "seed",
	Short: "Seed the database with sample data",
	Long:  `Seed the database with a demo organization for development and testing purposes.`,
	Run: func(cmd *cobra.Command, args []string) {
		cfg, err := loadConfig(".")
		if err != nil {
			log.Fatalf("failed to load config: %v", err)
		}

		db, err := initDB(cfg.Database)
		if err != nil {
			log.Fatalf("failed to init db: %v", err)
		}
		defer db.Close()

		if clearData {
			clearTables(db)
		}

		hash, err := bcrypt.GenerateFromPassword([]byte("password"), bcrypt.DefaultCost)
		if err != nil {
			log.Fatalf("failed to hash seed password: %v", err)
		}

		idsByEmail := make(map[string]int64)

		for _, su := range seedOrg {
			var existingID int64
			err := db.QueryRow("SELECT id FROM users WHERE email = $1", su.Email).Scan(&existingID)
			if err == nil {
				idsByEmail[su.Email] = existingID
				fmt.Printf("user already exists, skipping: %s\n", su.Email)
				continue
			}

			var managerID *int64
			if su.ManagerEmail != "" {
				if id, ok := idsByEmail[su.ManagerEmail]; ok {
					managerID = &id
				}
			}

			var newID int64
			err = db.QueryRow(
				`INSERT INTO users (email, name, password_hash, role, department, manager_id, is_active, created_at, updated_at)
				 VALUES ($1, $2, $3, $4, $5, $6, true, now(), now()) RETURNING id`,
				su.Email, su.Name, string(hash), su.Role.String(), su.Department, managerID,
			).Scan(&newID)
			if err != nil {
				log.Fatalf("failed to insert user %s: %v", su.Email, err)
			}

			idsByEmail[su.Email] = newID
			fmt.Printf("seeded user: %s (%s)\n", su.Email, su.Role)
		}

		seedTasks(db, idsByEmail)

		fmt.Println("demo organization seeded successfully")
	},
}

func seedTasks(db *sqlx.DB, idsByEmail map[string]int64) {
	leadID, okLead := idsByEmail["tom.lead@mail.com"]
	devID, okDev := idsByEmail["eva.dev@mail.com"]
	if !okLead || !okDev {
		return
	}

	var count int
	if err := db.QueryRow("SELECT COUNT(*) FROM tasks").Scan(&count); err != nil || count > 0 {
		return
	}

	tasks := []struct {
		Title    string
		Priority string
		Assignee int64
		Reporter int64
		Deadline time.Time
	}{
		{"Prepare quarterly report", "HIGH", devID, leadID, time.Now().AddDate(0, 0, 14)},
		{"Update deployment runbook", "MEDIUM", devID, leadID, time.Now().AddDate(0, 1, 0)},
		{"Review onboarding checklist", "LOW", leadID, leadID, time.Now().AddDate(0, 0, 30)},
	}

	for _, t := range tasks {
		_, err := db.Exec(
			`INSERT INTO tasks (title, priority, status, assignee_id, reporter_id, deadline, progress, created_at, updated_at)
			 VALUES ($1, $2, 'NOT_STARTED', $3, $4, $5, 0, now(), now())`,
			t.Title, t.Priority, t.Assignee, t.Reporter, t.Deadline,
		)
		if err != nil {
			log.Fatalf("failed to insert task %q: %v", t.Title, err)
		}
		fmt.Printf("seeded task: %s\n", t.Title)
	}
}

func clearTables(db *sqlx.DB) {
	// order matters for foreign keys
	tables := []string{"notifications", "task_delegations", "video_conferences", "tasks", "users"}
	for _, table := range tables {
		if _, err := db.Exec("DELETE FROM " + table); err != nil {
			log.Fatalf("failed to clear table %s: %v", table, err)
		}
	}
	fmt.Println("cleared existing data")
}
