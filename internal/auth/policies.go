package auth

import (
	"fmt"
	"ui-market/internal/logger"

	"github.com/casbin/casbin/v2"
)

// AdminRole is the casbin role allowed into the /admin area.
const AdminRole = "admin"

// SeedDefaultPolicies ensures that the application has a baseline set of authorization rules.
// It checks if each default policy exists before adding it, making the operation idempotent
// and safe to run on every application start. Every subject in adminSubjects
// is granted the admin role.
func SeedDefaultPolicies(e casbin.IEnforcer, log logger.Logger, adminSubjects []string) {
	log.Info("Seeding default authorization policies...")

	policies := [][]string{
		{AdminRole, "/admin/*", "GET"},
	}
	for _, p := range policies {
		if has, _ := e.HasPolicy(p); !has {
			if _, err := e.AddPolicy(p); err != nil {
				log.Error(err, fmt.Sprintf("Failed to add policy %v", p))
			}
		}
	}

	for _, subject := range adminSubjects {
		if subject == "" {
			continue
		}
		if has, _ := e.HasRoleForUser(subject, AdminRole); !has {
			if _, err := e.AddRoleForUser(subject, AdminRole); err != nil {
				log.Error(err, fmt.Sprintf("Failed to grant %s to %s", AdminRole, subject))
			}
		}
	}
	log.Info("Policy seeding complete.")
}
