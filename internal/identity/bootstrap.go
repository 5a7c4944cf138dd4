package identity

import (
	"fmt"

	"github.com/technova/leave-management/internal"
)

// Bootstrap provisions the default administrator account if it does not exist
// yet. It is invoked at process start (and by the seed command) and is
// idempotent: all work is guarded by existence checks and no process-wide
// mutable state remains afterwards.
func (s *Service) Bootstrap(adminEmail, adminPassword string) error {
	if _, err := s.repo.GetByEmail(adminEmail); err == nil {
		s.logger.Info("bootstrap: admin account already exists", "email", adminEmail)
		return nil
	}

	if _, err := s.ProvisionAccount(adminEmail, internal.RoleAdmin, adminPassword); err != nil {
		return fmt.Errorf("bootstrap admin account: %w", err)
	}

	s.logger.Info("bootstrap: admin account created", "email", adminEmail)
	return nil
}
