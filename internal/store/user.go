package store

import (
	"net/mail"
	"strings"

	"github.com/marcus/nexaflow/internal/models"
)

// User returns the stored profile.
func (s *Store) User() models.User {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state.User
}

// SetUser replaces the profile. Name is required; a non-empty email must
// be a bare address.
func (s *Store) SetUser(u models.User) error {
	u.Name = strings.TrimSpace(u.Name)
	u.Email = strings.TrimSpace(u.Email)
	u.Role = strings.TrimSpace(u.Role)
	if u.Name == "" {
		return invalid("name", "is required")
	}
	if u.Email != "" {
		addr, err := mail.ParseAddress(u.Email)
		if err != nil || addr.Address != u.Email {
			return invalid("email", "%q is not a valid address", u.Email)
		}
	}
	return s.mutate(func(st *models.Snapshot) (bool, error) {
		if st.User == u {
			return false, nil
		}
		st.User = u
		return true, nil
	})
}
