package snapshot

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/marcus/nexaflow/internal/models"
)

// ErrMalformed is returned when stored bytes are not a decodable snapshot.
var ErrMalformed = errors.New("malformed snapshot")

// JustNow is the display label stamped on new notifications.
const JustNow = "Just now"

// Encode serializes the whole snapshot.
func Encode(s *models.Snapshot) ([]byte, error) {
	return json.Marshal(s)
}

// Decode parses stored bytes and runs Migrate on the result.
// Any decoding failure is reported as ErrMalformed.
func Decode(data []byte) (*models.Snapshot, error) {
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) == 0 || trimmed[0] != '{' {
		return nil, fmt.Errorf("%w: not a JSON object", ErrMalformed)
	}

	var s models.Snapshot
	if err := json.Unmarshal(trimmed, &s); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformed, err)
	}

	// json cannot tell a missing user from an empty one, so check the raw keys
	var keys map[string]json.RawMessage
	if err := json.Unmarshal(trimmed, &keys); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformed, err)
	}
	_, hasUser := keys["user"]
	if raw, ok := keys["user"]; ok && string(bytes.TrimSpace(raw)) == "null" {
		hasUser = false
	}

	Migrate(&s, hasUser)
	return &s, nil
}

// Migrate fills defaults into a snapshot written by an older version.
// It is the only place schema evolution is handled.
func Migrate(s *models.Snapshot, hasUser bool) {
	if s.Tasks == nil {
		s.Tasks = []models.Task{}
	}
	if s.Projects == nil {
		s.Projects = []models.Project{}
	}
	if s.Events == nil {
		s.Events = []models.Event{}
	}
	if s.Goals == nil {
		s.Goals = []models.Goal{}
	}
	if s.Notifications == nil {
		s.Notifications = []models.PersistedNotification{}
	}
	if !hasUser {
		s.User = SeedUser
	}

	for i := range s.Notifications {
		if s.Notifications[i].Time == "" {
			s.Notifications[i].Time = JustNow
		}
	}

	for i := range s.Projects {
		p := &s.Projects[i]
		if p.Name == "" {
			p.Name = p.Title
		}
		if p.Title == "" {
			p.Title = p.Name
		}
	}

	if s.ElapsedSeconds < 0 {
		s.ElapsedSeconds = 0
	}
	// A running timer needs a label. Without one it is paused; the
	// seconds stay, as "timer set" from idle leaves them.
	if strings.TrimSpace(s.CurrentActivity) == "" {
		s.IsRunning = false
		s.CurrentActivity = ""
	}
}
