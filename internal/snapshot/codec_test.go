package snapshot

import (
	"errors"
	"reflect"
	"testing"
	"time"

	"github.com/marcus/nexaflow/internal/models"
)

func TestSeedRoundTrip(t *testing.T) {
	seed := Seed(time.Date(2026, 1, 20, 9, 0, 0, 0, time.UTC))

	data, err := Encode(seed)
	if err != nil {
		t.Fatalf("Encode failed: %v", err)
	}
	got, err := Decode(data)
	if err != nil {
		t.Fatalf("Decode failed: %v", err)
	}
	if !reflect.DeepEqual(seed, got) {
		t.Errorf("round trip mismatch:\nwant %+v\ngot  %+v", seed, got)
	}
}

func TestDecodeMalformed(t *testing.T) {
	inputs := []string{
		"",
		"   ",
		"not json",
		"[1,2,3]",
		`"a string"`,
		`{"tasks": "nope"}`,
		`{"tasks": [`,
	}
	for _, in := range inputs {
		_, err := Decode([]byte(in))
		if !errors.Is(err, ErrMalformed) {
			t.Errorf("Decode(%q) err = %v, want ErrMalformed", in, err)
		}
	}
}

func TestDecodeFillsMissingCollections(t *testing.T) {
	// Shape written by the original store before notifications existed
	old := `{
		"tasks": [{"id": 5, "title": "Legacy", "priority": "low", "status": "todo", "dueDate": null, "createdAt": "2024-01-20T10:00:00.000Z"}],
		"isTimerRunning": false,
		"timerSeconds": 0,
		"currentTask": ""
	}`

	s, err := Decode([]byte(old))
	if err != nil {
		t.Fatalf("Decode failed: %v", err)
	}
	if len(s.Tasks) != 1 || s.Tasks[0].Title != "Legacy" {
		t.Fatalf("tasks not decoded: %+v", s.Tasks)
	}
	if s.Notifications == nil || s.Projects == nil || s.Events == nil || s.Goals == nil {
		t.Error("missing collections should become empty slices")
	}
	if s.User != SeedUser {
		t.Errorf("missing user should default to seed user, got %+v", s.User)
	}
}

func TestDecodeKeepsExplicitUser(t *testing.T) {
	s, err := Decode([]byte(`{"user": {"name": "Sam", "email": "", "role": ""}}`))
	if err != nil {
		t.Fatalf("Decode failed: %v", err)
	}
	if s.User.Name != "Sam" {
		t.Errorf("user overwritten: %+v", s.User)
	}

	s, err = Decode([]byte(`{"user": null}`))
	if err != nil {
		t.Fatalf("Decode failed: %v", err)
	}
	if s.User != SeedUser {
		t.Errorf("null user should default, got %+v", s.User)
	}
}

func TestMigrateRepairsTimer(t *testing.T) {
	tests := []struct {
		name string
		in   models.TimerState
		want models.TimerState
	}{
		{"running without label", models.TimerState{IsRunning: true, ElapsedSeconds: 40}, models.TimerState{ElapsedSeconds: 40}},
		{"set from idle", models.TimerState{ElapsedSeconds: 90}, models.TimerState{ElapsedSeconds: 90}},
		{"blank label", models.TimerState{ElapsedSeconds: 5, CurrentActivity: "  "}, models.TimerState{ElapsedSeconds: 5}},
		{"negative seconds", models.TimerState{ElapsedSeconds: -3, CurrentActivity: "Write"}, models.TimerState{CurrentActivity: "Write"}},
		{"healthy running", models.TimerState{IsRunning: true, ElapsedSeconds: 12, CurrentActivity: "Write"}, models.TimerState{IsRunning: true, ElapsedSeconds: 12, CurrentActivity: "Write"}},
	}
	for _, tc := range tests {
		s := &models.Snapshot{TimerState: tc.in}
		Migrate(s, true)
		if s.TimerState != tc.want {
			t.Errorf("%s: got %+v, want %+v", tc.name, s.TimerState, tc.want)
		}
	}
}

func TestMigrateMirrorsProjectNames(t *testing.T) {
	s := &models.Snapshot{Projects: []models.Project{{ID: 1, Title: "Only title"}, {ID: 2, Name: "Only name"}}}
	Migrate(s, true)
	if s.Projects[0].Name != "Only title" || s.Projects[1].Title != "Only name" {
		t.Errorf("names not mirrored: %+v", s.Projects)
	}
}

func TestMigrateLabelsLegacyNotifications(t *testing.T) {
	s := &models.Snapshot{Notifications: []models.PersistedNotification{{ID: 1, Title: "x", Unread: true}}}
	Migrate(s, true)
	if s.Notifications[0].Time != JustNow {
		t.Errorf("Time = %q, want %q", s.Notifications[0].Time, JustNow)
	}
}
