package forms

import (
	"reflect"
	"testing"
	"time"

	"github.com/marcus/nexaflow/internal/models"
)

var now = time.Date(2026, 2, 18, 10, 0, 0, 0, time.UTC) // a Wednesday

func TestTaskFormInput(t *testing.T) {
	f := NewTaskForm()
	if f.Priority != string(models.TaskPriorityMedium) || f.Status != string(models.TaskStatusTodo) {
		t.Fatalf("defaults = %q/%q", f.Priority, f.Status)
	}
	f.Title = "  Draft spec "
	f.Assignee = " sam "
	f.Due = "tomorrow"

	in, err := f.Input(now)
	if err != nil {
		t.Fatalf("Input failed: %v", err)
	}
	if in.Title != "Draft spec" || in.Assignee != "sam" {
		t.Errorf("fields not trimmed: %+v", in)
	}
	if in.DueDate == nil || *in.DueDate != models.MustDate("2026-02-19") {
		t.Errorf("due = %v, want 2026-02-19", in.DueDate)
	}

	f.Due = ""
	in, err = f.Input(now)
	if err != nil || in.DueDate != nil {
		t.Errorf("empty due: %v, %v", in.DueDate, err)
	}

	f.Due = "someday"
	if _, err := f.Input(now); err == nil {
		t.Error("expected error for unparseable due date")
	}
}

func TestProjectFormInput(t *testing.T) {
	f := NewProjectForm()
	f.Name = "Website"
	f.Team = "alice, , bob ,"
	f.End = "2026-04-01"

	in, err := f.Input(now)
	if err != nil {
		t.Fatalf("Input failed: %v", err)
	}
	if !reflect.DeepEqual(in.Team, []string{"alice", "bob"}) {
		t.Errorf("team = %q", in.Team)
	}
	if in.EndDate == nil || in.EndDate.String() != "2026-04-01" {
		t.Errorf("end = %v", in.EndDate)
	}
	if in.Status != models.ProjectStatusPlanning {
		t.Errorf("status = %s", in.Status)
	}
}

func TestValidators(t *testing.T) {
	if err := required(errTitleRequired)("   "); err != errTitleRequired {
		t.Errorf("blank title err = %v", err)
	}
	if err := required(errTitleRequired)("x"); err != nil {
		t.Errorf("title err = %v", err)
	}
	if err := validateDate(""); err != nil {
		t.Errorf("empty date err = %v", err)
	}
	if err := validateDate("not a date"); err == nil {
		t.Error("expected error for bad date")
	}
}

func TestUserFormRoundTrip(t *testing.T) {
	u := models.User{Name: "Sam", Email: "sam@example.com", Role: "Lead"}
	if got := NewUserForm(u).User(); got != u {
		t.Errorf("got %+v", got)
	}
}

func TestFormsBuild(t *testing.T) {
	if NewTaskForm().Form() == nil || NewProjectForm().Form() == nil || NewUserForm(models.User{}).Form() == nil {
		t.Error("nil form")
	}
}
