package cmd

import (
	"bytes"
	"encoding/json"
	"errors"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/marcus/nexaflow/internal/db"
	"github.com/marcus/nexaflow/internal/models"
	"github.com/marcus/nexaflow/internal/store"
)

// resetFlags restores every flag in the tree to its default so that
// commands run back to back in one process do not leak values.
func resetFlags(c *cobra.Command) {
	reset := func(f *pflag.Flag) {
		_ = f.Value.Set(f.DefValue)
		f.Changed = false
	}
	c.Flags().VisitAll(reset)
	c.PersistentFlags().VisitAll(reset)
	for _, sub := range c.Commands() {
		resetFlags(sub)
	}
}

// run executes the CLI against dir and returns what it printed to stdout.
func run(t *testing.T, dir string, args ...string) (string, error) {
	t.Helper()
	origBaseDir := baseDir
	t.Cleanup(func() {
		baseDir = origBaseDir
		resetFlags(rootCmd)
	})

	oldOut := os.Stdout
	r, w, _ := os.Pipe()
	os.Stdout = w
	done := make(chan string)
	go func() {
		var buf bytes.Buffer
		io.Copy(&buf, r)
		done <- buf.String()
	}()

	rootCmd.SetArgs(append([]string{"--dir", dir}, args...))
	err := rootCmd.Execute()

	w.Close()
	os.Stdout = oldOut
	out := <-done
	resetFlags(rootCmd)
	return out, err
}

func mustRun(t *testing.T, dir string, args ...string) string {
	t.Helper()
	out, err := run(t, dir, args...)
	if err != nil {
		t.Fatalf("%s: %v\n%s", strings.Join(args, " "), err, out)
	}
	return out
}

// openSaved reads the snapshot the CLI left on disk.
func openSaved(t *testing.T, dir string) *store.Store {
	t.Helper()
	s, err := store.Open(db.NewFileRepository(filepath.Join(dir, db.StateDir)))
	if err != nil {
		t.Fatalf("open saved store: %v", err)
	}
	t.Cleanup(func() { s.Close() })
	return s
}

func TestInitWritesSnapshot(t *testing.T) {
	dir := t.TempDir()
	out := mustRun(t, dir, "init")
	if !strings.Contains(out, "INITIALIZED .nexaflow/") {
		t.Errorf("unexpected output: %q", out)
	}
	if _, err := os.Stat(filepath.Join(dir, db.StateDir, "state.json")); err != nil {
		t.Errorf("snapshot not written: %v", err)
	}

	out = mustRun(t, dir, "init")
	if !strings.Contains(out, "already exists") {
		t.Errorf("second init: %q", out)
	}
}

func TestTaskLifecycle(t *testing.T) {
	dir := t.TempDir()
	mustRun(t, dir, "init")

	out := mustRun(t, dir, "task", "add", "Write report", "-p", "high", "--due", "2026-05-01", "--json")
	var task models.Task
	if err := json.Unmarshal([]byte(out), &task); err != nil {
		t.Fatalf("decode %q: %v", out, err)
	}
	if task.Priority != models.TaskPriorityHigh || task.DueDate.String() != "2026-05-01" {
		t.Errorf("created %+v", task)
	}

	id := jsonID(task.ID)
	mustRun(t, dir, "task", "update", id, "--status", "done", "--clear-due")

	got, ok := openSaved(t, dir).Task(task.ID)
	if !ok {
		t.Fatal("task missing after update")
	}
	if got.Status != models.TaskStatusCompleted || got.DueDate != nil {
		t.Errorf("after update: %+v", got)
	}

	mustRun(t, dir, "task", "rm", id)
	if _, ok := openSaved(t, dir).Task(task.ID); ok {
		t.Error("task still present after rm")
	}
}

func TestCreationNotificationListed(t *testing.T) {
	dir := t.TempDir()
	mustRun(t, dir, "init")
	mustRun(t, dir, "project", "add", "Launch", "--team", "ana, raj")

	out := mustRun(t, dir, "notifications", "--json")
	var resp struct {
		Unread        int                       `json:"unread"`
		Notifications []models.NotificationView `json:"notifications"`
	}
	if err := json.Unmarshal([]byte(out), &resp); err != nil {
		t.Fatalf("decode %q: %v", out, err)
	}
	if len(resp.Notifications) == 0 || resp.Notifications[0].Icon != "FolderKanban" {
		t.Fatalf("first notification = %+v", resp.Notifications)
	}

	key := resp.Notifications[0].Key
	mustRun(t, dir, "notifications", "read", key)
	for _, n := range openSaved(t, dir).Notifications() {
		if n.Key().String() == key && n.Header().Unread {
			t.Error("notification still unread")
		}
	}
}

func TestErrorsUseJSONCodes(t *testing.T) {
	dir := t.TempDir()
	mustRun(t, dir, "init")

	tests := []struct {
		args []string
		code string
	}{
		{[]string{"task", "show", "999", "--json"}, "not_found"},
		{[]string{"task", "show", "abc", "--json"}, "invalid_input"},
		{[]string{"task", "add", "X", "-p", "extreme", "--json"}, "invalid_input"},
		{[]string{"goal", "add", "Run", "--target", "-1", "--json"}, "invalid_input"},
		{[]string{"notifications", "read", "task:nope", "--json"}, "invalid_input"},
	}
	for _, tc := range tests {
		out, err := run(t, dir, tc.args...)
		if err == nil {
			t.Errorf("%v: expected error", tc.args)
			continue
		}
		var resp struct {
			Error struct {
				Code string `json:"code"`
			} `json:"error"`
		}
		if err := json.Unmarshal([]byte(out), &resp); err != nil {
			t.Errorf("%v: decode %q: %v", tc.args, out, err)
			continue
		}
		if resp.Error.Code != tc.code {
			t.Errorf("%v: code = %q, want %q", tc.args, resp.Error.Code, tc.code)
		}
	}
}

func TestTimerCommands(t *testing.T) {
	dir := t.TempDir()
	mustRun(t, dir, "init")

	mustRun(t, dir, "timer", "start", "Deep work")
	mustRun(t, dir, "timer", "set", "25m")
	mustRun(t, dir, "timer", "pause")

	timer := openSaved(t, dir).Timer()
	if timer.Phase() != models.TimerPaused || timer.ElapsedSeconds != 1500 || timer.CurrentActivity != "Deep work" {
		t.Errorf("timer = %+v", timer)
	}

	if _, err := run(t, dir, "timer", "start", "  "); !errors.Is(err, store.ErrValidation) {
		t.Errorf("blank label err = %v", err)
	}

	mustRun(t, dir, "timer", "stop")
	if got := openSaved(t, dir).Timer(); got != (models.TimerState{}) {
		t.Errorf("after stop: %+v", got)
	}
}

func TestEphemeralLeavesDiskUntouched(t *testing.T) {
	dir := t.TempDir()
	mustRun(t, dir, "init")
	before := len(openSaved(t, dir).Tasks())

	mustRun(t, dir, "--ephemeral", "task", "add", "Scratch")
	if got := len(openSaved(t, dir).Tasks()); got != before {
		t.Errorf("tasks on disk = %d, want %d", got, before)
	}
}

func TestConfigSetAndBackend(t *testing.T) {
	dir := t.TempDir()
	mustRun(t, dir, "init")

	mustRun(t, dir, "config", "set", "backend", "sqlite")
	out := mustRun(t, dir, "config", "get", "backend")
	if strings.TrimSpace(out) != "sqlite" {
		t.Errorf("backend = %q", out)
	}
	mustRun(t, dir, "task", "add", "Stored in sqlite")
	if _, err := os.Stat(filepath.Join(dir, db.StateDir, "state.db")); err != nil {
		t.Errorf("sqlite file missing: %v", err)
	}

	if _, err := run(t, dir, "config", "set", "backend", "redis"); err == nil {
		t.Error("expected error for unknown backend")
	}
}

func TestExportWritesCSV(t *testing.T) {
	dir := t.TempDir()
	mustRun(t, dir, "init")
	out := filepath.Join(dir, "tasks.csv")
	mustRun(t, dir, "export", "tasks", "--out", out)

	data, err := os.ReadFile(out)
	if err != nil {
		t.Fatal(err)
	}
	if !strings.HasPrefix(string(data), "Title,Status,Priority,Assignee,Due Date,Created At") {
		t.Errorf("csv header: %q", strings.SplitN(string(data), "\n", 2)[0])
	}
}

func TestDateFlag(t *testing.T) {
	v := newDateValue()
	if err := v.Set("2026-01-31"); err != nil {
		t.Fatal(err)
	}
	if v.String() != "2026-01-31" || v.Type() != "date" {
		t.Errorf("got %q (%s)", v.String(), v.Type())
	}
	if err := v.Set("soon"); err == nil {
		t.Error("expected parse error")
	}
	if err := v.Set(""); err != nil || v.Date() != nil {
		t.Errorf("empty should clear: %v %v", v.Date(), err)
	}
}

func TestParseSeconds(t *testing.T) {
	tests := []struct {
		in   string
		want int
	}{
		{"90", 90},
		{"25m", 1500},
		{"1h30m", 5400},
	}
	for _, tc := range tests {
		got, err := parseSeconds(tc.in)
		if err != nil || got != tc.want {
			t.Errorf("parseSeconds(%q) = %d, %v; want %d", tc.in, got, err, tc.want)
		}
	}
	if _, err := parseSeconds("soon"); !errors.Is(err, errBadArg) {
		t.Errorf("err = %v", err)
	}
}

func jsonID(id int64) string {
	b, _ := json.Marshal(id)
	return string(b)
}

func TestDescriptionFromFile(t *testing.T) {
	dir := t.TempDir()
	mustRun(t, dir, "init")
	notes := filepath.Join(dir, "notes.md")
	if err := os.WriteFile(notes, []byte("- agenda\n- budget\n"), 0644); err != nil {
		t.Fatal(err)
	}

	out := mustRun(t, dir, "task", "add", "Plan offsite", "-d", "@"+notes, "--json")
	var task models.Task
	if err := json.Unmarshal([]byte(out), &task); err != nil {
		t.Fatalf("decode %q: %v", out, err)
	}
	if task.Description != "- agenda\n- budget" {
		t.Errorf("description = %q", task.Description)
	}

	if _, err := run(t, dir, "task", "add", "X", "-d", "@"+filepath.Join(dir, "missing.md")); err == nil {
		t.Error("expected error for missing description file")
	}
}

func TestUnknownSortKeySuggests(t *testing.T) {
	dir := t.TempDir()
	mustRun(t, dir, "init")
	out, err := run(t, dir, "task", "list", "--sort", "priorty")
	if err == nil {
		t.Fatal("expected error for unknown sort key")
	}
	if !strings.Contains(out, "did you mean priority?") {
		t.Errorf("output = %q", out)
	}
}
