package cmd

import (
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/marcus/nexaflow/internal/dateparse"
	"github.com/marcus/nexaflow/internal/models"
)

// dateValue is a pflag.Value accepting anything dateparse understands.
// The empty string clears it.
type dateValue struct {
	date *models.Date
	now  func() time.Time
}

var _ pflag.Value = (*dateValue)(nil)

func newDateValue() *dateValue {
	return &dateValue{now: time.Now}
}

func (v *dateValue) String() string {
	if v.date == nil {
		return ""
	}
	return v.date.String()
}

func (v *dateValue) Set(s string) error {
	if s == "" {
		v.date = nil
		return nil
	}
	d, err := dateparse.ParseFrom(s, v.now())
	if err != nil {
		return err
	}
	v.date = &d
	return nil
}

func (v *dateValue) Type() string { return "date" }

// Date returns the parsed date, nil when unset.
func (v *dateValue) Date() *models.Date {
	return v.date.Clone()
}

// addDateFlag registers a date flag and returns its value.
func addDateFlag(cmd *cobra.Command, name, usage string) *dateValue {
	v := newDateValue()
	cmd.Flags().Var(v, name, usage+" (YYYY-MM-DD, today, tomorrow, +3d, fri...)")
	return v
}

func addJSONFlag(cmd *cobra.Command) {
	cmd.Flags().Bool("json", false, "JSON output")
}

func jsonFlag(cmd *cobra.Command) bool {
	b, _ := cmd.Flags().GetBool("json")
	return b
}

// changedString returns a pointer to the flag value when it was set.
func changedString(cmd *cobra.Command, name string) *string {
	if !cmd.Flags().Changed(name) {
		return nil
	}
	s, _ := cmd.Flags().GetString(name)
	return &s
}

func changedInt(cmd *cobra.Command, name string) *int {
	if !cmd.Flags().Changed(name) {
		return nil
	}
	n, _ := cmd.Flags().GetInt(name)
	return &n
}
