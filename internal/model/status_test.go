package model_test

import (
	"testing"

	"jobtrack/matcher-service/internal/model"
)

func TestParseStatus_ValidValues(t *testing.T) {
	cases := []struct {
		in   string
		want model.Status
	}{
		{"Not Applied", model.StatusNotApplied},
		{"Applied", model.StatusApplied},
		{"Rejected", model.StatusRejected},
		{"Selected", model.StatusSelected},
	}
	for _, c := range cases {
		got, err := model.ParseStatus(c.in)
		if err != nil {
			t.Errorf("ParseStatus(%q) returned error: %v", c.in, err)
		}
		if got != c.want {
			t.Errorf("ParseStatus(%q) = %q, want %q", c.in, got, c.want)
		}
	}
}

func TestParseStatus_InvalidValues(t *testing.T) {
	for _, in := range []string{"", "applied", "Pending", "NOT APPLIED", "Selected "} {
		if _, err := model.ParseStatus(in); err == nil {
			t.Errorf("ParseStatus(%q) = nil error, want failure", in)
		}
	}
}

func TestStatus_Recordable(t *testing.T) {
	cases := []struct {
		status model.Status
		want   bool
	}{
		{model.StatusNotApplied, false},
		{model.StatusApplied, true},
		{model.StatusRejected, true},
		{model.StatusSelected, true},
	}
	for _, c := range cases {
		if got := c.status.Recordable(); got != c.want {
			t.Errorf("%q.Recordable() = %v, want %v", c.status, got, c.want)
		}
	}
}
