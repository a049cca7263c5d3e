package cli

import (
	"bytes"
	"encoding/json"
	"errors"
	"strings"
	"testing"

	"github.com/spf13/viper"

	"cafe_backoffice/internal/services"
)

func run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	cmd := NewRootCommand(viper.New())
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}

func TestSeed_DryRun(t *testing.T) {
	out, err := run(t, "seed", "--dry-run", "--days", "3", "--end", "2025-03-31", "--seed", "1")
	if err != nil {
		t.Fatalf("seed --dry-run unexpected error: %v", err)
	}
	var summary seedSummary
	if err := json.Unmarshal([]byte(out), &summary); err != nil {
		t.Fatalf("seed output is not JSON: %q", out)
	}
	if !summary.DryRun || summary.From != "2025-03-29" || summary.To != "2025-03-31" {
		t.Fatalf("seed summary unexpected: %+v", summary)
	}
	if summary.Staff != 4 || summary.Orders < 60 {
		t.Fatalf("seed expected 4 staff and at least 20 orders a day, got %+v", summary)
	}
}

func TestSeed_RejectsBadFlags(t *testing.T) {
	cases := [][]string{
		{"seed", "--dry-run", "--days", "0"},
		{"seed", "--dry-run", "--end", "31/03/2025"},
	}
	for _, args := range cases {
		if _, err := run(t, args...); err == nil {
			t.Fatalf("%s expected an error", strings.Join(args, " "))
		}
	}
}

func TestReport_InvalidPeriodFailsBeforeConnecting(t *testing.T) {
	_, err := run(t, "report", "--from", "2025-03-10", "--to", "2025-03-01")
	if !errors.Is(err, services.ErrInvalidPeriod) {
		t.Fatalf("report with reversed dates expected ErrInvalidPeriod, got %v", err)
	}
}

func TestExport_RequiresOut(t *testing.T) {
	_, err := run(t, "export", "--from", "2025-03-01", "--to", "2025-03-31")
	if err == nil || !strings.Contains(err.Error(), "--out") {
		t.Fatalf("export without --out expected an error, got %v", err)
	}
}
