package main

import (
	"bytes"
	"strings"
	"testing"

	"github.com/eleven-am/envcheck/internal/domain"
)

func TestVerifyCmd_RejectsInvalidArguments(t *testing.T) {
	tests := []struct {
		name string
		args []string
	}{
		{"environment name starts with digit", []string{"verify", "--envname", "1prod"}},
		{"unsupported region", []string{"verify", "--envname", "prod", "--region", "mars-1"}},
		{"profile with spaces", []string{"verify", "--envname", "prod", "--profile", "my profile"}},
		{"port out of range", []string{"verify", "--envname", "prod", "--port", "70000"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := execute(t, tt.args...)
			if got := exitCode(err); got != ExitUsage {
				t.Errorf("expected exit code %d, got %d (%v)", ExitUsage, got, err)
			}
		})
	}
}

func TestPrintReport(t *testing.T) {
	report := &domain.Report{
		Environment: "prod",
		Region:      "us-east-1",
		AccountID:   "123456789012",
	}
	report.Add(
		domain.Pass("nacl", "subnet-a/acl-1", "inbound tcp port 5432 allowed by rule 100 (all traffic) from 0.0.0.0/0"),
		domain.Fail("route-table", "subnet-a/rtb-1", "0.0.0.0/0 routes to internet gateway igw-1; subnet is public"),
	)

	var out bytes.Buffer
	printReport(&out, report)

	for _, want := range []string{"prod", "123456789012", "subnet-a/rtb-1", "1 passed, 0 warnings, 1 failed"} {
		if !strings.Contains(out.String(), want) {
			t.Errorf("expected output to contain %q, got %q", want, out.String())
		}
	}
}

func TestVersionString(t *testing.T) {
	origVersion, origCommit := Version, Commit
	t.Cleanup(func() {
		Version, Commit = origVersion, origCommit
	})

	Version = "v1.2.3"
	Commit = "abc1234"
	if got, want := versionString(), "v1.2.3 (commit: abc1234)"; got != want {
		t.Errorf("expected %q, got %q", want, got)
	}

	Version = "dev"
	if got, want := versionString(), "dev (built from source)"; got != want {
		t.Errorf("expected %q, got %q", want, got)
	}
}
