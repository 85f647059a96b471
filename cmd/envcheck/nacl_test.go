package main

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

const describeOutput = `{"NetworkAcls": [{"NetworkAclId": "acl-1", "Entries": [
	{"CidrBlock": "0.0.0.0/0", "Egress": false, "Protocol": "6", "RuleAction": "deny", "RuleNumber": 50, "PortRange": {"From": 22, "To": 22}},
	{"CidrBlock": "10.0.0.0/16", "Egress": false, "Protocol": "-1", "RuleAction": "allow", "RuleNumber": 100},
	{"Ipv6CidrBlock": "::/0", "Egress": false, "Protocol": "6", "RuleAction": "allow", "RuleNumber": 90, "PortRange": {"From": 443, "To": 443}},
	{"CidrBlock": "0.0.0.0/0", "Egress": false, "Protocol": "-1", "RuleAction": "deny", "RuleNumber": 32767},
	{"CidrBlock": "0.0.0.0/0", "Egress": true, "Protocol": "-1", "RuleAction": "allow", "RuleNumber": 100},
	{"CidrBlock": "0.0.0.0/0", "Egress": true, "Protocol": "-1", "RuleAction": "deny", "RuleNumber": 32767}
]}]}`

func writeRules(t *testing.T) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "rules.json")
	if err := os.WriteFile(path, []byte(describeOutput), 0o600); err != nil {
		t.Fatal(err)
	}
	return path
}

func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	cmd := newRootCmd()
	var out, errOut bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&errOut)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}

func exitCode(err error) int {
	var exitErr *ExitError
	if errors.As(err, &exitErr) {
		return exitErr.Code
	}
	if err != nil {
		return -1
	}
	return 0
}

func TestNACLCmd(t *testing.T) {
	path := writeRules(t)

	tests := []struct {
		name     string
		args     []string
		wantCode int
		wantOut  string
	}{
		{
			name:     "outbound open to everything",
			args:     []string{"nacl", "--file", path, "--direction", "outbound", "--port", "443"},
			wantCode: 0,
			wantOut:  "outbound tcp port 443 allowed by rule 100 (all traffic) to 0.0.0.0/0",
		},
		{
			name:     "inbound only open to the vpc",
			args:     []string{"nacl", "--file", path, "--direction", "inbound", "--port", "5432"},
			wantCode: ExitCheckFailed,
			wantOut:  "not confirmed allowed",
		},
		{
			name:     "inbound from a vpc address",
			args:     []string{"nacl", "--file", path, "--direction", "ingress", "--port", "5432", "--address", "10.0.3.9"},
			wantCode: 0,
			wantOut:  "inbound tcp port 5432 allowed by rule 100 (all traffic) from 10.0.0.0/16 (10.0.3.9)",
		},
		{
			name:     "ssh denied before the allow",
			args:     []string{"nacl", "--file", path, "--port", "22", "--address", "10.0.3.9"},
			wantCode: ExitCheckFailed,
			wantOut:  "not confirmed allowed",
		},
		{
			name:     "port range",
			args:     []string{"nacl", "--file", path, "--direction", "outbound", "--port", "1024", "--to-port", "65535"},
			wantCode: 0,
			wantOut:  "outbound tcp ports 1024-65535 allowed by rule 100",
		},
		{
			name:     "ipv6 allow does not open ipv4",
			args:     []string{"nacl", "--file", path, "--direction", "inbound", "--port", "443"},
			wantCode: ExitCheckFailed,
			wantOut:  "not confirmed allowed",
		},
		{
			name:     "ipv6 allow opens ipv6",
			args:     []string{"nacl", "--file", path, "--direction", "inbound", "--port", "443", "--ipv6"},
			wantCode: 0,
			wantOut:  "inbound tcp port 443 allowed by rule 90 from ::/0",
		},
		{
			name:     "bad direction",
			args:     []string{"nacl", "--file", path, "--direction", "sideways", "--port", "22"},
			wantCode: ExitUsage,
		},
		{
			name:     "inverted range",
			args:     []string{"nacl", "--file", path, "--port", "100", "--to-port", "10"},
			wantCode: ExitUsage,
		},
		{
			name:     "bad address",
			args:     []string{"nacl", "--file", path, "--port", "22", "--address", "10.0.0"},
			wantCode: ExitUsage,
		},
		{
			name:     "missing file",
			args:     []string{"nacl", "--file", filepath.Join(t.TempDir(), "nope.json"), "--port", "22"},
			wantCode: ExitUsage,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out, err := execute(t, tt.args...)
			if got := exitCode(err); got != tt.wantCode {
				t.Fatalf("expected exit code %d, got %d (%v)", tt.wantCode, got, err)
			}
			if tt.wantOut != "" && !strings.Contains(out, tt.wantOut) {
				t.Errorf("expected output to contain %q, got %q", tt.wantOut, out)
			}
		})
	}
}
