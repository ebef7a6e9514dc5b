package cmd

import (
	"bytes"
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"visitor-pass-console/internal/access"
)

// useFileStorage points the CLI at a fresh slot directory and returns it.
func useFileStorage(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	t.Setenv("STORAGE_TYPE", "file")
	t.Setenv("STORAGE_FILE_DIR", dir)
	t.Setenv("SECRET", "cli-test-secret")
	t.Setenv("EMAIL_NOTIFY", "")
	return dir
}

// resetFlags returns every flag to its default so runs do not leak into each other.
func resetFlags(c *cobra.Command) {
	reset := func(f *pflag.Flag) {
		if sv, ok := f.Value.(pflag.SliceValue); ok {
			sv.Replace(nil)
		} else {
			f.Value.Set(f.DefValue)
		}
		f.Changed = false
	}
	c.Flags().VisitAll(reset)
	c.PersistentFlags().VisitAll(reset)
	for _, sub := range c.Commands() {
		resetFlags(sub)
	}
}

func runCLI(t *testing.T, stdin string, args ...string) (string, error) {
	t.Helper()
	resetFlags(rootCmd)

	var stdout, stderr bytes.Buffer
	rootCmd.SetOut(&stdout)
	rootCmd.SetErr(&stderr)
	rootCmd.SetIn(strings.NewReader(stdin))
	rootCmd.SetArgs(args)

	err := rootCmd.ExecuteContext(context.Background())
	if con != nil {
		con.Close()
		con = nil
	}
	return stdout.String(), err
}

type cliStep struct {
	args    []string
	stdin   string
	wantOut string
	wantErr string
}

func runSteps(t *testing.T, steps []cliStep) {
	t.Helper()
	for _, step := range steps {
		out, err := runCLI(t, step.stdin, step.args...)
		name := strings.Join(step.args, " ")
		switch {
		case step.wantErr != "":
			if err == nil || !strings.Contains(err.Error(), step.wantErr) {
				t.Fatalf("%s: error %v, want %q", name, err, step.wantErr)
			}
		case err != nil:
			t.Fatalf("%s: unexpected error %v", name, err)
		}
		if !strings.Contains(out, step.wantOut) {
			t.Fatalf("%s: output %q, want %q", name, out, step.wantOut)
		}
	}
}

func TestCLISession(t *testing.T) {
	dir := useFileStorage(t)
	sessionFile := filepath.Join(dir, "currentUser.json")

	runSteps(t, []cliStep{
		{args: []string{"whoami"}, wantErr: "not logged in"},
		{args: []string{"login", "-u", "operator"}, stdin: "wrong\n", wantErr: "invalid username or password"},
		{args: []string{"visitors", "list"}, wantErr: "not logged in"},
		{args: []string{"login", "-u", "operator"}, stdin: "pass123\n", wantOut: "Signed in as Duty Operator (operator)"},
	})

	if _, err := os.Stat(sessionFile); err != nil {
		t.Fatalf("login did not write the session slot: %v", err)
	}

	runSteps(t, []cliStep{
		{args: []string{"whoami"}, wantOut: "Pages: dashboard, visitors, employees"},
		{args: []string{"visitors", "list"}, wantOut: "No visitors found."},
		{args: []string{"dashboard"}, wantOut: "Pending approval:  0"},
		{args: []string{"buildings", "list"}, wantErr: access.DeniedNotice},
		{args: []string{"operators", "list"}, wantErr: access.DeniedNotice},
		{args: []string{"storage", "export"}, wantErr: access.DeniedNotice},
		{args: []string{"logout"}, wantOut: "Signed out"},
	})

	if _, err := os.Stat(sessionFile); !os.IsNotExist(err) {
		t.Errorf("logout left the session slot behind: %v", err)
	}

	runSteps(t, []cliStep{
		{args: []string{"visitors", "list"}, wantErr: "not logged in"},
		{args: []string{"login", "-u", "admin"}, stdin: "admin123\n", wantOut: "Signed in as"},
		{args: []string{"operators", "list"}, wantOut: "Total: 2"},
	})
}

func TestCLIVisitorPass(t *testing.T) {
	useFileStorage(t)
	runSteps(t, []cliStep{
		{args: []string{"login", "-u", "admin"}, stdin: "admin123\n", wantOut: "Signed in as"},
		{args: []string{"visitors", "add", "--name", "Jane Roe", "--card", "AB123", "--date", "2025-03-01", "--time", "09:30"}, wantOut: "registered with id"},
	})

	out, err := runCLI(t, "", "visitors", "list", "--status", "pending")
	if err != nil || !strings.Contains(out, "Jane Roe") {
		t.Fatalf("visitors list: %q, %v", out, err)
	}
	id := strings.Fields(strings.Split(out, "\n")[1])[0]

	runSteps(t, []cliStep{
		{args: []string{"visitors", "pass", id}, wantErr: "only approved visitors"},
		{args: []string{"visitors", "approve", id}, wantOut: "is now approved"},
		{args: []string{"visitors", "pass", id}, wantOut: "."},
	})

	t.Setenv("SECRET", "")
	runSteps(t, []cliStep{
		{args: []string{"visitors", "pass", id}, wantErr: errNoSecret.Error()},
	})
}

func TestCLIEmployeesImport(t *testing.T) {
	dir := useFileStorage(t)
	roster := filepath.Join(dir, "roster.tsv")
	data := "FULL NAME\tPOSITION\tDEPARTMENT\tSTATUS\n" +
		"Anna Petrova\tEngineer\tIT\tActive\n" +
		"Ivan Sidorov\tGuard\tSecurity\tOn leave\n" +
		"Nobody\t\tIT\tActive\n"
	if err := os.WriteFile(roster, []byte(data), 0o644); err != nil {
		t.Fatal(err)
	}

	runSteps(t, []cliStep{
		{args: []string{"login", "-u", "admin"}, stdin: "admin123\n", wantOut: "Signed in as"},
		{args: []string{"employees", "import", "--dry-run", roster}, wantOut: "2 employees would be imported, 1 rows skipped"},
		{args: []string{"employees", "list"}, wantOut: "No employees found."},
		{args: []string{"employees", "import", roster}, wantOut: "Imported 2 employees, skipped 1 rows"},
		{args: []string{"employees", "list"}, wantOut: "Total: 2"},
	})

	out, _ := runCLI(t, "", "employees", "list")
	for _, want := range []string{"Anna Petrova", "Ivan Sidorov", "inactive"} {
		if !strings.Contains(out, want) {
			t.Errorf("employees list missing %q:\n%s", want, out)
		}
	}
}

func TestCLIStorageExportImport(t *testing.T) {
	first := useFileStorage(t)
	backup := filepath.Join(first, "backup.json")

	runSteps(t, []cliStep{
		{args: []string{"login", "-u", "admin"}, stdin: "admin123\n", wantOut: "Signed in as"},
		{args: []string{"buildings", "add", "--name", "Head Office", "--address", "1 Main St", "--departments", "IT, HR"}, wantOut: "Building Head Office added"},
		{args: []string{"storage", "export", backup}},
	})

	out, err := runCLI(t, "", "storage", "export")
	if err != nil {
		t.Fatalf("export to stdout: %v", err)
	}
	var slots map[string]json.RawMessage
	if err := json.Unmarshal([]byte(out), &slots); err != nil {
		t.Fatalf("export is not JSON: %v", err)
	}
	for _, key := range []string{"buildings", "operators", "currentUser"} {
		if _, ok := slots[key]; !ok {
			t.Errorf("export missing slot %q", key)
		}
	}

	t.Setenv("STORAGE_FILE_DIR", t.TempDir())
	runSteps(t, []cliStep{
		{args: []string{"login", "-u", "admin"}, stdin: "admin123\n", wantOut: "Signed in as"},
		{args: []string{"buildings", "list"}, wantOut: "No buildings found."},
		{args: []string{"storage", "import", backup}, wantOut: "Restored"},
		{args: []string{"buildings", "list"}, wantOut: "Head Office"},
	})
}
