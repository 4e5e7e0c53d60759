package completion

import (
	"bytes"
	"strings"
	"testing"

	"github.com/spf13/cobra"
)

func testRootCmd() *cobra.Command {
	root := &cobra.Command{Use: "coursegrid"}
	root.AddCommand(&cobra.Command{Use: "plan", Short: "Print the placement plan"})
	root.AddCommand(&cobra.Command{Use: "config", Short: "Manage configuration"})
	root.AddCommand(NewCommand(root))
	return root
}

func runCompletion(t *testing.T, shell string) string {
	t.Helper()
	root := testRootCmd()
	var buf bytes.Buffer
	root.SetOut(&buf)
	root.SetArgs([]string{"completion", shell})
	if err := root.Execute(); err != nil {
		t.Fatal(err)
	}
	return buf.String()
}

func TestBashCompletion(t *testing.T) {
	output := runCompletion(t, "bash")
	if !strings.Contains(output, "_coursegrid") {
		t.Error("bash completion should contain _coursegrid function")
	}
	if !strings.HasPrefix(output, "# coursegrid bash completion") {
		t.Error("bash completion should start with a header comment")
	}
}

func TestZshCompletion(t *testing.T) {
	output := runCompletion(t, "zsh")
	if !strings.Contains(output, "compdef") {
		t.Error("zsh completion should contain compdef")
	}
}

func TestFishCompletion(t *testing.T) {
	output := runCompletion(t, "fish")
	if !strings.Contains(output, "complete -c coursegrid") {
		t.Error("fish completion should contain 'complete -c coursegrid'")
	}
}

func TestPowerShellCompletion(t *testing.T) {
	output := runCompletion(t, "powershell")
	if !strings.Contains(output, "coursegrid") {
		t.Error("PowerShell completion should contain coursegrid")
	}
}

func TestUnsupportedShell(t *testing.T) {
	root := testRootCmd()
	root.SetOut(&bytes.Buffer{})
	root.SetErr(&bytes.Buffer{})
	root.SetArgs([]string{"completion", "tcsh"})
	if err := root.Execute(); err == nil {
		t.Error("expected error for unsupported shell")
	}
}
