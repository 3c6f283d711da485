package cli

import (
	"fmt"
	"io"
	"strings"
)

// FlagCompletion describes a CLI flag for shell completion generation.
type FlagCompletion struct {
	Name      string   // flag name without the leading dash
	Help      string   // description text
	Values    []string // suggested values, nil for booleans
	ValueName string   // label for the value in zsh
	IsFile    bool     // the flag takes a file path
	IsSutra   bool     // values are the dispatchable sutra names
}

// flagRegistry lists the flags offered by every completion script.
var flagRegistry = []FlagCompletion{
	{Name: "op", Help: "Operation to evaluate", Values: []string{"add", "sub", "mul", "div", "mod", "pow", "square", "divmod"}, ValueName: "op"},
	{Name: "a", Help: "First operand", ValueName: "number"},
	{Name: "b", Help: "Second operand", ValueName: "number"},
	{Name: "mode", Help: "Routing mode", Values: []string{"standard", "dynamic", "optimized", "adaptive", "specific"}, ValueName: "mode"},
	{Name: "opt", Help: "Optimisation level", Values: []string{"balanced", "size", "speed", "power"}, ValueName: "level"},
	{Name: "platform", Help: "Target platform tag", Values: []string{"desktop", "embedded", "cloud", "mobile"}, ValueName: "platform"},
	{Name: "sutra", Help: "Kernel for specific mode", IsSutra: true, ValueName: "sutra"},
	{Name: "log-capacity", Help: "Telemetry log capacity", Values: []string{"1024", "4096", "65536"}, ValueName: "records"},
	{Name: "no-log", Help: "Disable telemetry"},
	{Name: "validate", Help: "Check every result against straight arithmetic"},
	{Name: "interactive", Help: "Start the REPL"},
	{Name: "bench", Help: "Run the workload benchmark"},
	{Name: "bench-n", Help: "Cases per workload", Values: []string{"1000", "10000", "100000"}, ValueName: "number"},
	{Name: "workloads", Help: "Comma-separated workloads or all", Values: []string{"all", "ends-in-5", "near-base", "complementary", "large-digit", "uniform"}, ValueName: "list"},
	{Name: "seed", Help: "Workload generator seed", ValueName: "number"},
	{Name: "telemetry-out", Help: "CSV telemetry file", IsFile: true, ValueName: "file"},
	{Name: "telemetry-db", Help: "SQLite telemetry database", IsFile: true, ValueName: "file"},
	{Name: "metrics-addr", Help: "Serve Prometheus metrics on this address", Values: []string{":9090", "127.0.0.1:9090"}, ValueName: "addr"},
	{Name: "monitor-interval", Help: "Resource monitor refresh period", Values: []string{"500ms", "1s", "5s"}, ValueName: "duration"},
	{Name: "timeout", Help: "Maximum execution time", Values: []string{"30s", "1m", "5m"}, ValueName: "duration"},
	{Name: "config", Help: "YAML configuration file", IsFile: true, ValueName: "file"},
	{Name: "quiet", Help: "Print bare results"},
	{Name: "v", Help: "Verbose output and debug logging"},
	{Name: "no-color", Help: "Disable colours"},
	{Name: "version", Help: "Show version information"},
	{Name: "completion", Help: "Generate a completion script", Values: []string{"bash", "zsh", "fish"}, ValueName: "shell"},
}

// GenerateCompletion writes a completion script for shell. sutras lists
// the names offered for -sutra.
func GenerateCompletion(out io.Writer, shell string, sutras []string) error {
	switch strings.ToLower(shell) {
	case "bash":
		return generateBashCompletion(out, sutras)
	case "zsh":
		return generateZshCompletion(out, sutras)
	case "fish":
		return generateFishCompletion(out, sutras)
	}
	return fmt.Errorf("unsupported shell: %s (supported: bash, zsh, fish)", shell)
}

func values(f FlagCompletion, sutras []string) []string {
	if f.IsSutra {
		return sutras
	}
	return f.Values
}

func generateBashCompletion(out io.Writer, sutras []string) error {
	var b strings.Builder
	b.WriteString("# bash completion for vedicmath\n")
	b.WriteString("_vedicmath() {\n")
	b.WriteString("    local cur prev\n")
	b.WriteString("    cur=\"${COMP_WORDS[COMP_CWORD]}\"\n")
	b.WriteString("    prev=\"${COMP_WORDS[COMP_CWORD-1]}\"\n\n")
	b.WriteString("    case \"${prev}\" in\n")
	for _, f := range flagRegistry {
		switch vs := values(f, sutras); {
		case f.IsFile:
			fmt.Fprintf(&b, "        -%s)\n            COMPREPLY=( $(compgen -f -- \"${cur}\") )\n            return 0\n            ;;\n", f.Name)
		case len(vs) > 0:
			fmt.Fprintf(&b, "        -%s)\n            COMPREPLY=( $(compgen -W \"%s\" -- \"${cur}\") )\n            return 0\n            ;;\n", f.Name, strings.Join(vs, " "))
		}
	}
	b.WriteString("    esac\n\n")
	names := make([]string, len(flagRegistry))
	for i, f := range flagRegistry {
		names[i] = "-" + f.Name
	}
	fmt.Fprintf(&b, "    COMPREPLY=( $(compgen -W \"%s\" -- \"${cur}\") )\n", strings.Join(names, " "))
	b.WriteString("}\n\ncomplete -F _vedicmath vedicmath\n")
	_, err := io.WriteString(out, b.String())
	return err
}

func generateZshCompletion(out io.Writer, sutras []string) error {
	var b strings.Builder
	b.WriteString("#compdef vedicmath\n\n_vedicmath() {\n    _arguments \\\n")
	for i, f := range flagRegistry {
		sep := " \\"
		if i == len(flagRegistry)-1 {
			sep = ""
		}
		fmt.Fprintf(&b, "        %s%s\n", zshArgEntry(f, sutras), sep)
	}
	b.WriteString("}\n\n_vedicmath \"$@\"\n")
	_, err := io.WriteString(out, b.String())
	return err
}

func zshArgEntry(f FlagCompletion, sutras []string) string {
	help := strings.ReplaceAll(f.Help, "'", "")
	vs := values(f, sutras)
	switch {
	case f.IsFile:
		return fmt.Sprintf("'-%s[%s]:%s:_files'", f.Name, help, f.ValueName)
	case len(vs) > 0:
		return fmt.Sprintf("'-%s[%s]:%s:(%s)'", f.Name, help, f.ValueName, strings.Join(vs, " "))
	case f.ValueName != "":
		return fmt.Sprintf("'-%s[%s]:%s:'", f.Name, help, f.ValueName)
	}
	return fmt.Sprintf("'-%s[%s]'", f.Name, help)
}

func generateFishCompletion(out io.Writer, sutras []string) error {
	var b strings.Builder
	b.WriteString("# fish completion for vedicmath\n")
	for _, f := range flagRegistry {
		line := fmt.Sprintf("complete -c vedicmath -o %s -d '%s'", f.Name, strings.ReplaceAll(f.Help, "'", ""))
		if f.IsFile {
			line += " -r -F"
		} else if vs := values(f, sutras); len(vs) > 0 {
			line += fmt.Sprintf(" -x -a '%s'", strings.Join(vs, " "))
		} else if f.ValueName != "" {
			line += " -x"
		}
		b.WriteString(line + "\n")
	}
	_, err := io.WriteString(out, b.String())
	return err
}
