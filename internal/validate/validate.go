// Package validate checks the hook framework's project configuration files.
package validate

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/tinkerbelle-io/tb-hooklog/internal/event"
)

const (
	MCPFile      = ".mcp.json"
	SettingsFile = ".claude/settings.json"
)

// RequiredDirs are expected under the project root. Missing ones are
// reported but are not issues; hooklog creates its own directory on demand.
var RequiredDirs = []string{
	".claude/hooks/logs",
	".claude/cache",
	".claude/tmp",
}

var (
	mcpServerTypes = []string{"stdio", "sse", "http"}
	settingsKeys   = []string{"hooks", "memory", "model", "outputStyle", "statusLine"}
	knownModels    = []string{"claude-3-5-haiku-20241022", "claude-3-5-sonnet-20241022", "haiku", "opus", "sonnet"}
)

// Finding is one line of a validation report.
type Finding struct {
	Target  string
	Message string
	Issue   bool
}

// Report collects findings for one project root.
type Report struct {
	BaseDir  string
	Findings []Finding
}

// OK reports whether no finding is an issue.
func (r *Report) OK() bool {
	for _, f := range r.Findings {
		if f.Issue {
			return false
		}
	}
	return true
}

// Issues returns the findings that make the report fail.
func (r *Report) Issues() []Finding {
	var out []Finding
	for _, f := range r.Findings {
		if f.Issue {
			out = append(out, f)
		}
	}
	return out
}

func (r *Report) issue(target, format string, args ...any) {
	r.Findings = append(r.Findings, Finding{Target: target, Message: fmt.Sprintf(format, args...), Issue: true})
}

func (r *Report) note(target, format string, args ...any) {
	r.Findings = append(r.Findings, Finding{Target: target, Message: fmt.Sprintf(format, args...)})
}

// Run validates the configuration files, directories and env files under
// baseDir.
func Run(baseDir string) *Report {
	r := &Report{BaseDir: baseDir}

	if v, ok := r.loadJSON(baseDir, MCPFile); ok {
		for _, msg := range MCP(v) {
			r.issue(MCPFile, "%s", msg)
		}
	}
	if v, ok := r.loadJSON(baseDir, SettingsFile); ok {
		for _, msg := range Settings(v) {
			r.issue(SettingsFile, "%s", msg)
		}
	}

	for _, dir := range RequiredDirs {
		if info, err := os.Stat(filepath.Join(baseDir, dir)); err != nil || !info.IsDir() {
			r.note(dir, "does not exist (will be created when needed)")
		}
	}

	if !exists(filepath.Join(baseDir, ".env.example")) {
		r.issue(".env.example", "not found")
	}
	if !exists(filepath.Join(baseDir, ".env")) {
		r.note(".env", "not found (optional, but recommended for API keys)")
	}
	return r
}

func (r *Report) loadJSON(baseDir, name string) (event.Value, bool) {
	data, err := os.ReadFile(filepath.Join(baseDir, name))
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			r.issue(name, "file not found")
		} else {
			r.issue(name, "read: %v", err)
		}
		return event.Value{}, false
	}
	v, err := event.Parse(data)
	if err != nil {
		r.issue(name, "JSON parse error: %v", err)
		return event.Value{}, false
	}
	return v, true
}

func exists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}

// MCP checks an .mcp.json document and returns one message per problem.
func MCP(doc event.Value) []string {
	var issues []string
	if doc.Kind() != event.Object {
		return []string{"root must be an object"}
	}

	servers, ok := doc.Get("mcpServers")
	if !ok {
		return []string{"Missing 'mcpServers' key in root object"}
	}
	if servers.Kind() != event.Object {
		return []string{"'mcpServers' must be an object"}
	}

	for _, m := range servers.Members() {
		name, cfg := m.Key, m.Value
		if cfg.Kind() != event.Object {
			issues = append(issues, fmt.Sprintf("Server '%s' config must be an object", name))
			continue
		}

		typ, hasType := cfg.Get("type")
		if !hasType {
			issues = append(issues, fmt.Sprintf("Server '%s' missing 'type' field", name))
		} else if typ.Kind() != event.String || !slices.Contains(mcpServerTypes, typ.Str()) {
			issues = append(issues, fmt.Sprintf("Server '%s' has invalid type %s. Must be one of: %s",
				name, render(typ), strings.Join(mcpServerTypes, ", ")))
		}

		switch typ.Str() {
		case "stdio":
			if _, ok := cfg.Get("command"); !ok {
				issues = append(issues, fmt.Sprintf("Server '%s' (stdio) missing 'command' field", name))
			}
		case "sse", "http":
			if _, ok := cfg.Get("url"); !ok {
				issues = append(issues, fmt.Sprintf("Server '%s' (%s) missing 'url' field", name, typ.Str()))
			}
		}

		for _, section := range []struct{ key, label string }{{"env", "env var"}, {"headers", "header"}} {
			vals, ok := cfg.Get(section.key)
			if !ok {
				continue
			}
			for _, kv := range vals.Members() {
				if isPlaceholder(kv.Value) {
					issues = append(issues, fmt.Sprintf("Server '%s' has placeholder value for %s '%s': %s",
						name, section.label, kv.Key, kv.Value.Str()))
				}
			}
		}
	}
	return issues
}

// Settings checks a .claude/settings.json document.
func Settings(doc event.Value) []string {
	var issues []string
	if doc.Kind() != event.Object {
		return []string{"root must be an object"}
	}

	var unknown []string
	for _, m := range doc.Members() {
		if !slices.Contains(settingsKeys, m.Key) {
			unknown = append(unknown, m.Key)
		}
	}
	if len(unknown) > 0 {
		slices.Sort(unknown)
		issues = append(issues, "Unknown configuration keys: "+strings.Join(unknown, ", "))
	}

	if model, ok := doc.Get("model"); ok {
		if model.Kind() != event.String || !slices.Contains(knownModels, model.Str()) {
			issues = append(issues, fmt.Sprintf("Unknown model %s. Consider using one of: %s",
				render(model), strings.Join(knownModels, ", ")))
		}
	}

	if status, ok := doc.Get("statusLine"); ok && status.Kind() == event.Object {
		typ, hasType := status.Get("type")
		if !hasType {
			issues = append(issues, "statusLine missing 'type' field")
		} else if typ.Str() == "command" {
			if _, ok := status.Get("command"); !ok {
				issues = append(issues, "statusLine with type 'command' missing 'command' field")
			}
		}
	}
	return issues
}

// isPlaceholder reports template values left in by copying an example file.
func isPlaceholder(v event.Value) bool {
	if v.Kind() != event.String {
		return false
	}
	s := strings.ToLower(v.Str())
	return strings.Contains(s, "get-this-from") || strings.Contains(s, "your_")
}

// render prints a value for a message: strings single-quoted, others as JSON.
func render(v event.Value) string {
	if v.Kind() == event.String {
		return "'" + v.Str() + "'"
	}
	out, err := event.Encode(v)
	if err != nil {
		return v.Kind().String()
	}
	return string(out)
}
