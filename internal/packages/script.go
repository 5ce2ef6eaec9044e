package packages

import (
	"fmt"
	"regexp"
	"strings"
	"text/template"
	"time"

	"github.com/mozilla-ai/mcpdir/internal/catalog"
)

// ScriptTimeFormat is the layout of the generation timestamp in script headers.
const ScriptTimeFormat = "2006-01-02T15:04:05.000Z"

// ScriptContentType is the media type of generated scripts.
const ScriptContentType = "text/x-shellscript"

var whitespace = regexp.MustCompile(`[\s\v\p{Z}\x{FEFF}]+`)

// Values are inserted verbatim. Names or descriptions containing shell metacharacters
// produce a script that does something other than intended.
var scriptTemplate = template.Must(template.New("script").Parse(`#!/bin/bash
# MCP Package Installation Script
# Package: {{ .Name }}
# Description: {{ .Description }}
# Generated: {{ .Generated }}

echo "Installing MCP Package: {{ .Name }}"
echo "Description: {{ .Description }}"
echo "MCPs to install: {{ .Count }}"
echo ""

{{ .Commands }}

echo ""
echo "Installation complete! 🎉"
echo "All {{ .Count }} MCPs have been installed successfully."
`))

type scriptData struct {
	Name        string
	Description string
	Generated   string
	Count       int
	Commands    string
}

// GenerateScript renders the bash install script for pkg.
// Output depends only on pkg and generatedAt.
func GenerateScript(pkg Package, generatedAt time.Time) string {
	blocks := make([]string, len(pkg.Entries))
	for i, e := range pkg.Entries {
		blocks[i] = fmt.Sprintf("# Install %s\n%s", e.Name, InstallCommand(e))
	}

	var sb strings.Builder
	// Executing against a fixed struct of strings and ints cannot fail.
	_ = scriptTemplate.Execute(&sb, scriptData{
		Name:        pkg.Name,
		Description: pkg.Description,
		Generated:   generatedAt.UTC().Format(ScriptTimeFormat),
		Count:       len(pkg.Entries),
		Commands:    strings.Join(blocks, "\n\n"),
	})

	return sb.String()
}

// InstallCommand returns the install command for an entry, chosen by its category.
func InstallCommand(e catalog.Entry) string {
	lower := strings.ToLower(e.Name)

	switch strings.ToLower(e.Category) {
	case "development":
		return fmt.Sprintf("npm install -g %s-mcp", whitespace.ReplaceAllString(lower, "-"))
	case "database":
		return fmt.Sprintf("pip install %s-mcp", whitespace.ReplaceAllString(lower, "-"))
	case "communication":
		return fmt.Sprintf("curl -sSL https://install.%s.com | bash", whitespace.ReplaceAllString(lower, ""))
	default:
		return fmt.Sprintf(`echo "Installing %s..."`, e.Name)
	}
}
