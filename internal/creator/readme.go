package creator

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"

	"github.com/kindling-cli/kindling/internal/generator"
)

const readmeTemplate = `# {{.Name}}

## Project setup

` + "```" + `
{{.PM}} install
` + "```" + `
{{range .Scripts}}
### {{.Title}}

` + "```" + `
{{.Command}}
` + "```" + `
{{end}}`

type readmeScript struct {
	Title   string
	Command string
}

type readmeData struct {
	Name    string
	PM      string
	Scripts []readmeScript
}

// writeREADME renders the project README from the final manifest. The
// scripts section lists every script the plugins contributed, sorted by
// name so the output is stable.
func (c *Creator) writeREADME(m *generator.Manifest, pmBin string) error {
	names := make([]string, 0, len(m.Scripts))
	for name := range m.Scripts {
		names = append(names, name)
	}
	sort.Strings(names)

	data := readmeData{Name: c.name, PM: pmBin}
	for _, name := range names {
		data.Scripts = append(data.Scripts, readmeScript{
			Title:   generator.Title(name),
			Command: fmt.Sprintf("%s run %s", pmBin, name),
		})
	}

	content, err := generator.NewRenderer().RenderString("readme", readmeTemplate, data)
	if err != nil {
		return fmt.Errorf("rendering README: %w", err)
	}

	path := filepath.Join(c.dir, "README.md")
	if err := os.WriteFile(path, content, 0644); err != nil {
		return fmt.Errorf("writing README: %w", err)
	}
	return nil
}
