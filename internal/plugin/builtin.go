package plugin

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/kindling-cli/kindling/internal/generator"
	"github.com/kindling-cli/kindling/internal/interview"
)

// Builtin returns a registry populated with the plugins shipped in this
// binary.
func Builtin() *Registry {
	reg := NewRegistry()
	for _, p := range []*Plugin{
		babelPlugin(),
		typescriptPlugin(),
		routerPlugin(),
		eslintPlugin(),
	} {
		// Registration of the fixed built-in set cannot collide.
		_ = reg.Register(p)
	}
	return reg
}

const babelConfigTemplate = `module.exports = {
  presets: [
    ['@babel/preset-env', { targets: 'defaults' }],
  ],
};
`

func babelPlugin() *Plugin {
	return &Plugin{
		ID:          "babel",
		Description: "Transpile modern JavaScript for older targets",
		Feature:     "Babel transpilation",
		Apply: func(api *generator.API) error {
			api.AddDevDependency("@babel/core", "^7.24.0")
			api.AddDevDependency("@babel/preset-env", "^7.24.0")
			api.WriteFile("babel.config.js", []byte(babelConfigTemplate))
			return nil
		},
	}
}

const tsconfigTemplate = `{
  "compilerOptions": {
    "target": "ES2020",
    "module": "ESNext",
    "moduleResolution": "bundler",
    "strict": true,
    "skipLibCheck": true
  },
  "include": ["src/**/*"]
}
`

func typescriptPlugin() *Plugin {
	return &Plugin{
		ID:          "typescript",
		Description: "TypeScript support with strict defaults",
		Feature:     "TypeScript",
		Apply: func(api *generator.API) error {
			api.AddDevDependency("typescript", "^5.4.0")
			api.AddScript("typecheck", "tsc --noEmit")
			api.WriteFile("tsconfig.json", []byte(tsconfigTemplate))
			return nil
		},
	}
}

const routerTemplate = `import navaid from 'navaid';

{{ if .historyMode -}}
export const router = navaid('/');
{{- else -}}
export const router = navaid('/#');
{{- end }}

router.on('/', () => {
  // Home route
});
`

func routerPlugin() *Plugin {
	return &Plugin{
		ID:          "router",
		Description: "Client-side routing",
		Feature:     "Client-side routing",
		Questions: []interview.Question{
			{
				Name:    "historyMode",
				Type:    interview.Confirm,
				Message: "Use history mode for the router?",
				Default: true,
			},
		},
		Apply: func(api *generator.API) error {
			api.AddDependency("navaid", "^1.2.0")

			historyMode, _ := api.Option("historyMode")
			data := map[string]any{"historyMode": historyMode == true}
			return api.RenderFile("src/router.js", routerTemplate, data)
		},
	}
}

func eslintPlugin() *Plugin {
	return &Plugin{
		ID:          "eslint",
		Description: "Linting with ESLint",
		Feature:     "Linting (ESLint)",
		Questions: []interview.Question{
			{
				Name:    "config",
				Type:    interview.Select,
				Message: "Pick a linter config",
				Choices: []string{"base", "recommended", "strict"},
				Default: "base",
			},
		},
		Apply: func(api *generator.API) error {
			api.AddDevDependency("eslint", "^9.0.0")
			api.AddScript("lint", "eslint .")

			config, _ := api.Option("config")
			name, _ := config.(string)
			if name == "" {
				name = "base"
			}

			// The lint config is written by an after-invoke hook so it
			// lands after every other plugin contributed its files.
			dir := api.Dir()
			api.OnInvokeDone(func(ctx context.Context) error {
				rc := map[string]any{
					"root":    true,
					"extends": fmt.Sprintf("eslint:%s", name),
					"env":     map[string]bool{"browser": true, "es2022": true},
				}
				data, err := json.MarshalIndent(rc, "", "  ")
				if err != nil {
					return err
				}
				path := filepath.Join(dir, ".eslintrc.json")
				return os.WriteFile(path, append(data, '\n'), 0644)
			})
			return nil
		},
	}
}
