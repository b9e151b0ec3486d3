// Package agents holds the guided question flows offered per agent type and
// the extra instructions each type adds to code generation.
package agents

import (
	"embed"
	"fmt"
	"io/fs"
	"sort"
	"strings"

	"gopkg.in/yaml.v3"
)

//go:embed templates
var embeddedTemplates embed.FS

type Question struct {
	ID          string   `yaml:"id" json:"id"`
	Question    string   `yaml:"question" json:"question"`
	Type        string   `yaml:"type" json:"type"` // text | choice | multiple | file
	Options     []string `yaml:"options" json:"options,omitempty"`
	Required    bool     `yaml:"required" json:"required"`
	Placeholder string   `yaml:"placeholder" json:"placeholder,omitempty"`
	HelperText  string   `yaml:"helperText" json:"helperText,omitempty"`
	DependsOn   string   `yaml:"dependsOn" json:"dependsOn,omitempty"`
}

type Template struct {
	ID                 string     `yaml:"id" json:"id"`
	Name               string     `yaml:"name" json:"name"`
	Description        string     `yaml:"description" json:"description"`
	Icon               string     `yaml:"icon" json:"icon"`
	Order              int        `yaml:"order" json:"-"`
	SystemPrompt       string     `yaml:"systemPrompt" json:"systemPrompt"`
	InitialMessage     string     `yaml:"initialMessage" json:"initialMessage"`
	GenerationGuidance string     `yaml:"generationGuidance" json:"-"`
	Questions          []Question `yaml:"questions" json:"questions"`
	Capabilities       []string   `yaml:"capabilities" json:"capabilities"`
	ExampleOutputs     []string   `yaml:"exampleOutputs" json:"exampleOutputs"`
}

// Registry is read only once loaded and safe for concurrent use.
type Registry struct {
	templates map[string]Template
	ordered   []Template
}

func Load() (*Registry, error) {
	return loadFS(embeddedTemplates, "templates")
}

func loadFS(fsys fs.FS, dir string) (*Registry, error) {
	r := &Registry{templates: map[string]Template{}}

	err := fs.WalkDir(fsys, dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() || !(strings.HasSuffix(path, ".yaml") || strings.HasSuffix(path, ".yml")) {
			return nil
		}

		data, err := fs.ReadFile(fsys, path)
		if err != nil {
			return fmt.Errorf("failed to read template %s: %w", path, err)
		}
		var t Template
		if err := yaml.Unmarshal(data, &t); err != nil {
			return fmt.Errorf("failed to parse template %s: %w", path, err)
		}
		if t.ID == "" {
			return fmt.Errorf("template %s has no id", path)
		}
		if _, dup := r.templates[t.ID]; dup {
			return fmt.Errorf("duplicate template id %q", t.ID)
		}
		r.templates[t.ID] = t
		r.ordered = append(r.ordered, t)
		return nil
	})
	if err != nil {
		return nil, err
	}

	sort.SliceStable(r.ordered, func(i, j int) bool {
		return r.ordered[i].Order < r.ordered[j].Order
	})
	return r, nil
}

func (r *Registry) List() []Template {
	return append([]Template(nil), r.ordered...)
}

func (r *Registry) Get(agentType string) (Template, bool) {
	t, ok := r.templates[agentType]
	return t, ok
}

// GenerationGuidance is empty for agent types without a template,
// general included.
func (r *Registry) GenerationGuidance(agentType string) string {
	return r.templates[agentType].GenerationGuidance
}

// MustLoad panics if the embedded templates are broken.
func MustLoad() *Registry {
	r, err := Load()
	if err != nil {
		panic(err)
	}
	return r
}
