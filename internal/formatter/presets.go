package formatter

import "fmt"

// Preset is a named template.
type Preset struct {
	Name        string
	Template    string
	Description string
}

// PresetRegistry manages template presets.
type PresetRegistry interface {
	Get(name string) (*Preset, error)
	List() []Preset
	Register(preset Preset) error
}

type presetRegistry struct {
	presets map[string]Preset
	order   []string
}

// NewPresetRegistry creates a new preset registry with the default presets.
func NewPresetRegistry() PresetRegistry {
	registry := &presetRegistry{presets: make(map[string]Preset)}
	registry.registerDefaults()
	return registry
}

func (pr *presetRegistry) registerDefaults() {
	presets := []Preset{
		{
			Name:        "compact",
			Template:    "[{{active-count}}/{{total-count}}]",
			Description: "Active and total employees",
		},
		{
			Name:        "detailed",
			Template:    "{{total-count}} employees: {{active-count}} active, {{inactive-count}} inactive, {{intern-count}} interns | updated {{updated-at}}",
			Description: "All counters with the refresh time",
		},
		{
			Name:        "json",
			Template:    `{"total":{{total-count}},"active":{{active-count}},"interns":{{intern-count}}}`,
			Description: "JSON for scripts",
		},
		{
			Name:        "count-only",
			Template:    "{{total-count}}",
			Description: "Only the snapshot size",
		},
		{
			Name:        "roles",
			Template:    "onrole: {{onrole-count}} | intern: {{intern-count}}",
			Description: "Employees per job role",
		},
	}
	for _, preset := range presets {
		pr.presets[preset.Name] = preset
		pr.order = append(pr.order, preset.Name)
	}
}

// Get returns a preset by name, or an error if not found.
func (pr *presetRegistry) Get(name string) (*Preset, error) {
	preset, ok := pr.presets[name]
	if !ok {
		return nil, fmt.Errorf("preset not found: %s", name)
	}
	return &preset, nil
}

// List returns all presets in registration order.
func (pr *presetRegistry) List() []Preset {
	result := make([]Preset, 0, len(pr.order))
	for _, name := range pr.order {
		result = append(result, pr.presets[name])
	}
	return result
}

// Register adds a new preset or overwrites an existing one.
func (pr *presetRegistry) Register(preset Preset) error {
	if preset.Name == "" {
		return fmt.Errorf("preset name cannot be empty")
	}
	if preset.Template == "" {
		return fmt.Errorf("preset template cannot be empty")
	}
	if _, exists := pr.presets[preset.Name]; !exists {
		pr.order = append(pr.order, preset.Name)
	}
	pr.presets[preset.Name] = preset
	return nil
}

// Resolve returns the preset template named nameOrTemplate, or the argument
// itself when it is not a preset name.
func Resolve(registry PresetRegistry, nameOrTemplate string) string {
	if p, err := registry.Get(nameOrTemplate); err == nil {
		return p.Template
	}
	return nameOrTemplate
}
