package catalog

import (
	"fmt"
	"os"

	"wellspring/internal/random"

	"gopkg.in/yaml.v3"
)

// Catalog is an immutable set of tasks and affirmations per category.
type Catalog struct {
	tasks        map[Category][]string
	affirmations map[Category][]string
}

// Default returns the built-in catalog.
func Default() *Catalog {
	return &Catalog{tasks: clone(defaultTasks), affirmations: clone(defaultAffirmations)}
}

// New builds a catalog from explicit lists. Missing categories fall back to
// the built-in content.
func New(tasks, affirmations map[Category][]string) (*Catalog, error) {
	c := Default()
	for cat, list := range tasks {
		if !cat.Valid() {
			return nil, fmt.Errorf("unknown task category %q", cat)
		}
		c.tasks[cat] = append([]string(nil), list...)
	}
	for cat, list := range affirmations {
		if !cat.Valid() {
			return nil, fmt.Errorf("unknown affirmation category %q", cat)
		}
		c.affirmations[cat] = append([]string(nil), list...)
	}
	if err := c.Validate(); err != nil {
		return nil, err
	}
	return c, nil
}

// fileFormat is the YAML override layout.
type fileFormat struct {
	Tasks        map[Category][]string `yaml:"tasks"`
	Affirmations map[Category][]string `yaml:"affirmations"`
}

// LoadFile reads a YAML override file.
func LoadFile(path string) (*Catalog, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read catalog: %w", err)
	}
	var ff fileFormat
	if err := yaml.Unmarshal(data, &ff); err != nil {
		return nil, fmt.Errorf("failed to parse catalog: %w", err)
	}
	c, err := New(ff.Tasks, ff.Affirmations)
	if err != nil {
		return nil, fmt.Errorf("invalid catalog %s: %w", path, err)
	}
	return c, nil
}

// Validate requires every category to have at least one task and one affirmation.
func (c *Catalog) Validate() error {
	for _, cat := range Categories {
		if len(c.tasks[cat]) == 0 {
			return fmt.Errorf("category %s has no tasks", cat)
		}
		if len(c.affirmations[cat]) == 0 {
			return fmt.Errorf("category %s has no affirmations", cat)
		}
	}
	return nil
}

// Tasks returns a copy of the tasks for cat.
func (c *Catalog) Tasks(cat Category) []string {
	return append([]string(nil), c.tasks[cat]...)
}

// Affirmations returns a copy of the affirmations for cat.
func (c *Catalog) Affirmations(cat Category) []string {
	return append([]string(nil), c.affirmations[cat]...)
}

// DrawTask picks a category uniformly, then a task uniformly within it.
func (c *Catalog) DrawTask(src random.Source) (Category, string) {
	cat := Categories[src.IntN(len(Categories))]
	list := c.tasks[cat]
	return cat, list[src.IntN(len(list))]
}

// DrawAffirmation picks an affirmation uniformly from cat.
func (c *Catalog) DrawAffirmation(src random.Source, cat Category) string {
	list := c.affirmations[cat]
	if len(list) == 0 {
		return ""
	}
	return list[src.IntN(len(list))]
}

func clone(m map[Category][]string) map[Category][]string {
	out := make(map[Category][]string, len(m))
	for k, v := range m {
		out[k] = append([]string(nil), v...)
	}
	return out
}

// Current returns c, so a fixed catalog can stand in for a Watcher.
func (c *Catalog) Current() *Catalog { return c }
