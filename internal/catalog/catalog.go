// Package catalog holds the static reference tables used to decorate
// records: course names by code, the running semester per batch and how
// many semesters each batch shows.
package catalog

import (
	_ "embed"
	"errors"
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

//go:embed courses.yaml
var embedded []byte

// ErrInvalidCatalog is returned when a catalogue document cannot be used.
var ErrInvalidCatalog = errors.New("invalid course catalogue")

const batchPrefixLen = 2

type document struct {
	Courses         map[string]string `yaml:"courses"`
	Batches         map[string]int    `yaml:"batches"`
	Visible         map[string]int    `yaml:"visible_semesters"`
	DefaultSemester int               `yaml:"default_semester"`
}

// Catalog resolves course codes and batch semesters. It is immutable
// after construction and safe for concurrent use.
type Catalog struct {
	courses         map[string]string
	batches         map[string]int
	visible         map[string]int
	defaultSemester int
}

// Default returns the catalogue compiled into the binary.
func Default() *Catalog {
	c, err := Parse(embedded)
	if err != nil {
		panic(fmt.Sprintf("catalog: embedded courses.yaml: %v", err))
	}
	return c
}

// Load returns the embedded catalogue, with entries from the YAML file at
// path layered on top when path is non-empty.
func Load(path string) (*Catalog, error) {
	base := Default()
	if path == "" {
		return base, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read course catalogue: %w", err)
	}
	override, err := Parse(data)
	if err != nil {
		return nil, err
	}
	return base.merge(override), nil
}

// Parse decodes a catalogue document.
func Parse(data []byte) (*Catalog, error) {
	var doc document
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidCatalog, err)
	}

	c := &Catalog{
		courses:         make(map[string]string, len(doc.Courses)),
		batches:         make(map[string]int, len(doc.Batches)),
		visible:         make(map[string]int, len(doc.Visible)),
		defaultSemester: doc.DefaultSemester,
	}
	for code, name := range doc.Courses {
		code = strings.TrimSpace(code)
		if code == "" {
			return nil, fmt.Errorf("%w: empty course code", ErrInvalidCatalog)
		}
		c.courses[code] = strings.TrimSpace(name)
	}
	for prefix, sem := range doc.Batches {
		if len(prefix) != batchPrefixLen || sem < 1 {
			return nil, fmt.Errorf("%w: batch %q -> %d", ErrInvalidCatalog, prefix, sem)
		}
		c.batches[prefix] = sem
	}
	for prefix, n := range doc.Visible {
		if len(prefix) != batchPrefixLen || n < 1 {
			return nil, fmt.Errorf("%w: visible semesters %q -> %d", ErrInvalidCatalog, prefix, n)
		}
		c.visible[prefix] = n
	}
	return c, nil
}

func (c *Catalog) merge(o *Catalog) *Catalog {
	out := &Catalog{
		courses:         make(map[string]string, len(c.courses)+len(o.courses)),
		batches:         make(map[string]int, len(c.batches)+len(o.batches)),
		visible:         make(map[string]int, len(c.visible)+len(o.visible)),
		defaultSemester: c.defaultSemester,
	}
	for k, v := range c.courses {
		out.courses[k] = v
	}
	for k, v := range o.courses {
		out.courses[k] = v
	}
	for k, v := range c.batches {
		out.batches[k] = v
	}
	for k, v := range o.batches {
		out.batches[k] = v
	}
	for k, v := range c.visible {
		out.visible[k] = v
	}
	for k, v := range o.visible {
		out.visible[k] = v
	}
	if o.defaultSemester > 0 {
		out.defaultSemester = o.defaultSemester
	}
	return out
}

// CourseName returns the display name for code, or code itself when the
// catalogue has no entry.
func (c *Catalog) CourseName(code string) string {
	if name, ok := c.courses[code]; ok && name != "" {
		return name
	}
	return code
}

// Len reports the number of known courses.
func (c *Catalog) Len() int {
	return len(c.courses)
}

// CurrentSemester returns the semester in progress for the batch encoded
// in the first two characters of studentID.
func (c *Catalog) CurrentSemester(studentID string) int {
	id := strings.TrimSpace(studentID)
	if len(id) >= batchPrefixLen {
		if sem, ok := c.batches[id[:batchPrefixLen]]; ok {
			return sem
		}
	}
	if c.defaultSemester > 0 {
		return c.defaultSemester
	}
	return 1
}

// VisibleSemesters returns how many semesters reports show for the batch
// of studentID. Zero means no limit.
func (c *Catalog) VisibleSemesters(studentID string) int {
	id := strings.TrimSpace(studentID)
	if len(id) < batchPrefixLen {
		return 0
	}
	return c.visible[id[:batchPrefixLen]]
}

// Term returns "ODD" or "EVEN" for the given semester number.
func Term(semester int) string {
	if semester%2 == 1 {
		return "ODD"
	}
	return "EVEN"
}
