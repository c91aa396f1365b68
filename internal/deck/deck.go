// Package deck loads slide decks. A deck is a YAML document validated
// against an embedded JSON Schema; the built-in deck is embedded too.
package deck

import (
	"bytes"
	_ "embed"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"strings"
	"sync"

	"github.com/santhosh-tekuri/jsonschema/v6"
	"golang.org/x/mod/semver"
	"gopkg.in/yaml.v3"
)

// SupportedMajor is the deck format major version this build reads.
const SupportedMajor = "v1"

//go:embed deck.schema.json
var schemaJSON []byte

//go:embed default.yaml
var defaultYAML []byte

// Kind is the slide layout.
type Kind string

const (
	KindTitle        Kind = "title"
	KindChartBar     Kind = "chart-bar"
	KindChartLine    Kind = "chart-line"
	KindStrategyList Kind = "strategy-list"
	KindComparison   Kind = "comparison"
	KindFuture       Kind = "future"
)

// Deck is an ordered, fixed list of slides.
type Deck struct {
	Format  string  `yaml:"format"`
	Title   string  `yaml:"title"`
	Subject string  `yaml:"subject,omitempty"`
	Hint    string  `yaml:"hint,omitempty"`
	Slides  []Slide `yaml:"slides"`
}

// Slide is one page of the deck.
type Slide struct {
	ID       string   `yaml:"id,omitempty"`
	Kind     Kind     `yaml:"kind"`
	Title    string   `yaml:"title"`
	Kicker   string   `yaml:"kicker,omitempty"`
	Subtitle string   `yaml:"subtitle,omitempty"`
	Body     string   `yaml:"body,omitempty"`
	Bullets  []Bullet `yaml:"bullets,omitempty"`
	Stats    []Stat   `yaml:"stats,omitempty"`
	Chart    *Chart   `yaml:"chart,omitempty"`
	Notes    string   `yaml:"notes,omitempty"`
}

// Bullet is a list item. In YAML it is either a plain string or a
// {title, text} mapping.
type Bullet struct {
	Title string `yaml:"title"`
	Text  string `yaml:"text,omitempty"`
}

// UnmarshalYAML accepts the scalar shorthand.
func (b *Bullet) UnmarshalYAML(n *yaml.Node) error {
	if n.Kind == yaml.ScalarNode {
		b.Title = n.Value
		return nil
	}
	type plain Bullet
	return n.Decode((*plain)(b))
}

// Stat is a headline figure.
type Stat struct {
	Value string `yaml:"value"`
	Label string `yaml:"label"`
	Sub   string `yaml:"sub,omitempty"`
}

// Chart is a small data series.
type Chart struct {
	Title  string       `yaml:"title,omitempty"`
	Unit   string       `yaml:"unit,omitempty"`
	Points []ChartPoint `yaml:"points"`
}

// ChartPoint is one sample.
type ChartPoint struct {
	Name   string   `yaml:"name"`
	Value  float64  `yaml:"value"`
	Value2 *float64 `yaml:"value2,omitempty"`
	Label  string   `yaml:"label,omitempty"`
}

// AssistantHint returns the text the assistant panel shows before its
// first answer.
func (d *Deck) AssistantHint() string {
	if d.Hint != "" {
		return d.Hint
	}
	return "Ask about " + d.TopicName() + "'s unit economics, margins, or competitive landscape..."
}

// TopicName is what the deck is about: the subject, else the title.
func (d *Deck) TopicName() string {
	if d.Subject != "" {
		return d.Subject
	}
	return d.Title
}

// Len returns the slide count.
func (d *Deck) Len() int { return len(d.Slides) }

// Slide returns slide i, clamped into range.
func (d *Deck) Slide(i int) Slide {
	i = max(0, min(i, len(d.Slides)-1))
	return d.Slides[i]
}

// Titles returns every slide title in order.
func (d *Deck) Titles() []string {
	out := make([]string, len(d.Slides))
	for i, s := range d.Slides {
		out[i] = s.Title
	}
	return out
}

// ValidationError reports a deck that does not match the schema or the
// supported format.
type ValidationError struct {
	Source string
	Err    error
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid deck %s: %v", e.Source, e.Err)
}

func (e *ValidationError) Unwrap() error { return e.Err }

// ErrUnsupportedFormat is wrapped by ValidationError when the deck's
// format major version is not SupportedMajor.
var ErrUnsupportedFormat = errors.New("unsupported deck format")

// Load reads and parses the deck at path.
func Load(path string) (*Deck, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read deck: %w", err)
	}
	return parse(data, path)
}

// Parse parses a deck from YAML bytes.
func Parse(data []byte) (*Deck, error) {
	return parse(data, "<input>")
}

// Default returns the built-in deck.
func Default() *Deck {
	d, err := parse(defaultYAML, "<default>")
	if err != nil {
		panic(fmt.Sprintf("embedded deck is invalid: %v", err))
	}
	return d
}

func parse(data []byte, source string) (*Deck, error) {
	var raw any
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return nil, &ValidationError{Source: source, Err: fmt.Errorf("yaml: %w", err)}
	}
	if err := validateSchema(raw); err != nil {
		return nil, &ValidationError{Source: source, Err: err}
	}

	var d Deck
	if err := yaml.Unmarshal(data, &d); err != nil {
		return nil, &ValidationError{Source: source, Err: fmt.Errorf("yaml: %w", err)}
	}
	if err := checkFormat(d.Format); err != nil {
		return nil, &ValidationError{Source: source, Err: err}
	}
	if err := assignIDs(d.Slides); err != nil {
		return nil, &ValidationError{Source: source, Err: err}
	}
	return &d, nil
}

// checkFormat accepts "1", "1.2" or "1.2.3", with or without a leading v.
func checkFormat(format string) error {
	v := format
	if !strings.HasPrefix(v, "v") {
		v = "v" + v
	}
	if !semver.IsValid(v) {
		return fmt.Errorf("format %q is not a semantic version", format)
	}
	if semver.Major(v) != SupportedMajor {
		return fmt.Errorf("%w: %s (want %s.x)", ErrUnsupportedFormat, format, SupportedMajor)
	}
	return nil
}

// assignIDs fills missing slide IDs from the position and rejects duplicates.
func assignIDs(slides []Slide) error {
	seen := make(map[string]int, len(slides))
	for i := range slides {
		if slides[i].ID == "" {
			slides[i].ID = fmt.Sprintf("slide-%d", i+1)
		}
		if prev, dup := seen[slides[i].ID]; dup {
			return fmt.Errorf("slides %d and %d share id %q", prev+1, i+1, slides[i].ID)
		}
		seen[slides[i].ID] = i
	}
	return nil
}

var (
	schemaOnce     sync.Once
	compiledSchema *jsonschema.Schema
	schemaErr      error
)

func deckSchema() (*jsonschema.Schema, error) {
	schemaOnce.Do(func() {
		doc, err := jsonschema.UnmarshalJSON(bytes.NewReader(schemaJSON))
		if err != nil {
			schemaErr = fmt.Errorf("parse deck schema: %w", err)
			return
		}
		c := jsonschema.NewCompiler()
		const url = "schema://deck.schema.json"
		if err := c.AddResource(url, doc); err != nil {
			schemaErr = fmt.Errorf("add resource: %w", err)
			return
		}
		compiledSchema, schemaErr = c.Compile(url)
	})
	return compiledSchema, schemaErr
}

// validateSchema checks the decoded YAML tree. The tree is round-tripped
// through JSON so numbers and maps take the shapes the validator expects.
func validateSchema(raw any) error {
	sch, err := deckSchema()
	if err != nil {
		return err
	}
	b, err := json.Marshal(raw)
	if err != nil {
		return fmt.Errorf("convert to json: %w", err)
	}
	inst, err := jsonschema.UnmarshalJSON(bytes.NewReader(b))
	if err != nil {
		return fmt.Errorf("convert to json: %w", err)
	}
	if err := sch.Validate(inst); err != nil {
		return fmt.Errorf("schema validation failed: %w", err)
	}
	return nil
}
