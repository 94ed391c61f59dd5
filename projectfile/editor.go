package projectfile

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/amonks/rulefind/ruletree"
	"gopkg.in/yaml.v3"
)

// Editor defines the type of editor files. An editor file is written in TOML
// (.toml) or YAML (.yaml, .yml); both use the same keys.
//
// Optional leaves are pointers: a nil ToEval is absent, while an empty one is
// an empty leaf.
type Editor struct {
	Name         string        `toml:"name" yaml:"name"`
	TopicFilters []string      `toml:"topic_filters,omitempty" yaml:"topic_filters,omitempty"`
	Rules        []Rule        `toml:"rule,omitempty" yaml:"rules,omitempty"`
	Questions    []Conditional `toml:"question,omitempty" yaml:"questions,omitempty"`
}

type Rule struct {
	Name         string         `toml:"name,omitempty" yaml:"name,omitempty"`
	Inputs       []string       `toml:"inputs,omitempty" yaml:"inputs,omitempty"`
	ToEval       *string        `toml:"to_eval,omitempty" yaml:"to_eval,omitempty"`
	ToCal        *string        `toml:"to_cal,omitempty" yaml:"to_cal,omitempty"`
	ResponsesFor []ResponsesFor `toml:"responses_for,omitempty" yaml:"responses_for,omitempty"`
	Conditionals []Conditional  `toml:"conditional,omitempty" yaml:"conditionals,omitempty"`
	Outputs      []Output       `toml:"output,omitempty" yaml:"outputs,omitempty"`
	Do           *string        `toml:"do,omitempty" yaml:"do,omitempty"`
}

type ResponsesFor struct {
	Name         string        `toml:"name" yaml:"name"`
	Conditionals []Conditional `toml:"conditional,omitempty" yaml:"conditionals,omitempty"`
}

type Conditional struct {
	Condition *string  `toml:"condition,omitempty" yaml:"condition,omitempty"`
	Outputs   []Output `toml:"output,omitempty" yaml:"outputs,omitempty"`
	Do        *string  `toml:"do,omitempty" yaml:"do,omitempty"`
}

type Output struct {
	Text    string   `toml:"text" yaml:"text"`
	Invalid []string `toml:"invalid,omitempty" yaml:"invalid,omitempty"`
}

// A Format is an editor file syntax.
type Format string

const (
	FormatTOML Format = "toml"
	FormatYAML Format = "yaml"
)

// FormatOf picks the format for a file by its extension.
func FormatOf(path string) (Format, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".toml":
		return FormatTOML, nil
	case ".yaml", ".yml":
		return FormatYAML, nil
	}
	return "", fmt.Errorf("'%s' is not a .toml, .yaml, or .yml file", path)
}

// Decode parses an editor file.
func Decode(data []byte, format Format) (Editor, error) {
	var ed Editor
	switch format {
	case FormatTOML:
		if err := toml.Unmarshal(data, &ed); err != nil {
			return Editor{}, err
		}
	case FormatYAML:
		if err := yaml.Unmarshal(data, &ed); err != nil {
			return Editor{}, err
		}
	default:
		return Editor{}, fmt.Errorf("unknown format '%s'", format)
	}
	return ed, nil
}

// Encode writes an editor file.
func (ed Editor) Encode(format Format) ([]byte, error) {
	switch format {
	case FormatTOML:
		var buf bytes.Buffer
		if err := toml.NewEncoder(&buf).Encode(ed); err != nil {
			return nil, err
		}
		return buf.Bytes(), nil
	case FormatYAML:
		return yaml.Marshal(ed)
	}
	return nil, fmt.Errorf("unknown format '%s'", format)
}

// LoadEditor reads an editor file from disk. An editor without a name is
// named after its file.
func LoadEditor(path string) (*ruletree.Editor, error) {
	format, err := FormatOf(path)
	if err != nil {
		return nil, err
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	ed, err := Decode(data, format)
	if err != nil {
		return nil, fmt.Errorf("parsing '%s': %w", path, err)
	}
	if ed.Name == "" {
		ed.Name = strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
	}
	return ed.ToEditor(), nil
}

// SaveEditor writes an editor to disk, in the format its extension names.
func SaveEditor(path string, e *ruletree.Editor) error {
	format, err := FormatOf(path)
	if err != nil {
		return err
	}
	data, err := FromEditor(e).Encode(format)
	if err != nil {
		return fmt.Errorf("encoding '%s': %w", e.Name, err)
	}
	return os.WriteFile(path, data, 0o644)
}

// ToEditor builds the rule tree described by the file. The tree is linked,
// with fresh leaf IDs.
func (ed Editor) ToEditor() *ruletree.Editor {
	e := &ruletree.Editor{Name: ed.Name}
	for _, tf := range ed.TopicFilters {
		e.TopicFilters = append(e.TopicFilters, ruletree.NewPattern(tf))
	}
	for _, r := range ed.Rules {
		e.Rules = append(e.Rules, r.toRule())
	}
	for _, q := range ed.Questions {
		e.Questions = append(e.Questions, q.toConditional())
	}
	e.Link()
	return e
}

func (r Rule) toRule() *ruletree.Rule {
	rule := &ruletree.Rule{
		Name:   r.Name,
		ToEval: optional(r.ToEval),
		ToCal:  optional(r.ToCal),
		Do:     optional(r.Do),
	}
	for _, in := range r.Inputs {
		rule.TextPatterns = append(rule.TextPatterns, ruletree.NewPattern(in))
	}
	for _, g := range r.ResponsesFor {
		group := &ruletree.ResponsesForGroup{Name: g.Name}
		for _, c := range g.Conditionals {
			group.Conditionals = append(group.Conditionals, c.toConditional())
		}
		rule.ResponsesFor = append(rule.ResponsesFor, group)
	}
	for _, c := range r.Conditionals {
		rule.Conditionals = append(rule.Conditionals, c.toConditional())
	}
	rule.Outputs = toOutputs(r.Outputs)
	return rule
}

func (c Conditional) toConditional() *ruletree.Conditional {
	return &ruletree.Conditional{
		Condition: optional(c.Condition),
		Outputs:   toOutputs(c.Outputs),
		Do:        optional(c.Do),
	}
}

func toOutputs(outs []Output) []*ruletree.Output {
	var outputs []*ruletree.Output
	for _, o := range outs {
		outputs = append(outputs, ruletree.NewOutput(o.Text, o.Invalid...))
	}
	return outputs
}

func optional(s *string) *ruletree.Pattern {
	if s == nil {
		return nil
	}
	return ruletree.NewPattern(*s)
}

// FromEditor describes a rule tree as a file.
func FromEditor(e *ruletree.Editor) Editor {
	ed := Editor{Name: e.Name}
	for _, tf := range e.TopicFilters {
		ed.TopicFilters = append(ed.TopicFilters, tf.Expression)
	}
	for _, r := range e.Rules {
		rule := Rule{
			Name:   r.Name,
			ToEval: expression(r.ToEval),
			ToCal:  expression(r.ToCal),
			Do:     expression(r.Do),
		}
		for _, in := range r.TextPatterns {
			rule.Inputs = append(rule.Inputs, in.Expression)
		}
		for _, g := range r.ResponsesFor {
			group := ResponsesFor{Name: g.Name}
			for _, c := range g.Conditionals {
				group.Conditionals = append(group.Conditionals, fromConditional(c))
			}
			rule.ResponsesFor = append(rule.ResponsesFor, group)
		}
		for _, c := range r.Conditionals {
			rule.Conditionals = append(rule.Conditionals, fromConditional(c))
		}
		rule.Outputs = fromOutputs(r.Outputs)
		ed.Rules = append(ed.Rules, rule)
	}
	for _, q := range e.Questions {
		ed.Questions = append(ed.Questions, fromConditional(q))
	}
	return ed
}

func fromConditional(c *ruletree.Conditional) Conditional {
	return Conditional{
		Condition: expression(c.Condition),
		Outputs:   fromOutputs(c.Outputs),
		Do:        expression(c.Do),
	}
}

func fromOutputs(outs []*ruletree.Output) []Output {
	var outputs []Output
	for _, o := range outs {
		out := Output{Text: o.Expression}
		for _, inv := range o.InvalidResponses {
			out.Invalid = append(out.Invalid, inv.Expression)
		}
		outputs = append(outputs, out)
	}
	return outputs
}

func expression(p *ruletree.Pattern) *string {
	if p == nil {
		return nil
	}
	s := p.Expression
	return &s
}
