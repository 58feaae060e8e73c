package output

import (
	"encoding/json"
	"fmt"
	"io"
	"maps"
	"math"
	"slices"
	"strconv"
	"strings"

	"github.com/Backland-Labs/wbpeek/internal/params"
	"github.com/fatih/color"
	"gopkg.in/yaml.v3"
)

// Config output formats
const (
	FormatText = "text"
	FormatJSON = "json"
	FormatYAML = "yaml"
)

// Formats lists the supported config output formats
var Formats = []string{FormatText, FormatJSON, FormatYAML}

// PrintVariance prints the outcome of comparing a group's configs
func (p *Printer) PrintVariance(group string, report *params.Report) {
	switch report.Outcome {
	case params.EmptyGroup:
		p.Notice("No runs found for group '%s'.", group)
		return
	case params.Uniform:
		p.Success("No varying parameters found in group '%s'.", group)
		return
	}

	p.Title("Varying parameters in group '%s':", group)
	for _, key := range report.Keys {
		values := make([]string, 0, len(report.Values[key]))
		for _, v := range report.Values[key] {
			values = append(values, v.String())
		}
		p.Print("%s: %s\n", p.paint(key, color.FgMagenta), strings.Join(values, ", "))
	}
}

// PrintConfig prints a run config in the given format
func (p *Printer) PrintConfig(runID string, doc params.Document, format string) error {
	switch format {
	case FormatJSON:
		return WriteJSON(p.out, doc)
	case FormatYAML:
		return WriteYAML(p.out, doc)
	case FormatText, "":
		p.Title("Configuration for run %s:", runID)
		p.Println()
		p.printDocument(doc, 0)
		return nil
	default:
		return fmt.Errorf("unknown output format %q, expected one of: %s", format, strings.Join(Formats, ", "))
	}
}

// printDocument prints doc with keys sorted, nested documents indented one
// tab per level
func (p *Printer) printDocument(doc params.Document, depth int) {
	indent := strings.Repeat("\t", depth)
	keyColor := color.FgMagenta
	if depth > 0 {
		keyColor = color.FgBlue
	}

	for _, key := range slices.Sorted(maps.Keys(doc)) {
		if nested, ok := doc[key].(params.Document); ok {
			p.Print("%s%s:\n", indent, p.paint(key, keyColor))
			p.printDocument(nested, depth+1)
			continue
		}
		p.Print("%s%s: %s\n", indent, p.paint(key, keyColor), params.Canonicalize(doc[key]))
	}
}

// PrintFlag prints a single config value
func (p *Printer) PrintFlag(key string, value params.Value) {
	p.Print("%s: %s\n", p.paint(key, color.Bold), params.Canonicalize(value))
}

// WriteJSON writes doc as indented JSON with sorted keys
func WriteJSON(w io.Writer, doc params.Document) error {
	enc := json.NewEncoder(w)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "  ")
	if err := enc.Encode(params.Native(doc)); err != nil {
		return fmt.Errorf("failed to encode config as JSON: %w", err)
	}
	return nil
}

// WriteYAML writes doc as YAML with sorted keys and numbers kept as written
func WriteYAML(w io.Writer, doc params.Document) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(yamlNode(doc)); err != nil {
		return fmt.Errorf("failed to encode config as YAML: %w", err)
	}
	return enc.Close()
}

// yamlNode converts v to a YAML node tree
func yamlNode(v params.Value) *yaml.Node {
	switch t := v.(type) {
	case params.Document:
		node := &yaml.Node{Kind: yaml.MappingNode, Tag: "!!map"}
		for _, key := range slices.Sorted(maps.Keys(t)) {
			node.Content = append(node.Content,
				&yaml.Node{Kind: yaml.ScalarNode, Tag: "!!str", Value: key},
				yamlNode(t[key]),
			)
		}
		return node
	case params.List:
		return yamlSequence(t)
	case params.Set:
		return yamlSequence(t.Sorted())
	case params.String:
		return &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!str", Value: string(t)}
	case params.Number:
		return &yaml.Node{Kind: yaml.ScalarNode, Tag: numberTag(string(t)), Value: string(t)}
	case params.Bool:
		return &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!bool", Value: strconv.FormatBool(bool(t))}
	default:
		return &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!null", Value: "null"}
	}
}

func yamlSequence(items []params.Value) *yaml.Node {
	node := &yaml.Node{Kind: yaml.SequenceNode, Tag: "!!seq"}
	for _, item := range items {
		node.Content = append(node.Content, yamlNode(item))
	}
	return node
}

// numberTag picks the YAML tag for a number literal; text that is not a
// finite number is emitted as a string
func numberTag(s string) string {
	if _, err := strconv.ParseInt(s, 10, 64); err == nil {
		return "!!int"
	}
	if f, err := strconv.ParseFloat(s, 64); err == nil && !math.IsInf(f, 0) && !math.IsNaN(f) {
		return "!!float"
	}
	return "!!str"
}
