package app

import (
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"
	"github.com/specialistvlad/yangkit/internal/effective"
	"gopkg.in/yaml.v3"
)

var (
	keywordColor = color.New(color.FgCyan)
	schemaColor  = color.New(color.FgGreen, color.Bold)
	markerColor  = color.New(color.FgYellow)
)

// writeText prints every module as an indented statement tree. Schema nodes
// are highlighted and copied statements carry their copy history.
func writeText(w io.Writer, model *effective.Model) error {
	for _, module := range model.Modules() {
		if err := writeTree(w, module, 0); err != nil {
			return err
		}
	}
	for _, sub := range model.Submodules() {
		if err := writeTree(w, sub, 0); err != nil {
			return err
		}
	}
	return nil
}

func writeTree(w io.Writer, s *effective.Statement, depth int) error {
	kw := keywordColor.Sprint(s.Keyword())
	if s.IsSchemaNode() {
		kw = schemaColor.Sprint(s.Keyword())
	}
	line := strings.Repeat("  ", depth) + kw
	if arg := s.RawArgument(); arg != "" {
		line += " " + quoteIfNeeded(arg)
	}
	if markers := statementMarkers(s); len(markers) > 0 {
		line += " " + markerColor.Sprintf("[%s]", strings.Join(markers, ", "))
	}
	if _, err := fmt.Fprintln(w, line); err != nil {
		return err
	}
	for _, sub := range s.Substatements() {
		if err := writeTree(w, sub, depth+1); err != nil {
			return err
		}
	}
	return nil
}

func statementMarkers(s *effective.Statement) []string {
	var markers []string
	if s.IsImplicit() {
		markers = append(markers, "implicit")
	}
	if h := s.History(); !h.IsOriginal() {
		markers = append(markers, h.String())
	}
	return markers
}

func quoteIfNeeded(arg string) string {
	if strings.ContainsAny(arg, " \t\n;{}\"'") {
		return fmt.Sprintf("%q", arg)
	}
	return arg
}

// writeYAML encodes the model as a YAML document that keeps statement order.
func writeYAML(w io.Writer, model *effective.Model) error {
	modules := &yaml.Node{Kind: yaml.SequenceNode}
	for _, module := range model.Modules() {
		modules.Content = append(modules.Content, statementNode(module))
	}
	submodules := &yaml.Node{Kind: yaml.SequenceNode}
	for _, sub := range model.Submodules() {
		submodules.Content = append(submodules.Content, statementNode(sub))
	}
	doc := &yaml.Node{Kind: yaml.MappingNode}
	addPair(doc, "modules", modules)
	if len(submodules.Content) > 0 {
		addPair(doc, "submodules", submodules)
	}

	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(doc); err != nil {
		return err
	}
	return enc.Close()
}

func statementNode(s *effective.Statement) *yaml.Node {
	n := &yaml.Node{Kind: yaml.MappingNode}
	addPair(n, "keyword", scalar(s.Keyword()))
	if arg := s.RawArgument(); arg != "" {
		addPair(n, "argument", scalar(arg))
	}
	if s.IsImplicit() {
		addPair(n, "implicit", &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!bool", Value: "true"})
	}
	if h := s.History(); !h.IsOriginal() {
		addPair(n, "history", scalar(h.String()))
	}
	if subs := s.Substatements(); len(subs) > 0 {
		seq := &yaml.Node{Kind: yaml.SequenceNode}
		for _, sub := range subs {
			seq.Content = append(seq.Content, statementNode(sub))
		}
		addPair(n, "substatements", seq)
	}
	return n
}

func scalar(v string) *yaml.Node {
	return &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!str", Value: v}
}

func addPair(m *yaml.Node, key string, value *yaml.Node) {
	m.Content = append(m.Content, scalar(key), value)
}
