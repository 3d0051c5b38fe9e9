package codec

import (
	"bytes"
	"fmt"
	"strconv"

	"gopkg.in/yaml.v3"

	"github.com/danieljhkim/transheet/internal/tree"
)

// DefaultIndent is the number of spaces per nesting level in encoded documents.
const DefaultIndent = 4

// maxDepth bounds recursion on hostile alias chains.
const maxDepth = 64

// YAML is the block-style YAML codec.
type YAML struct {
	indent int
}

// NewYAML creates a YAML codec. indent <= 0 selects DefaultIndent.
func NewYAML(indent int) *YAML {
	if indent <= 0 {
		indent = DefaultIndent
	}
	return &YAML{indent: indent}
}

// Decode parses a YAML document into a tree. Scalars become leaves holding
// their literal text, null becomes "", and sequences become branches keyed
// by element index.
func (y *YAML) Decode(data []byte) (*tree.Tree, error) {
	var doc yaml.Node
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("failed to parse document: %w", err)
	}

	root := &doc
	if root.Kind == yaml.DocumentNode {
		if len(root.Content) == 0 {
			return nil, ErrEmptyDocument
		}
		root = root.Content[0]
	}
	if root.Kind == 0 {
		return nil, ErrEmptyDocument
	}
	root = resolveAlias(root)
	if root.Kind == yaml.ScalarNode && root.ShortTag() == "!!null" {
		return nil, ErrEmptyDocument
	}
	if root.Kind != yaml.MappingNode {
		return nil, fmt.Errorf("%w (line %d)", ErrNotMapping, root.Line)
	}

	return decodeMapping(root, 0)
}

func resolveAlias(n *yaml.Node) *yaml.Node {
	for i := 0; n.Kind == yaml.AliasNode && n.Alias != nil && i < maxDepth; i++ {
		n = n.Alias
	}
	return n
}

func decodeMapping(n *yaml.Node, depth int) (*tree.Tree, error) {
	if depth > maxDepth {
		return nil, fmt.Errorf("document nested deeper than %d levels (line %d)", maxDepth, n.Line)
	}

	t := tree.New()
	for i := 0; i+1 < len(n.Content); i += 2 {
		keyNode := resolveAlias(n.Content[i])
		if keyNode.Kind != yaml.ScalarNode {
			return nil, fmt.Errorf("non-scalar key at line %d", keyNode.Line)
		}
		node, err := decodeNode(n.Content[i+1], depth+1)
		if err != nil {
			return nil, err
		}
		t.Set(keyNode.Value, node)
	}
	return t, nil
}

func decodeNode(n *yaml.Node, depth int) (tree.Node, error) {
	n = resolveAlias(n)
	switch n.Kind {
	case yaml.MappingNode:
		sub, err := decodeMapping(n, depth)
		if err != nil {
			return tree.Node{}, err
		}
		return tree.Branch(sub), nil

	case yaml.SequenceNode:
		sub := tree.New()
		for i, item := range n.Content {
			node, err := decodeNode(item, depth+1)
			if err != nil {
				return tree.Node{}, err
			}
			sub.Set(strconv.Itoa(i), node)
		}
		return tree.Branch(sub), nil

	case yaml.ScalarNode:
		if n.ShortTag() == "!!null" {
			return tree.Leaf(""), nil
		}
		return tree.Leaf(n.Value), nil

	default:
		return tree.Node{}, fmt.Errorf("unsupported YAML node at line %d", n.Line)
	}
}

// Encode writes t as a block-style YAML mapping. Every leaf is tagged as a
// string, so values such as "yes" or "007" are quoted rather than retyped.
func (y *YAML) Encode(t *tree.Tree) ([]byte, error) {
	var buf bytes.Buffer
	enc := yaml.NewEncoder(&buf)
	enc.SetIndent(y.indent)

	if err := enc.Encode(encodeMapping(t)); err != nil {
		return nil, fmt.Errorf("failed to encode document: %w", err)
	}
	if err := enc.Close(); err != nil {
		return nil, fmt.Errorf("failed to encode document: %w", err)
	}
	return buf.Bytes(), nil
}

func encodeMapping(t *tree.Tree) *yaml.Node {
	m := &yaml.Node{Kind: yaml.MappingNode, Tag: "!!map"}
	for _, key := range t.Keys() {
		n, _ := t.Get(key)
		m.Content = append(m.Content, scalar(key))
		if n.IsBranch() {
			m.Content = append(m.Content, encodeMapping(n.Tree()))
		} else {
			m.Content = append(m.Content, scalar(n.Value()))
		}
	}
	return m
}

func scalar(value string) *yaml.Node {
	return &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!str", Value: value}
}
