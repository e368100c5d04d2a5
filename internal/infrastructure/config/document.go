package configinfra

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"math"
	"regexp"

	"gopkg.in/yaml.v3"

	"github.com/run-with-secrets/run-with-secrets/internal/core/domain/secrets"
)

// maxDepth bounds nesting so alias chains cannot recurse forever
const maxDepth = 100

// jsonNumber matches number literals that JSON can carry unchanged
var jsonNumber = regexp.MustCompile(`^-?(?:0|[1-9][0-9]*)(?:\.[0-9]+)?(?:[eE][+-]?[0-9]+)?$`)

// parseDocument decodes a single YAML (or JSON) document. It returns an
// empty mapping when the input holds no document at all.
func parseDocument(data []byte) (secrets.Value, error) {
	dec := yaml.NewDecoder(bytes.NewReader(data))

	var doc yaml.Node
	if err := dec.Decode(&doc); err != nil {
		if errors.Is(err, io.EOF) {
			return secrets.Mapping(), nil
		}
		return secrets.Value{}, err
	}

	var extra yaml.Node
	if err := dec.Decode(&extra); !errors.Is(err, io.EOF) {
		if err != nil {
			return secrets.Value{}, err
		}
		return secrets.Value{}, fmt.Errorf("expected a single document, found more than one")
	}

	root, err := convertNode(&doc, 0)
	if err != nil {
		return secrets.Value{}, err
	}

	switch root.Kind() {
	case secrets.KindMapping:
		return root, nil
	case secrets.KindNull:
		return secrets.Mapping(), nil
	default:
		return secrets.Value{}, fmt.Errorf("top-level document must be a mapping, got %s", root.Kind())
	}
}

func convertNode(node *yaml.Node, depth int) (secrets.Value, error) {
	if depth > maxDepth {
		return secrets.Value{}, fmt.Errorf("line %d: document nested too deeply", node.Line)
	}

	switch node.Kind {
	case yaml.DocumentNode:
		if len(node.Content) == 0 {
			return secrets.Null(), nil
		}
		return convertNode(node.Content[0], depth+1)
	case yaml.AliasNode:
		if node.Alias == nil {
			return secrets.Value{}, fmt.Errorf("line %d: unknown alias %q", node.Line, node.Value)
		}
		return convertNode(node.Alias, depth+1)
	case yaml.MappingNode:
		return convertMapping(node, depth)
	case yaml.SequenceNode:
		items := make([]secrets.Value, 0, len(node.Content))
		for _, child := range node.Content {
			item, err := convertNode(child, depth+1)
			if err != nil {
				return secrets.Value{}, err
			}
			items = append(items, item)
		}
		return secrets.Sequence(items...), nil
	case yaml.ScalarNode:
		return convertScalar(node)
	default:
		return secrets.Value{}, fmt.Errorf("line %d: unsupported node", node.Line)
	}
}

// convertMapping keeps keys in document order. Merge keys (<<) contribute
// their pairs first so explicit keys override them; among several merge
// sources the earliest wins.
func convertMapping(node *yaml.Node, depth int) (secrets.Value, error) {
	var merged, explicit []secrets.Pair

	for i := 0; i+1 < len(node.Content); i += 2 {
		keyNode, valueNode := node.Content[i], node.Content[i+1]

		if keyNode.Kind == yaml.ScalarNode && keyNode.ShortTag() == "!!merge" {
			pairs, err := mergeSources(valueNode, depth)
			if err != nil {
				return secrets.Value{}, err
			}
			merged = append(merged, pairs...)
			continue
		}

		key, err := convertNode(keyNode, depth+1)
		if err != nil {
			return secrets.Value{}, err
		}
		switch key.Kind() {
		case secrets.KindMapping, secrets.KindSequence:
			return secrets.Value{}, fmt.Errorf("line %d: mapping keys must be scalars", keyNode.Line)
		}

		value, err := convertNode(valueNode, depth+1)
		if err != nil {
			return secrets.Value{}, err
		}
		explicit = append(explicit, secrets.Pair{Key: key.String(), Value: value})
	}

	return secrets.Mapping(append(merged, explicit...)...), nil
}

func mergeSources(node *yaml.Node, depth int) ([]secrets.Pair, error) {
	sources := []*yaml.Node{node}
	if node.Kind == yaml.SequenceNode {
		sources = node.Content
	}

	var pairs []secrets.Pair
	for i := len(sources) - 1; i >= 0; i-- {
		source, err := convertNode(sources[i], depth+1)
		if err != nil {
			return nil, err
		}
		if source.Kind() != secrets.KindMapping {
			return nil, fmt.Errorf("line %d: merge key must reference a mapping", sources[i].Line)
		}
		pairs = append(pairs, source.Pairs()...)
	}
	return pairs, nil
}

func convertScalar(node *yaml.Node) (secrets.Value, error) {
	tag := node.ShortTag()
	if (tag == "!!int" || tag == "!!float") && jsonNumber.MatchString(node.Value) {
		// Keep the written digits; decoding would round big integers and drop
		// trailing zeros.
		return secrets.Number(node.Value), nil
	}

	switch tag {
	case "!!null":
		return secrets.Null(), nil
	case "!!bool":
		var b bool
		if err := node.Decode(&b); err != nil {
			return secrets.Value{}, err
		}
		return secrets.Bool(b), nil
	case "!!int":
		// Hex, octal and signed forms are rewritten in decimal.
		var v interface{}
		if err := node.Decode(&v); err != nil {
			return secrets.Value{}, err
		}
		switch n := v.(type) {
		case int:
			return secrets.Int(int64(n)), nil
		case int64:
			return secrets.Int(n), nil
		case uint64:
			return secrets.Uint(n), nil
		case float64:
			return secrets.Float(n), nil
		default:
			return secrets.String(node.Value), nil
		}
	case "!!float":
		var f float64
		if err := node.Decode(&f); err != nil {
			return secrets.Value{}, err
		}
		if math.IsInf(f, 0) || math.IsNaN(f) {
			// Not representable in JSON; keep the literal.
			return secrets.String(node.Value), nil
		}
		return secrets.Float(f), nil
	default:
		// !!str, !!timestamp, !!binary and custom tags keep their literal text.
		return secrets.String(node.Value), nil
	}
}
