package registry

import (
	"strconv"

	yaml "gopkg.in/yaml.v3"

	err "github.com/yamp-project/WebKit/errors"
)

// The schema is walked at the yaml.Node level instead of being decoded
// into structs, so every diagnostic can carry the dotted key path of the
// offending entry.

func parseDocument(data []byte) (*yaml.Node, error) {
	var doc yaml.Node
	if e := yaml.Unmarshal(data, &doc); e != nil {
		return nil, badDocumentError(e)
	}
	if doc.Kind != yaml.DocumentNode || len(doc.Content) != 1 {
		return nil, badDocumentError(err.Format(BadDocumentError, "empty document"))
	}
	return doc.Content[0], nil
}

func isNull(n *yaml.Node) bool {
	return n.Kind == yaml.ScalarNode && n.Tag == "!!null"
}

// eachPair walks a mapping node in document order. The callback receives
// the value node and the child path ("<path>.<key>").
func eachPair(n *yaml.Node, path string, f func(key string, val *yaml.Node, path string) error) error {
	if isNull(n) {
		return nil
	}
	if n.Kind != yaml.MappingNode {
		return wrongTypeError(path, "a mapping")
	}
	for i := 0; i+1 < len(n.Content); i += 2 {
		key := n.Content[i].Value
		if e := f(key, n.Content[i+1], path+"."+key); e != nil {
			return e
		}
	}
	return nil
}

func eachItem(n *yaml.Node, path string, f func(item *yaml.Node, path string) error) error {
	if isNull(n) {
		return nil
	}
	if n.Kind != yaml.SequenceNode {
		return wrongTypeError(path, "a sequence")
	}
	for i, item := range n.Content {
		if e := f(item, itemPath(path, i)); e != nil {
			return e
		}
	}
	return nil
}

func itemPath(path string, i int) string {
	return path + "[" + strconv.Itoa(i) + "]"
}

func stringValue(n *yaml.Node, path string) (string, error) {
	if n.Kind != yaml.ScalarNode || n.Tag == "!!null" {
		return "", wrongTypeError(path, "a string")
	}
	return n.Value, nil
}

func boolValue(n *yaml.Node, path string) (bool, error) {
	var b bool
	if n.Kind != yaml.ScalarNode || n.Decode(&b) != nil {
		return false, wrongTypeError(path, "a boolean")
	}
	return b, nil
}

func stringList(n *yaml.Node, path string) ([]string, error) {
	var list []string
	e := eachItem(n, path, func(item *yaml.Node, path string) error {
		s, e := stringValue(item, path)
		if e != nil {
			return e
		}
		list = append(list, s)
		return nil
	})
	return list, e
}
