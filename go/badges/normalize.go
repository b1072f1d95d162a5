package badges

import (
	"errors"
	"fmt"
	"slices"
	"strings"

	"github.com/beevik/etree"
)

// normalize parses document, strips insignificant whitespace from every text
// node and serializes the root element.
func normalize(document string) ([]byte, error) {
	tree := etree.NewDocument()
	if err := tree.ReadFromString(document); err != nil {
		return nil, fmt.Errorf("parsing badge document: %w", err)
	}
	if tree.Root() == nil {
		return nil, errors.New("parsing badge document: no root element")
	}
	// Only the root element is kept at the top level.
	for _, token := range slices.Clone(tree.Child) {
		if _, ok := token.(*etree.Element); !ok {
			tree.RemoveChild(token)
		}
	}
	removeBlanks(tree.Root())

	serialized, err := tree.WriteToString()
	if err != nil {
		return nil, fmt.Errorf("serializing badge document: %w", err)
	}
	return []byte(serialized), nil
}

func removeBlanks(element *etree.Element) {
	for _, token := range slices.Clone(element.Child) {
		switch token := token.(type) {
		case *etree.CharData:
			token.Data = strings.TrimSpace(token.Data)
			if token.Data == "" {
				element.RemoveChild(token)
			}
		case *etree.Element:
			removeBlanks(token)
		}
	}
}
