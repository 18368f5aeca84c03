// SPDX-License-Identifier: MIT

package stiffness

import (
	"fmt"
	"strconv"

	"gopkg.in/yaml.v3"
)

var (
	_ yaml.Marshaler   = (*Matrix)(nil)
	_ yaml.Unmarshaler = (*Matrix)(nil)
)

// MarshalYAML encodes the matrix as a sequence of six flow-style rows.
func (s *Matrix) MarshalYAML() (interface{}, error) {
	if s.Empty() {
		return nil, fmt.Errorf("stiffness: encode yaml: %w", ErrEmpty)
	}
	node := &yaml.Node{Kind: yaml.SequenceNode}
	for _, row := range s.Rows() {
		rowNode := &yaml.Node{Kind: yaml.SequenceNode, Style: yaml.FlowStyle}
		for _, v := range row {
			rowNode.Content = append(rowNode.Content, &yaml.Node{
				Kind:  yaml.ScalarNode,
				Value: strconv.FormatFloat(v, 'g', -1, 64),
			})
		}
		node.Content = append(node.Content, rowNode)
	}

	return node, nil
}

// UnmarshalYAML decodes six rows of six numbers and applies the default
// construction policy (symmetry is validated, not repaired).
func (s *Matrix) UnmarshalYAML(value *yaml.Node) error {
	var rows [][]float64
	if err := value.Decode(&rows); err != nil {
		return fmt.Errorf("stiffness: decode yaml: %w", err)
	}
	m, err := New(rows)
	if err != nil {
		return err
	}
	*s = *m

	return nil
}
