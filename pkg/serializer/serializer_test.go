package serializer_test

import (
	"testing"

	"github.com/DhavalSuthar-24/superheroes/pkg/serializer"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type node struct {
	id       uint
	label    string
	parent   *node
	children []*node
	rules    []string
}

func (n *node) SerializeFields() []serializer.Field {
	children := make([]serializer.Serializable, 0, len(n.children))
	for _, c := range n.children {
		children = append(children, c)
	}
	return []serializer.Field{
		{Name: "id", Value: n.id},
		{Name: "label", Value: n.label},
		{Name: "parent", Value: n.parent},
		{Name: "children", Value: children},
	}
}

func (n *node) SerializeRules() []string {
	return n.rules
}

func TestToDictScalars(t *testing.T) {
	out := serializer.ToDict(&node{id: 7, label: "seven"})

	assert.Equal(t, uint(7), out["id"])
	assert.Equal(t, "seven", out["label"])
	assert.Nil(t, out["parent"])
	assert.Equal(t, []map[string]any{}, out["children"])
}

func TestToDictNilValue(t *testing.T) {
	var n *node
	assert.Nil(t, serializer.ToDict(n))
}

func TestToDictDropsTopLevelField(t *testing.T) {
	out := serializer.ToDict(&node{id: 1, label: "x"}, "-label")

	assert.NotContains(t, out, "label")
	assert.Contains(t, out, "id")
}

func TestToDictNestedRuleAppliesToEveryChild(t *testing.T) {
	root := &node{id: 1, label: "root"}
	root.children = []*node{
		{id: 2, label: "a", parent: &node{id: 1}},
		{id: 3, label: "b", parent: &node{id: 1}},
	}

	out := serializer.ToDict(root, "-children.parent")

	children, ok := out["children"].([]map[string]any)
	require.True(t, ok)
	require.Len(t, children, 2)
	for _, c := range children {
		assert.NotContains(t, c, "parent")
		assert.Contains(t, c, "label")
	}
}

func TestToDictEntityRulesMergeWithCallerRules(t *testing.T) {
	child := &node{id: 2, label: "child", rules: []string{"-children"}}
	root := &node{id: 1, children: []*node{child}}

	out := serializer.ToDict(root, "-label")

	assert.NotContains(t, out, "label")
	children := out["children"].([]map[string]any)
	require.Len(t, children, 1)
	assert.NotContains(t, children[0], "children")
	assert.Equal(t, "child", children[0]["label"])
}

func TestToDictRulePrefixIsOptional(t *testing.T) {
	out := serializer.ToDict(&node{id: 1, label: "x"}, "label", " ", "")

	assert.NotContains(t, out, "label")
	assert.Contains(t, out, "id")
}

func TestToDicts(t *testing.T) {
	out := serializer.ToDicts([]node{{id: 1}, {id: 2}}, "-children")

	require.Len(t, out, 2)
	assert.Equal(t, uint(2), out[1]["id"])
	assert.NotContains(t, out[0], "children")
}
