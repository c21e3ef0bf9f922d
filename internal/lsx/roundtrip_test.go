package lsx

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/Smotherer007/pLarianSaveTools/internal/tree"
)

func TestWriteEmptyNodeSelfCloses(t *testing.T) {
	root := tree.NewNode("save")
	region := tree.NewNode("GlobalVars")
	root.AddChild(region)
	region.AddChild(tree.NewNode("Empty"))

	out := Write(root, tree.Version{Major: 4}, Options{ResourceVersion: 33})
	require.Contains(t, string(out), `<node id="Empty" />`)
}

func TestWriteEscapingRulesBoundaryScenario(t *testing.T) {
	root := tree.NewNode("save")
	region := tree.NewNode("Region")
	root.AddChild(region)
	n := region.AddChild(tree.NewNode("n"))
	n.SetAttribute("Label", tree.TypeString, tree.Value{Str: `it's a "test"`})

	out := Write(root, tree.Version{Major: 4}, Options{ResourceVersion: 33})
	s := string(out)
	require.Contains(t, s, `it's a &quot;test&quot;`)
	require.NotContains(t, s, "&apos;")
}

func TestWriteReadRoundTrip(t *testing.T) {
	root := tree.NewNode("save")
	region := tree.NewNode("GlobalVars")
	root.AddChild(region)
	n := region.AddChild(tree.NewNode("Var"))
	n.SetAttribute("Flag", tree.TypeBool, tree.Value{Bool: true})
	n.SetAttribute("Count", tree.TypeInt, tree.Value{Int: 42})
	n.SetAttribute("Amount", tree.TypeFloat, tree.Value{F64: 0.1})

	out := Write(root, tree.Version{Major: 4, Minor: 0, Revision: 9, Build: 200}, Options{ResourceVersion: 33})
	require.True(t, strings.HasPrefix(string(out), "\xEF\xBB\xBF"))

	res, err := Read(out)
	require.NoError(t, err)
	require.Equal(t, uint32(4), res.Version.Major)

	region2 := res.Root
	require.Equal(t, "GlobalVars", region2.Name)
	v := region2.Children[0]
	attr, ok := v.Attribute("Count")
	require.True(t, ok)
	require.Equal(t, int64(42), attr.Value.Int)
}

func TestTranslatedStringAttributeOrdering(t *testing.T) {
	root := tree.NewNode("save")
	region := tree.NewNode("Region")
	root.AddChild(region)
	n := region.AddChild(tree.NewNode("n"))
	n.SetAttribute("Text", tree.TypeTranslatedString, tree.Value{
		Translated: &tree.TranslatedString{Value: "hi", Handle: "h1"},
	})

	v28 := Write(root, tree.Version{Major: 3}, Options{ResourceVersion: 28})
	require.Regexp(t, `handle="h1"\s+value="hi"`, string(v28))

	v33 := Write(root, tree.Version{Major: 4}, Options{ResourceVersion: 33})
	require.Regexp(t, `value="hi"\s+handle="h1"`, string(v33))
}

func TestTranslatedFSStringArgumentsCount(t *testing.T) {
	root := tree.NewNode("save")
	region := tree.NewNode("Region")
	root.AddChild(region)
	n := region.AddChild(tree.NewNode("n"))
	n.SetAttribute("Text", tree.TypeTranslatedFSString, tree.Value{
		TranslatedFS: &tree.TranslatedFSString{
			Value:  "outer",
			Handle: "h1",
			Arguments: []tree.TranslatedFSArgument{
				{
					Key:   "arg1",
					Value: "1",
					String: &tree.TranslatedFSString{
						Value:  "inner",
						Handle: "h2",
						Arguments: []tree.TranslatedFSArgument{
							{Key: "arg2", Value: "2"},
						},
					},
				},
			},
		},
	})

	out := Write(root, tree.Version{Major: 4}, Options{ResourceVersion: 33})
	require.Contains(t, string(out), `arguments="1"`)
}

func TestSecondWriteReproducesBytes(t *testing.T) {
	root := tree.NewNode("save")
	region := tree.NewNode("GlobalVars")
	root.AddChild(region)
	n := region.AddChild(tree.NewNode("Var"))
	n.SetAttribute("Flag", tree.TypeBool, tree.Value{Bool: true})
	n.SetAttribute("Amount", tree.TypeFloat, tree.Value{F64: 0.1})
	n.SetAttribute("ID", tree.TypeUUID, tree.Value{Str: "427baeec-054d-4354-9a12-0123456789ab"})

	opts := Options{ResourceVersion: 33, LSLibMeta: "v1,bswap_guids"}
	version := tree.Version{Major: 4, Minor: 0, Revision: 9, Build: 200}

	first := Write(root, version, opts)
	res, err := Read(first)
	require.NoError(t, err)

	second := Write(res.Root, res.Version, opts)
	require.Equal(t, first, second)
}
