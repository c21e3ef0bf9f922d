package lsf

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/Smotherer007/pLarianSaveTools/internal/compress"
	"github.com/Smotherer007/pLarianSaveTools/internal/tree"
)

func buildSampleTree() *tree.Node {
	root := tree.NewNode("save")
	region := tree.NewNode("GlobalVars")
	root.AddChild(region)

	child := region.AddChild(tree.NewNode("Var"))
	child.Key = "MyVar"
	child.SetAttribute("Name", tree.TypeFixedString, tree.Value{Str: "MyVar"})
	child.SetAttribute("Flag", tree.TypeBool, tree.Value{Bool: true})
	child.SetAttribute("Count", tree.TypeInt, tree.Value{Int: -7})
	child.SetAttribute("Amount", tree.TypeFloat, tree.Value{F64: 0.5})
	child.SetAttribute("ID", tree.TypeUUID, tree.Value{Str: "427baeec-054d-4354-9a12-0123456789ab"})
	child.SetAttribute("Position", tree.TypeVec3, tree.Value{Str: "1 2 3"})
	child.SetAttribute("Label", tree.TypeTranslatedString, tree.Value{
		Translated: &tree.TranslatedString{Value: "Hello", Handle: "h123"},
	})

	return root
}

func TestWriteReadRoundTripV2(t *testing.T) {
	root := buildSampleTree()
	engine := tree.Version{Major: 3, Minor: 6, Revision: 0, Build: 0}

	data, err := Write(root, engine, 3, 0, byte(compress.MethodNone))
	require.NoError(t, err)

	res, err := Read(data)
	require.NoError(t, err)
	require.Equal(t, engine, res.Version)

	gv := res.Root
	require.Equal(t, "GlobalVars", gv.Name)
	v := gv.Children[0]
	require.Equal(t, "MyVar", v.Key)

	attr, ok := v.Attribute("Count")
	require.True(t, ok)
	require.Equal(t, int64(-7), attr.Value.Int)

	attr, ok = v.Attribute("Flag")
	require.True(t, ok)
	require.True(t, attr.Value.Bool)

	attr, ok = v.Attribute("ID")
	require.True(t, ok)
	require.Equal(t, "427baeec-054d-4354-9a12-0123456789ab", attr.Value.Str)

	attr, ok = v.Attribute("Label")
	require.True(t, ok)
	require.Equal(t, "Hello", attr.Value.Translated.Value)
	require.Equal(t, "h123", attr.Value.Translated.Handle)
}

func TestWriteReadRoundTripV3WithCompression(t *testing.T) {
	root := buildSampleTree()
	engine := tree.Version{Major: 4, Minor: 0, Revision: 9, Build: 200}

	data, err := Write(root, engine, 6, 1, byte(compress.MethodZlib)|compress.LevelDefault)
	require.NoError(t, err)

	res, err := Read(data)
	require.NoError(t, err)
	require.Equal(t, engine, res.Version)

	gv := res.Root
	v := gv.Children[0].Children
	require.Empty(t, v)
}

func TestTranslatedFSStringRoundTrip(t *testing.T) {
	root := tree.NewNode("save")
	n := root.AddChild(tree.NewNode("n"))
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

	engine := tree.Version{Major: 4}
	data, err := Write(root, engine, 6, 1, byte(compress.MethodNone))
	require.NoError(t, err)

	res, err := Read(data)
	require.NoError(t, err)

	attr, ok := res.Root.Attribute("Text")
	require.True(t, ok)
	fs := attr.Value.TranslatedFS
	require.Equal(t, "outer", fs.Value)
	require.Len(t, fs.Arguments, 1)
	require.Equal(t, "inner", fs.Arguments[0].String.Value)
	require.Len(t, fs.Arguments[0].String.Arguments, 1)
	require.Equal(t, "arg2", fs.Arguments[0].String.Arguments[0].Key)
}

func TestSecondWriteReproducesBytes(t *testing.T) {
	root := buildSampleTree()
	engine := tree.Version{Major: 4, Minor: 0, Revision: 9, Build: 200}

	first, err := Write(root, engine, 6, 1, byte(compress.MethodNone))
	require.NoError(t, err)

	res, err := Read(first)
	require.NoError(t, err)

	second, err := Write(res.Root, res.Version, 6, 1, byte(compress.MethodNone))
	require.NoError(t, err)
	require.Equal(t, first, second)
}
