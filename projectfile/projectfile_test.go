package projectfile_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/amonks/rulefind/projectfile"
	"github.com/amonks/rulefind/ruletree"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func names(editors []*ruletree.Editor) []string {
	var out []string
	for _, e := range editors {
		out = append(out, e.Name)
	}
	return out
}

func copyDir(t *testing.T, src string) string {
	t.Helper()
	dst := t.TempDir()
	entries, err := os.ReadDir(src)
	require.NoError(t, err)
	for _, entry := range entries {
		data, err := os.ReadFile(filepath.Join(src, entry.Name()))
		require.NoError(t, err)
		require.NoError(t, os.WriteFile(filepath.Join(dst, entry.Name()), data, 0o644))
	}
	return dst
}

func TestLoad(t *testing.T) {
	p, err := projectfile.Load("testdata/demo")
	require.NoError(t, err)

	assert.Equal(t, "demo", p.Tree.Name)
	assert.Equal(t, []string{"farewells", "greetings"}, names(p.Tree.Editors()))
	assert.Equal(t, []string{"greetings"}, names(p.Tree.OpenDocuments()))
	assert.Equal(t, "greetings", p.Tree.Current().Name)
	assert.Equal(t, []string{
		filepath.Join("testdata/demo", "farewells.yaml"),
		filepath.Join("testdata/demo", "greetings.toml"),
	}, p.Files())

	t.Run("toml editor", func(t *testing.T) {
		e := p.Tree.Editor("greetings")
		require.NotNil(t, e)
		require.Len(t, e.TopicFilters, 2)
		assert.True(t, e.TopicFilters[0].IsEmpty())

		require.Len(t, e.Rules, 2)
		hello := e.Rules[0]
		assert.Equal(t, "hello", hello.Name)
		assert.Len(t, hello.TextPatterns, 3)
		assert.Equal(t, "greet(user)", hello.ToEval.Expression)
		assert.Nil(t, hello.ToCal)
		group := hello.ResponsesFor[0]
		assert.Equal(t, "friends", group.Name)
		assert.Equal(t, "is_friend", group.Conditionals[0].Condition.Expression)
		assert.Equal(t, "hey friend", group.Conditionals[0].Outputs[0].Expression)
		assert.Equal(t, "sorry friend?", group.Conditionals[0].Outputs[0].InvalidResponses[0].Expression)
		assert.Equal(t, "wave()", hello.Conditionals[0].Do.Expression)
		assert.Len(t, hello.Outputs[0].InvalidResponses, 2)

		weather := e.Rules[1]
		assert.Equal(t, "forecast()", weather.ToCal.Expression)
		assert.Equal(t, "log(weather)", weather.Do.Expression)

		require.Len(t, e.Questions, 1)
		assert.Equal(t, "asked_name", e.Questions[0].Condition.Expression)
	})

	t.Run("yaml editor", func(t *testing.T) {
		e := p.Tree.Editor("farewells")
		require.NotNil(t, e)
		assert.Equal(t, []string{"goodbye", "see you"}, []string{
			e.Rules[0].TextPatterns[0].Expression,
			e.Rules[0].TextPatterns[1].Expression,
		})
		assert.Equal(t, "bye?", e.Rules[0].Outputs[0].InvalidResponses[0].Expression)
		assert.Equal(t, "ask_again()", e.Questions[0].Do.Expression)
		assert.Nil(t, e.Questions[0].Condition)
		assert.False(t, e.IsOpen())
	})

	t.Run("leaves are indexed", func(t *testing.T) {
		for _, e := range p.Tree.Editors() {
			for _, leaf := range e.Leaves() {
				got, ok := p.Tree.Leaf(leaf.ID)
				assert.True(t, ok)
				assert.Same(t, leaf, got)
				assert.NotNil(t, leaf.Owner)
			}
		}
	})
}

func TestLoadWithoutManifest(t *testing.T) {
	p, err := projectfile.Load("testdata/bare")
	require.NoError(t, err)
	assert.Equal(t, "bare", p.Tree.Name)
	assert.Equal(t, []string{"notes"}, names(p.Tree.Editors()))
	assert.Empty(t, p.Tree.OpenDocuments())
	assert.Nil(t, p.Tree.Current())
}

func TestSave(t *testing.T) {
	dir := copyDir(t, "testdata/demo")
	p, err := projectfile.Load(dir)
	require.NoError(t, err)

	greetings, farewells := p.Tree.Editor("greetings"), p.Tree.Editor("farewells")
	greetings.Rules[0].TextPatterns[0].SetExpression("howdy")
	farewells.Rules[0].Outputs[0].SetExpression("so long, friend")
	require.NoError(t, p.Save(greetings, farewells))

	reloaded, err := projectfile.Load(dir)
	require.NoError(t, err)
	for _, e := range []*ruletree.Editor{greetings, farewells} {
		assert.Equal(t, projectfile.FromEditor(e), projectfile.FromEditor(reloaded.Tree.Editor(e.Name)), e.Name)
	}
	assert.Equal(t, "howdy", reloaded.Tree.Editor("greetings").Rules[0].TextPatterns[0].Expression)

	t.Run("foreign editor", func(t *testing.T) {
		assert.ErrorContains(t, p.Save(&ruletree.Editor{Name: "stray"}), "wasn't loaded")
	})
}

func TestFormats(t *testing.T) {
	ed := projectfile.FromEditor(&ruletree.Editor{
		Name:         "e",
		TopicFilters: []*ruletree.Pattern{ruletree.NewPattern("t")},
		Rules: []*ruletree.Rule{{
			Name:         "r",
			TextPatterns: []*ruletree.Pattern{ruletree.NewPattern("in")},
			Outputs:      []*ruletree.Output{ruletree.NewOutput("out", "inv")},
		}},
	})
	for _, format := range []projectfile.Format{projectfile.FormatTOML, projectfile.FormatYAML} {
		t.Run(string(format), func(t *testing.T) {
			data, err := ed.Encode(format)
			require.NoError(t, err)
			decoded, err := projectfile.Decode(data, format)
			require.NoError(t, err)
			assert.Equal(t, ed, decoded)
		})
	}

	t.Run("format of", func(t *testing.T) {
		f, err := projectfile.FormatOf("a/b.YML")
		assert.NoError(t, err)
		assert.Equal(t, projectfile.FormatYAML, f)
		_, err = projectfile.FormatOf("notes.txt")
		assert.ErrorContains(t, err, "is not a .toml")
	})
}

func TestLoadErrors(t *testing.T) {
	write := func(t *testing.T, files map[string]string) string {
		dir := t.TempDir()
		for name, content := range files {
			require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte(content), 0o644))
		}
		return dir
	}

	for name, tc := range map[string]struct {
		files  map[string]string
		expect string
	}{
		"missing open editor": {
			files:  map[string]string{"project.toml": `open = ["nope"]`, "a.toml": `name = "a"`},
			expect: "open editor 'nope' doesn't exist",
		},
		"missing current editor": {
			files:  map[string]string{"project.toml": `current = "nope"`},
			expect: "current editor 'nope' doesn't exist",
		},
		"duplicate editor": {
			files:  map[string]string{"a.toml": `name = "same"`, "b.yaml": `name: same`},
			expect: "defined twice",
		},
		"malformed editor": {
			files:  map[string]string{"a.toml": `name = `},
			expect: "parsing",
		},
		"malformed manifest": {
			files:  map[string]string{"project.toml": `name = [`},
			expect: "parsing project.toml",
		},
		"missing listed editor": {
			files:  map[string]string{"project.toml": `editors = ["gone.toml"]`},
			expect: "gone.toml",
		},
	} {
		t.Run(name, func(t *testing.T) {
			_, err := projectfile.Load(write(t, tc.files))
			assert.ErrorContains(t, err, tc.expect)
		})
	}
}
