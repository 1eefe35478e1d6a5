package voice

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuild_LanguageFolders(t *testing.T) {
	root := t.TempDir()
	touch(t, root,
		"English/en_US-lessac-medium.onnx",
		"English/en_US-lessac-medium.onnx.json",
		"English/en_GB-alan-low.onnx",
		"Japanese/kokoro.onnx",
		"Empty/README.md",
		"notes.txt",
	)
	require.NoError(t, os.Mkdir(filepath.Join(root, "Nothing"), 0o755))

	c, err := Build(root, "")
	require.NoError(t, err)

	assert.Equal(t, []string{"English", "Japanese"}, c.Keys())
	assert.Equal(t, 3, c.VoiceCount())
	assert.False(t, c.Has("Empty"))
	assert.False(t, c.Has("Nothing"))
	assert.False(t, c.Has(DefaultLanguageKey))

	english, ok := c.Language("English")
	require.True(t, ok)
	assert.Equal(t, 2, english.VoiceCount)
	assert.Equal(t, "English", english.DisplayName)
	assert.Equal(t, filepath.Join(root, "English"), english.Path)

	voices := c.Voices("English")
	require.Len(t, voices, 2)
	assert.Equal(t, "en_GB-alan-low", voices[0].Name)
	assert.Equal(t, "en_US-lessac-medium", voices[1].Name)
	assert.Equal(t, "En Us Lessac Medium", voices[1].DisplayName)
	assert.Equal(t, "English", voices[1].Language)
	assert.True(t, filepath.IsAbs(voices[1].Path))
	assert.Equal(t, filepath.Join(root, "English", "en_US-lessac-medium.onnx"), voices[1].Path)
}

func TestBuild_FlatLayoutSynthesizesDefault(t *testing.T) {
	root := t.TempDir()
	touch(t, root, "model.onnx", "second.onnx", "model.onnx.json")

	c, err := Build(root, DefaultExtension)
	require.NoError(t, err)

	require.Equal(t, []string{DefaultLanguageKey}, c.Keys())

	lang, ok := c.Language(DefaultLanguageKey)
	require.True(t, ok)
	assert.Equal(t, DefaultLanguageKey, lang.DisplayName)
	assert.Equal(t, 2, lang.VoiceCount)
	assert.Equal(t, c.Root(), lang.Path)
}

func TestBuild_DefaultAppendedAfterFolders(t *testing.T) {
	root := t.TempDir()
	touch(t, root, "Twi/model.onnx", "loose.onnx")

	c, err := Build(root, "")
	require.NoError(t, err)

	assert.Equal(t, []string{"Twi", DefaultLanguageKey}, c.Keys())
	assert.Equal(t, "loose", c.Voices(DefaultLanguageKey)[0].Name)
}

func TestBuild_ExplicitDefaultFolderIsNotDuplicated(t *testing.T) {
	root := t.TempDir()
	touch(t, root, "Default/only.onnx", "a.onnx", "b.onnx")

	c, err := Build(root, "")
	require.NoError(t, err)

	assert.Equal(t, []string{DefaultLanguageKey}, c.Keys())

	lang, _ := c.Language(DefaultLanguageKey)
	assert.Equal(t, 1, lang.VoiceCount)
	assert.Equal(t, filepath.Join(root, "Default"), lang.Path)
}

func TestBuild_MissingRootIsEmpty(t *testing.T) {
	c, err := Build(filepath.Join(t.TempDir(), "does-not-exist"), "")
	require.NoError(t, err)

	assert.Equal(t, 0, c.Len())
	assert.Empty(t, c.Languages())
	assert.Empty(t, c.AllVoices())
}

func TestBuild_ExtensionIsCaseSensitive(t *testing.T) {
	root := t.TempDir()
	touch(t, root, "English/upper.ONNX", "English/.hidden.onnx")

	c, err := Build(root, "")
	require.NoError(t, err)

	assert.Equal(t, 0, c.Len())
}

func TestBuild_CustomExtension(t *testing.T) {
	root := t.TempDir()
	touch(t, root, "German/thorsten.pt", "German/ignored.onnx")

	c, err := Build(root, ".pt")
	require.NoError(t, err)

	voices := c.Voices("German")
	require.Len(t, voices, 1)
	assert.Equal(t, "thorsten", voices[0].Name)
}

func TestBuild_FolderNamesUseDisplayNames(t *testing.T) {
	root := t.TempDir()
	touch(t, root, "en-us/a.onnx", "my_custom_lang/b.onnx")

	c, err := Build(root, "")
	require.NoError(t, err)

	us, _ := c.Language("en-us")
	custom, _ := c.Language("my_custom_lang")
	assert.Equal(t, "English (US)", us.DisplayName)
	assert.Equal(t, "My Custom Lang", custom.DisplayName)
}

func TestBuild_EveryLanguageHasVoices(t *testing.T) {
	root := t.TempDir()
	touch(t, root,
		"A/one.onnx",
		"B/readme.txt",
		"C/two.onnx", "C/three.onnx",
		"D/sub/deep.onnx",
	)

	c, err := Build(root, "")
	require.NoError(t, err)

	for _, lang := range c.Languages() {
		assert.GreaterOrEqual(t, lang.VoiceCount, 1, lang.FolderName)
		assert.Len(t, c.Voices(lang.FolderName), lang.VoiceCount)
	}
	assert.Equal(t, []string{"A", "C"}, c.Keys())
}

func TestCatalog_VoicesReturnsCopy(t *testing.T) {
	root := t.TempDir()
	touch(t, root, "English/a.onnx")

	c, err := Build(root, "")
	require.NoError(t, err)

	voices := c.Voices("English")
	voices[0].Name = "mutated"

	assert.Equal(t, "a", c.Voices("English")[0].Name)
	assert.Nil(t, c.Voices("Klingon"))
}
