package advanced

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const yamlOptions = `
step: 20
perpendicular: false
excludeEnds: [source]
maximumLoops: 2000
paddingBox: {x: -5, y: -5, width: 10, height: 10}
penalties: [0, 1, 2]
`

const tomlOptions = `
step = 20
excludeTypes = ["note"]
startDirections = ["left", "right"]
elementPadding = 8

[[directions]]
offsetX = 20
offsetY = 0
cost = 20
`

func TestDecodeOptions(t *testing.T) {
	t.Run("yaml", func(t *testing.T) {
		opt, err := DecodeOptions(strings.NewReader(yamlOptions), FormatYAML)
		require.NoError(t, err)
		assert.Equal(t, 20.0, opt.Step)
		require.NotNil(t, opt.Perpendicular)
		assert.False(t, *opt.Perpendicular)
		assert.Equal(t, []string{EndSource}, opt.ExcludeEnds)
		assert.Equal(t, 2000, opt.MaximumLoops)
		assert.Equal(t, &Rect{X: -5, Y: -5, Width: 10, Height: 10}, opt.PaddingBox)
		assert.Equal(t, []float64{0, 1, 2}, opt.Penalties)
	})

	t.Run("toml", func(t *testing.T) {
		opt, err := DecodeOptions(strings.NewReader(tomlOptions), FormatTOML)
		require.NoError(t, err)
		assert.Equal(t, 20.0, opt.Step)
		assert.Equal(t, []string{"note"}, opt.ExcludeTypes)
		assert.Equal(t, []string{"left", "right"}, opt.StartDirections)
		assert.Equal(t, 8.0, opt.ElementPadding)
		assert.Equal(t, []Direction{{OffsetX: 20, Cost: 20}}, opt.Directions)
	})

	t.Run("empty document", func(t *testing.T) {
		opt, err := DecodeOptions(strings.NewReader(""), FormatYAML)
		require.NoError(t, err)
		assert.Equal(t, &Options{}, opt)
	})

	t.Run("unknown key", func(t *testing.T) {
		_, err := DecodeOptions(strings.NewReader("stepp: 20\n"), FormatYAML)
		assert.ErrorContains(t, err, "decoding yaml")

		_, err = DecodeOptions(strings.NewReader("stepp = 20\n"), FormatTOML)
		assert.ErrorContains(t, err, "decoding toml")
	})

	t.Run("unknown format", func(t *testing.T) {
		_, err := DecodeOptions(strings.NewReader(""), "json")
		assert.EqualError(t, err, `unknown options format "json"`)
	})
}

func TestLoadOptions(t *testing.T) {
	dir := t.TempDir()

	yamlPath := filepath.Join(dir, "router.yml")
	require.NoError(t, os.WriteFile(yamlPath, []byte(yamlOptions), 0o644))
	opt, err := LoadOptions(yamlPath)
	require.NoError(t, err)
	assert.Equal(t, 20.0, opt.Step)

	tomlPath := filepath.Join(dir, "router.TOML")
	require.NoError(t, os.WriteFile(tomlPath, []byte(tomlOptions), 0o644))
	opt, err = LoadOptions(tomlPath)
	require.NoError(t, err)
	assert.Equal(t, 8.0, opt.ElementPadding)

	_, err = LoadOptions(filepath.Join(dir, "router.json"))
	assert.ErrorContains(t, err, "unsupported options file")

	_, err = LoadOptions(filepath.Join(dir, "missing.yaml"))
	assert.ErrorContains(t, err, "reading options")

	badPath := filepath.Join(dir, "bad.yaml")
	require.NoError(t, os.WriteFile(badPath, []byte("step: [1, 2]\n"), 0o644))
	_, err = LoadOptions(badPath)
	assert.ErrorContains(t, err, "options file "+badPath)
}

func TestLoadedOptionsRoute(t *testing.T) {
	opt, err := DecodeOptions(strings.NewReader(yamlOptions), FormatYAML)
	require.NoError(t, err)

	scene := loadScene(t, "obstacle")
	route := routeScene(t, scene, Manhattan, opt)
	assert.False(t, route.Perpendicular)
	assert.Zero(t, route.Fallbacks)
}
