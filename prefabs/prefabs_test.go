package prefabs

import (
	"image/color"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"
)

func TestEmbeddedSpecsLoad(t *testing.T) {
	block, err := LoadMovingBlockSpec()
	require.NoError(t, err)
	assert.Equal(t, "moving_block", block.Name)
	assert.Positive(t, block.Distance)
	assert.Positive(t, block.ZoomSpeed)
	assert.Equal(t, "scripts/activate.tengo", block.Activation.Script)

	tn := block.Tuning(1.0 / 60.0)
	assert.Equal(t, block.Distance, tn.Distance)
	assert.InDelta(t, 1.0/60.0, tn.Step, 1e-12)

	lq, err := LoadLiquidSpec()
	require.NoError(t, err)
	assert.Equal(t, lq.ImpulseStrength, lq.Config().ImpulseStrength)

	player, err := LoadPlayerSpec()
	require.NoError(t, err)
	assert.Positive(t, player.MoveSpeed)

	script, err := LoadScript(block.Activation.Script)
	require.NoError(t, err)
	assert.Contains(t, string(script), "activate :=")
}

func TestLoadSpecMissingFile(t *testing.T) {
	_, err := LoadSpec[PlayerSpec]("nope.yaml")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "prefabs: load nope.yaml")
}

func TestYAMLColor(t *testing.T) {
	cases := []struct {
		name    string
		in      string
		want    color.RGBA
		wantErr bool
	}{
		{"hex", `"#ff8000"`, color.RGBA{R: 0xff, G: 0x80, A: 0xff}, false},
		{"hex_alpha", `"#ffffff80"`, color.RGBA{R: 0x80, G: 0x80, B: 0x80, A: 0x80}, false},
		{"named", `OrangeRed`, color.RGBA{R: 0xff, G: 0x45, A: 0xff}, false},
		{"short", `"#fff"`, color.RGBA{}, true},
		{"not_hex", `"#gg0000"`, color.RGBA{}, true},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			var out struct {
				Color *YAMLColor `yaml:"color"`
			}
			err := yaml.Unmarshal([]byte("color: "+c.in), &out)
			if c.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, c.want, out.Color.RGBA8(color.RGBA{}))
		})
	}

	var unset *YAMLColor
	fallback := color.RGBA{R: 1, G: 2, B: 3, A: 4}
	assert.Equal(t, fallback, unset.RGBA8(fallback))
}

func TestCleanScriptPath(t *testing.T) {
	cases := map[string]string{
		"activate.tengo":                 "scripts/activate.tengo",
		"scripts/activate.tengo":         "scripts/activate.tengo",
		"prefabs/activate.tengo":         "scripts/activate.tengo",
		"prefabs/scripts/activate.tengo": "scripts/activate.tengo",
	}
	for in, want := range cases {
		assert.Equal(t, want, cleanScriptPath(in), in)
	}
	assert.Equal(t, "", cleanScriptPath(""))
}

func TestDiskOverridesEmbedded(t *testing.T) {
	dir := t.TempDir()
	old := Dir
	Dir = dir
	t.Cleanup(func() { Dir = old })

	require.NoError(t, os.WriteFile(filepath.Join(dir, PlayerFile), []byte("name: disk\nmove_speed: 1\n"), 0o644))

	spec, err := LoadPlayerSpec()
	require.NoError(t, err)
	assert.Equal(t, "disk", spec.Name)

	_, ok := ModTime(PlayerFile)
	assert.True(t, ok)
}

func TestWatcherReportsSpecEdits(t *testing.T) {
	dir := t.TempDir()
	w, err := NewWatcher(dir)
	require.NoError(t, err)
	t.Cleanup(func() { _ = w.Close() })

	require.NoError(t, os.WriteFile(filepath.Join(dir, "notes.txt"), []byte("x"), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, MovingBlockFile), []byte("name: x\n"), 0o644))

	select {
	case name := <-w.Events:
		assert.Equal(t, MovingBlockFile, name)
	case <-time.After(5 * time.Second):
		t.Fatal("no watcher event")
	}
}

func TestWatchedName(t *testing.T) {
	name, ok := watchedName("/tmp/x/scripts/activate.tengo")
	require.True(t, ok)
	assert.Equal(t, "scripts/activate.tengo", name)

	_, ok = watchedName("/tmp/x/activate.lua")
	assert.False(t, ok)
}
