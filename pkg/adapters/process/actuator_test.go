package process

import (
	"context"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dkuanyshbaev/ioracle-core/pkg/domain"
)

func requireShell(t *testing.T) {
	t.Helper()
	if runtime.GOOS == "windows" {
		t.Skip("tool scripts need a POSIX shell")
	}
}

// dumpTool registers name as a script that writes its IORACLE_ARG_* variables to out.
func dumpTool(a *Actuator, name, out string) {
	a.Register(name, "sh", "-c", "env | grep '^IORACLE_ARG_' | sort > "+out)
}

func readLines(t *testing.T, path string) []string {
	t.Helper()
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	return strings.Split(strings.TrimSpace(string(data)), "\n")
}

func TestActuator_Apply(t *testing.T) {
	requireShell(t)
	dir := t.TempDir()

	tests := []struct {
		name   string
		tool   string
		effect domain.Effect
		want   []string
	}{
		{"pin on", ToolPinOn, domain.ActivatePin(domain.PinB), []string{"IORACLE_ARG_PIN=B"}},
		{"pin off", ToolPinOff, domain.ReleasePin(domain.PinE), []string{"IORACLE_ARG_PIN=E"}},
		{"sound", ToolSound, domain.PlaySound("thunder"), []string{"IORACLE_ARG_CLIP=thunder"}},
		{"fire", ToolFire, domain.TriggerFire(), []string{""}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			a := NewActuator()
			out := filepath.Join(dir, tt.tool)
			dumpTool(a, tt.tool, out)

			require.NoError(t, a.Apply(context.Background(), tt.effect))
			a.Wait()

			assert.Equal(t, tt.want, readLines(t, out))
		})
	}
}

func TestActuator_RenderLine(t *testing.T) {
	requireShell(t)
	out := filepath.Join(t.TempDir(), "render")
	a := NewActuator()
	dumpTool(a, ToolRender, out)

	err := a.Render(context.Background(), domain.RenderCommand{
		Kind:     domain.RenderLine,
		Position: 3,
		Line:     domain.Yang,
		Colour:   "rgb(51, 0, 180)",
	})
	require.NoError(t, err)
	a.Wait()

	assert.Equal(t, []string{
		"IORACLE_ARG_BLUE=180",
		"IORACLE_ARG_COLOUR=rgb(51, 0, 180)",
		"IORACLE_ARG_GREEN=0",
		"IORACLE_ARG_KIND=line",
		"IORACLE_ARG_LINE=1",
		"IORACLE_ARG_POSITION=3",
		"IORACLE_ARG_RED=51",
	}, readLines(t, out))
}

func TestActuator_RenderDisplay(t *testing.T) {
	requireShell(t)
	out := filepath.Join(t.TempDir(), "render")
	a := NewActuator()
	dumpTool(a, ToolRender, out)

	err := a.Render(context.Background(), domain.RenderCommand{
		Kind:    domain.RenderDisplay,
		Primary: "100101",
		Related: "001010",
	})
	require.NoError(t, err)
	a.Wait()

	assert.Equal(t, []string{
		"IORACLE_ARG_KIND=display",
		"IORACLE_ARG_PRIMARY=100101",
		"IORACLE_ARG_RELATED=001010",
	}, readLines(t, out))
}

func TestActuator_StaticEnv(t *testing.T) {
	requireShell(t)
	out := filepath.Join(t.TempDir(), "fire")
	a := NewActuator(WithRegistry(map[string]ToolConfig{
		ToolFire: {
			Name:        ToolFire,
			Command:     "sh",
			Args:        []string{"-c", "echo $FIRE_GPIO > " + out},
			Environment: map[string]string{"FIRE_GPIO": "14"},
		},
	}))

	require.NoError(t, a.Apply(context.Background(), domain.TriggerFire()))
	a.Wait()
	assert.Equal(t, []string{"14"}, readLines(t, out))
}

func TestActuator_Unregistered(t *testing.T) {
	a := NewActuator()
	err := a.Apply(context.Background(), domain.ActivatePin(domain.PinA))
	assert.ErrorIs(t, err, domain.ErrToolNotRegistered)

	err = a.Render(context.Background(), domain.RenderCommand{Kind: domain.RenderClear})
	assert.ErrorIs(t, err, domain.ErrToolNotRegistered)
}

func TestActuator_MissingCommand(t *testing.T) {
	a := NewActuator()
	a.Register(ToolFire, "/nonexistent/fire-script")
	assert.Error(t, a.Apply(context.Background(), domain.TriggerFire()))
}

func TestActuator_DoesNotWaitForTool(t *testing.T) {
	requireShell(t)
	a := NewActuator()
	a.Register(ToolSound, "sh", "-c", "sleep 1")

	start := time.Now()
	require.NoError(t, a.Apply(context.Background(), domain.PlaySound("mountain")))
	assert.Less(t, time.Since(start), 500*time.Millisecond)
	a.Wait()
}

func TestActuator_FailingToolIsAbsorbed(t *testing.T) {
	requireShell(t)
	a := NewActuator()
	a.Register(ToolFire, "sh", "-c", "exit 3")

	assert.NoError(t, a.Apply(context.Background(), domain.TriggerFire()))
	a.Wait()
}

func TestParseColour(t *testing.T) {
	tests := []struct {
		in      string
		r, g, b uint8
	}{
		{"rgb(51, 0, 180)", 51, 0, 180},
		{"rgb(108,73,211)", 108, 73, 211},
		{"rgb(300, 0, 0)", 255, 0, 0},
		{"rgb(x, 1, 2)", 255, 1, 2},
		{"rgb(1, 2)", 1, 2, 255},
		{"", 255, 255, 255},
		{"blue", 255, 255, 255},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			r, g, b := ParseColour(tt.in)
			assert.Equal(t, []uint8{tt.r, tt.g, tt.b}, []uint8{r, g, b})
		})
	}
}

func TestLoadTools(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "tools.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
tools:
  - name: pin_on
    command: /opt/ioracle/pin.sh
    args: ["on"]
    env:
      GPIO_CHIP: gpiochip0
  - name: render
    command: /opt/ioracle/leds.py
  - name: ""
    command: ignored
  - name: no_command
`), 0o644))

	tools, err := LoadTools(path)
	require.NoError(t, err)
	require.Len(t, tools, 2)
	assert.Equal(t, []string{"on"}, tools[ToolPinOn].Args)
	assert.Equal(t, "gpiochip0", tools[ToolPinOn].Environment["GPIO_CHIP"])
	assert.Equal(t, "/opt/ioracle/leds.py", tools[ToolRender].Command)

	missing, err := LoadTools(filepath.Join(dir, "absent.yaml"))
	require.NoError(t, err)
	assert.Empty(t, missing)

	bad := filepath.Join(dir, "bad.yaml")
	require.NoError(t, os.WriteFile(bad, []byte("tools: [\n"), 0o644))
	_, err = LoadTools(bad)
	assert.Error(t, err)
}

func TestLoadTools_JSON(t *testing.T) {
	path := filepath.Join(t.TempDir(), "tools.json")
	require.NoError(t, os.WriteFile(path, []byte(`{"tools":[{"name":"fire","command":"/bin/true"}]}`), 0o644))

	tools, err := LoadTools(path)
	require.NoError(t, err)
	assert.Equal(t, "/bin/true", tools[ToolFire].Command)
}
