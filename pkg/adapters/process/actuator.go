// Package process drives the installation hardware through allow-listed
// external scripts. Each effect or render command starts one registered tool;
// arguments are passed as IORACLE_ARG_* environment variables, never as flags.
package process

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"os/exec"
	"sort"
	"strings"
	"sync"

	"github.com/dkuanyshbaev/ioracle-core/internal/logging"
	"github.com/dkuanyshbaev/ioracle-core/pkg/domain"
)

// EnvPrefix prefixes every argument variable passed to a tool.
const EnvPrefix = "IORACLE_ARG_"

// RegisteredTool is an allowed command.
type RegisteredTool struct {
	Command string
	Args    []string
	Env     map[string]string
}

// Actuator implements ports.Actuator by starting registered tools.
// Tools run in the background; Apply and Render return once the process has started.
type Actuator struct {
	registry map[string]RegisteredTool
	baseDir  string
	logger   *slog.Logger

	running sync.WaitGroup
}

// Option configures the Actuator.
type Option func(*Actuator)

// WithRegistry populates the allow-list from a loaded tools file.
func WithRegistry(tools map[string]ToolConfig) Option {
	return func(a *Actuator) {
		for name, tool := range tools {
			a.registry[name] = RegisteredTool{
				Command: tool.Command,
				Args:    tool.Args,
				Env:     tool.Environment,
			}
		}
	}
}

// WithBaseDir sets the working directory for started tools.
func WithBaseDir(dir string) Option {
	return func(a *Actuator) {
		a.baseDir = dir
	}
}

// WithLogger configures a logger for the Actuator.
func WithLogger(logger *slog.Logger) Option {
	return func(a *Actuator) {
		a.logger = logger
	}
}

// NewActuator creates an Actuator with an empty allow-list.
func NewActuator(opts ...Option) *Actuator {
	a := &Actuator{
		registry: make(map[string]RegisteredTool),
		logger:   logging.NewNop(),
	}
	for _, opt := range opts {
		opt(a)
	}
	return a
}

// Register adds a trusted command to the allow-list.
func (a *Actuator) Register(name string, command string, args ...string) {
	a.registry[name] = RegisteredTool{
		Command: command,
		Args:    args,
	}
}

// Apply starts the tool bound to the effect.
func (a *Actuator) Apply(ctx context.Context, effect domain.Effect) error {
	name, args, err := effectCall(effect)
	if err != nil {
		return err
	}
	return a.start(ctx, name, args)
}

// Render starts the render tool for the command.
func (a *Actuator) Render(ctx context.Context, cmd domain.RenderCommand) error {
	name, args, err := renderCall(cmd)
	if err != nil {
		return err
	}
	return a.start(ctx, name, args)
}

// Wait blocks until every started tool has exited.
func (a *Actuator) Wait() {
	a.running.Wait()
}

func (a *Actuator) start(ctx context.Context, name string, args map[string]any) error {
	tool, ok := a.registry[name]
	if !ok {
		return fmt.Errorf("%w: %s", domain.ErrToolNotRegistered, name)
	}

	// Tools outlive the call that started them.
	cmd := exec.Command(tool.Command, tool.Args...)
	cmd.Dir = a.baseDir
	cmd.Env = append(cmd.Environ(), toolEnv(tool.Env, args)...)

	var stderr bytes.Buffer
	cmd.Stderr = &stderr

	if err := cmd.Start(); err != nil {
		return fmt.Errorf("failed to start tool %s: %w", name, err)
	}

	readingID := domain.ReadingIDFrom(ctx)
	a.logger.Debug("Tool started", "tool", name, "pid", cmd.Process.Pid, "reading_id", readingID)

	a.running.Add(1)
	go func() {
		defer a.running.Done()
		if err := cmd.Wait(); err != nil {
			a.logger.Warn("Tool failed",
				"tool", name,
				"reading_id", readingID,
				"stderr", strings.TrimSpace(stderr.String()),
				"err", err,
			)
		}
	}()
	return nil
}

// toolEnv renders the static tool environment followed by the call arguments.
func toolEnv(static map[string]string, args map[string]any) []string {
	env := make([]string, 0, len(static)+len(args))
	for k, v := range static {
		env = append(env, k+"="+v)
	}

	keys := make([]string, 0, len(args))
	for k := range args {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	for _, k := range keys {
		env = append(env, EnvPrefix+strings.ToUpper(k)+"="+argValue(args[k]))
	}
	return env
}

func argValue(v any) string {
	switch v := v.(type) {
	case nil:
		return ""
	case string:
		return v
	case fmt.Stringer:
		return v.String()
	case int, int64, uint8, float64, bool:
		return fmt.Sprintf("%v", v)
	default:
		if data, err := json.Marshal(v); err == nil {
			return string(data)
		}
		return fmt.Sprintf("%v", v)
	}
}
