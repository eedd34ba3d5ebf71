package cli

import (
	"errors"
	"fmt"
	"log/slog"

	"github.com/dkuanyshbaev/ioracle-core/internal/config"
	"github.com/dkuanyshbaev/ioracle-core/pkg/adapters/file"
	"github.com/dkuanyshbaev/ioracle-core/pkg/adapters/memory"
	"github.com/dkuanyshbaev/ioracle-core/pkg/adapters/process"
	"github.com/dkuanyshbaev/ioracle-core/pkg/adapters/redis"
	"github.com/dkuanyshbaev/ioracle-core/pkg/adapters/serial"
	"github.com/dkuanyshbaev/ioracle-core/pkg/control"
	"github.com/dkuanyshbaev/ioracle-core/pkg/domain"
	"github.com/dkuanyshbaev/ioracle-core/pkg/observability"
	"github.com/dkuanyshbaev/ioracle-core/pkg/ports"
	"github.com/dkuanyshbaev/ioracle-core/pkg/reaction"
	"github.com/dkuanyshbaev/ioracle-core/pkg/session"
	"github.com/dkuanyshbaev/ioracle-core/pkg/symbol"
	"github.com/dkuanyshbaev/ioracle-core/pkg/throttle"
)

// lockPrefix namespaces throttle locks in Redis.
const lockPrefix = "ioracle:lock:"

// Installation is a fully wired controller and the resources it owns.
type Installation struct {
	Controller *session.Controller
	Gate       *control.Listener
	Metrics    *observability.Metrics
	Status     *observability.Status

	closers []func() error
	waiters []func()
}

// Close waits for background tools and releases the gate and stores.
func (in *Installation) Close() error {
	for _, wait := range in.waiters {
		wait()
	}
	var errs []error
	for i := len(in.closers) - 1; i >= 0; i-- {
		if err := in.closers[i](); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

// Build wires the installation described by cfg. Failing to bind the gate is fatal.
func Build(cfg config.Config, logger *slog.Logger) (*Installation, error) {
	in := &Installation{
		Metrics: observability.NewMetrics(),
		Status:  observability.NewStatus(),
	}
	hooks := in.Metrics.Hooks().Merge(in.Status.Hooks()).Merge(createDebugHooks(logger))

	counter := buildThrottle(cfg, logger, hooks, in)

	actuator, err := buildActuator(cfg, logger, in)
	if err != nil {
		in.Close()
		return nil, err
	}

	builder := symbol.NewBuilder(
		buildSampler(cfg, logger),
		actuator,
		reaction.NewDispatcher(counter, reaction.WithLogger(logger)),
		symbol.WithParams(cfg.ClassifierParams()),
		symbol.WithTiming(cfg.SymbolTiming()),
		symbol.WithColour(cfg.Actuator.Colour),
		symbol.WithLogger(logger),
		symbol.WithLifecycleHooks(hooks),
	)

	gate, err := control.Listen(cfg.Control.Gate,
		control.WithPollInterval(cfg.Control.PollInterval),
		control.WithReadTimeout(cfg.Control.ReadTimeout),
		control.WithListenerLogger(logger),
	)
	if err != nil {
		in.Close()
		return nil, err
	}
	in.Gate = gate
	in.closers = append(in.closers, gate.Close)

	publisher := control.NewPublisher(cfg.Control.Out,
		control.WithWriteTimeout(cfg.Control.WriteTimeout),
		control.WithPublisherLogger(logger),
	)

	in.Controller = session.NewController(gate, builder, publisher, actuator,
		session.WithPresentDwell(cfg.Timing.PresentDwell),
		session.WithLogger(logger),
		session.WithLifecycleHooks(hooks),
	)
	return in, nil
}

func buildThrottle(cfg config.Config, logger *slog.Logger, hooks domain.LifecycleHooks, in *Installation) *throttle.Throttle {
	store, locker := buildStore(cfg, in)

	opts := []throttle.Option{
		throttle.WithLimit(cfg.Throttle.Limit),
		throttle.WithLogger(logger),
		throttle.WithLifecycleHooks(hooks),
	}
	if locker != nil {
		opts = append(opts, throttle.WithLocker(locker, "usage", cfg.Throttle.LockTTL))
	}
	return throttle.New(store, opts...)
}

func buildStore(cfg config.Config, in *Installation) (ports.CounterStore, ports.Locker) {
	switch cfg.Throttle.Store {
	case config.StoreMemory:
		return memory.NewCounterStore(), nil
	case config.StoreRedis:
		r := cfg.Throttle.Redis
		store := redis.New(r.Addr, r.Password, r.DB, redis.WithKey(r.Key))
		in.closers = append(in.closers, store.Close)
		if cfg.Throttle.Lock {
			return store, redis.NewLocker(store.Client(), lockPrefix)
		}
		return store, nil
	default:
		return file.New(cfg.Throttle.Path), nil
	}
}

func buildSampler(cfg config.Config, logger *slog.Logger) ports.Sampler {
	if cfg.Sensor.Driver == config.DriverMemory {
		return memory.NewSampler()
	}
	return serial.New(cfg.Sensor.Device,
		serial.WithTag(cfg.Sensor.Tag),
		serial.WithLogger(logger),
	)
}

func buildActuator(cfg config.Config, logger *slog.Logger, in *Installation) (ports.Actuator, error) {
	if cfg.Actuator.Driver == config.DriverMemory {
		return memory.NewActuator(), nil
	}

	tools, err := process.LoadTools(cfg.Actuator.Tools)
	if err != nil {
		return nil, fmt.Errorf("failed to load tools: %w", err)
	}
	if len(tools) == 0 {
		logger.Warn("No actuator tools registered", "path", cfg.Actuator.Tools)
	}

	actuator := process.NewActuator(
		process.WithRegistry(tools),
		process.WithLogger(logger),
	)
	in.waiters = append(in.waiters, actuator.Wait)
	return actuator, nil
}
