/*
Package ioracle is the control core of an interactive I Ching installation.

A visitor's request arrives on a Unix socket gate. The installation then samples
a breath/pressure sensor six times, classifies every window into a Yin or Yang
line, fires the pins, sounds and fire effects bound to each completed trigram,
derives the related hexagram from a second, faster pass, and publishes
"<primary>|<related>" to the waiting collaborator.

# Architecture

The core is hexagonal. Pure types live in pkg/domain, the hardware and storage
boundaries in pkg/ports, and the concrete drivers in pkg/adapters:

  - pkg/classifier: samples to line.
  - pkg/symbol: six lines plus the related pass to a hexagram pair.
  - pkg/reaction: trigram to effects, with pump usage accounting.
  - pkg/throttle: the persistent pump usage counter.
  - pkg/session: the Idle, Acquire, Present cycle.
  - pkg/control: the command gate and the result endpoint.
  - pkg/observability: Prometheus metrics and a status endpoint.

# Usage

The cmd/ioracle binary wires everything from a YAML file:

	ioracle run --config /etc/ioracle/ioracle.yaml
	ioracle trigger --wait 90s

Library users build the pieces directly:

	dispatcher := reaction.NewDispatcher(throttle.New(file.New("")))
	builder := symbol.NewBuilder(serial.New(serial.DefaultDevice), actuator, dispatcher)

	gate, err := control.Listen(control.DefaultGatePath)
	if err != nil {
		log.Fatal(err)
	}
	defer gate.Close()

	ctrl := session.NewController(gate, builder, control.NewPublisher(control.DefaultOutPath), actuator)
	ctrl.Run(ctx)
*/
package ioracle
