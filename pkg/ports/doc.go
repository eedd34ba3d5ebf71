/*
Package ports defines the driven ports (interfaces) of the ioracle core.

These interfaces decouple the reading cycle from the hardware and storage it
runs on, so the session logic can be exercised with in-memory adapters.

# Key Interfaces

  - Sampler: returns the sensor readings gathered over one window.
  - Actuator: performs Effects and LED render commands.
  - CounterStore: persists the pump usage counter.
  - Locker: serializes counter updates across process instances.
*/
package ports
