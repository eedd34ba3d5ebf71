/*
Package domain contains the core domain models of the ioracle installation.

It defines the session phase machine, the line/trigram/hexagram values produced
by a reading, and the Effect and RenderCommand values the core asks the host
hardware to perform. This package is kept pure and free of I/O, following the
ports/adapters split used across the module.

# Key Entities

  - Session: phase tag plus the primary and related hexagrams of the current cycle.
  - Line: one classified window, Yin ('0') or Yang ('1').
  - Trigram / Hexagram: three and six Lines in acquisition order.
  - Effect: a physical reaction (pin, sound, fire) requested from the Actuator.
  - RenderCommand: a LED scene or line requested from the Actuator.
*/
package domain
