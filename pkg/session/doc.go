/*
Package session runs the installation's reading cycle.

A Controller owns the single in-flight domain.Session and drives it through
Idle, Acquire and Present. While Idle it polls the command gate and renders the
resting scene; a "read" command starts an acquisition that always runs to
completion, after which the result is displayed, published and held for the
present dwell before the cycle returns to Idle.

Shutdown is only honoured in Idle: a cancelled context never interrupts a reading.
*/
package session
