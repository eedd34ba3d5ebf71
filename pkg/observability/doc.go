/*
Package observability exposes the installation's lifecycle events.

Metrics and Status both provide domain.LifecycleHooks; merge them and hand the
result to the controller, builder and throttle. NewHandler serves the
Prometheus registry and a JSON status snapshot over HTTP. Nothing here touches
the running session: observers only see events.
*/
package observability
