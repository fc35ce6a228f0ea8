/*
Package observability turns playback lifecycle hooks into Prometheus metrics and
structured log lines.

Both producers return domain.LifecycleHooks, so they can be merged with
domain.Combine and handed to reel.WithLifecycleHooks.
*/
package observability
