// Package process cleans up browser process trees that outlive a graceful
// shutdown.
package process
