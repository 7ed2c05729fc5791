package jobs

import (
	"log"
	"time"

	"github.com/fourline-io/server/server"
)

// StartRoomJanitor starts a background sweep that closes rooms whose
// game has been finished for longer than idleTimeout while participants
// linger in them. Empty rooms are removed eagerly on disconnect; the
// janitor only reclaims finished rooms nobody restarted.
func StartRoomJanitor(registry *server.Registry, conn server.ConnectionManagerInterface, interval, idleTimeout time.Duration) {
	ticker := time.NewTicker(interval)
	go func() {
		for range ticker.C {
			closed := registry.SweepFinished(idleTimeout, conn)
			if closed > 0 {
				log.Printf("[CLEANUP] closed %d idle finished rooms", closed)
			}
		}
	}()

	log.Printf("[CLEANUP] room janitor started (every %s, idle timeout %s)", interval, idleTimeout)
}
