package mq

import (
	"context"
	"encoding/json"
	"log"

	"tavolo/models"
	"tavolo/rdx"
)

const channel = "entity-events"

// Emit publishes an entity-change event to the Redis channel. Failures are
// logged and dropped; change events are advisory, never load-bearing.
func Emit(ctx context.Context, eventName string, content models.Index) {
	data, err := json.Marshal(content)
	if err != nil {
		log.Printf("[Emit] Failed to marshal event content: %v", err)
		return
	}

	if err := rdx.Conn.Publish(context.Background(), channel, data).Err(); err != nil {
		log.Printf("[Emit] Failed to publish %s: %v", eventName, err)
	}
}
