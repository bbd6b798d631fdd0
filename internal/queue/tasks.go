// Package queue holds the asynchronous harvest queue: task payloads, the
// enqueueing client and the worker-side handler, all built on asynq.
package queue

import (
	"encoding/json"
	"fmt"
)

// Task types
const (
	TypeHarvestChannel = "harvest:channel"
)

// HarvestChannelPayload is the payload for channel harvest tasks
type HarvestChannelPayload struct {
	ChannelID string                 `json:"channel_id"`
	Metadata  map[string]interface{} `json:"metadata"`
}

// NewHarvestChannelTask creates a new channel harvest task payload
func NewHarvestChannelTask(channelID string, metadata map[string]interface{}) (*HarvestChannelPayload, error) {
	if channelID == "" {
		return nil, fmt.Errorf("channel ID is required")
	}

	if metadata == nil {
		metadata = make(map[string]interface{})
	}

	return &HarvestChannelPayload{
		ChannelID: channelID,
		Metadata:  metadata,
	}, nil
}

// Marshal serializes the payload to JSON
func (p *HarvestChannelPayload) Marshal() ([]byte, error) {
	return json.Marshal(p)
}

// UnmarshalHarvestChannelPayload deserializes JSON to payload
func UnmarshalHarvestChannelPayload(data []byte) (*HarvestChannelPayload, error) {
	var payload HarvestChannelPayload
	if err := json.Unmarshal(data, &payload); err != nil {
		return nil, fmt.Errorf("failed to unmarshal payload: %w", err)
	}
	return &payload, nil
}
