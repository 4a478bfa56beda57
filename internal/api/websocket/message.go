package websocket

import "time"

type MessageType string

const (
	MessageTypeRunStarted    MessageType = "run_started"
	MessageTypeRunFinished   MessageType = "run_finished"
	MessageTypeRunFailed     MessageType = "run_failed"
	MessageTypeNodeStarted   MessageType = "node_started"
	MessageTypeNodeCompleted MessageType = "node_completed"
	MessageTypeLog           MessageType = "log"
)

// Message is one execution event pushed to connected canvases. Only the
// fields relevant to the event type are set.
type Message struct {
	Type            MessageType `json:"type"`
	RunID           string      `json:"runId,omitempty"`
	NodeID          string      `json:"nodeId,omitempty"`
	Response        string      `json:"response,omitempty"`
	OutputTargetIDs []string    `json:"outputTargetIds,omitempty"`
	Error           string      `json:"error,omitempty"`
	Text            string      `json:"text,omitempty"`
	Timestamp       time.Time   `json:"timestamp"`
}

func NewRunStarted(runID string) Message {
	return Message{Type: MessageTypeRunStarted, RunID: runID, Timestamp: time.Now()}
}

func NewRunFinished(runID string) Message {
	return Message{Type: MessageTypeRunFinished, RunID: runID, Timestamp: time.Now()}
}

func NewRunFailed(runID string, err error) Message {
	return Message{Type: MessageTypeRunFailed, RunID: runID, Error: err.Error(), Timestamp: time.Now()}
}

func NewNodeStarted(runID, nodeID string) Message {
	return Message{Type: MessageTypeNodeStarted, RunID: runID, NodeID: nodeID, Timestamp: time.Now()}
}

func NewNodeCompleted(runID, nodeID, response string, outputTargetIDs []string) Message {
	return Message{
		Type:            MessageTypeNodeCompleted,
		RunID:           runID,
		NodeID:          nodeID,
		Response:        response,
		OutputTargetIDs: outputTargetIDs,
		Timestamp:       time.Now(),
	}
}

func NewLog(runID, text string) Message {
	return Message{Type: MessageTypeLog, RunID: runID, Text: text, Timestamp: time.Now()}
}
