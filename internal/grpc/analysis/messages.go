package analysis

import (
	"bytes"
	"encoding/json"
	"fmt"

	"google.golang.org/protobuf/encoding/protojson"
	"google.golang.org/protobuf/types/known/structpb"

	"github.com/mitchelldurbincs/AIWargame/internal/game/core"
	"github.com/mitchelldurbincs/AIWargame/internal/search/stats"
	"github.com/mitchelldurbincs/AIWargame/internal/trace"
)

// SearchSettings overrides the server's default search configuration. Zero fields keep
// the default.
type SearchSettings struct {
	Mode      string `json:"mode,omitempty"`
	MaxDepth  int    `json:"max_depth,omitempty"`
	MaxTimeMs int64  `json:"max_time_ms,omitempty"`
	Heuristic string `json:"heuristic,omitempty"`
}

type SuggestMoveRequest struct {
	Snapshot trace.Snapshot   `json:"snapshot"`
	Tables   *core.UnitTables `json:"tables,omitempty"`
	Search   SearchSettings   `json:"search"`
}

type SuggestMoveResponse struct {
	Action    core.Action      `json:"action"`
	Score     int              `json:"score"`
	Algorithm string           `json:"algorithm"`
	Heuristic string           `json:"heuristic"`
	MaxDepth  int              `json:"max_depth"`
	Stats     stats.Statistics `json:"stats"`
}

type LegalActionsRequest struct {
	Snapshot trace.Snapshot   `json:"snapshot"`
	Tables   *core.UnitTables `json:"tables,omitempty"`
}

type LegalActionsResponse struct {
	Player  string        `json:"player"`
	Actions []core.Action `json:"actions"`
	Outcome string        `json:"outcome"`
}

// toStruct converts a message to a Struct by way of its JSON form.
func toStruct(msg interface{}) (*structpb.Struct, error) {
	data, err := json.Marshal(msg)
	if err != nil {
		return nil, fmt.Errorf("failed to encode message: %w", err)
	}
	s := &structpb.Struct{}
	if err := protojson.Unmarshal(data, s); err != nil {
		return nil, fmt.Errorf("failed to convert message: %w", err)
	}
	return s, nil
}

// fromStruct decodes s into msg, rejecting unknown fields.
func fromStruct(s *structpb.Struct, msg interface{}) error {
	data, err := protojson.Marshal(s)
	if err != nil {
		return fmt.Errorf("failed to convert message: %w", err)
	}
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.DisallowUnknownFields()
	if err := dec.Decode(msg); err != nil {
		return fmt.Errorf("failed to decode message: %w", err)
	}
	return nil
}
