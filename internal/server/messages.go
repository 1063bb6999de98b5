package server

import (
	"math"
	"strconv"

	"github.com/Faultbox/terrain-constructor/internal/operation"
	"github.com/Faultbox/terrain-constructor/internal/pipeline"
)

// Request types.
const (
	TypeBuild     = "build"
	TypeSeed      = "seed"
	TypeRetrieve  = "retrieve"
	TypeResetSeed = "reset_seed"
	TypeAdd       = "add"
	TypeRemove    = "remove"
	TypeMoveUp    = "move_up"
	TypeMoveDown  = "move_down"
	TypeSet       = "set"
	TypeList      = "list"
)

// Request is a client message. Only the fields its type needs are read.
type Request struct {
	Type      string          `json:"type"`
	UpTo      *int            `json:"upTo,omitempty"`
	Seed      *int64          `json:"seed,omitempty"`
	Index     int             `json:"index"`
	Operation *operation.Spec `json:"operation,omitempty"`
	Wireframe bool            `json:"wireframe,omitempty"`
}

// MeshMessage carries a finished mesh. Positions and normals are packed
// xyz triples; non-finite components are sent as null.
type MeshMessage struct {
	Type        string    `json:"type"`
	Seed        int64     `json:"seed"`
	Positions   floats    `json:"positions"`
	Normals     floats    `json:"normals"`
	Indices     []uint32  `json:"indices"`
	Wireframe   []uint32  `json:"wireframe,omitempty"`
	StageTimes  []float64 `json:"stageTimes"`
	NormalsTime float64   `json:"normalsTime"`
}

// StageInfo describes one stage of the session.
type StageInfo struct {
	Caption string         `json:"caption"`
	Op      operation.Spec `json:"op"`
	Elapsed float64        `json:"elapsed"`
}

// StagesMessage lists the session's stages and seed state.
type StagesMessage struct {
	Type     string      `json:"type"`
	Stages   []StageInfo `json:"stages"`
	Seed     int64       `json:"seed"`
	LastSeed int64       `json:"lastSeed"`
}

// ErrorMessage reports a rejected request.
type ErrorMessage struct {
	Type  string `json:"type"`
	Error string `json:"error"`
}

// floats is a float32 array whose non-finite entries marshal as null,
// which encoding/json otherwise refuses.
type floats []float32

func (f floats) MarshalJSON() ([]byte, error) {
	if f == nil {
		return []byte("null"), nil
	}
	buf := make([]byte, 0, 2+len(f)*8)
	buf = append(buf, '[')
	for i, v := range f {
		if i > 0 {
			buf = append(buf, ',')
		}
		if math.IsNaN(float64(v)) || math.IsInf(float64(v), 0) {
			buf = append(buf, "null"...)
			continue
		}
		buf = strconv.AppendFloat(buf, float64(v), 'g', -1, 32)
	}
	return append(buf, ']'), nil
}

func meshMessage(s *pipeline.Session, wireframe bool) MeshMessage {
	m := s.Mesh()
	msg := MeshMessage{
		Type:        "mesh",
		Seed:        s.LastSeed(),
		Positions:   make(floats, 0, 3*len(m.Vertices)),
		Normals:     make(floats, 0, 3*len(m.Vertices)),
		Indices:     m.Indices,
		NormalsTime: s.NormalsTime().Seconds(),
	}
	for _, v := range m.Vertices {
		msg.Positions = append(msg.Positions, v.Pos[0], v.Pos[1], v.Pos[2])
		msg.Normals = append(msg.Normals, v.Normal[0], v.Normal[1], v.Normal[2])
	}
	if wireframe {
		msg.Wireframe = m.Wireframe()
	}
	for _, st := range s.Stages() {
		msg.StageTimes = append(msg.StageTimes, st.Elapsed.Seconds())
	}
	return msg
}

func stagesMessage(s *pipeline.Session) StagesMessage {
	msg := StagesMessage{
		Type:     "stages",
		Stages:   []StageInfo{},
		Seed:     s.Seed(),
		LastSeed: s.LastSeed(),
	}
	for _, st := range s.Stages() {
		msg.Stages = append(msg.Stages, StageInfo{
			Caption: st.Op.Kind().String(),
			Op:      operation.SpecOf(st.Op),
			Elapsed: st.Elapsed.Seconds(),
		})
	}
	return msg
}
