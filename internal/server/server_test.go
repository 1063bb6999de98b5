package server

import (
	"encoding/json"
	"math"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gorilla/websocket"

	"github.com/Faultbox/terrain-constructor/internal/operation"
	"github.com/Faultbox/terrain-constructor/internal/pipeline"
)

func dial(t *testing.T, srv *Server) *websocket.Conn {
	t.Helper()
	ts := httptest.NewServer(srv.Handler())
	t.Cleanup(ts.Close)

	url := "ws" + strings.TrimPrefix(ts.URL, "http") + "/ws"
	conn, _, err := websocket.DefaultDialer.Dial(url, nil)
	if err != nil {
		t.Fatalf("dial: %v", err)
	}
	t.Cleanup(func() { conn.Close() })
	return conn
}

// roundTrip sends req and decodes the reply into a generic map plus out.
func roundTrip(t *testing.T, conn *websocket.Conn, req any, out any) string {
	t.Helper()
	if err := conn.WriteJSON(req); err != nil {
		t.Fatalf("write: %v", err)
	}
	_, data, err := conn.ReadMessage()
	if err != nil {
		t.Fatalf("read: %v", err)
	}
	var head struct {
		Type string `json:"type"`
	}
	if err := json.Unmarshal(data, &head); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if out != nil {
		if err := json.Unmarshal(data, out); err != nil {
			t.Fatalf("decode: %v", err)
		}
	}
	return head.Type
}

func TestWebSocketSession(t *testing.T) {
	srv := New(pipeline.NewSession(operation.AddTriangle{Size: 5}))
	conn := dial(t, srv)

	var hello StagesMessage
	if err := conn.ReadJSON(&hello); err != nil {
		t.Fatalf("read hello: %v", err)
	}
	if hello.Type != "stages" || len(hello.Stages) != 1 || hello.Stages[0].Caption != "Add Triangle" {
		t.Fatalf("hello = %+v", hello)
	}

	var stages StagesMessage
	typ := roundTrip(t, conn, map[string]any{
		"type":      "add",
		"operation": map[string]any{"op": "subdivide", "iterations": 2},
	}, &stages)
	if typ != "stages" || len(stages.Stages) != 2 {
		t.Fatalf("add reply %s: %+v", typ, stages)
	}

	roundTrip(t, conn, map[string]any{"type": "seed", "seed": 17}, &stages)
	if stages.Seed != 17 {
		t.Errorf("seed = %d, want 17", stages.Seed)
	}

	var m MeshMessage
	typ = roundTrip(t, conn, map[string]any{"type": "build", "wireframe": true}, &m)
	if typ != "mesh" {
		t.Fatalf("build reply type = %s", typ)
	}
	// 1 triangle subdivided twice: 16 triangles over 15 vertices.
	if len(m.Indices) != 48 || len(m.Positions) != 45 || len(m.Normals) != 45 {
		t.Errorf("mesh sizes: %d indices, %d positions, %d normals", len(m.Indices), len(m.Positions), len(m.Normals))
	}
	if m.Seed != 17 {
		t.Errorf("mesh seed = %d, want 17", m.Seed)
	}
	if len(m.Wireframe) == 0 || len(m.StageTimes) != 2 {
		t.Errorf("wireframe %d, stage times %d", len(m.Wireframe), len(m.StageTimes))
	}

	zero := 0
	roundTrip(t, conn, Request{Type: TypeBuild, UpTo: &zero}, &m)
	if len(m.Indices) != 3 {
		t.Errorf("partial build indices = %d, want 3", len(m.Indices))
	}
	if m.StageTimes[1] != 0 {
		t.Errorf("stage after prefix time = %v, want 0", m.StageTimes[1])
	}
}

func TestWebSocketErrors(t *testing.T) {
	srv := New(pipeline.NewSession())
	conn := dial(t, srv)

	var hello StagesMessage
	if err := conn.ReadJSON(&hello); err != nil {
		t.Fatal(err)
	}

	tests := []struct {
		name string
		req  any
	}{
		{"empty build", map[string]any{"type": "build"}},
		{"unknown op", map[string]any{"type": "add", "operation": map[string]any{"op": "extrude"}}},
		{"retired op", map[string]any{"type": "add", "operation": map[string]any{"op": "merge_cleanup"}}},
		{"bad parameter", map[string]any{"type": "add", "operation": map[string]any{"op": "smooth", "amount": 2}}},
		{"remove out of range", map[string]any{"type": "remove", "index": 3}},
		{"seed missing", map[string]any{"type": "seed"}},
		{"unknown type", map[string]any{"type": "explode"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var e ErrorMessage
			if typ := roundTrip(t, conn, tt.req, &e); typ != "error" || e.Error == "" {
				t.Errorf("reply = %s %+v, want error", typ, e)
			}
		})
	}

	if err := conn.WriteMessage(websocket.TextMessage, []byte("{not json")); err != nil {
		t.Fatal(err)
	}
	var e ErrorMessage
	if err := conn.ReadJSON(&e); err != nil || e.Type != "error" {
		t.Errorf("malformed request reply = %+v, %v", e, err)
	}
}

func TestHandleEditing(t *testing.T) {
	srv := New(pipeline.NewSession(
		operation.AddTriangle{Size: 1},
		operation.Smooth{Amount: 0.5, Iterations: 1},
	))

	resp := srv.Handle(Request{Type: TypeMoveDown, Index: 0})
	msg, ok := resp.(StagesMessage)
	if !ok {
		t.Fatalf("reply = %T", resp)
	}
	if msg.Stages[0].Op.Op != "smooth" {
		t.Errorf("first stage = %s, want smooth", msg.Stages[0].Op.Op)
	}

	size := float32(3)
	resp = srv.Handle(Request{Type: TypeSet, Index: 1, Operation: &operation.Spec{Op: "add_tri_square", Size: &size}})
	msg = resp.(StagesMessage)
	if msg.Stages[1].Caption != "Add Triangle Square" || *msg.Stages[1].Op.Size != 3 {
		t.Errorf("stage 1 = %+v", msg.Stages[1])
	}

	srv.Handle(Request{Type: TypeRetrieve})
	if msg = srv.Handle(Request{Type: TypeResetSeed}).(StagesMessage); msg.Seed != pipeline.FreshSeed {
		t.Errorf("seed = %d after reset", msg.Seed)
	}
}

func TestFloatsMarshalNonFinite(t *testing.T) {
	data, err := json.Marshal(floats{1.5, float32(math.NaN()), float32(math.Inf(-1)), 0})
	if err != nil {
		t.Fatal(err)
	}
	if got, want := string(data), "[1.5,null,null,0]"; got != want {
		t.Errorf("got %s, want %s", got, want)
	}
}
