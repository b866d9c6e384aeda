package system

import (
	"testing"

	"github.com/milk9111/molten/ecs"
	"github.com/milk9111/molten/ecs/component"
)

func TestRoomTransitions(t *testing.T) {
	w := ecs.NewWorld()
	for _, r := range []component.Room{
		{Name: "intake", W: 640, H: 360},
		{Name: "crucible", X: 640, W: 640, H: 360},
	} {
		room := r
		_ = ecs.Add(w, w.CreateEntity(), component.RoomComponent.Kind(), &room)
	}
	camera := w.CreateEntity()
	_ = ecs.Add(w, camera, component.CameraComponent.Kind(), &component.Camera{})

	player := w.CreateEntity()
	_ = ecs.Add(w, player, component.PlayerTagComponent.Kind(), &component.PlayerTag{})
	tr := &component.Transform{X: 100, Y: 100}
	_ = ecs.Add(w, player, component.TransformComponent.Kind(), tr)

	s := NewRoomSystem()
	// an empty scheduler only clears the frame's events
	endFrame := ecs.NewScheduler()

	cases := []struct {
		name     string
		x        float64
		wantFrom string
		wantTo   string
		wantCamX float64
	}{
		{"spawn", 100, "", "intake", 0},
		{"same_room", 300, "", "", 0},
		{"cross", 700, "intake", "crucible", 640},
		{"edge_belongs_right", 640, "", "", 640},
		{"back", 639, "crucible", "intake", 0},
	}

	for _, c := range cases {
		tr.X = c.x
		s.Update(w)

		events := w.Events().Of(component.RoomTransitionEvent)
		if c.wantTo == "" {
			if len(events) != 0 {
				t.Fatalf("%s: expected no transition, got %v", c.name, events)
			}
		} else {
			if len(events) != 1 {
				t.Fatalf("%s: expected one transition, got %d", c.name, len(events))
			}
			rt := events[0].Data.(component.RoomTransition)
			if rt.From != c.wantFrom || rt.To.Name != c.wantTo {
				t.Fatalf("%s: got %q -> %q", c.name, rt.From, rt.To.Name)
			}
		}

		cam, _ := ecs.Get(w, camera, component.CameraComponent.Kind())
		if cam.X != c.wantCamX {
			t.Fatalf("%s: camera x=%v, want %v", c.name, cam.X, c.wantCamX)
		}
		endFrame.Update(w)
	}
}
