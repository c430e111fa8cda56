package gesture

import (
	"strings"
	"testing"
)

func TestLoadScript(t *testing.T) {
	data := []byte(`{
		"steps": [
			{"action": "down", "device": "mouse", "id": 0, "x": 100, "y": 200},
			{"action": "wait", "frames": 3},
			{"action": "pinch", "x": 50, "y": 50, "fromDist": 40, "toDist": 80, "rotation": 15, "frames": 6},
			{"action": "drag", "fromX": 1, "fromY": 2, "toX": 3, "toY": 4, "frames": 5}
		]
	}`)

	runner, err := LoadScript(data)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(runner.steps) != 4 {
		t.Fatalf("expected 4 steps, got %d", len(runner.steps))
	}
	if s := runner.steps[0]; s.Action != "down" || s.device != DeviceMouse || s.X != 100 || s.Y != 200 {
		t.Errorf("step 0 mismatch: %+v", s)
	}
	if s := runner.steps[1]; s.Action != "wait" || s.Frames != 3 {
		t.Errorf("step 1 mismatch: %+v", s)
	}
	if s := runner.steps[2]; s.FromDist != 40 || s.ToDist != 80 || s.Rotation != 15 {
		t.Errorf("step 2 mismatch: %+v", s)
	}
	if s := runner.steps[3]; s.device != DeviceTouch {
		t.Errorf("step 3 device = %v, want touch by default", s.device)
	}
}

func TestLoadScript_Errors(t *testing.T) {
	tests := []struct {
		name string
		data string
		want string
	}{
		{"invalid json", `not json`, "parse gesture script"},
		{"empty", `{"steps": []}`, "no steps"},
		{"unknown action", `{"steps": [{"action": "screenshot"}]}`, `unknown action "screenshot"`},
		{"unknown device", `{"steps": [{"action": "down", "device": "trackball"}]}`, `unknown device "trackball"`},
	}
	for _, tt := range tests {
		_, err := LoadScript([]byte(tt.data))
		if err == nil {
			t.Errorf("%s: expected error", tt.name)
			continue
		}
		if !strings.Contains(err.Error(), tt.want) {
			t.Errorf("%s: err = %q, want it to contain %q", tt.name, err, tt.want)
		}
	}
}

func TestRunnerStep_Wait(t *testing.T) {
	r := NewRecognizer(ManipulationAll)

	data := []byte(`{"steps": [
		{"action": "wait", "frames": 3},
		{"action": "down", "x": 5, "y": 5}
	]}`)
	runner, err := LoadScript(data)
	if err != nil {
		t.Fatal(err)
	}

	// Frame 1: execute wait (waitCount becomes 2).
	runner.step(r)
	// Frames 2 and 3: countdown.
	runner.step(r)
	runner.step(r)
	if runner.Done() || r.PendingInjections() != 0 {
		t.Fatal("down step ran during the wait")
	}

	// Frame 4: execute the down step, runner finishes.
	runner.step(r)
	if r.PendingInjections() != 1 {
		t.Fatalf("expected the down to be queued, got %d", r.PendingInjections())
	}
	if runner.Done() {
		t.Error("runner should not be done while its injection is pending")
	}
	r.processInjected()
	runner.step(r)
	if !runner.Done() {
		t.Error("runner should be done after all steps executed and queue drained")
	}
}

func TestRunnerStep_Drag(t *testing.T) {
	r := NewRecognizer(Drag)
	data := []byte(`{"steps": [{"action": "drag", "device": "pen", "id": 4, "fromX": 10, "fromY": 10, "toX": 200, "toY": 200, "frames": 4}]}`)
	runner, err := LoadScript(data)
	if err != nil {
		t.Fatal(err)
	}

	runner.step(r)
	if r.PendingInjections() != 4 {
		t.Fatalf("expected 4 queued events for drag, got %d", r.PendingInjections())
	}
	if c := r.injectQueue[0].contacts[0]; c.Device != DevicePen || c.ID != 4 {
		t.Errorf("first contact = %+v", c)
	}
}

func TestRunnerWaitsForInjectQueue(t *testing.T) {
	r := NewRecognizer(ManipulationAll)

	data := []byte(`{"steps": [
		{"action": "pinch", "x": 50, "y": 50, "fromDist": 20, "toDist": 60, "frames": 2},
		{"action": "cancel", "id": 1}
	]}`)
	runner, err := LoadScript(data)
	if err != nil {
		t.Fatal(err)
	}

	runner.step(r)
	if r.PendingInjections() != 6 {
		t.Fatalf("expected 6 events, got %d", r.PendingInjections())
	}

	// Step again: should NOT advance because inject queue is not drained.
	runner.step(r)
	if runner.cursor != 1 {
		t.Errorf("cursor should still be 1, got %d", runner.cursor)
	}

	r.injectQueue = r.injectQueue[:0]
	runner.step(r)
	if r.PendingInjections() != 1 || r.injectQueue[0].kind != syntheticCancel {
		t.Error("cancel step should be queued")
	}
}

func TestScriptRunner_DrivesRecognizer(t *testing.T) {
	r := NewRecognizer(Drag)
	var events []EventType
	r.OnDragStarted(func(ctx DragContext) { events = append(events, ctx.Type) })
	r.OnDragContinuing(func(ctx DragContext) { events = append(events, ctx.Type) })
	r.OnDragCompleted(func(ctx DragContext) { events = append(events, ctx.Type) })

	runner, err := LoadScript([]byte(`{"steps": [
		{"action": "drag", "device": "mouse", "fromX": 0, "fromY": 0, "toX": 100, "toY": 0, "frames": 4},
		{"action": "wait", "frames": 2}
	]}`))
	if err != nil {
		t.Fatal(err)
	}
	r.SetScriptRunner(runner)

	frames := 0
	for !runner.Done() && frames < 100 {
		r.Update(frame)
		frames++
	}
	if !runner.Done() {
		t.Fatal("script never finished")
	}
	if frames != 7 {
		t.Errorf("script took %d frames, want 7", frames)
	}
	want := []EventType{EventDragStarted, EventDragContinuing, EventDragCompleted}
	if len(events) != len(want) {
		t.Fatalf("got %v, want %v", events, want)
	}
	for i := range want {
		if events[i] != want[i] {
			t.Errorf("event %d = %v, want %v", i, events[i], want[i])
		}
	}
}
