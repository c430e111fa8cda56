package gesture

import (
	"encoding/json"
	"fmt"
)

// scriptStep represents a single action in a gesture script.
type scriptStep struct {
	Action   string  `json:"action"`
	Device   string  `json:"device,omitempty"`
	ID       uint32  `json:"id,omitempty"`
	X        float64 `json:"x,omitempty"`
	Y        float64 `json:"y,omitempty"`
	FromX    float64 `json:"fromX,omitempty"`
	FromY    float64 `json:"fromY,omitempty"`
	ToX      float64 `json:"toX,omitempty"`
	ToY      float64 `json:"toY,omitempty"`
	FromDist float64 `json:"fromDist,omitempty"`
	ToDist   float64 `json:"toDist,omitempty"`
	Rotation float64 `json:"rotation,omitempty"`
	Frames   int     `json:"frames,omitempty"`

	device DeviceType
}

// gestureScript is the top-level JSON structure of a gesture script.
type gestureScript struct {
	Steps []scriptStep `json:"steps"`
}

// ScriptRunner sequences injected contacts across frames for automated
// gesture tests. Attach to a Recognizer via SetScriptRunner.
//
// Supported actions: "down", "move", "up", "cancel" (device, id, x, y),
// "drag" (device, id, fromX/fromY, toX/toY, frames), "pinch" (x/y center,
// fromDist, toDist, rotation, frames) and "wait" (frames).
type ScriptRunner struct {
	steps     []scriptStep
	cursor    int
	waitCount int
	done      bool
}

// LoadScript parses a JSON gesture script and returns a ScriptRunner ready to
// be attached to a Recognizer.
func LoadScript(jsonData []byte) (*ScriptRunner, error) {
	var script gestureScript
	if err := json.Unmarshal(jsonData, &script); err != nil {
		return nil, fmt.Errorf("parse gesture script: %w", err)
	}
	if len(script.Steps) == 0 {
		return nil, fmt.Errorf("parse gesture script: no steps")
	}
	for i := range script.Steps {
		st := &script.Steps[i]
		switch st.Action {
		case "down", "move", "up", "cancel", "drag":
			d, ok := ParseDeviceType(st.Device)
			if st.Device == "" {
				d, ok = DeviceTouch, true
			}
			if !ok {
				return nil, fmt.Errorf("parse gesture script: step %d: unknown device %q", i, st.Device)
			}
			st.device = d
		case "pinch", "wait":
		default:
			return nil, fmt.Errorf("parse gesture script: step %d: unknown action %q", i, st.Action)
		}
	}
	return &ScriptRunner{steps: script.Steps}, nil
}

// SetScriptRunner attaches a ScriptRunner to the recognizer. The runner's
// step method is called from Update before injected events are processed.
func (r *Recognizer) SetScriptRunner(runner *ScriptRunner) {
	r.script = runner
}

// Done reports whether all steps in the script have been executed.
func (s *ScriptRunner) Done() bool {
	return s.done
}

// step advances the runner by one frame. Called from Recognizer.Update.
func (s *ScriptRunner) step(r *Recognizer) {
	if s.done {
		return
	}
	// Wait for pending injections to drain before advancing.
	if len(r.injectQueue) > 0 {
		return
	}
	if s.waitCount > 0 {
		s.waitCount--
		return
	}
	if s.cursor >= len(s.steps) {
		s.done = true
		return
	}

	st := s.steps[s.cursor]
	s.cursor++

	id := PointerID(st.ID)
	switch st.Action {
	case "down":
		r.InjectDown(st.device, id, st.X, st.Y)
	case "move":
		r.InjectMove(Contact{ID: id, Device: st.device, Position: Vec2{st.X, st.Y}})
	case "up":
		r.InjectUp(st.device, id, st.X, st.Y)
	case "cancel":
		r.InjectCancel(st.device, id)
	case "drag":
		r.InjectDrag(st.device, id, Vec2{st.FromX, st.FromY}, Vec2{st.ToX, st.ToY}, st.Frames)
	case "pinch":
		r.InjectPinch(Vec2{st.X, st.Y}, st.FromDist, st.ToDist, st.Rotation, st.Frames)
	case "wait":
		if st.Frames > 0 {
			s.waitCount = st.Frames - 1 // this frame counts as one
		}
	}

	if s.cursor >= len(s.steps) && s.waitCount == 0 && len(r.injectQueue) == 0 {
		s.done = true
	}
}
