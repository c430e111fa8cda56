// Package gesture recognizes pointer manipulations (translate, rotate,
// scale) and drags from raw touch, pen and mouse contacts, and simulates
// inertia after a fast release.
//
// # Quick start
//
// Create a [Recognizer], register callbacks, feed it contacts and call
// [Recognizer.Update] once per frame:
//
//	rec := gesture.NewRecognizer(gesture.ManipulationAll)
//	rec.OnManipulationUpdated(func(ctx gesture.ManipulationContext) {
//		box.X += ctx.Delta.Translation.X
//		box.Y += ctx.Delta.Translation.Y
//	})
//
//	// from the input layer:
//	rec.ProcessDown(gesture.Contact{ID: 1, Device: gesture.DeviceTouch, Position: p, Timestamp: t})
//	rec.ProcessMove(gesture.Contact{ID: 1, Device: gesture.DeviceTouch, Position: p2, Timestamp: t2})
//	rec.ProcessUp(gesture.Contact{ID: 1, Device: gesture.DeviceTouch, Position: p2, Timestamp: t3})
//
//	// every frame:
//	rec.Update(time.Second / 60)
//
// For Ebitengine games the [github.com/phanxgames/gesture/ebitenin] package
// polls the cursor and touches and does both steps for you.
//
// # Episodes
//
// Each independent gesture is a [Manipulation]. It starts with one contact,
// may take a second one, and moves through [StateStarting], [StateStarted],
// [StateInertia] and [StateCompleted]. While starting, small movements are
// ignored until a start threshold from the device's [Profile] is crossed.
// After that, updates are published when an incremental change crosses the
// delta threshold. Mouse thresholds are much tighter than touch and pen.
//
// If [Drag] is enabled and the first contact leaves its tap range before a
// manipulation starts, the episode becomes a drag and only emits DragStarted,
// DragContinuing and DragCompleted until it ends.
//
// # Inertia
//
// Releasing a contact faster than the inertia thresholds starts an
// [InertiaSimulator] that keeps publishing updates along a quartic ease-out
// (via [gween]) until its duration elapses. New contacts of the same device
// interrupt it.
//
// # Configuration
//
// Thresholds, tap ranges and inertia constants can be loaded from TOML with
// [LoadConfig] and applied with [Recognizer.ApplyConfig].
//
// [gween]: https://github.com/tanema/gween
package gesture
