package component

import "github.com/milk9111/thumbstick/locomotion"

// Motion holds the latest tick report and the display state derived from
// it, for overlays and logging.
type Motion struct {
	Report  locomotion.Report
	Display locomotion.DisplayState
	// Ticked is false on frames where the controller did not run.
	Ticked bool
}

var MotionComponent = NewComponent[Motion]()
