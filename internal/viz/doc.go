// Package viz provides the terminal interface for watching a bottle
// live.
//
// The interactive session runs on the Bubble Tea framework:
//
//   - [Model]: live single-bottle view with keeper interventions
//   - [ProgressBar], [SparklineChart]: inline gauges for state fields
//
// # Key Bindings
//
//	Space - Pause/Resume
//	R     - Reset the bottle
//	O     - Open the bottle for fresh air
//	C/F   - Move closer to / away from the window
//	P     - Add a plant
//	W     - Add a liter of water
//	?     - Show help overlay
package viz
