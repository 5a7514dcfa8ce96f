// Package viz renders evaluated fall scenarios in the terminal.
//
// It covers two surfaces:
//
//   - [RenderComparison]: one asciigraph plot with every scenario curve,
//     legend order matching scenario entry order
//   - [LiveModel]: a Bubble Tea view animating a single body approaching
//     its terminal velocity
//
// # Key Bindings (live view)
//
//	Space   - Pause/Resume
//	R       - Reset to initial parameters
//	Tab     - Select parameter
//	Up/Down - Nudge selected parameter by 5%
//	?       - Toggle help
//	Q       - Quit
package viz
