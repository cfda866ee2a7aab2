// Package ui contains the Bubble Tea program that renders the presentation.
// Model focuses on message orchestration while dedicated files own input,
// rendering, glyph controls, the background picker and animation timing.
//
// Message flow:
//   - Init asks the session for its configuration (sessionLoadedMsg) and, in
//     a live program, starts the frame and glitch tickers together with the
//     listeners for session and resource events.
//   - Update routes every tea.Msg through a typed handler registry so each
//     message is handled by a focused function.
//   - Key and mouse input turn into swap requests, picker navigation, focus
//     changes on the glyph controls or aura adjustments. Swaps run through
//     the command bus in internal/ui/command and report back as swapResultMsg.
//
// Session interactions:
//   - The session notifies that events are pending; waitForSessionEvent
//     drains them into a sessionEventMsg and the handler re-reads visibility,
//     playback state and the action log.
//   - A backend.Watcher streams resource reloads. applyBackendEvent hands them
//     to the dispatcher in internal/data/dispatcher, which applies them to the
//     session, and then rebuilds only what changed.
//
// In manual mode no timers or listeners are scheduled; Harness delivers
// frames and session events explicitly so tests stay deterministic.
package ui
