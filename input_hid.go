package main

// Legacy pad button masks. The values match the wire layout of the emulated
// console's HID block, so held/down masks can be compared directly.
const (
	KeyA      uint32 = 1 << 0
	KeyB      uint32 = 1 << 1
	KeySelect uint32 = 1 << 2
	KeyStart  uint32 = 1 << 3
	KeyRight  uint32 = 1 << 4
	KeyLeft   uint32 = 1 << 5
	KeyUp     uint32 = 1 << 6
	KeyDown   uint32 = 1 << 7
	KeyR      uint32 = 1 << 8
	KeyL      uint32 = 1 << 9
	KeyX      uint32 = 1 << 10
	KeyY      uint32 = 1 << 11
)

// screenshotChord is the exact held-mask that arms the screenshot trigger.
// Any extra button held in the same sample suppresses it.
const screenshotChord = KeyY | KeySelect

// Input is the HID sampling surface consumed by the frame pipeline. Both
// methods report the state of the current sample: KeysHeld is the level
// mask, KeysDown the edge mask (buttons that transitioned to pressed in
// this sample).
type Input interface {
	KeysHeld() uint32
	KeysDown() uint32
}
