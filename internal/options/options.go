// Package options contains the program options.
package options

// Parameters contains file path options.
type Parameters struct {
	Input string `arg:"positional" usage:"ROM file to run"`
	Wav   string `flag:"wav" usage:"record the sound tone into this WAV file"`
}

// Flags contains behavior options.
type Flags struct {
	CPUHz  int    `flag:"cpu" usage:"instructions per second" default:"700"`
	Frames int    `flag:"frames" usage:"run headless for this many frames and print the final display"`
	Seed   uint64 `flag:"seed" usage:"random seed for the RND instruction (0: random)"`
	Strict bool   `flag:"strict" usage:"halt on out of range key and font glyph indexes instead of masking them"`
	Trace  bool   `flag:"trace" usage:"log every executed instruction (implies -debug)"`
	Debug  bool   `flag:"debug" usage:"enable debug logging"`
	Quiet  bool   `flag:"q" usage:"quiet mode"`
}

// Program options of the emulator.
type Program struct {
	Parameters
	Flags
}

// Headless returns whether the emulator runs without terminal input and
// output for a fixed number of frames.
func (p Program) Headless() bool {
	return p.Frames > 0
}
