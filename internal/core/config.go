package core

// RuntimeConfig contains configuration passed to games at initialization.
type RuntimeConfig struct {
	ScreenW int // Screen width in characters
	ScreenH int // Screen height in characters

	// StartRule overrides the variant's start rule when non-empty
	// ("corners", "own-corner" or "edges").
	StartRule string
	// ShowOverlay turns the validity overlay on at start.
	ShowOverlay bool
}

// DefaultConfig returns a RuntimeConfig with sensible defaults.
func DefaultConfig() RuntimeConfig {
	return RuntimeConfig{
		ScreenW: 80,
		ScreenH: 24,
	}
}

// GameState summarizes the sandbox for the platform.
type GameState struct {
	Rule     string // Start rule in effect
	Color    string // Active color name
	Placed   int    // Pieces placed on the board
	Stuck    bool   // Active color has no legal placement left
	Finished bool   // No color can place anything
}

// PlacementEvent records one piece placed during a step.
// Values are the engine's string forms so the platform can persist them
// without depending on the engine.
type PlacementEvent struct {
	Color    string
	Piece    string
	Rotation int // degrees
	Col      int
	Row      int
}

// StepResult is returned by Game.Step() after each input.
type StepResult struct {
	State      GameState
	Placements []PlacementEvent
	Message    string // Status line feedback, empty when nothing to report
}
