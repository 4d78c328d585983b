package core

// Named colors shared by scenes and the CLI. Treat as read-only.
var (
	Black = Color{0, 0, 0}
	White = Color{255, 255, 255}
	Red   = Color{255, 0, 0}
	Green = Color{0, 255, 0}
	Blue  = Color{0, 0, 255}
	Gray  = Color{50, 50, 50}
)

// Palette maps lowercase names to the named colors
var Palette = map[string]Color{
	"black": Black,
	"white": White,
	"red":   Red,
	"green": Green,
	"blue":  Blue,
	"gray":  Gray,
}
