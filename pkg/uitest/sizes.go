package uitest

// Size is a terminal size in cells.
type Size struct {
	Width  int
	Height int
}

var (
	// Compact is the classic 80x24 terminal.
	Compact = Size{Width: 80, Height: 24}
	// Short leaves room for ten content rows under one status row.
	Short = Size{Width: 80, Height: 11}
)
