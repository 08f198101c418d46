package editor

import (
	"unicode"
)

// ToolKind identifies one of the built-in tools.
type ToolKind uint8

// Tools.
const (
	Pencil ToolKind = iota
	Eraser
	Fill
	Eyedropper
	Line
	Rectangle
	Ellipse
	Selection
	Move

	toolCount
)

// ToolOption is a set of tool settings shown for a tool.
type ToolOption uint8

// Tool settings.
const (
	OptionBrushSize ToolOption = 1 << iota
	OptionShapeFilled
	OptionFillTolerance
)

// Has reports whether o contains all of flag.
func (o ToolOption) Has(flag ToolOption) bool {
	return o&flag == flag
}

// toolInfo describes a tool kind.
type toolInfo struct {
	name     string
	shortcut rune
	options  ToolOption
}

var toolInfoTable = [toolCount]toolInfo{
	Pencil:     {"Pencil", 'B', OptionBrushSize},
	Eraser:     {"Eraser", 'E', OptionBrushSize},
	Fill:       {"Fill", 'G', OptionFillTolerance},
	Eyedropper: {"Eyedropper", 'I', 0},
	Line:       {"Line", 'L', OptionBrushSize},
	Rectangle:  {"Rectangle", 'U', OptionShapeFilled},
	Ellipse:    {"Ellipse", 'O', OptionShapeFilled},
	Selection:  {"Selection", 'M', 0},
	Move:       {"Move", 'V', 0},
}

// IsValid reports whether k names a built-in tool.
func (k ToolKind) IsValid() bool {
	return k < toolCount
}

// String returns the display name of the tool.
func (k ToolKind) String() string {
	if !k.IsValid() {
		return "unknown"
	}
	return toolInfoTable[k].name
}

// Shortcut returns the keyboard letter bound to the tool.
func (k ToolKind) Shortcut() rune {
	if !k.IsValid() {
		return 0
	}
	return toolInfoTable[k].shortcut
}

// ToolByShortcut returns the tool bound to letter r, case-insensitively.
func ToolByShortcut(r rune) (ToolKind, bool) {
	r = unicode.ToUpper(r)
	for k := range toolCount {
		if toolInfoTable[k].shortcut == r {
			return k, true
		}
	}
	return 0, false
}

// Tool handles pointer gestures for one tool kind. Coordinates are canvas
// pixels and may lie outside the canvas.
type Tool interface {
	Kind() ToolKind
	Down(e *Editor, x, y int, in Input)
	Move(e *Editor, x, y int)
	Up(e *Editor, x, y int)
	Options() ToolOption
}

func newTools() [toolCount]Tool {
	return [toolCount]Tool{
		Pencil:     &brushTool{kind: Pencil},
		Eraser:     &brushTool{kind: Eraser},
		Fill:       fillTool{},
		Eyedropper: eyedropperTool{},
		Line:       &shapeTool{kind: Line},
		Rectangle:  &shapeTool{kind: Rectangle},
		Ellipse:    &shapeTool{kind: Ellipse},
		Selection:  &selectionTool{},
		Move:       &moveTool{},
	}
}

// baseTool supplies no-op Move and Up handlers for single-click tools.
type baseTool struct{}

func (baseTool) Move(*Editor, int, int) {}
func (baseTool) Up(*Editor, int, int)   {}
