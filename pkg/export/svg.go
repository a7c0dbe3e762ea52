package export

import (
	"bytes"
	"fmt"
	"os"

	svg "github.com/ajstarks/svgo"

	"ccengine/pkg/engine"
	"ccengine/pkg/level"
	"ccengine/pkg/tile"
)

// SVGOptions configures a level diagram export.
type SVGOptions struct {
	CellSize   int    // Pixel size of one board cell (default: 20)
	Margin     int    // Canvas margin in pixels (default: 30)
	ShowGrid   bool   // Draw grid lines between cells
	ShowLegend bool   // Draw a legend of tile colors
	ShowStats  bool   // Draw tick/chips/time header text
	Title      string // Optional title
}

// DefaultSVGOptions returns sensible default SVG export options.
func DefaultSVGOptions() SVGOptions {
	return SVGOptions{
		CellSize:   20,
		Margin:     30,
		ShowGrid:   true,
		ShowLegend: true,
		ShowStats:  true,
		Title:      "Level",
	}
}

// ExportSVG renders lvl's current board and actors as an SVG diagram.
func ExportSVG(lvl *level.Level, opts SVGOptions) ([]byte, error) {
	if lvl == nil {
		return nil, fmt.Errorf("export: level is nil")
	}
	if opts.CellSize <= 0 {
		opts.CellSize = 20
	}
	if opts.Margin <= 0 {
		opts.Margin = 30
	}

	headerHeight := 0
	if opts.Title != "" || opts.ShowStats {
		headerHeight = 50
	}
	legendWidth := 0
	if opts.ShowLegend {
		legendWidth = 160
	}

	boardPx := opts.CellSize * tile.Width
	width := boardPx + 2*opts.Margin + legendWidth
	height := boardPx + 2*opts.Margin + headerHeight

	buf := new(bytes.Buffer)
	canvas := svg.New(buf)
	canvas.Start(width, height)
	canvas.Rect(0, 0, width, height, "fill:#1a1a2e")

	originX, originY := opts.Margin, opts.Margin+headerHeight

	drawBoard(canvas, lvl, originX, originY, opts)
	drawActors(canvas, lvl, originX, originY, opts)

	if opts.ShowLegend {
		drawSVGLegend(canvas, originX+boardPx+20, originY, opts)
	}
	if opts.Title != "" || opts.ShowStats {
		drawSVGHeader(canvas, lvl, width, opts)
	}

	canvas.End()
	return buf.Bytes(), nil
}

// SaveSVGToFile renders lvl and writes the result to path.
func SaveSVGToFile(lvl *level.Level, path string, opts SVGOptions) error {
	data, err := ExportSVG(lvl, opts)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

func drawBoard(canvas *svg.SVG, lvl *level.Level, originX, originY int, opts SVGOptions) {
	for y := 0; y < tile.Height; y++ {
		for x := 0; x < tile.Width; x++ {
			pos := tile.Position(y*tile.Width + x)
			top, bottom := engine.TileAt(lvl, pos)
			id := top
			if id == tile.Empty {
				id = bottom
			}

			px := originX + x*opts.CellSize
			py := originY + y*opts.CellSize
			style := fmt.Sprintf("fill:%s", tileColor(id))
			if opts.ShowGrid {
				style += ";stroke:#0f0f1a;stroke-width:1"
			}
			canvas.Rect(px, py, opts.CellSize, opts.CellSize, style)
		}
	}
}

func drawActors(canvas *svg.SVG, lvl *level.Level, originX, originY int, opts SVGOptions) {
	radius := opts.CellSize / 2 - 2
	if radius < 2 {
		radius = 2
	}
	for _, a := range engine.Actors(lvl) {
		if a.Hidden {
			continue
		}
		x := int(a.Pos) % tile.Width
		y := int(a.Pos) / tile.Width
		cx := originX + x*opts.CellSize + opts.CellSize/2
		cy := originY + y*opts.CellSize + opts.CellSize/2
		color := "#e2e8f0"
		if a.ID == tile.Chip || a.ID == tile.SwimmingChip || a.ID == tile.PushingChip {
			color = "#ffd700"
		}
		canvas.Circle(cx, cy, radius, fmt.Sprintf("fill:%s;stroke:#000;stroke-width:1", color))
	}
}

// tileColor buckets a tile ID into a coarse color family so the diagram
// reads as terrain at a glance without a full sprite set.
func tileColor(id tile.ID) string {
	switch tile.GetID(id) {
	case tile.Empty:
		return "#0f0f1a"
	case tile.Wall, tile.WallNorth, tile.WallWest, tile.WallSouth, tile.WallEast, tile.WallSoutheast, tile.BlueWallReal, tile.BlueWallFake:
		return "#4a5568"
	case tile.Water:
		return "#3b82f6"
	case tile.Fire:
		return "#ef4444"
	case tile.Dirt:
		return "#78350f"
	case tile.Gravel:
		return "#6b7280"
	case tile.Exit:
		return "#48bb78"
	case tile.Beartrap:
		return "#92400e"
	case tile.Teleport:
		return "#9f7aea"
	case tile.HintButton:
		return "#f59e0b"
	default:
		switch {
		case tile.IsIce(id):
			return "#a5f3fc"
		case tile.IsSlide(id):
			return "#d8b4fe"
		case tile.IsKey(id):
			return "#ecc94b"
		case tile.IsBoots(id):
			return "#38b2ac"
		case tile.IsDoor(id):
			return "#f56565"
		default:
			return "#2d3748"
		}
	}
}

func drawSVGLegend(canvas *svg.SVG, x, y int, opts SVGOptions) {
	entries := []struct {
		name  string
		color string
	}{
		{"Wall", "#4a5568"},
		{"Water", "#3b82f6"},
		{"Fire", "#ef4444"},
		{"Ice", "#a5f3fc"},
		{"Force floor", "#d8b4fe"},
		{"Exit", "#48bb78"},
		{"Trap", "#92400e"},
		{"Teleport", "#9f7aea"},
		{"Key", "#ecc94b"},
		{"Boots", "#38b2ac"},
		{"Door", "#f56565"},
		{"Chip", "#ffd700"},
	}

	canvas.Rect(x-10, y-15, 150, len(entries)*20+20, "fill:#2d3748;stroke:#4a5568;stroke-width:1;opacity:0.95")
	canvas.Text(x, y, "Legend", "font-size:13px;font-weight:bold;fill:#e2e8f0")
	y += 20
	for _, e := range entries {
		canvas.Rect(x, y-9, 12, 12, fmt.Sprintf("fill:%s;stroke:#fff;stroke-width:1", e.color))
		canvas.Text(x+18, y, e.name, "font-size:11px;fill:#cbd5e0")
		y += 18
	}
}

func drawSVGHeader(canvas *svg.SVG, lvl *level.Level, width int, opts SVGOptions) {
	y := 20
	if opts.Title != "" {
		canvas.Text(width/2, y, opts.Title, "text-anchor:middle;font-size:18px;font-weight:bold;fill:#e2e8f0;font-family:sans-serif")
		y += 24
	}
	if opts.ShowStats {
		stats := fmt.Sprintf("Tick: %d | Chips left: %d | Time limit: %d",
			lvl.CurrentTick, lvl.ChipsLeft, lvl.TimeLimit)
		canvas.Text(width/2, y, stats, "text-anchor:middle;font-size:12px;fill:#a0aec0;font-family:monospace")
	}
}
