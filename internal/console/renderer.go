package console

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/mrsobakin/battleships/internal/game/field"
)

const (
	waterSymbol = "~"
	missSymbol  = "m"
	hitSymbol   = "x"
)

type styles struct {
	title, axis, water, miss, hit, ship lipgloss.Style
}

func newStyles(r *lipgloss.Renderer, color bool) styles {
	if !color {
		plain := r.NewStyle()
		return styles{plain, plain, plain, plain, plain, plain}
	}

	return styles{
		title: r.NewStyle().Bold(true),
		axis:  r.NewStyle().Faint(true),
		water: r.NewStyle().Foreground(lipgloss.Color("6")),
		miss:  r.NewStyle().Foreground(lipgloss.Color("7")),
		hit:   r.NewStyle().Foreground(lipgloss.Color("1")).Bold(true),
		ship:  r.NewStyle().Foreground(lipgloss.Color("2")),
	}
}

// Renderer draws the opponent's board as TARGET FIELD next to the
// seat's own board as MY SHIPS.
type Renderer struct {
	out     io.Writer
	catalog *field.Catalog
	styles  styles
}

func NewRenderer(out io.Writer, catalog *field.Catalog, color bool) *Renderer {
	if catalog == nil {
		catalog = field.DefaultCatalog()
	}

	return &Renderer{
		out:     out,
		catalog: catalog,
		styles:  newStyles(lipgloss.NewRenderer(out), color),
	}
}

// shipSymbol is the symbol of the class of the ship on the cell.
func (r *Renderer) shipSymbol(cell field.Cell) string {
	length, ok := cell.ShipLength()
	if !ok {
		return "#"
	}

	class, err := r.catalog.Class(length)
	if err != nil {
		return "#"
	}
	return string(class.Symbol)
}

func (r *Renderer) cell(b *field.Board, c field.Coord, reveal bool) string {
	cell := b.At(c)

	switch cell.State {
	case field.MissMark:
		return r.styles.miss.Render(missSymbol)
	case field.HitMark:
		return r.styles.hit.Render(hitSymbol)
	case field.ShipSegment:
		if reveal {
			return r.styles.ship.Render(r.shipSymbol(cell))
		}
	}

	return r.styles.water.Render(waterSymbol)
}

func (r *Renderer) grid(title string, b *field.Board, reveal bool) string {
	var sb strings.Builder
	n := b.Size()

	sb.WriteString(r.styles.title.Render(title))
	sb.WriteString("\n  ")
	for col := 1; col <= n; col++ {
		sb.WriteString(r.styles.axis.Render(fmt.Sprintf("%3d", col)))
	}

	for row := range n {
		sb.WriteString("\n")
		sb.WriteString(r.styles.axis.Render(fmt.Sprintf("%02d", row+1)))
		for col := range n {
			sb.WriteString("  ")
			sb.WriteString(r.cell(b, field.Coord{Row: row, Col: col}, reveal))
		}
	}

	return sb.String()
}

// Boards returns the drawing without writing it. Ships on the opponent's
// board are hidden unless revealAll is set.
func (r *Renderer) Boards(own, opponent *field.Board, revealAll bool) string {
	return lipgloss.JoinHorizontal(
		lipgloss.Top,
		r.grid("TARGET FIELD", opponent, revealAll),
		"        ",
		r.grid("MY SHIPS", own, true),
	)
}

func (r *Renderer) RenderBoards(own, opponent *field.Board, revealAll bool) {
	fmt.Fprintf(r.out, "\n%s\n\n", r.Boards(own, opponent, revealAll))
}
