// Package console talks to the people at the keyboard: it reads menu
// choices and coordinates, draws boards and narrates the match.
package console

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"
	"unicode"

	"github.com/mrsobakin/battleships/internal/game"
	"github.com/mrsobakin/battleships/internal/game/field"
	"github.com/mrsobakin/battleships/internal/game/placement"
)

var (
	// Returned by GameMode when the player picks the exit entry.
	ErrExit = errors.New("exit requested")
	// Returned by startup menus for input that starts like a number but
	// carries trailing garbage.
	ErrInvalidInput = errors.New("invalid input")
)

type GameMode struct {
	Name string
	Size int
}

var GameModes = []GameMode{
	{"Easy", 5},
	{"Medium", 7},
	{"Hard", 10},
	{"Ultra", 13},
}

// Prompter reads answers line by line. Out of range answers are asked
// again; running out of input is reported as io.EOF.
type Prompter struct {
	in  *bufio.Reader
	out io.Writer
}

func NewPrompter(in io.Reader, out io.Writer) *Prompter {
	return &Prompter{
		bufio.NewReader(in),
		out,
	}
}

func (p *Prompter) readLine() (string, error) {
	line, err := p.in.ReadString('\n')
	if err != nil && (err != io.EOF || line == "") {
		return "", err
	}
	return strings.TrimSpace(line), nil
}

// leadingInt splits s into its leading decimal number and the rest.
func leadingInt(s string) (int, string, bool) {
	end := 0
	if end < len(s) && (s[end] == '-' || s[end] == '+') {
		end++
	}
	digits := end
	for end < len(s) && s[end] >= '0' && s[end] <= '9' {
		end++
	}
	if end == digits {
		return 0, s, false
	}

	n, err := strconv.Atoi(s[:end])
	if err != nil {
		return 0, s, false
	}
	return n, s[end:], true
}

// choose reads a number in [lo, hi]. In strict mode a number followed by
// anything else is rejected with ErrInvalidInput instead of asked again.
func (p *Prompter) choose(prompt string, lo, hi int, strict bool) (int, error) {
	for {
		fmt.Fprint(p.out, prompt)

		line, err := p.readLine()
		if err != nil {
			return 0, err
		}

		n, rest, ok := leadingInt(line)
		if !ok || n < lo || n > hi {
			continue
		}
		if rest != "" {
			if strict {
				return 0, fmt.Errorf("%w: %q", ErrInvalidInput, line)
			}
			continue
		}

		return n, nil
	}
}

func (p *Prompter) PlayerCount() (int, error) {
	fmt.Fprintln(p.out, "\nHow many human players are participating [1] or [2]?")
	return p.choose(">Enter Option:", 1, 2, true)
}

// GameMode returns the board size of the chosen mode, or ErrExit.
func (p *Prompter) GameMode() (int, error) {
	fmt.Fprintln(p.out, "\nChoose game mode:")
	for i, mode := range GameModes {
		fmt.Fprintf(p.out, "[%d] %s: %dx%d with %d ships\n", i+1, mode.Name, mode.Size, mode.Size, field.ShipsToPlace(mode.Size))
	}
	fmt.Fprintln(p.out, "[0] Exit")

	n, err := p.choose(">Enter Option:", 0, len(GameModes), true)
	if err != nil {
		return 0, err
	}
	if n == 0 {
		return 0, ErrExit
	}

	return GameModes[n-1].Size, nil
}

func (p *Prompter) PlacementMode(seat game.Seat) (placement.Mode, error) {
	fmt.Fprintf(p.out, "\nPlayer %d do you want to enter x,y coordinates to place your ships?\n", seat.Number())
	fmt.Fprintln(p.out, "[1] NO")
	fmt.Fprintln(p.out, "[2] YES")

	n, err := p.choose(">Choose:", 1, 2, false)
	if err != nil {
		return 0, err
	}
	if n == 2 {
		return placement.Manual, nil
	}
	return placement.Random, nil
}

func parseCoordinate(line string, size int) (field.Coord, bool) {
	parts := strings.FieldsFunc(line, func(r rune) bool {
		return r == ',' || unicode.IsSpace(r)
	})
	if len(parts) != 2 {
		return field.Coord{}, false
	}

	row, err := strconv.Atoi(parts[0])
	if err != nil || row < 1 || row > size {
		return field.Coord{}, false
	}

	col, err := strconv.Atoi(parts[1])
	if err != nil || col < 1 || col > size {
		return field.Coord{}, false
	}

	return field.Coord{Row: row - 1, Col: col - 1}, true
}

// Coordinate reads a 1-based "row,col" pair and returns it 0-based.
func (p *Prompter) Coordinate(size int) (field.Coord, error) {
	fmt.Fprintf(p.out, "Please enter coordinates (1-%d,1-%d):\n", size, size)

	for {
		line, err := p.readLine()
		if err != nil {
			return field.Coord{}, err
		}

		if c, ok := parseCoordinate(line, size); ok {
			return c, nil
		}
	}
}

func (p *Prompter) Orientation() (field.Orientation, error) {
	fmt.Fprintln(p.out, "[1] HORIZONTAL")
	fmt.Fprintln(p.out, "[2] VERTICAL")

	n, err := p.choose(">Choose:", 1, 2, false)
	if err != nil {
		return 0, err
	}
	if n == 2 {
		return field.Vertical, nil
	}
	return field.Horizontal, nil
}
