package stats

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"strconv"
	"strings"
)

const textHeader = "STATS FILE BATTLESHIPS"

// TextStore keeps stats in a flat key/value text file.
type TextStore struct {
	Path string
}

func NewTextStore(path string) *TextStore {
	return &TextStore{Path: path}
}

func (s *TextStore) Load(ctx context.Context) (Pair, error) {
	if err := ctx.Err(); err != nil {
		return Pair{}, err
	}

	f, err := os.Open(s.Path)
	if errors.Is(err, fs.ErrNotExist) {
		return Pair{}, nil
	}
	if err != nil {
		return Pair{}, fmt.Errorf("open stats file: %w", err)
	}
	defer f.Close()

	p, err := ParseText(f)
	if err != nil {
		return Pair{}, fmt.Errorf("parse stats file %s: %w", s.Path, err)
	}
	return p, nil
}

func (s *TextStore) Save(ctx context.Context, p Pair) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	if dir := filepath.Dir(s.Path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create stats dir: %w", err)
		}
	}

	tmpPath := s.Path + ".tmp"
	f, err := os.Create(tmpPath)
	if err != nil {
		return fmt.Errorf("create stats file: %w", err)
	}

	if err := WriteText(f, p); err != nil {
		f.Close()
		_ = os.Remove(tmpPath)
		return fmt.Errorf("write stats file: %w", err)
	}

	if err := f.Close(); err != nil {
		_ = os.Remove(tmpPath)
		return fmt.Errorf("close stats file: %w", err)
	}

	if err := os.Rename(tmpPath, s.Path); err != nil {
		return fmt.Errorf("rename stats file: %w", err)
	}
	return nil
}

func WriteText(w io.Writer, p Pair) error {
	bw := bufio.NewWriter(w)

	fmt.Fprintln(bw, textHeader)
	for i, s := range p {
		fmt.Fprintf(bw, "\nPLAYER\t\t%d:\n", i+1)
		fmt.Fprintln(bw, "-TARGET")
		fmt.Fprintf(bw, "HITS:\t\t%d\n", s.Hits)
		fmt.Fprintf(bw, "TOTAL:\t\t%d\n", s.ShotsTaken)
		fmt.Fprintf(bw, "MISSES:\t\t%d\n", s.Misses)
		fmt.Fprintf(bw, "RATIO:\t\t%.3g\n", s.HitRatio)
		fmt.Fprintln(bw, "-GAMES")
		fmt.Fprintf(bw, "PLAYED:\t\t%d\n", s.GamesPlayed)
		fmt.Fprintf(bw, "WON:\t\t%d\n", s.GamesWon)
		fmt.Fprintf(bw, "LOST:\t\t%d\n", s.GamesLost)
	}

	return bw.Flush()
}

// ParseText reads the format written by WriteText. Unknown keys and
// section markers are skipped, so files without a MISSES line still load.
func ParseText(r io.Reader) (Pair, error) {
	var p Pair
	player := -1

	lines := bufio.NewScanner(r)
	for n := 1; lines.Scan(); n++ {
		fields := strings.Fields(lines.Text())
		if len(fields) < 2 {
			continue
		}

		key, value := fields[0], fields[1]

		if key == "PLAYER" {
			idx, err := strconv.Atoi(strings.TrimSuffix(value, ":"))
			if err != nil || idx < 1 || idx > len(p) {
				return Pair{}, fmt.Errorf("line %d: invalid player %q", n, value)
			}
			player = idx - 1
			continue
		}

		if player < 0 {
			continue
		}

		s := &p[player]

		if key == "RATIO:" {
			ratio, err := strconv.ParseFloat(value, 64)
			if err != nil {
				return Pair{}, fmt.Errorf("line %d: %w", n, err)
			}
			s.HitRatio = ratio
			continue
		}

		var target *int
		switch key {
		case "HITS:":
			target = &s.Hits
		case "TOTAL:":
			target = &s.ShotsTaken
		case "MISSES:":
			target = &s.Misses
		case "PLAYED:":
			target = &s.GamesPlayed
		case "WON:":
			target = &s.GamesWon
		case "LOST:":
			target = &s.GamesLost
		default:
			continue
		}

		v, err := strconv.Atoi(value)
		if err != nil {
			return Pair{}, fmt.Errorf("line %d: %w", n, err)
		}
		*target = v
	}

	return p, lines.Err()
}
