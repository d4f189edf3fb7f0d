package console

import (
	"fmt"
	"io"

	"github.com/mrsobakin/battleships/internal/game/field"
	"github.com/mrsobakin/battleships/internal/match"
)

// Announcer narrates a match on the console and draws the boards.
type Announcer struct {
	*Renderer

	out io.Writer
}

func NewAnnouncer(out io.Writer, renderer *Renderer) *Announcer {
	return &Announcer{
		renderer,
		out,
	}
}

func (a *Announcer) Event(e match.Event) {
	switch e := e.(type) {
	case match.MatchStarted:
		fmt.Fprintln(a.out, "\nGame starts!")
		fmt.Fprintf(a.out, ">Player %d has been selected to go first.\n\n", e.First.Number())
	case match.RoundStarted:
		fmt.Fprintln(a.out, "********************")
		fmt.Fprintf(a.out, "** ROUND %d STARTS\n", e.Round)
		fmt.Fprintln(a.out, "********************")
	case match.TurnStarted:
		if e.Human {
			fmt.Fprintf(a.out, "\nPLAYER %d'S TURN\n", e.Seat.Number())
		} else {
			fmt.Fprintln(a.out, "\nCPU'S TURN")
		}
	case match.ShotResolved:
		verb := "Miss"
		if e.Result == field.Hit {
			verb = "Hit"
		}
		fmt.Fprintf(a.out, "(%d, %d) Target %s!\n", e.At.Row+1, e.At.Col+1, verb)
	case match.ShipSunk:
		fmt.Fprintf(a.out, ">>Target Destroyed [Player %d's %s ship (%d cells)]!\n", e.Owner.Number(), e.Class.SizeLabel, e.Class.Length)
	case match.MatchWon:
		fmt.Fprintf(a.out, "\n> Player %d wins!\n", e.Winner.Number())
	}
}

func (a *Announcer) PlacementRejected(p field.Placement, err error) {
	fmt.Fprintf(a.out, "!Cannot place the %d-cell ship there: %v\n", p.Length, err)
}
