package field

import (
	"fmt"

	"github.com/dolthub/swiss"
)

type ShipClass struct {
	Length    int
	Symbol    rune
	Name      string
	SizeLabel string
}

// Catalog maps ship length to its class.
type Catalog struct {
	classes *swiss.Map[int, ShipClass]
}

func NewCatalog(classes ...ShipClass) *Catalog {
	c := &Catalog{
		classes: swiss.NewMap[int, ShipClass](uint32(len(classes))),
	}

	for _, class := range classes {
		c.classes.Put(class.Length, class)
	}

	return c
}

func DefaultCatalog() *Catalog {
	return NewCatalog(
		ShipClass{Length: 2, Symbol: 's', Name: "Submarine", SizeLabel: "small"},
		ShipClass{Length: 3, Symbol: 'c', Name: "Cruiser", SizeLabel: "medium"},
		ShipClass{Length: 4, Symbol: 'b', Name: "Battleship", SizeLabel: "large"},
		ShipClass{Length: 5, Symbol: 'r', Name: "Carrier", SizeLabel: "huge"},
	)
}

func (c *Catalog) Class(length int) (ShipClass, error) {
	class, ok := c.classes.Get(length)
	if !ok {
		return ShipClass{}, fmt.Errorf("%w: %d", ErrShipLength, length)
	}
	return class, nil
}

// Composition is the order in which ship lengths are consumed.
var Composition = [...]int{2, 2, 3, 3, 4, 5, 4}

// ShipsToPlace returns ceil(n/2), capped by the composition size.
func ShipsToPlace(n int) int {
	return max(0, min((n+1)/2, len(Composition)))
}

// FleetFor returns the ship lengths used on an n×n board.
func FleetFor(n int) []int {
	lengths := make([]int, ShipsToPlace(n))
	copy(lengths, Composition[:])
	return lengths
}

// HitTotal is the number of confirmed hits needed to sink every ship.
func HitTotal(lengths []int) int {
	total := 0
	for _, l := range lengths {
		total += l
	}
	return total
}
