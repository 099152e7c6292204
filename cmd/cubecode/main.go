// cubecode - Rubik's cube state editor and two-phase solver front end.
package main

import (
	"github.com/SeamusWaldron/cubecode/internal/cli"
)

func main() {
	cli.Execute()
}
