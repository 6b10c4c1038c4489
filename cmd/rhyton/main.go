// Command rhyton tags CAD objects with key/value data, visualizes it with
// colour schemes and gradients, and exports it to CSV or JSON.
package main

import (
	"github.com/rhyton-cad/rhyton/internal/cli"
)

func main() {
	cli.Execute()
}
