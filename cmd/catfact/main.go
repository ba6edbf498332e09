// Command catfact fetches random cat facts from the command line.
package main

import "github.com/princespaghetti/catfact/internal/cli"

func main() {
	cli.Execute()
}
