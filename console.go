package main

import (
	"bufio"
	"fmt"
	"os"
	"strings"

	"deepbrot/view"

	"github.com/BrugadaSyndrome/bslogger"
)

// runConsole reads commands from stdin and feeds validated actions to the
// viewer. Rejected input is reported and the current view is left alone; the
// window never blocks on a prompt.
func runConsole(actions chan<- view.Action) {
	logger := bslogger.NewLogger("Console", bslogger.Normal, nil)

	fmt.Println("Commands:")
	fmt.Println("  radius <r>          set the zoom radius")
	fmt.Println("  depth <n>           set the iteration depth")
	fmt.Println("  center <re> <im>    re-center on a coordinate")
	fmt.Println("  quit                exit the viewer")

	scanner := bufio.NewScanner(os.Stdin)
	for scanner.Scan() {
		fields := strings.Fields(scanner.Text())
		if len(fields) == 0 {
			continue
		}

		switch fields[0] {
		case "radius":
			if len(fields) != 2 {
				logger.Warning("Usage: radius <r>")
				continue
			}
			value, err := view.ParseRadius(fields[1])
			if err != nil {
				logger.Warningf("Keeping current radius: %s", err)
				continue
			}
			actions <- view.SetRadius{Radius: value}

		case "depth":
			if len(fields) != 2 {
				logger.Warning("Usage: depth <n>")
				continue
			}
			value, err := view.ParseDepth(fields[1])
			if err != nil {
				logger.Warningf("Keeping current depth: %s", err)
				continue
			}
			actions <- view.SetDepth{Depth: value}

		case "center":
			if len(fields) != 3 {
				logger.Warning("Usage: center <re> <im>")
				continue
			}
			realValue, err := view.ParseCoordinate(fields[1])
			if err != nil {
				logger.Warningf("Keeping current center: %s", err)
				continue
			}
			imagValue, err := view.ParseCoordinate(fields[2])
			if err != nil {
				logger.Warningf("Keeping current center: %s", err)
				continue
			}
			actions <- view.SetCenter{Real: realValue, Imag: imagValue}

		case "quit", "exit":
			actions <- view.Quit{}
			return

		default:
			logger.Warningf("Unknown command: %s", fields[0])
		}
	}
}
