package main

import (
	"flag"
	"fmt"
	"os"
	"strings"

	"github.com/fadedpez/cardsharp/pkg/cards"
	"github.com/pterm/pterm"
)

func main() {
	// Define command-line flags
	dealCmd := flag.NewFlagSet("deal", flag.ExitOnError)
	evalCmd := flag.NewFlagSet("eval", flag.ExitOnError)

	// Deal command options
	players := dealCmd.Int("n", 2, "Number of players (1-10)")
	seed := dealCmd.Int64("seed", 0, "Shuffle seed (0 = random)")

	// Show usage if no arguments provided
	if len(os.Args) < 2 {
		printUsage()
		os.Exit(1)
	}

	// Parse command
	switch os.Args[1] {
	case "deal":
		dealCmd.Parse(os.Args[2:])
		shuffler := cards.NewShuffler(nil)
		if *seed != 0 {
			shuffler = cards.NewSeededShuffler(*seed)
		}

		table, err := deal(shuffler, *players)
		if err != nil {
			fail(err)
		}
		renderTable(table)

	case "eval":
		evalCmd.Parse(os.Args[2:])
		if evalCmd.NArg() < 1 {
			pterm.Error.Println("Missing hand, e.g. handcli eval \"As Ks Qs Js 10s\"")
			os.Exit(1)
		}

		s, err := evaluate(strings.Join(evalCmd.Args(), " "))
		if err != nil {
			fail(err)
		}
		renderEvaluation(s)

	case "help":
		printUsage()

	default:
		pterm.Error.Printfln("Unknown command '%s'", os.Args[1])
		printUsage()
		os.Exit(1)
	}
}

func printUsage() {
	fmt.Println("Usage:")
	fmt.Println("  handcli deal [-n players] [-seed S]  - Shuffle and deal five cards to each player")
	fmt.Println("  handcli eval CARDS                   - Evaluate one five-card hand")
	fmt.Println("  handcli help                         - Show this help")
	fmt.Println("\nExamples:")
	fmt.Println("  handcli deal -n 4 -seed 42")
	fmt.Println("  handcli eval \"A♠ K♠ Q♠ J♠ 10♠\"")
}

func fail(err error) {
	pterm.Error.Println(err)
	os.Exit(1)
}
