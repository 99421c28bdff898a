package main

import (
	"bufio"
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/xtding233/ordercalc/internal/calculator"
	"github.com/xtding233/ordercalc/internal/display"
	"github.com/xtding233/ordercalc/internal/pricing"
)

const (
	exitOK      = 0
	exitFailure = 1
	exitInvalid = 2
)

func main() {
	os.Exit(run(os.Args[1:], os.Stdin, os.Stdout, os.Stderr))
}

func run(args []string, stdin io.Reader, stdout, stderr io.Writer) int {
	fs := flag.NewFlagSet("ordercalc", flag.ContinueOnError)
	fs.SetOutput(stderr)
	items := fs.String("items", "", "number of items")
	price := fs.String("price", "", "price per item")
	region := fs.String("region", calculator.DefaultRegion, "region code")
	asJSON := fs.Bool("json", false, "print the raw calculation as JSON")
	interactive := fs.Bool("interactive", false, "read commands from stdin")
	tables := fs.Bool("tables", false, "print the discount tiers and tax rates")
	if err := fs.Parse(args); err != nil {
		return exitInvalid
	}

	switch {
	case *tables:
		printTables(stdout)
		return exitOK
	case *interactive:
		if err := repl(stdin, stdout); err != nil {
			fmt.Fprintln(stderr, "ordercalc:", err)
			return exitFailure
		}
		return exitOK
	}

	res, err := calculator.Calculate(calculator.Form{NumItems: *items, PricePerItem: *price, RegionCode: *region})
	if err != nil {
		fmt.Fprintln(stderr, err)
		return exitInvalid
	}
	if *asJSON {
		enc := json.NewEncoder(stdout)
		enc.SetIndent("", "  ")
		if err := enc.Encode(res); err != nil {
			fmt.Fprintln(stderr, "ordercalc:", err)
			return exitFailure
		}
		return exitOK
	}
	printBreakdown(stdout, res)
	return exitOK
}

func printBreakdown(w io.Writer, res pricing.OrderCalculation) {
	for _, l := range display.Breakdown(res) {
		fmt.Fprintf(w, "%-24s %14s\n", l.Label+":", l.Value)
	}
}

func printTables(w io.Writer) {
	fmt.Fprintln(w, "Discount tiers:")
	for _, t := range pricing.DiscountTiers() {
		fmt.Fprintf(w, "  %-14s %s\n", display.TierLabel(t), display.Percent(t.Percentage))
	}
	fmt.Fprintln(w, "Tax rates:")
	for _, r := range pricing.TaxRates() {
		fmt.Fprintf(w, "  %-14s %s\n", r.Code, display.Percent(r.Rate))
	}
}

// repl drives a calculator session with one command per line:
// items N | price P | region R | calc | reset | show | quit.
func repl(in io.Reader, out io.Writer) error {
	s := calculator.NewSession()
	sc := bufio.NewScanner(in)
	for sc.Scan() {
		cmd, arg, _ := strings.Cut(strings.TrimSpace(sc.Text()), " ")
		arg = strings.TrimSpace(arg)
		switch strings.ToLower(cmd) {
		case "":
		case "items":
			s.SetNumItems(arg)
		case "price":
			s.SetPricePerItem(arg)
		case "region":
			s.SetRegionCode(arg)
		case "calc":
			res, err := s.Calculate()
			if err != nil {
				fmt.Fprintln(out, "error:", err)
				continue
			}
			printBreakdown(out, res)
		case "show":
			fmt.Fprintf(out, "items=%q price=%q region=%q\n", s.Form.NumItems, s.Form.PricePerItem, s.Form.RegionCode)
		case "reset":
			s.Reset()
		case "quit", "exit":
			return nil
		default:
			fmt.Fprintf(out, "unknown command %q\n", cmd)
		}
	}
	return sc.Err()
}
