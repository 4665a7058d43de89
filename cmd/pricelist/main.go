// Command pricelist converts a raw supplier price list into a CSV ready
// to paste into the catalog spreadsheet.
//
// Usage:
//
//	pricelist [-o import.csv] [input.txt]
//
// With no input file the raw text is read from stdin.
package main

import (
	"encoding/csv"
	"flag"
	"fmt"
	"io"
	"log"
	"os"

	"github.com/fatih/color"

	"github.com/vinixspb/vnxChooseApple-bot/pkg/pricelist"
)

func main() {
	output := flag.String("o", "import_to_sheet.csv", "output CSV path")
	flag.Parse()

	var raw []byte
	var err error
	if flag.NArg() > 0 {
		raw, err = os.ReadFile(flag.Arg(0))
	} else {
		raw, err = io.ReadAll(os.Stdin)
	}
	if err != nil {
		log.Fatalf("reading input: %v", err)
	}

	items := pricelist.Parse(string(raw))
	if len(items) == 0 {
		color.Yellow("No sellable rows found in the input.")
		return
	}

	if err := writeCSV(*output, items); err != nil {
		log.Fatalf("writing %s: %v", *output, err)
	}

	color.Green("Done! Parsed %d items into %s", len(items), *output)
	for _, item := range items {
		fmt.Printf("  %-14s %s\n", color.CyanString(item.SKU), item.Title)
	}
}

func writeCSV(path string, items []pricelist.Item) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	w := csv.NewWriter(f)
	defer w.Flush()

	header := []string{"id", "title", "price", "brand", "bot_model_group", "memory", "color", "sim", "availability"}
	if err := w.Write(header); err != nil {
		return err
	}

	for _, item := range items {
		row := []string{
			item.SKU, item.Title, item.Price, item.Brand,
			item.ModelGroup, item.Memory, item.Color, item.SIM, item.Availability,
		}
		if err := w.Write(row); err != nil {
			return err
		}
	}
	return w.Error()
}
