// Package pricelist turns raw supplier price-list text into catalog rows
// ready for the spreadsheet import.
//
// Supplier lists look like:
//
//	Air 256 Cloud White eSim - 74500
//	17 Pro Max 1Tb Silver Nano + eSim - 178000
//	Чехол Air Case with MagSafe Frost - 4500
//
// possibly with decorative emoji prefixes and header lines mixed in.
package pricelist

import (
	"regexp"
	"strings"
)

// Item is one parsed price-list row, keyed the same way the spreadsheet
// columns are.
type Item struct {
	SKU          string
	Title        string
	Price        string
	Brand        string
	ModelGroup   string
	Memory       string
	Color        string
	SIM          string
	Availability string
}

var (
	priceRe = regexp.MustCompile(`-\s*(\d+)$`)
	iconRe  = regexp.MustCompile(`^[^\w\p{Cyrillic}]+\s*`)
	memRe   = regexp.MustCompile(`\b(128|256|512|1Tb|2Tb)\b`)
	simRe   = regexp.MustCompile(`(Nano \+ eSim|eSim)`)
)

// Parse extracts sellable items from raw supplier text. Lines without a
// trailing price and known header fragments are skipped silently; the
// supplier format is too loose to report them as errors.
func Parse(text string) []Item {
	var items []Item

	for _, line := range strings.Split(strings.TrimSpace(text), "\n") {
		line = strings.TrimSpace(line)
		if line == "" || strings.Contains(line, "🔋 eSim") {
			continue
		}

		priceMatch := priceRe.FindStringSubmatchIndex(line)
		if priceMatch == nil {
			continue
		}
		price := line[priceMatch[2]:priceMatch[3]]
		content := strings.TrimSpace(line[:priceMatch[0]])
		content = iconRe.ReplaceAllString(content, "")

		var item Item
		if strings.Contains(content, "Чехол") || strings.Contains(content, "Case") {
			item = parseAccessory(content)
		} else {
			item = parsePhone(content)
		}
		item.Price = price
		item.Brand = "Apple"
		item.Availability = "in stock"
		item.SKU = makeSKU(item)
		item.Title = strings.TrimSpace(strings.Join([]string{item.ModelGroup, item.Memory, item.Color, item.SIM}, " "))

		items = append(items, item)
	}
	return items
}

func parseAccessory(content string) Item {
	item := Item{
		ModelGroup: content,
		Memory:     "-",
		Color:      "-",
		SIM:        "-",
	}
	// Accessory color, when present, trails after the last dash:
	// "Air Case with MagSafe - Frost".
	if idx := strings.LastIndex(content, " - "); idx >= 0 {
		item.ModelGroup = content[:idx]
		item.Color = content[idx+3:]
	}
	return item
}

func parsePhone(content string) Item {
	memMatch := memRe.FindStringIndex(content)
	if memMatch == nil {
		return Item{ModelGroup: content, Memory: "?", Color: "?", SIM: "?"}
	}

	memory := content[memMatch[0]:memMatch[1]]
	if !strings.Contains(memory, "Tb") {
		memory += " GB"
	}

	modelPart := strings.TrimSpace(content[:memMatch[0]])
	rest := strings.TrimSpace(content[memMatch[1]:])

	sim := "Unknown"
	color := rest
	if simMatch := simRe.FindStringIndex(rest); simMatch != nil {
		sim = rest[simMatch[0]:simMatch[1]]
		color = strings.TrimSpace(rest[:simMatch[0]])
	}

	return Item{
		ModelGroup: normalizeModel(modelPart),
		Memory:     memory,
		Color:      color,
		SIM:        sim,
	}
}

// normalizeModel expands the supplier's shorthand model names.
func normalizeModel(part string) string {
	switch {
	case strings.HasPrefix(part, "17"):
		return "iPhone " + part
	case strings.HasPrefix(part, "16"):
		return "iPhone " + part
	case strings.HasPrefix(part, "Air"):
		return "iPhone 17 Air"
	default:
		return part
	}
}

func makeSKU(item Item) string {
	sku := truncate(item.ModelGroup, 5) + "-" + item.Memory + "-" + truncate(item.Color, 3)
	return strings.ToUpper(strings.ReplaceAll(sku, " ", ""))
}

// truncate cuts on rune boundaries; supplier names mix scripts.
func truncate(s string, n int) string {
	runes := []rune(s)
	if len(runes) > n {
		return string(runes[:n])
	}
	return s
}
