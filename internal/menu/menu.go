// internal/menu/menu.go

// Package menu loads the restaurant menu from the staff workbook and exposes
// a case-folded lookup for the restaurant agent.
package menu

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/xuri/excelize/v2"

	"github.com/chouhanpreeti302-png/Agentic-AI-System-for-a-Resort/internal/common/logger"
)

// Item is a single menu entry. Name is the unique, case-insensitive key.
type Item struct {
	Name        string  `json:"name"`
	Price       float64 `json:"price"`
	Category    string  `json:"category"`
	Description string  `json:"description,omitempty"`
}

// Fallback covers common dishes when the workbook is missing or fails to
// parse, so extraction keeps working offline.
var Fallback = []Item{
	{Name: "Margherita Pizza", Price: 12.0, Category: "mains"},
	{Name: "Grilled Salmon", Price: 18.5, Category: "mains"},
	{Name: "Caesar Salad", Price: 9.5, Category: "salads"},
	{Name: "Club Sandwich", Price: 10.0, Category: "mains"},
	{Name: "French Fries", Price: 4.5, Category: "sides"},
	{Name: "Tomato Soup", Price: 6.0, Category: "soups"},
	{Name: "Chocolate Cake", Price: 7.0, Category: "desserts"},
	{Name: "Fresh Juice", Price: 5.0, Category: "drinks"},
	{Name: "Coffee", Price: 3.5, Category: "drinks"},
}

var priceRe = regexp.MustCompile(`[0-9]+(?:\.[0-9]+)?`)

// parsePrice extracts the first numeric run from a cell. Unparseable cells
// price at 0 rather than dropping the row.
func parsePrice(raw string) float64 {
	match := priceRe.FindString(raw)
	if match == "" {
		return 0
	}
	val, err := strconv.ParseFloat(match, 64)
	if err != nil {
		return 0
	}
	return val
}

// Load reads every sheet of the workbook at path. Sheet names become
// categories; column A is the dish name, B the description, C the price. The
// first row of each sheet is assumed to be a header. Any failure returns the
// fallback menu.
func Load(path string, log logger.Logger) []Item {
	items, err := loadWorkbook(path)
	if err != nil || len(items) == 0 {
		log.Warn("menu workbook unavailable, using fallback menu", map[string]interface{}{
			"path":  path,
			"error": errString(err),
		})
		return Fallback
	}
	log.Info("menu loaded", map[string]interface{}{
		"path":  path,
		"items": len(items),
	})
	return items
}

func loadWorkbook(path string) ([]Item, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	var items []Item
	for _, sheet := range f.GetSheetList() {
		rows, err := f.GetRows(sheet)
		if err != nil {
			continue
		}
		for idx, row := range rows {
			if idx == 0 || len(row) == 0 {
				continue
			}
			name := strings.TrimSpace(cell(row, 0))
			if name == "" {
				continue
			}
			items = append(items, Item{
				Name:        name,
				Description: strings.TrimSpace(cell(row, 1)),
				Price:       parsePrice(cell(row, 2)),
				Category:    sheet,
			})
		}
	}
	return items, nil
}

func cell(row []string, i int) string {
	if i < len(row) {
		return row[i]
	}
	return ""
}

func errString(err error) string {
	if err == nil {
		return "empty workbook"
	}
	return err.Error()
}

// NewLookup merges the primary menu with the fallback list, keyed by
// case-folded name. Primary entries win on collision.
func NewLookup(primary []Item) map[string]Item {
	lookup := make(map[string]Item, len(primary)+len(Fallback))
	for _, item := range primary {
		key := strings.ToLower(item.Name)
		if key == "" {
			continue
		}
		if _, ok := lookup[key]; !ok {
			lookup[key] = item
		}
	}
	for _, item := range Fallback {
		key := strings.ToLower(item.Name)
		if _, ok := lookup[key]; !ok {
			lookup[key] = item
		}
	}
	return lookup
}
