package services

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/foxxcyber/breakfast-club/internal/models"
)

// LeftoverSheetParser turns OCR text from a stock-take sheet into leftover
// quantities. Each useful line names one ingredient and one quantity, in
// either order, optionally with a unit.
type LeftoverSheetParser struct {
	nameFirstPattern *regexp.Regexp
	qtyFirstPattern  *regexp.Regexp
	excludePatterns  []*regexp.Regexp
	decimalComma     *regexp.Regexp
}

const unitAlternatives = `kg|kilos?|kilograms?|g|gm|grams?|l|lt|litres?|liters?|ml|pcs|pieces?|units?|loaves|loaf|eggs?|packs?|tubs?|bottles?`

var fractionReplacer = strings.NewReplacer("¼", ".25", "½", ".5", "¾", ".75")

// NewLeftoverSheetParser creates a new stock-take sheet parser
func NewLeftoverSheetParser() *LeftoverSheetParser {
	return &LeftoverSheetParser{
		// Pattern: NAME [:|=|-|x] QTY [UNIT]  e.g. "Milk 2.5 L", "eggs x 6", "bread: 4"
		nameFirstPattern: regexp.MustCompile(`^([a-z][a-z' _-]*?)\s*(?:[:=-]|x)?\s*(\d+(?:\.\d+)?|\.\d+)\s*(` + unitAlternatives + `)?\.?$`),
		// Pattern: QTY [UNIT] [x] [of] NAME  e.g. "500 g butter", "6 eggs"
		qtyFirstPattern: regexp.MustCompile(`^(\d+(?:\.\d+)?|\.\d+)\s*(?:(` + unitAlternatives + `)\b)?\s*(?:x\s+)?(?:of\s+)?([a-z][a-z' _-]*)$`),
		excludePatterns: []*regexp.Regexp{
			regexp.MustCompile(`(?i)^\s*(STOCK\s*-?\s*TAKE|LEFTOVERS?|DATE|WEEK|SIGNED|CHECKED\s*BY|KITCHEN|BREAKFAST\s*CLUB|ITEM|QTY)\b`),
			regexp.MustCompile(`^\s*[-=*_]+\s*$`),
		},
		decimalComma: regexp.MustCompile(`(\d),(\d)`),
	}
}

// Parse extracts leftover lines from OCR text. Lines that look like data but
// do not resolve to a planned ingredient with a compatible unit are
// returned as unmatched.
func (p *LeftoverSheetParser) Parse(ocrText string) ([]models.ParsedLeftoverLine, []string) {
	var parsed []models.ParsedLeftoverLine
	var unmatched []string

	lineNumber := 0
	for _, raw := range strings.Split(ocrText, "\n") {
		line := p.cleanLine(raw)
		if line == "" || p.shouldExclude(line) {
			continue
		}
		lineNumber++

		entry, ok := p.parseLine(line, lineNumber)
		if !ok {
			if strings.ContainsAny(line, "0123456789") {
				unmatched = append(unmatched, line)
			}
			continue
		}
		parsed = append(parsed, entry)
	}

	return parsed, unmatched
}

func (p *LeftoverSheetParser) parseLine(line string, lineNumber int) (models.ParsedLeftoverLine, bool) {
	normalized := strings.ToLower(line)
	normalized = p.decimalComma.ReplaceAllString(normalized, "$1.$2")
	normalized = fractionReplacer.Replace(normalized)

	var name, qtyStr, unit string
	if m := p.nameFirstPattern.FindStringSubmatch(normalized); m != nil {
		name, qtyStr, unit = m[1], m[2], m[3]
	} else if m := p.qtyFirstPattern.FindStringSubmatch(normalized); m != nil {
		qtyStr, unit, name = m[1], m[2], m[3]
	} else {
		return models.ParsedLeftoverLine{}, false
	}

	key, ok := MatchIngredient(name)
	if !ok {
		return models.ParsedLeftoverLine{}, false
	}

	qty, err := strconv.ParseFloat(qtyStr, 64)
	if err != nil || qty < 0 {
		return models.ParsedLeftoverLine{}, false
	}

	qty, ok = convertToIngredientUnit(qty, unit, models.IngredientUnits[key])
	if !ok {
		return models.ParsedLeftoverLine{}, false
	}

	return models.ParsedLeftoverLine{
		LineNumber:    lineNumber,
		RawText:       line,
		IngredientKey: key,
		Quantity:      qty,
	}, true
}

type measure int

const (
	measureNone measure = iota
	measureMass
	measureVolume
	measureCount
)

// parsedUnitScale returns the measure of a written unit and its factor to
// the base unit of that measure (kilograms, liters, or one item).
func parsedUnitScale(unit string) (measure, float64) {
	switch unit {
	case "":
		return measureNone, 1
	case "kg", "kilo", "kilos", "kilogram", "kilograms":
		return measureMass, 1
	case "g", "gm", "gram", "grams":
		return measureMass, 0.001
	case "l", "lt", "litre", "litres", "liter", "liters":
		return measureVolume, 1
	case "ml":
		return measureVolume, 0.001
	default:
		return measureCount, 1
	}
}

func targetUnitScale(u models.Unit) (measure, float64) {
	switch u {
	case models.UnitKilograms:
		return measureMass, 1
	case models.UnitGrams:
		return measureMass, 0.001
	case models.UnitLiters:
		return measureVolume, 1
	default:
		return measureCount, 1
	}
}

// convertToIngredientUnit rescales qty into the ingredient's own unit. A
// missing unit is taken as already in the ingredient's unit.
func convertToIngredientUnit(qty float64, written string, target models.Unit) (float64, bool) {
	from, fromScale := parsedUnitScale(written)
	if from == measureNone {
		return qty, true
	}

	to, toScale := targetUnitScale(target)
	if from != to {
		return 0, false
	}

	return qty * (fromScale / toScale), true
}

// shouldExclude checks if a line is a header or separator
func (p *LeftoverSheetParser) shouldExclude(line string) bool {
	for _, pattern := range p.excludePatterns {
		if pattern.MatchString(line) {
			return true
		}
	}
	return false
}

// cleanLine cleans up a line for parsing
func (p *LeftoverSheetParser) cleanLine(line string) string {
	line = strings.Join(strings.Fields(line), " ")

	// Remove common OCR artifacts
	line = strings.ReplaceAll(line, "|", "")
	line = strings.ReplaceAll(line, "\\", "")

	return strings.TrimSpace(line)
}
