// Package parser turns SmartStore free-text product options into structured
// rack attributes (dimensions, color, tier, connection type).
package parser

import (
	"regexp"
	"strconv"
	"strings"

	"orderwatch/internal/models"
)

var (
	// Enumerator prefixes sellers put in front of labels: "A. 색상", "1 . 폭".
	letterPrefixRe = regexp.MustCompile(`^[A-Za-z]\s*[.\-]\s*`)
	digitPrefixRe  = regexp.MustCompile(`^\d+\s*[.\-]\s*`)

	// Load ratings like "700kg" share digits with dimensions and must be
	// removed before scanning for numbers.
	weightRe = regexp.MustCompile(`\d+\s*[kK][gG]`)
	numberRe = regexp.MustCompile(`\d+`)
)

// dimension labels; "cm" is matched case-insensitively against the label.
var sizeLabels = []string{"선반", "폭", "규격", "사이즈", "길이"}

// ParseOption parses a single option string of "/"-separated
// "<label>:<value>" segments. It never fails: unrecognized segments land in
// Extras, and an empty or sentinel input yields a result carrying only the
// original string.
func ParseOption(option string) models.ParsedOption {
	result := models.ParsedOption{Raw: option}
	if option == "" || option == models.NoOption {
		return result
	}

	for _, seg := range strings.Split(option, "/") {
		seg = stripSegmentLabel(strings.TrimSpace(seg))

		colon := strings.Index(seg, ":")
		if colon < 0 {
			continue
		}
		label := strings.TrimSpace(seg[:colon])
		value := strings.TrimSpace(seg[colon+1:])

		switch {
		case strings.Contains(label, "색상"):
			result.Color = value

		case isSizeLabel(label):
			nums := extractSizeNumbers(value)
			if conn := detectConnectionType(value); conn != "" {
				result.ConnectionHint = conn
			}
			// Positional mapping: pallet racks send "WxL", high racks
			// send "shelf(WxL) x post(H)".
			switch {
			case len(nums) >= 3:
				result.Width, result.Length, result.Height = nums[0], nums[1], nums[2]
			case len(nums) == 2:
				result.Width, result.Length = nums[0], nums[1]
			case len(nums) == 1:
				result.Width = nums[0]
			}
			result.SizeRaw = value

		case strings.Contains(label, "높이"):
			if nums := extractSizeNumbers(value); len(nums) > 0 {
				result.Height = nums[0]
			}
			if conn := detectConnectionType(value); conn != "" && result.ConnectionHint == "" {
				result.ConnectionHint = conn
			}

		case strings.Contains(label, "단수") || label == "단":
			result.Tier = value

		case strings.Contains(label, "추가"):
			result.AddonNote = value

		default:
			if result.Extras == nil {
				result.Extras = make(map[string]string)
			}
			result.Extras[label] = value
		}
	}

	return result
}

func stripSegmentLabel(seg string) string {
	seg = strings.TrimSpace(letterPrefixRe.ReplaceAllString(seg, ""))
	return strings.TrimSpace(digitPrefixRe.ReplaceAllString(seg, ""))
}

func isSizeLabel(label string) bool {
	for _, kw := range sizeLabels {
		if strings.Contains(label, kw) {
			return true
		}
	}
	return strings.Contains(strings.ToLower(label), "cm")
}

// extractSizeNumbers pulls dimension integers out of a size value, ignoring
// weight ratings like "700kg".
func extractSizeNumbers(value string) []int {
	cleaned := weightRe.ReplaceAllString(value, "")
	matches := numberRe.FindAllString(cleaned, -1)
	nums := make([]int, 0, len(matches))
	for _, m := range matches {
		if n, err := strconv.Atoi(m); err == nil {
			nums = append(nums, n)
		}
	}
	return nums
}

func detectConnectionType(value string) string {
	if strings.Contains(value, "연결") {
		return "연결형"
	}
	if strings.Contains(value, "독립") {
		return "독립형"
	}
	return ""
}
