package parser

import "strings"

// Known rack families, matched against the front of the product name.
// Later words are SEO keywords and must not win, so order matters and the
// first matching prefix decides. Misspelled aliases fold into the canonical
// name.
var rackTypeTable = []struct {
	prefix   string
	rackType string
}{
	{"하이랙", "하이랙"},
	{"파렛트랙", "파렛트랙"},
	{"파래트랙", "파렛트랙"},
	{"파랫트랙", "파렛트랙"},
	{"중량랙", "중량랙"},
	{"경량랙", "경량랙"},
	{"스텐랙", "스텐랙"},
	{"올스텐랙", "스텐랙"},
	{"사이버랙", "스텐랙"},
	{"초스피드", "경량랙"},
	{"실버랙", "경량랙"},
}

// ExtractRackType decides the rack family from a product name.
// Unmatched names fall back to their first word, or "기타" when empty.
func ExtractRackType(productName string) string {
	name := strings.TrimSpace(productName)
	for _, entry := range rackTypeTable {
		if strings.HasPrefix(name, entry.prefix) {
			return entry.rackType
		}
	}
	if fields := strings.Fields(name); len(fields) > 0 {
		return fields[0]
	}
	return "기타"
}
