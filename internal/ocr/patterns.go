package ocr

import (
	"regexp"
	"strings"
)

// dimensionPatterns match the measurement notations common on
// engineering drawings. Order matters: earlier patterns claim their
// matches first, so unit suffixes come before the bare-number forms.
var dimensionPatterns = []*regexp.Regexp{
	regexp.MustCompile(`(?i)\d+\.?\d*\s*mm`),              // millimeters
	regexp.MustCompile(`(?i)\d+\.?\d*\s*cm`),              // centimeters
	regexp.MustCompile(`(?i)\d+\.?\d*\s*m\b`),             // meters
	regexp.MustCompile(`\d+\.?\d*\s*°`),                   // angles
	regexp.MustCompile(`(?i)R\d+\.?\d*`),                  // radius callouts
	regexp.MustCompile(`[Øø⌀]\d+\.?\d*`),                  // diameter callouts
	regexp.MustCompile(`(?i)\d+\.?\d*\s*x\s*\d+\.?\d*`),   // cross sections
}

// technicalVocabulary is the drawing terminology scanned for in OCR
// output. Matched case-insensitively as substrings.
var technicalVocabulary = []string{
	"ISO", "DIN", "ANSI", "ASTM",
	"SCALE", "SECTION", "VIEW", "DETAIL",
	"ASSEMBLY", "PART", "REV",
	"MATERIAL", "FINISH", "TOLERANCE", "THREAD",
}

// FindDimensionTokens scans text for measurement notations.
//
// Matches are returned deduplicated in first-seen order, so repeated
// callouts (the same diameter dimensioned in two views) appear once.
func FindDimensionTokens(text string) []string {
	tokens := []string{}
	seen := make(map[string]struct{})

	for _, pattern := range dimensionPatterns {
		for _, match := range pattern.FindAllString(text, -1) {
			if _, ok := seen[match]; ok {
				continue
			}
			seen[match] = struct{}{}
			tokens = append(tokens, match)
		}
	}
	return tokens
}

// FindTechnicalTerms scans text for known drawing vocabulary.
//
// Terms are matched case-insensitively and reported in vocabulary order
// using their canonical upper-case spelling, each at most once.
func FindTechnicalTerms(text string) []string {
	upper := strings.ToUpper(text)

	terms := []string{}
	for _, term := range technicalVocabulary {
		if strings.Contains(upper, term) {
			terms = append(terms, term)
		}
	}
	return terms
}
