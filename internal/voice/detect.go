package voice

import "unicode"

// Script names returned by Detect. They double as the language folder names
// a catalog must contain for the detection to be used.
const (
	ScriptChinese  = "Chinese"
	ScriptJapanese = "Japanese"
	ScriptKorean   = "Korean"
	ScriptRussian  = "Russian"
	ScriptArabic   = "Arabic"
	ScriptThai     = "Thai"
	ScriptEnglish  = "English"
)

// Detection thresholds. Japanese text mixes Han ideographs with kana, so kana
// only needs to make up a tenth of the text.
const (
	scriptThreshold = 0.30
	kanaThreshold   = 0.10
)

type runeRange struct {
	lo, hi rune
}

func (rr runeRange) contains(r rune) bool {
	return r >= rr.lo && r <= rr.hi
}

var (
	latinRanges    = []runeRange{{'A', 'Z'}, {'a', 'z'}, {0x00C0, 0x00FF}}
	cyrillicRanges = []runeRange{{0x0400, 0x04FF}}
	chineseRanges  = []runeRange{{0x4E00, 0x9FFF}}
	japaneseRanges = []runeRange{{0x3040, 0x309F}, {0x30A0, 0x30FF}}
	koreanRanges   = []runeRange{{0xAC00, 0xD7AF}}
	arabicRanges   = []runeRange{{0x0600, 0x06FF}}
	thaiRanges     = []runeRange{{0x0E00, 0x0E7F}}
)

func inRanges(r rune, ranges []runeRange) bool {
	for _, rr := range ranges {
		if rr.contains(r) {
			return true
		}
	}

	return false
}

// ScriptStats holds per-script character counts of a text. Counts are
// independent: a character may count toward more than one script.
type ScriptStats struct {
	Total    int `json:"total"`
	Latin    int `json:"latin"`
	Cyrillic int `json:"cyrillic"`
	Chinese  int `json:"chinese"`
	Japanese int `json:"japanese"`
	Korean   int `json:"korean"`
	Arabic   int `json:"arabic"`
	Thai     int `json:"thai"`
}

// Analyze counts the script classes of text, ignoring whitespace.
func Analyze(text string) ScriptStats {
	var s ScriptStats
	for _, r := range text {
		if unicode.IsSpace(r) {
			continue
		}

		s.Total++
		if inRanges(r, latinRanges) {
			s.Latin++
		}
		if inRanges(r, cyrillicRanges) {
			s.Cyrillic++
		}
		if inRanges(r, chineseRanges) {
			s.Chinese++
		}
		if inRanges(r, japaneseRanges) {
			s.Japanese++
		}
		if inRanges(r, koreanRanges) {
			s.Korean++
		}
		if inRanges(r, arabicRanges) {
			s.Arabic++
		}
		if inRanges(r, thaiRanges) {
			s.Thai++
		}
	}

	return s
}

// Ratio returns count/Total, or 0 for an empty text.
func (s ScriptStats) Ratio(count int) float64 {
	if s.Total == 0 {
		return 0
	}

	return float64(count) / float64(s.Total)
}

// Script returns the dominant script name in priority order, or "" when no
// script passes its threshold.
func (s ScriptStats) Script() string {
	if s.Total == 0 {
		return ""
	}

	checks := []struct {
		count     int
		threshold float64
		name      string
	}{
		{s.Chinese, scriptThreshold, ScriptChinese},
		{s.Japanese, kanaThreshold, ScriptJapanese},
		{s.Korean, scriptThreshold, ScriptKorean},
		{s.Cyrillic, scriptThreshold, ScriptRussian},
		{s.Arabic, scriptThreshold, ScriptArabic},
		{s.Thai, scriptThreshold, ScriptThai},
		{s.Latin, scriptThreshold, ScriptEnglish},
	}

	for _, c := range checks {
		if s.Ratio(c.count) > c.threshold {
			return c.name
		}
	}

	return ""
}

// Detect guesses which catalogued language text is written in from Unicode
// script frequencies. The guess is returned only when available contains it;
// otherwise, and for blank text, fallback is returned.
func Detect(text string, available LanguageSet, fallback string) string {
	script := Analyze(text).Script()
	if script != "" && available != nil && available.Has(script) {
		return script
	}

	return fallback
}
