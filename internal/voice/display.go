package voice

import (
	"strings"
	"unicode"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// languageNames maps ISO-639-1 codes to English language names.
var languageNames = map[string]string{
	"af": "Afrikaans",
	"am": "Amharic",
	"ar": "Arabic",
	"bg": "Bulgarian",
	"bn": "Bengali",
	"ca": "Catalan",
	"cs": "Czech",
	"cy": "Welsh",
	"da": "Danish",
	"de": "German",
	"el": "Greek",
	"en": "English",
	"es": "Spanish",
	"et": "Estonian",
	"eu": "Basque",
	"fa": "Persian",
	"fi": "Finnish",
	"fr": "French",
	"ga": "Irish",
	"gu": "Gujarati",
	"ha": "Hausa",
	"he": "Hebrew",
	"hi": "Hindi",
	"hr": "Croatian",
	"hu": "Hungarian",
	"id": "Indonesian",
	"ig": "Igbo",
	"is": "Icelandic",
	"it": "Italian",
	"ja": "Japanese",
	"ka": "Georgian",
	"kk": "Kazakh",
	"ko": "Korean",
	"lb": "Luxembourgish",
	"lt": "Lithuanian",
	"lv": "Latvian",
	"ml": "Malayalam",
	"mr": "Marathi",
	"ms": "Malay",
	"ne": "Nepali",
	"nl": "Dutch",
	"no": "Norwegian",
	"pa": "Punjabi",
	"pl": "Polish",
	"pt": "Portuguese",
	"ro": "Romanian",
	"ru": "Russian",
	"sk": "Slovak",
	"sl": "Slovenian",
	"sr": "Serbian",
	"sv": "Swedish",
	"sw": "Swahili",
	"ta": "Tamil",
	"te": "Telugu",
	"th": "Thai",
	"tr": "Turkish",
	"tw": "Twi",
	"uk": "Ukrainian",
	"ur": "Urdu",
	"vi": "Vietnamese",
	"yo": "Yoruba",
	"zh": "Chinese",
	"zu": "Zulu",
}

// DisplayName turns a language code or folder name into a human readable
// name. Known codes resolve through the language table ("fr" -> "French",
// "en-us" -> "English (US)"); anything else is normalized
// ("my_custom_lang" -> "My Custom Lang"). It does not consult any catalog.
func DisplayName(raw string) string {
	if name, ok := languageNames[strings.ToLower(raw)]; ok {
		return name
	}

	if base, region, ok := strings.Cut(raw, "-"); ok && isRegion(region) {
		if name, ok := languageNames[strings.ToLower(base)]; ok {
			return name + " (" + strings.ToUpper(region) + ")"
		}
	}

	return normalize(raw)
}

// normalize replaces separators with spaces and title-cases every word.
func normalize(raw string) string {
	s := strings.NewReplacer("_", " ", "-", " ").Replace(raw)

	// Casers carry state; one per call.
	return cases.Title(language.Und).String(s)
}

func isRegion(s string) bool {
	if s == "" {
		return false
	}

	for _, r := range s {
		if r > unicode.MaxASCII || !(unicode.IsLetter(r) || unicode.IsDigit(r)) {
			return false
		}
	}

	return true
}
