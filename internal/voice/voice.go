// Package voice discovers installed Piper voice models and resolves which
// (language, voice) pair a synthesis request should use.
//
// The layout it understands is a root directory whose immediate subdirectories
// are language keys and whose model files (".onnx" by default) are voices:
//
//	voices/
//	  English/en_US-lessac-medium.onnx
//	  Twi/model.onnx
//	  loose-voice.onnx        <- catalogued under the synthesized "Default" language
package voice

// DefaultExtension is the model file suffix recognised by Build.
const DefaultExtension = ".onnx"

// DefaultLanguageKey is the key of the language synthesized for model files
// that sit directly under the catalog root.
const DefaultLanguageKey = "Default"

// Voice is one synthesizable model file, scoped to exactly one language.
type Voice struct {
	Name        string `json:"name"`
	Path        string `json:"path"`
	DisplayName string `json:"display_name"`
	Language    string `json:"language"`
}

// Language is a catalogued language folder.
type Language struct {
	FolderName  string `json:"folder_name"`
	DisplayName string `json:"display_name"`
	Path        string `json:"path"`
	VoiceCount  int    `json:"voice_count"`
}

// LanguageSet answers whether a language key is catalogued.
type LanguageSet interface {
	Has(key string) bool
}
