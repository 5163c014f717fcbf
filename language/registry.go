package language

// displayNames maps a BCP-47 language tag to the name shown in the UI.
var displayNames = map[string]string{
	"en-US": "English",
	"en-GB": "English",
	"hi-IN": "Hindi",
	"bn-IN": "Bengali",
	"ta-IN": "Tamil",
	"te-IN": "Telugu",
	"mr-IN": "Marathi",
	"gu-IN": "Gujarati",
	"kn-IN": "Kannada",
	"ml-IN": "Malayalam",
	"pa-IN": "Punjabi",
	"ur-IN": "Urdu",
	"es-ES": "Spanish",
	"fr-FR": "French",
	"de-DE": "German",
	"it-IT": "Italian",
	"pt-BR": "Portuguese",
	"ru-RU": "Russian",
	"ja-JP": "Japanese",
	"ko-KR": "Korean",
	"zh-CN": "Chinese",
	"ar-SA": "Arabic",
	"tr-TR": "Turkish",
	"th-TH": "Thai",
	"vi-VN": "Vietnamese",
	"id-ID": "Indonesian",
	"nl-NL": "Dutch",
	"pl-PL": "Polish",
}

// DisplayName returns the display name for a language tag, or the tag itself
// for unknown tags.
func DisplayName(tag string) string {
	if name, ok := displayNames[tag]; ok {
		return name
	}
	return tag
}
