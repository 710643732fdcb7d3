package nbtai

// styleDescriptions maps each style to the register instruction embedded in
// AI provider prompts.
var styleDescriptions = map[TranslationStyle]string{
	StyleFormal:    "Use formal, professional language appropriate for official documents.",
	StyleNeutral:   "Use a neutral, professional tone appropriate for general content.",
	StyleCasual:    "Use casual, conversational language appropriate for tutorials and guides.",
	StyleTechnical: "Use precise, technical language appropriate for software documentation. Keep established technical terms in English when that is the convention in the target language.",
	StyleAcademic:  "Use scholarly language appropriate for lecture notes and course material.",
}

// GetStyleDescription returns the prompt instruction for a style.
// Unknown styles fall back to neutral.
func GetStyleDescription(style TranslationStyle) string {
	if desc, ok := styleDescriptions[style]; ok {
		return desc
	}
	return styleDescriptions[StyleNeutral]
}
