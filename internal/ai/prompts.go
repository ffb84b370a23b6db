package ai

import _ "embed"

var (
	//go:embed prompts/resume_parse.txt
	promptResumeParse string
	//go:embed prompts/improvements.txt
	promptImprovements string
	//go:embed prompts/jd_suggestions.txt
	promptJDSuggestions string
	//go:embed prompts/industry.txt
	promptIndustry string
	//go:embed prompts/skills.txt
	promptSkills string
	//go:embed prompts/targeted.txt
	promptTargeted string
	//go:embed prompts/synonyms.txt
	promptSynonyms string
	//go:embed prompts/verb.txt
	promptVerb string
)
