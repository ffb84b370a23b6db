// Package dictionary holds the static vocabularies and tuning tables used by
// the analyzers. Values are injected at construction; nothing here is global
// mutable state.
package dictionary

// SkillCategory is one named group of the skill catalog.
type SkillCategory struct {
	Name   string   `yaml:"name" json:"name"`
	Skills []string `yaml:"skills" json:"skills"`
}

// Weights are the factor weights of the weighted ATS score. The composite is
// clamped to 100, so the weights need not sum to exactly one.
type Weights struct {
	Keyword        float64 `yaml:"keyword"`
	Section        float64 `yaml:"section"`
	Skills         float64 `yaml:"skills"`
	Technical      float64 `yaml:"technical"`
	Tools          float64 `yaml:"tools"`
	ActionVerbs    float64 `yaml:"actionVerbs"`
	Metrics        float64 `yaml:"metrics"`
	Certifications float64 `yaml:"certifications"`
	IndustryTerms  float64 `yaml:"industryTerms"`
}

// Sum returns the total of all weights.
func (w Weights) Sum() float64 {
	return w.Keyword + w.Section + w.Skills + w.Technical + w.Tools +
		w.ActionVerbs + w.Metrics + w.Certifications + w.IndustryTerms
}

// Dictionary is the full set of analyzer vocabularies.
type Dictionary struct {
	WeakPhrases     []string            `yaml:"weakPhrases"`
	StrongVerbs     []string            `yaml:"strongVerbs"`
	Synonyms        map[string][]string `yaml:"synonyms"`
	DefaultSynonyms []string            `yaml:"defaultSynonyms"`

	// Tokens shorter than RepeatedMinLength runes are not counted as repeats.
	RepeatedMinLength int `yaml:"repeatedMinLength"`
	RepeatedThreshold int `yaml:"repeatedThreshold"`

	SkillCatalog           []SkillCategory `yaml:"skillCatalog"`
	MissingSkillCategories []string        `yaml:"missingSkillCategories"`
	MissingSkillLimit      int             `yaml:"missingSkillLimit"`

	KeywordPatterns []string `yaml:"keywordPatterns"`
	SkillPatterns   []string `yaml:"skillPatterns"`

	LeadershipCues  []string `yaml:"leadershipCues"`
	LeadershipVerbs []string `yaml:"leadershipVerbs"`
	MetricVerbs     []string `yaml:"metricVerbs"`
	MissingKeywords int      `yaml:"missingKeywords"`

	SimpleSections     []string `yaml:"simpleSections"`
	RequiredSections   []string `yaml:"requiredSections"`
	OptionalSections   []string `yaml:"optionalSections"`
	GenericActionVerbs []string `yaml:"genericActionVerbs"`
	EducationCues      []string `yaml:"educationCues"`
	MetricPatterns     []string `yaml:"metricPatterns"`
	Weights            Weights  `yaml:"weights"`
}

// Default returns the built-in dictionary. Each call returns fresh slices and
// maps so callers may modify the result.
func Default() Dictionary {
	return Dictionary{
		WeakPhrases: []string{
			"worked", "responsible for", "helped", "involved", "did", "made", "handled",
			"participated", "contributed", "was in charge of", "assisted", "involved in",
			"part of", "some experience",
		},
		StrongVerbs: []string{
			"led", "implemented", "designed", "optimized", "developed", "architected",
			"spearheaded", "orchestrated", "pioneered", "accelerated", "transformed",
			"revolutionized", "maximized", "streamlined", "enhanced", "expanded", "scaled",
			"automated", "collaborated", "mentored", "established", "directed",
		},
		Synonyms: map[string][]string{
			"worked":      {"led", "implemented", "developed", "architected", "optimized"},
			"responsible": {"led", "managed", "directed", "oversaw", "spearheaded"},
			"helped":      {"enabled", "supported", "facilitated", "contributed", "enhanced"},
			"involved":    {"led", "coordinated", "managed", "orchestrated", "directed"},
			"created":     {"architected", "designed", "developed", "engineered", "built"},
			"team":        {"team of experts", "cross-functional team", "high-performing team"},
			"company":     {"organization", "enterprise", "business", "firm"},
			"system":      {"platform", "architecture", "infrastructure", "solution"},
			"project":     {"initiative", "program", "engagement", "deliverable"},
		},
		DefaultSynonyms: []string{"Consider using a more specific verb"},

		RepeatedMinLength: 5,
		RepeatedThreshold: 4,

		SkillCatalog: []SkillCategory{
			{Name: "frontend", Skills: []string{"React", "Vue", "Angular", "HTML", "CSS", "JavaScript", "TypeScript", "Next.js", "Svelte"}},
			{Name: "backend", Skills: []string{"Node.js", "Python", "Java", "Go", "Ruby", "PHP", "C#", "Kotlin"}},
			{Name: "databases", Skills: []string{"MySQL", "PostgreSQL", "MongoDB", "Redis", "DynamoDB", "Firebase"}},
			{Name: "devops", Skills: []string{"Docker", "Kubernetes", "CI/CD", "AWS", "Azure", "GCP", "Terraform", "Jenkins"}},
			{Name: "languages", Skills: []string{"Python", "JavaScript", "Java", "C++", "Go", "Rust", "Ruby", "PHP"}},
			{Name: "tools", Skills: []string{"Git", "Docker", "Kubernetes", "REST APIs", "GraphQL", "Linux"}},
			{Name: "soft", Skills: []string{"Communication", "Leadership", "Problem-solving", "Team collaboration", "Project management"}},
		},
		MissingSkillCategories: []string{"frontend", "backend", "devops"},

		KeywordPatterns: []string{
			`\b(python|javascript|typescript|java|c\+\+|go|rust)\b`,
			`\b(react|vue|angular|next\.js|node\.js|express)\b`,
			`\b(postgresql|mysql|mongodb|redis)\b`,
			`\b(docker|kubernetes|aws|azure|gcp)\b`,
			`\brest api\b`,
			`\bci/cd\b`,
			`\bagile\b`,
			`\bscrum\b`,
			`\bdevops\b`,
		},
		SkillPatterns: []string{
			`\b(python|javascript|typescript|java|c\+\+|go|rust|ruby|php)\b`,
			`\b(react|vue|angular|next\.js|svelte)\b`,
			`\b(node\.js|express|django|flask|fastapi)\b`,
			`\b(postgresql|mysql|mongodb|redis|dynamodb)\b`,
			`\b(docker|kubernetes|ci/cd|aws|azure|gcp|terraform)\b`,
			`\b(git|rest api|graphql|linux|unix)\b`,
		},

		LeadershipCues:  []string{"lead", "team"},
		LeadershipVerbs: []string{"led", "managed", "coordinated"},
		MetricVerbs:     []string{"increased", "reduced", "improved", "optimized", "scaled"},
		MissingKeywords: 10,

		SimpleSections:   []string{"experience", "education", "skills", "contact"},
		RequiredSections: []string{"experience", "education", "skills"},
		OptionalSections: []string{"summary", "certifications", "projects", "achievements"},
		GenericActionVerbs: []string{
			"led", "managed", "developed", "implemented", "designed",
			"created", "improved", "increased", "achieved", "delivered",
		},
		EducationCues: []string{"bachelor", "master", "certified"},
		MetricPatterns: []string{
			`\d+(?:\.\d+)?\s?%`,
			`[$€£]\s?\d[\d,]*(?:\.\d+)?\s?(?:[kmb]\b|million|billion)?`,
			`\b\d+(?:\.\d+)?x\b`,
			`\b\d{1,3}(?:,\d{3})+\b|\b\d+\+`,
		},
		Weights: Weights{
			Keyword:        0.15,
			Section:        0.15,
			Skills:         0.25,
			Technical:      0.15,
			Tools:          0.10,
			ActionVerbs:    0.10,
			Metrics:        0.10,
			Certifications: 0.05,
			IndustryTerms:  0.05,
		},
	}
}

// SynonymsFor returns the static alternatives for a word, or the default hint.
func (d Dictionary) SynonymsFor(word string) []string {
	if alts, ok := d.Synonyms[word]; ok && len(alts) > 0 {
		return append([]string(nil), alts...)
	}
	return append([]string(nil), d.DefaultSynonyms...)
}

// DefaultStrongVerb is the suggestion used when no better verb is available.
func (d Dictionary) DefaultStrongVerb() string {
	if len(d.StrongVerbs) == 0 {
		return ""
	}
	return d.StrongVerbs[0]
}
