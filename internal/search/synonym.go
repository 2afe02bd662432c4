package search

// Synonyms maps shorthand attendees type into the badge vocabulary used on
// profiles.
var Synonyms = map[string][]string{
	"ml":       {"machine learning"},
	"ai":       {"machine learning", "artificial intelligence", "computer vision", "nlp"},
	"xr":       {"webxr", "virtual reality", "augmented reality", "spatial"},
	"vr":       {"virtual reality", "virtual"},
	"ar":       {"augmented reality"},
	"ux":       {"user research", "user experience", "prototyping"},
	"js":       {"javascript", "three.js", "node.js"},
	"3d":       {"blender", "maya", "3d modeling"},
	"frontend": {"react", "javascript", "typescript"},
	"pm":       {"project management", "project manager"},
	"data":     {"data science", "data analysis", "data strategy"},
}

func GetSynonyms(query string) []string {
	if query == "" {
		return []string{}
	}
	if v, ok := Synonyms[query]; ok {
		out := make([]string, 0, len(v))
		out = append(out, v...)
		return out
	}
	return []string{}
}
