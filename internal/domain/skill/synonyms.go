package skill

// synonymGroups lists spellings that name the same real-world skill. The
// first entry of each group is the preferred key; consolidate treats two
// canonical skills whose normalized names land in the same group as
// duplicates.
var synonymGroups = [][]string{
	{"javascript", "js", "ecmascript"},
	{"typescript", "ts"},
	{"go", "golang"},
	{"python", "py"},
	{"c#", "csharp", "c sharp"},
	{"kubernetes", "k8s"},
	{"postgresql", "postgres"},
	{"node.js", "node", "nodejs"},
	{"react", "reactjs", "react.js"},
	{"vue", "vuejs", "vue.js"},
	{"angular", "angularjs"},
	{"amazon web services", "aws"},
	{"google cloud platform", "gcp", "google cloud"},
	{"microsoft azure", "azure"},
	{"continuous integration", "ci/cd", "cicd"},
	{"machine learning", "ml"},
}

var synonymKeys = buildSynonymKeys()

func buildSynonymKeys() map[string]string {
	out := make(map[string]string)
	for _, group := range synonymGroups {
		key := group[0]
		for _, name := range group {
			out[name] = key
		}
	}
	return out
}

// SynonymKey maps a normalized name to its synonym-group key. Names outside
// any known group map to themselves.
func SynonymKey(normalized string) string {
	if key, ok := synonymKeys[normalized]; ok {
		return key
	}
	return normalized
}
