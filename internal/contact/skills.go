package contact

import (
	"sort"
	"strings"
)

// DefaultSkills is the skill vocabulary matched by Skills.
var DefaultSkills = []string{
	"Python", "Java", "C++", "JavaScript", "HTML", "CSS", "Machine Learning", "Deep Learning",
	"SQL", "Django", "React", "Node.js", "Flask", "AWS", "Data Analysis", "Streamlit", "Pandas",
	"TensorFlow", "Keras", "PyTorch", "Android", "Kotlin", "Flutter", "Swift", "iOS", "Figma", "Adobe XD",
}

// Vocabulary returns DefaultSkills followed by the extra entries not already
// present (compared case-insensitively). The result is meant to be built once
// and then only read.
func Vocabulary(extra ...string) []string {
	vocab := make([]string, 0, len(DefaultSkills)+len(extra))
	seen := make(map[string]struct{}, cap(vocab))
	for _, skill := range append(append([]string{}, DefaultSkills...), extra...) {
		skill = strings.TrimSpace(skill)
		key := strings.ToLower(skill)
		if skill == "" {
			continue
		}
		if _, ok := seen[key]; ok {
			continue
		}
		seen[key] = struct{}{}
		vocab = append(vocab, skill)
	}
	return vocab
}

// Skills returns the DefaultSkills entries mentioned in text.
func Skills(text string) []string {
	return SkillsFrom(text, DefaultSkills)
}

// SkillsFrom returns the vocabulary entries that occur in text as
// case-insensitive substrings, deduplicated and sorted.
func SkillsFrom(text string, vocab []string) []string {
	lower := strings.ToLower(text)

	found := make([]string, 0)
	seen := make(map[string]struct{})
	for _, skill := range vocab {
		if skill == "" || !strings.Contains(lower, strings.ToLower(skill)) {
			continue
		}
		if _, ok := seen[skill]; ok {
			continue
		}
		seen[skill] = struct{}{}
		found = append(found, skill)
	}

	sort.Strings(found)
	return found
}
