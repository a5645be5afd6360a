package classify

import "strings"

// Section is a résumé section that contributes to the score.
type Section string

const (
	Objective    Section = "objective"
	Experience   Section = "experience"
	Hobbies      Section = "hobbies/interests"
	Achievements Section = "achievements"
	Projects     Section = "projects"
)

// sectionPoints is awarded for every section found.
const sectionPoints = 20

type sectionRule struct {
	section  Section
	keywords []string
	hint     string
}

var sections = []sectionRule{
	{section: Objective, keywords: []string{"objective"},
		hint: "Please add your career objective, it will give your career intention to the recruiters."},
	{section: Experience, keywords: []string{"experience"},
		hint: "Please add Experience. It will give the assurance that everything written on your resume is true and fully acknowledged by you."},
	{section: Hobbies, keywords: []string{"hobbies", "interests"},
		hint: "Please add Hobbies/Interests. It will show your personality to the recruiters."},
	{section: Achievements, keywords: []string{"achievements"},
		hint: "Please add Achievements. It will show that you are capable for the required position."},
	{section: Projects, keywords: []string{"projects"},
		hint: "Please add Projects. It will show that you have done work related to the required position."},
}

// ScoreReport is the outcome of Score. Total is a multiple of 20 in [0, 100].
type ScoreReport struct {
	Total           int       `json:"total" yaml:"total"`
	PresentSections []Section `json:"present_sections" yaml:"present_sections"`
	MissingSections []Section `json:"missing_sections" yaml:"missing_sections"`
}

// Score awards 20 points per section mentioned in text.
func Score(text string) ScoreReport {
	lower := strings.ToLower(text)

	report := ScoreReport{PresentSections: []Section{}, MissingSections: []Section{}}
	for _, rule := range sections {
		if containsAny(lower, rule.keywords) {
			report.Total += sectionPoints
			report.PresentSections = append(report.PresentSections, rule.section)
			continue
		}
		report.MissingSections = append(report.MissingSections, rule.section)
	}

	return report
}

// Hint returns advice for adding a missing section.
func Hint(s Section) string {
	for _, rule := range sections {
		if rule.section == s {
			return rule.hint
		}
	}
	return ""
}

func containsAny(s string, keywords []string) bool {
	for _, keyword := range keywords {
		if strings.Contains(s, keyword) {
			return true
		}
	}
	return false
}
