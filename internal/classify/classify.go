// Package classify predicts a professional domain and an experience tier for
// a résumé and scores how complete its sections are.
package classify

import "strings"

// Domain is a professional field.
type Domain string

const (
	DataScience  Domain = "Data Science"
	WebDev       Domain = "Web Development"
	Android      Domain = "Android Development"
	IOS          Domain = "iOS Development"
	UIUX         Domain = "UI-UX Development"
	Unclassified Domain = "Unclassified"
)

// Tier is an experience level inferred from the page count.
type Tier string

const (
	Fresher      Tier = "Fresher"
	Intermediate Tier = "Intermediate"
	Experienced  Tier = "Experienced"
	Unknown      Tier = "Unknown"
)

type domainRule struct {
	domain      Domain
	keywords    []string
	recommended []string
}

// rules are evaluated in order and the first domain with a keyword hit wins.
var rules = []domainRule{
	{
		domain: DataScience,
		keywords: []string{"tensorflow", "keras", "pytorch", "machine learning", "deep learning", "flask",
			"streamlit", "pandas", "scikit-learn", "numpy", "matplotlib", "data science"},
		recommended: []string{"Data Visualization", "Predictive Analysis", "Statistical Modeling", "Data Mining",
			"Clustering & Classification", "Data Analytics", "Quantitative Analysis", "Web Scraping",
			"ML Algorithms", "Keras", "PyTorch", "Probability", "Scikit-learn", "TensorFlow", "Flask", "Streamlit"},
	},
	{
		domain: WebDev,
		keywords: []string{"react", "django", "node js", "react js", "php", "laravel", "magento", "wordpress",
			"javascript", "angular js", "c#", "flask", "html", "css"},
		recommended: []string{"React", "Django", "Node JS", "React JS", "PHP", "Laravel", "Magento",
			"WordPress", "JavaScript", "Angular", "C#", "Flask", "SDK"},
	},
	{
		domain:      Android,
		keywords:    []string{"android", "android development", "flutter", "kotlin", "xml", "kivy", "java"},
		recommended: []string{"Android", "Flutter", "Kotlin", "XML", "Java", "Kivy", "GIT", "SDK", "SQLite"},
	},
	{
		domain:   IOS,
		keywords: []string{"ios", "ios development", "swift", "cocoa", "cocoa touch", "xcode", "objective-c"},
		recommended: []string{"iOS", "Swift", "Cocoa", "Cocoa Touch", "Xcode", "Objective-C", "SQLite", "Plist",
			"StoreKit", "UI-Kit", "AV Foundation", "Auto-Layout"},
	},
	{
		domain: UIUX,
		keywords: []string{"ux", "adobe xd", "figma", "zeplin", "balsamiq", "ui", "prototyping", "wireframes",
			"storyframes", "adobe photoshop", "photoshop", "illustrator", "after effects", "premier pro",
			"indesign", "user research", "user experience"},
		recommended: []string{"UI", "User Experience", "Adobe XD", "Figma", "Zeplin", "Balsamiq", "Prototyping",
			"Wireframes", "Storyframes", "Adobe Photoshop", "Editing", "Illustrator", "After Effects",
			"Premier Pro", "InDesign", "User Research"},
	},
}

// Prediction is the classification of one document.
type Prediction struct {
	Domain            Domain   `json:"domain" yaml:"domain"`
	RecommendedSkills []string `json:"recommended_skills" yaml:"recommended_skills"`
	ExperienceTier    Tier     `json:"experience_tier" yaml:"experience_tier"`
}

// Predict classifies text and derives the tier from pageCount.
func Predict(text string, pageCount int) Prediction {
	domain, recommended := ClassifyDomain(text)
	return Prediction{
		Domain:            domain,
		RecommendedSkills: recommended,
		ExperienceTier:    TierFor(pageCount),
	}
}

// ClassifyDomain returns the first domain, in fixed priority order, whose
// keywords occur in text, together with a copy of its recommended skills.
func ClassifyDomain(text string) (Domain, []string) {
	lower := strings.ToLower(text)
	for _, rule := range rules {
		for _, keyword := range rule.keywords {
			if strings.Contains(lower, keyword) {
				return rule.domain, append([]string(nil), rule.recommended...)
			}
		}
	}
	return Unclassified, []string{}
}

// TierFor maps a page count to an experience tier.
func TierFor(pageCount int) Tier {
	switch {
	case pageCount == 1:
		return Fresher
	case pageCount == 2:
		return Intermediate
	case pageCount >= 3:
		return Experienced
	default:
		return Unknown
	}
}
