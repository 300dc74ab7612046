package models

import (
	"strings"
	"time"
)

// Profile is the public developer profile owned by a single user. Experience
// and education entries are embedded in the profile document, each carrying
// its own store-assigned id.
type Profile struct {
	ID             string       `json:"id" bson:"_id"`
	UserID         string       `json:"user" bson:"user_id"`
	Company        string       `json:"company,omitempty" bson:"company,omitempty"`
	Website        string       `json:"website,omitempty" bson:"website,omitempty"`
	Location       string       `json:"location,omitempty" bson:"location,omitempty"`
	Status         string       `json:"status" bson:"status"`
	Skills         []string     `json:"skills" bson:"skills"`
	Bio            string       `json:"bio,omitempty" bson:"bio,omitempty"`
	GithubUserName string       `json:"githubusername,omitempty" bson:"github_username,omitempty"`
	Experience     []Experience `json:"experience" bson:"experience"`
	Education      []Education  `json:"education" bson:"education"`
	Social         SocialLinks  `json:"social" bson:"social"`
	CreatedAt      time.Time    `json:"date" bson:"created_at"`
}

type Experience struct {
	ID          string     `json:"id" bson:"id"`
	Title       string     `json:"title" bson:"title"`
	Company     string     `json:"company" bson:"company"`
	Location    string     `json:"location,omitempty" bson:"location,omitempty"`
	From        time.Time  `json:"from" bson:"from"`
	To          *time.Time `json:"to,omitempty" bson:"to,omitempty"`
	Current     bool       `json:"current" bson:"current"`
	Description string     `json:"description,omitempty" bson:"description,omitempty"`
}

type Education struct {
	ID           string     `json:"id" bson:"id"`
	School       string     `json:"school" bson:"school"`
	Degree       string     `json:"degree" bson:"degree"`
	FieldOfStudy string     `json:"fieldofstudy" bson:"field_of_study"`
	From         time.Time  `json:"from" bson:"from"`
	To           *time.Time `json:"to,omitempty" bson:"to,omitempty"`
	Current      bool       `json:"current" bson:"current"`
	Description  string     `json:"description,omitempty" bson:"description,omitempty"`
}

type SocialLinks struct {
	Youtube   string `json:"youtube,omitempty" bson:"youtube,omitempty"`
	Twitter   string `json:"twitter,omitempty" bson:"twitter,omitempty"`
	Facebook  string `json:"facebook,omitempty" bson:"facebook,omitempty"`
	Linkedin  string `json:"linkedin,omitempty" bson:"linkedin,omitempty"`
	Instagram string `json:"instagram,omitempty" bson:"instagram,omitempty"`
}

// UpsertProfileRequest carries the create-or-update body. Skills arrive as a
// single comma-separated string and are split server-side.
type UpsertProfileRequest struct {
	Company        string `json:"company"`
	Website        string `json:"website"`
	Location       string `json:"location"`
	Status         string `json:"status"`
	Skills         string `json:"skills"`
	Bio            string `json:"bio"`
	GithubUserName string `json:"githubusername"`
	Youtube        string `json:"youtube"`
	Twitter        string `json:"twitter"`
	Facebook       string `json:"facebook"`
	Linkedin       string `json:"linkedin"`
	Instagram      string `json:"instagram"`
}

func (r *UpsertProfileRequest) Validate() map[string]string {
	errors := make(map[string]string)

	if strings.TrimSpace(r.Status) == "" {
		errors["status"] = "Status is required"
	}
	if strings.TrimSpace(r.Skills) == "" {
		errors["skills"] = "Skills is required"
	}

	return errors
}

// SkillList splits the comma-separated skills string, trimming whitespace and
// dropping empty entries.
func (r *UpsertProfileRequest) SkillList() []string {
	parts := strings.Split(r.Skills, ",")
	skills := make([]string, 0, len(parts))
	for _, p := range parts {
		if s := strings.TrimSpace(p); s != "" {
			skills = append(skills, s)
		}
	}
	return skills
}

type ExperienceRequest struct {
	Title       string     `json:"title"`
	Company     string     `json:"company"`
	Location    string     `json:"location"`
	From        time.Time  `json:"from"`
	To          *time.Time `json:"to"`
	Current     bool       `json:"current"`
	Description string     `json:"description"`
}

func (r *ExperienceRequest) Validate() map[string]string {
	errors := make(map[string]string)

	if strings.TrimSpace(r.Title) == "" {
		errors["title"] = "Title is required"
	}
	if strings.TrimSpace(r.Company) == "" {
		errors["company"] = "Company is required"
	}
	if r.From.IsZero() {
		errors["from"] = "From date is required"
	}

	return errors
}

type EducationRequest struct {
	School       string     `json:"school"`
	Degree       string     `json:"degree"`
	FieldOfStudy string     `json:"fieldofstudy"`
	From         time.Time  `json:"from"`
	To           *time.Time `json:"to"`
	Current      bool       `json:"current"`
	Description  string     `json:"description"`
}

func (r *EducationRequest) Validate() map[string]string {
	errors := make(map[string]string)

	if strings.TrimSpace(r.School) == "" {
		errors["school"] = "School is required"
	}
	if strings.TrimSpace(r.Degree) == "" {
		errors["degree"] = "Degree is required"
	}
	if strings.TrimSpace(r.FieldOfStudy) == "" {
		errors["fieldofstudy"] = "Field of study is required"
	}
	if r.From.IsZero() {
		errors["from"] = "From date is required"
	}

	return errors
}
