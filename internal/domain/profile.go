package domain

import (
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

// Profile is the aggregate a user maintains about their professional life.
// The embedded collections (skills, social links, experience, education) live
// in JSONB columns so the whole aggregate is read and written as one row.
type Profile struct {
	ID             uuid.UUID                       `json:"id" gorm:"type:uuid;primary_key;default:gen_random_uuid()"`
	UserID         uuid.UUID                       `json:"userId" gorm:"type:uuid;uniqueIndex;not null"`
	Company        string                          `json:"company,omitempty"`
	Website        string                          `json:"website,omitempty"`
	Location       string                          `json:"location,omitempty"`
	Bio            string                          `json:"bio,omitempty"`
	Status         string                          `json:"status" gorm:"not null"`
	GithubUsername string                          `json:"githubusername,omitempty"`
	Skills         datatypes.JSONSlice[string]     `json:"skills" gorm:"type:jsonb"`
	Social         datatypes.JSONType[SocialLinks] `json:"social" gorm:"type:jsonb"`
	Experience     datatypes.JSONSlice[Experience] `json:"experience" gorm:"type:jsonb"`
	Education      datatypes.JSONSlice[Education]  `json:"education" gorm:"type:jsonb"`
	CreatedAt      time.Time                       `json:"createdAt"`
	UpdatedAt      time.Time                       `json:"updatedAt"`

	// User is filled in from the owning User record when a profile is read
	// for display. It is never persisted on the profile row.
	User *ProfileUser `json:"user,omitempty" gorm:"-"`
}

// ProfileUser is the slice of the owning user that gets embedded in profile
// responses.
type ProfileUser struct {
	ID        uuid.UUID `json:"id"`
	Name      string    `json:"name"`
	AvatarURL string    `json:"avatar"`
}

type SocialLinks struct {
	Youtube   string `json:"youtube,omitempty"`
	Twitter   string `json:"twitter,omitempty"`
	Facebook  string `json:"facebook,omitempty"`
	Linkedin  string `json:"linkedin,omitempty"`
	Instagram string `json:"instagram,omitempty"`
}

type Experience struct {
	ID          string `json:"id"`
	Title       string `json:"title"`
	Company     string `json:"company"`
	Location    string `json:"location,omitempty"`
	From        string `json:"from"`
	To          string `json:"to,omitempty"`
	Current     bool   `json:"current"`
	Description string `json:"description,omitempty"`
}

type Education struct {
	ID           string `json:"id"`
	School       string `json:"school"`
	Degree       string `json:"degree"`
	FieldOfStudy string `json:"fieldofstudy"`
	From         string `json:"from"`
	To           string `json:"to,omitempty"`
	Current      bool   `json:"current"`
	Description  string `json:"description,omitempty"`
}

// ParseSkills splits a comma separated skills string into an ordered list,
// trimming whitespace and dropping empty items.
func ParseSkills(csv string) []string {
	parts := strings.Split(csv, ",")
	skills := make([]string, 0, len(parts))
	for _, p := range parts {
		if s := strings.TrimSpace(p); s != "" {
			skills = append(skills, s)
		}
	}
	return skills
}

// AddExperience prepends an entry so the list stays newest first.
func (p *Profile) AddExperience(exp Experience) {
	p.Experience = append(datatypes.JSONSlice[Experience]{exp}, p.Experience...)
}

// RemoveExperience drops the entry with the given id, preserving the relative
// order of the rest. An unknown id leaves the list unchanged.
func (p *Profile) RemoveExperience(entryID string) {
	kept := make(datatypes.JSONSlice[Experience], 0, len(p.Experience))
	for _, e := range p.Experience {
		if e.ID != entryID {
			kept = append(kept, e)
		}
	}
	p.Experience = kept
}

// AddEducation prepends an entry so the list stays newest first.
func (p *Profile) AddEducation(edu Education) {
	p.Education = append(datatypes.JSONSlice[Education]{edu}, p.Education...)
}

// RemoveEducation drops the entry with the given id, preserving the relative
// order of the rest. An unknown id leaves the list unchanged.
func (p *Profile) RemoveEducation(entryID string) {
	kept := make(datatypes.JSONSlice[Education], 0, len(p.Education))
	for _, e := range p.Education {
		if e.ID != entryID {
			kept = append(kept, e)
		}
	}
	p.Education = kept
}
