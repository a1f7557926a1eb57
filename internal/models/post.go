// Package models contains data structures for the application's domain models.
package models

import (
	"encoding/json"
	"time"

	"gorm.io/gorm"
)

// Difficulty grades how hard an interview was.
type Difficulty string

const (
	DifficultyEasy       Difficulty = "Easy"
	DifficultyMedium     Difficulty = "Medium"
	DifficultyHard       Difficulty = "Hard"
	DifficultyMediumHard Difficulty = "Medium-Hard"
)

// Valid reports whether d is one of the known grades. The empty value means unset.
func (d Difficulty) Valid() bool {
	switch d {
	case "", DifficultyEasy, DifficultyMedium, DifficultyHard, DifficultyMediumHard:
		return true
	}
	return false
}

// Post is an interview-experience write-up.
type Post struct {
	ID               string     `gorm:"primaryKey;size:24" json:"_id"`
	Title            string     `gorm:"not null" json:"title"`
	Description      string     `gorm:"type:text;not null" json:"description"`
	Company          string     `json:"company"`
	Role             string     `json:"role"`
	InterviewType    string     `json:"interviewType"`
	QuestionsAsked   []string   `gorm:"serializer:json" json:"questionsAsked"`
	PreparationTips  string     `gorm:"type:text" json:"preparationTips"`
	PersonalInsights string     `gorm:"type:text" json:"personalInsights"`
	Difficulty       Difficulty `json:"difficulty,omitempty"`
	Experience       string     `gorm:"type:text" json:"experience"`
	NumberOfRounds   *int       `json:"numberOfRounds"`
	NumberOfProblems *int       `json:"numberOfProblems"`
	Tags             []string   `gorm:"serializer:json" json:"tags"`
	CreatedByEmail   string     `gorm:"index" json:"createdByEmail"`
	CreatedByName    string     `json:"createdByName"`
	CreatedAt        time.Time  `gorm:"index" json:"createdAt"`
	UpdatedAt        time.Time  `json:"updatedAt"`
}

// PostMutableFields lists the struct fields an update may write.
var PostMutableFields = []string{
	"Title", "Description", "Company", "Role", "InterviewType", "QuestionsAsked",
	"PreparationTips", "PersonalInsights", "Difficulty", "Experience",
	"NumberOfRounds", "NumberOfProblems", "Tags", "UpdatedAt",
}

// BeforeCreate assigns an identifier.
func (p *Post) BeforeCreate(_ *gorm.DB) error {
	if p.ID == "" {
		p.ID = NewID()
	}
	p.normalizeLists()
	return nil
}

// AfterFind keeps list fields non-nil on the wire.
func (p *Post) AfterFind(_ *gorm.DB) error {
	p.normalizeLists()
	return nil
}

func (p *Post) normalizeLists() {
	if p.QuestionsAsked == nil {
		p.QuestionsAsked = []string{}
	}
	if p.Tags == nil {
		p.Tags = []string{}
	}
}

// OwnedBy reports whether email matches the ownership stamp.
func (p *Post) OwnedBy(email string) bool {
	return p.CreatedByEmail != "" && p.CreatedByEmail == NormalizeEmail(email)
}

// PostFilter narrows post listings.
type PostFilter struct {
	CreatedByEmail string
}

// StringList decodes either a JSON array of strings or a single string.
// A single non-empty string becomes a one-element list; an empty string becomes an empty list.
type StringList []string

// UnmarshalJSON implements json.Unmarshaler.
func (l *StringList) UnmarshalJSON(data []byte) error {
	var many []string
	if err := json.Unmarshal(data, &many); err == nil {
		*l = compact(many)
		return nil
	}
	var one string
	if err := json.Unmarshal(data, &one); err != nil {
		return err
	}
	*l = compact([]string{one})
	return nil
}

func compact(in []string) []string {
	out := make([]string, 0, len(in))
	for _, s := range in {
		if s != "" {
			out = append(out, s)
		}
	}
	return out
}

// PostFields carries client-supplied post content. Nil pointers mean the field was not sent.
// Ownership stamps are deliberately absent so clients cannot set them.
type PostFields struct {
	Title            *string     `json:"title"`
	Description      *string     `json:"description"`
	Company          *string     `json:"company"`
	Role             *string     `json:"role"`
	InterviewType    *string     `json:"interviewType"`
	QuestionsAsked   *StringList `json:"questionsAsked"`
	PreparationTips  *string     `json:"preparationTips"`
	PersonalInsights *string     `json:"personalInsights"`
	Difficulty       *Difficulty `json:"difficulty"`
	Experience       *string     `json:"experience"`
	NumberOfRounds   *int        `json:"numberOfRounds"`
	NumberOfProblems *int        `json:"numberOfProblems"`
	Tags             *StringList `json:"tags"`
}

// ApplyTo writes every present field onto p. Array fields absent from f are left untouched.
func (f PostFields) ApplyTo(p *Post) {
	setString(&p.Title, f.Title)
	setString(&p.Description, f.Description)
	setString(&p.Company, f.Company)
	setString(&p.Role, f.Role)
	setString(&p.InterviewType, f.InterviewType)
	setString(&p.PreparationTips, f.PreparationTips)
	setString(&p.PersonalInsights, f.PersonalInsights)
	setString(&p.Experience, f.Experience)
	if f.Difficulty != nil {
		p.Difficulty = *f.Difficulty
	}
	if f.NumberOfRounds != nil {
		n := *f.NumberOfRounds
		p.NumberOfRounds = &n
	}
	if f.NumberOfProblems != nil {
		n := *f.NumberOfProblems
		p.NumberOfProblems = &n
	}
	if f.QuestionsAsked != nil {
		p.QuestionsAsked = append([]string{}, (*f.QuestionsAsked)...)
	}
	if f.Tags != nil {
		p.Tags = append([]string{}, (*f.Tags)...)
	}
	p.normalizeLists()
}

func setString(dst *string, v *string) {
	if v != nil {
		*dst = *v
	}
}
