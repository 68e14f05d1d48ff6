package models

import (
	"time"

	"github.com/lib/pq"
	"gorm.io/datatypes"
)

// ResumeFile is the stored raw resume metadata. The file body lives in object
// storage; only the path is kept here.
type ResumeFile struct {
	ID            string `gorm:"column:id;type:uuid;primaryKey" json:"id"`
	CandidateName string `gorm:"column:candidate_name;type:text;index" json:"candidate_name"`
	FileName      string `gorm:"column:file_name;type:text" json:"file_name"`
	FilePath      string `gorm:"column:file_path;type:text" json:"file_path"`
	FileSize      int    `gorm:"column:file_size;type:integer" json:"file_size"`
	MimeType      string `gorm:"column:mime_type;type:text" json:"mime_type"`

	UploadAt time.Time `gorm:"column:upload_at;type:timestamptz" json:"upload_at"`
}

func (ResumeFile) TableName() string { return "resume_files" }

// CandidateProfile holds resume-derived facts supplied by the client. These
// seed RoleContext at session start.
type CandidateProfile struct {
	ID            string `gorm:"column:id;type:uuid;primaryKey" json:"id"`
	CandidateName string `gorm:"column:candidate_name;type:text;uniqueIndex" json:"candidate_name"`
	JobRole       string `gorm:"column:job_role;type:text" json:"job_role"`

	Skills pq.StringArray `gorm:"column:skills;type:text[]" json:"skills"`

	ExperienceYears int            `gorm:"column:experience_years;type:integer" json:"experience_years"`
	Experience      datatypes.JSON `gorm:"column:experience;type:jsonb" json:"experience,omitempty"`
	Summary         string         `gorm:"column:summary;type:text" json:"summary"`

	UpdatedAt time.Time `gorm:"column:updated_at;type:timestamptz" json:"updated_at"`
}

func (CandidateProfile) TableName() string { return "candidate_profiles" }
