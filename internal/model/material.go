package model

type VideoType string

const (
	VideoYoutube VideoType = "youtube"
	VideoFile    VideoType = "file"
)

// swagger:model Material
type Material struct {
	BaseModel
	SectionID uint      `gorm:"index;not null" json:"sectionId"`
	Title     string    `gorm:"size:255;unique;not null" json:"title"`
	VideoType VideoType `gorm:"type:enum('youtube','file')" json:"videoType"`
	VideoURL  string    `gorm:"size:512" json:"videoUrl"`

	Attachments []Attachment `gorm:"many2many:material_attachments" json:"attachments,omitempty"`
	Questions   []Question   `gorm:"foreignKey:MaterialID" json:"questions,omitempty"`
}

func (Material) TableName() string {
	return "materials"
}
