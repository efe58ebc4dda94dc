package model

type AttachmentType string

const (
	AttachmentFile AttachmentType = "file"
	AttachmentLink AttachmentType = "link"
)

// swagger:model Attachment
type Attachment struct {
	UUIDBase
	Path string         `gorm:"type:text;not null" json:"path"`
	Name string         `gorm:"size:255;not null" json:"name"`
	Type AttachmentType `gorm:"type:enum('file','link');not null" json:"type"`

	// Video metadata filled in by the ffmpeg probe on upload.
	Duration float64 `gorm:"default:0" json:"duration,omitempty"`
	Width    int     `gorm:"default:0" json:"width,omitempty"`
	Height   int     `gorm:"default:0" json:"height,omitempty"`

	Materials []Material `gorm:"many2many:material_attachments" json:"-"`
}

func (Attachment) TableName() string {
	return "attachments"
}
