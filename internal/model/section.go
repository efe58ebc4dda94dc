package model

// swagger:model Section
type Section struct {
	BaseModel
	Name string `gorm:"size:50;unique;not null" json:"name"`

	Materials []Material `gorm:"foreignKey:SectionID" json:"materials,omitempty"`
}

func (Section) TableName() string {
	return "sections"
}
