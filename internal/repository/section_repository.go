package repository

import (
	"github.com/Ravshan88/online-lesson/internal/model"

	"gorm.io/gorm"
)

type SectionRepository struct {
	DB *gorm.DB
}

func NewSectionRepository(db *gorm.DB) *SectionRepository {
	return &SectionRepository{DB: db}
}

// SectionListRow is a section with its material count, as shown in the
// course outline.
type SectionListRow struct {
	ID        uint   `json:"id"`
	Name      string `json:"name"`
	Materials int    `json:"materials"`
}

func (r *SectionRepository) ListWithMaterialCounts() ([]SectionListRow, error) {
	var rows []SectionListRow
	err := r.DB.Table("sections s").
		Select("s.id, s.name, COUNT(m.id) as materials").
		Joins("LEFT JOIN materials m ON m.section_id = s.id AND m.deleted_at IS NULL").
		Where("s.deleted_at IS NULL").
		Group("s.id").
		Order("s.id").
		Scan(&rows).Error
	return rows, err
}

func (r *SectionRepository) FindByID(id uint) (*model.Section, error) {
	var section model.Section
	err := r.DB.First(&section, id).Error
	return &section, err
}

func (r *SectionRepository) Create(section *model.Section) error {
	return r.DB.Create(section).Error
}

func (r *SectionRepository) Update(section *model.Section) error {
	return r.DB.Save(section).Error
}

func (r *SectionRepository) Delete(id uint) error {
	return r.DB.Delete(&model.Section{}, id).Error
}
