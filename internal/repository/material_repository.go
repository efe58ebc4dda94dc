package repository

import (
	"github.com/Ravshan88/online-lesson/internal/model"

	"gorm.io/gorm"
)

type MaterialRepository struct {
	DB *gorm.DB
}

func NewMaterialRepository(db *gorm.DB) *MaterialRepository {
	return &MaterialRepository{DB: db}
}

func (r *MaterialRepository) Create(material *model.Material) error {
	return r.DB.Create(material).Error
}

func (r *MaterialRepository) FindByID(id uint) (*model.Material, error) {
	var material model.Material
	err := r.DB.Preload("Attachments").First(&material, id).Error
	return &material, err
}

func (r *MaterialRepository) FindBySection(sectionID uint) ([]model.Material, error) {
	var materials []model.Material
	err := r.DB.Preload("Attachments").
		Where("section_id = ?", sectionID).
		Order("id").
		Find(&materials).Error
	return materials, err
}

func (r *MaterialRepository) Update(material *model.Material) error {
	return r.DB.Save(material).Error
}

func (r *MaterialRepository) Delete(id uint) error {
	return r.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("material_id = ?", id).Delete(&model.Question{}).Error; err != nil {
			return err
		}
		return tx.Delete(&model.Material{}, id).Error
	})
}

func (r *MaterialRepository) AddAttachment(material *model.Material, attachment *model.Attachment) error {
	return r.DB.Model(material).Association("Attachments").Append(attachment)
}

func (r *MaterialRepository) RemoveAttachment(material *model.Material, attachment *model.Attachment) error {
	return r.DB.Model(material).Association("Attachments").Delete(attachment)
}
