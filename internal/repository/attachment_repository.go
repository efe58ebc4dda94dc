package repository

import (
	"github.com/Ravshan88/online-lesson/internal/model"

	"gorm.io/gorm"
)

type AttachmentRepository struct {
	DB *gorm.DB
}

func NewAttachmentRepository(db *gorm.DB) *AttachmentRepository {
	return &AttachmentRepository{DB: db}
}

func (r *AttachmentRepository) Create(attachment *model.Attachment) error {
	return r.DB.Create(attachment).Error
}

func (r *AttachmentRepository) FindByID(id string) (*model.Attachment, error) {
	var attachment model.Attachment
	err := r.DB.First(&attachment, "id = ?", id).Error
	return &attachment, err
}

func (r *AttachmentRepository) Update(attachment *model.Attachment) error {
	return r.DB.Save(attachment).Error
}

func (r *AttachmentRepository) Delete(id string) error {
	return r.DB.Delete(&model.Attachment{}, "id = ?", id).Error
}
