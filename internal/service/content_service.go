package service

import (
	"context"
	"mime/multipart"
	"path/filepath"
	"strings"

	"github.com/Ravshan88/online-lesson/internal/model"
	"github.com/Ravshan88/online-lesson/internal/repository"
	"github.com/Ravshan88/online-lesson/internal/util"
	"github.com/Ravshan88/online-lesson/pkg/logger"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

var videoExtensions = map[string]bool{
	".mp4": true, ".avi": true, ".mov": true, ".mkv": true,
}

// ContentService owns the learning catalog: sections, materials and
// their attachments.
type ContentService struct {
	Sections    *repository.SectionRepository
	Materials   *repository.MaterialRepository
	Attachments *repository.AttachmentRepository
	Storage     *StorageService
}

func NewContentService(
	sections *repository.SectionRepository,
	materials *repository.MaterialRepository,
	attachments *repository.AttachmentRepository,
	storage *StorageService,
) *ContentService {
	return &ContentService{
		Sections:    sections,
		Materials:   materials,
		Attachments: attachments,
		Storage:     storage,
	}
}

func (s *ContentService) ListSections() ([]repository.SectionListRow, error) {
	return s.Sections.ListWithMaterialCounts()
}

func (s *ContentService) GetSection(id uint) (*model.Section, error) {
	section, err := s.Sections.FindByID(id)
	if err == gorm.ErrRecordNotFound {
		return nil, util.ErrSectionNotFound
	}
	return section, err
}

func (s *ContentService) CreateSection(name string) (*model.Section, error) {
	section := &model.Section{Name: name}
	if err := s.Sections.Create(section); err != nil {
		return nil, err
	}
	return section, nil
}

func (s *ContentService) UpdateSection(id uint, name string) (*model.Section, error) {
	section, err := s.GetSection(id)
	if err != nil {
		return nil, err
	}
	section.Name = name
	if err := s.Sections.Update(section); err != nil {
		return nil, err
	}
	return section, nil
}

func (s *ContentService) DeleteSection(id uint) error {
	return s.Sections.Delete(id)
}

// MaterialInput carries the multipart form of a material create/update.
// VideoURL is only honored for the youtube type; file-type videos come in
// as an upload.
type MaterialInput struct {
	SectionID uint
	Title     string
	VideoType string
	VideoURL  string
	PDFFile   *multipart.FileHeader
	VideoFile *multipart.FileHeader
}

func (s *ContentService) CreateMaterial(ctx context.Context, input MaterialInput) (*model.Material, error) {
	if _, err := s.GetSection(input.SectionID); err != nil {
		return nil, err
	}

	material := &model.Material{
		SectionID: input.SectionID,
		Title:     input.Title,
	}

	switch input.VideoType {
	case string(model.VideoYoutube):
		material.VideoType = model.VideoYoutube
		material.VideoURL = input.VideoURL
	case string(model.VideoFile):
		material.VideoType = model.VideoFile
	}

	if err := s.Materials.Create(material); err != nil {
		return nil, err
	}

	if input.PDFFile != nil {
		if _, err := s.attachUpload(ctx, material, input.PDFFile); err != nil {
			return nil, err
		}
	}
	if input.VideoType == string(model.VideoFile) && input.VideoFile != nil {
		attachment, err := s.attachUpload(ctx, material, input.VideoFile)
		if err != nil {
			return nil, err
		}
		material.VideoURL = attachment.Path
		if err := s.Materials.Update(material); err != nil {
			return nil, err
		}
	}
	if input.VideoType == string(model.VideoYoutube) && input.VideoURL != "" {
		link := &model.Attachment{
			Path: input.VideoURL,
			Name: input.Title,
			Type: model.AttachmentLink,
		}
		if err := s.Attachments.Create(link); err != nil {
			return nil, err
		}
		if err := s.Materials.AddAttachment(material, link); err != nil {
			return nil, err
		}
	}

	return s.GetMaterial(material.ID)
}

// attachUpload stores one uploaded file and binds it to the material.
// Video files are probed for duration so the frontend can show it without
// loading the file.
func (s *ContentService) attachUpload(ctx context.Context, material *model.Material, header *multipart.FileHeader) (*model.Attachment, error) {
	file, err := header.Open()
	if err != nil {
		return nil, err
	}
	defer file.Close()

	filename := model.GenerateUUID() + "_" + filepath.Base(header.Filename)
	url, err := s.Storage.Provider.Upload(ctx, filename, file, header.Size, header.Header.Get("Content-Type"))
	if err != nil {
		return nil, err
	}

	attachment := &model.Attachment{
		Path: url,
		Name: header.Filename,
		Type: model.AttachmentFile,
	}

	ext := strings.ToLower(filepath.Ext(header.Filename))
	if videoExtensions[ext] {
		if local, ok := s.Storage.Provider.(*LocalStorageProvider); ok {
			info, err := util.GetVideoInfo(local.LocalPathFor(filename))
			if err != nil {
				logger.Log.Warn("video probe failed", zap.String("file", filename), zap.Error(err))
			} else {
				attachment.Duration = info.Duration
				attachment.Width = info.Width
				attachment.Height = info.Height
			}
		}
	}

	if err := s.Attachments.Create(attachment); err != nil {
		return nil, err
	}
	if err := s.Materials.AddAttachment(material, attachment); err != nil {
		return nil, err
	}
	return attachment, nil
}

func (s *ContentService) GetMaterial(id uint) (*model.Material, error) {
	material, err := s.Materials.FindByID(id)
	if err == gorm.ErrRecordNotFound {
		return nil, util.ErrMaterialNotFound
	}
	return material, err
}

func (s *ContentService) ListMaterialsBySection(sectionID uint) ([]model.Material, error) {
	return s.Materials.FindBySection(sectionID)
}

func (s *ContentService) UpdateMaterial(ctx context.Context, id uint, input MaterialInput) (*model.Material, error) {
	material, err := s.GetMaterial(id)
	if err != nil {
		return nil, err
	}

	material.SectionID = input.SectionID
	if input.Title != "" {
		material.Title = input.Title
	}

	if input.PDFFile != nil {
		if _, err := s.attachUpload(ctx, material, input.PDFFile); err != nil {
			return nil, err
		}
	}
	switch input.VideoType {
	case string(model.VideoFile):
		if input.VideoFile != nil {
			attachment, err := s.attachUpload(ctx, material, input.VideoFile)
			if err != nil {
				return nil, err
			}
			material.VideoType = model.VideoFile
			material.VideoURL = attachment.Path
		}
	case string(model.VideoYoutube):
		if input.VideoURL != "" {
			material.VideoType = model.VideoYoutube
			material.VideoURL = input.VideoURL
		}
	}

	if err := s.Materials.Update(material); err != nil {
		return nil, err
	}
	return s.GetMaterial(material.ID)
}

func (s *ContentService) DeleteMaterial(id uint) error {
	if _, err := s.GetMaterial(id); err != nil {
		return err
	}
	return s.Materials.Delete(id)
}

// MaterialPDF returns the material's PDF attachment, if any.
func (s *ContentService) MaterialPDF(id uint) (*model.Attachment, error) {
	material, err := s.GetMaterial(id)
	if err != nil {
		return nil, err
	}
	for i := range material.Attachments {
		att := &material.Attachments[i]
		if att.Type == model.AttachmentFile && strings.HasSuffix(strings.ToLower(att.Path), ".pdf") {
			return att, nil
		}
	}
	return nil, util.ErrMaterialNotFound
}
