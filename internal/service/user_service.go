package service

import (
	"github.com/Ravshan88/online-lesson/internal/model"
	"github.com/Ravshan88/online-lesson/internal/repository"
	"github.com/Ravshan88/online-lesson/internal/util"

	"gorm.io/gorm"
)

type UserService struct {
	Repo *repository.UserRepository
}

func NewUserService(repo *repository.UserRepository) *UserService {
	return &UserService{Repo: repo}
}

func (s *UserService) GetByID(id uint) (*model.User, error) {
	user, err := s.Repo.FindByID(id)
	if err == gorm.ErrRecordNotFound {
		return nil, util.ErrUserNotFound
	}
	if err != nil {
		return nil, err
	}
	return user, nil
}

// FindByID satisfies the exam service's UserDirectory.
func (s *UserService) FindByID(id uint) (*model.User, error) {
	return s.GetByID(id)
}

type ProfileUpdate struct {
	Firstname *string `json:"firstname"`
	Lastname  *string `json:"lastname"`
	Faculty   *string `json:"faculty"`
	Direction *string `json:"direction"`
}

func (s *UserService) UpdateProfile(id uint, req ProfileUpdate) (*model.User, error) {
	user, err := s.GetByID(id)
	if err != nil {
		return nil, err
	}

	if req.Firstname != nil {
		user.Firstname = *req.Firstname
	}
	if req.Lastname != nil {
		user.Lastname = *req.Lastname
	}
	if req.Faculty != nil {
		user.Faculty = *req.Faculty
	}
	if req.Direction != nil {
		user.Direction = *req.Direction
	}

	if err := s.Repo.Update(user); err != nil {
		return nil, err
	}
	return user, nil
}
