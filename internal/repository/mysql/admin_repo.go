package mysql

import (
	"Debt_BBS/internal/model"
)

type AdminRepository struct{}

func (r *AdminRepository) Create(admin *model.Admin) error {
	return DB.Create(admin).Error
}

func (r *AdminRepository) FindByUsername(username string) (*model.Admin, error) {
	var admin model.Admin
	err := DB.Where("username = ?", username).First(&admin).Error
	return &admin, err
}

func (r *AdminRepository) FindByID(id uint64) (*model.Admin, error) {
	var admin model.Admin
	err := DB.First(&admin, id).Error
	return &admin, err
}

func (r *AdminRepository) UpdatePassword(admin *model.Admin, newPassword string) error {
	return DB.Model(admin).Update("password", newPassword).Error
}

func (r *AdminRepository) Count() (int64, error) {
	var count int64
	err := DB.Model(&model.Admin{}).Count(&count).Error
	return count, err
}
