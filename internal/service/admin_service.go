package service

import (
	"errors"

	"Debt_BBS/internal/model"
	"Debt_BBS/internal/pkg"
	"Debt_BBS/internal/repository/mysql"
	"Debt_BBS/internal/repository/redis"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

type AdminService struct {
	repo    AdminStore
	session SessionStore
}

func NewAdminService() *AdminService {
	return &AdminService{
		repo:    &mysql.AdminRepository{},
		session: &redis.AdminRepository{},
	}
}

// Bootstrap 管理员表为空时创建 superadmin，幂等
func (s *AdminService) Bootstrap(username, password string) error {
	count, err := s.repo.Count()
	if err != nil {
		return err
	}
	if count > 0 {
		return nil
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	return s.repo.Create(&model.Admin{
		Username: username,
		Password: string(hash),
		Role:     "superadmin",
	})
}

func (s *AdminService) Login(username, password string) (*pkg.Pair, error) {
	admin, err := s.repo.FindByUsername(username)
	if err != nil {
		return nil, errors.New("admin not found")
	}

	if bcrypt.CompareHashAndPassword([]byte(admin.Password), []byte(password)) != nil {
		return nil, errors.New("invalid password")
	}

	token, err := pkg.GeneratePair(admin.ID, admin.Role)
	if err != nil {
		return nil, err
	}
	// token 写入 redis，登出时可以立刻吊销
	if err := s.session.AddToken(admin.ID, token.AccessToken); err != nil {
		return nil, err
	}
	return token, nil
}

func (s *AdminService) Logout(adminID uint64) error {
	return s.session.DeleteToken(adminID)
}

func (s *AdminService) Refresh(refreshToken string) (*pkg.Pair, error) {
	pair, err := pkg.Refresh(refreshToken)
	if err != nil {
		return nil, err
	}
	claims, err := pkg.ParseAccess(pair.AccessToken)
	if err != nil {
		return nil, err
	}
	if err := s.session.AddToken(claims.AdminID, pair.AccessToken); err != nil {
		return nil, err
	}
	return pair, nil
}

// ChangePassword 登录态下校验旧密码后更新
func (s *AdminService) ChangePassword(adminID uint64, oldPassword, newPassword string) error {
	admin, err := s.repo.FindByID(adminID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return errors.New("admin not found")
		}
		return err
	}

	if bcrypt.CompareHashAndPassword([]byte(admin.Password), []byte(oldPassword)) != nil {
		return errors.New("old password is incorrect")
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(newPassword), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	return s.repo.UpdatePassword(admin, string(hash))
}
