package service

import (
	"strings"

	"devtasks/internal/domain"
	"devtasks/internal/oauth"
	"devtasks/pkg/utils"
)

const minPasswordLen = 6

type AuthService struct {
	users domain.UserRepository
	// 注册或首次联合登录命中该邮箱时自动授予管理员。
	// 等价于一条静态凭据，生产环境应改用 createadmin 显式开通。
	bootstrapAdminEmail string
	dummyHash           string
}

func NewAuthService(users domain.UserRepository, bootstrapAdminEmail string) *AuthService {
	return &AuthService{
		users:               users,
		bootstrapAdminEmail: strings.ToLower(bootstrapAdminEmail),
		// 未知邮箱也走一次 bcrypt，对齐两类失败的耗时
		dummyHash: utils.HashPassword(utils.NewID()),
	}
}

func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

func ValidEmail(email string) bool {
	at := strings.IndexByte(email, '@')
	return at > 0 && at < len(email)-1 && len(email) <= 191
}

func (s *AuthService) Register(email, password string) (*domain.User, error) {
	email = NormalizeEmail(email)
	if !ValidEmail(email) {
		return nil, domain.Invalid("valid email required")
	}
	if len(password) < minPasswordLen {
		return nil, domain.Invalid("password must be at least 6 characters")
	}
	if existing, err := s.users.FindByEmail(email); err != nil {
		return nil, err
	} else if existing != nil {
		return nil, domain.ErrDuplicateEmail
	}
	u := &domain.User{
		ID:           utils.NewID(),
		Email:        email,
		PasswordHash: utils.HashPassword(password),
		IsAdmin:      email == s.bootstrapAdminEmail,
	}
	if err := s.users.Create(u); err != nil {
		return nil, err
	}
	return u, nil
}

func (s *AuthService) Login(email, password string) (*domain.User, error) {
	u, err := s.users.FindByEmail(NormalizeEmail(email))
	if err != nil {
		return nil, err
	}
	if u == nil {
		utils.CheckPassword(password, s.dummyHash)
		return nil, domain.ErrInvalidCredentials
	}
	if !utils.CheckPassword(password, u.PasswordHash) {
		return nil, domain.ErrInvalidCredentials
	}
	return u, nil
}

// FederatedSignIn 回调侧的 upsert：按邮箱关联已有账号，
// 否则新建（同样适用 bootstrap 管理员规则）。
func (s *AuthService) FederatedSignIn(provider string, p oauth.Profile) (*domain.User, error) {
	if p.Email == "" {
		return nil, domain.ErrEmailMissing
	}
	email := NormalizeEmail(p.Email)
	u, err := s.users.FindByEmail(email)
	if err != nil {
		return nil, err
	}
	if u == nil {
		u = &domain.User{
			ID:            utils.NewID(),
			Email:         email,
			Name:          p.Name,
			OAuthProvider: provider,
			OAuthSub:      p.Subject,
			IsAdmin:       email == s.bootstrapAdminEmail,
		}
		if err := s.users.Create(u); err != nil {
			return nil, err
		}
		return u, nil
	}
	u.OAuthProvider = provider
	u.OAuthSub = p.Subject
	if err := s.users.Update(u); err != nil {
		return nil, err
	}
	return u, nil
}

type ProfileUpdate struct {
	Name            string
	Bio             string
	Avatar          string
	CurrentPassword string
	NewPassword     string
}

func (s *AuthService) UpdateProfile(userID string, in ProfileUpdate) (*domain.User, error) {
	u, err := s.users.FindByID(userID)
	if err != nil {
		return nil, err
	}
	if u == nil {
		return nil, domain.ErrNotFound
	}
	if in.NewPassword != "" {
		if len(in.NewPassword) < minPasswordLen {
			return nil, domain.Invalid("password must be at least 6 characters")
		}
		// 已有口令的账号换口令要先验旧的；纯联合登录账号首次设口令除外
		if u.HasPassword() && !utils.CheckPassword(in.CurrentPassword, u.PasswordHash) {
			return nil, domain.Invalid("current password incorrect")
		}
		u.PasswordHash = utils.HashPassword(in.NewPassword)
	}
	if len(in.Name) > 120 || len(in.Bio) > 500 || len(in.Avatar) > 255 {
		return nil, domain.Invalid("profile fields too long")
	}
	u.Name = in.Name
	u.Bio = in.Bio
	u.Avatar = in.Avatar
	if err := s.users.Update(u); err != nil {
		return nil, err
	}
	return u, nil
}

// Bootstrap 幂等开通默认管理员，createadmin 命令用
func (s *AuthService) Bootstrap(email, password string) (created bool, err error) {
	email = NormalizeEmail(email)
	existing, err := s.users.FindByEmail(email)
	if err != nil {
		return false, err
	}
	if existing != nil {
		return false, nil
	}
	u := &domain.User{
		ID:           utils.NewID(),
		Email:        email,
		PasswordHash: utils.HashPassword(password),
		IsAdmin:      true,
	}
	return true, s.users.Create(u)
}
