package domain

import "time"

type User struct {
	ID            string    `gorm:"primaryKey;size:36" json:"id"`
	Email         string    `gorm:"uniqueIndex;size:191" json:"email"`
	PasswordHash  string    `gorm:"size:191" json:"-"`
	Name          string    `gorm:"size:120" json:"name"`
	Bio           string    `gorm:"size:500" json:"bio"`
	Avatar        string    `gorm:"size:255" json:"avatar"`
	IsAdmin       bool      `gorm:"not null;default:false" json:"isAdmin"`
	OAuthProvider string    `gorm:"size:32" json:"-"`
	OAuthSub      string    `gorm:"size:191" json:"-"`
	CreatedAt     time.Time `json:"createdAt"`
	UpdatedAt     time.Time `json:"-"`
}

// HasPassword 本地口令是否存在（纯联合登录账号为空）
func (u *User) HasPassword() bool { return u.PasswordHash != "" }

type UserRepository interface {
	Create(u *User) error
	FindByID(id string) (*User, error)
	FindByEmail(email string) (*User, error)
	List() ([]User, error)
	Update(u *User) error
	// DeleteCascade 同一事务内删除用户与其全部任务
	DeleteCascade(id string) error
}
