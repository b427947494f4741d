package model

import (
	"time"
)

type TaskStatus string

const (
	StatusPending TaskStatus = "pending"
	StatusDoing   TaskStatus = "doing"
	StatusDone    TaskStatus = "done"
	StatusExpired TaskStatus = "expired"
)

func (s TaskStatus) Valid() bool {
	switch s {
	case StatusPending, StatusDoing, StatusDone, StatusExpired:
		return true
	}
	return false
}

type User struct {
	ID           string `gorm:"primaryKey;type:varchar(36)"`
	Username     string `gorm:"type:varchar(255);uniqueIndex;not null"`
	Email        string `gorm:"type:varchar(320);uniqueIndex;not null"`
	PasswordHash string `gorm:"not null"`
	CreatedAt    time.Time
	UpdatedAt    time.Time

	Labels []Label `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE"`
	Tasks  []Task  `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE"`
}

type Label struct {
	ID        uint   `gorm:"primaryKey;autoIncrement"`
	UserID    string `gorm:"type:varchar(36);not null;index"`
	Title     string `gorm:"type:varchar(100);not null"`
	Color     string `gorm:"type:varchar(7);not null"`
	Priority  int    `gorm:"not null"`
	CreatedAt time.Time
	UpdatedAt time.Time

	Tasks []Task `gorm:"foreignKey:LabelID;constraint:OnDelete:SET NULL"`
}

type Task struct {
	ID          uint       `gorm:"primaryKey;autoIncrement"`
	UserID      string     `gorm:"type:varchar(36);not null;index"`
	Title       string     `gorm:"type:varchar(255);not null"`
	Description *string    `gorm:"type:text"`
	Status      TaskStatus `gorm:"type:varchar(16);not null"`
	LabelID     *uint      `gorm:"index"`
	ExpiresAt   time.Time  `gorm:"not null"`
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

type TokenKind string

const (
	AccessToken  TokenKind = "access"
	RefreshToken TokenKind = "refresh"
)

// Token is a signed credential as handed to clients.
type Token struct {
	Token     string    `json:"token"`
	TokenType string    `json:"token_type"`
	ExpiresAt time.Time `json:"-"`
}

type TokenPair struct {
	AccessToken  Token
	RefreshToken Token
}

// ListParams describes one page of an owner-scoped listing.
// Column is a storage column name already checked against an allow-list.
type ListParams struct {
	Limit  int
	Offset int
	Column string
	Desc   bool
}
