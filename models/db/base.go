package dbmodels

import (
	"time"

	"personnel-admin/models"
)

type BaseModel struct {
	ID        string    `gorm:"primaryKey;default:uuid_generate_v4()" json:"id"`
	CreatedAt time.Time `gorm:"index" json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// AuthorModel автор изменения; UserID пустой для изменений без пользователя
type AuthorModel struct {
	UserID   *string `gorm:"type:varchar(36)"`
	UserName string
}

func NewAuthorModel(userID, userName string) AuthorModel {
	author := AuthorModel{UserName: userName}
	if userID != "" {
		author.UserID = &userID
	}
	if author.UserName == "" {
		author.UserName = models.SystemUser
	}
	return author
}
