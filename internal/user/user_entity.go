package user

import (
	"time"

	"github.com/google/uuid"
)

type User struct {
	ID           uuid.UUID  `gorm:"column:id;type:uuid;primaryKey"`
	Email        string     `gorm:"column:email;type:varchar(255);not null;uniqueIndex:uq_users_email"`
	PasswordHash string     `gorm:"column:password_hash;type:text;not null"`
	Role         string     `gorm:"column:role;type:varchar(20);not null;default:employee"`
	EmployeeID   *uuid.UUID `gorm:"column:employee_id;type:uuid"`
	CreatedAt    time.Time  `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt    time.Time  `gorm:"column:updated_at;autoUpdateTime"`
}

func (User) TableName() string {
	return "users"
}
