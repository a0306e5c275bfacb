// Package models - model người dùng (User) thuộc domain auth.
package models

import (
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// User định nghĩa mô hình người dùng back-office.
// Danh tính do Firebase quản lý (FirebaseUID), hồ sơ trong MongoDB chỉ lưu
// thông tin hiển thị và cờ phân quyền (isAdmin).
type User struct {
	ID            primitive.ObjectID `json:"id,omitempty" bson:"_id,omitempty"`
	Name          string             `json:"name" bson:"name"`
	Email         string             `json:"email,omitempty" bson:"email,omitempty" index:"unique,sparse"`
	FirebaseUID   string             `json:"firebaseUid" bson:"firebaseUid" index:"unique"`
	EmailVerified bool               `json:"emailVerified" bson:"emailVerified"`
	AvatarURL     string             `json:"avatarUrl" bson:"avatarUrl"`
	IsAdmin       bool               `json:"isAdmin" bson:"isAdmin"`
	IsBlock       bool               `json:"-" bson:"isBlock"`
	BlockNote     string             `json:"-" bson:"blockNote"`
	CreatedAt     int64              `json:"createdAt" bson:"createdAt"`
	UpdatedAt     int64              `json:"updatedAt" bson:"updatedAt"`
}
