package model

// Course 课程表 — 对应 courses（本模块只读，仅消费 id 与 name）
type Course struct {
	ID   int64  `gorm:"primaryKey"                 json:"id"`
	Name string `gorm:"type:varchar(255);not null" json:"name"`
}

// TableName 指定表名
func (Course) TableName() string { return "courses" }
