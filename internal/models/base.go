// internal/models/base.go
package models

// BaseModel carries the integer primary key shared by every catalog table.
// The catalog tables have no timestamp or soft-delete columns, so gorm.Model
// is not embedded here.
type BaseModel struct {
	ID uint `json:"id" gorm:"primaryKey"`
}

