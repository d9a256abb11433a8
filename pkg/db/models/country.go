package models

// Country is static reference data scoping payouts geographically.
// Rows are seeded at bootstrap and never mutated through the API.
type Country struct {
	ID   int64  `gorm:"primaryKey;autoIncrement" json:"id"`
	Code string `gorm:"column:code;size:2;not null;uniqueIndex" json:"code"`
	Name string `gorm:"column:name;size:100;not null" json:"name"`
}
