package models

type User struct {
	ID    uint   `json:"id" gorm:"primaryKey"`
	Name  string `json:"name" gorm:"column:name;not null"`
	Email string `json:"email" gorm:"column:email;unique;not null"`
}

// TableName specifies the table name
func (User) TableName() string {
	return "users"
}
