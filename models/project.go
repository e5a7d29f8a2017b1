package models

// Project is a portfolio entry shown on the home page.
type Project struct {
	ID          uint   `json:"id" db:"id" gorm:"column:id;primaryKey;autoIncrement"`
	ProjectURL  string `json:"project_url" db:"project_url" gorm:"column:project_url;type:varchar(200);not null"`
	Title       string `json:"title" db:"title" gorm:"column:title;type:varchar(200);not null"`
	Description string `json:"description" db:"description" gorm:"column:description;type:text;not null"`
	// Image is either a bare filename (local storage) or a public URL.
	Image string `json:"image" db:"image" gorm:"column:image;type:text;not null"`
}

func (Project) TableName() string {
	return "projects"
}
