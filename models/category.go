package models

// ServiceCategory is the static service taxonomy (plumbing, electrical, ...).
type ServiceCategory struct {
	ID          uint     `json:"id" gorm:"primaryKey"`
	Name        string   `json:"name" gorm:"size:50;not null"`
	Description *string  `json:"description" gorm:"type:text"`
	IconURL     *string  `json:"icon_url" gorm:"size:255"`
	BaseRate    *float64 `json:"base_rate" gorm:"type:decimal(10,2)"`
	IsActive    bool     `json:"is_active" gorm:"default:true"`

	// Relationships
	Jobs   []Job         `json:"jobs,omitempty" gorm:"foreignKey:CategoryID"`
	Skills []WorkerSkill `json:"skills,omitempty" gorm:"foreignKey:CategoryID"`
}

// TableName specifies the table name for the ServiceCategory model
func (ServiceCategory) TableName() string {
	return "service_categories"
}

// ServiceCategoryRequest is the payload for creating or updating a category.
type ServiceCategoryRequest struct {
	Name        string   `json:"name" binding:"required"`
	Description *string  `json:"description"`
	IconURL     *string  `json:"icon_url"`
	BaseRate    *float64 `json:"base_rate"`
	IsActive    *bool    `json:"is_active"`
}
