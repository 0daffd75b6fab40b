package graphics

import (
	"time"

	"gorm.io/datatypes"
)

// GraphicJSONData is a precomputed chart dataset stored under its graphic name.
type GraphicJSONData struct {
	Name      string         `gorm:"column:name;primaryKey;size:100" json:"name"`
	Data      datatypes.JSON `gorm:"column:data;not null" json:"data"`
	CreatedAt time.Time      `gorm:"not null" json:"created_at"`
	UpdatedAt time.Time      `gorm:"not null" json:"updated_at"`
}

func (GraphicJSONData) TableName() string { return "graphic_json_data" }
