package models

import "time"

type Prediction struct {
	ID           uint      `gorm:"column:id;primaryKey;autoIncrement" json:"id"`
	State        string    `gorm:"column:state;size:100" json:"state"`
	Location     string    `gorm:"column:location;size:100" json:"location"`
	AreaType     string    `gorm:"column:area_type;size:100" json:"area_type"`
	SO2          float64   `gorm:"column:so2" json:"so2"`
	NO2          float64   `gorm:"column:no2" json:"no2"`
	RSPM         float64   `gorm:"column:rspm" json:"rspm"`
	PredictedAQI float64   `gorm:"column:predicted_aqi" json:"predicted_aqi"`
	Category     string    `gorm:"column:category;size:50" json:"category"`
	CreatedAt    time.Time `gorm:"column:created_at;autoCreateTime" json:"created_at"`
}

func (Prediction) TableName() string { return "predictions" }
