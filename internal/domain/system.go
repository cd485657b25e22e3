package domain

import (
	"time"
)

// OprLog is one audit entry for a mutating request
type OprLog struct {
	ID        int64     `json:"id,string"`
	OprName   string    `gorm:"size:500;index" json:"oprName"`
	OprIp     string    `gorm:"size:64" json:"oprIp"`
	Entity    string    `gorm:"size:32;index" json:"entity"`
	EntityID  int64     `json:"entityId"`
	OptAction string    `gorm:"size:16" json:"optAction"`
	OptDesc   string    `json:"optDesc"`
	OptTime   time.Time `gorm:"index" json:"optTime"`
}

// TableName Specify table name
func (OprLog) TableName() string {
	return "opr_logs"
}
