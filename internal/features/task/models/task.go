package models

import "time"

// Kind names a task collection. Each collection lives in its own table and
// has its own priority namespace.
type Kind string

const (
	KindSocial Kind = "social"
	KindDaily  Kind = "daily"
)

func (k Kind) Table() string {
	return string(k) + "_tasks"
}

func (k Kind) Valid() bool {
	return k == KindSocial || k == KindDaily
}

// Task is a social or daily engagement task shown to bot users.
type Task struct {
	ID        string    `gorm:"primaryKey;type:varchar(36)" json:"_id"`
	Image     string    `gorm:"size:255;not null" json:"image"`
	Link      string    `gorm:"size:2048;not null" json:"link"`
	Priority  int       `gorm:"not null" json:"priority"`
	Reward    int64     `gorm:"not null" json:"reward"`
	Title     string    `gorm:"size:200;not null" json:"title"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// TaskInput is the create/update body. The console sends the image tag as img.
type TaskInput struct {
	Image    string `json:"img" binding:"required" example:"telegram"`
	Link     string `json:"link" binding:"required" example:"https://t.me/channel"`
	Priority int    `json:"priority" binding:"required" example:"1"`
	Reward   int64  `json:"reward" example:"500"`
	Title    string `json:"title" binding:"required" example:"Join our channel"`
}

// TasksResponse represents the task listing
type TasksResponse struct {
	Status string  `json:"status" example:"success"`
	Tasks  []*Task `json:"tasks"`
}

// TaskResponse wraps a single task
type TaskResponse struct {
	Status  string `json:"status" example:"success"`
	Message string `json:"message" example:"Task created successfully!"`
	Task    *Task  `json:"task"`
}
