package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Board is the top-level container of lists. A board without an owner is
// visible to every member.
type Board struct {
	ID          uuid.UUID  `gorm:"type:uuid;primaryKey" json:"id"`
	Name        string     `gorm:"not null" json:"name"`
	Description string     `gorm:"type:text" json:"description"`
	OwnerID     *uuid.UUID `gorm:"type:uuid;index" json:"owner_id"`
	Owner       *User      `gorm:"foreignKey:OwnerID" json:"owner,omitempty"`
	Lists       []List     `gorm:"foreignKey:BoardID" json:"lists"`
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at"`
}

func (b *Board) BeforeCreate(tx *gorm.DB) error {
	if b.ID == uuid.Nil {
		b.ID = uuid.New()
	}
	return nil
}

// List is an ordered column within a board.
type List struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	Title     string    `gorm:"not null" json:"title"`
	Position  int       `gorm:"not null;default:0" json:"position"`
	BoardID   uuid.UUID `gorm:"type:uuid;not null;index" json:"board_id"`
	TaskSeq   int       `gorm:"not null;default:0" json:"-"` // highest task position ever handed out
	Tasks     []Task    `gorm:"foreignKey:ListID" json:"tasks"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (l *List) BeforeCreate(tx *gorm.DB) error {
	if l.ID == uuid.Nil {
		l.ID = uuid.New()
	}
	return nil
}
