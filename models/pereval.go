package models

import "time"

type PerevalStatus string

const (
	StatusNew      PerevalStatus = "new"
	StatusPending  PerevalStatus = "pending"
	StatusAccepted PerevalStatus = "accepted"
	StatusRejected PerevalStatus = "rejected"
)

// Pereval — заявка на перевал. Всегда ссылается ровно на одного пользователя,
// одни координаты и один уровень сложности.
type Pereval struct {
	ID          int           `json:"id"`
	BeautyTitle string        `json:"beauty_title"`
	Title       string        `json:"title"`
	OtherTitles string        `json:"other_titles"`
	Connect     string        `json:"connect"`
	AddTime     time.Time     `json:"add_time"`
	Status      PerevalStatus `json:"status"`

	UserID   int `json:"-"`
	CoordsID int `json:"-"`
	LevelID  int `json:"-"`

	User   *User   `json:"user,omitempty"`
	Coords *Coords `json:"coords,omitempty"`
	Level  *Level  `json:"level,omitempty"`
	Images []Image `json:"images,omitempty"`
}
