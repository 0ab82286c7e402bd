package models

import "time"

// Image хранит ссылку на бинарные данные (ключ в хранилище или исходную
// строку, если данные пришли не в формате data-URI).
type Image struct {
	ID        int       `json:"-"`
	Img       string    `json:"data"`
	Title     string    `json:"title"`
	DateAdded time.Time `json:"-"`
}
