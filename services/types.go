package services

import (
	"time"

	"github.com/Dosada05/pereval-api/models"
)

// Запросы декодируются в структуры с указателями: валидатору и частичному
// обновлению нужно отличать отсутствующее поле от пустого значения.

type UserPayload struct {
	Email *string `json:"email"`
	Fam   *string `json:"fam"`
	Name  *string `json:"name"`
	Otc   *string `json:"otc"`
	Phone *string `json:"phone"`
}

func (p *UserPayload) hasAnyField() bool {
	return p != nil && (p.Email != nil || p.Fam != nil || p.Name != nil || p.Otc != nil || p.Phone != nil)
}

type CoordsPayload struct {
	Latitude  *float64 `json:"latitude"`
	Longitude *float64 `json:"longitude"`
	Height    *int     `json:"height"`
}

type LevelPayload struct {
	Winter *string `json:"winter"`
	Summer *string `json:"summer"`
	Autumn *string `json:"autumn"`
	Spring *string `json:"spring"`
}

type ImagePayload struct {
	Data  string `json:"data"`
	Title string `json:"title"`
}

type SubmitRequest struct {
	BeautyTitle *string        `json:"beauty_title"`
	Title       *string        `json:"title"`
	OtherTitles *string        `json:"other_titles"`
	Connect     *string        `json:"connect"`
	User        *UserPayload   `json:"user"`
	Coords      *CoordsPayload `json:"coords"`
	Level       *LevelPayload  `json:"level"`
	Images      []ImagePayload `json:"images"`
}

type UpdateRequest struct {
	BeautyTitle *string        `json:"beauty_title"`
	Title       *string        `json:"title"`
	OtherTitles *string        `json:"other_titles"`
	Connect     *string        `json:"connect"`
	User        *UserPayload   `json:"user"`
	Coords      *CoordsPayload `json:"coords"`
	Level       *LevelPayload  `json:"level"`
}

// SubmitResult — результат submitData: {status, message, id}.
type SubmitResult struct {
	Status  int     `json:"status"`
	Message *string `json:"message"`
	ID      *int    `json:"id"`
}

type UserView struct {
	Email string `json:"email"`
	Fam   string `json:"fam"`
	Name  string `json:"name"`
	Otc   string `json:"otc"`
	Phone string `json:"phone"`
}

type CoordsView struct {
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
	Height    int     `json:"height"`
}

type LevelView struct {
	Winter string `json:"winter"`
	Summer string `json:"summer"`
	Autumn string `json:"autumn"`
	Spring string `json:"spring"`
}

type ImageView struct {
	Title string `json:"title"`
	Data  string `json:"data"`
}

// PerevalView — денормализованное представление заявки.
type PerevalView struct {
	BeautyTitle string               `json:"beauty_title"`
	Title       string               `json:"title"`
	OtherTitles string               `json:"other_titles"`
	Connect     string               `json:"connect"`
	AddTime     time.Time            `json:"add_time"`
	Status      models.PerevalStatus `json:"status"`
	User        UserView             `json:"user"`
	Coords      CoordsView           `json:"coords"`
	Level       LevelView            `json:"level"`
	Images      []ImageView          `json:"images"`
}

// FetchResult — результат чтения по id. На 404 вложенное представление
// отсутствует; на 200 поле status результата затеняет статус модерации
// вложенной записи (в списках поиска он виден).
type FetchResult struct {
	Status  int     `json:"status"`
	Message *string `json:"message"`
	ID      *int    `json:"id"`
	*PerevalView
}

// PerevalListItem — элемент выдачи поиска по email.
type PerevalListItem struct {
	ID int `json:"id"`
	PerevalView
}

type SearchResult struct {
	Status   int               `json:"status"`
	Message  *string           `json:"message"`
	Perevals []PerevalListItem `json:"perevals"`
}

// UpdateResult — результат обновления: state 1 при успехе, 0 при отказе.
type UpdateResult struct {
	State   int    `json:"state"`
	Message string `json:"message"`
}

func viewFromModel(pereval *models.Pereval) PerevalView {
	view := PerevalView{
		BeautyTitle: pereval.BeautyTitle,
		Title:       pereval.Title,
		OtherTitles: pereval.OtherTitles,
		Connect:     pereval.Connect,
		AddTime:     pereval.AddTime,
		Status:      pereval.Status,
		Images:      make([]ImageView, 0, len(pereval.Images)),
	}
	if pereval.User != nil {
		view.User = UserView{
			Email: pereval.User.Email,
			Fam:   pereval.User.Fam,
			Name:  pereval.User.Name,
			Otc:   pereval.User.Otc,
			Phone: pereval.User.Phone,
		}
	}
	if pereval.Coords != nil {
		view.Coords = CoordsView{
			Latitude:  pereval.Coords.Latitude,
			Longitude: pereval.Coords.Longitude,
			Height:    pereval.Coords.Height,
		}
	}
	if pereval.Level != nil {
		view.Level = LevelView{
			Winter: pereval.Level.Winter,
			Summer: pereval.Level.Summer,
			Autumn: pereval.Level.Autumn,
			Spring: pereval.Level.Spring,
		}
	}
	for _, image := range pereval.Images {
		view.Images = append(view.Images, ImageView{Title: image.Title, Data: image.Img})
	}
	return view
}
