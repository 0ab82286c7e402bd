package models

// Level — сезонные категории сложности перевала ("1A", "2Б" и т.п.).
// Пустая строка означает, что категория для сезона не указана.
type Level struct {
	ID     int    `json:"-"`
	Winter string `json:"winter"`
	Summer string `json:"summer"`
	Autumn string `json:"autumn"`
	Spring string `json:"spring"`
}
