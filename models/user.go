package models

// User — автор заявки. Идентифицируется по email, персональные данные
// после создания не изменяются.
type User struct {
	ID    int    `json:"-"`
	Email string `json:"email"`
	Fam   string `json:"fam"`
	Name  string `json:"name"`
	Otc   string `json:"otc"`
	Phone string `json:"phone"`
}
