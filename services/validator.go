package services

// validateSubmitRequest проверяет наличие обязательных полей заявки.
// Порядок проверок фиксирован и является частью контракта: сначала поля
// верхнего уровня, затем user, coords, level, и в конце — непустой список
// изображений. Возвращается первое найденное нарушение.
func validateSubmitRequest(req *SubmitRequest) error {
	topLevel := []struct {
		name    string
		present bool
	}{
		{"beauty_title", req.BeautyTitle != nil},
		{"title", req.Title != nil},
		{"other_titles", req.OtherTitles != nil},
		{"connect", req.Connect != nil},
		{"user", req.User != nil},
		{"coords", req.Coords != nil},
		{"level", req.Level != nil},
		{"images", req.Images != nil},
	}
	for _, field := range topLevel {
		if !field.present {
			return &ValidationError{Field: field.name}
		}
	}

	userFields := []struct {
		name    string
		present bool
	}{
		{"user.email", req.User.Email != nil},
		{"user.fam", req.User.Fam != nil},
		{"user.name", req.User.Name != nil},
		{"user.otc", req.User.Otc != nil},
		{"user.phone", req.User.Phone != nil},
	}
	for _, field := range userFields {
		if !field.present {
			return &ValidationError{Field: field.name}
		}
	}

	coordsFields := []struct {
		name    string
		present bool
	}{
		{"coords.latitude", req.Coords.Latitude != nil},
		{"coords.longitude", req.Coords.Longitude != nil},
		{"coords.height", req.Coords.Height != nil},
	}
	for _, field := range coordsFields {
		if !field.present {
			return &ValidationError{Field: field.name}
		}
	}

	levelFields := []struct {
		name    string
		present bool
	}{
		{"level.winter", req.Level.Winter != nil},
		{"level.summer", req.Level.Summer != nil},
		{"level.autumn", req.Level.Autumn != nil},
		{"level.spring", req.Level.Spring != nil},
	}
	for _, field := range levelFields {
		if !field.present {
			return &ValidationError{Field: field.name}
		}
	}

	if len(req.Images) == 0 {
		return &EmptyImagesError{}
	}
	return nil
}
