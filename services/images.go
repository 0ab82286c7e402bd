package services

import (
	"encoding/base64"
	"fmt"
	"strings"
	"unicode"
)

// decodedImage — результат разбора поля data одного изображения.
// Принимаются две формы: data-URI (data:<mime>;base64,<payload>) — тогда
// полезная нагрузка декодируется и загружается в хранилище, либо любая
// другая строка — тогда она сохраняется в БД как есть.
type decodedImage struct {
	Title       string
	Raw         string
	Payload     []byte
	ContentType string
	Ext         string
	NeedsUpload bool
}

const dataURIMarker = ";base64,"

func decodeImageData(payload ImagePayload) (*decodedImage, error) {
	data := payload.Data
	if !strings.HasPrefix(data, "data:") || !strings.Contains(data, dataURIMarker) {
		return &decodedImage{Title: payload.Title, Raw: data}, nil
	}

	markerIdx := strings.Index(data, dataURIMarker)
	contentType := strings.TrimPrefix(data[:markerIdx], "data:")

	decoded, err := base64.StdEncoding.DecodeString(data[markerIdx+len(dataURIMarker):])
	if err != nil {
		return nil, fmt.Errorf("некорректные base64-данные изображения %q: %w", payload.Title, err)
	}

	ext := "bin"
	if slash := strings.LastIndex(contentType, "/"); slash >= 0 && slash < len(contentType)-1 {
		ext = contentType[slash+1:]
	}

	return &decodedImage{
		Title:       payload.Title,
		Payload:     decoded,
		ContentType: contentType,
		Ext:         ext,
		NeedsUpload: true,
	}, nil
}

// imageObjectKey строит детерминированный ключ объекта в хранилище
// из id перевала, названия изображения и расширения по MIME-подтипу.
func imageObjectKey(perevalID int, title, ext string) string {
	return fmt.Sprintf("pereval_images/%d/%s.%s", perevalID, slugifyTitle(title), ext)
}

func slugifyTitle(title string) string {
	var b strings.Builder
	lastDash := true
	for _, r := range strings.ToLower(strings.TrimSpace(title)) {
		if unicode.IsLetter(r) || unicode.IsDigit(r) {
			b.WriteRune(r)
			lastDash = false
			continue
		}
		if !lastDash {
			b.WriteByte('-')
			lastDash = true
		}
	}
	slug := strings.TrimSuffix(b.String(), "-")
	if slug == "" {
		return "image"
	}
	return slug
}
