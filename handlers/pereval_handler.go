package handlers

import (
	"net/http"

	"github.com/Dosada05/pereval-api/services"
)

type PerevalHandler struct {
	perevalService services.PerevalService
}

func NewPerevalHandler(ps services.PerevalService) *PerevalHandler {
	return &PerevalHandler{
		perevalService: ps,
	}
}

// SubmitData godoc
// @Summary Добавление нового перевала
// @Tags perevals
// @Description Создаёт заявку на перевал со статусом "new". Пользователь с существующим email переиспользуется как есть.
// @Accept json
// @Produce json
// @Param body body services.SubmitRequest true "Данные перевала"
// @Success 200 {object} services.SubmitResult
// @Failure 400 {object} services.SubmitResult "Отсутствует обязательное поле"
// @Failure 500 {object} services.SubmitResult
// @Router /submitData [post]
func (h *PerevalHandler) SubmitData(w http.ResponseWriter, r *http.Request) {
	var req services.SubmitRequest
	if err := readJSON(w, r, &req); err != nil {
		badRequestResponse(w, err)
		return
	}

	result := h.perevalService.SubmitData(r.Context(), req)
	_ = writeJSON(w, result.Status, result)
}

// GetPerevalByID godoc
// @Summary Получение данных о перевале по ID
// @Tags perevals
// @Produce json
// @Param id path int true "ID перевала"
// @Success 200 {object} services.FetchResult
// @Failure 404 {object} services.FetchResult "Перевал не найден"
// @Router /submitData/{id} [get]
func (h *PerevalHandler) GetPerevalByID(w http.ResponseWriter, r *http.Request) {
	id, err := getIDFromURL(r, "id")
	if err != nil {
		badRequestResponse(w, err)
		return
	}

	result := h.perevalService.GetPerevalByID(r.Context(), id)
	_ = writeJSON(w, result.Status, result)
}

// GetPerevalsByEmail godoc
// @Summary Поиск перевалов по email автора
// @Tags perevals
// @Produce json
// @Param user__email query string true "Email пользователя"
// @Success 200 {object} services.SearchResult
// @Failure 404 {object} services.SearchResult "Пользователь с таким email не найден"
// @Router /submitData [get]
func (h *PerevalHandler) GetPerevalsByEmail(w http.ResponseWriter, r *http.Request) {
	email := r.URL.Query().Get("user__email")

	result := h.perevalService.GetPerevalsByEmail(r.Context(), email)
	_ = writeJSON(w, result.Status, result)
}

// UpdatePereval godoc
// @Summary Частичное обновление перевала
// @Tags perevals
// @Description Разрешено только для записей в статусе "new"; персональные данные пользователя неизменяемы.
// @Accept json
// @Produce json
// @Param id path int true "ID перевала"
// @Param body body services.UpdateRequest true "Изменяемые поля"
// @Success 200 {object} services.UpdateResult "state 1 при успехе, state 0 при отказе"
// @Router /submitData/{id} [patch]
func (h *PerevalHandler) UpdatePereval(w http.ResponseWriter, r *http.Request) {
	id, err := getIDFromURL(r, "id")
	if err != nil {
		badRequestResponse(w, err)
		return
	}

	var req services.UpdateRequest
	if err := readJSON(w, r, &req); err != nil {
		badRequestResponse(w, err)
		return
	}

	// Результат обновления всегда уходит с HTTP 200: исход несёт поле state.
	result := h.perevalService.UpdatePereval(r.Context(), id, req)
	_ = writeJSON(w, http.StatusOK, result)
}
