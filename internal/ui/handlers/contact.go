// contact.go — страница контактов и отправка формы обратной связи.
package handlers

import (
	"errors"
	"log/slog"
	"net/http"

	apimiddleware "github.com/bigkaa/portfolio/internal/api/middleware"
	"github.com/bigkaa/portfolio/internal/domain/model"
	"github.com/bigkaa/portfolio/internal/service"
	"github.com/bigkaa/portfolio/internal/ui/pages"
)

// Состояния формы после отправки.
const (
	statusSent    = "sent"
	statusFailed  = "failed"
	statusLimited = "limited"
)

// sentParam — query-параметр страницы после успешной отправки (POST/Redirect/GET).
const sentParam = "sent"

// maxFormBytes — ограничение размера тела формы.
const maxFormBytes = 64 << 10

// ContactHandler — обработчик страницы контактов.
type ContactHandler struct {
	contact  *service.ContactService
	projects *service.ProjectService
	logger   *slog.Logger
}

// NewContactHandler создаёт новый ContactHandler.
func NewContactHandler(
	contact *service.ContactService,
	projects *service.ProjectService,
	logger *slog.Logger,
) *ContactHandler {
	return &ContactHandler{
		contact:  contact,
		projects: projects,
		logger:   logger.With(slog.String("component", "ui.contact")),
	}
}

// HandleContact обрабатывает GET /contact — контакты и пустая форма.
func (h *ContactHandler) HandleContact(w http.ResponseWriter, r *http.Request) {
	status := ""
	if r.URL.Query().Get(sentParam) != "" {
		status = statusSent
	}
	h.renderForm(w, r, http.StatusOK, model.ContactForm{}, nil, status)
}

// HandleSubmit обрабатывает POST /contact — проверка и отправка формы.
// Успех — redirect 303 на /contact?sent=1; ошибки полей — форма с подсказками;
// ошибка доставки — общее сообщение с предложением повторить.
func (h *ContactHandler) HandleSubmit(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, maxFormBytes)
	if err := r.ParseForm(); err != nil {
		h.logger.Debug("Некорректное тело формы", slog.String("error", err.Error()))
		h.renderForm(w, r, http.StatusBadRequest, model.ContactForm{}, nil, statusFailed)
		return
	}

	form := model.ContactForm{
		Name:    r.PostFormValue("name"),
		Email:   r.PostFormValue("email"),
		Subject: r.PostFormValue("subject"),
		Message: r.PostFormValue("message"),
	}

	_, err := h.contact.Submit(r.Context(), apimiddleware.ClientIP(r), form)
	if err == nil {
		http.Redirect(w, r, "/contact?"+sentParam+"=1", http.StatusSeeOther)
		return
	}

	var verr *service.ValidationError
	switch {
	case errors.As(err, &verr):
		h.renderForm(w, r, http.StatusBadRequest, form, verr.Fields, "")
	case errors.Is(err, service.ErrRateLimited):
		h.renderForm(w, r, http.StatusTooManyRequests, form, nil, statusLimited)
	case errors.Is(err, service.ErrDeliveryFailed):
		h.renderForm(w, r, http.StatusBadGateway, form, nil, statusFailed)
	default:
		h.logger.Error("Ошибка отправки формы", slog.String("error", err.Error()))
		h.renderForm(w, r, http.StatusInternalServerError, form, nil, statusFailed)
	}
}

func (h *ContactHandler) renderForm(
	w http.ResponseWriter,
	r *http.Request,
	status int,
	form model.ContactForm,
	fieldErrors map[string]string,
	state string,
) {
	profile := h.projects.Profile(r.Context())

	data := pages.ContactData{
		Layout: newLayout(r, profile, "title.contact", "contact"),
		Info: pages.ContactInfo{
			Email:    profile.Email,
			Phone:    profile.Phone,
			Location: profile.Location,
			Social:   profile.Social,
		},
		Form:   form,
		Errors: fieldErrors,
		Status: state,
	}

	render(w, r, h.logger, status, pages.Contact(data))
}
