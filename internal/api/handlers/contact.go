// contact.go — обработчик POST /api/v1/contact.
package handlers

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	apierrors "github.com/bigkaa/portfolio/internal/api/errors"
	"github.com/bigkaa/portfolio/internal/api/middleware"
	"github.com/bigkaa/portfolio/internal/domain/model"
	"github.com/bigkaa/portfolio/internal/service"
	"github.com/bigkaa/portfolio/internal/ui/i18n"
)

// maxContactBody — ограничение размера JSON-тела формы.
const maxContactBody = 64 << 10

// contactAcceptedResponse — ответ 202 на принятое сообщение.
type contactAcceptedResponse struct {
	Status string `json:"status"`
	ID     string `json:"id"`
}

// SubmitContact — проверка и отправка формы обратной связи.
// 202 — принято почтовым сервисом; 400 — ошибки полей (fields);
// 429 — превышена частота; 502 — почтовый сервис не принял сообщение.
func (h *APIHandler) SubmitContact(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var form model.ContactForm
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxContactBody))
	if err := dec.Decode(&form); err != nil {
		apierrors.ValidationError(w, i18n.T(ctx, "api.error.bad_request"))
		return
	}

	id, err := h.contact.Submit(ctx, middleware.ClientIP(r), form)
	if err == nil {
		writeJSON(w, http.StatusAccepted, contactAcceptedResponse{Status: "sent", ID: id})
		return
	}

	var verr *service.ValidationError
	switch {
	case errors.As(err, &verr):
		fields := make(map[string]string, len(verr.Fields))
		for name, key := range verr.Fields {
			fields[name] = i18n.T(ctx, key)
		}
		apierrors.FieldsError(w, i18n.T(ctx, "api.error.validation"), fields)
	case errors.Is(err, service.ErrRateLimited):
		apierrors.TooManyRequests(w, i18n.T(ctx, "api.error.too_many_requests"))
	case errors.Is(err, service.ErrDeliveryFailed):
		apierrors.MailUnavailable(w, i18n.T(ctx, "api.error.mail_unavailable"))
	default:
		h.logger.Error("Ошибка отправки формы", slog.String("error", err.Error()))
		apierrors.InternalError(w, i18n.T(ctx, "api.error.internal"))
	}
}
