// profile.go — обработчик GET /api/v1/profile.
package handlers

import (
	"net/http"

	openapi_types "github.com/oapi-codegen/runtime/types"

	"github.com/bigkaa/portfolio/internal/domain/model"
	"github.com/bigkaa/portfolio/internal/ui/i18n"
)

// profileResponse — профиль владельца в ответе API.
type profileResponse struct {
	Name      string              `json:"name"`
	Roles     []string            `json:"roles"`
	Bio       string              `json:"bio"`
	Focus     []string            `json:"focus,omitempty"`
	Skills    []model.Skill       `json:"skills,omitempty"`
	ResumeURL string              `json:"resume_url,omitempty"`
	Email     openapi_types.Email `json:"email"`
	Phone     string              `json:"phone,omitempty"`
	Location  string              `json:"location,omitempty"`
	Social    model.SocialLinks   `json:"social"`
}

// GetProfile — профиль владельца (bio на языке запроса).
func (h *APIHandler) GetProfile(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	p := h.projects.Profile(ctx)

	writeJSON(w, http.StatusOK, profileResponse{
		Name:      p.Name,
		Roles:     p.Roles,
		Bio:       p.LocalizedBio(i18n.LangFromContext(ctx)),
		Focus:     p.Focus,
		Skills:    p.Skills,
		ResumeURL: p.ResumeURL,
		Email:     openapi_types.Email(p.Email),
		Phone:     p.Phone,
		Location:  p.Location,
		Social:    p.Social,
	})
}
