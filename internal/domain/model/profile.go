package model

// Profile — сведения о владельце портфолио (главная страница и контакты).
type Profile struct {
	// Name — имя владельца
	Name string `yaml:"name" json:"name"`
	// Roles — фразы для эффекта «печатной машинки» на главной странице
	Roles []string `yaml:"roles" json:"roles"`
	// Bio — короткое описание под заголовком
	Bio string `yaml:"bio" json:"bio"`
	// BioByLocale — переводы Bio по коду языка
	BioByLocale map[string]string `yaml:"bio_i18n,omitempty" json:"-"`
	// Focus — направления работы (блок «О себе»)
	Focus []string `yaml:"focus,omitempty" json:"focus,omitempty"`
	// Skills — навыки с уровнем владения в процентах
	Skills []Skill `yaml:"skills,omitempty" json:"skills,omitempty"`
	// ResumeURL — ссылка на резюме (пусто — кнопка скрыта)
	ResumeURL string `yaml:"resume_url,omitempty" json:"resume_url,omitempty"`
	// Email — адрес для связи (получатель писем с формы)
	Email string `yaml:"email" json:"email"`
	// Phone — телефон
	Phone string `yaml:"phone" json:"phone"`
	// Location — город/страна
	Location string `yaml:"location" json:"location"`
	// Social — ссылки на профили в соцсетях
	Social SocialLinks `yaml:"social" json:"social"`
}

// LocalizedBio возвращает Bio для языка locale.
func (p *Profile) LocalizedBio(locale string) string {
	return Localize(p.BioByLocale, locale, p.Bio)
}

// Skill — навык и уровень владения (0..100).
type Skill struct {
	Name  string `yaml:"name" json:"name"`
	Level int    `yaml:"level" json:"level"`
}

// SocialLinks — ссылки на внешние профили. Пустое значение не отображается.
type SocialLinks struct {
	GitHub    string `yaml:"github" json:"github,omitempty"`
	LinkedIn  string `yaml:"linkedin" json:"linkedin,omitempty"`
	Twitter   string `yaml:"twitter" json:"twitter,omitempty"`
	Instagram string `yaml:"instagram" json:"instagram,omitempty"`
}

// ContactForm — поля формы обратной связи.
type ContactForm struct {
	Name    string `json:"name"`
	Email   string `json:"email"`
	Subject string `json:"subject"`
	Message string `json:"message"`
}
