package proxy

import (
	"github.com/gofiber/fiber/v3"
)

// APIPrefix: префикс публичных маршрутов шлюза.
const APIPrefix = "/api/v1"

// Mount регистрирует проксируемые маршруты конвертера и каталога на группе /api/v1.
func Mount(api fiber.Router, p *Proxy, converterURL, libraryURL string) {
	// Converter Service
	api.Post("/convert", p.To(converterURL+"/convert"))
	api.Post("/normalize", p.To(converterURL+"/normalize"))
	api.Post("/denormalize", p.To(converterURL+"/denormalize"))
	api.Post("/export", p.To(converterURL+"/export"))
	api.Get("/schema", p.To(converterURL+"/schema"))

	// Library Service
	library := p.Under(APIPrefix, libraryURL)
	api.Get("/presets", library)
	api.Post("/presets", library)
	api.Get("/presets/:id", library)
	api.Delete("/presets/:id", library)
	api.Get("/presets/:id/archive", library)
	api.Get("/presets/:id/normalized", library)
}
