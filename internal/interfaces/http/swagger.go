package http

import (
	"os"

	"github.com/gofiber/contrib/swagger"
	"github.com/gofiber/fiber/v2"
)

// MountSwagger monta la UI de Swagger sobre el archivo de especificación
// indicado y devuelve true si quedó montada.
//
// swagger.New hace panic cuando el archivo no existe, así que si falta la
// especificación la API arranca sin la UI en vez de morir en el arranque.
func MountSwagger(app *fiber.App, filePath string) bool {
	if _, err := os.Stat(filePath); err != nil {
		return false
	}
	app.Use(swagger.New(swagger.Config{
		BasePath: "/",
		FilePath: filePath,
		Path:     "docs",
		Title:    "Superstore Analytics API",
	}))
	return true
}
