package server

import (
	"errors"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/Leganyst/press-archive/internal/views"
)

// Views — набор зарегистрированных представлений архива.
type Views struct {
	List    views.View
	Detail  views.View
	Archive views.View
	Year    views.View
	Month   views.View
	Week    views.View
}

// NewRouter собирает маршруты поверх представлений.
func NewRouter(v Views) *gin.Engine {
	r := gin.New()
	r.Use(gin.Logger(), gin.Recovery())

	r.GET("/articles", handle(v.List))
	r.GET("/articles/id/:pk", handle(v.Detail))
	r.GET("/articles/slug/:slug", handle(v.Detail))
	// устаревший маршрут, эквивалент /articles/id/:pk
	r.GET("/articles/object/:object_id", handle(v.Detail))

	r.GET("/archive", handle(v.Archive))
	r.GET("/archive/year/:year", handle(v.Year))
	r.GET("/archive/month/:year/:month", handle(v.Month))
	r.GET("/archive/week/:year/:week", handle(v.Week))

	return r
}

// handle переводит gin-запрос в параметры представления и ответ
// представления — в HTTP-ответ.
func handle(view views.View) gin.HandlerFunc {
	return func(c *gin.Context) {
		req := &views.Request{
			HTTP:     c.Request,
			PK:       c.Param("pk"),
			Slug:     c.Param("slug"),
			ObjectID: c.Param("object_id"),
			Year:     c.Param("year"),
			Month:    c.Param("month"),
			Week:     c.Param("week"),
			Page:     c.Query("page"),
		}

		resp, err := view.Serve(c.Request.Context(), req)
		if err != nil {
			writeError(c, err)
			return
		}

		for key, val := range resp.Headers {
			c.Header(key, val)
		}
		c.Data(resp.Status, resp.ContentType, []byte(resp.Body))
	}
}

// writeError превращает ошибку слоя представлений в статус ответа:
// отсутствие объекта/страницы/периода — 404, всё остальное —
// ошибка конфигурации или программирования, 500.
func writeError(c *gin.Context, err error) {
	if errors.Is(err, views.ErrNotFound) {
		c.String(http.StatusNotFound, "404 page not found")
		return
	}
	log.Printf("view error: %v", err)
	c.String(http.StatusInternalServerError, "500 internal server error")
}
