package handler

import (
	"bytes"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"

	"github.com/arifshehab/Capstone-Project/internal/web"
)

// RegisterDocs serves the operator guide at /docs, rendered once at startup.
func RegisterDocs(r *gin.Engine) error {
	var body bytes.Buffer
	md := goldmark.New(goldmark.WithExtensions(extension.GFM))
	if err := md.Convert(web.Guide, &body); err != nil {
		return err
	}
	page := []byte(`<!DOCTYPE html><html lang="en"><head><meta charset="utf-8"><title>Guide · Portfolio</title>` +
		`<link rel="stylesheet" href="/static/styles.css"></head><body><main>` +
		body.String() + `</main></body></html>`)

	r.GET("/docs", func(c *gin.Context) {
		if c.Query("format") == "md" {
			c.Data(http.StatusOK, "text/markdown; charset=utf-8", web.Guide)
			return
		}
		c.Data(http.StatusOK, "text/html; charset=utf-8", page)
	})
	return nil
}
