package api

import (
	"bytes"
	"html/template"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/csrf"
	"github.com/yuin/goldmark"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"
)

// render wraps c.HTML, adding the fields every view needs: the CSRF form
// field and the logged-in username.
func render(c *gin.Context, status int, name string, data gin.H) {
	if data == nil {
		data = gin.H{}
	}
	data["CSRFField"] = csrf.TemplateField(c.Request)
	data["Username"] = currentUsername(c)
	c.HTML(status, name, data)
}

// renderNotFound renders the generic error view with 404 semantics.
func renderNotFound(c *gin.Context, message string) {
	render(c, http.StatusNotFound, "error.html", gin.H{
		"Title":   "Not Found",
		"Message": message,
		"Status":  http.StatusNotFound,
	})
}

// renderServerError logs the failure and renders an opaque error page.
// The underlying error is only shown when dev mode is on.
func renderServerError(c *gin.Context, logger *zap.Logger, devMode bool, err error) {
	logger.Error("request failed",
		zap.String("path", c.Request.URL.Path),
		zap.String("method", c.Request.Method),
		zap.Error(err),
	)
	data := gin.H{
		"Title":   "Error",
		"Message": "Something went wrong.",
		"Status":  http.StatusInternalServerError,
	}
	if devMode {
		data["Detail"] = err.Error()
	}
	render(c, http.StatusInternalServerError, "error.html", data)
}

// parseID parses a hex object id from the route. The empty result signals the
// caller rendered a not-found page already.
func parseID(c *gin.Context, notFoundMessage string) (primitive.ObjectID, bool) {
	id, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		renderNotFound(c, notFoundMessage)
		return primitive.NilObjectID, false
	}
	return id, true
}

// markdownHTML converts markdown to HTML for plan descriptions. Goldmark's
// default renderer omits raw HTML in the source. Registered as the
// "markdown" template function.
func markdownHTML(source string) template.HTML {
	var buf bytes.Buffer
	if err := goldmark.Convert([]byte(source), &buf); err != nil {
		return template.HTML(template.HTMLEscapeString(source))
	}
	return template.HTML(buf.String())
}
