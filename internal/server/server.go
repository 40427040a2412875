package server

import (
	"errors"
	"fmt"
	"io"
	"net/http"
	"runtime/debug"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/labstack/echo/v5"

	"github.com/Halim-byte/nmtgo/internal/logger"
)

// Server exposes the translator over the plain-text wire protocol. Any of
// HEAD, GET, POST and PUT on the root path is handled identically: the
// request body is the source sentence, the response body is either the
// translation (200) or a tab-separated error descriptor (500). A failed
// request never takes the process down.
type Server struct {
	translator *Translator
	log        logger.Logger
}

// NewServer wraps a translator for serving.
func NewServer(t *Translator, log logger.Logger) *Server {
	if log == nil {
		log = logger.Default()
	}
	return &Server{translator: t, log: log}
}

// Register installs the translate route on e. All four verbs are handled
// identically.
func (s *Server) Register(e *echo.Echo) {
	e.HEAD("/", s.handleTranslate)
	e.GET("/", s.handleTranslate)
	e.POST("/", s.handleTranslate)
	e.PUT("/", s.handleTranslate)
}

func (s *Server) handleTranslate(c *echo.Context) error {
	id := uuid.NewString()
	start := time.Now()

	out, err := s.translateRequest(c)
	if err != nil {
		s.log.Error("request failed", "id", id, "err", err, "duration", time.Since(start))
		return c.Blob(http.StatusInternalServerError, "text/plain", failureBody(err))
	}

	s.log.Info("request completed", "id", id, "duration", time.Since(start))
	return c.Blob(http.StatusOK, "text/plain", []byte(out))
}

// translateRequest reads the body and runs the pipeline, converting panics
// from any stage into ordinary errors so the serving loop survives them.
func (s *Server) translateRequest(c *echo.Context) (out string, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("panic in pipeline: %v\n%s", r, debug.Stack())
		}
	}()

	body, err := io.ReadAll(c.Request().Body)
	if err != nil {
		return "", fmt.Errorf("%w: reading body: %v", ErrTransport, err)
	}
	return s.translator.Translate(c.Request().Context(), string(body))
}

// failureBody renders ERROR<TAB>REQUEST FAILED<TAB>message<TAB>trace.
// The trace is the unwrapped error chain, outermost first.
func failureBody(err error) []byte {
	var trace []string
	for e := err; e != nil; e = errors.Unwrap(e) {
		trace = append(trace, e.Error())
	}
	return []byte(fmt.Sprintf("ERROR\tREQUEST FAILED\t%s\t%s", err.Error(), strings.Join(trace, " <- ")))
}
