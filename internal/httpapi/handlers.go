package httpapi

import (
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/ZaguanLabs/deepltool"
)

type errorResponse struct {
	Error string `json:"error"`
}

type invokeResponse struct {
	Messages []deepltool.ToolInvokeMessage `json:"messages"`
}

type validateRequest struct {
	Credentials deepltool.Credentials `json:"credentials"`
}

type validateResponse struct {
	Valid bool   `json:"valid"`
	Error string `json:"error,omitempty"`
}

type healthResponse struct {
	Status  string `json:"status"`
	Service string `json:"service"`
	Version string `json:"version"`
	Cache   any    `json:"cache,omitempty"`
}

type language struct {
	Code string `json:"code"`
	Name string `json:"name"`
}

type languagesResponse struct {
	Source []language `json:"source"`
	Target []language `json:"target"`
}

func (s *Server) handleHealth(c echo.Context) error {
	resp := healthResponse{
		Status:  "ok",
		Service: deepltool.Name,
		Version: deepltool.FullVersion(),
	}
	if s.opts.CacheStats != nil {
		resp.Cache = s.opts.CacheStats()
	}
	return c.JSON(http.StatusOK, resp)
}

func (s *Server) handleLanguages(c echo.Context) error {
	return c.JSON(http.StatusOK, languagesResponse{
		Source: languageList(deepltool.SourceLanguages),
		Target: languageList(deepltool.TargetLanguages),
	})
}

// handleInvoke always answers 200: failures travel as text messages.
func (s *Server) handleInvoke(c echo.Context) error {
	raw, err := io.ReadAll(c.Request().Body)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "could not read request body")
	}

	req, err := decodeInvokeRequest(raw)
	if err != nil {
		s.logger.Warn().Err(err).Msg("invalid invoke payload")
		return c.JSON(http.StatusOK, invokeResponse{
			Messages: []deepltool.ToolInvokeMessage{
				deepltool.NewTextMessage(fmt.Sprintf("Error during parameter parsing: %v", err)),
			},
		})
	}

	messages := s.tool.Invoke(c.Request().Context(), s.credentials(req.Credentials), req.ToolParameters)
	return c.JSON(http.StatusOK, invokeResponse{Messages: messages})
}

func (s *Server) handleValidateCredentials(c echo.Context) error {
	var req validateRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, validateResponse{Valid: false, Error: "invalid request body"})
	}

	if err := s.tool.ValidateCredentials(c.Request().Context(), req.Credentials); err != nil {
		return c.JSON(http.StatusBadRequest, validateResponse{Valid: false, Error: err.Error()})
	}
	return c.JSON(http.StatusOK, validateResponse{Valid: true})
}

func (s *Server) credentials(creds deepltool.Credentials) deepltool.Credentials {
	if strings.TrimSpace(creds.DeepLAPIKey) == "" {
		creds.DeepLAPIKey = s.opts.DefaultAPIKey
	}
	return creds
}

func languageList(set map[string]bool) []language {
	codes := deepltool.SortedCodes(set)
	out := make([]language, 0, len(codes))
	for _, code := range codes {
		out = append(out, language{Code: code, Name: deepltool.LanguageName(code)})
	}
	return out
}
