package server

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/NCATS-Tangerine/rhea-beacon/pkg/common/errors"
	"github.com/NCATS-Tangerine/rhea-beacon/pkg/service"
	"github.com/gin-gonic/gin"
)

// handleConcepts searches enzymes and compounds by keyword.
func (s *Server) handleConcepts(c *gin.Context) {
	offset, size, ok := paging(c)
	if !ok {
		return
	}
	concepts, err := s.beacon.GetConcepts(c.Request.Context(), service.ConceptsRequest{
		Keywords:   queryList(c, "keywords"),
		Categories: queryList(c, "categories"),
		Offset:     offset,
		Size:       size,
	})
	if err != nil {
		handleError(c, err)
		return
	}
	c.JSON(http.StatusOK, concepts)
}

func (s *Server) handleConceptDetails(c *gin.Context) {
	concept, err := s.beacon.GetConceptDetails(c.Request.Context(), c.Param("conceptId"))
	if err != nil {
		handleError(c, err)
		return
	}
	c.JSON(http.StatusOK, concept)
}

func (s *Server) handleExactMatches(c *gin.Context) {
	matches, err := s.beacon.GetExactMatches(c.Request.Context(), queryList(c, "c"))
	if err != nil {
		handleError(c, err)
		return
	}
	c.JSON(http.StatusOK, matches)
}

// handleStatements lists statements. s/t are subject and target (object) ids.
func (s *Server) handleStatements(c *gin.Context) {
	offset, size, ok := paging(c)
	if !ok {
		return
	}
	statements, err := s.beacon.GetStatements(c.Request.Context(), service.StatementsRequest{
		SubjectIDs:        queryList(c, "s"),
		SubjectKeywords:   queryList(c, "s_keywords"),
		SubjectCategories: queryList(c, "s_categories"),
		EdgeLabel:         strings.TrimSpace(c.Query("edge_label")),
		Relation:          strings.TrimSpace(c.Query("relation")),
		ObjectIDs:         queryList(c, "t"),
		ObjectKeywords:    queryList(c, "t_keywords"),
		ObjectCategories:  queryList(c, "t_categories"),
		Offset:            offset,
		Size:              size,
	})
	if err != nil {
		handleError(c, err)
		return
	}
	c.JSON(http.StatusOK, statements)
}

func (s *Server) handleStatementDetails(c *gin.Context) {
	offset, size, ok := paging(c)
	if !ok {
		return
	}
	details, err := s.beacon.GetStatementDetails(c.Request.Context(), c.Param("statementId"), queryList(c, "keywords"), offset, size)
	if err != nil {
		handleError(c, err)
		return
	}
	c.JSON(http.StatusOK, details)
}

func (s *Server) handlePredicates(c *gin.Context) {
	predicates, err := s.beacon.GetPredicates(c.Request.Context())
	if err != nil {
		handleError(c, err)
		return
	}
	c.JSON(http.StatusOK, predicates)
}

func (s *Server) handleCategories(c *gin.Context) {
	categories, err := s.beacon.GetCategories(c.Request.Context())
	if err != nil {
		handleError(c, err)
		return
	}
	c.JSON(http.StatusOK, categories)
}

func (s *Server) handleKnowledgeMap(c *gin.Context) {
	kmap, err := s.beacon.GetKnowledgeMap(c.Request.Context())
	if err != nil {
		handleError(c, err)
		return
	}
	c.JSON(http.StatusOK, kmap)
}

// queryList collects a repeated query parameter, dropping blank values.
// It returns nil when nothing remains.
func queryList(c *gin.Context, key string) []string {
	var out []string
	for _, v := range c.QueryArray(key) {
		if v = strings.TrimSpace(v); v != "" {
			out = append(out, v)
		}
	}
	return out
}

// paging parses offset and size, replying 400 and returning false when
// either is not a non-negative integer.
func paging(c *gin.Context) (offset, size int, ok bool) {
	var err error
	if offset, err = intQuery(c, "offset"); err != nil {
		handleError(c, err)
		return 0, 0, false
	}
	if size, err = intQuery(c, "size"); err != nil {
		handleError(c, err)
		return 0, 0, false
	}
	return offset, size, true
}

func intQuery(c *gin.Context, key string) (int, error) {
	raw := strings.TrimSpace(c.Query(key))
	if raw == "" {
		return 0, nil
	}
	n, err := strconv.Atoi(raw)
	if err != nil || n < 0 {
		return 0, errors.InvalidInputf("%s must be a non-negative integer, got %q", key, raw)
	}
	return n, nil
}

func handleError(c *gin.Context, err error) {
	appErr := errors.MapError(err)
	_ = c.Error(err)
	c.JSON(appErr.Code, gin.H{"error": errorMessage(appErr)})
}

// errorMessage prefers the cause's message for client errors; server errors
// only expose the generic message.
func errorMessage(appErr *errors.AppError) string {
	if appErr.Code < http.StatusInternalServerError && appErr.Err != nil {
		return appErr.Err.Error()
	}
	return appErr.Message
}
