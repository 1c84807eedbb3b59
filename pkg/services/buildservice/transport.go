package buildservice

import (
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/estafette/estafette-ci-buildstate/pkg/api"
	"github.com/estafette/estafette-ci-buildstate/pkg/build"
	"github.com/estafette/estafette-ci-buildstate/pkg/services/persistence"
	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"
)

// NewHandler returns a new buildservice.Handler
func NewHandler(config *api.APIConfig, buildService Service) Handler {
	return Handler{
		config:       config,
		buildService: buildService,
	}
}

type Handler struct {
	config       *api.APIConfig
	buildService Service
}

// GetBuild returns the live snapshot of a build, or its stored mirror once it's no longer in memory
func (h *Handler) GetBuild(c *gin.Context) {

	id := c.Param("id")
	ctx := c.Request.Context()

	var snapshot build.Build
	aggregate, err := h.buildService.Get(ctx, id)
	if err == nil {
		snapshot = aggregate.Read()
	} else {
		snapshot, err = h.buildService.Load(ctx, id)
	}

	if err != nil {
		if errors.Is(err, ErrBuildNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"code": http.StatusText(http.StatusNotFound), "message": "Build not found"})
			return
		}
		log.Error().Err(err).Msgf("Failed retrieving build %v", id)
		c.JSON(http.StatusInternalServerError, gin.H{"code": http.StatusText(http.StatusInternalServerError)})
		return
	}

	c.JSON(http.StatusOK, persistence.Document(snapshot))
}

type createBuildRequest struct {
	VCSURL      string                 `json:"vcs_url"`
	VCSRevision string                 `json:"vcs_revision"`
	Type        string                 `json:"type"`
	Continue    *bool                  `json:"continue"`
	Actions     []build.Action         `json:"actions"`
	Node        map[string]interface{} `json:"node"`
	Fields      map[string]interface{} `json:"fields"`
}

type finishBuildRequest struct {
	StopTime *time.Time `json:"stop_time"`
}

// CreateBuild creates a build for the project owning vcs_url
func (h *Handler) CreateBuild(c *gin.Context) {

	var request createBuildRequest
	if err := c.ShouldBindJSON(&request); err != nil {
		errorMessage := fmt.Sprint("Binding CreateBuild body failed")
		log.Error().Err(err).Msg(errorMessage)
		c.JSON(http.StatusBadRequest, gin.H{"code": http.StatusText(http.StatusBadRequest), "message": errorMessage})
		return
	}

	aggregate, err := h.buildService.Create(c.Request.Context(), build.CreateParams{
		VCSURL:      request.VCSURL,
		VCSRevision: request.VCSRevision,
		Type:        request.Type,
		Continue:    request.Continue,
		Actions:     request.Actions,
		Node:        request.Node,
		Fields:      build.Build(request.Fields),
	})
	var snapshot build.Build
	if aggregate != nil {
		snapshot = aggregate.Read()
	}

	h.respond(c, http.StatusCreated, snapshot, err, "Failed creating build")
}

// AssignNode sets the execution target of a build
func (h *Handler) AssignNode(c *gin.Context) {

	id := c.Param("id")

	var node map[string]interface{}
	if err := c.ShouldBindJSON(&node); err != nil {
		errorMessage := fmt.Sprint("Binding AssignNode body failed")
		log.Error().Err(err).Msg(errorMessage)
		c.JSON(http.StatusBadRequest, gin.H{"code": http.StatusText(http.StatusBadRequest), "message": errorMessage})
		return
	}

	snapshot, err := h.buildService.AssignNode(c.Request.Context(), id, node)

	h.respond(c, http.StatusOK, snapshot, err, fmt.Sprintf("Failed assigning node to build %v", id))
}

// RunAction runs an action of the build on its node and returns the recorded result
func (h *Handler) RunAction(c *gin.Context) {

	id := c.Param("id")

	var action build.Action
	if err := c.ShouldBindJSON(&action); err != nil || action.Command == "" {
		errorMessage := fmt.Sprint("Binding RunAction body failed")
		log.Error().Err(err).Msg(errorMessage)
		c.JSON(http.StatusBadRequest, gin.H{"code": http.StatusText(http.StatusBadRequest), "message": errorMessage})
		return
	}

	result, err := h.buildService.RunAction(c.Request.Context(), id, action)
	if err != nil {
		var persistenceErr *build.PersistenceError
		if errors.As(err, &persistenceErr) {
			c.JSON(http.StatusAccepted, result)
			return
		}
		h.respondError(c, err, fmt.Sprintf("Failed running action %v of build %v", action.Name, id))
		return
	}

	c.JSON(http.StatusOK, result)
}

// RecordActionResult appends the result of an action that ran elsewhere
func (h *Handler) RecordActionResult(c *gin.Context) {

	id := c.Param("id")

	var result build.ActionResult
	if err := c.ShouldBindJSON(&result); err != nil {
		errorMessage := fmt.Sprint("Binding RecordActionResult body failed")
		log.Error().Err(err).Msg(errorMessage)
		c.JSON(http.StatusBadRequest, gin.H{"code": http.StatusText(http.StatusBadRequest), "message": errorMessage})
		return
	}

	snapshot, err := h.buildService.RecordActionResult(c.Request.Context(), id, result)

	h.respond(c, http.StatusOK, snapshot, err, fmt.Sprintf("Failed recording action result of build %v", id))
}

// FinishBuild sets stop_time, now unless the body carries one
func (h *Handler) FinishBuild(c *gin.Context) {

	id := c.Param("id")

	var request finishBuildRequest
	if c.Request.ContentLength != 0 {
		if err := c.ShouldBindJSON(&request); err != nil {
			errorMessage := fmt.Sprint("Binding FinishBuild body failed")
			log.Error().Err(err).Msg(errorMessage)
			c.JSON(http.StatusBadRequest, gin.H{"code": http.StatusText(http.StatusBadRequest), "message": errorMessage})
			return
		}
	}
	stopTime := time.Now().UTC()
	if request.StopTime != nil {
		stopTime = request.StopTime.UTC()
	}

	snapshot, err := h.buildService.Finish(c.Request.Context(), id, stopTime)

	h.respond(c, http.StatusOK, snapshot, err, fmt.Sprintf("Failed finishing build %v", id))
}

// ForgetBuild drops a finished build from memory
func (h *Handler) ForgetBuild(c *gin.Context) {

	id := c.Param("id")

	if err := h.buildService.Forget(c.Request.Context(), id); err != nil {
		h.respondError(c, err, fmt.Sprintf("Failed forgetting build %v", id))
		return
	}

	c.JSON(http.StatusOK, gin.H{"code": http.StatusText(http.StatusOK)})
}

// respond writes the build document; a commit that made it into memory but not into the store is accepted
func (h *Handler) respond(c *gin.Context, status int, snapshot build.Build, err error, errorMessage string) {
	if err != nil {
		var persistenceErr *build.PersistenceError
		if errors.As(err, &persistenceErr) && snapshot != nil {
			log.Warn().Err(err).Msg(errorMessage)
			c.JSON(http.StatusAccepted, persistence.Document(snapshot))
			return
		}
		h.respondError(c, err, errorMessage)
		return
	}

	c.JSON(status, persistence.Document(snapshot))
}

func (h *Handler) respondError(c *gin.Context, err error, errorMessage string) {
	var validationErr *build.ValidationError
	var preconditionErr *build.PreconditionError

	switch {
	case errors.As(err, &validationErr):
		c.JSON(http.StatusBadRequest, gin.H{"code": http.StatusText(http.StatusBadRequest), "message": validationErr.Error(), "messages": validationErr.Messages})
	case errors.Is(err, ErrBuildNotFound):
		c.JSON(http.StatusNotFound, gin.H{"code": http.StatusText(http.StatusNotFound), "message": "Build not found"})
	case errors.Is(err, build.ErrProjectNotFound):
		c.JSON(http.StatusNotFound, gin.H{"code": http.StatusText(http.StatusNotFound), "message": "Project not found"})
	case errors.As(err, &preconditionErr):
		c.JSON(http.StatusConflict, gin.H{"code": http.StatusText(http.StatusConflict), "message": preconditionErr.Error()})
	default:
		log.Error().Err(err).Msg(errorMessage)
		c.JSON(http.StatusInternalServerError, gin.H{"code": http.StatusText(http.StatusInternalServerError)})
	}
}

func (h *Handler) Liveness(c *gin.Context) {
	c.String(http.StatusOK, "I'm alive!")
}

func (h *Handler) Readiness(c *gin.Context) {
	c.String(http.StatusOK, "I'm ready!")
}

// RegisterRoutes adds the build routes to the router
func (h *Handler) RegisterRoutes(router *gin.Engine) {
	router.GET("/liveness", h.Liveness)
	router.GET("/readiness", h.Readiness)

	routes := router.Group("/api")
	routes.POST("/builds", h.CreateBuild)
	routes.GET("/builds/:id", h.GetBuild)
	routes.DELETE("/builds/:id", h.ForgetBuild)
	routes.POST("/builds/:id/node", h.AssignNode)
	routes.POST("/builds/:id/actions", h.RunAction)
	routes.POST("/builds/:id/action-results", h.RecordActionResult)
	routes.POST("/builds/:id/finish", h.FinishBuild)
}
