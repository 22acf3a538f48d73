package server

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/wantsapp/wants-backend/model"
	"github.com/wantsapp/wants-backend/utils"
	"github.com/wantsapp/wants-backend/wants"
	Logger "github.com/wantsapp/wants-backend/utils/log"
)

// Handlers exposes the want service over REST.
type Handlers struct {
	wants *wants.Service
}

func NewHandlers(wantService *wants.Service) *Handlers {
	return &Handlers{wants: wantService}
}

// Register binds all want routes onto the router group.
func (h *Handlers) Register(router gin.IRouter) {
	v1 := router.Group("/v1")
	v1.POST("/wants", h.CreateWant)
	v1.GET("/wants/home-feed", h.HomeFeed)
	v1.GET("/wants/:id", h.GetWant)
	v1.PATCH("/wants/:id", h.UpdateWant)
}

// callerId returns the authenticated user id injected by the JWT middleware.
func callerId(c *gin.Context) string {
	return c.Request.Header.Get("sub")
}

func abortWithError(c *gin.Context, err error) {
	switch {
	case utils.IsNotFound(err):
		c.JSON(http.StatusNotFound, gin.H{"code": utils.ErrorNotFound, "msg": err.Error()})
	case utils.IsInvalidArgument(err):
		c.JSON(http.StatusBadRequest, gin.H{"code": utils.ErrorInvalidArgument, "msg": err.Error()})
	case utils.IsExplicitContent(err):
		c.JSON(http.StatusUnprocessableEntity, gin.H{"code": utils.ErrorExplicitContent, "msg": err.Error()})
	default:
		Logger.Log.Error("internal failure: ", err)
		c.JSON(http.StatusInternalServerError, gin.H{"code": utils.ErrorInternalFailure, "msg": "internal failure"})
	}
}

type createWantRequest struct {
	Title       string                `json:"title"`
	Description string                `json:"description"`
	Visibility  wants.VisibilityInput `json:"visibility"`
}

func (h *Handlers) CreateWant(c *gin.Context) {
	var req createWantRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"code": utils.ErrorInvalidArgument, "msg": err.Error()})
		return
	}

	want, err := h.wants.CreateWant(c.Request.Context(), wants.CreateWantInput{
		CreatorId:   callerId(c),
		Title:       req.Title,
		Description: req.Description,
		Visibility:  req.Visibility,
	})
	if err != nil {
		abortWithError(c, err)
		return
	}
	c.JSON(http.StatusCreated, want)
}

func (h *Handlers) GetWant(c *gin.Context) {
	want, err := h.wants.GetWant(c.Request.Context(), c.Param("id"))
	if err != nil {
		abortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, want)
}

type updateWantRequest struct {
	AdminIds    []string               `json:"adminIds"`
	MemberIds   []string               `json:"memberIds"`
	Title       *string                `json:"title"`
	Description *string                `json:"description"`
	Visibility  *wants.VisibilityInput `json:"visibility"`
	Image       *struct {
		Data     []byte `json:"data"`
		MimeType string `json:"mimeType"`
	} `json:"image"`
}

func (h *Handlers) UpdateWant(c *gin.Context) {
	wantId := c.Param("id")

	var req updateWantRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"code": utils.ErrorInvalidArgument, "msg": err.Error()})
		return
	}

	// Only administrators may mutate a want.
	existing, err := h.wants.GetWant(c.Request.Context(), wantId)
	if err != nil {
		abortWithError(c, err)
		return
	}
	if !utils.ContainsString(existing.AdminIds, callerId(c)) {
		c.JSON(http.StatusForbidden, gin.H{"code": utils.ErrorTokenAuthFail, "msg": "only administrators can update a want"})
		return
	}

	input := wants.UpdateWantInput{
		AdminIds:    req.AdminIds,
		MemberIds:   req.MemberIds,
		Title:       req.Title,
		Description: req.Description,
		Visibility:  req.Visibility,
	}
	if req.Image != nil {
		input.Image = &wants.ImageUpload{Data: req.Image.Data, MimeType: req.Image.MimeType}
	}

	want, err := h.wants.UpdateWant(c.Request.Context(), wantId, input)
	if err != nil {
		abortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, want)
}

func (h *Handlers) HomeFeed(c *gin.Context) {
	origin, err := parseOrigin(c)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"code": utils.ErrorInvalidArgument, "msg": err.Error()})
		return
	}

	feed, err := h.wants.GetHomeFeed(c.Request.Context(), callerId(c), origin)
	if err != nil {
		abortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"wants": feed})
}

// parseOrigin reads optional latitude/longitude query params. Supplying only
// one of the two is rejected; supplying neither disables location filtering
// and scoring.
func parseOrigin(c *gin.Context) (*model.GeolocationCoordinates, error) {
	latStr := c.Query("latitude")
	lngStr := c.Query("longitude")

	if latStr == "" && lngStr == "" {
		return nil, nil
	}
	if latStr == "" || lngStr == "" {
		return nil, utils.NewInvalidArgumentError("latitude and longitude must be supplied together")
	}

	lat, err := strconv.ParseFloat(latStr, 64)
	if err != nil {
		return nil, utils.NewInvalidArgumentError("invalid latitude %q", latStr)
	}
	lng, err := strconv.ParseFloat(lngStr, 64)
	if err != nil {
		return nil, utils.NewInvalidArgumentError("invalid longitude %q", lngStr)
	}

	return &model.GeolocationCoordinates{Latitude: lat, Longitude: lng}, nil
}
