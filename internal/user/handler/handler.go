package handler

import (
	"strconv"

	"github.com/fekuna/omnipos-restaurant-service/internal/auth"
	"github.com/fekuna/omnipos-restaurant-service/internal/model"
	"github.com/fekuna/omnipos-restaurant-service/internal/user"
	"github.com/fekuna/omnipos-restaurant-service/internal/user/dto"
	"github.com/fekuna/omnipos-restaurant-service/pkg/logger"
	"github.com/fekuna/omnipos-restaurant-service/pkg/resp"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type UserHandler struct {
	uc     user.UseCase
	logger logger.ZapLogger
}

func NewUserHandler(uc user.UseCase, log logger.ZapLogger) *UserHandler {
	return &UserHandler{
		uc:     uc,
		logger: log,
	}
}

func (h *UserHandler) Login(c *gin.Context) {
	var input dto.LoginInput
	if !resp.BindJSON(c, &input) {
		return
	}

	result, err := h.uc.Login(c.Request.Context(), &input)
	if err != nil {
		h.logger.Warn("login failed", zap.String("email", input.Email), zap.Error(err))
		resp.Error(c, err)
		return
	}
	resp.OK(c, result)
}

func (h *UserHandler) Register(c *gin.Context) {
	var input dto.RegisterInput
	if !resp.BindJSON(c, &input) {
		return
	}

	u, err := h.uc.Register(c.Request.Context(), &input)
	if err != nil {
		resp.Error(c, err)
		return
	}
	resp.Created(c, u)
}

func (h *UserHandler) Profile(c *gin.Context) {
	u, err := h.uc.GetUser(c.Request.Context(), auth.GetUserID(c))
	if err != nil {
		resp.Error(c, err)
		return
	}
	resp.OK(c, u)
}

func (h *UserHandler) Create(c *gin.Context) {
	var input dto.CreateUserInput
	if !resp.BindJSON(c, &input) {
		return
	}

	u, err := h.uc.CreateUser(c.Request.Context(), &input)
	if err != nil {
		resp.Error(c, err)
		return
	}
	resp.Created(c, u)
}

func (h *UserHandler) List(c *gin.Context) {
	filters := &dto.UserFilters{}
	if r := c.Query("role"); r != "" {
		role := model.Role(r)
		filters.Role = &role
	}
	if a := c.Query("isActive"); a != "" {
		active, err := strconv.ParseBool(a)
		if err != nil {
			resp.BadRequest(c, "invalid isActive")
			return
		}
		filters.IsActive = &active
	}
	filters.Page, filters.PageSize = resp.Pagination(c)

	users, count, err := h.uc.ListUsers(c.Request.Context(), filters)
	if err != nil {
		resp.Error(c, err)
		return
	}
	c.Header("X-Total-Count", strconv.Itoa(count))
	resp.OK(c, users)
}

func (h *UserHandler) Get(c *gin.Context) {
	id, ok := resp.ParamID(c, "id")
	if !ok {
		return
	}

	u, err := h.uc.GetUser(c.Request.Context(), id)
	if err != nil {
		resp.Error(c, err)
		return
	}
	resp.OK(c, u)
}

func (h *UserHandler) Update(c *gin.Context) {
	id, ok := resp.ParamID(c, "id")
	if !ok {
		return
	}
	var input dto.UpdateUserInput
	if !resp.BindJSON(c, &input) {
		return
	}
	input.ID = id

	u, err := h.uc.UpdateUser(c.Request.Context(), &input)
	if err != nil {
		resp.Error(c, err)
		return
	}
	resp.OK(c, u)
}

func (h *UserHandler) Deactivate(c *gin.Context) {
	id, ok := resp.ParamID(c, "id")
	if !ok {
		return
	}

	u, err := h.uc.DeactivateUser(c.Request.Context(), id)
	if err != nil {
		resp.Error(c, err)
		return
	}
	resp.OK(c, u)
}

func (h *UserHandler) Delete(c *gin.Context) {
	id, ok := resp.ParamID(c, "id")
	if !ok {
		return
	}

	if err := h.uc.DeleteUser(c.Request.Context(), id); err != nil {
		resp.Error(c, err)
		return
	}
	resp.NoContent(c)
}
