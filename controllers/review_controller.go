package controllers

import (
	"strconv"

	"mealhub/pkg/resp"
	"mealhub/services"
	"mealhub/utils"

	"github.com/gin-gonic/gin"
)

type ReviewController struct {
	Svc *services.ReviewService
}

func NewReviewController(svc *services.ReviewService) *ReviewController {
	return &ReviewController{Svc: svc}
}

// POST /orders/:id/review
func (rc *ReviewController) Create(c *gin.Context) {
	uid := utils.CurrentUserID(c)
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		resp.BadRequest(c, "invalid order id")
		return
	}

	var in services.CreateReviewInput
	if err := c.ShouldBindJSON(&in); err != nil {
		resp.BadRequest(c, err.Error())
		return
	}

	review, err := rc.Svc.Create(uid, uint(id), &in)
	if err != nil {
		writeServiceError(c, err)
		return
	}
	resp.Created(c, review)
}
