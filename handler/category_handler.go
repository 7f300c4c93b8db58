package handler

import (
	"strconv"

	"main/dto"
	"main/usecase"
	"main/utils"

	"github.com/gin-gonic/gin"
)

func GetCategoriesHandler(c *gin.Context, svc *usecase.BoardService) {
	utils.Success(c, gin.H{"categories": svc.Categories()})
}

func CreateCategoryHandler(c *gin.Context, svc *usecase.BoardService) {
	var req dto.CreateCategoryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequest(c, "Invalid category data")
		return
	}

	category, err := svc.AddCategory(req.Name)
	if err != nil {
		utils.BadRequest(c, err.Error())
		return
	}
	utils.Created(c, category)
}

// DeleteCategoryHandler cascades to the category's tasks. Reserved
// categories are silently left alone; the UI treats this as a no-op, not an
// error.
func DeleteCategoryHandler(c *gin.Context, svc *usecase.BoardService) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		utils.BadRequest(c, "Invalid category id")
		return
	}
	svc.DeleteCategory(id)
	utils.NoContent(c)
}

func ActivateCategoryHandler(c *gin.Context, svc *usecase.BoardService) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		utils.BadRequest(c, "Invalid category id")
		return
	}
	if err := svc.SetActiveCategory(id); err != nil {
		utils.NotFound(c, "Category not found")
		return
	}
	utils.Success(c, gin.H{"activeCategoryId": id})
}
