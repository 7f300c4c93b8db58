package handler

import (
	"io"

	"main/usecase"
	"main/utils"

	"github.com/gin-gonic/gin"
)

// maxImportBytes caps import uploads; boards are small JSON documents.
const maxImportBytes = 4 << 20

func ExportHandler(c *gin.Context, svc *usecase.TransferService) {
	c.Header("Content-Disposition", `attachment; filename="todo-export.json"`)
	c.JSON(200, svc.Export())
}

// ImportHandler accepts any of the three historical file shapes. A file that
// matches none of them, or fails to decode, aborts with a single error and no
// partial merge.
func ImportHandler(c *gin.Context, svc *usecase.TransferService) {
	raw, err := io.ReadAll(io.LimitReader(c.Request.Body, maxImportBytes))
	if err != nil {
		utils.BadRequest(c, "Could not read import file")
		return
	}

	summary, err := svc.Import(raw)
	if err != nil {
		utils.BadRequest(c, err.Error())
		return
	}
	utils.Success(c, summary)
}
