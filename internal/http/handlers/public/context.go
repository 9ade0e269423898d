package public

import (
	handlershared "github.com/bookshop-next/internal/http/handlers/shared"

	"github.com/gin-gonic/gin"
)

func getMemberID(c *gin.Context) (uint, bool) {
	return handlershared.GetContextUint(c, "member_id")
}
