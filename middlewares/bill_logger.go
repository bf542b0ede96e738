package middlewares

import (
	"github.com/gin-gonic/gin"

	"github.com/tablefactory/order-app/utils"
)

// BillLoggerMiddleware audits bill exports so misprinted invoices can be
// traced back to a request.
func BillLoggerMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		utils.InfoLogger.Printf("Exporting bill ID: %s", c.Param("bill_id"))

		c.Next()

		if c.Writer.Status() == 200 {
			utils.InfoLogger.Printf("Bill %s exported successfully", c.Param("bill_id"))
		} else {
			utils.ErrorLogger.Printf("Failed to export bill %s (status %d)", c.Param("bill_id"), c.Writer.Status())
		}
	}
}
