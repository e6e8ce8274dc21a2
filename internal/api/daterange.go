package api

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
)

const dateLayout = "2006-01-02"

// DateRange is a half-open [From, To) window over created_at. Nil bounds are open.
type DateRange struct {
	From *time.Time
	To   *time.Time
}

// QueryDateRange reads ?from= and ?to= as calendar days, to inclusive.
func QueryDateRange(c *gin.Context) (DateRange, bool) {
	var r DateRange

	if s := c.Query("from"); s != "" {
		from, err := time.Parse(dateLayout, s)
		if err != nil {
			c.JSON(http.StatusBadRequest, ErrorResponse{Error: "from must be a date formatted YYYY-MM-DD", Field: "from"})
			return DateRange{}, false
		}
		r.From = &from
	}

	if s := c.Query("to"); s != "" {
		to, err := time.Parse(dateLayout, s)
		if err != nil {
			c.JSON(http.StatusBadRequest, ErrorResponse{Error: "to must be a date formatted YYYY-MM-DD", Field: "to"})
			return DateRange{}, false
		}
		end := to.AddDate(0, 0, 1)
		r.To = &end
	}

	return r, true
}
