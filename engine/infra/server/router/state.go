package router

import (
	"github.com/gin-gonic/gin"
	"github.com/techtrends/techtrends/engine/infra/server/appstate"
)

// GetAppState returns the application state or aborts the request with a 500.
func GetAppState(c *gin.Context) *appstate.State {
	state, err := appstate.GetState(c.Request.Context())
	if err != nil {
		RespondWithError(c, WrapServerError(ErrInternalCode, ErrMsgAppStateNotInitialized, err))
		return nil
	}
	return state
}
