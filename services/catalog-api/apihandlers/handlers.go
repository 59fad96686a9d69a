package apihandlers

import (
	"context"
	"net/http"
	"time"

	"github.com/Pablocb541/PlayFlixV2-BackEnd/pkg/catalog"
	jwthandling "github.com/Pablocb541/PlayFlixV2-BackEnd/pkg/jwt-handling"
	usermanagement "github.com/Pablocb541/PlayFlixV2-BackEnd/pkg/user-management"
	"github.com/gin-gonic/gin"
)

const (
	verifiedRedirect = "/login.html"
	profileRedirect  = "./videos.html"
)

func HealthCheckHandle(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

// BlockedTokenStore keeps logged out session tokens until they expire.
type BlockedTokenStore interface {
	AddBlockedJwt(ctx context.Context, token string, expiresAt time.Time) error
	IsJwtBlocked(ctx context.Context, token string) (bool, error)
}

type HttpEndpoints struct {
	userManagement *usermanagement.Service
	catalog        *catalog.Manager
	tokens         *jwthandling.TokenService
	blockedTokens  BlockedTokenStore
}

func NewHTTPHandler(
	userManagement *usermanagement.Service,
	catalogManager *catalog.Manager,
	tokens *jwthandling.TokenService,
	blockedTokens BlockedTokenStore,
) *HttpEndpoints {
	return &HttpEndpoints{
		userManagement: userManagement,
		catalog:        catalogManager,
		tokens:         tokens,
		blockedTokens:  blockedTokens,
	}
}

// AddRoutes registers every endpoint below rg.
func (h *HttpEndpoints) AddRoutes(rg *gin.RouterGroup) {
	h.AddRegistrationAPI(rg)
	h.AddAuthenticationAPI(rg)
	h.AddProfilesAPI(rg)
	h.AddVideosAPI(rg)
	h.AddPlaylistsAPI(rg)
}
