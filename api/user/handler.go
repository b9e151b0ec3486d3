package user

import (
	"time"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

const LoginTTL = 24 * time.Hour

// UserHandler serves the account endpoints. Register and Login run before
// authentication so they need their own DB handle.
type UserHandler struct {
	DB           *gorm.DB
	Log          *zap.Logger
	CookieDomain string
}
