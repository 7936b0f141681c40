package main

import (
	"net/http"
	"strings"

	"foliohub/models"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"
	"gorm.io/gorm"
)

type registerRequest struct {
	Username      string `json:"username" binding:"required,min=3,max=64"`
	Email         string `json:"email" binding:"required,email"`
	Password      string `json:"password" binding:"required,min=6"`
	PortfolioData struct {
		FullName string `json:"fullName" binding:"required"`
		Bio      string `json:"bio"`
		Title    string `json:"title"`
		Location string `json:"location"`
	} `json:"portfolioData" binding:"required"`
}

// registerHandler creates an account with its embedded portfolio. Every
// registered user is the admin of their own portfolio.
func registerHandler(c *gin.Context) {
	var req registerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		fail(c, http.StatusBadRequest, err.Error())
		return
	}
	username := strings.ToLower(strings.TrimSpace(req.Username))
	email := strings.ToLower(strings.TrimSpace(req.Email))

	var existing models.User
	if err := db.Where("username = ? OR email = ?", username, email).First(&existing).Error; err == nil {
		fail(c, http.StatusConflict, "username or email already registered")
		return
	}
	hash, err := hashPassword(req.Password)
	if err != nil {
		failErr(c, http.StatusInternalServerError, "registration failed", err)
		return
	}
	u := models.User{
		Username:       username,
		Email:          email,
		HashedPassword: hash,
		Role:           models.RoleAdmin,
		Portfolio: models.Portfolio{
			FullName:     req.PortfolioData.FullName,
			Bio:          req.PortfolioData.Bio,
			Title:        req.PortfolioData.Title,
			Location:     req.PortfolioData.Location,
			ContactEmail: email,
			IsPublic:     true,
		},
	}
	if err := db.Create(&u).Error; err != nil {
		// unique indexes close the check-then-insert race
		if isUniqueConstraintError(err) {
			fail(c, http.StatusConflict, "username or email already registered")
			return
		}
		failErr(c, http.StatusInternalServerError, "registration failed", err)
		return
	}
	token, err := issueToken(&u, cfg.JWT.Secret, cfg.JWT.TTL)
	if err != nil {
		failErr(c, http.StatusInternalServerError, "failed to issue token", err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"message": "account created", "token": token, "user": u})
}

type loginRequest struct {
	// Either key works, and either may hold the username or the email.
	Login    string `json:"login"`
	Username string `json:"username"`
	Password string `json:"password" binding:"required"`
}

func loginHandler(c *gin.Context) {
	var req loginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		fail(c, http.StatusBadRequest, err.Error())
		return
	}
	login := strings.ToLower(strings.TrimSpace(req.Login))
	if login == "" {
		login = strings.ToLower(strings.TrimSpace(req.Username))
	}
	if login == "" {
		fail(c, http.StatusBadRequest, "login is required")
		return
	}
	var u models.User
	if err := db.Where("username = ? OR email = ?", login, login).First(&u).Error; err != nil {
		fail(c, http.StatusUnauthorized, "invalid credentials")
		return
	}
	if !checkPassword(u.HashedPassword, req.Password) {
		fail(c, http.StatusUnauthorized, "invalid credentials")
		return
	}
	backfillPortfolio(&u)
	token, err := issueToken(&u, cfg.JWT.Secret, cfg.JWT.TTL)
	if err != nil {
		failErr(c, http.StatusInternalServerError, "failed to issue token", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "login successful", "token": token, "user": u})
}

// backfillPortfolio patches missing profile fields on legacy accounts.
// Best effort only: a failure here never blocks login.
func backfillPortfolio(u *models.User) {
	changed := false
	if u.Portfolio.FullName == "" {
		u.Portfolio.FullName = u.Username
		changed = true
	}
	if u.Portfolio.ContactEmail == "" {
		u.Portfolio.ContactEmail = u.Email
		changed = true
	}
	if !changed {
		return
	}
	if err := db.Model(u).Updates(map[string]any{
		"portfolio_full_name":     u.Portfolio.FullName,
		"portfolio_contact_email": u.Portfolio.ContactEmail,
	}).Error; err != nil {
		log.Warn().Err(err).Uint("user", u.ID).Msg("portfolio backfill failed")
	}
}

func meHandler(c *gin.Context) {
	u, ok := currentUser(c)
	if !ok {
		return
	}
	c.JSON(http.StatusOK, gin.H{"user": u})
}

func verifyHandler(c *gin.Context) {
	claims := tokenClaims(c)
	if claims == nil {
		fail(c, http.StatusUnauthorized, "invalid token")
		return
	}
	c.JSON(http.StatusOK, gin.H{"valid": true, "userId": claims.UserID, "username": claims.Username, "role": claims.Role})
}

// logoutHandler acknowledges logout. Tokens are stateless; the client
// discards its copy and the token ages out at expiry.
func logoutHandler(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"message": "logged out"})
}

// defaultPortfolioHandler serves the portfolio shown at the bare root
// path: the flagged default account, else the oldest public one.
func defaultPortfolioHandler(c *gin.Context) {
	var u models.User
	err := db.Where("is_default_user = ?", true).First(&u).Error
	if err != nil {
		err = db.Where("portfolio_is_public = ?", true).Order("id asc").First(&u).Error
	}
	if err != nil {
		fail(c, http.StatusNotFound, "no default portfolio configured")
		return
	}
	c.JSON(http.StatusOK, gin.H{"user": u})
}

func getPortfolioHandler(c *gin.Context) {
	u, ok := publicAccount(c)
	if !ok {
		return
	}
	c.JSON(http.StatusOK, gin.H{"user": u})
}

type portfolioUpdateRequest struct {
	FullName      *string             `json:"fullName"`
	Bio           *string             `json:"bio"`
	Title         *string             `json:"title"`
	Location      *string             `json:"location"`
	ContactEmail  *string             `json:"contactEmail"`
	Phone         *string             `json:"phone"`
	Social        *models.SocialLinks `json:"socialLinks"`
	Theme         *models.ThemeColors `json:"theme"`
	IsPublic      *bool               `json:"isPublic"`
	ShowAnalytics *bool               `json:"showAnalytics"`
	CustomDomain  *string             `json:"customDomain"`
}

// updatePortfolioHandler applies a partial profile update. The target is
// always the authenticated account; there is no cross-tenant path here.
func updatePortfolioHandler(c *gin.Context) {
	u, ok := currentUser(c)
	if !ok {
		return
	}
	var req portfolioUpdateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		fail(c, http.StatusBadRequest, err.Error())
		return
	}
	if req.FullName != nil {
		if strings.TrimSpace(*req.FullName) == "" {
			fail(c, http.StatusBadRequest, "fullName cannot be empty")
			return
		}
		u.Portfolio.FullName = *req.FullName
	}
	if req.Bio != nil {
		u.Portfolio.Bio = *req.Bio
	}
	if req.Title != nil {
		u.Portfolio.Title = *req.Title
	}
	if req.Location != nil {
		u.Portfolio.Location = *req.Location
	}
	if req.ContactEmail != nil {
		u.Portfolio.ContactEmail = *req.ContactEmail
	}
	if req.Phone != nil {
		u.Portfolio.Phone = *req.Phone
	}
	if req.Social != nil {
		u.Portfolio.Social = *req.Social
	}
	if req.Theme != nil {
		u.Portfolio.Theme = *req.Theme
	}
	if req.IsPublic != nil {
		u.Portfolio.IsPublic = *req.IsPublic
	}
	if req.ShowAnalytics != nil {
		u.Portfolio.ShowAnalytics = *req.ShowAnalytics
	}
	if req.CustomDomain != nil {
		u.Portfolio.CustomDomain = *req.CustomDomain
	}
	if err := db.Save(u).Error; err != nil {
		failErr(c, http.StatusInternalServerError, "failed to update portfolio", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "portfolio updated", "user": u})
}

// publicPortfoliosHandler lists every account whose portfolio is public.
func publicPortfoliosHandler(c *gin.Context) {
	var users []models.User
	if err := db.Where("portfolio_is_public = ?", true).Order("id asc").Find(&users).Error; err != nil {
		failErr(c, http.StatusInternalServerError, "failed to list portfolios", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"users": users, "count": len(users)})
}

// setDefaultPortfolioHandler reassigns the root-path portfolio. The clear
// and set run in one transaction so no window shows two defaults.
func setDefaultPortfolioHandler(c *gin.Context) {
	username := c.Param("username")
	var target models.User
	if err := db.Where("username = ?", username).First(&target).Error; err != nil {
		fail(c, http.StatusNotFound, "account not found")
		return
	}
	err := db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(&models.User{}).Where("is_default_user = ?", true).
			Update("is_default_user", false).Error; err != nil {
			return err
		}
		return tx.Model(&target).Update("is_default_user", true).Error
	})
	if err != nil {
		failErr(c, http.StatusInternalServerError, "failed to set default portfolio", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "default portfolio updated", "username": target.Username})
}

// deleteAccountHandler removes the authenticated account and every owned
// entity in one transaction, then best-effort deletes the remote objects.
func deleteAccountHandler(c *gin.Context) {
	u, ok := currentUser(c)
	if !ok {
		return
	}
	var keys []string
	collectKeys := func(rows []string) { keys = append(keys, rows...) }
	var imageKeys, musicKeys, cvKeys []string
	db.Model(&models.Image{}).Where("user_id = ?", u.ID).Pluck("storage_id", &imageKeys)
	db.Model(&models.MusicTrack{}).Where("user_id = ?", u.ID).Pluck("storage_id", &musicKeys)
	db.Model(&models.CVDocument{}).Where("user_id = ?", u.ID).Pluck("storage_id", &cvKeys)
	collectKeys(imageKeys)
	collectKeys(musicKeys)
	collectKeys(cvKeys)
	if u.Portfolio.Picture.StorageID != "" {
		keys = append(keys, u.Portfolio.Picture.StorageID)
	}

	err := db.Transaction(func(tx *gorm.DB) error {
		owner := "user_id = ?"
		for _, m := range []any{
			&models.Project{}, &models.Image{}, &models.MusicTrack{},
			&models.Skill{}, &models.ContactMessage{}, &models.CVDocument{},
			&models.AnalyticsEvent{}, &models.VisitorSession{},
		} {
			if err := tx.Where(owner, u.ID).Delete(m).Error; err != nil {
				return err
			}
		}
		return tx.Unscoped().Delete(u).Error
	})
	if err != nil {
		failErr(c, http.StatusInternalServerError, "failed to delete account", err)
		return
	}
	for _, key := range keys {
		if key == "" {
			continue
		}
		if err := store.Delete(c.Request.Context(), key); err != nil {
			log.Warn().Err(err).Str("key", key).Msg("remote object cleanup failed")
		}
	}
	c.JSON(http.StatusOK, gin.H{"message": "account deleted"})
}
