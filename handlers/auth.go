package handlers

import (
	"errors"
	"net/http"

	"coffee-shop-api/auth"
	"coffee-shop-api/config"
	"coffee-shop-api/middleware"
	"coffee-shop-api/models"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// The mobile client posts forms, newer clients post JSON; ShouldBind accepts
// both.
type RegisterRequest struct {
	Name     string `form:"name" json:"name" binding:"required,min=2"`
	Email    string `form:"email" json:"email" binding:"required,email"`
	Password string `form:"password" json:"password" binding:"required,min=6"`
}

type LoginRequest struct {
	Email    string `form:"email" json:"email" binding:"required,email"`
	Password string `form:"password" json:"password" binding:"required"`
}

type FirebaseAuthRequest struct {
	FirebaseToken string `form:"firebase_token" json:"firebase_token" binding:"required"`
}

type ForgotPasswordRequest struct {
	Email string `form:"email" json:"email" binding:"required,email"`
}

// UpdateProfileRequest carries partial profile fields; only non-nil fields are
// written. Both "name" and "full_name" are accepted for compatibility with
// older clients; CanonicalName picks one.
type UpdateProfileRequest struct {
	Name            *string `json:"name"`
	FullName        *string `json:"full_name"`
	Email           *string `json:"email"`
	Phone           *string `json:"phone"`
	Gender          *string `json:"gender"`
	ProfileImageURL *string `json:"profile_image_url"`
	DateOfBirth     *string `json:"date_of_birth"`
}

// CanonicalName resolves the historical name/full_name aliasing in one place:
// full_name wins when both are supplied.
func CanonicalName(name, fullName *string) (string, bool) {
	if fullName != nil {
		return *fullName, true
	}
	if name != nil {
		return *name, true
	}
	return "", false
}

// Register creates a new account with a locally hashed password.
func Register(db *gorm.DB, s *config.Settings) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req RegisterRequest
		if err := c.ShouldBind(&req); err != nil {
			respondError(c, http.StatusBadRequest, err.Error())
			return
		}

		var existing models.User
		if err := db.Where("email = ?", req.Email).First(&existing).Error; err == nil {
			respondError(c, http.StatusConflict, "User with this email already exists")
			return
		}

		hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
		if err != nil {
			respondError(c, http.StatusInternalServerError, "Failed to hash password")
			return
		}

		user := models.User{
			ID:           uuid.NewString(),
			FullName:     req.Name,
			Email:        req.Email,
			PasswordHash: string(hash),
		}
		if err := db.Create(&user).Error; err != nil {
			respondError(c, http.StatusInternalServerError, "Failed to create user")
			return
		}

		token, err := middleware.GenerateToken(s, &user)
		if err != nil {
			respondError(c, http.StatusInternalServerError, "Failed to generate token")
			return
		}

		c.JSON(http.StatusCreated, models.AuthResponse{
			Success:     true,
			Message:     "User registered successfully",
			User:        &user,
			AccessToken: token,
			TokenType:   "bearer",
		})
	}
}

// Login authenticates by email and password. Unknown email and wrong password
// produce the same message.
func Login(db *gorm.DB, s *config.Settings) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req LoginRequest
		if err := c.ShouldBind(&req); err != nil {
			respondError(c, http.StatusBadRequest, err.Error())
			return
		}

		var user models.User
		if err := db.Where("email = ?", req.Email).First(&user).Error; err != nil {
			respondError(c, http.StatusUnauthorized, "Invalid email or password")
			return
		}
		if bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.Password)) != nil {
			respondError(c, http.StatusUnauthorized, "Invalid email or password")
			return
		}

		token, err := middleware.GenerateToken(s, &user)
		if err != nil {
			respondError(c, http.StatusInternalServerError, "Failed to generate token")
			return
		}

		c.JSON(http.StatusOK, models.AuthResponse{
			Success:     true,
			Message:     "Login successful",
			User:        &user,
			AccessToken: token,
			TokenType:   "bearer",
		})
	}
}

// FirebaseAuth verifies a Firebase ID token, resolves or creates the matching
// profile, and issues a session token for it.
func FirebaseAuth(db *gorm.DB, s *config.Settings, verifier *auth.Verifier, log *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		if verifier == nil {
			respondError(c, http.StatusServiceUnavailable, "Firebase authentication is not configured")
			return
		}

		var req FirebaseAuthRequest
		if err := c.ShouldBind(&req); err != nil {
			respondError(c, http.StatusBadRequest, err.Error())
			return
		}

		identity, err := verifier.VerifyIDToken(c.Request.Context(), req.FirebaseToken)
		if err != nil {
			respondError(c, http.StatusUnauthorized, "Invalid Firebase token")
			return
		}

		user, err := getOrCreateProfile(db, identity)
		if err != nil {
			log.Error("firebase profile resolution failed", zap.Error(err), zap.String("uid", identity.UID))
			respondError(c, http.StatusInternalServerError, "Failed to process user profile")
			return
		}

		token, err := middleware.GenerateToken(s, user)
		if err != nil {
			respondError(c, http.StatusInternalServerError, "Failed to generate token")
			return
		}

		c.JSON(http.StatusOK, models.AuthResponse{
			Success:     true,
			Message:     "Authentication successful",
			User:        user,
			AccessToken: token,
			TokenType:   "bearer",
		})
	}
}

// getOrCreateProfile looks a profile up by external UID first, then by email
// for accounts created before external-identity linkage, and inserts a new row
// only when neither matches. An email-only match is re-keyed to the UID with a
// single update so the row never disappears mid-migration.
func getOrCreateProfile(db *gorm.DB, identity *auth.Identity) (*models.User, error) {
	var user models.User
	err := db.Where("id = ?", identity.UID).First(&user).Error
	if err == nil {
		return &user, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	err = db.Where("email = ?", identity.Email).First(&user).Error
	if err == nil {
		if err := db.Model(&models.User{}).
			Where("email = ?", identity.Email).
			Update("id", identity.UID).Error; err != nil {
			return nil, err
		}
		user.ID = identity.UID
		return &user, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	user = models.User{
		ID:            identity.UID,
		FullName:      identity.Name,
		Email:         identity.Email,
		EmailVerified: identity.EmailVerified,
	}
	if err := db.Create(&user).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

// ForgotPassword generates a short-lived reset token for the out-of-band
// mailer. The response never reveals whether the account exists.
func ForgotPassword(db *gorm.DB, log *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req ForgotPasswordRequest
		if err := c.ShouldBind(&req); err != nil {
			respondError(c, http.StatusBadRequest, err.Error())
			return
		}

		var user models.User
		if err := db.Where("email = ?", req.Email).First(&user).Error; err == nil {
			resetToken := uuid.NewString()
			log.Info("password reset requested",
				zap.String("user_id", user.ID),
				zap.String("reset_token", resetToken),
			)
		}

		respond(c, http.StatusOK, "Password reset email sent successfully", nil)
	}
}

// Me returns the authenticated caller's profile.
func Me(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID := middleware.GetUserID(c)
		var user models.User
		if err := db.First(&user, "id = ?", userID).Error; err != nil {
			respondError(c, http.StatusNotFound, "User profile not found")
			return
		}
		respond(c, http.StatusOK, "Profile retrieved successfully", user)
	}
}

// GetProfile fetches the caller's profile fresh from the store.
func GetProfile(db *gorm.DB) gin.HandlerFunc {
	return Me(db)
}

// UpdateProfile applies the provided fields to the caller's profile. An
// empty effective field set returns the unchanged profile without touching
// the store.
func UpdateProfile(db *gorm.DB, log *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID := middleware.GetUserID(c)

		var req UpdateProfileRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			respondError(c, http.StatusBadRequest, err.Error())
			return
		}

		updates := map[string]any{}
		if name, ok := CanonicalName(req.Name, req.FullName); ok {
			updates["full_name"] = name
		}
		if req.Email != nil {
			updates["email"] = *req.Email
		}
		if req.Phone != nil {
			updates["phone"] = *req.Phone
		}
		if req.Gender != nil {
			updates["gender"] = *req.Gender
		}
		if req.ProfileImageURL != nil {
			updates["profile_image_url"] = *req.ProfileImageURL
		}
		if req.DateOfBirth != nil {
			updates["date_of_birth"] = *req.DateOfBirth
		}

		var user models.User
		if err := db.First(&user, "id = ?", userID).Error; err != nil {
			respondError(c, http.StatusNotFound, "User profile not found")
			return
		}

		if len(updates) == 0 {
			respond(c, http.StatusOK, "No profile data to update", user)
			return
		}

		result := db.Model(&models.User{}).Where("id = ?", userID).Updates(updates)
		if result.Error != nil {
			log.Error("profile update failed", zap.Error(result.Error), zap.String("user_id", userID))
			respondError(c, http.StatusInternalServerError, "Failed to update profile")
			return
		}
		if result.RowsAffected == 0 {
			respondError(c, http.StatusNotFound, "User profile not found")
			return
		}

		db.First(&user, "id = ?", userID)
		respond(c, http.StatusOK, "Profile updated successfully", user)
	}
}
