package handlers

import (
	"errors"
	"net/http"
	"os"
	"path/filepath"
	"regexp"
	"time"

	"Backend/jwt"
	"Backend/models"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// ValidateEmail checks whether the email is well-formed.
func ValidateEmail(email string) bool {
	pattern := "^[a-zA-Z0-9_.+-]+@[a-zA-Z0-9-]+\\.[a-zA-Z0-9-.]+$"
	matched, _ := regexp.MatchString(pattern, email)
	return matched
}

// IsUsernameExists checks whether the username is already taken.
func IsUsernameExists(db *gorm.DB, username string) (bool, error) {
	var user models.User
	err := db.First(&user, "Username = ?", username).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return false, nil
		}
		return false, err
	}
	return true, nil
}

// SignupHandler registers a user from a multipart form: username, email,
// password and a required profile picture, which is stored under uploadsDir
// with a unique filename.
func SignupHandler(c *gin.Context, db *gorm.DB, uploadsDir string) {
	username := c.PostForm("username")
	email := c.PostForm("email")
	password := c.PostForm("password")

	if username == "" || email == "" || password == "" {
		c.JSON(http.StatusBadRequest, gin.H{
			"message": "Username, email and password are required",
		})
		return
	}

	if !ValidateEmail(email) {
		c.JSON(http.StatusBadRequest, gin.H{
			"message": "Invalid email address",
		})
		return
	}

	exists, err := IsUsernameExists(db, username)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"message": "Could not check username",
		})
		return
	}
	if exists {
		c.JSON(http.StatusBadRequest, gin.H{
			"message": "User with username " + username + " already exists",
		})
		return
	}

	profilePicture, err := c.FormFile("profilePicture")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"message": "Profile picture is required!",
		})
		return
	}

	if err := os.MkdirAll(uploadsDir, 0755); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"message": "Could not create uploads folder",
		})
		return
	}

	// unique stored name keeps one upload from clobbering another
	pictureName := uuid.New().String() + filepath.Ext(profilePicture.Filename)
	if err := c.SaveUploadedFile(profilePicture, filepath.Join(uploadsDir, pictureName)); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"message": "Could not save profile picture",
		})
		return
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"message": "Could not hash password",
		})
		return
	}

	newUser := models.User{
		Username:       username,
		Email:          email,
		Password:       string(hashedPassword),
		ProfilePicture: pictureName,
		Role:           models.RoleCustomer,
	}
	if err := db.Create(&newUser).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"message": "Could not save user",
		})
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"message":  "User created successfully",
		"username": newUser.Username,
	})
}

func LoginHandler(c *gin.Context, db *gorm.DB) {
	if _, ok := c.Get("UserID"); ok {
		c.JSON(http.StatusOK, gin.H{
			"message": "Already logged in",
		})
		return
	}

	var loginReq struct {
		Username string `json:"username" binding:"required"`
		Password string `json:"password" binding:"required"`
	}
	if err := c.ShouldBindJSON(&loginReq); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"message": "Could not bind request data",
			"error":   err.Error(),
		})
		return
	}

	var user models.User
	err := db.First(&user, "Username = ?", loginReq.Username).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusBadRequest, gin.H{
				"message": "Invalid credentials",
			})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{
			"message": "Database error",
		})
		return
	}

	err = bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(loginReq.Password))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"message": "Invalid credentials",
		})
		return
	}

	tokenExpiredTime := time.Now().Add(time.Hour * 24)
	token, err := jwt.GenerateToken(user.ID, user.Role, tokenExpiredTime.Unix())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"message": "Could not generate token",
		})
		return
	}

	loginToken := models.LoginToken{
		Token:          token,
		ExpirationTime: tokenExpiredTime,
		UserID:         user.ID,
		Role:           user.Role,
	}
	if err := db.Create(&loginToken).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"message": "Could not save login token",
		})
		return
	}

	c.Header("Authorization", "Bearer "+token)
	c.JSON(http.StatusOK, gin.H{
		"message":      "Logged in successfully",
		"access_token": token,
	})
}

func LogOutHandler(c *gin.Context, db *gorm.DB) {
	token, exists := c.Get("Token")
	if !exists {
		c.JSON(http.StatusBadRequest, gin.H{
			"message": "Could not get token",
		})
		return
	}

	result := db.Delete(&models.LoginToken{}, "Token = ?", token)
	if result.Error != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"message": "Database error",
		})
		return
	}
	if result.RowsAffected == 0 {
		c.JSON(http.StatusBadRequest, gin.H{
			"message": "Token not found or already logged out",
		})
		return
	}

	c.Header("Authorization", "")
	c.JSON(http.StatusOK, gin.H{
		"message": "Logged out successfully",
	})
}

// GetProfileHandler returns the current user's profile.
func GetProfileHandler(c *gin.Context, db *gorm.DB) {
	userID, ok := getUserID(c)
	if !ok {
		return
	}

	var user models.User
	err := db.First(&user, "id = ?", userID).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, gin.H{
				"message": "User not found",
			})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{
			"message": "Could not get user profile",
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"username":        user.Username,
		"profile_picture": user.ProfilePicture,
	})
}

// UpdateProfileHandler updates the current user's profile picture reference.
func UpdateProfileHandler(c *gin.Context, db *gorm.DB) {
	userID, ok := getUserID(c)
	if !ok {
		return
	}

	var user models.User
	err := db.First(&user, "id = ?", userID).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, gin.H{
				"message": "User not found",
			})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{
			"message": "Could not get user profile",
		})
		return
	}

	var profileReq struct {
		ProfilePicture string `json:"profile_picture"`
	}
	if err := c.ShouldBindJSON(&profileReq); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"message": "Could not bind request data",
			"error":   err.Error(),
		})
		return
	}

	if profileReq.ProfilePicture != "" {
		user.ProfilePicture = profileReq.ProfilePicture
	}

	if err := db.Save(&user).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"message": "Could not update user profile",
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Profile updated successfully",
	})
}
