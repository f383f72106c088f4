package v1

import (
	"net/http"
	"time"

	"github.com/expense-tracker/backend/internal/httputil"
	"github.com/expense-tracker/backend/internal/models"
	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"
)

// @Summary		Register a user
// @Description	Creates a new user and returns an access token for it
// @Tags			Authentication
// @Produce		json
// @Success		201		{object}	TokenResponse
// @Failure		400		{object}	httputil.HTTPError
// @Param			signup	body		SignupRequest	true	"User data"
// @Router			/v1/signup [post]
func (co Controller) Signup(c *gin.Context) {
	var request SignupRequest
	if err := httputil.BindData(c, &request); err != nil {
		httputil.NewError(c, status(err), err)
		return
	}

	if request.Username == "" || request.Email == "" || request.Password == "" {
		httputil.NewError(c, http.StatusBadRequest, errFieldsMissing)
		return
	}

	user := models.User{
		Username: request.Username,
		Email:    request.Email,
	}

	if err := user.SetPassword(request.Password); err != nil {
		httputil.NewError(c, http.StatusInternalServerError, models.ErrGeneral)
		return
	}

	if err := models.DB.Create(&user).Error; err != nil {
		httputil.NewError(c, status(err), err)
		return
	}

	token, err := co.newAccessToken(user.Username)
	if err != nil {
		httputil.NewError(c, http.StatusInternalServerError, models.ErrGeneral)
		return
	}

	c.JSON(http.StatusCreated, TokenResponse{AccessToken: token, TokenType: "bearer"})
}

// @Summary		Log in
// @Description	Verifies the credentials and returns an access token
// @Tags			Authentication
// @Produce		json
// @Success		200		{object}	TokenResponse
// @Failure		401		{object}	httputil.HTTPError
// @Param			login	body		LoginRequest	true	"Credentials"
// @Router			/v1/login [post]
func (co Controller) Login(c *gin.Context) {
	var request LoginRequest
	if err := httputil.BindData(c, &request); err != nil {
		httputil.NewError(c, status(err), err)
		return
	}

	var user models.User
	err := models.DB.Where(&models.User{Username: request.Username}).First(&user).Error
	if err != nil || !user.CheckPassword(request.Password) {
		httputil.NewError(c, http.StatusUnauthorized, errInvalidCredentials)
		return
	}

	token, err := co.newAccessToken(user.Username)
	if err != nil {
		httputil.NewError(c, http.StatusInternalServerError, models.ErrGeneral)
		return
	}

	c.JSON(http.StatusOK, TokenResponse{AccessToken: token, TokenType: "bearer"})
}

// @Summary		Get the authenticated user
// @Tags			Authentication
// @Produce		json
// @Success		200	{object}	UserResponse
// @Failure		401	{object}	httputil.HTTPError
// @Router			/v1/me [get]
func (co Controller) Me(c *gin.Context) {
	c.JSON(http.StatusOK, UserResponse{Data: newUser(currentUser(c))})
}

// @Summary		Request a password reset
// @Description	Mails a password reset link to the user. Always returns 200 so that the endpoint cannot be used to probe for registered addresses.
// @Tags			Authentication
// @Produce		json
// @Success		200				{object}	MessageResponse
// @Param			forgotPassword	body		ForgotPasswordRequest	true	"Email address"
// @Router			/v1/forgot-password [post]
func (co Controller) ForgotPassword(c *gin.Context) {
	var request ForgotPasswordRequest
	if err := httputil.BindData(c, &request); err != nil {
		httputil.NewError(c, status(err), err)
		return
	}

	response := MessageResponse{Message: "If this address is registered, a reset link has been sent to it"}

	var user models.User
	err := models.DB.Where(&models.User{Email: request.Email}).First(&user).Error
	if err != nil {
		c.JSON(http.StatusOK, response)
		return
	}

	reset := models.PasswordResetToken{
		UserID:    user.ID,
		ExpiresAt: time.Now().In(time.UTC).Add(time.Hour),
	}

	if err := models.DB.Create(&reset).Error; err != nil {
		log.Error().Err(err).Msg("could not create password reset token")
		c.JSON(http.StatusOK, response)
		return
	}

	resetURL := co.Config.FrontendURL + "/reset-password/" + reset.Token
	if err := co.Mail.SendPasswordReset(user.Email, user.Username, resetURL); err != nil {
		log.Error().Err(err).Msg("could not send password reset mail")
	}

	c.JSON(http.StatusOK, response)
}

// @Summary		Reset the password
// @Description	Consumes a reset token and sets a new password
// @Tags			Authentication
// @Produce		json
// @Success		200				{object}	MessageResponse
// @Failure		400				{object}	httputil.HTTPError
// @Failure		404				{object}	httputil.HTTPError
// @Param			resetPassword	body		ResetPasswordRequest	true	"Token and new password"
// @Router			/v1/reset-password [post]
func (co Controller) ResetPassword(c *gin.Context) {
	var request ResetPasswordRequest
	if err := httputil.BindData(c, &request); err != nil {
		httputil.NewError(c, status(err), err)
		return
	}

	if request.Password == "" {
		httputil.NewError(c, http.StatusBadRequest, errFieldsMissing)
		return
	}

	var reset models.PasswordResetToken
	err := models.DB.Where(&models.PasswordResetToken{Token: request.Token}).First(&reset).Error
	if err != nil {
		httputil.NewError(c, status(err), err)
		return
	}

	if err := reset.Consume(models.DB); err != nil {
		httputil.NewError(c, status(err), err)
		return
	}

	var user models.User
	if err := models.DB.First(&user, reset.UserID).Error; err != nil {
		httputil.NewError(c, status(err), err)
		return
	}

	if err := user.SetPassword(request.Password); err != nil {
		httputil.NewError(c, http.StatusInternalServerError, models.ErrGeneral)
		return
	}

	if err := models.DB.Save(&user).Error; err != nil {
		httputil.NewError(c, status(err), err)
		return
	}

	c.JSON(http.StatusOK, MessageResponse{Message: "password updated"})
}
