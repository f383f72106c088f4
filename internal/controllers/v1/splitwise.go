package v1

import (
	"errors"
	"net/http"
	"time"

	"github.com/expense-tracker/backend/internal/httputil"
	"github.com/expense-tracker/backend/internal/models"
	"github.com/expense-tracker/backend/internal/splitwise"
	"github.com/gin-contrib/requestid"
	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/rs/zerolog/log"
	"gorm.io/gorm"
)

// stateAudience marks the short-lived JWT that carries the user through the
// OAuth redirect. The callback request has no Authorization header, the
// state parameter is what ties it to the account.
const stateAudience = "splitwise-oauth"

const stateLifetime = 10 * time.Minute

type SplitwiseStatusResponse struct {
	Data struct {
		Configured   bool       `json:"configured" example:"true"`
		Connected    bool       `json:"connected" example:"true"`
		LastSyncedAt *time.Time `json:"lastSyncedAt"`
	} `json:"data"`
}

type SplitwiseConnectResponse struct {
	Data struct {
		URL string `json:"url" example:"https://secure.splitwise.com/oauth/authorize?..."`
	} `json:"data"`
}

type SplitwiseSyncResponse struct {
	Data splitwise.SyncResult `json:"data"`
}

// userConnection fetches the Splitwise connection of the authenticated user.
func userConnection(c *gin.Context) (models.SplitwiseConnection, error) {
	user := currentUser(c)

	var conn models.SplitwiseConnection
	err := models.DB.Where(&models.SplitwiseConnection{UserID: user.ID}).First(&conn).Error
	if errors.Is(err, gorm.ErrRecordNotFound) || errors.Is(err, models.ErrResourceNotFound) {
		return conn, errSplitwiseNotConnected
	}

	return conn, err
}

// newStateToken issues the signed state parameter for the OAuth redirect.
func (co Controller) newStateToken(username string) (string, error) {
	now := time.Now().In(time.UTC)

	claims := jwt.RegisteredClaims{
		Subject:   username,
		Audience:  jwt.ClaimStrings{stateAudience},
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(now.Add(stateLifetime)),
	}

	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(co.Config.SecretKey))
}

// parseStateToken validates the state parameter and returns the username it
// was issued for.
func (co Controller) parseStateToken(state string) (string, error) {
	claims := &jwt.RegisteredClaims{}
	token, err := jwt.ParseWithClaims(state, claims, co.keyFunc,
		jwt.WithValidMethods([]string{"HS256"}),
		jwt.WithAudience(stateAudience),
	)
	if err != nil || !token.Valid || claims.Subject == "" {
		return "", errSplitwiseBadState
	}

	return claims.Subject, nil
}

// @Summary		Splitwise connection status
// @Tags			Splitwise
// @Produce		json
// @Success		200	{object}	SplitwiseStatusResponse
// @Router			/v1/splitwise/status [get]
func (co Controller) SplitwiseStatus(c *gin.Context) {
	var response SplitwiseStatusResponse
	response.Data.Configured = co.Splitwise.Configured()

	conn, err := userConnection(c)
	if err == nil {
		response.Data.Connected = true
		if !conn.LastSyncedAt.IsZero() {
			response.Data.LastSyncedAt = &conn.LastSyncedAt
		}
	}

	c.JSON(http.StatusOK, response)
}

// @Summary		Start the Splitwise authorization
// @Description	Returns the Splitwise authorization URL for the authenticated user. The state parameter embedded in it expires after ten minutes.
// @Tags			Splitwise
// @Produce		json
// @Success		200	{object}	SplitwiseConnectResponse
// @Failure		503	{object}	httputil.HTTPError	"The integration is not configured"
// @Router			/v1/splitwise/connect [post]
func (co Controller) SplitwiseConnect(c *gin.Context) {
	if !co.Splitwise.Configured() {
		httputil.NewError(c, status(errSplitwiseNotConfigured), errSplitwiseNotConfigured)
		return
	}

	state, err := co.newStateToken(currentUser(c).Username)
	if err != nil {
		httputil.NewError(c, http.StatusInternalServerError, models.ErrGeneral)
		return
	}

	var response SplitwiseConnectResponse
	response.Data.URL = co.Splitwise.AuthURL(state)

	c.JSON(http.StatusOK, response)
}

// @Summary		Splitwise OAuth callback
// @Description	Completes the authorization: exchanges the code, stores the tokens and redirects the browser back to the frontend.
// @Tags			Splitwise
// @Success		302
// @Failure		400	{object}	httputil.HTTPError
// @Param			state	query	string	true	"State from the connect call"
// @Param			code	query	string	true	"Authorization code from Splitwise"
// @Router			/v1/splitwise/callback [get]
func (co Controller) SplitwiseCallback(c *gin.Context) {
	if !co.Splitwise.Configured() {
		httputil.NewError(c, status(errSplitwiseNotConfigured), errSplitwiseNotConfigured)
		return
	}

	username, err := co.parseStateToken(c.Query("state"))
	if err != nil {
		httputil.NewError(c, status(err), err)
		return
	}

	var user models.User
	if err := models.DB.Where(&models.User{Username: username}).First(&user).Error; err != nil {
		httputil.NewError(c, status(errSplitwiseBadState), errSplitwiseBadState)
		return
	}

	token, err := co.Splitwise.Exchange(c.Request.Context(), c.Query("code"))
	if err != nil {
		log.Error().Str("request-id", requestid.Get(c)).Err(err).Msg("splitwise code exchange failed")
		httputil.NewError(c, http.StatusBadRequest, errSplitwiseBadState)
		return
	}

	client, _ := co.SplitwiseClient(c.Request.Context(), token)
	splitwiseUser, err := client.CurrentUser(c.Request.Context())
	if err != nil {
		httputil.NewError(c, http.StatusBadGateway, models.ErrGeneral)
		return
	}

	var conn models.SplitwiseConnection
	err = models.DB.Where(&models.SplitwiseConnection{UserID: user.ID}).First(&conn).Error
	if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) && !errors.Is(err, models.ErrResourceNotFound) {
		httputil.NewError(c, http.StatusInternalServerError, models.ErrGeneral)
		return
	}

	conn.UserID = user.ID
	conn.SplitwiseUserID = splitwiseUser.ID
	splitwise.ApplyToken(&conn, token)

	if err := models.DB.Save(&conn).Error; err != nil {
		httputil.NewError(c, http.StatusInternalServerError, models.ErrGeneral)
		return
	}

	c.Redirect(http.StatusFound, co.Config.FrontendURL+"/settings?splitwise=connected")
}

// @Summary		Sync Splitwise expenses
// @Description	Imports the authenticated user's owed shares since the last sync as pending transactions. Items that fail do not abort the run, they are counted in the result.
// @Tags			Splitwise
// @Produce		json
// @Success		200	{object}	SplitwiseSyncResponse
// @Failure		400	{object}	httputil.HTTPError	"Not connected"
// @Router			/v1/splitwise/sync [post]
func (co Controller) SplitwiseSync(c *gin.Context) {
	conn, err := userConnection(c)
	if err != nil {
		httputil.NewError(c, status(err), err)
		return
	}

	ctx := c.Request.Context()
	client, source := co.SplitwiseClient(ctx, splitwise.Token(&conn))

	result, err := splitwise.Sync(ctx, models.DB, &conn, client)
	if err != nil {
		httputil.NewError(c, http.StatusBadGateway, err)
		return
	}

	// The oauth2 transport may have refreshed the token during the sync,
	// persist it so the next sync does not need another refresh.
	if source != nil {
		if token, err := source.Token(); err == nil {
			splitwise.ApplyToken(&conn, token)
		}
	}

	if err := models.DB.Save(&conn).Error; err != nil {
		httputil.NewError(c, http.StatusInternalServerError, models.ErrGeneral)
		return
	}

	c.JSON(http.StatusOK, SplitwiseSyncResponse{Data: result})
}

// @Summary		Disconnect Splitwise
// @Description	Deletes the stored tokens. Already imported pending transactions are kept.
// @Tags			Splitwise
// @Success		204
// @Failure		400	{object}	httputil.HTTPError	"Not connected"
// @Router			/v1/splitwise/disconnect [delete]
func (co Controller) SplitwiseDisconnect(c *gin.Context) {
	conn, err := userConnection(c)
	if err != nil {
		httputil.NewError(c, status(err), err)
		return
	}

	if err := models.DB.Delete(&conn).Error; err != nil {
		httputil.NewError(c, http.StatusInternalServerError, models.ErrGeneral)
		return
	}

	c.Status(http.StatusNoContent)
}
