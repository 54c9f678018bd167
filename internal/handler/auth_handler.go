package handler

import (
	"net/http"

	"github.com/gin-contrib/sessions"
	"github.com/gin-gonic/gin"
	"github.com/greencart/internal/db"
	"github.com/greencart/internal/service"
)

const (
	sessionUserKey = "user_id"
	userContextKey = "user_id"
)

type signupPayload struct {
	Email       string `json:"email"`
	Password    string `json:"password"`
	DisplayName string `json:"display_name"`
	BirthDate   string `json:"birth_date"`
}

type loginPayload struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// Signup registers an account and signs it in.
func (a *API) Signup(c *gin.Context) {
	var payload signupPayload
	if !bindJSON(c, &payload, a.t(c, "invalid_request")) {
		return
	}

	now := a.now()
	birthDate, err := parseDateInput(payload.BirthDate, now.Location())
	if err != nil {
		a.fail(c, http.StatusBadRequest, "invalid_date")
		return
	}

	input := service.RegisterInput{
		Email:       payload.Email,
		Password:    payload.Password,
		DisplayName: payload.DisplayName,
	}
	if birthDate != nil {
		input.BirthDate = *birthDate
	}

	user, err := a.users.Register(input, now)
	if err != nil {
		a.handleServiceError(c, err)
		return
	}

	if !a.startSession(c, user) {
		return
	}
	c.JSON(http.StatusCreated, gin.H{"user": userToPayload(*user)})
}

// Login checks credentials and starts a session.
func (a *API) Login(c *gin.Context) {
	var payload loginPayload
	if !bindJSON(c, &payload, a.t(c, "invalid_request")) {
		return
	}

	user, err := a.users.Authenticate(payload.Email, payload.Password, a.now())
	if err != nil {
		a.handleServiceError(c, err)
		return
	}

	if !a.startSession(c, user) {
		return
	}
	c.JSON(http.StatusOK, gin.H{"user": userToPayload(*user)})
}

// Logout clears the session, including the cart.
func (a *API) Logout(c *gin.Context) {
	session := sessions.Default(c)
	session.Clear()
	session.Options(sessions.Options{Path: "/", MaxAge: -1})
	if err := session.Save(); err != nil {
		a.fail(c, http.StatusInternalServerError, "session_failed")
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": a.t(c, "logged_out")})
}

func (a *API) startSession(c *gin.Context, user *db.User) bool {
	session := sessions.Default(c)
	session.Clear()
	session.Set(sessionUserKey, user.ID)
	if err := session.Save(); err != nil {
		a.fail(c, http.StatusInternalServerError, "session_failed")
		return false
	}
	return true
}

// AuthRequired rejects requests without a signed-in user.
func (a *API) AuthRequired() gin.HandlerFunc {
	return func(c *gin.Context) {
		session := sessions.Default(c)
		userID, ok := session.Get(sessionUserKey).(uint)
		if !ok || userID == 0 {
			a.fail(c, http.StatusUnauthorized, "unauthorized")
			return
		}
		c.Set(userContextKey, userID)
		c.Next()
	}
}

func currentUserID(c *gin.Context) uint {
	return c.GetUint(userContextKey)
}
